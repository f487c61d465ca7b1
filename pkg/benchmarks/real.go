package benchmarks

import (
	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/framework"
)

func unitBounds(numVars int) []framework.Bounds {
	b := make([]framework.Bounds, numVars)
	for i := range numVars {
		b[i] = framework.Bounds{L: 0.0, H: 1.0}
	}
	return b
}

// initializeReal draws popSize vectors uniformly inside b.
func initializeReal(b []framework.Bounds, popSize int, rng *rand.Rand) []framework.Variables {
	population := make([]framework.Variables, popSize)
	for i := 0; i < popSize; i++ {
		vars := make([]float64, len(b))
		for j := range b {
			vars[j] = b[j].L + rng.Float64()*(b[j].H-b[j].L)
		}
		population[i] = framework.NewRealVariables(vars, b)
	}
	return population
}

func values(x framework.Variables) []float64 {
	return x.(*framework.RealVariables).Values
}
