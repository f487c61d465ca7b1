package benchmarks

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
)

// Srinivas is a two variable, two objective problem with two inequality
// constraints. Its Pareto set is x1 = -2.5, x2 in [2.5, 14.79].
type Srinivas struct{}

func NewSrinivas() *Srinivas {
	return &Srinivas{}
}

func (p *Srinivas) Name() string {
	return "Srinivas"
}

func (p *Srinivas) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		func(x framework.Variables) float64 {
			xx := values(x)
			return 2.0 + (xx[0]-2.0)*(xx[0]-2.0) + (xx[1]-1.0)*(xx[1]-1.0)
		},
		func(x framework.Variables) float64 {
			xx := values(x)
			return 9.0*xx[0] - (xx[1]-1.0)*(xx[1]-1.0)
		},
	}
}

func (p *Srinivas) Constraints() []framework.Constraint {
	return []framework.Constraint{
		// x1^2 + x2^2 <= 225
		func(x framework.Variables) float64 {
			xx := values(x)
			return math.Max(0, (xx[0]*xx[0]+xx[1]*xx[1])/225.0-1.0)
		},
		// x1 - 3*x2 + 10 <= 0
		func(x framework.Variables) float64 {
			xx := values(x)
			return math.Max(0, 1.0-(3.0*xx[1]-xx[0])/10.0)
		},
	}
}

func (p *Srinivas) Bounds() []framework.Bounds {
	return []framework.Bounds{{L: -20, H: 20}, {L: -20, H: 20}}
}

func (p *Srinivas) Initialize(popSize int, rng *rand.Rand) []framework.Variables {
	return initializeReal(p.Bounds(), popSize, rng)
}

// TrueParetoFront evaluates the Pareto set x1 = -2.5 along x2.
func (p *Srinivas) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	const x1 = -2.5
	lo, hi := 2.5, math.Sqrt(225-x1*x1)
	funcs := p.ObjectiveFuncs()
	points := make([]framework.ObjectiveSpacePoint, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		x2 := lo + (hi-lo)*float64(i)/float64(numPoints-1)
		v := framework.NewRealVariables([]float64{x1, x2}, p.Bounds())
		points = append(points, framework.ObjectiveSpacePoint{funcs[0](v), funcs[1](v)})
	}
	return dominance.NonDominated(points)
}
