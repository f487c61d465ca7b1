package benchmarks

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/weights"
)

// dtlz holds what DTLZ1 and DTLZ2 share. Both scale to any number of
// objectives; numVars is M + k - 1.
type dtlz struct {
	numVars       int
	numObjectives int
}

// name appends the number of objectives when it is not two, e.g. DTLZ2_3D.
func (p *dtlz) name(base string) string {
	if p.numObjectives == 2 {
		return base
	}
	return fmt.Sprintf("%s_%dD", base, p.numObjectives)
}

func (p *dtlz) objectiveFuncs(objective func(x []float64, objIdx int) float64) []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjectives)
	for i := 0; i < p.numObjectives; i++ {
		funcs[i] = func(x framework.Variables) float64 {
			return objective(values(x), i)
		}
	}
	return funcs
}

func (p *dtlz) Constraints() []framework.Constraint {
	return nil
}

func (p *dtlz) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *dtlz) Initialize(popSize int, rng *rand.Rand) []framework.Variables {
	return initializeReal(p.Bounds(), popSize, rng)
}

// simplex returns about numPoints lattice points of the unit simplex, the
// largest lattice that does not exceed numPoints.
func (p *dtlz) simplex(numPoints int) [][]float64 {
	h := 1
	for weights.LatticeSize(p.numObjectives, h+1) <= numPoints {
		h++
	}
	w, err := weights.Lattice{Divisions: h}.Weights(p.numObjectives, weights.LatticeSize(p.numObjectives, h))
	if err != nil {
		return nil
	}
	return w
}

// DTLZ1 has a linear Pareto front (sum f_i = 0.5) and many local fronts
type DTLZ1 struct {
	dtlz
}

func NewDTLZ1(numVars, numObjectives int) *DTLZ1 {
	// Recommended: numVars = numObjectives + k - 1, where k = 5 for DTLZ1
	return &DTLZ1{dtlz{numVars: numVars, numObjectives: numObjectives}}
}

func (p *DTLZ1) Name() string {
	return p.name("DTLZ1")
}

func (p *DTLZ1) ObjectiveFuncs() []framework.ObjectiveFunc {
	return p.objectiveFuncs(p.objective)
}

func (p *DTLZ1) g(x []float64) float64 {
	k := p.numVars - p.numObjectives + 1
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2) - math.Cos(20*math.Pi*(x[i]-0.5))
	}
	return 100 * (float64(k) + sum)
}

func (p *DTLZ1) objective(x []float64, objIdx int) float64 {
	f := 0.5 * (1 + p.g(x))
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= x[i]
	}
	if objIdx > 0 {
		f *= 1 - x[p.numObjectives-objIdx-1]
	}
	return f
}

func (p *DTLZ1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	w := p.simplex(numPoints)
	points := make([]framework.ObjectiveSpacePoint, len(w))
	for i, vec := range w {
		point := make(framework.ObjectiveSpacePoint, len(vec))
		copy(point, vec)
		floats.Scale(0.5, point)
		points[i] = point
	}
	return points
}

// DTLZ2 has a spherical Pareto front (sum f_i^2 = 1)
type DTLZ2 struct {
	dtlz
}

func NewDTLZ2(numVars, numObjectives int) *DTLZ2 {
	// Recommended: numVars = numObjectives + k - 1, where k = 10 for DTLZ2
	return &DTLZ2{dtlz{numVars: numVars, numObjectives: numObjectives}}
}

func (p *DTLZ2) Name() string {
	return p.name("DTLZ2")
}

func (p *DTLZ2) ObjectiveFuncs() []framework.ObjectiveFunc {
	return p.objectiveFuncs(p.objective)
}

func (p *DTLZ2) g(x []float64) float64 {
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2)
	}
	return sum
}

func (p *DTLZ2) objective(x []float64, objIdx int) float64 {
	f := 1 + p.g(x)
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= math.Cos(x[i] * math.Pi / 2)
	}
	if objIdx > 0 {
		f *= math.Sin(x[p.numObjectives-objIdx-1] * math.Pi / 2)
	}
	return f
}

// TrueParetoFront projects simplex lattice points on the unit sphere.
func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	w := p.simplex(numPoints)
	points := make([]framework.ObjectiveSpacePoint, len(w))
	for i, vec := range w {
		point := make(framework.ObjectiveSpacePoint, len(vec))
		copy(point, vec)
		floats.Scale(1/floats.Norm(point, 2), point)
		points[i] = point
	}
	return points
}
