package benchmarks

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
)

// zdt holds what ZDT1, ZDT2 and ZDT3 share: unit bounds, f1 = x1 and the
// distance function g.
type zdt struct {
	numVars int
}

func (p *zdt) f1(x framework.Variables) float64 {
	return values(x)[0]
}

func (p *zdt) g(xx []float64) float64 {
	g := 1.0
	for i := 1; i < len(xx); i++ {
		g += 9.0 * xx[i] / float64(len(xx)-1)
	}
	return g
}

func (p *zdt) Constraints() []framework.Constraint {
	return nil
}

func (p *zdt) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *zdt) Initialize(popSize int, rng *rand.Rand) []framework.Variables {
	return initializeReal(p.Bounds(), popSize, rng)
}

// ZDT1 has a convex Pareto front
type ZDT1 struct {
	zdt
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{zdt{numVars: numVars}}
}

func (p *ZDT1) Name() string {
	return "ZDT1"
}

func (p *ZDT1) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT1) f2(x framework.Variables) float64 {
	xx := values(x)
	g := p.g(xx)
	return g * (1.0 - math.Sqrt(xx[0]/g))
}

func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{x, 1.0 - math.Sqrt(x)}
	}
	return points
}

// ZDT2 has a non-convex Pareto front
type ZDT2 struct {
	zdt
}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{zdt{numVars: numVars}}
}

func (p *ZDT2) Name() string {
	return "ZDT2"
}

func (p *ZDT2) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT2) f2(x framework.Variables) float64 {
	xx := values(x)
	g := p.g(xx)
	// Note: ZDT2 uses (1 - (x1/g)^2) instead of sqrt
	return g * (1.0 - math.Pow(xx[0]/g, 2))
}

func (p *ZDT2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{x, 1.0 - x*x}
	}
	return points
}

// ZDT3 has a disconnected Pareto front
type ZDT3 struct {
	zdt
}

func NewZDT3(numVars int) *ZDT3 {
	return &ZDT3{zdt{numVars: numVars}}
}

func (p *ZDT3) Name() string {
	return "ZDT3"
}

func (p *ZDT3) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT3) f2(x framework.Variables) float64 {
	xx := values(x)
	g := p.g(xx)
	h := 1.0 - math.Sqrt(xx[0]/g) - (xx[0]/g)*math.Sin(10*math.Pi*xx[0])
	return g * h
}

// TrueParetoFront samples the g = 1 curve and keeps its non-dominated
// pieces, so fewer than numPoints points are returned.
func (p *ZDT3) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{x, 1.0 - math.Sqrt(x) - x*math.Sin(10*math.Pi*x)}
	}
	return dominance.NonDominated(points)
}
