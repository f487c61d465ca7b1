package operators

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// DefaultDistributionIndex is the distribution index used by SBX and the
// polynomial mutation when none is configured.
const DefaultDistributionIndex = 20.0

// SBX is the bounded simulated binary crossover on real variables. Each
// variable is recombined with probability one half, otherwise the parents'
// values are exchanged.
type SBX struct {
	Probability       float64
	DistributionIndex float64
}

var _ Crossover = &SBX{}

func (c *SBX) NumberOfParents() int  { return 2 }
func (c *SBX) NumberOfChildren() int { return 2 }

func (c *SBX) Crossover(parents []framework.Variables, rng *rand.Rand) ([]framework.Variables, error) {
	if err := checkParents("SBX", parents, 2); err != nil {
		return nil, err
	}
	p1, ok1 := parents[0].(*framework.RealVariables)
	p2, ok2 := parents[1].(*framework.RealVariables)
	if !ok1 {
		return nil, kindError("SBX", framework.RealKind, parents[0])
	}
	if !ok2 {
		return nil, kindError("SBX", framework.RealKind, parents[1])
	}

	child1 := p1.Clone().(*framework.RealVariables)
	child2 := p2.Clone().(*framework.RealVariables)
	if rng.Float64() > c.Probability {
		return []framework.Variables{child1, child2}, nil
	}

	eta := distributionIndex(c.DistributionIndex)
	for i := range p1.Values {
		x1, x2 := p1.Values[i], p2.Values[i]
		if rng.Float64() > 0.5 {
			child1.Values[i], child2.Values[i] = x2, x1
			continue
		}
		if math.Abs(x1-x2) <= sbxEpsilon {
			continue
		}

		y1, y2 := math.Min(x1, x2), math.Max(x1, x2)
		b := boundsAt(p1, i)
		u := rng.Float64()
		c1 := 0.5 * ((y1 + y2) - sbxSpread(1+2*(y1-b.L)/(y2-y1), eta, u)*(y2-y1))
		c2 := 0.5 * ((y1 + y2) + sbxSpread(1+2*(b.H-y2)/(y2-y1), eta, u)*(y2-y1))
		c1, c2 = clamp(c1, b), clamp(c2, b)

		if rng.Float64() <= 0.5 {
			c1, c2 = c2, c1
		}
		child1.Values[i], child2.Values[i] = c1, c2
	}
	return []framework.Variables{child1, child2}, nil
}

// sbxEpsilon is the smallest parent distance SBX recombines.
const sbxEpsilon = 1.0e-14

// sbxSpread returns the spread factor betaq for the distance beta between
// the closer parent and its bound.
func sbxSpread(beta, eta, u float64) float64 {
	alpha := 2 - math.Pow(beta, -(eta+1))
	if u <= 1/alpha {
		return math.Pow(u*alpha, 1/(eta+1))
	}
	return math.Pow(1/(2-u*alpha), 1/(eta+1))
}

// boundsAt returns the bounds of variable i, unbounded when none are set.
func boundsAt(v *framework.RealVariables, i int) framework.Bounds {
	if i < len(v.Bounds) {
		return v.Bounds[i]
	}
	return framework.Bounds{L: math.Inf(-1), H: math.Inf(1)}
}

// PolynomialMutation perturbs each real variable with probability
// Probability. The perturbation is drawn so that the result stays inside
// the variable's bounds; variables without bounds are left alone.
type PolynomialMutation struct {
	Probability       float64
	DistributionIndex float64
}

var _ Mutation = &PolynomialMutation{}

func (m *PolynomialMutation) Mutate(v framework.Variables, rng *rand.Rand) error {
	x, ok := v.(*framework.RealVariables)
	if !ok {
		return kindError("polynomial mutation", framework.RealKind, v)
	}

	eta := distributionIndex(m.DistributionIndex)
	pow := 1 / (eta + 1)
	for i := range x.Values {
		if rng.Float64() > m.Probability || i >= len(x.Bounds) {
			continue
		}
		b := x.Bounds[i]
		if b.H <= b.L {
			x.Values[i] = b.L
			continue
		}

		y := x.Values[i]
		width := b.H - b.L
		var deltaq float64
		if u := rng.Float64(); u <= 0.5 {
			xy := 1 - (y-b.L)/width
			val := 2*u + (1-2*u)*math.Pow(xy, eta+1)
			deltaq = math.Pow(val, pow) - 1
		} else {
			xy := 1 - (b.H-y)/width
			val := 2*(1-u) + 2*(u-0.5)*math.Pow(xy, eta+1)
			deltaq = 1 - math.Pow(val, pow)
		}
		x.Values[i] = clamp(y+deltaq*width, b)
	}
	return nil
}

func distributionIndex(eta float64) float64 {
	if eta <= 0 {
		return DefaultDistributionIndex
	}
	return eta
}

// DifferentialEvolution is the DE/rand/1/bin crossover used by MOEA/D.
// Parents are the current solution of the subproblem followed by two mates;
// the single child takes current + F*(mate1 - mate2) on the variables picked
// by the binomial test and current everywhere else.
type DifferentialEvolution struct {
	CR float64
	F  float64
}

var _ SubproblemCrossover = &DifferentialEvolution{}

func (c *DifferentialEvolution) NumberOfParents() int  { return 3 }
func (c *DifferentialEvolution) NumberOfChildren() int { return 1 }
func (c *DifferentialEvolution) IncludesCurrent() bool { return true }

func (c *DifferentialEvolution) Crossover(parents []framework.Variables, rng *rand.Rand) ([]framework.Variables, error) {
	if err := checkParents("differential evolution", parents, 3); err != nil {
		return nil, err
	}
	x := make([]*framework.RealVariables, 3)
	for i, p := range parents {
		rv, ok := p.(*framework.RealVariables)
		if !ok {
			return nil, kindError("differential evolution", framework.RealKind, p)
		}
		x[i] = rv
	}

	child := x[0].Clone().(*framework.RealVariables)
	n := len(child.Values)
	if n == 0 {
		return []framework.Variables{child}, nil
	}
	jRand := rng.Intn(n)
	for j := 0; j < n; j++ {
		if rng.Float64() < c.CR || j == jRand {
			child.Values[j] = x[0].Values[j] + c.F*(x[1].Values[j]-x[2].Values[j])
			if j < len(child.Bounds) {
				child.Values[j] = clamp(child.Values[j], child.Bounds[j])
			}
		}
	}
	return []framework.Variables{child}, nil
}
