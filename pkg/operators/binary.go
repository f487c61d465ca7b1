package operators

import (
	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// SinglePointBinaryCrossover swaps the tails of two bit strings after a
// random cut point.
type SinglePointBinaryCrossover struct {
	Probability float64
}

var _ Crossover = &SinglePointBinaryCrossover{}

func (c *SinglePointBinaryCrossover) NumberOfParents() int  { return 2 }
func (c *SinglePointBinaryCrossover) NumberOfChildren() int { return 2 }

func (c *SinglePointBinaryCrossover) Crossover(parents []framework.Variables, rng *rand.Rand) ([]framework.Variables, error) {
	if err := checkParents("single point crossover", parents, 2); err != nil {
		return nil, err
	}
	p1, ok1 := parents[0].(*framework.BinaryVariables)
	p2, ok2 := parents[1].(*framework.BinaryVariables)
	if !ok1 {
		return nil, kindError("single point crossover", framework.BinaryKind, parents[0])
	}
	if !ok2 {
		return nil, kindError("single point crossover", framework.BinaryKind, parents[1])
	}

	child1 := p1.Clone().(*framework.BinaryVariables)
	child2 := p2.Clone().(*framework.BinaryVariables)
	if len(p1.Bits) > 0 && rng.Float64() < c.Probability {
		point := rng.Intn(len(p1.Bits))
		for i := point; i < len(p1.Bits); i++ {
			child1.Bits[i], child2.Bits[i] = child2.Bits[i], child1.Bits[i]
		}
	}
	return []framework.Variables{child1, child2}, nil
}

// BitFlipMutation flips each bit with probability Probability.
type BitFlipMutation struct {
	Probability float64
}

var _ Mutation = &BitFlipMutation{}

func (m *BitFlipMutation) Mutate(v framework.Variables, rng *rand.Rand) error {
	x, ok := v.(*framework.BinaryVariables)
	if !ok {
		return kindError("bit flip mutation", framework.BinaryKind, v)
	}
	for i := range x.Bits {
		if rng.Float64() < m.Probability {
			x.Bits[i] = !x.Bits[i]
		}
	}
	return nil
}
