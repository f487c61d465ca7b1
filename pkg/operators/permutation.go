package operators

import (
	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// PMX is the partially matched crossover. Both children are valid
// permutations of the parents' elements.
type PMX struct {
	Probability float64
}

var _ Crossover = &PMX{}

func (c *PMX) NumberOfParents() int  { return 2 }
func (c *PMX) NumberOfChildren() int { return 2 }

func (c *PMX) Crossover(parents []framework.Variables, rng *rand.Rand) ([]framework.Variables, error) {
	if err := checkParents("PMX", parents, 2); err != nil {
		return nil, err
	}
	p1, ok1 := parents[0].(*framework.PermutationVariables)
	p2, ok2 := parents[1].(*framework.PermutationVariables)
	if !ok1 {
		return nil, kindError("PMX", framework.PermutationKind, parents[0])
	}
	if !ok2 {
		return nil, kindError("PMX", framework.PermutationKind, parents[1])
	}

	n := len(p1.Order)
	if n < 2 || rng.Float64() >= c.Probability {
		return []framework.Variables{p1.Clone(), p2.Clone()}, nil
	}

	lo, hi := rng.Intn(n), rng.Intn(n)
	if lo > hi {
		lo, hi = hi, lo
	}
	return []framework.Variables{
		framework.NewPermutationVariables(pmxChild(p1.Order, p2.Order, lo, hi)),
		framework.NewPermutationVariables(pmxChild(p2.Order, p1.Order, lo, hi)),
	}, nil
}

// pmxChild copies donor[lo:hi+1] and fills the rest from other, following
// the mapping of the copied section to resolve conflicts.
func pmxChild(donor, other []int, lo, hi int) []int {
	child := make([]int, len(donor))
	placed := make(map[int]bool, hi-lo+1)
	// value in donor's section -> value at the same position in other
	mapping := make(map[int]int, hi-lo+1)
	for i := lo; i <= hi; i++ {
		child[i] = donor[i]
		placed[donor[i]] = true
		mapping[donor[i]] = other[i]
	}

	for i := range other {
		if i >= lo && i <= hi {
			continue
		}
		v := other[i]
		for placed[v] {
			v = mapping[v]
		}
		child[i] = v
	}
	return child
}

// SwapMutation exchanges two random positions with probability Probability.
type SwapMutation struct {
	Probability float64
}

var _ Mutation = &SwapMutation{}

func (m *SwapMutation) Mutate(v framework.Variables, rng *rand.Rand) error {
	x, ok := v.(*framework.PermutationVariables)
	if !ok {
		return kindError("swap mutation", framework.PermutationKind, v)
	}
	if len(x.Order) < 2 || rng.Float64() >= m.Probability {
		return nil
	}
	i := rng.Intn(len(x.Order))
	j := rng.Intn(len(x.Order) - 1)
	if j >= i {
		j++
	}
	x.Order[i], x.Order[j] = x.Order[j], x.Order[i]
	return nil
}
