package operators

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// IntegerCrossoverKind selects the recombination scheme of IntegerCrossover.
type IntegerCrossoverKind string

const (
	OnePoint IntegerCrossoverKind = "one-point"
	TwoPoint IntegerCrossoverKind = "two-point"
	Uniform  IntegerCrossoverKind = "uniform"
	KPoint   IntegerCrossoverKind = "k-point"
	// Grouped inherits, as one block, all genes holding the same value in
	// the first parent.
	Grouped IntegerCrossoverKind = "grouped"
)

// IntegerCrossover recombines integer chromosomes.
type IntegerCrossover struct {
	Kind        IntegerCrossoverKind
	Probability float64
	// K is the number of cut points of KPoint.
	K int
}

var _ Crossover = &IntegerCrossover{}

func (c *IntegerCrossover) NumberOfParents() int  { return 2 }
func (c *IntegerCrossover) NumberOfChildren() int { return 2 }

func (c *IntegerCrossover) Crossover(parents []framework.Variables, rng *rand.Rand) ([]framework.Variables, error) {
	if err := checkParents("integer crossover", parents, 2); err != nil {
		return nil, err
	}
	p1, ok1 := parents[0].(*framework.IntegerVariables)
	p2, ok2 := parents[1].(*framework.IntegerVariables)
	if !ok1 {
		return nil, kindError("integer crossover", framework.IntegerKind, parents[0])
	}
	if !ok2 {
		return nil, kindError("integer crossover", framework.IntegerKind, parents[1])
	}

	child1 := p1.Clone().(*framework.IntegerVariables)
	child2 := p2.Clone().(*framework.IntegerVariables)
	if rng.Float64() >= c.Probability || len(p1.Values) < 2 {
		return []framework.Variables{child1, child2}, nil
	}

	var c1, c2 []int
	switch c.Kind {
	case OnePoint, "":
		c1, c2 = onePointCrossover(p1.Values, p2.Values, rng)
	case TwoPoint:
		c1, c2 = twoPointCrossover(p1.Values, p2.Values, rng)
	case Uniform:
		c1, c2 = uniformCrossover(p1.Values, p2.Values, rng)
	case KPoint:
		c1, c2 = kPointCrossover(p1.Values, p2.Values, c.K, rng)
	case Grouped:
		c1, c2 = groupedCrossover(p1.Values, p2.Values, rng)
	default:
		return nil, framework.InvalidConfigf("unknown integer crossover %q", c.Kind)
	}
	child1.Values, child2.Values = c1, c2
	return []framework.Variables{child1, child2}, nil
}

// onePointCrossover creates offspring by selecting a random cut point
func onePointCrossover(p1, p2 []int, rng *rand.Rand) ([]int, []int) {
	child1 := make([]int, len(p1))
	child2 := make([]int, len(p2))

	point := rng.Intn(len(p1))

	copy(child1[:point], p1[:point])
	copy(child2[:point], p2[:point])
	copy(child1[point:], p2[point:])
	copy(child2[point:], p1[point:])
	return child1, child2
}

// twoPointCrossover swaps the genes between two random cut points
func twoPointCrossover(p1, p2 []int, rng *rand.Rand) ([]int, []int) {
	child1 := make([]int, len(p1))
	child2 := make([]int, len(p2))

	point1 := rng.Intn(len(p1))
	point2 := rng.Intn(len(p1))
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	for i := range p1 {
		if i < point1 || i >= point2 {
			child1[i] = p1[i]
			child2[i] = p2[i]
		} else {
			child1[i] = p2[i]
			child2[i] = p1[i]
		}
	}
	return child1, child2
}

// uniformCrossover picks every gene from either parent with equal probability
func uniformCrossover(p1, p2 []int, rng *rand.Rand) ([]int, []int) {
	child1 := make([]int, len(p1))
	child2 := make([]int, len(p2))

	for i := range p1 {
		if rng.Float64() < 0.5 {
			child1[i] = p1[i]
			child2[i] = p2[i]
		} else {
			child1[i] = p2[i]
			child2[i] = p1[i]
		}
	}
	return child1, child2
}

// kPointCrossover alternates the source parent at k distinct cut points.
func kPointCrossover(p1, p2 []int, k int, rng *rand.Rand) ([]int, []int) {
	child1 := make([]int, len(p1))
	child2 := make([]int, len(p2))

	if k < 1 {
		k = 1
	}
	if k > len(p1)-1 {
		k = len(p1) - 1
	}

	// k distinct cut points in [1, len-1]
	cuts := rng.Perm(len(p1) - 1)[:k]
	points := make([]int, 0, k+2)
	points = append(points, 0)
	for _, c := range cuts {
		points = append(points, c+1)
	}
	sort.Ints(points[1:])
	points = append(points, len(p1))

	swap := false
	for i := 0; i < k+1; i++ {
		for j := points[i]; j < points[i+1]; j++ {
			if swap {
				child1[j] = p2[j]
				child2[j] = p1[j]
			} else {
				child1[j] = p1[j]
				child2[j] = p2[j]
			}
		}
		swap = !swap
	}
	return child1, child2
}

// groupedCrossover keeps genes that share a value in p1 together, so an
// assignment of several items to the same bucket is inherited as a unit.
func groupedCrossover(p1, p2 []int, rng *rand.Rand) ([]int, []int) {
	child1 := make([]int, len(p1))
	child2 := make([]int, len(p2))

	groups := make(map[int][]int)
	var order []int
	for gene, value := range p1 {
		if _, ok := groups[value]; !ok {
			order = append(order, value)
		}
		groups[value] = append(groups[value], gene)
	}

	// Walk groups in first-seen order so the outcome only depends on rng.
	for _, value := range order {
		fromFirst := rng.Float64() < 0.5
		for _, gene := range groups[value] {
			if fromFirst {
				child1[gene] = p1[gene]
				child2[gene] = p2[gene]
			} else {
				child1[gene] = p2[gene]
				child2[gene] = p1[gene]
			}
		}
	}
	return child1, child2
}

// RandomResetMutation redraws each integer gene inside its bounds with
// probability Probability.
type RandomResetMutation struct {
	Probability float64
}

var _ Mutation = &RandomResetMutation{}

func (m *RandomResetMutation) Mutate(v framework.Variables, rng *rand.Rand) error {
	x, ok := v.(*framework.IntegerVariables)
	if !ok {
		return kindError("random reset mutation", framework.IntegerKind, v)
	}
	for i := range x.Values {
		if i >= len(x.Bounds) || rng.Float64() >= m.Probability {
			continue
		}
		b := x.Bounds[i]
		x.Values[i] = b.L + rng.Intn(b.H-b.L+1)
	}
	return nil
}
