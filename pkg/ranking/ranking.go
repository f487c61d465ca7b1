// Package ranking partitions a solution set into ordered fronts.
package ranking

import (
	"fmt"

	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
)

// Front is a read-only view of the solutions sharing the same rank. It is
// invalidated as soon as the ranked set is mutated.
type Front []*framework.Solution

// Ranking assigns every solution of a set to exactly one front and stores
// the front index in its Rank field. Front 0 is the best.
type Ranking interface {
	Rank(set []*framework.Solution) ([]Front, error)
}

// FastNonDominated is the O(MN²) fast non-dominated sort.
type FastNonDominated struct {
	// Comparator defaults to dominance.Pareto.
	Comparator dominance.Comparator
}

var _ Ranking = &FastNonDominated{}

// NewFastNonDominated returns a ranking based on plain Pareto dominance, or on
// constrained dominance when constrained is true.
func NewFastNonDominated(constrained bool) *FastNonDominated {
	if constrained {
		return &FastNonDominated{Comparator: dominance.Constrained}
	}
	return &FastNonDominated{Comparator: dominance.Pareto}
}

// Rank performs non-dominated sorting on the population.
func (r *FastNonDominated) Rank(population []*framework.Solution) ([]Front, error) {
	if len(population) == 0 {
		return nil, nil
	}

	compare := r.Comparator
	if compare == nil {
		compare = dominance.Pareto
	}

	dominated := make([][]int, len(population))
	domCount := make([]int, len(population))

	// Calculate domination for each pair, one comparison per pair
	for i := 0; i < len(population); i++ {
		for j := i + 1; j < len(population); j++ {
			switch compare(population[i], population[j]) {
			case -1:
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			case 1:
				dominated[j] = append(dominated[j], i)
				domCount[i]++
			}
		}
	}

	var fronts []Front

	// Find first front
	currentFront := Front{}
	currentFrontIndices := []int{}
	for i := 0; i < len(population); i++ {
		if domCount[i] == 0 {
			population[i].Rank = 0
			currentFront = append(currentFront, population[i])
			currentFrontIndices = append(currentFrontIndices, i)
		}
	}

	// Find subsequent fronts
	frontIndex := 0
	for len(currentFront) > 0 {
		fronts = append(fronts, currentFront)

		nextFront := Front{}
		nextFrontIndices := []int{}
		for _, idx := range currentFrontIndices {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					population[dominatedIdx].Rank = frontIndex + 1
					nextFront = append(nextFront, population[dominatedIdx])
					nextFrontIndices = append(nextFrontIndices, dominatedIdx)
				}
			}
		}
		frontIndex++
		currentFront = nextFront
		currentFrontIndices = nextFrontIndices
	}

	if err := CheckPartition(population, fronts); err != nil {
		return nil, err
	}
	return fronts, nil
}

// CheckPartition verifies that fronts contain every member of set exactly once.
func CheckPartition(set []*framework.Solution, fronts []Front) error {
	seen := make(map[*framework.Solution]int, len(set))
	total := 0
	for k, f := range fronts {
		for _, s := range f {
			if prev, ok := seen[s]; ok {
				return fmt.Errorf("%w: solution assigned to fronts %d and %d", framework.ErrRankingInvariant, prev, k)
			}
			seen[s] = k
			total++
		}
	}
	if total != len(set) {
		return fmt.Errorf("%w: %d of %d solutions assigned to a front", framework.ErrRankingInvariant, total, len(set))
	}
	for i, s := range set {
		if _, ok := seen[s]; !ok {
			return fmt.Errorf("%w: solution %d left unassigned", framework.ErrRankingInvariant, i)
		}
	}
	return nil
}

// FirstFront returns the non-dominated subset of set using Pareto dominance.
// The Rank field of the members is not touched.
func FirstFront(set []*framework.Solution) []*framework.Solution {
	var out []*framework.Solution
	for i, s := range set {
		dominated := false
		for j, o := range set {
			if i != j && dominance.Dominates(o.Objectives, s.Objectives) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, s)
		}
	}
	return out
}
