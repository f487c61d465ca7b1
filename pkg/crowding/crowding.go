// Package crowding estimates how isolated each solution of a front is in
// objective space.
package crowding

import (
	"math"
	"sort"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// DensityEstimator assigns a diversity score to every member of a front.
// Larger scores mean more isolated and therefore more valuable solutions.
type DensityEstimator interface {
	Estimate(front []*framework.Solution)
	// Sort orders front from most to least valuable.
	Sort(front []*framework.Solution)
}

// Estimator is the crowding-distance DensityEstimator.
type Estimator struct{}

var _ DensityEstimator = Estimator{}

func (Estimator) Estimate(front []*framework.Solution) { Distance(front) }
func (Estimator) Sort(front []*framework.Solution)     { SortByDistance(front) }

// Distance calculates crowding distance for individuals in a front and
// stores it in their Distance field. The order of front is left untouched.
func Distance(front []*framework.Solution) {
	if len(front) <= 2 {
		for i := range front {
			front[i].Distance = math.Inf(1)
		}
		return
	}

	numObjectives := len(front[0].Objectives)
	for i := range front {
		front[i].Distance = 0
	}

	// Sort a private view so the caller's order is preserved.
	sorted := make([]*framework.Solution, len(front))
	copy(sorted, front)
	last := len(sorted) - 1

	for m := 0; m < numObjectives; m++ {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Objectives[m] < sorted[j].Objectives[m]
		})

		// Set boundary points to infinity
		sorted[0].Distance = math.Inf(1)
		sorted[last].Distance = math.Inf(1)

		objectiveRange := sorted[last].Objectives[m] - sorted[0].Objectives[m]
		if objectiveRange == 0 {
			continue
		}

		// Calculate distance for intermediate points
		for i := 1; i < last; i++ {
			sorted[i].Distance += (sorted[i+1].Objectives[m] - sorted[i-1].Objectives[m]) / objectiveRange
		}
	}
}

// SortByDistance orders front by descending crowding distance. Equal
// distances keep their relative order.
func SortByDistance(front []*framework.Solution) {
	sort.SliceStable(front, func(i, j int) bool {
		return front[i].Distance > front[j].Distance
	})
}

// Less reports whether a is preferred over b for survival or mating: lower
// rank first, larger crowding distance second.
func Less(a, b *framework.Solution) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Distance > b.Distance
}
