// Package replacement decides which solutions survive into the next
// population. RankingAndCrowding is the elitist environmental selection of
// NSGA-II; Neighborhood is the subproblem replacement of MOEA/D.
package replacement

import (
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/moea/pkg/crowding"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/ranking"
)

type selectionState int

const (
	rankUnion selectionState = iota
	fillByFront
	fillByCrowding
	done
)

func (s selectionState) String() string {
	switch s {
	case rankUnion:
		return "RankUnion"
	case fillByFront:
		return "FillByFront"
	case fillByCrowding:
		return "FillByCrowding"
	case done:
		return "Done"
	}
	return "Unknown"
}

// RankingAndCrowding keeps the best n members of the union of a population
// and its offspring: whole fronts while they fit, then the most isolated
// members of the first front that does not.
type RankingAndCrowding struct {
	Ranking ranking.Ranking
	Density crowding.DensityEstimator
}

// NewRankingAndCrowding uses fast non-dominated sorting, with constrained
// dominance when constrained is true, and crowding distance.
func NewRankingAndCrowding(constrained bool) *RankingAndCrowding {
	return &RankingAndCrowding{
		Ranking: ranking.NewFastNonDominated(constrained),
		Density: crowding.Estimator{},
	}
}

// Replace returns the n survivors of population ∪ offspring. Neither input
// slice is modified. Invalid arguments are rejected before any Rank or
// Distance is written.
func (r *RankingAndCrowding) Replace(population, offspring []*framework.Solution, n int) ([]*framework.Solution, error) {
	union := make([]*framework.Solution, 0, len(population)+len(offspring))
	union = append(union, population...)
	union = append(union, offspring...)

	if n < 1 {
		return nil, framework.InvalidConfigf("population size must be positive, got %d", n)
	}
	if len(union) < n {
		return nil, framework.InvalidConfigf("cannot select %d survivors out of %d solutions", n, len(union))
	}
	if err := framework.CheckObjectives(union, len(union[0].Objectives)); err != nil {
		return nil, err
	}

	state := rankUnion
	klog.V(5).InfoS("Environmental selection", "state", state, "union", len(union), "target", n)
	fronts, err := r.Ranking.Rank(union)
	if err != nil {
		return nil, err
	}

	survivors := make([]*framework.Solution, 0, n)
	state = fillByFront
	for k, front := range fronts {
		r.Density.Estimate(front)

		if len(survivors)+len(front) <= n {
			survivors = append(survivors, front...)
			if len(survivors) == n {
				break
			}
			continue
		}

		state = fillByCrowding
		missing := n - len(survivors)
		klog.V(5).InfoS("Environmental selection", "state", state, "front", k, "frontSize", len(front), "admitted", missing)

		sorted := make([]*framework.Solution, len(front))
		copy(sorted, front)
		r.Density.Sort(sorted)
		survivors = append(survivors, sorted[:missing]...)
		break
	}

	state = done
	klog.V(5).InfoS("Environmental selection", "state", state, "fronts", len(fronts), "survivors", len(survivors))
	if len(survivors) != n {
		return nil, framework.InvalidConfigf("environmental selection produced %d survivors, want %d", len(survivors), n)
	}
	return survivors, nil
}
