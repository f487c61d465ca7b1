package ranking

import (
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/scalarize"
)

// ASF ranks solutions by achievement scalarizing utility, the way WASF-GA
// does. Feasible solutions (no violated constraint) are always ranked ahead
// of infeasible ones. Inside each group fronts are built greedily: for every
// weight vector in order the remaining solution with the smallest utility
// joins the current front, until the group is exhausted.
//
// Infeasible solutions are ordered by utility only, never by violation
// magnitude. Use FastNonDominated with dominance.Constrained for
// violation-driven ordering.
type ASF struct {
	Scalarize scalarize.Func
	Weights   [][]float64
	// Reference is the aspiration point handed to Scalarize.
	Reference []float64
}

var _ Ranking = &ASF{}

func (r *ASF) Rank(set []*framework.Solution) ([]Front, error) {
	if len(set) == 0 {
		return nil, nil
	}
	if len(r.Weights) == 0 {
		return nil, framework.InvalidConfigf("asf ranking needs at least one weight vector")
	}
	m := len(r.Reference)
	for i, w := range r.Weights {
		if len(w) != m {
			return nil, framework.DimensionMismatchf("weight vector %d has %d components, reference point has %d", i, len(w), m)
		}
	}
	if err := framework.CheckObjectives(set, m); err != nil {
		return nil, err
	}

	var feasible, infeasible []int
	for i, s := range set {
		if s.ViolatedConstraints > 0 {
			infeasible = append(infeasible, i)
		} else {
			feasible = append(feasible, i)
		}
	}

	var fronts []Front
	fronts = r.rankGroup(set, feasible, fronts)
	fronts = r.rankGroup(set, infeasible, fronts)

	if err := CheckPartition(set, fronts); err != nil {
		return nil, err
	}
	return fronts, nil
}

// rankGroup appends the fronts built from the members of set listed in
// indices. Ties on utility go to the lowest index.
func (r *ASF) rankGroup(set []*framework.Solution, indices []int, fronts []Front) []Front {
	if len(indices) == 0 {
		return fronts
	}

	// utilities[k][w] is the utility of set[indices[k]] under weight w
	utilities := make([][]float64, len(indices))
	for k, idx := range indices {
		utilities[k] = make([]float64, len(r.Weights))
		for w, weights := range r.Weights {
			utilities[k][w] = r.Scalarize.Evaluate(set[idx].Objectives, weights, r.Reference)
		}
	}

	taken := make([]bool, len(indices))
	remaining := len(indices)
	for remaining > 0 {
		rank := len(fronts)
		front := Front{}
		for w := 0; w < len(r.Weights) && remaining > 0; w++ {
			best := -1
			for k := range indices {
				if taken[k] {
					continue
				}
				if best == -1 || utilities[k][w] < utilities[best][w] {
					best = k
				}
			}
			taken[best] = true
			remaining--

			s := set[indices[best]]
			s.Rank = rank
			s.Fitness = utilities[best][w]
			front = append(front, s)
		}
		fronts = append(fronts, front)
	}
	return fronts
}
