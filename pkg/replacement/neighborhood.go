package replacement

import (
	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/scalarize"
)

// Neighborhood is the MOEA/D update: an offspring takes over every
// subproblem of its mating scope whose incumbent it beats on that
// subproblem's scalarized fitness, at most MaxReplaced times.
type Neighborhood struct {
	Scalarize scalarize.Func
	// Weights[k] defines subproblem k.
	Weights [][]float64
	// MaxReplaced is nr, the replacement bound per offspring.
	MaxReplaced int
	// Threshold, when set, orders incumbent and offspring by constraint
	// violation whenever either exceeds the threshold.
	Threshold *dominance.ViolationThreshold
}

// Update offers offspring to the subproblems listed in scope, visited in a
// random order, and returns how many slots now hold a copy of it. The
// arguments are validated before any slot is touched.
func (r *Neighborhood) Update(slots Slots, offspring *framework.Solution, scope []int, ideal []float64, rng *rand.Rand) (int, error) {
	if r.MaxReplaced < 1 {
		return 0, framework.InvalidConfigf("maximum replacements must be at least 1, got %d", r.MaxReplaced)
	}
	if len(r.Weights) != slots.Len() {
		return 0, framework.DimensionMismatchf("%d weight vectors for %d subproblems", len(r.Weights), slots.Len())
	}
	m := len(ideal)
	if len(offspring.Objectives) != m {
		return 0, framework.DimensionMismatchf("offspring has %d objectives, ideal point has %d", len(offspring.Objectives), m)
	}
	for _, k := range scope {
		if k < 0 || k >= slots.Len() {
			return 0, framework.InvalidConfigf("subproblem %d out of range [0, %d)", k, slots.Len())
		}
		if len(r.Weights[k]) != m {
			return 0, framework.DimensionMismatchf("weight vector %d has %d components, want %d", k, len(r.Weights[k]), m)
		}
	}

	replaced := 0
	for _, p := range rng.Perm(len(scope)) {
		if replaced >= r.MaxReplaced {
			break
		}
		k := scope[p]
		if slots.Update(k, func(incumbent *framework.Solution) *framework.Solution {
			return r.challenge(incumbent, offspring, r.Weights[k], ideal)
		}) {
			replaced++
		}
	}
	return replaced, nil
}

// challenge returns the copy of offspring that should replace incumbent, or
// nil if incumbent stays.
func (r *Neighborhood) challenge(incumbent, offspring *framework.Solution, w, ideal []float64) *framework.Solution {
	if r.Threshold != nil && r.Threshold.NeedToCompare(incumbent, offspring) {
		switch r.Threshold.Compare(incumbent, offspring) {
		case -1:
			return nil
		case 1:
			c := offspring.Copy()
			c.Fitness = r.Scalarize.Evaluate(c.Objectives, w, ideal)
			return c
		}
		// equal violations fall back to the scalarized fitness
	}

	current := r.Scalarize.Evaluate(incumbent.Objectives, w, ideal)
	candidate := r.Scalarize.Evaluate(offspring.Objectives, w, ideal)
	if candidate < current {
		c := offspring.Copy()
		c.Fitness = candidate
		return c
	}
	return nil
}
