package dominance

import (
	"sync"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// ViolationThreshold compares solutions by constraint violation only when at
// least one of them violates the constraints by more than an adaptive
// threshold. The threshold is the mean violation of the infeasible members
// scaled by the feasible ratio of the population, so it shrinks as the
// population becomes feasible. It is safe for concurrent use.
type ViolationThreshold struct {
	mu        sync.RWMutex
	threshold float64
}

// Update recomputes the threshold from population.
func (v *ViolationThreshold) Update(population []*framework.Solution) {
	t := computeThreshold(population)
	v.mu.Lock()
	v.threshold = t
	v.mu.Unlock()
}

func computeThreshold(population []*framework.Solution) float64 {
	if len(population) == 0 {
		return 0
	}

	var (
		infeasible int
		total      float64
	)
	for _, s := range population {
		if !s.Feasible() {
			infeasible++
			total += s.Violation
		}
	}
	if infeasible == 0 {
		return 0
	}

	feasibleRatio := float64(len(population)-infeasible) / float64(len(population))
	return feasibleRatio * (total / float64(infeasible))
}

// Threshold returns the current threshold.
func (v *ViolationThreshold) Threshold() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.threshold
}

// NeedToCompare reports whether a and b must be ordered by violation before
// any other criterion is consulted.
func (v *ViolationThreshold) NeedToCompare(a, b *framework.Solution) bool {
	t := v.Threshold()
	return a.Violation > t || b.Violation > t
}

// Compare orders a and b by violation, or returns 0 if neither exceeds the threshold.
func (v *ViolationThreshold) Compare(a, b *framework.Solution) int {
	if !v.NeedToCompare(a, b) {
		return 0
	}
	return CompareViolation(a, b)
}
