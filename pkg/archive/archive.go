// Package archive keeps a bounded set of mutually non-dominated solutions
// found during a run, independently of the working population.
package archive

import (
	"sync"

	"github.com/mihai-snyk/moea/pkg/crowding"
	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
)

// CrowdingArchive holds at most MaxSize non-dominated solutions. When it
// overflows, the member with the smallest crowding distance is evicted.
type CrowdingArchive struct {
	mu        sync.RWMutex
	members   []*framework.Solution
	maxSize   int
	compare   dominance.Comparator
	estimator crowding.DensityEstimator
}

// NewCrowdingArchive returns an empty archive. Constrained archives order
// candidates by constraint violation before Pareto dominance.
func NewCrowdingArchive(maxSize int, constrained bool) (*CrowdingArchive, error) {
	if maxSize < 1 {
		return nil, framework.InvalidConfigf("archive size must be positive, got %d", maxSize)
	}
	compare := dominance.Pareto
	if constrained {
		compare = dominance.Constrained
	}
	return &CrowdingArchive{
		members:   make([]*framework.Solution, 0, maxSize+1),
		maxSize:   maxSize,
		compare:   compare,
		estimator: crowding.Estimator{},
	}, nil
}

// Add offers a copy of candidate to the archive and reports whether it was
// kept. Dominated candidates and candidates whose objective vector is already
// archived are rejected; members dominated by the candidate are removed.
func (a *CrowdingArchive) Add(candidate *framework.Solution) bool {
	if candidate == nil {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	kept := make([]*framework.Solution, 0, len(a.members)+1)
	for _, existing := range a.members {
		switch a.compare(existing, candidate) {
		case -1:
			return false
		case 1:
			continue
		}
		if equalObjectives(existing.Objectives, candidate.Objectives) {
			return false
		}
		kept = append(kept, existing)
	}

	a.members = append(kept, candidate.Copy())
	if len(a.members) > a.maxSize {
		a.prune()
		// The candidate itself may have been the most crowded member.
		return a.contains(candidate)
	}
	return true
}

// AddAll offers every member of set and returns how many were kept.
func (a *CrowdingArchive) AddAll(set []*framework.Solution) int {
	n := 0
	for _, s := range set {
		if a.Add(s) {
			n++
		}
	}
	return n
}

// prune drops the most crowded member.
func (a *CrowdingArchive) prune() {
	a.estimator.Estimate(a.members)
	worst := 0
	for i, m := range a.members {
		if m.Distance < a.members[worst].Distance {
			worst = i
		}
	}
	a.members = append(a.members[:worst], a.members[worst+1:]...)
}

func (a *CrowdingArchive) contains(s *framework.Solution) bool {
	for _, m := range a.members {
		if equalObjectives(m.Objectives, s.Objectives) {
			return true
		}
	}
	return false
}

// Solutions returns copies of the archived solutions.
func (a *CrowdingArchive) Solutions() []*framework.Solution {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*framework.Solution, len(a.members))
	for i, m := range a.members {
		out[i] = m.Copy()
	}
	return out
}

// Size returns the number of archived solutions.
func (a *CrowdingArchive) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.members)
}

// MaxSize returns the capacity of the archive.
func (a *CrowdingArchive) MaxSize() int {
	return a.maxSize
}

func equalObjectives(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
