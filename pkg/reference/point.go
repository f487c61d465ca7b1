// Package reference tracks the ideal and nadir points of a run.
package reference

import (
	"math"
	"sync"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// Point tracks the component-wise best (ideal) and worst (nadir) objective
// values seen so far. The ideal point starts at +Inf and never increases
// until Reset. All methods are safe for concurrent use.
type Point struct {
	mu    sync.RWMutex
	ideal []float64
	nadir []float64
	// best[m] is a copy of the solution that set ideal[m]
	best []*framework.Solution
}

// NewPoint returns a tracker for m objectives.
func NewPoint(m int) *Point {
	p := &Point{}
	p.reset(m)
	return p
}

func (p *Point) reset(m int) {
	p.ideal = make([]float64, m)
	p.nadir = make([]float64, m)
	p.best = make([]*framework.Solution, m)
	for i := range p.ideal {
		p.ideal[i] = math.Inf(1)
		p.nadir[i] = math.Inf(-1)
	}
}

// Reset forgets every observation. Only meant to be called at run start.
func (p *Point) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset(len(p.ideal))
}

// Update folds s into the tracked points and reports whether the ideal point
// moved.
func (p *Point) Update(s *framework.Solution) (bool, error) {
	if len(s.Objectives) != len(p.ideal) {
		return false, framework.DimensionMismatchf("solution has %d objectives, reference point has %d", len(s.Objectives), len(p.ideal))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	changed := false
	for m, v := range s.Objectives {
		if v < p.ideal[m] {
			p.ideal[m] = v
			p.best[m] = s.Copy()
			changed = true
		}
		if v > p.nadir[m] {
			p.nadir[m] = v
		}
	}
	return changed, nil
}

// UpdateAll calls Update for every member of set.
func (p *Point) UpdateAll(set []*framework.Solution) error {
	for _, s := range set {
		if _, err := p.Update(s); err != nil {
			return err
		}
	}
	return nil
}

// Ideal returns a copy of the ideal point.
func (p *Point) Ideal() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]float64, len(p.ideal))
	copy(out, p.ideal)
	return out
}

// Nadir returns a copy of the worst value observed per objective.
func (p *Point) Nadir() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]float64, len(p.nadir))
	copy(out, p.nadir)
	return out
}

// Best returns the solution that achieved the ideal value of objective m, or
// nil if nothing was observed yet.
func (p *Point) Best(m int) *framework.Solution {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if m < 0 || m >= len(p.best) || p.best[m] == nil {
		return nil
	}
	return p.best[m].Copy()
}

// Dimension is the number of objectives tracked.
func (p *Point) Dimension() int {
	return len(p.ideal)
}
