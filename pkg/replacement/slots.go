package replacement

import (
	"sync"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// Slots is a fixed-size population indexed by subproblem. Solutions stored
// in a slot are never modified in place; a replacement swaps the pointer.
type Slots interface {
	Len() int
	// At returns the solution currently held by slot k.
	At(k int) *framework.Solution
	// Update calls try with the incumbent of slot k and stores the returned
	// solution unless it is nil. The read and the write are atomic with
	// respect to other Update calls on the same slot.
	Update(k int, try func(incumbent *framework.Solution) *framework.Solution) bool
}

// Population is an unsynchronized Slots for single-threaded loops.
type Population []*framework.Solution

var _ Slots = Population(nil)

func (p Population) Len() int                     { return len(p) }
func (p Population) At(k int) *framework.Solution { return p[k] }

func (p Population) Update(k int, try func(*framework.Solution) *framework.Solution) bool {
	if s := try(p[k]); s != nil {
		p[k] = s
		return true
	}
	return false
}

// LockedPopulation guards every slot with its own mutex so that workers
// owning different subproblems only contend on the slot they touch.
type LockedPopulation struct {
	slots []*framework.Solution
	locks []sync.Mutex
}

var _ Slots = &LockedPopulation{}

// NewLockedPopulation takes ownership of pop.
func NewLockedPopulation(pop []*framework.Solution) *LockedPopulation {
	return &LockedPopulation{
		slots: pop,
		locks: make([]sync.Mutex, len(pop)),
	}
}

func (p *LockedPopulation) Len() int { return len(p.slots) }

func (p *LockedPopulation) At(k int) *framework.Solution {
	p.locks[k].Lock()
	defer p.locks[k].Unlock()
	return p.slots[k]
}

func (p *LockedPopulation) Update(k int, try func(*framework.Solution) *framework.Solution) bool {
	p.locks[k].Lock()
	defer p.locks[k].Unlock()
	if s := try(p.slots[k]); s != nil {
		p.slots[k] = s
		return true
	}
	return false
}

// Snapshot returns the current content of every slot.
func (p *LockedPopulation) Snapshot() []*framework.Solution {
	out := make([]*framework.Solution, len(p.slots))
	for k := range p.slots {
		out[k] = p.At(k)
	}
	return out
}
