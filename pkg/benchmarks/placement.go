package benchmarks

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/operators"
	"github.com/mihai-snyk/moea/pkg/weights"
)

// coldStartBaseline is the cold start, in seconds, counted as a full
// disruption for one item.
const coldStartBaseline = 60.0

// Item is a workload with resource requests and its current bin.
type Item struct {
	CPU     float64 // millicores
	Mem     float64 // bytes
	Current int
	// ColdStart is the time, in seconds, the item needs to become ready
	// again after a move.
	ColdStart float64
	// Pinned items must stay on their current bin.
	Pinned bool
}

// Bin is a host with a capacity and an hourly cost paid while it holds at
// least one item.
type Bin struct {
	Name string
	CPU  float64
	Mem  float64
	Cost float64
}

// Placement reassigns items to bins minimizing three objectives: the cost
// of the bins in use, the imbalance of CPU and memory utilization across
// bins, and the disruption caused by moving items. Capacity overflows and
// moved pinned items are constraint violations.
type Placement struct {
	items   []Item
	bins    []Bin
	maxCost float64
}

// NewPlacement creates a placement problem. Every item's current bin must
// be a valid index into bins.
func NewPlacement(items []Item, bins []Bin) *Placement {
	p := &Placement{items: items, bins: bins}
	for _, b := range bins {
		p.maxCost += b.Cost
	}
	return p
}

// NewDefaultPlacement returns a reproducible instance: 24 items spread
// over 8 bins of three instance types.
func NewDefaultPlacement() *Placement {
	const gib = 1 << 30
	var bins []Bin
	for _, t := range []struct {
		name     string
		count    int
		cpu, mem float64
		cost     float64
	}{
		{"m5.large", 3, 2000, 8 * gib, 0.124},
		{"c5.xlarge", 2, 4000, 8 * gib, 0.214},
		{"t3.medium", 3, 2000, 4 * gib, 0.0544},
	} {
		for i := 0; i < t.count; i++ {
			bins = append(bins, Bin{Name: t.name, CPU: t.cpu, Mem: t.mem, Cost: t.cost})
		}
	}

	rng := rand.New(rand.NewSource(42))
	items := make([]Item, 24)
	for i := range items {
		items[i] = Item{
			CPU:       float64(100 + 50*rng.Intn(10)),
			Mem:       float64(128+64*rng.Intn(16)) * (1 << 20),
			Current:   i % len(bins),
			ColdStart: float64(5 + rng.Intn(40)),
			Pinned:    i%8 == 0,
		}
	}
	return NewPlacement(items, bins)
}

func (p *Placement) Name() string {
	return "Placement"
}

func (p *Placement) NumberOfVariables() int {
	return len(p.items)
}

func (p *Placement) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		func(x framework.Variables) float64 { return p.cost(assignment(x)) },
		func(x framework.Variables) float64 { return p.imbalance(assignment(x)) },
		func(x framework.Variables) float64 { return p.disruption(assignment(x)) },
	}
}

func (p *Placement) Constraints() []framework.Constraint {
	return []framework.Constraint{
		func(x framework.Variables) float64 { return p.overflow(assignment(x)) },
		func(x framework.Variables) float64 { return p.pinnedMoves(assignment(x)) },
	}
}

var _ OperatorProvider = &Placement{}

// Operators returns the variation operators suited to the integer
// encoding of the problem.
func (p *Placement) Operators() (operators.Crossover, operators.Mutation) {
	return &operators.IntegerCrossover{Kind: operators.Grouped, Probability: 0.9},
		&operators.RandomResetMutation{Probability: 1.0 / float64(max(len(p.items), 1))}
}

func (p *Placement) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}

func assignment(x framework.Variables) []int {
	return x.(*framework.IntegerVariables).Values
}

func (p *Placement) bounds() []framework.IntBounds {
	b := make([]framework.IntBounds, len(p.items))
	for i := range b {
		b[i] = framework.IntBounds{L: 0, H: len(p.bins) - 1}
	}
	return b
}

// cost is the hourly cost of the bins in use over the cost of all bins.
// Unassigned items (-1) are ignored.
func (p *Placement) cost(a []int) float64 {
	if p.maxCost == 0 {
		return 0
	}
	used := make([]bool, len(p.bins))
	total := 0.0
	for _, b := range a {
		if b >= 0 && !used[b] {
			used[b] = true
			total += p.bins[b].Cost
		}
	}
	return total / p.maxCost
}

// usage returns the CPU and memory requested on every bin.
func (p *Placement) usage(a []int) (cpu, mem []float64) {
	cpu = make([]float64, len(p.bins))
	mem = make([]float64, len(p.bins))
	for i, b := range a {
		if b < 0 {
			continue
		}
		cpu[b] += p.items[i].CPU
		mem[b] += p.items[i].Mem
	}
	return cpu, mem
}

// imbalance averages the population standard deviations of the CPU and
// memory utilization percentages, each normalized by 50.
func (p *Placement) imbalance(a []int) float64 {
	cpu, mem := p.usage(a)
	for i, b := range p.bins {
		cpu[i] = 100 * cpu[i] / b.CPU
		mem[i] = 100 * mem[i] / b.Mem
	}
	_, cpuStd := stat.PopMeanStdDev(cpu, nil)
	_, memStd := stat.PopMeanStdDev(mem, nil)
	return 0.5*cpuStd/50 + 0.5*memStd/50
}

// disruption weighs the share of moved items and their cold start equally.
func (p *Placement) disruption(a []int) float64 {
	if len(p.items) == 0 {
		return 0
	}
	moved := 0
	coldStart := 0.0
	for i, b := range a {
		if b >= 0 && b != p.items[i].Current {
			moved++
			coldStart += p.items[i].ColdStart
		}
	}
	n := float64(len(p.items))
	return 0.5*float64(moved)/n + 0.5*math.Min(1, coldStart/(coldStartBaseline*n))
}

// overflow sums, over every bin, the relative excess of CPU and memory.
func (p *Placement) overflow(a []int) float64 {
	cpu, mem := p.usage(a)
	v := 0.0
	for i, b := range p.bins {
		v += math.Max(0, cpu[i]/b.CPU-1) + math.Max(0, mem[i]/b.Mem-1)
	}
	return v
}

func (p *Placement) pinnedMoves(a []int) float64 {
	v := 0.0
	for i, b := range a {
		if p.items[i].Pinned && b != p.items[i].Current {
			v++
		}
	}
	return v
}

// Initialize seeds the population with the current placement, then builds
// greedy placements for weights sweeping from cost to balance. Each greedy
// construction places the largest items first, with a random jitter on the
// size so that equal weights still yield different placements.
func (p *Placement) Initialize(popSize int, rng *rand.Rand) []framework.Variables {
	if popSize < 1 {
		return nil
	}
	out := make([]framework.Variables, 0, popSize)

	current := make([]int, len(p.items))
	for i, it := range p.items {
		current[i] = it.Current
	}
	out = append(out, framework.NewIntegerVariables(current, p.bounds()))
	if popSize == 1 {
		return out
	}

	w, err := weights.Lattice{}.Weights(2, popSize-1)
	if err != nil {
		// unreachable: any positive count has a 2-objective lattice
		panic(err)
	}
	for _, v := range w {
		out = append(out, framework.NewIntegerVariables(p.construct(v, rng), p.bounds()))
	}
	return out
}

// construct places the items one by one on the bin minimizing the weighted
// sum of cost and imbalance among the bins that still fit them. Pinned items
// stay where they are. Items that fit nowhere go to their current bin.
func (p *Placement) construct(w []float64, rng *rand.Rand) []int {
	a := make([]int, len(p.items))
	for i := range a {
		a[i] = -1
	}

	type sized struct {
		index int
		size  float64
	}
	order := make([]sized, 0, len(p.items))
	for i, it := range p.items {
		if it.Pinned {
			a[i] = it.Current
			continue
		}
		size := it.CPU/1000 + it.Mem/(1<<30)
		order = append(order, sized{index: i, size: size * (0.8 + 0.4*rng.Float64())})
	}
	sort.Slice(order, func(i, j int) bool { return order[i].size > order[j].size })

	cpu, mem := p.usage(a)
	for _, o := range order {
		it := p.items[o.index]
		best, bestScore := -1, math.Inf(1)
		for b, bin := range p.bins {
			if cpu[b]+it.CPU > bin.CPU || mem[b]+it.Mem > bin.Mem {
				continue
			}
			a[o.index] = b
			if score := w[0]*p.cost(a) + w[1]*p.imbalance(a); score < bestScore {
				best, bestScore = b, score
			}
		}
		if best < 0 {
			best = it.Current
		}
		a[o.index] = best
		cpu[best] += it.CPU
		mem[best] += it.Mem
	}
	return a
}
