package algorithms

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/moea/pkg/archive"
	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/metrics"
	"github.com/mihai-snyk/moea/pkg/operators"
	"github.com/mihai-snyk/moea/pkg/reference"
	"github.com/mihai-snyk/moea/pkg/replacement"
	"github.com/mihai-snyk/moea/pkg/scalarize"
	"github.com/mihai-snyk/moea/pkg/weights"
)

// MOEAD decomposes the problem into one scalar subproblem per weight vector
// and evolves them with neighborhood mating and replacement. With
// Config.Workers > 1 the subproblems are split into contiguous partitions,
// one per worker.
type MOEAD struct {
	cfg     Config
	problem framework.Problem
	m       int

	weights       [][]float64
	neighborhoods [][]int
	// all is the mating scope used when mating outside the neighborhood.
	all []int

	update    *replacement.Neighborhood
	threshold *dominance.ViolationThreshold
}

var _ framework.Algorithm = &MOEAD{}

// NewMOEAD validates cfg, loads the weight vectors and computes the
// neighborhoods. Nothing is evaluated yet.
func NewMOEAD(cfg Config, problem framework.Problem) (*MOEAD, error) {
	if err := cfg.validate(MOEADKind); err != nil {
		return nil, err
	}
	m := framework.NumberOfObjectives(problem)

	w, err := cfg.Weights.Weights(m, cfg.PopulationSize)
	if err != nil {
		return nil, fmt.Errorf("loading weights: %w", err)
	}
	if len(w) != cfg.PopulationSize {
		return nil, framework.InvalidConfigf("weight source returned %d vectors, want %d", len(w), cfg.PopulationSize)
	}
	neighborhoods, err := weights.Neighborhoods(w, cfg.NeighborSize)
	if err != nil {
		return nil, err
	}
	fn, err := scalarize.New(cfg.Scalarizing)
	if err != nil {
		return nil, err
	}

	d := &MOEAD{
		cfg:           cfg,
		problem:       problem,
		m:             m,
		weights:       w,
		neighborhoods: neighborhoods,
		all:           make([]int, cfg.PopulationSize),
		update: &replacement.Neighborhood{
			Scalarize:   fn,
			Weights:     w,
			MaxReplaced: cfg.MaxReplaced,
		},
	}
	for i := range d.all {
		d.all[i] = i
	}
	if cfg.Constrained {
		d.threshold = &dominance.ViolationThreshold{}
		d.update.Threshold = d.threshold
	}
	return d, nil
}

func (d *MOEAD) Name() string { return "MOEA/D" }

// Weights returns the weight vector of every subproblem.
func (d *MOEAD) Weights() [][]float64 { return d.weights }

// moeadRun holds the state shared by the workers of one run.
type moeadRun struct {
	labels      []string
	term        *termination
	ideal       *reference.Point
	archive     *archive.CrowdingArchive
	evaluations atomic.Int64
	replaced    atomic.Int64
}

// Run evolves the subproblems until the evaluation budget, the deadline or
// ctx ends the run. All workers have returned when Run returns.
func (d *MOEAD) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "MOEAD.Run", trace.WithAttributes(
		attribute.String("algorithm", string(MOEADKind)),
		attribute.String("problem", d.problem.Name()),
		attribute.String("run", runID),
		attribute.Int("workers", max(d.cfg.Workers, 1)),
	))
	defer span.End()

	r := &moeadRun{
		labels: []string{string(MOEADKind), d.problem.Name()},
		term:   newTermination(&d.cfg),
		ideal:  reference.NewPoint(d.m),
	}
	if d.cfg.ArchiveSize > 0 {
		var err error
		if r.archive, err = archive.NewCrowdingArchive(d.cfg.ArchiveSize, d.cfg.Constrained); err != nil {
			return nil, err
		}
	}

	klog.V(2).InfoS("Starting run",
		"algorithm", d.Name(),
		"problem", d.problem.Name(),
		"run", runID,
		"subproblems", d.cfg.PopulationSize,
		"neighborSize", d.cfg.NeighborSize,
		"maxReplaced", d.cfg.MaxReplaced,
		"scalarizing", d.cfg.Scalarizing,
		"workers", max(d.cfg.Workers, 1),
	)

	rng := rand.New(rand.NewSource(d.cfg.Seed))
	population, err := initialPopulation(ctx, d.problem, framework.NewEvaluator(d.problem, d.cfg.EvaluationWorkers), d.cfg.PopulationSize, rng)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := r.ideal.UpdateAll(population); err != nil {
		return nil, err
	}
	if r.archive != nil {
		r.archive.AddAll(population)
	}
	if d.threshold != nil {
		d.threshold.Update(population)
	}
	r.evaluations.Store(int64(len(population)))
	metrics.Evaluations.WithLabelValues(r.labels...).Add(float64(len(population)))

	var (
		final      []*framework.Solution
		iterations int
	)
	if d.cfg.Workers > 1 {
		final, iterations, err = d.runParallel(ctx, r, population)
	} else {
		final, iterations, err = d.runSequential(ctx, r, population, rng)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	evaluations := int(r.evaluations.Load())
	result := &Result{
		Algorithm:   MOEADKind,
		Problem:     d.problem.Name(),
		RunID:       runID,
		Population:  final,
		Evaluations: evaluations,
		Iterations:  iterations,
		Elapsed:     r.term.elapsed(),
	}
	result.StopReason, _ = r.term.check(ctx, evaluations)
	if result.StopReason == "" {
		// Only reachable with a clock that moved backwards.
		result.StopReason = StopDeadline
	}
	if r.archive != nil {
		result.Archive = r.archive.Solutions()
	}

	metrics.RunDuration.WithLabelValues(r.labels...).Observe(result.Elapsed.Seconds())
	span.SetAttributes(
		attribute.Int("evaluations", result.Evaluations),
		attribute.String("stopReason", string(result.StopReason)),
	)
	klog.V(2).InfoS("Run finished",
		"algorithm", d.Name(),
		"problem", d.problem.Name(),
		"run", runID,
		"evaluations", humanize.Comma(int64(result.Evaluations)),
		"replacements", humanize.Comma(r.replaced.Load()),
		"sweeps", result.Iterations,
		"elapsed", result.Elapsed,
		"stopReason", result.StopReason,
	)
	return result, nil
}

func (d *MOEAD) runSequential(ctx context.Context, r *moeadRun, population []*framework.Solution, rng *rand.Rand) ([]*framework.Solution, int, error) {
	slots := replacement.Population(population)
	sweeps := 0
	for {
		for _, i := range rng.Perm(slots.Len()) {
			if _, stop := r.term.check(ctx, int(r.evaluations.Load())); stop {
				return slots, sweeps, nil
			}
			r.evaluations.Add(1)
			if err := d.step(r, slots, i, rng); err != nil {
				return nil, sweeps, err
			}
		}
		sweeps++
		d.endSweep(r, slots, sweeps)
	}
}

// runParallel gives every worker a contiguous block of subproblems and its
// own generator. Workers share the slots, the ideal point, the archive and
// the evaluation counter. An evaluation is reserved on the counter before
// it happens so the budget is never exceeded.
func (d *MOEAD) runParallel(ctx context.Context, r *moeadRun, population []*framework.Solution) ([]*framework.Solution, int, error) {
	slots := replacement.NewLockedPopulation(population)
	workers := d.cfg.Workers
	n := slots.Len()
	maxEvaluations := int64(d.cfg.MaxEvaluations)

	var (
		ready  sync.WaitGroup
		sweeps atomic.Int64
	)
	ready.Add(workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*n/workers, (w+1)*n/workers
		rng := rand.New(rand.NewSource(d.cfg.Seed + uint64(w) + 1))
		g.Go(func() error {
			ready.Done()
			ready.Wait()
			klog.V(5).InfoS("Worker started", "worker", w, "from", lo, "to", hi)

			for {
				for _, p := range rng.Perm(hi - lo) {
					if _, stop := r.term.check(ctx, int(r.evaluations.Load())); stop {
						return nil
					}
					if r.evaluations.Add(1) > maxEvaluations {
						r.evaluations.Add(-1)
						return nil
					}
					if err := d.step(r, slots, lo+p, rng); err != nil {
						return fmt.Errorf("worker %d: %w", w, err)
					}
				}
				if w == 0 {
					d.endSweep(r, slots.Snapshot(), int(sweeps.Add(1)))
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, int(sweeps.Load()), err
	}
	return slots.Snapshot(), int(sweeps.Load()), nil
}

// step solves subproblem i once: mate inside the neighborhood (or the whole
// population), evaluate one child and offer it to the mating scope. The
// evaluation must already be counted.
func (d *MOEAD) step(r *moeadRun, slots replacement.Slots, i int, rng *rand.Rand) error {
	scope := d.all
	if rng.Float64() < d.cfg.Delta {
		scope = d.neighborhoods[i]
	}

	children, err := d.cfg.Crossover.Crossover(d.matingParents(slots, i, scope, rng), rng)
	if err != nil {
		return err
	}
	child := children[0]
	if err := d.cfg.Mutation.Mutate(child, rng); err != nil {
		return err
	}

	offspring := framework.NewSolution(child, d.m)
	framework.Evaluate(d.problem, offspring)
	metrics.Evaluations.WithLabelValues(r.labels...).Inc()

	if _, err := r.ideal.Update(offspring); err != nil {
		return err
	}
	replaced, err := d.update.Update(slots, offspring, scope, r.ideal.Ideal(), rng)
	if err != nil {
		return err
	}
	if replaced > 0 {
		r.replaced.Add(int64(replaced))
		metrics.Replacements.WithLabelValues(r.labels...).Add(float64(replaced))
	}
	if r.archive != nil {
		r.archive.Add(offspring)
	}
	return nil
}

// matingParents collects the parents of subproblem i from scope. Crossovers
// that build on the incumbent get it as their first parent.
func (d *MOEAD) matingParents(slots replacement.Slots, i int, scope []int, rng *rand.Rand) []framework.Variables {
	k := d.cfg.Crossover.NumberOfParents()
	parents := make([]framework.Variables, 0, k)

	skip := -1
	if sc, ok := d.cfg.Crossover.(operators.SubproblemCrossover); ok && sc.IncludesCurrent() {
		parents = append(parents, slots.At(i).Variables)
		skip = i
		k--
	}
	for _, idx := range operators.DistinctIndices(scope, k, skip, rng) {
		parents = append(parents, slots.At(idx).Variables)
	}
	return parents
}

// endSweep runs once every subproblem of a partition has been visited.
func (d *MOEAD) endSweep(r *moeadRun, population []*framework.Solution, sweep int) {
	if d.threshold != nil {
		d.threshold.Update(population)
	}
	metrics.Generations.WithLabelValues(r.labels...).Inc()
	if r.archive != nil {
		metrics.ArchiveSize.WithLabelValues(r.labels...).Set(float64(r.archive.Size()))
	}
	klog.V(4).InfoS("Sweep completed",
		"sweep", sweep,
		"evaluations", r.evaluations.Load(),
		"ideal", r.ideal.Ideal(),
		"nadir", r.ideal.Nadir(),
	)
}
