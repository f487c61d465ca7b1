package algorithms

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/moea/pkg/archive"
	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/metrics"
	"github.com/mihai-snyk/moea/pkg/operators"
	"github.com/mihai-snyk/moea/pkg/ranking"
	"github.com/mihai-snyk/moea/pkg/reference"
	"github.com/mihai-snyk/moea/pkg/replacement"
	"github.com/mihai-snyk/moea/pkg/scalarize"
	"github.com/mihai-snyk/moea/pkg/weights"
)

const tracerName = "github.com/mihai-snyk/moea/pkg/algorithms"

// NSGAII is the generational (or steady-state) NSGA-II driver. With
// Config.Ranking set to ASFRanking it ranks by achievement scalarizing
// utility as WASF-GA does.
type NSGAII struct {
	cfg     Config
	kind    Kind
	problem framework.Problem

	evaluator   framework.Evaluator
	replacement *replacement.RankingAndCrowding
	selection   operators.Selection
	// asf is nil unless the ASF ranking is on. Its Reference follows the
	// ideal point when no reference point is configured.
	asf *ranking.ASF
}

var _ framework.Algorithm = &NSGAII{}

// NewNSGAII validates cfg and prepares a driver for problem.
func NewNSGAII(cfg Config, problem framework.Problem) (*NSGAII, error) {
	kind := NSGAIIKind
	if cfg.Ranking == ASFRanking {
		kind = WASFGAKind
	}
	if err := cfg.validate(kind); err != nil {
		return nil, err
	}

	n := &NSGAII{
		cfg:         cfg,
		kind:        kind,
		problem:     problem,
		evaluator:   framework.NewEvaluator(problem, cfg.EvaluationWorkers),
		replacement: replacement.NewRankingAndCrowding(cfg.Constrained),
		selection:   cfg.Selection,
	}
	if n.selection == nil {
		n.selection = &operators.Tournament{Size: 2}
	}
	if cfg.Epsilon > 0 {
		compare := dominance.WithEpsilon(cfg.Epsilon)
		if cfg.Constrained {
			compare = dominance.ConstrainedBy(compare)
		}
		n.replacement.Ranking = &ranking.FastNonDominated{Comparator: compare}
	}

	if kind == WASFGAKind {
		asf, err := newASFRanking(&cfg, framework.NumberOfObjectives(problem))
		if err != nil {
			return nil, err
		}
		n.asf = asf
		n.replacement.Ranking = asf
	}
	return n, nil
}

func newASFRanking(cfg *Config, m int) (*ranking.ASF, error) {
	if len(cfg.ReferencePoint) > 0 && len(cfg.ReferencePoint) != m {
		return nil, framework.DimensionMismatchf("reference point has %d components, problem has %d objectives", len(cfg.ReferencePoint), m)
	}
	fn, err := scalarize.New(cfg.Scalarizing)
	if err != nil {
		return nil, err
	}
	w, err := cfg.Weights.Weights(m, cfg.PopulationSize)
	if err != nil {
		return nil, fmt.Errorf("loading asf weights: %w", err)
	}
	if positive(w) {
		w = weights.Invert(w, true)
	}
	return &ranking.ASF{
		Scalarize: fn,
		Weights:   w,
		Reference: cfg.ReferencePoint,
	}, nil
}

func positive(w [][]float64) bool {
	for _, vec := range w {
		for _, c := range vec {
			if c <= 0 {
				return false
			}
		}
	}
	return true
}

func (n *NSGAII) Name() string {
	if n.kind == WASFGAKind {
		return "WASF-GA"
	}
	return "NSGA-II"
}

// Run evolves the population until the evaluation budget, the deadline or
// ctx ends the run. Cancellation is not an error: the result holds the
// last complete population and StopCanceled. Run must not be called
// concurrently on the same driver.
func (n *NSGAII) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	labels := []string{string(n.kind), n.problem.Name()}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "NSGAII.Run", trace.WithAttributes(
		attribute.String("algorithm", string(n.kind)),
		attribute.String("problem", n.problem.Name()),
		attribute.String("run", runID),
	))
	defer span.End()

	term := newTermination(&n.cfg)
	rng := rand.New(rand.NewSource(n.cfg.Seed))
	m := framework.NumberOfObjectives(n.problem)
	ideal := reference.NewPoint(m)

	var arch *archive.CrowdingArchive
	if n.cfg.ArchiveSize > 0 {
		var err error
		if arch, err = archive.NewCrowdingArchive(n.cfg.ArchiveSize, n.cfg.Constrained); err != nil {
			return nil, err
		}
	}

	klog.V(2).InfoS("Starting run",
		"algorithm", n.Name(),
		"problem", n.problem.Name(),
		"run", runID,
		"populationSize", n.cfg.PopulationSize,
		"maxEvaluations", n.cfg.MaxEvaluations,
		"steadyState", n.cfg.SteadyState,
		"evaluationWorkers", n.cfg.EvaluationWorkers,
	)

	population, err := initialPopulation(ctx, n.problem, n.evaluator, n.cfg.PopulationSize, rng)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	evaluations := len(population)
	metrics.Evaluations.WithLabelValues(labels...).Add(float64(evaluations))
	if err := n.observe(population, ideal, arch); err != nil {
		return nil, err
	}
	// Rank the initial population so the tournament has something to compare.
	n.followIdeal(ideal)
	if population, err = n.replacement.Replace(population, nil, n.cfg.PopulationSize); err != nil {
		return nil, err
	}

	result := &Result{
		Algorithm: n.kind,
		Problem:   n.problem.Name(),
		RunID:     runID,
	}
	batch := n.cfg.PopulationSize
	if n.cfg.SteadyState {
		batch = 1
	}

	for {
		reason, stop := term.check(ctx, evaluations)
		if stop {
			result.StopReason = reason
			break
		}

		next, evaluated, err := n.generation(ctx, population, min(batch, term.remaining(evaluations)), ideal, arch, rng)
		if err != nil {
			if isCanceled(ctx, err) {
				result.StopReason = StopCanceled
				break
			}
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		population = next
		evaluations += evaluated
		result.Iterations++

		metrics.Evaluations.WithLabelValues(labels...).Add(float64(evaluated))
		metrics.Generations.WithLabelValues(labels...).Inc()
		first := 0
		for _, s := range population {
			if s.Rank == 0 {
				first++
			}
		}
		metrics.FirstFrontSize.WithLabelValues(labels...).Set(float64(first))
		if klogV := klog.V(4); klogV.Enabled() {
			klogV.InfoS("Generation completed",
				"generation", result.Iterations,
				"evaluations", evaluations,
				"firstFront", first,
				"ideal", ideal.Ideal(),
			)
		}
	}

	result.Population = population
	result.Evaluations = evaluations
	result.Elapsed = term.elapsed()
	if arch != nil {
		result.Archive = arch.Solutions()
	}
	metrics.RunDuration.WithLabelValues(labels...).Observe(result.Elapsed.Seconds())
	span.SetAttributes(
		attribute.Int("evaluations", result.Evaluations),
		attribute.String("stopReason", string(result.StopReason)),
	)

	klog.V(2).InfoS("Run finished",
		"algorithm", n.Name(),
		"problem", n.problem.Name(),
		"run", runID,
		"evaluations", result.Evaluations,
		"iterations", result.Iterations,
		"elapsed", result.Elapsed,
		"stopReason", result.StopReason,
	)
	return result, nil
}

// generation produces and evaluates size offspring and selects the next
// population. population is left untouched when an error is returned.
func (n *NSGAII) generation(ctx context.Context, population []*framework.Solution, size int, ideal *reference.Point, arch *archive.CrowdingArchive, rng *rand.Rand) ([]*framework.Solution, int, error) {
	var span trace.Span
	if !n.cfg.SteadyState {
		ctx, span = otel.Tracer(tracerName).Start(ctx, "NSGAII.generation")
		defer span.End()
	}

	m := framework.NumberOfObjectives(n.problem)
	offspring, err := reproduce(population, size, n.selection, n.cfg.Crossover, n.cfg.Mutation, m, rng)
	if err != nil {
		return nil, 0, err
	}
	if err := n.evaluator.Evaluate(ctx, offspring); err != nil {
		return nil, 0, err
	}
	if err := n.observe(offspring, ideal, arch); err != nil {
		return nil, 0, err
	}

	n.followIdeal(ideal)
	next, err := n.replacement.Replace(population, offspring, n.cfg.PopulationSize)
	if err != nil {
		return nil, 0, err
	}
	return next, len(offspring), nil
}

func (n *NSGAII) followIdeal(ideal *reference.Point) {
	if n.asf != nil && len(n.cfg.ReferencePoint) == 0 {
		n.asf.Reference = ideal.Ideal()
	}
}

// observe feeds freshly evaluated solutions to the ideal point and the archive.
func (n *NSGAII) observe(set []*framework.Solution, ideal *reference.Point, arch *archive.CrowdingArchive) error {
	if err := ideal.UpdateAll(set); err != nil {
		return err
	}
	if arch != nil {
		arch.AddAll(set)
		metrics.ArchiveSize.WithLabelValues(string(n.kind), n.problem.Name()).Set(float64(arch.Size()))
	}
	return nil
}
