package algorithms_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/validation/field"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/mihai-snyk/moea/pkg/algorithms"
	"github.com/mihai-snyk/moea/pkg/benchmarks"
	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/indicators"
	"github.com/mihai-snyk/moea/pkg/operators"
)

// hookedProblem calls hook once per evaluation.
type hookedProblem struct {
	framework.Problem
	hook func()
}

func (p *hookedProblem) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := p.Problem.ObjectiveFuncs()
	first := funcs[0]
	funcs[0] = func(x framework.Variables) float64 {
		p.hook()
		return first(x)
	}
	return funcs
}

func nsgaConfig(popSize, evaluations int) algorithms.Config {
	cfg := algorithms.DefaultConfig(algorithms.NSGAIIKind, 30)
	cfg.PopulationSize = popSize
	cfg.MaxEvaluations = evaluations
	return cfg
}

func requireNonDominated(t *testing.T, front []framework.ObjectiveSpacePoint) {
	t.Helper()
	for i := range front {
		for j := range front {
			if i != j && dominance.Dominates(front[i], front[j]) {
				t.Fatalf("front member %v dominates %v", front[i], front[j])
			}
		}
	}
}

// Test problem: ZDT1 benchmark function
func TestNSGAIIWithZDT1(t *testing.T) {
	zdt1 := benchmarks.NewZDT1(30)
	cfg := nsgaConfig(40, 4000)

	nsga, err := algorithms.NewNSGAII(cfg, zdt1)
	require.NoError(t, err)
	result, err := nsga.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Population, cfg.PopulationSize)
	assert.Equal(t, cfg.MaxEvaluations, result.Evaluations)
	assert.Equal(t, algorithms.StopMaxEvaluations, result.StopReason)
	assert.Equal(t, 99, result.Iterations)
	assert.NotEmpty(t, result.RunID)

	front := result.ParetoFront()
	require.NotEmpty(t, front)
	requireNonDominated(t, front)

	for _, s := range result.Population {
		assert.Len(t, s.Objectives, 2)
		for _, v := range s.Variables.(*framework.RealVariables).Values {
			assert.True(t, v >= 0 && v <= 1, "variable %v outside the bounds", v)
		}
	}
}

func TestNSGAIIConvergesOnZDT1(t *testing.T) {
	zdt1 := benchmarks.NewZDT1(10)
	cfg := algorithms.DefaultConfig(algorithms.NSGAIIKind, 10)
	cfg.PopulationSize = 100
	cfg.MaxEvaluations = 10000

	nsga, err := algorithms.NewNSGAII(cfg, zdt1)
	require.NoError(t, err)
	result, err := nsga.Run(context.Background())
	require.NoError(t, err)

	igd, err := indicators.IGD(result.ParetoFront(), zdt1.TrueParetoFront(500))
	require.NoError(t, err)
	t.Logf("IGD = %.6f", igd)
	assert.Less(t, igd, 0.05)
}

func TestNSGAIIIsReproducible(t *testing.T) {
	run := func() [][]float64 {
		nsga, err := algorithms.NewNSGAII(nsgaConfig(20, 600), benchmarks.NewZDT2(10))
		require.NoError(t, err)
		result, err := nsga.Run(context.Background())
		require.NoError(t, err)
		out := make([][]float64, len(result.Population))
		for i, s := range result.Population {
			out[i] = s.Objectives
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestNSGAIIBudgetNotMultipleOfPopulation(t *testing.T) {
	nsga, err := algorithms.NewNSGAII(nsgaConfig(20, 130), benchmarks.NewZDT1(10))
	require.NoError(t, err)
	result, err := nsga.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 130, result.Evaluations)
	assert.Len(t, result.Population, 20)
}

func TestNSGAIISteadyState(t *testing.T) {
	cfg := nsgaConfig(20, 300)
	cfg.SteadyState = true
	nsga, err := algorithms.NewNSGAII(cfg, benchmarks.NewZDT1(10))
	require.NoError(t, err)
	result, err := nsga.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 300, result.Evaluations)
	assert.Equal(t, 280, result.Iterations)
	assert.Len(t, result.Population, 20)
}

func TestNSGAIIParallelEvaluation(t *testing.T) {
	cfg := nsgaConfig(20, 400)
	cfg.EvaluationWorkers = 4
	nsga, err := algorithms.NewNSGAII(cfg, benchmarks.NewZDT1(10))
	require.NoError(t, err)
	result, err := nsga.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 400, result.Evaluations)
	for _, s := range result.Population {
		assert.Len(t, s.Objectives, 2)
	}
}

func TestNSGAIIConstrained(t *testing.T) {
	cfg := algorithms.DefaultConfig(algorithms.NSGAIIKind, 2)
	cfg.PopulationSize = 40
	cfg.MaxEvaluations = 2000
	cfg.Constrained = true
	nsga, err := algorithms.NewNSGAII(cfg, benchmarks.NewSrinivas())
	require.NoError(t, err)
	result, err := nsga.Run(context.Background())
	require.NoError(t, err)

	feasible := 0
	for _, s := range result.Population {
		if s.Feasible() {
			feasible++
		}
	}
	require.Positive(t, feasible)
	for _, s := range result.Population {
		if s.Rank == 0 {
			assert.True(t, s.Feasible(), "infeasible solution %v in the first front", s.Objectives)
		}
	}
}

func TestNSGAIIEpsilonDominanceAndRandomSelection(t *testing.T) {
	for _, constrained := range []bool{false, true} {
		cfg := algorithms.DefaultConfig(algorithms.NSGAIIKind, 2)
		cfg.PopulationSize = 20
		cfg.MaxEvaluations = 600
		cfg.Epsilon = 0.05
		cfg.Constrained = constrained
		cfg.Selection = operators.RandomSelection{}

		nsga, err := algorithms.NewNSGAII(cfg, benchmarks.NewSrinivas())
		require.NoError(t, err)
		result, err := nsga.Run(context.Background())
		require.NoError(t, err)

		assert.Len(t, result.Population, 20)
		assert.Equal(t, 600, result.Evaluations)
		eps := dominance.WithEpsilon(cfg.Epsilon)
		for _, a := range result.Population {
			for _, b := range result.Population {
				if a.Rank == 0 && b.Rank == 0 && a.Violation == b.Violation {
					assert.Zero(t, eps(a, b), "rank 0 members %v and %v", a.Objectives, b.Objectives)
				}
			}
		}
	}
}

func TestWASFGA(t *testing.T) {
	cfg := algorithms.DefaultConfig(algorithms.WASFGAKind, 10)
	cfg.PopulationSize = 20
	cfg.MaxEvaluations = 600

	runner, err := algorithms.New(algorithms.WASFGAKind, cfg, benchmarks.NewZDT1(10))
	require.NoError(t, err)
	assert.Equal(t, "WASF-GA", runner.Name())

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, algorithms.WASFGAKind, result.Algorithm)
	assert.Len(t, result.Population, 20)
	assert.Equal(t, 600, result.Evaluations)

	// Every weight vector claims one solution per front and there are as
	// many weights as survivors, so the survivors form a single front.
	for _, s := range result.Population {
		assert.Equal(t, 0, s.Rank)
	}
}

func TestWASFGARejectsBadReferencePoint(t *testing.T) {
	cfg := algorithms.DefaultConfig(algorithms.WASFGAKind, 10)
	cfg.ReferencePoint = []float64{0, 0, 0}
	_, err := algorithms.NewNSGAII(cfg, benchmarks.NewZDT1(10))
	assert.ErrorIs(t, err, framework.ErrDimensionMismatch)
}

func TestNSGAIIArchive(t *testing.T) {
	cfg := nsgaConfig(20, 1000)
	cfg.ArchiveSize = 15
	nsga, err := algorithms.NewNSGAII(cfg, benchmarks.NewZDT1(10))
	require.NoError(t, err)
	result, err := nsga.Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, result.Archive)
	assert.LessOrEqual(t, len(result.Archive), 15)
	requireNonDominated(t, algorithms.GetParetoFront(result.Archive))
	assert.Len(t, algorithms.GetParetoFront(result.Archive), len(result.Archive))
}

func TestNSGAIICancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evaluations := 0
	problem := &hookedProblem{Problem: benchmarks.NewZDT1(10), hook: func() {
		evaluations++
		if evaluations == 150 {
			cancel()
		}
	}}

	nsga, err := algorithms.NewNSGAII(nsgaConfig(20, 10000), problem)
	require.NoError(t, err)
	result, err := nsga.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, algorithms.StopCanceled, result.StopReason)
	// The generation interrupted at 150 is discarded.
	assert.Equal(t, 140, result.Evaluations)
	assert.Len(t, result.Population, 20)
}

func TestNSGAIIDeadline(t *testing.T) {
	clock := clocktesting.NewFakeClock(time.Now())
	problem := &hookedProblem{Problem: benchmarks.NewZDT1(10), hook: func() { clock.Step(time.Second) }}

	cfg := nsgaConfig(10, 10000)
	cfg.Deadline = 30 * time.Second
	cfg.Clock = clock
	nsga, err := algorithms.NewNSGAII(cfg, problem)
	require.NoError(t, err)
	result, err := nsga.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, algorithms.StopDeadline, result.StopReason)
	assert.Equal(t, 30, result.Evaluations)
	assert.Equal(t, 30*time.Second, result.Elapsed)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		kind   algorithms.Kind
		mutate func(*algorithms.Config)
		field  string
	}{
		{"population size", algorithms.NSGAIIKind, func(c *algorithms.Config) { c.PopulationSize = 0 }, "spec.populationSize"},
		{"budget below population", algorithms.NSGAIIKind, func(c *algorithms.Config) { c.MaxEvaluations = 10 }, "spec.maxEvaluations"},
		{"negative deadline", algorithms.NSGAIIKind, func(c *algorithms.Config) { c.Deadline = -time.Second }, "spec.deadline"},
		{"missing crossover", algorithms.NSGAIIKind, func(c *algorithms.Config) { c.Crossover = nil }, "spec.crossover"},
		{"unknown ranking", algorithms.NSGAIIKind, func(c *algorithms.Config) { c.Ranking = "lexicographic" }, "spec.ranking"},
		{"workers on NSGA-II", algorithms.NSGAIIKind, func(c *algorithms.Config) { c.Workers = 4 }, "spec.workers"},
		{"negative epsilon", algorithms.NSGAIIKind, func(c *algorithms.Config) { c.Epsilon = -1 }, "spec.epsilon"},
		{"epsilon on MOEA/D", algorithms.MOEADKind, func(c *algorithms.Config) { c.Epsilon = 0.1 }, "spec.epsilon"},
		{"neighbor size", algorithms.MOEADKind, func(c *algorithms.Config) { c.NeighborSize = 0 }, "spec.neighborSize"},
		{"neighbor size above population", algorithms.MOEADKind, func(c *algorithms.Config) { c.NeighborSize = 301 }, "spec.neighborSize"},
		{"max replaced", algorithms.MOEADKind, func(c *algorithms.Config) { c.MaxReplaced = 0 }, "spec.maxReplaced"},
		{"delta", algorithms.MOEADKind, func(c *algorithms.Config) { c.Delta = 1.5 }, "spec.delta"},
		{"scalarizing", algorithms.MOEADKind, func(c *algorithms.Config) { c.Scalarizing = "chebyshev" }, "spec.scalarizing"},
		{"steady state on MOEA/D", algorithms.MOEADKind, func(c *algorithms.Config) { c.SteadyState = true }, "spec.steadyState"},
		{"unknown algorithm", "spea2", func(c *algorithms.Config) {}, "spec.algorithm"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind := tc.kind
			if kind == "spea2" {
				kind = algorithms.NSGAIIKind
			}
			cfg := algorithms.DefaultConfig(kind, 30)
			tc.mutate(&cfg)

			errs := cfg.Validate(tc.kind, field.NewPath("spec"))
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tc.field, errs[0].Field)
		})
	}

	for _, kind := range algorithms.Kinds() {
		cfg := algorithms.DefaultConfig(kind, 30)
		assert.Empty(t, cfg.Validate(kind, field.NewPath("spec")), "default %s config", kind)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := nsgaConfig(0, 100)
	_, err := algorithms.NewNSGAII(cfg, benchmarks.NewZDT1(10))
	assert.True(t, errors.Is(err, framework.ErrInvalidConfig), "got %v", err)

	_, err = algorithms.New("spea2", nsgaConfig(10, 100), benchmarks.NewZDT1(10))
	assert.ErrorIs(t, err, framework.ErrInvalidConfig)
}
