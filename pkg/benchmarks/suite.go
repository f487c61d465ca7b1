package benchmarks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/mihai-snyk/moea/pkg/algorithms"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/indicators"
	"github.com/mihai-snyk/moea/pkg/util"
)

// referenceFrontSize is the number of points sampled from known true fronts.
const referenceFrontSize = 500

// ConfigFunc returns the configuration used to run kind on problem.
type ConfigFunc func(kind algorithms.Kind, problem framework.Problem) algorithms.Config

// Report summarizes one run of the suite. IGD is only set when
// HasReference is, Hypervolume only for 2-objective problems.
type Report struct {
	Problem      string
	Algorithm    algorithms.Kind
	Result       *algorithms.Result
	FrontSize    int
	HasReference bool
	IGD          float64
	Hypervolume  float64
}

// TestSuite runs a set of benchmark problems
type TestSuite struct {
	problems  []framework.Problem
	kinds     []algorithms.Kind
	configure ConfigFunc
}

// NewTestSuite creates a new benchmark test suite running every kind on
// every problem.
func NewTestSuite(configure ConfigFunc, kinds ...algorithms.Kind) *TestSuite {
	if len(kinds) == 0 {
		kinds = []algorithms.Kind{algorithms.NSGAIIKind}
	}
	return &TestSuite{
		configure: configure,
		kinds:     kinds,
	}
}

// AddProblem adds a problem to the test suite
func (ts *TestSuite) AddProblem(p framework.Problem) {
	ts.problems = append(ts.problems, p)
}

// AddStandardProblems adds common benchmark problems
func (ts *TestSuite) AddStandardProblems() {
	// ZDT problems with 30 variables (standard)
	ts.AddProblem(NewZDT1(30))
	ts.AddProblem(NewZDT2(30))
	ts.AddProblem(NewZDT3(30))

	// 2 objectives, 6 variables (M + k - 1, where k=5 for DTLZ1)
	ts.AddProblem(NewDTLZ1(6, 2))
	// 2 objectives, 11 variables (M + k - 1, where k=10 for DTLZ2)
	ts.AddProblem(NewDTLZ2(11, 2))

	// 3 objectives versions
	ts.AddProblem(NewDTLZ1(7, 3))
	ts.AddProblem(NewDTLZ2(12, 3))

	ts.AddProblem(NewSrinivas())
}

// Run executes every algorithm on every problem. When outputDir is not
// empty the fronts are written there, with a plot for 2-objective problems.
func (ts *TestSuite) Run(ctx context.Context, outputDir string) ([]Report, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var reports []Report
	for _, problem := range ts.problems {
		for _, kind := range ts.kinds {
			report, err := ts.runOne(ctx, kind, problem, outputDir)
			if err != nil {
				return reports, fmt.Errorf("%s on %s: %w", kind, problem.Name(), err)
			}
			reports = append(reports, report)
		}
	}
	return reports, nil
}

func (ts *TestSuite) runOne(ctx context.Context, kind algorithms.Kind, problem framework.Problem, outputDir string) (Report, error) {
	klog.V(2).InfoS("Running benchmark", "algorithm", kind, "problem", problem.Name())

	runner, err := algorithms.New(kind, ts.configure(kind, problem), problem)
	if err != nil {
		return Report{}, err
	}
	result, err := runner.Run(ctx)
	if err != nil {
		return Report{}, err
	}

	paretoFront := result.ParetoFront()
	report := Report{
		Problem:   problem.Name(),
		Algorithm: kind,
		Result:    result,
		FrontSize: len(paretoFront),
	}

	if trueFront := problem.TrueParetoFront(referenceFrontSize); len(trueFront) > 0 {
		if report.IGD, err = indicators.IGD(paretoFront, trueFront); err != nil {
			return report, err
		}
		report.HasReference = true
	}
	if framework.NumberOfObjectives(problem) == 2 {
		if report.Hypervolume, err = indicators.Hypervolume2D(paretoFront, hypervolumeReference(problem)); err != nil {
			return report, err
		}
	}
	klog.V(2).InfoS("Benchmark finished",
		"algorithm", kind,
		"problem", problem.Name(),
		"front", report.FrontSize,
		"igd", report.IGD,
		"hypervolume", report.Hypervolume,
	)

	if outputDir == "" {
		return report, nil
	}
	dir := filepath.Join(outputDir, fmt.Sprintf("%s_%s", problem.Name(), kind))
	if err := util.WriteResult(dir, result.Population); err != nil {
		return report, err
	}
	if framework.NumberOfObjectives(problem) == 2 {
		if err := util.PlotResults(filepath.Join(dir, "front.html"), paretoFront, problem, runner.Name()); err != nil {
			klog.ErrorS(err, "Failed to plot results", "problem", problem.Name())
		}
	}
	return report, nil
}

// hypervolumeReference is slightly beyond the nadir of the true front, or
// (1.1, 1.1) when the front is unknown.
func hypervolumeReference(problem framework.Problem) []float64 {
	front := problem.TrueParetoFront(referenceFrontSize)
	if len(front) == 0 {
		return []float64{1.1, 1.1}
	}
	return indicators.NadirReference(front, 0.1)
}
