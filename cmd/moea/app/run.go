/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/moea/pkg/algorithms"
	"github.com/mihai-snyk/moea/pkg/benchmarks"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/indicators"
	"github.com/mihai-snyk/moea/pkg/util"
)

// NewRunCommand creates the run subcommand.
func NewRunCommand(out io.Writer) *cobra.Command {
	o := NewRunOptions()
	cmd := &cobra.Command{
		Use:   "run <algorithm> <problem> [referenceFront]",
		Short: "Run one algorithm on one benchmark problem",
		Long: fmt.Sprintf(`Run evolves a population on the problem and writes VAR.csv and FUN.csv to a
new directory under --output-dir. When a reference front file is given the
IGD and, for 2 objectives, the hypervolume of the result are printed.

Algorithms: %v
Problems:   %v`, algorithms.Kinds(), benchmarks.Names()),
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			var referenceFront string
			if len(args) == 3 {
				referenceFront = args[2]
			}
			return o.Run(ctx, args[0], args[1], referenceFront, out)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// Run executes one run. Nothing is written to OutputDir unless the run and
// the indicator computation succeed.
func (o *RunOptions) Run(ctx context.Context, algorithm, problemName, referenceFront string, out io.Writer) error {
	spec, err := o.RunSpec(algorithm, problemName)
	if err != nil {
		return err
	}
	problem, err := benchmarks.Lookup(spec.Problem)
	if err != nil {
		return err
	}

	var reference []framework.ObjectiveSpacePoint
	if referenceFront != "" {
		if reference, err = util.ReadFront(referenceFront); err != nil {
			return err
		}
	}

	cfg, err := spec.ToConfig(benchmarks.NumberOfVariables(problem))
	if err != nil {
		return err
	}
	if len(problem.Constraints()) > 0 {
		cfg.Constrained = true
	}
	if op, ok := problem.(benchmarks.OperatorProvider); ok {
		cfg.Crossover, cfg.Mutation = op.Operators()
	}

	if o.OTLPEndpoint != "" {
		flush, err := setupTracing(ctx, o.OTLPEndpoint)
		if err != nil {
			return err
		}
		defer flush()
	}
	if o.MetricsAddr != "" {
		stopMetrics, err := startMetricsServer(o.MetricsAddr)
		if err != nil {
			return err
		}
		defer stopMetrics()
	}

	runner, err := algorithms.New(algorithms.Kind(spec.Algorithm), cfg, problem)
	if err != nil {
		return err
	}
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	klog.InfoS("Total execution time",
		"algorithm", runner.Name(),
		"problem", problem.Name(),
		"run", result.RunID,
		"elapsed", result.Elapsed,
		"evaluations", result.Evaluations,
		"stopReason", result.StopReason,
	)

	report, err := newReport(result, reference)
	if err != nil {
		return err
	}

	dir := filepath.Join(o.OutputDir, fmt.Sprintf("%s_%s_%s", problem.Name(), spec.Algorithm, result.RunID))
	if err := util.WriteResult(dir, result.Population); err != nil {
		return err
	}
	if o.Plot && framework.NumberOfObjectives(problem) == 2 {
		extra := []util.Series{
			{Name: "Reference Front", Points: reference, Symbol: "diamond", Size: 4},
			{Name: "Archive", Points: framework.Objectives(result.Archive), Symbol: "rect", Size: 5},
		}
		if err := util.PlotResults(filepath.Join(dir, "front.html"), result.ParetoFront(), problem, runner.Name(), extra...); err != nil {
			klog.ErrorS(err, "Failed to plot results", "problem", problem.Name())
		}
	}

	fmt.Fprintf(out, "Results written to %s\n", dir)
	report.print(out)
	return nil
}

// report holds the quality of a result against a reference front.
type report struct {
	front        int
	hasReference bool
	igd          float64
	hypervolume  float64
	hasHV        bool
}

func newReport(result *algorithms.Result, reference []framework.ObjectiveSpacePoint) (*report, error) {
	front := result.ParetoFront()
	r := &report{front: len(front)}
	if len(reference) == 0 {
		return r, nil
	}

	var err error
	if r.igd, err = indicators.IGD(front, reference); err != nil {
		return nil, err
	}
	r.hasReference = true
	if len(reference[0]) == 2 {
		if r.hypervolume, err = indicators.Hypervolume2D(front, indicators.NadirReference(reference, 0.1)); err != nil {
			return nil, err
		}
		r.hasHV = true
	}
	return r, nil
}

func (r *report) print(out io.Writer) {
	fmt.Fprintf(out, "Non-dominated solutions: %d\n", r.front)
	if r.hasReference {
		fmt.Fprintf(out, "IGD: %.6f\n", r.igd)
	}
	if r.hasHV {
		fmt.Fprintf(out, "Hypervolume: %.6f\n", r.hypervolume)
	}
}
