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
	"time"

	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/moea/pkg/api/v1alpha1"
)

// RunOptions holds the flags of the run command. Run settings given as
// flags take precedence over the --config file.
type RunOptions struct {
	ConfigFile   string
	OutputDir    string
	Plot         bool
	MetricsAddr  string
	OTLPEndpoint string

	populationSize    int32
	maxEvaluations    int32
	deadline          time.Duration
	seed              uint64
	neighborSize      int32
	maxReplaced       int32
	delta             float64
	scalarizing       string
	weightsFile       string
	workers           int32
	evaluationWorkers int32
	archiveSize       int32

	flags *pflag.FlagSet
}

// NewRunOptions returns options with the default output settings.
func NewRunOptions() *RunOptions {
	return &RunOptions{
		OutputDir: "results",
	}
}

// AddFlags adds the run flags to fs.
func (o *RunOptions) AddFlags(fs *pflag.FlagSet) {
	o.flags = fs
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to a RunSpec file. Flags override its values.")
	fs.StringVar(&o.OutputDir, "output-dir", o.OutputDir, "Directory receiving one sub-directory per run.")
	fs.BoolVar(&o.Plot, "plot", o.Plot, "Also write an HTML plot of the front for 2-objective problems.")
	fs.StringVar(&o.MetricsAddr, "metrics-addr", o.MetricsAddr, "Serve /metrics and /health on this address during the run, e.g. :8080.")
	fs.StringVar(&o.OTLPEndpoint, "otlp-endpoint", o.OTLPEndpoint, "Export traces to this OTLP gRPC endpoint.")

	fs.Int32Var(&o.populationSize, "population-size", 0, "Population size, or number of subproblems for MOEA/D.")
	fs.Int32Var(&o.maxEvaluations, "max-evaluations", 0, "Evaluation budget of the run.")
	fs.DurationVar(&o.deadline, "deadline", 0, "Stop the run after this wall time.")
	fs.Uint64Var(&o.seed, "seed", 0, "Random seed.")
	fs.Int32Var(&o.neighborSize, "neighbor-size", 0, "MOEA/D neighborhood size T.")
	fs.Int32Var(&o.maxReplaced, "max-replaced", 0, "Most MOEA/D slots one offspring may replace.")
	fs.Float64Var(&o.delta, "delta", 0, "Probability of mating inside the MOEA/D neighborhood.")
	fs.StringVar(&o.scalarizing, "scalarizing", "", "MOEA/D scalarizing function: tchebycheff, asf, weighted-sum or pbi.")
	fs.StringVar(&o.weightsFile, "weights-file", "", "Load the weight vectors from this file.")
	fs.Int32Var(&o.workers, "workers", 0, "MOEA/D worker goroutines, each owning a partition of the subproblems.")
	fs.Int32Var(&o.evaluationWorkers, "evaluation-workers", 0, "Goroutines evaluating NSGA-II offspring.")
	fs.Int32Var(&o.archiveSize, "archive-size", 0, "Capacity of the external non-dominated archive.")
}

// RunSpec assembles the run from the config file, the positional
// arguments and the flags that were set, then defaults and validates it.
func (o *RunOptions) RunSpec(algorithm, problem string) (*v1alpha1.RunSpec, error) {
	spec := &v1alpha1.RunSpec{}
	if o.ConfigFile != "" {
		var err error
		if spec, err = v1alpha1.ReadRunSpec(o.ConfigFile); err != nil {
			return nil, err
		}
	}
	spec.Algorithm = algorithm
	spec.Problem = problem

	if o.changed("population-size") {
		spec.PopulationSize = o.populationSize
	}
	if o.changed("max-evaluations") {
		spec.MaxEvaluations = o.maxEvaluations
	}
	if o.changed("deadline") {
		spec.Deadline = &metav1.Duration{Duration: o.deadline}
	}
	if o.changed("seed") {
		spec.Seed = ptr.To(o.seed)
	}
	if o.changed("neighbor-size") {
		spec.NeighborSize = o.neighborSize
	}
	if o.changed("max-replaced") {
		spec.MaxReplaced = o.maxReplaced
	}
	if o.changed("delta") {
		spec.Delta = ptr.To(o.delta)
	}
	if o.changed("scalarizing") {
		spec.Scalarizing = o.scalarizing
	}
	if o.changed("weights-file") {
		spec.WeightsFile = o.weightsFile
	}
	if o.changed("workers") {
		spec.Workers = o.workers
	}
	if o.changed("evaluation-workers") {
		spec.EvaluationWorkers = o.evaluationWorkers
	}
	if o.changed("archive-size") {
		spec.ArchiveSize = o.archiveSize
	}

	if err := v1alpha1.Complete(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (o *RunOptions) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}
