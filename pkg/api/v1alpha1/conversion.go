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

package v1alpha1

import (
	"fmt"
	"os"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/moea/pkg/algorithms"
	"github.com/mihai-snyk/moea/pkg/operators"
	"github.com/mihai-snyk/moea/pkg/scalarize"
	"github.com/mihai-snyk/moea/pkg/weights"
)

var scheme = runtime.NewScheme()

func init() {
	if err := AddToScheme(scheme); err != nil {
		panic(err)
	}
}

// LoadRunSpec reads a RunSpec from a YAML or JSON file, applies the defaults
// and validates it. Unknown fields are rejected.
func LoadRunSpec(path string) (*RunSpec, error) {
	obj, err := ReadRunSpec(path)
	if err != nil {
		return nil, err
	}
	if err := Complete(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ReadRunSpec reads a RunSpec from path as written, without defaults.
func ReadRunSpec(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run spec: %w", err)
	}
	return decode(data)
}

// DecodeRunSpec decodes, defaults and validates data. apiVersion and kind
// may be omitted.
func DecodeRunSpec(data []byte) (*RunSpec, error) {
	obj, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := Complete(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Complete applies the registered defaults to obj and validates it.
func Complete(obj *RunSpec) error {
	scheme.Default(obj)
	return ValidateRunSpec(obj)
}

func decode(data []byte) (*RunSpec, error) {
	obj := &RunSpec{}
	if err := yaml.UnmarshalStrict(data, obj); err != nil {
		return nil, fmt.Errorf("decoding run spec: %w", err)
	}
	if gvk := obj.GroupVersionKind(); !gvk.Empty() && (gvk.GroupVersion() != SchemeGroupVersion || gvk.Kind != "RunSpec") {
		return nil, fmt.Errorf("decoding run spec: unsupported %s", gvk)
	}
	return obj, nil
}

// EncodeRunSpec renders obj as YAML with apiVersion and kind set.
func EncodeRunSpec(obj *RunSpec) ([]byte, error) {
	out := obj.DeepCopy()
	out.SetGroupVersionKind(SchemeGroupVersion.WithKind("RunSpec"))
	return yaml.Marshal(out)
}

// ToConfig converts a defaulted RunSpec to the driver configuration for a
// problem with numVars decision variables.
func (obj *RunSpec) ToConfig(numVars int) (algorithms.Config, error) {
	kind := algorithms.Kind(obj.Algorithm)
	cfg := algorithms.DefaultConfig(kind, numVars)

	cfg.PopulationSize = int(obj.PopulationSize)
	cfg.MaxEvaluations = int(obj.MaxEvaluations)
	if obj.Deadline != nil {
		cfg.Deadline = obj.Deadline.Duration
	}
	if obj.Seed != nil {
		cfg.Seed = *obj.Seed
	}
	cfg.NeighborSize = int(obj.NeighborSize)
	cfg.MaxReplaced = int(obj.MaxReplaced)
	if obj.Delta != nil {
		cfg.Delta = *obj.Delta
	}
	if obj.Scalarizing != "" {
		cfg.Scalarizing = scalarize.Type(obj.Scalarizing)
	}
	if obj.WeightsFile != "" {
		cfg.Weights = weights.File{Path: obj.WeightsFile}
	}
	if obj.Ranking != "" {
		cfg.Ranking = algorithms.RankingType(obj.Ranking)
	}
	cfg.ReferencePoint = append([]float64(nil), obj.ReferencePoint...)
	cfg.SteadyState = obj.SteadyState
	if obj.Epsilon != nil {
		cfg.Epsilon = *obj.Epsilon
	}
	switch obj.Selection {
	case "", SelectionTournament:
	case SelectionRandom:
		cfg.Selection = operators.RandomSelection{}
	default:
		return cfg, fmt.Errorf("unsupported selection %q", obj.Selection)
	}
	cfg.Constrained = obj.Constrained
	cfg.ArchiveSize = int(obj.ArchiveSize)
	cfg.Workers = int(obj.Workers)
	cfg.EvaluationWorkers = int(obj.EvaluationWorkers)

	if c := obj.Crossover; c != nil {
		switch c.Type {
		case CrossoverSBX:
			x := &operators.SBX{Probability: 0.9, DistributionIndex: operators.DefaultDistributionIndex}
			if c.Probability != nil {
				x.Probability = *c.Probability
			}
			if c.DistributionIndex != nil {
				x.DistributionIndex = *c.DistributionIndex
			}
			cfg.Crossover = x
		case CrossoverDE:
			x := &operators.DifferentialEvolution{CR: 1.0, F: 0.5}
			if c.CR != nil {
				x.CR = *c.CR
			}
			if c.F != nil {
				x.F = *c.F
			}
			cfg.Crossover = x
		default:
			return cfg, fmt.Errorf("unsupported crossover %q", c.Type)
		}
	}
	if m := obj.Mutation; m != nil {
		mut := cfg.Mutation.(*operators.PolynomialMutation)
		if m.Probability != nil {
			mut.Probability = *m.Probability
		}
		if m.DistributionIndex != nil {
			mut.DistributionIndex = *m.DistributionIndex
		}
	}
	return cfg, nil
}
