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
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/moea/pkg/algorithms"
	"github.com/mihai-snyk/moea/pkg/operators"
)

const (
	CrossoverSBX = "sbx"
	CrossoverDE  = "de"

	SelectionTournament = "tournament"
	SelectionRandom     = "random"
)

func addDefaultingFuncs(scheme *runtime.Scheme) error {
	return RegisterDefaults(scheme)
}

func RegisterDefaults(scheme *runtime.Scheme) error {
	klog.V(5).InfoS("Registering defaults", "kind", "RunSpec")
	scheme.AddTypeDefaultingFunc(&RunSpec{}, func(obj interface{}) {
		SetDefaults_RunSpec(obj.(*RunSpec))
	})
	return nil
}

// SetDefaults_RunSpec fills every unset field with the defaults of the
// selected algorithm. An unknown algorithm is left for validation.
func SetDefaults_RunSpec(obj *RunSpec) {
	kind := algorithms.Kind(obj.Algorithm)
	defaults := algorithms.DefaultConfig(kind, 1)

	if obj.PopulationSize == 0 {
		obj.PopulationSize = int32(defaults.PopulationSize)
	}
	if obj.MaxEvaluations == 0 {
		obj.MaxEvaluations = int32(defaults.MaxEvaluations)
	}
	if obj.Seed == nil {
		obj.Seed = ptr.To(defaults.Seed)
	}
	if obj.Ranking == "" {
		obj.Ranking = string(defaults.Ranking)
	}
	if obj.Scalarizing == "" {
		obj.Scalarizing = string(defaults.Scalarizing)
	}

	if kind != algorithms.MOEADKind && obj.Selection == "" {
		obj.Selection = SelectionTournament
	}

	if kind == algorithms.MOEADKind {
		if obj.NeighborSize == 0 {
			obj.NeighborSize = int32(min(defaults.NeighborSize, int(obj.PopulationSize)))
		}
		if obj.MaxReplaced == 0 {
			obj.MaxReplaced = int32(defaults.MaxReplaced)
		}
		if obj.Delta == nil {
			obj.Delta = ptr.To(defaults.Delta)
		}
	}

	if obj.Crossover == nil {
		obj.Crossover = &CrossoverSpec{Type: CrossoverSBX}
		if kind == algorithms.MOEADKind {
			obj.Crossover.Type = CrossoverDE
		}
	}
	setDefaultsCrossover(obj.Crossover)

	if obj.Mutation == nil {
		obj.Mutation = &MutationSpec{}
	}
	if obj.Mutation.DistributionIndex == nil {
		obj.Mutation.DistributionIndex = ptr.To(operators.DefaultDistributionIndex)
	}
}

func setDefaultsCrossover(obj *CrossoverSpec) {
	switch obj.Type {
	case CrossoverSBX:
		if obj.Probability == nil {
			obj.Probability = ptr.To(0.9)
		}
		if obj.DistributionIndex == nil {
			obj.DistributionIndex = ptr.To(operators.DefaultDistributionIndex)
		}
	case CrossoverDE:
		if obj.CR == nil {
			obj.CR = ptr.To(1.0)
		}
		if obj.F == nil {
			obj.F = ptr.To(0.5)
		}
	}
}
