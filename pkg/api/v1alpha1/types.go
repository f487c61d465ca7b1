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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// RunSpec describes one optimization run. Zero values are filled in by
// SetDefaults_RunSpec.
type RunSpec struct {
	metav1.TypeMeta `json:",inline"`

	// Algorithm is one of nsgaii, moead or wasfga
	Algorithm string `json:"algorithm"`
	// Problem names a registered benchmark problem
	Problem string `json:"problem"`

	PopulationSize int32 `json:"populationSize,omitempty"`
	MaxEvaluations int32 `json:"maxEvaluations,omitempty"`
	// Deadline bounds the wall time of the run
	Deadline *metav1.Duration `json:"deadline,omitempty"`
	Seed     *uint64          `json:"seed,omitempty"`

	// NeighborSize is the size of every MOEA/D neighborhood
	NeighborSize int32 `json:"neighborSize,omitempty"`
	// MaxReplaced caps the slots one MOEA/D offspring may replace
	MaxReplaced int32 `json:"maxReplaced,omitempty"`
	// Delta is the probability of mating inside the neighborhood
	Delta       *float64 `json:"delta,omitempty"`
	Scalarizing string   `json:"scalarizing,omitempty"`
	// WeightsFile loads the weight vectors instead of generating them
	WeightsFile string `json:"weightsFile,omitempty"`

	// Ranking is dominance or asf (NSGA-II only)
	Ranking        string    `json:"ranking,omitempty"`
	ReferencePoint []float64 `json:"referencePoint,omitempty"`
	SteadyState    bool      `json:"steadyState,omitempty"`
	// Epsilon widens NSGA-II dominance: objective differences up to
	// Epsilon count as ties
	Epsilon *float64 `json:"epsilon,omitempty"`
	// Selection is the NSGA-II mating selection, tournament or random
	Selection string `json:"selection,omitempty"`

	Constrained bool  `json:"constrained,omitempty"`
	ArchiveSize int32 `json:"archiveSize,omitempty"`

	Workers           int32 `json:"workers,omitempty"`
	EvaluationWorkers int32 `json:"evaluationWorkers,omitempty"`

	Crossover *CrossoverSpec `json:"crossover,omitempty"`
	Mutation  *MutationSpec  `json:"mutation,omitempty"`
}

// CrossoverSpec selects the real-coded crossover operator.
type CrossoverSpec struct {
	// Type is sbx or de
	Type string `json:"type"`

	Probability       *float64 `json:"probability,omitempty"`
	DistributionIndex *float64 `json:"distributionIndex,omitempty"`

	// CR and F parameterize differential evolution
	CR *float64 `json:"cr,omitempty"`
	F  *float64 `json:"f,omitempty"`
}

// MutationSpec configures the polynomial mutation. A nil Probability means
// one over the number of variables.
type MutationSpec struct {
	Probability       *float64 `json:"probability,omitempty"`
	DistributionIndex *float64 `json:"distributionIndex,omitempty"`
}
