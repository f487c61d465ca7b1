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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/moea/pkg/algorithms"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/operators"
	"github.com/mihai-snyk/moea/pkg/weights"
)

func TestDecodeRunSpecDefaults(t *testing.T) {
	obj, err := DecodeRunSpec([]byte(`
apiVersion: moea.mihai-snyk.io/v1alpha1
kind: RunSpec
algorithm: moead
problem: ZDT1
deadline: 1m
`))
	if err != nil {
		t.Fatal(err)
	}

	want := &RunSpec{
		TypeMeta:       metav1.TypeMeta{APIVersion: "moea.mihai-snyk.io/v1alpha1", Kind: "RunSpec"},
		Algorithm:      "moead",
		Problem:        "ZDT1",
		PopulationSize: 300,
		MaxEvaluations: 150000,
		Deadline:       &metav1.Duration{Duration: time.Minute},
		Seed:           ptr.To[uint64](1),
		NeighborSize:   20,
		MaxReplaced:    2,
		Delta:          ptr.To(0.9),
		Scalarizing:    "tchebycheff",
		Ranking:        "dominance",
		Crossover:      &CrossoverSpec{Type: CrossoverDE, CR: ptr.To(1.0), F: ptr.To(0.5)},
		Mutation:       &MutationSpec{DistributionIndex: ptr.To(operators.DefaultDistributionIndex)},
	}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Errorf("defaulted spec (-want +got):\n%s", diff)
	}
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	obj := &RunSpec{
		Algorithm:      "nsgaii",
		Problem:        "ZDT2",
		PopulationSize: 40,
		Crossover:      &CrossoverSpec{Type: CrossoverSBX, Probability: ptr.To(0.7)},
	}
	SetDefaults_RunSpec(obj)

	if obj.PopulationSize != 40 {
		t.Errorf("population size overwritten: %d", obj.PopulationSize)
	}
	if *obj.Crossover.Probability != 0.7 || *obj.Crossover.DistributionIndex != operators.DefaultDistributionIndex {
		t.Errorf("crossover = %+v", obj.Crossover)
	}
	if obj.NeighborSize != 0 || obj.Delta != nil {
		t.Errorf("MOEA/D settings defaulted for NSGA-II: %d %v", obj.NeighborSize, obj.Delta)
	}
}

func TestDecodeRunSpecErrors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantField string
	}{
		{name: "unknown field", data: "algorithm: nsgaii\nproblem: ZDT1\ngenerations: 10\n"},
		{name: "wrong kind", data: "apiVersion: moea.mihai-snyk.io/v1alpha1\nkind: Job\nalgorithm: nsgaii\nproblem: ZDT1\n"},
		{name: "missing problem", data: "algorithm: nsgaii\n", wantField: "spec.problem"},
		{name: "unknown algorithm", data: "algorithm: spea2\nproblem: ZDT1\n", wantField: "spec.algorithm"},
		{name: "neighborhood too large", data: "algorithm: moead\nproblem: ZDT1\npopulationSize: 10\nneighborSize: 11\n", wantField: "spec.neighborSize"},
		{name: "unknown crossover", data: "algorithm: nsgaii\nproblem: ZDT1\ncrossover:\n  type: blx\n", wantField: "spec.crossover.type"},
		{name: "mutation probability", data: "algorithm: nsgaii\nproblem: ZDT1\nmutation:\n  probability: 2\n", wantField: "spec.mutation.probability"},
		{name: "workers on NSGA-II", data: "algorithm: nsgaii\nproblem: ZDT1\nworkers: 4\n", wantField: "spec.workers"},
		{name: "unknown selection", data: "algorithm: nsgaii\nproblem: ZDT1\nselection: roulette\n", wantField: "spec.selection"},
		{name: "random selection on MOEA/D", data: "algorithm: moead\nproblem: ZDT1\nselection: random\n", wantField: "spec.selection"},
		{name: "negative epsilon", data: "algorithm: nsgaii\nproblem: ZDT1\nepsilon: -0.1\n", wantField: "spec.epsilon"},
		{name: "epsilon on MOEA/D", data: "algorithm: moead\nproblem: ZDT1\nepsilon: 0.1\n", wantField: "spec.epsilon"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeRunSpec([]byte(tc.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.wantField == "" {
				return
			}
			if !errors.Is(err, framework.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantField) {
				t.Errorf("error %q does not name %s", err, tc.wantField)
			}
		})
	}
}

func TestToConfig(t *testing.T) {
	obj := &RunSpec{
		Algorithm:   "moead",
		Problem:     "DTLZ2",
		WeightsFile: "W3D_91.dat",
		Workers:     4,
		Crossover:   &CrossoverSpec{Type: CrossoverSBX},
	}
	SetDefaults_RunSpec(obj)

	cfg, err := obj.ToConfig(12)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(weights.File{Path: "W3D_91.dat"}, cfg.Weights); diff != "" {
		t.Errorf("weights (-want +got):\n%s", diff)
	}
	if cfg.Workers != 4 || cfg.NeighborSize != 20 || cfg.PopulationSize != 300 {
		t.Errorf("got workers %d, T %d, N %d", cfg.Workers, cfg.NeighborSize, cfg.PopulationSize)
	}
	wantCX := &operators.SBX{Probability: 0.9, DistributionIndex: operators.DefaultDistributionIndex}
	if diff := cmp.Diff(wantCX, cfg.Crossover); diff != "" {
		t.Errorf("crossover (-want +got):\n%s", diff)
	}
	wantMut := &operators.PolynomialMutation{Probability: 1.0 / 12, DistributionIndex: operators.DefaultDistributionIndex}
	if diff := cmp.Diff(wantMut, cfg.Mutation, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("mutation (-want +got):\n%s", diff)
	}
	if errs := cfg.Validate(algorithms.MOEADKind, nil); len(errs) != 0 {
		t.Errorf("converted config is invalid: %v", errs)
	}
}

func TestLoadRunSpecRoundTrip(t *testing.T) {
	obj := &RunSpec{Algorithm: "wasfga", Problem: "ZDT1", ReferencePoint: []float64{0.2, 0.4}, ArchiveSize: 50}
	SetDefaults_RunSpec(obj)

	data, err := EncodeRunSpec(obj)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadRunSpec(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(obj, got, cmpopts.IgnoreFields(RunSpec{}, "TypeMeta")); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	if got.Kind != "RunSpec" || got.Ranking != string(algorithms.ASFRanking) {
		t.Errorf("got kind %q ranking %q", got.Kind, got.Ranking)
	}
}

func TestToConfigSelectionAndEpsilon(t *testing.T) {
	obj, err := DecodeRunSpec([]byte("algorithm: nsgaii\nproblem: ZDT1\nepsilon: 0.01\nselection: random\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := obj.ToConfig(30)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Epsilon != 0.01 {
		t.Errorf("epsilon = %v, want 0.01", cfg.Epsilon)
	}
	if _, ok := cfg.Selection.(operators.RandomSelection); !ok {
		t.Errorf("selection = %T, want operators.RandomSelection", cfg.Selection)
	}

	obj, err = DecodeRunSpec([]byte("algorithm: nsgaii\nproblem: ZDT1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if obj.Selection != SelectionTournament {
		t.Errorf("selection defaulted to %q", obj.Selection)
	}
	if cfg, _ = obj.ToConfig(30); cfg.Selection != nil {
		t.Errorf("tournament selection should keep the driver default, got %T", cfg.Selection)
	}
}
