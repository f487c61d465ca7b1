package indicators_test

import (
	"errors"
	"math"
	"testing"

	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/indicators"
)

func front(points ...[]float64) []framework.ObjectiveSpacePoint {
	out := make([]framework.ObjectiveSpacePoint, len(points))
	for i, p := range points {
		out[i] = p
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestIGD(t *testing.T) {
	reference := front([]float64{0, 1}, []float64{0.5, 0.5}, []float64{1, 0})

	tests := []struct {
		name  string
		front []framework.ObjectiveSpacePoint
		want  float64
	}{
		{
			name:  "exact",
			front: reference,
			want:  0,
		},
		{
			name:  "single point",
			front: front([]float64{0.5, 0.5}),
			want:  2 * math.Sqrt(0.5) / 3,
		},
		{
			name:  "shifted",
			front: front([]float64{0, 1.1}, []float64{0.5, 0.6}, []float64{1, 0.1}),
			want:  0.1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := indicators.IGD(tc.front, reference)
			if err != nil {
				t.Fatal(err)
			}
			if !near(got, tc.want) {
				t.Errorf("IGD = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGDIgnoresMissingCoverage(t *testing.T) {
	reference := front([]float64{0, 1}, []float64{0.5, 0.5}, []float64{1, 0})
	got, err := indicators.GD(front([]float64{0.5, 0.5}), reference)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("GD = %v, want 0", got)
	}
}

func TestIndicatorErrors(t *testing.T) {
	reference := front([]float64{0, 1})
	if _, err := indicators.IGD(nil, reference); !errors.Is(err, framework.ErrInvalidConfig) {
		t.Errorf("empty front: got %v", err)
	}
	if _, err := indicators.IGD(front([]float64{0, 1, 2}), reference); !errors.Is(err, framework.ErrDimensionMismatch) {
		t.Errorf("3-d front against 2-d reference: got %v", err)
	}
	if _, err := indicators.Hypervolume2D(reference, []float64{1, 1, 1}); !errors.Is(err, framework.ErrDimensionMismatch) {
		t.Errorf("3-d reference point: got %v", err)
	}
}

func TestHypervolume2D(t *testing.T) {
	tests := []struct {
		name  string
		front []framework.ObjectiveSpacePoint
		want  float64
	}{
		{
			name:  "single point",
			front: front([]float64{0, 0}),
			want:  1,
		},
		{
			name:  "staircase",
			front: front([]float64{0.5, 0}, []float64{0, 0.5}),
			want:  0.75,
		},
		{
			name:  "dominated and outside points add nothing",
			front: front([]float64{0.5, 0}, []float64{0, 0.5}, []float64{0.6, 0.6}, []float64{2, -1}),
			want:  0.75,
		},
		{
			name:  "empty",
			front: nil,
			want:  0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := indicators.Hypervolume2D(tc.front, []float64{1, 1})
			if err != nil {
				t.Fatal(err)
			}
			if !near(got, tc.want) {
				t.Errorf("HV = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSpread2D(t *testing.T) {
	reference := front([]float64{0, 1}, []float64{0.25, 0.75}, []float64{0.5, 0.5}, []float64{0.75, 0.25}, []float64{1, 0})

	even, err := indicators.Spread2D(reference, reference)
	if err != nil {
		t.Fatal(err)
	}
	if !near(even, 0) {
		t.Errorf("spread of an even front reaching both extremes = %v, want 0", even)
	}

	clustered, err := indicators.Spread2D(front([]float64{0.4, 0.6}, []float64{0.45, 0.55}, []float64{0.5, 0.5}), reference)
	if err != nil {
		t.Fatal(err)
	}
	if clustered <= even {
		t.Errorf("clustered front spread %v not worse than %v", clustered, even)
	}
}

func TestNadirReference(t *testing.T) {
	ref := indicators.NadirReference(front([]float64{0, 1}, []float64{0.5, 0.5}, []float64{2, 0}), 0.1)
	if len(ref) != 2 || !near(ref[0], 2.2) || !near(ref[1], 1.1) {
		t.Errorf("got %v, want [2.2 1.1]", ref)
	}
	if ref := indicators.NadirReference(nil, 0.1); ref != nil {
		t.Errorf("empty front: got %v", ref)
	}
}
