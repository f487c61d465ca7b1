// Package scalarize turns an objective vector into a single value against a
// weight vector and a reference point. Lower values are always better.
package scalarize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mihai-snyk/moea/pkg/framework"
)

const (
	// ZeroWeightFloor replaces zero weights in Tchebycheff so that the
	// corresponding objective still breaks ties.
	ZeroWeightFloor = 0.0001
	// DefaultAugmentation is the augmentation coefficient of the ASF.
	DefaultAugmentation = 0.001
	// DefaultPBITheta is the penalty of the PBI approach.
	DefaultPBITheta = 5.0
)

// Type names a scalarizing function in configuration.
type Type string

const (
	TchebycheffType Type = "tchebycheff"
	ASFType         Type = "asf"
	WeightedSumType Type = "weighted-sum"
	PBIType         Type = "pbi"
)

// Func evaluates objectives against weights and a reference point
// (the ideal point for Tchebycheff and PBI, the aspiration point for ASF).
type Func interface {
	Evaluate(objectives, weights, reference []float64) float64
}

// New returns the scalarizing function registered under t.
func New(t Type) (Func, error) {
	switch t {
	case TchebycheffType:
		return Tchebycheff{}, nil
	case ASFType:
		return &ASF{Augmentation: DefaultAugmentation}, nil
	case WeightedSumType:
		return WeightedSum{}, nil
	case PBIType:
		return PBI{Theta: DefaultPBITheta}, nil
	}
	return nil, fmt.Errorf("%w: unknown scalarizing function %q", framework.ErrInvalidConfig, t)
}

// Tchebycheff computes max_m w_m * |f_m - z_m|.
type Tchebycheff struct{}

func (Tchebycheff) Evaluate(objectives, weights, ideal []float64) float64 {
	maxFun := math.Inf(-1)
	for m := range objectives {
		diff := math.Abs(objectives[m] - ideal[m])

		w := weights[m]
		if w == 0 {
			w = ZeroWeightFloor
		}
		if feval := w * diff; feval > maxFun {
			maxFun = feval
		}
	}
	return maxFun
}

// WeightedSum is the aggregation approach: sum_m w_m * f_m. The reference
// point is ignored.
type WeightedSum struct{}

func (WeightedSum) Evaluate(objectives, weights, _ []float64) float64 {
	sum := 0.0
	for m := range objectives {
		sum += weights[m] * objectives[m]
	}
	return sum
}

// PBI is the penalty-based boundary intersection approach: the distance d1
// along the weight direction plus Theta times the perpendicular distance d2.
type PBI struct {
	Theta float64
}

func (p PBI) Evaluate(objectives, weights, ideal []float64) float64 {
	nl := floats.Norm(weights, 2)
	if nl == 0 {
		return math.Inf(1)
	}
	diff := floats.SubTo(make([]float64, len(objectives)), objectives, ideal)
	d1 := math.Abs(floats.Dot(diff, weights)) / nl

	// diff becomes the component perpendicular to the weight direction
	floats.AddScaled(diff, -d1/nl, weights)
	return d1 + p.Theta*floats.Norm(diff, 2)
}

// ASF is the achievement scalarizing function
//
//	max_m w_m (f_m - r_m) + Augmentation * sum_m (f_m - r_m)
//
// When both Ideal and Nadir are set every difference is divided by
// (Nadir_m - Ideal_m) first.
type ASF struct {
	Augmentation float64
	Ideal        []float64
	Nadir        []float64
}

func (a *ASF) Evaluate(objectives, weights, reference []float64) float64 {
	normalize := len(a.Ideal) == len(objectives) && len(a.Nadir) == len(objectives)

	first := math.Inf(-1)
	second := 0.0
	for m := range objectives {
		diff := objectives[m] - reference[m]
		if normalize {
			if r := a.Nadir[m] - a.Ideal[m]; r != 0 {
				diff /= r
			}
		}
		if v := weights[m] * diff; v > first {
			first = v
		}
		second += diff
	}
	return first + a.Augmentation*second
}
