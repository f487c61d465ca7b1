// Package indicators measures the quality of an approximation front against
// a reference front or a reference point. Every objective is minimized.
package indicators

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mihai-snyk/moea/pkg/dominance"
	"github.com/mihai-snyk/moea/pkg/framework"
)

func check(front, reference []framework.ObjectiveSpacePoint) error {
	if len(front) == 0 {
		return framework.InvalidConfigf("approximation front is empty")
	}
	if len(reference) == 0 {
		return framework.InvalidConfigf("reference front is empty")
	}
	m := len(reference[0])
	for i, p := range reference {
		if len(p) != m {
			return framework.DimensionMismatchf("reference point %d has %d objectives, want %d", i, len(p), m)
		}
	}
	for i, p := range front {
		if len(p) != m {
			return framework.DimensionMismatchf("front point %d has %d objectives, want %d", i, len(p), m)
		}
	}
	return nil
}

// minDistances returns, for every point of from, the Euclidean distance to
// its nearest point in to.
func minDistances(from, to []framework.ObjectiveSpacePoint) []float64 {
	out := make([]float64, len(from))
	for i, p := range from {
		best := math.Inf(1)
		for _, q := range to {
			if d := floats.Distance(p, q, 2); d < best {
				best = d
			}
		}
		out[i] = best
	}
	return out
}

// IGD is the inverted generational distance: the mean distance from every
// reference point to its nearest point of front.
func IGD(front, reference []framework.ObjectiveSpacePoint) (float64, error) {
	if err := check(front, reference); err != nil {
		return 0, err
	}
	return stat.Mean(minDistances(reference, front), nil), nil
}

// GD is the generational distance: the mean distance from every point of
// front to its nearest reference point.
func GD(front, reference []framework.ObjectiveSpacePoint) (float64, error) {
	if err := check(front, reference); err != nil {
		return 0, err
	}
	return stat.Mean(minDistances(front, reference), nil), nil
}

// Hypervolume2D is the area dominated by front and bounded by ref. Points
// that do not strictly dominate ref contribute nothing.
func Hypervolume2D(front []framework.ObjectiveSpacePoint, ref []float64) (float64, error) {
	if len(ref) != 2 {
		return 0, framework.DimensionMismatchf("hypervolume needs a 2-objective reference point, got %d", len(ref))
	}
	var pts []framework.ObjectiveSpacePoint
	for i, p := range front {
		if len(p) != 2 {
			return 0, framework.DimensionMismatchf("front point %d has %d objectives, want 2", i, len(p))
		}
		if p[0] < ref[0] && p[1] < ref[1] {
			pts = append(pts, p)
		}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	volume := 0.0
	lastY := ref[1]
	for _, p := range pts {
		// dominated points lie above the sweep line
		if p[1] >= lastY {
			continue
		}
		volume += (ref[0] - p[0]) * (lastY - p[1])
		lastY = p[1]
	}
	return volume, nil
}

// Spread2D is Deb's diversity metric Delta for bi-objective fronts. It is 0
// for an evenly spread front that reaches both extremes of reference.
func Spread2D(front, reference []framework.ObjectiveSpacePoint) (float64, error) {
	if err := check(front, reference); err != nil {
		return 0, err
	}
	if len(reference[0]) != 2 {
		return 0, framework.DimensionMismatchf("spread needs 2 objectives, got %d", len(reference[0]))
	}

	f := sortedByFirst(dominance.NonDominated(front))
	r := sortedByFirst(reference)
	if len(f) < 2 {
		return 1, nil
	}
	df := floats.Distance(f[0], r[0], 2)
	dl := floats.Distance(f[len(f)-1], r[len(r)-1], 2)

	gaps := make([]float64, len(f)-1)
	for i := range gaps {
		gaps[i] = floats.Distance(f[i], f[i+1], 2)
	}
	mean := stat.Mean(gaps, nil)
	diversity := 0.0
	for _, d := range gaps {
		diversity += math.Abs(d - mean)
	}

	denominator := df + dl + float64(len(gaps))*mean
	if denominator == 0 {
		return 0, nil
	}
	return (df + dl + diversity) / denominator, nil
}

// NadirReference returns a hypervolume reference point just beyond the
// nadir of front: every coordinate of the nadir plus margin times
// max(1, |nadir|).
func NadirReference(front []framework.ObjectiveSpacePoint, margin float64) []float64 {
	if len(front) == 0 {
		return nil
	}
	ref := make([]float64, len(front[0]))
	copy(ref, front[0])
	for _, p := range front[1:] {
		for i := range ref {
			ref[i] = max(ref[i], p[i])
		}
	}
	for i := range ref {
		ref[i] += margin * max(1, math.Abs(ref[i]))
	}
	return ref
}

func sortedByFirst(points []framework.ObjectiveSpacePoint) []framework.ObjectiveSpacePoint {
	out := make([]framework.ObjectiveSpacePoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
