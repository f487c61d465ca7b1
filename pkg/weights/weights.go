// Package weights generates the weight vectors that define the subproblems
// of a decomposition-based algorithm and the neighborhood of each of them.
package weights

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// Source produces count weight vectors of dimension m. Generated and loaded
// vectors are interchangeable: downstream code only sees [][]float64.
type Source interface {
	Weights(m, count int) ([][]float64, error)
}

// Lattice is the Das and Dennis simplex lattice: every vector whose
// components are multiples of 1/Divisions and sum to one. With two
// objectives it degenerates to the uniform interpolation (a, 1-a),
// a = n/(count-1).
//
// When Divisions is zero it is derived from count, which must then be a
// lattice size for m objectives.
type Lattice struct {
	Divisions int
}

var _ Source = Lattice{}

func (l Lattice) Weights(m, count int) ([][]float64, error) {
	if m < 2 {
		return nil, framework.InvalidConfigf("weight vectors need at least 2 objectives, got %d", m)
	}
	if count < 1 {
		return nil, framework.InvalidConfigf("weight vector count must be positive, got %d", count)
	}
	if count == 1 && l.Divisions == 0 {
		w := make([]float64, m)
		for i := range w {
			w[i] = 1.0 / float64(m)
		}
		return [][]float64{w}, nil
	}

	h := l.Divisions
	if h == 0 {
		h = divisionsFor(m, count)
	}
	if size := LatticeSize(m, h); size != count {
		return nil, framework.InvalidConfigf("%d objectives with %d divisions yield %d weight vectors, not %d", m, h, size, count)
	}

	out := make([][]float64, 0, count)
	current := make([]int, m)
	var walk func(pos, left int)
	walk = func(pos, left int) {
		if pos == m-1 {
			current[pos] = left
			w := make([]float64, m)
			for i, c := range current {
				w[i] = float64(c) / float64(h)
			}
			out = append(out, w)
			return
		}
		for i := 0; i <= left; i++ {
			current[pos] = i
			walk(pos+1, left-i)
		}
	}
	walk(0, h)
	return out, nil
}

// LatticeSize is the number of vectors of the simplex lattice with h
// divisions in m dimensions, C(h+m-1, m-1).
func LatticeSize(m, h int) int {
	if m < 1 || h < 0 {
		return 0
	}
	return combin.Binomial(h+m-1, m-1)
}

// divisionsFor returns the smallest h whose lattice holds at least count vectors.
func divisionsFor(m, count int) int {
	h := 1
	for LatticeSize(m, h) < count {
		h++
	}
	return h
}

// Uniform2D spreads count bi-objective weights evenly on [Epsilon, 1-Epsilon].
// The first component grows with the index. Epsilon keeps every component
// strictly positive, which the achievement scalarizing function relies on
// when the weights are inverted.
type Uniform2D struct {
	Epsilon float64
}

var _ Source = Uniform2D{}

func (u Uniform2D) Weights(m, count int) ([][]float64, error) {
	if m != 2 {
		return nil, framework.DimensionMismatchf("uniform 2D weights need 2 objectives, got %d", m)
	}
	if count < 2 {
		return nil, framework.InvalidConfigf("uniform 2D weights need at least 2 vectors, got %d", count)
	}
	if u.Epsilon < 0 || u.Epsilon >= 0.5 {
		return nil, framework.InvalidConfigf("epsilon must be in [0, 0.5), got %v", u.Epsilon)
	}

	jump := (1 - 2*u.Epsilon) / float64(count-1)
	out := make([][]float64, count)
	for i := range out {
		w := u.Epsilon + float64(i)*jump
		out[i] = []float64{w, 1 - w}
	}
	return out, nil
}

// Invert replaces every component by its reciprocal, normalized so that each
// vector sums to one when normalize is set. Components must be non-zero.
func Invert(w [][]float64, normalize bool) [][]float64 {
	out := make([][]float64, len(w))
	for i, vec := range w {
		out[i] = make([]float64, len(vec))
		sum := 0.0
		for j, c := range vec {
			out[i][j] = 1.0 / c
			sum += out[i][j]
		}
		if normalize {
			for j := range out[i] {
				out[i][j] /= sum
			}
		}
	}
	return out
}
