package weights

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// Neighborhoods returns, for every weight vector, the indices of the t
// closest other vectors by Euclidean distance, nearest first. Equal
// distances are broken by the lower index. A vector is its own neighbor only
// when t equals the number of vectors.
func Neighborhoods(w [][]float64, t int) ([][]int, error) {
	count := len(w)
	if count == 0 {
		return nil, framework.InvalidConfigf("no weight vectors")
	}
	if t < 1 || t > count {
		return nil, framework.InvalidConfigf("neighborhood size %d must be in [1, %d]", t, count)
	}
	m := len(w[0])
	for i, vec := range w {
		if len(vec) != m {
			return nil, framework.DimensionMismatchf("weight vector %d has %d components, want %d", i, len(vec), m)
		}
	}

	includeSelf := t == count
	out := make([][]int, count)
	dist := make([]float64, count)
	idx := make([]int, 0, count)
	for i := range w {
		idx = idx[:0]
		for j := range w {
			if j == i && !includeSelf {
				continue
			}
			dist[j] = floats.Distance(w[i], w[j], 2)
			idx = append(idx, j)
		}
		sort.Slice(idx, func(a, b int) bool {
			if dist[idx[a]] != dist[idx[b]] {
				return dist[idx[a]] < dist[idx[b]]
			}
			return idx[a] < idx[b]
		})

		out[i] = make([]int, t)
		copy(out[i], idx[:t])
	}
	return out, nil
}
