package operators

import (
	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/crowding"
	"github.com/mihai-snyk/moea/pkg/framework"
)

// Tournament draws Size contestants with replacement and keeps the best by
// rank, then crowding distance.
type Tournament struct {
	// Size defaults to 2 (binary tournament).
	Size int
}

var _ Selection = &Tournament{}

func (t *Tournament) Select(pop []*framework.Solution, rng *rand.Rand) *framework.Solution {
	size := t.Size
	if size < 2 {
		size = 2 // minimum tournament size
	}
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < size; i++ {
		contestant := pop[rng.Intn(len(pop))]
		if crowding.Less(contestant, best) {
			best = contestant
		}
	}
	return best
}

// RandomSelection picks a uniformly random member.
type RandomSelection struct{}

var _ Selection = RandomSelection{}

func (RandomSelection) Select(pop []*framework.Solution, rng *rand.Rand) *framework.Solution {
	return pop[rng.Intn(len(pop))]
}

// DistinctIndices draws n distinct elements of scope, excluding skip when it
// is present. When scope has too few candidates the draw falls back to
// sampling with replacement.
func DistinctIndices(scope []int, n int, skip int, rng *rand.Rand) []int {
	candidates := make([]int, 0, len(scope))
	for _, k := range scope {
		if k != skip {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, scope...)
	}

	out := make([]int, 0, n)
	if len(candidates) >= n {
		for _, p := range rng.Perm(len(candidates))[:n] {
			out = append(out, candidates[p])
		}
		return out
	}
	for len(out) < n {
		out = append(out, candidates[rng.Intn(len(candidates))])
	}
	return out
}
