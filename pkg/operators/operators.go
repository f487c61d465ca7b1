// Package operators holds the variation and mating-selection operators.
//
// Operators only read and write decision variables. Objectives and the
// metadata the selection engine assigns are never touched. Every source of
// randomness is the *rand.Rand passed in by the caller.
package operators

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// Crossover recombines parents into new decision vectors. Parents are never
// modified and the children never alias them.
type Crossover interface {
	NumberOfParents() int
	NumberOfChildren() int
	Crossover(parents []framework.Variables, rng *rand.Rand) ([]framework.Variables, error)
}

// Mutation perturbs v in place.
type Mutation interface {
	Mutate(v framework.Variables, rng *rand.Rand) error
}

// Selection picks one mating parent out of pop.
type Selection interface {
	Select(pop []*framework.Solution, rng *rand.Rand) *framework.Solution
}

func kindError(op string, want framework.VariableKind, got framework.Variables) error {
	return fmt.Errorf("%w: %s needs %s variables, got %s", framework.ErrInvalidConfig, op, want, got.Kind())
}

func checkParents(op string, parents []framework.Variables, want int) error {
	if len(parents) != want {
		return framework.InvalidConfigf("%s needs %d parents, got %d", op, want, len(parents))
	}
	n := parents[0].Len()
	for i, p := range parents[1:] {
		if p.Len() != n {
			return framework.DimensionMismatchf("%s parent %d has %d variables, want %d", op, i+1, p.Len(), n)
		}
	}
	return nil
}

func clamp(v float64, b framework.Bounds) float64 {
	if v < b.L {
		return b.L
	}
	if v > b.H {
		return b.H
	}
	return v
}

// SubproblemCrossover is implemented by crossovers whose first parent must be
// the incumbent of the subproblem being solved, as DE/rand/1/bin in MOEA/D.
type SubproblemCrossover interface {
	Crossover
	IncludesCurrent() bool
}
