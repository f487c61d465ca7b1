package algorithms

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/operators"
	"github.com/mihai-snyk/moea/pkg/ranking"
)

// GetParetoFront extracts the Pareto front (first non-dominated front) from a population
func GetParetoFront(population []*framework.Solution) []framework.ObjectiveSpacePoint {
	if len(population) == 0 {
		return nil
	}

	first := ranking.FirstFront(population)
	paretoFront := make([]framework.ObjectiveSpacePoint, len(first))
	for i, sol := range first {
		point := make(framework.ObjectiveSpacePoint, len(sol.Objectives))
		copy(point, sol.Objectives)
		paretoFront[i] = point
	}
	return paretoFront
}

// initialPopulation draws n decision vectors from the problem and evaluates
// them.
func initialPopulation(ctx context.Context, problem framework.Problem, eval framework.Evaluator, n int, rng *rand.Rand) ([]*framework.Solution, error) {
	vars := problem.Initialize(n, rng)
	if len(vars) != n {
		return nil, framework.InvalidConfigf("problem %s initialized %d solutions, want %d", problem.Name(), len(vars), n)
	}

	m := framework.NumberOfObjectives(problem)
	population := make([]*framework.Solution, n)
	for i, v := range vars {
		population[i] = framework.NewSolution(v, m)
	}
	if err := eval.Evaluate(ctx, population); err != nil {
		return nil, fmt.Errorf("evaluating initial population: %w", err)
	}
	return population, nil
}

// reproduce builds n unevaluated offspring from population: parents are
// picked by sel, recombined and every child is mutated.
func reproduce(population []*framework.Solution, n int, sel operators.Selection, cx operators.Crossover, mut operators.Mutation, m int, rng *rand.Rand) ([]*framework.Solution, error) {
	offspring := make([]*framework.Solution, 0, n)
	parents := make([]framework.Variables, cx.NumberOfParents())
	for len(offspring) < n {
		for i := range parents {
			parents[i] = sel.Select(population, rng).Variables
		}
		children, err := cx.Crossover(parents, rng)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if len(offspring) == n {
				break
			}
			if err := mut.Mutate(child, rng); err != nil {
				return nil, err
			}
			offspring = append(offspring, framework.NewSolution(child, m))
		}
	}
	return offspring, nil
}

// isCanceled reports whether err comes from ctx being done.
func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
