package framework

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Evaluator scores a batch of solutions. Implementations must return only
// after every solution in the batch carries its objectives.
type Evaluator interface {
	Evaluate(ctx context.Context, solutions []*Solution) error
}

// SequentialEvaluator evaluates solutions one after the other.
type SequentialEvaluator struct {
	Problem Problem
}

func (e *SequentialEvaluator) Evaluate(ctx context.Context, solutions []*Solution) error {
	for _, s := range solutions {
		if err := ctx.Err(); err != nil {
			return err
		}
		Evaluate(e.Problem, s)
	}
	return nil
}

// ParallelEvaluator fans a batch out to a bounded pool of goroutines. The
// problem's objective functions must be safe for concurrent use.
type ParallelEvaluator struct {
	Problem Problem
	// Workers defaults to runtime.NumCPU() when not positive.
	Workers int
}

func (e *ParallelEvaluator) Evaluate(ctx context.Context, solutions []*Solution) error {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, s := range solutions {
		s := s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			Evaluate(e.Problem, s)
			return nil
		})
	}
	return g.Wait()
}

// NewEvaluator returns a parallel evaluator for workers > 1 and a sequential
// one otherwise.
func NewEvaluator(p Problem, workers int) Evaluator {
	if workers > 1 {
		return &ParallelEvaluator{Problem: p, Workers: workers}
	}
	return &SequentialEvaluator{Problem: p}
}
