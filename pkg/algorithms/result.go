package algorithms

import (
	"context"
	"time"

	"k8s.io/utils/clock"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// StopReason tells why a run ended.
type StopReason string

const (
	StopMaxEvaluations StopReason = "max-evaluations"
	StopDeadline       StopReason = "deadline"
	// StopCanceled means the caller's context was done. The result still
	// holds the last complete population.
	StopCanceled StopReason = "canceled"
)

// Result is the outcome of a run.
type Result struct {
	Algorithm Kind
	Problem   string
	RunID     string

	// Population is the final population, owned by the caller.
	Population []*framework.Solution
	// Archive holds the archive members when one was configured.
	Archive []*framework.Solution

	Evaluations int
	// Iterations counts generations for NSGA-II and sweeps over every
	// subproblem for MOEA/D.
	Iterations int
	Elapsed    time.Duration
	StopReason StopReason
}

// ParetoFront returns the objective vectors of the non-dominated members of
// the final population.
func (r *Result) ParetoFront() []framework.ObjectiveSpacePoint {
	return GetParetoFront(r.Population)
}

// termination tracks the three ways a run can end. Every driver checks it at
// the top of each iteration.
type termination struct {
	maxEvaluations int
	deadline       time.Duration
	clock          clock.PassiveClock
	start          time.Time
}

func newTermination(cfg *Config) *termination {
	c := cfg.clock()
	return &termination{
		maxEvaluations: cfg.MaxEvaluations,
		deadline:       cfg.Deadline,
		clock:          c,
		start:          c.Now(),
	}
}

func (t *termination) check(ctx context.Context, evaluations int) (StopReason, bool) {
	if ctx.Err() != nil {
		return StopCanceled, true
	}
	if evaluations >= t.maxEvaluations {
		return StopMaxEvaluations, true
	}
	if t.deadline > 0 && t.clock.Since(t.start) >= t.deadline {
		return StopDeadline, true
	}
	return "", false
}

// remaining is the evaluation budget left.
func (t *termination) remaining(evaluations int) int {
	return max(t.maxEvaluations-evaluations, 0)
}

func (t *termination) elapsed() time.Duration {
	return t.clock.Since(t.start)
}
