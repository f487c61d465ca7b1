// Package dominance implements Pareto dominance tests between objective
// vectors and solutions, with and without constraint handling.
package dominance

import (
	"github.com/mihai-snyk/moea/pkg/framework"
)

// Comparator orders two solutions. It returns -1 when a dominates b, 1 when
// b dominates a and 0 when they are mutually non-dominated.
type Comparator func(a, b *framework.Solution) int

// Compare performs the plain Pareto dominance test on two objective vectors
// (minimization). Identical vectors are mutually non-dominated.
func Compare(a, b []float64) int {
	aBetter, bBetter := false, false
	for i := 0; i < len(a); i++ {
		if a[i] < b[i] {
			aBetter = true
		} else if b[i] < a[i] {
			bBetter = true
		}
		if aBetter && bBetter {
			return 0
		}
	}
	switch {
	case aBetter:
		return -1
	case bBetter:
		return 1
	}
	return 0
}

// Dominates checks if objective vector a dominates b.
func Dominates(a, b []float64) bool {
	return Compare(a, b) == -1
}

// Pareto compares two solutions on their objectives only.
func Pareto(a, b *framework.Solution) int {
	return Compare(a.Objectives, b.Objectives)
}

// Constrained compares the total constraint violation first: a feasible
// solution dominates an infeasible one and, between two infeasible
// solutions, the smaller violation wins. Ties fall back to Pareto dominance.
func Constrained(a, b *framework.Solution) int {
	if c := CompareViolation(a, b); c != 0 {
		return c
	}
	return Compare(a.Objectives, b.Objectives)
}

// ConstrainedBy orders solutions by violation first, like Constrained, and
// breaks ties with objectives.
func ConstrainedBy(objectives Comparator) Comparator {
	return func(a, b *framework.Solution) int {
		if c := CompareViolation(a, b); c != 0 {
			return c
		}
		return objectives(a, b)
	}
}

// CompareViolation orders two solutions by total violation only.
func CompareViolation(a, b *framework.Solution) int {
	aFeasible, bFeasible := a.Feasible(), b.Feasible()
	switch {
	case aFeasible && bFeasible:
		return 0
	case aFeasible:
		return -1
	case bFeasible:
		return 1
	case a.Violation < b.Violation:
		return -1
	case b.Violation < a.Violation:
		return 1
	}
	return 0
}

// WithEpsilon returns a Pareto comparator that treats objective differences
// not larger than eps as ties. With eps == 0 it is identical to Pareto.
func WithEpsilon(eps float64) Comparator {
	if eps < 0 {
		eps = -eps
	}
	return func(a, b *framework.Solution) int {
		aBetter, bBetter := false, false
		for i := range a.Objectives {
			diff := a.Objectives[i] - b.Objectives[i]
			switch {
			case diff < -eps:
				aBetter = true
			case diff > eps:
				bBetter = true
			}
			if aBetter && bBetter {
				return 0
			}
		}
		switch {
		case aBetter:
			return -1
		case bBetter:
			return 1
		}
		return 0
	}
}

// NonDominated returns the points that no other point of the set dominates,
// in their original order. Duplicates are all kept.
func NonDominated(points []framework.ObjectiveSpacePoint) []framework.ObjectiveSpacePoint {
	var out []framework.ObjectiveSpacePoint
	for i, p := range points {
		dominated := false
		for j, q := range points {
			if i != j && Dominates(q, p) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, p)
		}
	}
	return out
}
