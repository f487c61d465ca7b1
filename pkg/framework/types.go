package framework

import (
	"golang.org/x/exp/rand"
)

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// ObjectiveFunc maps a decision vector to one objective value (minimized).
type ObjectiveFunc func(Variables) float64

// Constraint returns by how much x violates it. A satisfied constraint
// returns 0; any positive value is the violation magnitude.
type Constraint func(Variables) float64

// Problem describes the contract a specific multi-objective problem needs to implement.
type Problem interface {
	Name() string

	ObjectiveFuncs() []ObjectiveFunc
	Constraints() []Constraint

	// Initialize draws popSize random decision vectors inside the problem bounds.
	Initialize(popSize int, rng *rand.Rand) []Variables

	// TrueParetoFront is optional due to the difficulty of finding the true front
	// in some types of problems. When there isn't a way to find the true front,
	// just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}

// Algorithm describes the contract that a MOO algorithm needs to implement.
type Algorithm interface {
	Name() string
}

// Bounds holds the closed interval [L, H] of a real variable.
type Bounds struct {
	L float64
	H float64
}

// IntBounds holds the closed interval [L, H] of an integer variable.
type IntBounds struct {
	L int
	H int
}

// Solution is a candidate: its decision variables, the objective values
// computed for them and the metadata the selection engine assigns.
//
// A Solution belongs to exactly one container at a time. Moving a solution
// into another population or archive must go through Copy.
type Solution struct {
	Variables  Variables
	Objectives ObjectiveSpacePoint

	// Violation is the total constraint violation (0 when feasible).
	Violation float64
	// ViolatedConstraints counts the constraints with a positive violation.
	ViolatedConstraints int

	// Rank is the index of the non-dominated front the solution belongs to.
	Rank int
	// Distance is the crowding distance inside its front.
	Distance float64
	// Fitness holds the last scalarized value computed for the solution.
	Fitness float64
}

// NewSolution wraps vars in a Solution with room for numObjectives objectives.
func NewSolution(vars Variables, numObjectives int) *Solution {
	return &Solution{
		Variables:  vars,
		Objectives: make(ObjectiveSpacePoint, numObjectives),
	}
}

// Copy returns a deep copy of s. Variables and objectives are duplicated and
// the metadata is carried over.
func (s *Solution) Copy() *Solution {
	c := *s
	if s.Variables != nil {
		c.Variables = s.Variables.Clone()
	}
	c.Objectives = make(ObjectiveSpacePoint, len(s.Objectives))
	copy(c.Objectives, s.Objectives)
	return &c
}

// ResetMetadata clears the fields owned by the selection engine.
func (s *Solution) ResetMetadata() {
	s.Rank = 0
	s.Distance = 0
	s.Fitness = 0
}

// Feasible reports whether s satisfies every constraint.
func (s *Solution) Feasible() bool {
	return s.ViolatedConstraints == 0 && s.Violation == 0
}

// NumberOfObjectives returns M for the given problem.
func NumberOfObjectives(p Problem) int {
	return len(p.ObjectiveFuncs())
}

// Evaluate computes the objectives and the constraint violation of s.
func Evaluate(p Problem, s *Solution) {
	objectives := p.ObjectiveFuncs()
	if len(s.Objectives) != len(objectives) {
		s.Objectives = make(ObjectiveSpacePoint, len(objectives))
	}
	for i, objFunc := range objectives {
		s.Objectives[i] = objFunc(s.Variables)
	}

	s.Violation = 0
	s.ViolatedConstraints = 0
	for _, c := range p.Constraints() {
		if v := c(s.Variables); v > 0 {
			s.Violation += v
			s.ViolatedConstraints++
		}
	}
}

// Objectives collects the objective vectors of a set of solutions.
func Objectives(set []*Solution) []ObjectiveSpacePoint {
	points := make([]ObjectiveSpacePoint, len(set))
	for i, s := range set {
		points[i] = s.Objectives
	}
	return points
}

// CheckObjectives verifies that every solution in set carries exactly m objectives.
func CheckObjectives(set []*Solution, m int) error {
	for i, s := range set {
		if s == nil {
			return InvalidConfigf("solution %d is nil", i)
		}
		if len(s.Objectives) != m {
			return DimensionMismatchf("solution %d has %d objectives, want %d", i, len(s.Objectives), m)
		}
	}
	return nil
}
