package benchmarks

import (
	"context"
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/algorithms"
	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/weights"
)

func quickConfig(evaluations int) ConfigFunc {
	return func(kind algorithms.Kind, problem framework.Problem) algorithms.Config {
		numVars := NumberOfVariables(problem)
		cfg := algorithms.DefaultConfig(kind, numVars)
		cfg.PopulationSize = 100
		cfg.MaxEvaluations = evaluations
		if kind == algorithms.MOEADKind && framework.NumberOfObjectives(problem) == 3 {
			cfg.PopulationSize = weights.LatticeSize(3, 12)
		}
		cfg.NeighborSize = 20
		cfg.Constrained = len(problem.Constraints()) > 0
		return cfg
	}
}

func TestTrueParetoFronts(t *testing.T) {
	tests := []struct {
		problem framework.Problem
		// on reports whether a point lies on the analytical front
		on func(p framework.ObjectiveSpacePoint) bool
	}{
		{NewZDT1(30), func(p framework.ObjectiveSpacePoint) bool { return near(p[1], 1-math.Sqrt(p[0])) }},
		{NewZDT2(30), func(p framework.ObjectiveSpacePoint) bool { return near(p[1], 1-p[0]*p[0]) }},
		{NewDTLZ1(7, 3), func(p framework.ObjectiveSpacePoint) bool { return near(p[0]+p[1]+p[2], 0.5) }},
		{NewDTLZ2(12, 3), func(p framework.ObjectiveSpacePoint) bool { return near(p[0]*p[0]+p[1]*p[1]+p[2]*p[2], 1) }},
	}
	for _, tc := range tests {
		t.Run(tc.problem.Name(), func(t *testing.T) {
			front := tc.problem.TrueParetoFront(100)
			if len(front) == 0 || len(front) > 100 {
				t.Fatalf("got %d points", len(front))
			}
			for _, p := range front {
				if len(p) != framework.NumberOfObjectives(tc.problem) {
					t.Fatalf("point %v has the wrong dimension", p)
				}
				if !tc.on(p) {
					t.Errorf("point %v is not on the front", p)
				}
			}
		})
	}
}

func TestObjectivesOnParetoSet(t *testing.T) {
	// x2..xn = 0.5 puts DTLZ on its front; x2..xn = 0 does the same for ZDT.
	x := make([]float64, 12)
	for i := range x {
		x[i] = 0.5
	}
	x[0], x[1] = 0.3, 0.7
	v := framework.NewRealVariables(x, unitBounds(12))
	s := framework.NewSolution(v, 3)
	framework.Evaluate(NewDTLZ2(12, 3), s)
	if sum := s.Objectives[0]*s.Objectives[0] + s.Objectives[1]*s.Objectives[1] + s.Objectives[2]*s.Objectives[2]; !near(sum, 1) {
		t.Errorf("DTLZ2 point %v off the unit sphere", s.Objectives)
	}

	z := make([]float64, 30)
	z[0] = 0.25
	s = framework.NewSolution(framework.NewRealVariables(z, unitBounds(30)), 2)
	framework.Evaluate(NewZDT1(30), s)
	if !near(s.Objectives[0], 0.25) || !near(s.Objectives[1], 0.5) {
		t.Errorf("ZDT1 objectives = %v, want [0.25 0.5]", s.Objectives)
	}
}

func TestSrinivasConstraints(t *testing.T) {
	p := NewSrinivas()
	feasible := framework.NewSolution(framework.NewRealVariables([]float64{-2.5, 5}, p.Bounds()), 2)
	framework.Evaluate(p, feasible)
	if !feasible.Feasible() {
		t.Errorf("(-2.5, 5) reported infeasible: violation %v", feasible.Violation)
	}

	infeasible := framework.NewSolution(framework.NewRealVariables([]float64{15, -15}, p.Bounds()), 2)
	framework.Evaluate(p, infeasible)
	if infeasible.ViolatedConstraints != 2 || infeasible.Violation <= 0 {
		t.Errorf("(15, -15) violates %d constraints by %v, want 2 and > 0", infeasible.ViolatedConstraints, infeasible.Violation)
	}
}

func TestInitializeWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := NewSrinivas()
	for _, v := range p.Initialize(50, rng) {
		for i, x := range v.(*framework.RealVariables).Values {
			if b := p.Bounds()[i]; x < b.L || x > b.H {
				t.Fatalf("variable %d = %v outside %v", i, x, b)
			}
		}
	}
}

func TestIndividualBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("runs full optimizations")
	}
	tests := []struct {
		name    string
		kind    algorithms.Kind
		problem framework.Problem
		maxIGD  float64
	}{
		{name: "NSGA-II/ZDT1", kind: algorithms.NSGAIIKind, problem: NewZDT1(30), maxIGD: 0.05},
		{name: "NSGA-II/ZDT2", kind: algorithms.NSGAIIKind, problem: NewZDT2(30), maxIGD: 0.05},
		{name: "MOEA/D/ZDT1", kind: algorithms.MOEADKind, problem: NewZDT1(30), maxIGD: 0.1},
		{name: "MOEA/D/DTLZ2_3obj", kind: algorithms.MOEADKind, problem: NewDTLZ2(12, 3), maxIGD: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suite := NewTestSuite(quickConfig(25000), tt.kind)
			suite.AddProblem(tt.problem)
			reports, err := suite.Run(context.Background(), "")
			if err != nil {
				t.Fatal(err)
			}
			r := reports[0]
			t.Logf("%s: %d solutions in the Pareto front, IGD = %.6f", tt.name, r.FrontSize, r.IGD)
			if !r.HasReference {
				t.Fatalf("%s has no reference front", tt.problem.Name())
			}
			if r.IGD > tt.maxIGD {
				t.Errorf("%s: IGD %.6f exceeds threshold %.6f", tt.name, r.IGD, tt.maxIGD)
			}
		})
	}
}

func TestSuiteWritesResults(t *testing.T) {
	suite := NewTestSuite(quickConfig(400), algorithms.NSGAIIKind, algorithms.MOEADKind)
	suite.AddProblem(NewZDT1(10))
	suite.AddProblem(NewSrinivas())

	reports, err := suite.Run(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 4 {
		t.Fatalf("got %d reports, want 4", len(reports))
	}
	for _, r := range reports {
		if r.Result.Evaluations != 400 {
			t.Errorf("%s/%s ran %d evaluations, want 400", r.Algorithm, r.Problem, r.Result.Evaluations)
		}
		if r.Hypervolume < 0 {
			t.Errorf("%s/%s negative hypervolume %v", r.Algorithm, r.Problem, r.Hypervolume)
		}
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		p, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.Name() != name {
			t.Errorf("Lookup(%q) returned %s", name, p.Name())
		}
	}
	if _, err := Lookup("ZDT9"); !errors.Is(err, framework.ErrInvalidConfig) {
		t.Errorf("unknown problem: got %v", err)
	}
	if n := NumberOfVariables(NewDTLZ2(12, 3)); n != 12 {
		t.Errorf("DTLZ2 has %d variables, want 12", n)
	}
}
