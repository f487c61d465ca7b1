package operators_test

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/operators"
)

func realParents() (*framework.RealVariables, *framework.RealVariables) {
	b := []framework.Bounds{{L: 0, H: 1}, {L: 0, H: 1}, {L: -5, H: 5}}
	return framework.NewRealVariables([]float64{0.1, 0.9, -4}, b),
		framework.NewRealVariables([]float64{0.8, 0.2, 4}, b)
}

func TestSBXRespectsBoundsAndParents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p1, p2 := realParents()
	want1 := append([]float64(nil), p1.Values...)

	sbx := &operators.SBX{Probability: 1.0}
	for i := 0; i < 200; i++ {
		children, err := sbx.Crossover([]framework.Variables{p1, p2}, rng)
		if err != nil {
			t.Fatalf("Crossover failed: %v", err)
		}
		if len(children) != 2 {
			t.Fatalf("got %d children", len(children))
		}
		for _, c := range children {
			rv := c.(*framework.RealVariables)
			for j, v := range rv.Values {
				if v < rv.Bounds[j].L || v > rv.Bounds[j].H {
					t.Fatalf("child variable %d = %v outside %v", j, v, rv.Bounds[j])
				}
			}
		}
	}
	if diff := cmp.Diff(want1, p1.Values); diff != "" {
		t.Errorf("parent modified (-want +got):\n%s", diff)
	}
}

func TestSBXWithoutCrossoverCopies(t *testing.T) {
	p1, p2 := realParents()
	children, err := (&operators.SBX{Probability: 0}).Crossover([]framework.Variables{p1, p2}, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	c1 := children[0].(*framework.RealVariables)
	if diff := cmp.Diff(p1.Values, c1.Values); diff != "" {
		t.Errorf("child differs from parent (-parent +child):\n%s", diff)
	}
	c1.Values[0] = 42
	if p1.Values[0] == 42 {
		t.Errorf("child aliases parent")
	}
}

func TestSBXKeepsEqualParents(t *testing.T) {
	b := []framework.Bounds{{L: 0, H: 1}, {L: 0, H: 1}}
	p1 := framework.NewRealVariables([]float64{0.3, 0.6}, b)
	p2 := framework.NewRealVariables([]float64{0.3, 0.6}, b)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		children, err := (&operators.SBX{Probability: 1}).Crossover([]framework.Variables{p1, p2}, rng)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range children {
			if diff := cmp.Diff(p1.Values, c.(*framework.RealVariables).Values); diff != "" {
				t.Fatalf("child of identical parents changed (-want +got):\n%s", diff)
			}
		}
	}
}

func TestSBXChildrenCenterOnParents(t *testing.T) {
	b := []framework.Bounds{{L: 0, H: 1}}
	p1 := framework.NewRealVariables([]float64{0.2}, b)
	p2 := framework.NewRealVariables([]float64{0.8}, b)
	rng := rand.New(rand.NewSource(6))
	sbx := &operators.SBX{Probability: 1, DistributionIndex: 20}

	const draws = 2000
	sum, near := 0.0, 0
	for i := 0; i < draws; i++ {
		children, err := sbx.Crossover([]framework.Variables{p1, p2}, rng)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range children {
			v := c.(*framework.RealVariables).Values[0]
			sum += v
			if math.Abs(v-0.2) < 0.1 || math.Abs(v-0.8) < 0.1 {
				near++
			}
		}
	}
	if mean := sum / (2 * draws); math.Abs(mean-0.5) > 0.02 {
		t.Errorf("mean child value %v, want about 0.5", mean)
	}
	// A distribution index of 20 keeps most children close to a parent.
	if share := float64(near) / (2 * draws); share < 0.9 {
		t.Errorf("%.2f of the children lie near a parent, want at least 0.9", share)
	}
}

func TestPolynomialMutationFixedVariable(t *testing.T) {
	v := framework.NewRealVariables([]float64{3, 0.5}, []framework.Bounds{{L: 3, H: 3}, {L: 0, H: 1}})
	if err := (&operators.PolynomialMutation{Probability: 1}).Mutate(v, rand.New(rand.NewSource(7))); err != nil {
		t.Fatal(err)
	}
	if v.Values[0] != 3 {
		t.Errorf("fixed variable mutated to %v", v.Values[0])
	}
}

func TestDifferentialEvolutionEmptyVector(t *testing.T) {
	empty := framework.NewRealVariables(nil, nil)
	children, err := (&operators.DifferentialEvolution{CR: 0.5, F: 0.5}).Crossover([]framework.Variables{empty, empty, empty}, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 1 || children[0].Len() != 0 {
		t.Errorf("got %v, want one empty child", children)
	}
}

func TestPolynomialMutationStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p, _ := realParents()
	m := &operators.PolynomialMutation{Probability: 1}
	for i := 0; i < 500; i++ {
		if err := m.Mutate(p, rng); err != nil {
			t.Fatal(err)
		}
		for j, v := range p.Values {
			if v < p.Bounds[j].L || v > p.Bounds[j].H {
				t.Fatalf("variable %d = %v outside bounds", j, v)
			}
		}
	}
}

func TestDifferentialEvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	b := []framework.Bounds{{L: -10, H: 10}, {L: -10, H: 10}}
	current := framework.NewRealVariables([]float64{0, 0}, b)
	m1 := framework.NewRealVariables([]float64{2, 2}, b)
	m2 := framework.NewRealVariables([]float64{1, 1}, b)

	de := &operators.DifferentialEvolution{CR: 1.0, F: 0.5}
	children, err := de.Crossover([]framework.Variables{current, m1, m2}, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 1 {
		t.Fatalf("got %d children, want 1", len(children))
	}
	if diff := cmp.Diff([]float64{0.5, 0.5}, children[0].(*framework.RealVariables).Values); diff != "" {
		t.Errorf("child (-want +got):\n%s", diff)
	}

	// With CR = 0 exactly one variable (jRand) is taken from the mutant.
	de.CR = 0
	children, _ = de.Crossover([]framework.Variables{current, m1, m2}, rng)
	changed := 0
	for _, v := range children[0].(*framework.RealVariables).Values {
		if v != 0 {
			changed++
		}
	}
	if changed != 1 {
		t.Errorf("%d variables changed with CR=0, want 1", changed)
	}

	if _, err := de.Crossover([]framework.Variables{current, m1}, rng); !errors.Is(err, framework.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for 2 parents, got %v", err)
	}
}

func TestIntegerCrossovers(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := make([]framework.IntBounds, 8)
	for i := range b {
		b[i] = framework.IntBounds{L: 0, H: 9}
	}
	p1 := framework.NewIntegerVariables([]int{0, 0, 1, 1, 2, 2, 3, 3}, b)
	p2 := framework.NewIntegerVariables([]int{9, 8, 7, 6, 5, 4, 8, 2}, b)

	for _, kind := range []operators.IntegerCrossoverKind{operators.OnePoint, operators.TwoPoint, operators.Uniform, operators.KPoint, operators.Grouped} {
		t.Run(string(kind), func(t *testing.T) {
			c := &operators.IntegerCrossover{Kind: kind, Probability: 1, K: 3}
			for trial := 0; trial < 50; trial++ {
				children, err := c.Crossover([]framework.Variables{p1, p2}, rng)
				if err != nil {
					t.Fatal(err)
				}
				c1 := children[0].(*framework.IntegerVariables).Values
				c2 := children[1].(*framework.IntegerVariables).Values
				for i := range c1 {
					// Every position keeps one gene of each parent.
					ok := (c1[i] == p1.Values[i] && c2[i] == p2.Values[i]) ||
						(c1[i] == p2.Values[i] && c2[i] == p1.Values[i])
					if !ok {
						t.Fatalf("position %d: children (%d, %d) from parents (%d, %d)", i, c1[i], c2[i], p1.Values[i], p2.Values[i])
					}
				}
				if kind == operators.Grouped {
					// Genes sharing a value in p1 travel together.
					for i := 0; i < len(c1); i += 2 {
						if (c1[i] == p1.Values[i]) != (c1[i+1] == p1.Values[i+1]) {
							t.Fatalf("group at %d split: %v", i, c1)
						}
					}
				}
			}
		})
	}

	_, err := (&operators.IntegerCrossover{Kind: "bogus", Probability: 1}).Crossover([]framework.Variables{p1, p2}, rng)
	if !errors.Is(err, framework.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRandomResetMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	x := framework.NewIntegerVariables([]int{0, 0, 0}, []framework.IntBounds{{L: 2, H: 4}, {L: 2, H: 4}, {L: 2, H: 4}})
	m := &operators.RandomResetMutation{Probability: 1}
	for i := 0; i < 100; i++ {
		m.Mutate(x, rng)
		for _, v := range x.Values {
			if v < 2 || v > 4 {
				t.Fatalf("gene %d outside [2, 4]", v)
			}
		}
	}
}

func TestBinaryOperators(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := framework.NewBinaryVariables([]bool{true, false, true})
	(&operators.BitFlipMutation{Probability: 1}).Mutate(x, rng)
	if diff := cmp.Diff([]bool{false, true, false}, x.Bits); diff != "" {
		t.Errorf("bits (-want +got):\n%s", diff)
	}

	p1 := framework.NewBinaryVariables([]bool{true, true, true, true})
	p2 := framework.NewBinaryVariables([]bool{false, false, false, false})
	children, err := (&operators.SinglePointBinaryCrossover{Probability: 1}).Crossover([]framework.Variables{p1, p2}, rng)
	if err != nil {
		t.Fatal(err)
	}
	c1 := children[0].(*framework.BinaryVariables).Bits
	c2 := children[1].(*framework.BinaryVariables).Bits
	for i := range c1 {
		if c1[i] == c2[i] {
			t.Errorf("bit %d identical in both children", i)
		}
	}

	if err := (&operators.BitFlipMutation{}).Mutate(p1.Clone().(*framework.BinaryVariables), rng); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&operators.BitFlipMutation{}).Mutate(framework.NewPermutationVariables([]int{0}), rng); !errors.Is(err, framework.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for wrong kind, got %v", err)
	}
}

func isPermutation(order []int) bool {
	s := append([]int(nil), order...)
	sort.Ints(s)
	for i, v := range s {
		if v != i {
			return false
		}
	}
	return true
}

func TestPermutationOperators(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	p1 := framework.NewPermutationVariables([]int{0, 1, 2, 3, 4, 5, 6, 7})
	p2 := framework.NewPermutationVariables([]int{7, 3, 5, 1, 0, 6, 2, 4})

	pmx := &operators.PMX{Probability: 1}
	for i := 0; i < 100; i++ {
		children, err := pmx.Crossover([]framework.Variables{p1, p2}, rng)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range children {
			if order := c.(*framework.PermutationVariables).Order; !isPermutation(order) {
				t.Fatalf("PMX child %v is not a permutation", order)
			}
		}
	}

	x := p2.Clone().(*framework.PermutationVariables)
	(&operators.SwapMutation{Probability: 1}).Mutate(x, rng)
	if !isPermutation(x.Order) {
		t.Errorf("swap produced %v", x.Order)
	}
	diff := 0
	for i := range x.Order {
		if x.Order[i] != p2.Order[i] {
			diff++
		}
	}
	if diff != 2 {
		t.Errorf("swap changed %d positions, want 2", diff)
	}
}

func TestTournament(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	pop := make([]*framework.Solution, 4)
	for i := range pop {
		pop[i] = framework.NewSolution(nil, 2)
		pop[i].Rank = i
	}

	// With a large tournament the best rank wins almost surely.
	sel := &operators.Tournament{Size: 64}
	if got := sel.Select(pop, rng); got.Rank != 0 {
		t.Errorf("selected rank %d, want 0", got.Rank)
	}

	counts := make([]int, 4)
	for i := 0; i < 4000; i++ {
		counts[(&operators.Tournament{}).Select(pop, rng).Rank]++
	}
	if counts[0] <= counts[3] {
		t.Errorf("binary tournament favours worse ranks: %v", counts)
	}
}

func TestDistinctIndices(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	got := operators.DistinctIndices([]int{3, 4, 5, 6}, 2, 4, rng)
	if len(got) != 2 || got[0] == got[1] {
		t.Fatalf("got %v", got)
	}
	for _, k := range got {
		if k == 4 {
			t.Errorf("skipped index drawn: %v", got)
		}
	}

	// Too few candidates: sampling with replacement.
	got = operators.DistinctIndices([]int{1, 2}, 3, 1, rng)
	if diff := cmp.Diff([]int{2, 2, 2}, got); diff != "" {
		t.Errorf("fallback (-want +got):\n%s", diff)
	}
}
