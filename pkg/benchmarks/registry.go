package benchmarks

import (
	"sort"

	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/operators"
)

// registry maps a problem name to its standard instance.
var registry = map[string]func() framework.Problem{
	"ZDT1":     func() framework.Problem { return NewZDT1(30) },
	"ZDT2":     func() framework.Problem { return NewZDT2(30) },
	"ZDT3":     func() framework.Problem { return NewZDT3(30) },
	"DTLZ1":    func() framework.Problem { return NewDTLZ1(6, 2) },
	"DTLZ2":    func() framework.Problem { return NewDTLZ2(11, 2) },
	"DTLZ1_3D": func() framework.Problem { return NewDTLZ1(7, 3) },
	"DTLZ2_3D": func() framework.Problem { return NewDTLZ2(12, 3) },
	"Srinivas": func() framework.Problem { return NewSrinivas() },

	"Placement": func() framework.Problem { return NewDefaultPlacement() },
}

// Lookup returns a new instance of the named problem.
func Lookup(name string) (framework.Problem, error) {
	newProblem, ok := registry[name]
	if !ok {
		return nil, framework.InvalidConfigf("unknown problem %q, known problems: %v", name, Names())
	}
	return newProblem(), nil
}

// OperatorProvider is implemented by problems whose encoding needs other
// variation operators than the real-coded defaults.
type OperatorProvider interface {
	Operators() (operators.Crossover, operators.Mutation)
}

// Names lists the registered problems in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumberOfVariables returns the length of the decision vector of p.
func NumberOfVariables(p framework.Problem) int {
	if n, ok := p.(interface{ NumberOfVariables() int }); ok {
		return n.NumberOfVariables()
	}
	if b, ok := p.(interface{ Bounds() []framework.Bounds }); ok {
		return len(b.Bounds())
	}
	return 1
}
