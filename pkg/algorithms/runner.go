package algorithms

import (
	"context"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// Runner is a configured driver ready to run.
type Runner interface {
	framework.Algorithm
	Run(ctx context.Context) (*Result, error)
}

var (
	_ Runner = &NSGAII{}
	_ Runner = &MOEAD{}
)

// New returns the driver registered under kind. WASFGAKind is the NSGA-II
// driver with the ASF ranking forced on.
func New(kind Kind, cfg Config, problem framework.Problem) (Runner, error) {
	switch kind {
	case NSGAIIKind:
		return NewNSGAII(cfg, problem)
	case WASFGAKind:
		cfg.Ranking = ASFRanking
		return NewNSGAII(cfg, problem)
	case MOEADKind:
		return NewMOEAD(cfg, problem)
	}
	return nil, framework.InvalidConfigf("unknown algorithm %q", kind)
}

// Kinds lists the registered drivers.
func Kinds() []Kind {
	return []Kind{NSGAIIKind, WASFGAKind, MOEADKind}
}
