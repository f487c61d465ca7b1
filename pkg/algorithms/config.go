package algorithms

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/utils/clock"

	"github.com/mihai-snyk/moea/pkg/framework"
	"github.com/mihai-snyk/moea/pkg/operators"
	"github.com/mihai-snyk/moea/pkg/scalarize"
	"github.com/mihai-snyk/moea/pkg/weights"
)

// Kind names an algorithm driver.
type Kind string

const (
	NSGAIIKind Kind = "nsgaii"
	MOEADKind  Kind = "moead"
	// WASFGAKind is the NSGA-II driver ranking by achievement scalarizing
	// utility instead of Pareto dominance.
	WASFGAKind Kind = "wasfga"
)

// RankingType selects the ranking strategy of the NSGA-II driver.
type RankingType string

const (
	DominanceRanking RankingType = "dominance"
	ASFRanking       RankingType = "asf"
)

// Config enumerates every option of the drivers. It is validated once by
// NewNSGAII / NewMOEAD and must not be modified afterwards.
type Config struct {
	PopulationSize int
	MaxEvaluations int
	// Deadline bounds the wall time of a run when positive.
	Deadline time.Duration
	Seed     uint64

	// NeighborSize is T, the size of every MOEA/D neighborhood.
	NeighborSize int
	// MaxReplaced is nr, the most slots a single offspring may take over.
	MaxReplaced int
	// Delta is the probability of mating inside the neighborhood.
	Delta       float64
	Scalarizing scalarize.Type
	// Weights provides the MOEA/D subproblems, and the ASF ranking weights.
	Weights weights.Source

	// Ranking defaults to DominanceRanking.
	Ranking RankingType
	// ReferencePoint is the aspiration point of the ASF ranking. The ideal
	// point of the run is used when it is empty.
	ReferencePoint []float64

	// SteadyState makes NSGA-II produce and select one offspring at a time.
	SteadyState bool
	// Epsilon, when positive, makes NSGA-II dominance treat objective
	// differences up to Epsilon as ties.
	Epsilon float64
	// Constrained turns on constrained dominance in NSGA-II and the
	// violation threshold comparator in MOEA/D.
	Constrained bool
	// ArchiveSize attaches a crowding archive of that capacity when positive.
	ArchiveSize int

	// Workers > 1 runs MOEA/D with that many workers, each owning a fixed
	// partition of the subproblems.
	Workers int
	// EvaluationWorkers > 1 evaluates NSGA-II offspring in parallel.
	EvaluationWorkers int

	Crossover operators.Crossover
	Mutation  operators.Mutation
	// Selection defaults to a binary tournament.
	Selection operators.Selection

	// Clock defaults to the real clock.
	Clock clock.PassiveClock
}

// DefaultConfig returns the usual settings for kind with SBX and polynomial
// mutation tuned for numVars real variables.
func DefaultConfig(kind Kind, numVars int) Config {
	cfg := Config{
		PopulationSize: 100,
		MaxEvaluations: 25000,
		NeighborSize:   20,
		MaxReplaced:    2,
		Delta:          0.9,
		Scalarizing:    scalarize.TchebycheffType,
		Weights:        weights.Lattice{},
		Ranking:        DominanceRanking,
		Crossover:      &operators.SBX{Probability: 0.9, DistributionIndex: operators.DefaultDistributionIndex},
		Mutation:       &operators.PolynomialMutation{Probability: 1.0 / float64(max(numVars, 1)), DistributionIndex: operators.DefaultDistributionIndex},
		Seed:           1,
	}
	switch kind {
	case MOEADKind:
		cfg.PopulationSize = 300
		cfg.MaxEvaluations = 150000
		cfg.Crossover = &operators.DifferentialEvolution{CR: 1.0, F: 0.5}
	case WASFGAKind:
		cfg.Ranking = ASFRanking
		cfg.Scalarizing = scalarize.ASFType
		cfg.Weights = weights.Uniform2D{Epsilon: 0.01}
	}
	return cfg
}

// Validate checks the options used by kind. Errors name the offending field
// below fldPath.
func (c *Config) Validate(kind Kind, fldPath *field.Path) field.ErrorList {
	var errs field.ErrorList

	if c.PopulationSize < 1 {
		errs = append(errs, field.Invalid(fldPath.Child("populationSize"), c.PopulationSize, "must be positive"))
	}
	if c.MaxEvaluations < c.PopulationSize {
		errs = append(errs, field.Invalid(fldPath.Child("maxEvaluations"), c.MaxEvaluations, "must be at least the population size"))
	}
	if c.Deadline < 0 {
		errs = append(errs, field.Invalid(fldPath.Child("deadline"), c.Deadline.String(), "must not be negative"))
	}
	if c.ArchiveSize < 0 {
		errs = append(errs, field.Invalid(fldPath.Child("archiveSize"), c.ArchiveSize, "must not be negative"))
	}
	if c.EvaluationWorkers < 0 {
		errs = append(errs, field.Invalid(fldPath.Child("evaluationWorkers"), c.EvaluationWorkers, "must not be negative"))
	}
	if c.Crossover == nil {
		errs = append(errs, field.Required(fldPath.Child("crossover"), ""))
	}
	if c.Mutation == nil {
		errs = append(errs, field.Required(fldPath.Child("mutation"), ""))
	}

	switch kind {
	case MOEADKind:
		errs = append(errs, c.validateMOEAD(fldPath)...)
	case NSGAIIKind, WASFGAKind:
		errs = append(errs, c.validateNSGAII(fldPath)...)
	default:
		errs = append(errs, field.NotSupported(fldPath.Child("algorithm"), string(kind), []string{string(NSGAIIKind), string(MOEADKind), string(WASFGAKind)}))
	}
	return errs
}

func (c *Config) validateMOEAD(fldPath *field.Path) field.ErrorList {
	var errs field.ErrorList

	if c.NeighborSize < 1 || c.NeighborSize > c.PopulationSize {
		errs = append(errs, field.Invalid(fldPath.Child("neighborSize"), c.NeighborSize, fmt.Sprintf("must be in [1, %d]", c.PopulationSize)))
	}
	if c.MaxReplaced < 1 || c.MaxReplaced > c.PopulationSize {
		errs = append(errs, field.Invalid(fldPath.Child("maxReplaced"), c.MaxReplaced, fmt.Sprintf("must be in [1, %d]", c.PopulationSize)))
	}
	if c.Delta < 0 || c.Delta > 1 {
		errs = append(errs, field.Invalid(fldPath.Child("delta"), c.Delta, "must be in [0, 1]"))
	}
	if _, err := scalarize.New(c.Scalarizing); err != nil {
		errs = append(errs, field.NotSupported(fldPath.Child("scalarizing"), string(c.Scalarizing), []string{
			string(scalarize.TchebycheffType), string(scalarize.ASFType), string(scalarize.WeightedSumType), string(scalarize.PBIType),
		}))
	}
	if c.Weights == nil {
		errs = append(errs, field.Required(fldPath.Child("weights"), ""))
	}
	if c.Workers < 0 || c.Workers > c.PopulationSize {
		errs = append(errs, field.Invalid(fldPath.Child("workers"), c.Workers, fmt.Sprintf("must be in [0, %d]", c.PopulationSize)))
	}
	if c.SteadyState {
		errs = append(errs, field.Forbidden(fldPath.Child("steadyState"), "only supported by NSGA-II"))
	}
	if c.Epsilon != 0 {
		errs = append(errs, field.Forbidden(fldPath.Child("epsilon"), "only supported by NSGA-II"))
	}
	return errs
}

func (c *Config) validateNSGAII(fldPath *field.Path) field.ErrorList {
	var errs field.ErrorList

	switch c.Ranking {
	case "", DominanceRanking:
	case ASFRanking:
		if c.Weights == nil {
			errs = append(errs, field.Required(fldPath.Child("weights"), "needed by the asf ranking"))
		}
		if _, err := scalarize.New(c.Scalarizing); err != nil {
			errs = append(errs, field.NotSupported(fldPath.Child("scalarizing"), string(c.Scalarizing), []string{
				string(scalarize.TchebycheffType), string(scalarize.ASFType), string(scalarize.WeightedSumType), string(scalarize.PBIType),
			}))
		}
	default:
		errs = append(errs, field.NotSupported(fldPath.Child("ranking"), string(c.Ranking), []string{string(DominanceRanking), string(ASFRanking)}))
	}
	if c.Workers > 1 {
		errs = append(errs, field.Forbidden(fldPath.Child("workers"), "NSGA-II runs a single loop; use evaluationWorkers"))
	}
	if c.Epsilon < 0 {
		errs = append(errs, field.Invalid(fldPath.Child("epsilon"), c.Epsilon, "must not be negative"))
	}
	return errs
}

// validate runs Validate and folds the result into one ErrInvalidConfig.
func (c *Config) validate(kind Kind) error {
	errs := c.Validate(kind, nil)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", framework.ErrInvalidConfig, utilerrors.NewAggregate(errs.ToAggregate().Errors()))
}

func (c *Config) clock() clock.PassiveClock {
	if c.Clock != nil {
		return c.Clock
	}
	return clock.RealClock{}
}
