package framework

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks a fatal configuration error (bad T, nr,
	// population size, ...). It is raised before any population mutation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDimensionMismatch marks objective or weight vectors whose length
	// does not match the number of objectives of the run.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrRankingInvariant marks a ranking that did not assign every solution
	// to exactly one front. It indicates a programming fault.
	ErrRankingInvariant = errors.New("ranking invariant violated")
)

// InvalidConfigf returns an error wrapping ErrInvalidConfig.
func InvalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// DimensionMismatchf returns an error wrapping ErrDimensionMismatch.
func DimensionMismatchf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDimensionMismatch, fmt.Sprintf(format, args...))
}
