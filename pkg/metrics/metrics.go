// Package metrics exposes the prometheus collectors updated by the
// algorithm drivers.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "moea"

var (
	Evaluations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Number of solution evaluations.",
	}, []string{"algorithm", "problem"})

	Generations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Number of completed generations (NSGA-II) or subproblem sweeps (MOEA/D).",
	}, []string{"algorithm", "problem"})

	Replacements = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "replacements_total",
		Help:      "Number of population slots taken over by an offspring.",
	}, []string{"algorithm", "problem"})

	FirstFrontSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "first_front_size",
		Help:      "Size of the non-dominated front of the current population.",
	}, []string{"algorithm", "problem"})

	ArchiveSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "archive_size",
		Help:      "Number of solutions in the external archive.",
	}, []string{"algorithm", "problem"})

	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of complete runs.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"algorithm", "problem"})
)

// Register adds every collector to reg. Collectors reg already holds are
// skipped, so a registry may be handed in more than once.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		Evaluations,
		Generations,
		Replacements,
		FirstFrontSize,
		ArchiveSize,
		RunDuration,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}
