package fstabgen

import (
	metrics "github.com/rcrowley/go-metrics"
)

// Metrics counts the work done by a Builder.
type Metrics struct {
	Registry  metrics.Registry
	Generated metrics.Counter
	Rejected  metrics.Counter
	Duration  metrics.Timer
}

// NewMetrics registers the builder metrics in r. Registering twice in the
// same registry returns the existing metrics.
func NewMetrics(r metrics.Registry) *Metrics {
	return &Metrics{
		Registry:  r,
		Generated: metrics.GetOrRegisterCounter("lines.generated", r),
		Rejected:  metrics.GetOrRegisterCounter("validation.failed", r),
		Duration:  metrics.GetOrRegisterTimer("build.duration", r),
	}
}
