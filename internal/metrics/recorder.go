// Package metrics provides observability hooks for pack builds. Components
// receive a Recorder through dependency injection; NoopRecorder is the
// default so callers never need nil checks.
package metrics

import "time"

// Recorder defines the metrics operations observed during builds.
// Implementations may forward to Prometheus or do nothing.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	ObserveResourceCount(n int)
	IncBuildOutcome(outcome string) // outcome: success|failed
	IncChangeResult(changed bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are
// not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) ObserveResourceCount(int)           {}
func (NoopRecorder) IncBuildOutcome(string)             {}
func (NoopRecorder) IncChangeResult(bool)               {}
