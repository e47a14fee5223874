// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Registration metrics
	IncUserRegistered()
	IncRegistrationConflict()

	// Onboarding metrics
	IncOnboardingLinkIssued()
	IncOnboardingSkipped()
	IncRequirementsProbe(source string) // source: "cache" or "provider"

	// Provider gateway metrics
	ObserveGatewayDuration(operation string, duration time.Duration)
	IncGatewayError(operation string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
