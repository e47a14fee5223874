package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncRegistrationConflict is a no-op.
func (n *NoopRecorder) IncRegistrationConflict() {}

// IncOnboardingLinkIssued is a no-op.
func (n *NoopRecorder) IncOnboardingLinkIssued() {}

// IncOnboardingSkipped is a no-op.
func (n *NoopRecorder) IncOnboardingSkipped() {}

// IncRequirementsProbe is a no-op.
func (n *NoopRecorder) IncRequirementsProbe(source string) {}

// ObserveGatewayDuration is a no-op.
func (n *NoopRecorder) ObserveGatewayDuration(operation string, duration time.Duration) {}

// IncGatewayError is a no-op.
func (n *NoopRecorder) IncGatewayError(operation string) {}
