package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered        uint64
	RegistrationConflicts  uint64
	OnboardingLinksIssued  uint64
	OnboardingsSkipped     uint64
	RequirementsProbes     map[string]uint64
	GatewayCalls           map[string]uint64
	GatewayErrors          map[string]uint64
	GatewayDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu sync.Mutex

	usersRegistered        uint64
	registrationConflicts  uint64
	onboardingLinksIssued  uint64
	onboardingsSkipped     uint64
	requirementsProbes     map[string]uint64
	gatewayCalls           map[string]uint64
	gatewayErrors          map[string]uint64
	gatewayDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		requirementsProbes: make(map[string]uint64),
		gatewayCalls:       make(map[string]uint64),
		gatewayErrors:      make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	probes := make(map[string]uint64, len(m.requirementsProbes))
	for k, v := range m.requirementsProbes {
		probes[k] = v
	}
	calls := make(map[string]uint64, len(m.gatewayCalls))
	for k, v := range m.gatewayCalls {
		calls[k] = v
	}
	gatewayErrs := make(map[string]uint64, len(m.gatewayErrors))
	for k, v := range m.gatewayErrors {
		gatewayErrs[k] = v
	}

	return Snapshot{
		UsersRegistered:        m.usersRegistered,
		RegistrationConflicts:  m.registrationConflicts,
		OnboardingLinksIssued:  m.onboardingLinksIssued,
		OnboardingsSkipped:     m.onboardingsSkipped,
		RequirementsProbes:     probes,
		GatewayCalls:           calls,
		GatewayErrors:          gatewayErrs,
		GatewayDurationTotalNs: m.gatewayDurationTotalNs,
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usersRegistered++
}

// IncRegistrationConflict increments the duplicate-registration counter.
func (m *InMemoryRecorder) IncRegistrationConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrationConflicts++
}

// IncOnboardingLinkIssued increments the hosted-link counter.
func (m *InMemoryRecorder) IncOnboardingLinkIssued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onboardingLinksIssued++
}

// IncOnboardingSkipped increments the demo-bypass counter.
func (m *InMemoryRecorder) IncOnboardingSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onboardingsSkipped++
}

// IncRequirementsProbe counts a requirements probe by source.
func (m *InMemoryRecorder) IncRequirementsProbe(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requirementsProbes[source]++
}

// ObserveGatewayDuration records a provider call duration.
func (m *InMemoryRecorder) ObserveGatewayDuration(operation string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gatewayCalls[operation]++
	m.gatewayDurationTotalNs += duration.Nanoseconds()
}

// IncGatewayError counts a provider call failure.
func (m *InMemoryRecorder) IncGatewayError(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gatewayErrors[operation]++
}
