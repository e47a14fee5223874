package handler

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/payrail/payrail/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "payrail_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "payrail_registration_conflicts_total %d\n", snap.RegistrationConflicts)

	writeMetric(w, "payrail_onboarding_links_issued_total %d\n", snap.OnboardingLinksIssued)
	writeMetric(w, "payrail_onboardings_skipped_total %d\n", snap.OnboardingsSkipped)

	for _, source := range sortedKeys(snap.RequirementsProbes) {
		writeMetric(w, "payrail_requirements_probes_total{source=%q} %d\n", source, snap.RequirementsProbes[source])
	}

	for _, op := range sortedKeys(snap.GatewayCalls) {
		writeMetric(w, "payrail_gateway_calls_total{operation=%q} %d\n", op, snap.GatewayCalls[op])
	}
	for _, op := range sortedKeys(snap.GatewayErrors) {
		writeMetric(w, "payrail_gateway_errors_total{operation=%q} %d\n", op, snap.GatewayErrors[op])
	}
	writeMetric(w, "payrail_gateway_duration_seconds_sum %.6f\n", float64(snap.GatewayDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func sortedKeys(m map[string]uint64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
