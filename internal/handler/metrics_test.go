package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/payrail/payrail/internal/metrics"
)

func TestMetricsExposition(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncUserRegistered()
	recorder.IncUserRegistered()
	recorder.IncRegistrationConflict()
	recorder.IncOnboardingLinkIssued()
	recorder.IncOnboardingSkipped()
	recorder.IncRequirementsProbe("cache")
	recorder.IncRequirementsProbe("provider")
	recorder.ObserveGatewayDuration("create_account", 250*time.Millisecond)
	recorder.IncGatewayError("create_account")

	h := NewMetricsHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain exposition", ct)
	}

	body := rec.Body.String()
	wantLines := []string{
		"payrail_users_registered_total 2",
		"payrail_registration_conflicts_total 1",
		"payrail_onboarding_links_issued_total 1",
		"payrail_onboardings_skipped_total 1",
		`payrail_requirements_probes_total{source="cache"} 1`,
		`payrail_requirements_probes_total{source="provider"} 1`,
		`payrail_gateway_calls_total{operation="create_account"} 1`,
		`payrail_gateway_errors_total{operation="create_account"} 1`,
		"payrail_gateway_duration_seconds_sum 0.250000",
	}
	for _, line := range wantLines {
		if !strings.Contains(body, line) {
			t.Errorf("exposition missing %q\nbody:\n%s", line, body)
		}
	}
}

func TestMetricsUnavailableWithoutSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
