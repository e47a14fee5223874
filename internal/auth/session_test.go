package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"

	"github.com/payrail/payrail/internal/payments"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()

	key := securecookie.GenerateRandomKey(32)
	m, err := NewSessionManager(string(key), false)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return m
}

func TestNewSessionManager_ShortKey(t *testing.T) {
	t.Parallel()

	_, err := NewSessionManager("too-short", false)
	if !errors.Is(err, ErrSessionKeyTooShort) {
		t.Errorf("expected ErrSessionKeyTooShort, got %v", err)
	}
}

func TestSessionManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	want := Session{
		Email:            "user@example.com",
		Country:          "GB",
		FinancialProduct: payments.FinancialProductEmbeddedFinance,
		AccountID:        "acct_123",
		Platform:         payments.PlatformGB,
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	if err := m.Save(rec, req, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie written")
	}

	next := httptest.NewRequest(http.MethodPost, "/api/onboard", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}

	got, ok := m.Load(next)
	if !ok {
		t.Fatal("Load: no session found")
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSessionManager_LoadWithoutCookie(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/onboard/status", nil)
	if _, ok := m.Load(req); ok {
		t.Error("expected no session for cookieless request")
	}
}

func TestSessionManager_Clear(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	if err := m.Clear(rec, req); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionName && c.MaxAge < 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected expired session cookie")
	}
}

func TestSessionContext(t *testing.T) {
	t.Parallel()

	if _, ok := SessionFromContext(context.Background()); ok {
		t.Error("empty context should have no session")
	}

	s := Session{AccountID: "acct_1", Email: "u@example.com"}
	ctx := ContextWithSession(context.Background(), s)

	got, ok := SessionFromContext(ctx)
	if !ok || got.AccountID != "acct_1" {
		t.Errorf("SessionFromContext = (%+v, %v)", got, ok)
	}
}
