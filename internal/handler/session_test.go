package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/securecookie"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/handler/dto"
	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/service"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	key := securecookie.GenerateRandomKey(32)
	mgr, err := auth.NewSessionManager(string(key), false)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return mgr
}

func registerTestUser(t *testing.T, svc *service.RegistrationService) {
	t.Helper()
	err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "jenny@example.com",
		Password: "Passw0rd",
		Country:  "US",
	})
	if err != nil {
		t.Fatalf("register test user: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeUserStore()
	svc := newRegistrationService(t, store, newFakeGateway(), true)
	registerTestUser(t, svc)

	mgr := newTestSessionManager(t)
	h := NewSessionHandler(svc, mgr, payments.FinancialProductEmbeddedFinance, discardLogger())

	body := `{"email":"jenny@example.com","password":"Passw0rd"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Email != "jenny@example.com" || resp.Data.AccountID != "acct_test_1" {
		t.Errorf("data = %+v", resp.Data)
	}

	// The session cookie must round-trip into a loadable session.
	loadReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		loadReq.AddCookie(c)
	}
	sess, ok := mgr.Load(loadReq)
	if !ok {
		t.Fatal("session cookie did not load")
	}
	if sess.Platform != payments.PlatformUS {
		t.Errorf("platform = %q, want %q", sess.Platform, payments.PlatformUS)
	}
	if sess.FinancialProduct != payments.FinancialProductEmbeddedFinance {
		t.Errorf("financial product = %q", sess.FinancialProduct)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := newRegistrationService(t, store, newFakeGateway(), true)
	registerTestUser(t, svc)

	h := NewSessionHandler(svc, newTestSessionManager(t), payments.FinancialProductEmbeddedFinance, discardLogger())

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"jenny@example.com","password":"Wr0ngPass"}`},
		{"unknown email", `{"email":"nobody@example.com","password":"Passw0rd"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			resp := decodeResponse(t, rec)
			if resp.Error == nil || resp.Error.Message != "Invalid email or password" {
				t.Errorf("error = %+v", resp.Error)
			}
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	store := newFakeUserStore()
	svc := newRegistrationService(t, store, newFakeGateway(), true)
	mgr := newTestSessionManager(t)
	h := NewSessionHandler(svc, mgr, payments.FinancialProductEmbeddedFinance, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "payrail-session" && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("session cookie not expired")
	}
}
