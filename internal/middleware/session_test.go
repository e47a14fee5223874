package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/securecookie"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/handler/dto"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	key := securecookie.GenerateRandomKey(32)
	mgr, err := auth.NewSessionManager(string(key), false)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return mgr
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	mgr := newSessionManager(t)

	handler := RequireSession(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/onboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var resp dto.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if resp.Error == nil || resp.Error.Message != "Authentication required" {
		t.Errorf("error = %+v, want Authentication required", resp.Error)
	}
}

func TestRequireSessionPassesSessionToHandler(t *testing.T) {
	mgr := newSessionManager(t)

	// Obtain a valid cookie by saving a session first.
	saveRec := httptest.NewRecorder()
	saveReq := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	err := mgr.Save(saveRec, saveReq, auth.Session{
		Email:     "jenny@example.com",
		Country:   "US",
		AccountID: "acct_123",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got auth.Session
	handler := RequireSession(mgr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := auth.SessionFromContext(r.Context())
		if !ok {
			t.Fatal("session missing from context")
		}
		got = sess
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/onboard", nil)
	for _, c := range saveRec.Result().Cookies() {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.AccountID != "acct_123" || got.Email != "jenny@example.com" {
		t.Errorf("session = %+v", got)
	}
}
