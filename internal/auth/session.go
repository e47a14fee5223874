package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/payrail/payrail/internal/payments"
)

const (
	// sessionName is the cookie name for the session.
	sessionName = "payrail-session"

	emailKey            = "email"
	countryKey          = "country"
	financialProductKey = "financial_product"
	accountIDKey        = "account_id"
	platformKey         = "platform"
)

// ErrSessionKeyTooShort indicates the configured session key has
// insufficient entropy.
var ErrSessionKeyTooShort = errors.New("session key must be at least 32 bytes")

// Session is the account context carried by the signed session cookie
// and consumed by the onboarding flow.
type Session struct {
	Email            string
	Country          string
	FinancialProduct string
	AccountID        string
	Platform         payments.Platform
}

// SessionManager reads and writes the cookie session.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a session manager backed by a signed
// cookie store. secure controls the cookie's Secure flag.
func NewSessionManager(key string, secure bool) (*SessionManager, error) {
	if len(key) < 32 {
		return nil, ErrSessionKeyTooShort
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // one day
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store}, nil
}

// Save writes the session to the response cookie.
func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, s Session) error {
	sess, _ := m.store.Get(r, sessionName)
	sess.Values[emailKey] = s.Email
	sess.Values[countryKey] = s.Country
	sess.Values[financialProductKey] = s.FinancialProduct
	sess.Values[accountIDKey] = s.AccountID
	sess.Values[platformKey] = string(s.Platform)
	return sess.Save(r, w)
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

// Load reads the session from the request cookie. The second return
// value is false when no authenticated session is present.
func (m *SessionManager) Load(r *http.Request) (Session, bool) {
	sess, err := m.store.Get(r, sessionName)
	if err != nil {
		return Session{}, false
	}

	accountID, _ := sess.Values[accountIDKey].(string)
	if accountID == "" {
		return Session{}, false
	}

	s := Session{AccountID: accountID}
	s.Email, _ = sess.Values[emailKey].(string)
	s.Country, _ = sess.Values[countryKey].(string)
	s.FinancialProduct, _ = sess.Values[financialProductKey].(string)
	if p, ok := sess.Values[platformKey].(string); ok {
		s.Platform = payments.Platform(p)
	}
	return s, true
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// sessionContextKey is the context key for the authenticated session.
const sessionContextKey contextKey = "session"

// ContextWithSession adds the session to the context.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext retrieves the session from the context.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(Session)
	return s, ok
}
