package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/handler/dto"
)

// RequireSession rejects requests that do not carry an authenticated
// session cookie. On success the session is placed on the request
// context for handlers to consume.
func RequireSession(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessions.Load(r)
			if !ok {
				writeUnauthorized(w)
				return
			}

			ctx := auth.ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(dto.Response{
		Success: false,
		Error:   &dto.ErrorBody{Message: "Authentication required"},
	})
}
