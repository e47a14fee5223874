package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/handler/dto"
	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/service"
	"github.com/payrail/payrail/internal/validate"
)

// SessionHandler mints and clears cookie sessions.
type SessionHandler struct {
	svc              *service.RegistrationService
	sessions         *auth.SessionManager
	financialProduct string
	logger           *slog.Logger
}

// NewSessionHandler creates a new SessionHandler. financialProduct is
// recorded in every new session and decides treasury ToS handling
// during demo onboarding bypass.
func NewSessionHandler(svc *service.RegistrationService, sessions *auth.SessionManager, financialProduct string, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		svc:              svc,
		sessions:         sessions,
		financialProduct: financialProduct,
		logger:           logger,
	}
}

// Login handles POST /api/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		var errs validate.Errors
		switch {
		case errors.As(err, &errs):
			writeError(w, http.StatusBadRequest, errs.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			h.logger.Error("login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	platform, err := payments.PlatformForCountry(user.Country)
	if err != nil {
		h.logger.Error("login: no platform for stored country", "country", user.Country, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	sess := auth.Session{
		Email:            user.Email,
		Country:          user.Country,
		FinancialProduct: h.financialProduct,
		AccountID:        user.AccountID,
		Platform:         platform,
	}
	if err := h.sessions.Save(w, r, sess); err != nil {
		h.logger.Error("save session", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID, "account_id", user.AccountID)

	writeSuccess(w, http.StatusOK, dto.LoginResponse{
		Email:     user.Email,
		Country:   user.Country,
		AccountID: user.AccountID,
	})
}

// Logout handles POST /api/logout.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Error("clear session", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}
