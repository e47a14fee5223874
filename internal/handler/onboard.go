package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/payrail/payrail/internal/auth"
	"github.com/payrail/payrail/internal/handler/dto"
	"github.com/payrail/payrail/internal/service"
	"github.com/payrail/payrail/internal/validate"
)

// OnboardHandler drives the KYC onboarding flow for the session's
// connected account.
type OnboardHandler struct {
	svc    *service.OnboardingService
	logger *slog.Logger
}

// NewOnboardHandler creates a new OnboardHandler.
func NewOnboardHandler(svc *service.OnboardingService, logger *slog.Logger) *OnboardHandler {
	return &OnboardHandler{svc: svc, logger: logger}
}

// Onboard handles POST /api/onboard. Requires an authenticated session.
func (h *OnboardHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req dto.OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	redirectURL, err := h.svc.Onboard(r.Context(), sess, service.OnboardInput{
		BusinessName:   req.BusinessName,
		SkipOnboarding: req.SkipOnboarding,
	})
	if err != nil {
		h.handleOnboardError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, dto.OnboardResponse{RedirectURL: redirectURL})
}

// Status handles GET /api/onboard/status. Requires an authenticated
// session.
func (h *OnboardHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	outstanding, err := h.svc.HasOutstandingRequirements(r.Context(), sess)
	if err != nil {
		h.logger.Error("requirements probe failed", "account_id", sess.AccountID, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	writeSuccess(w, http.StatusOK, dto.OnboardStatusResponse{Outstanding: outstanding})
}

// handleOnboardError maps onboarding errors to HTTP responses.
func (h *OnboardHandler) handleOnboardError(w http.ResponseWriter, err error) {
	var errs validate.Errors
	switch {
	case errors.As(err, &errs):
		writeError(w, http.StatusBadRequest, errs.Error())
	case errors.Is(err, service.ErrRedirectBaseUnset):
		h.logger.Error("onboarding misconfigured", "error", err)
		writeError(w, http.StatusInternalServerError, "Onboarding is not configured")
	default:
		h.logger.Error("onboarding failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
