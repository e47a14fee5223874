package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/payrail/payrail/internal/handler/dto"
	"github.com/payrail/payrail/internal/service"
	"github.com/payrail/payrail/internal/validate"
)

// RegisterHandler handles account registration.
type RegisterHandler struct {
	svc    *service.RegistrationService
	logger *slog.Logger
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc *service.RegistrationService, logger *slog.Logger) *RegisterHandler {
	return &RegisterHandler{svc: svc, logger: logger}
}

// Register handles POST /api/register.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Country:  req.Country,
	})
	if err != nil {
		h.handleRegisterError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}

// handleRegisterError maps registration errors to HTTP responses.
func (h *RegisterHandler) handleRegisterError(w http.ResponseWriter, err error) {
	var errs validate.Errors
	switch {
	case errors.As(err, &errs):
		writeError(w, http.StatusBadRequest, errs.Error())
	case errors.Is(err, service.ErrAccountExists):
		writeError(w, http.StatusBadRequest, "Account already exists")
	default:
		h.logger.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
