package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/payrail/payrail/internal/payments"
	"github.com/payrail/payrail/internal/service"
)

// maxEventBodySize caps provider event payloads.
const maxEventBodySize = 256 * 1024

// signatureHeader carries the provider's event signature.
const signatureHeader = "X-Provider-Signature"

// EventHandler receives signed account events pushed by the payments
// provider and invalidates stale local state.
type EventHandler struct {
	svc    *service.OnboardingService
	secret string
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler. secret is the shared
// event-signing secret.
func NewEventHandler(svc *service.OnboardingService, secret string, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, secret: secret, logger: logger}
}

// Receive handles POST /api/events.
func (h *EventHandler) Receive(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxEventBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	sig := r.Header.Get(signatureHeader)
	if err := payments.VerifyEventSignature(h.secret, sig, payload, payments.DefaultSignatureTolerance); err != nil {
		h.logger.Warn("rejected provider event",
			"reason", err.Error(),
			"remote_addr", r.RemoteAddr,
		)
		writeError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var event payments.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event payload")
		return
	}

	switch event.Type {
	case payments.EventTypeAccountUpdated:
		if event.Account != "" {
			if err := h.svc.InvalidateRequirements(r.Context(), event.Account); err != nil {
				h.logger.Warn("invalidate requirements from event",
					"account_id", event.Account,
					"error", err,
				)
			}
		}
		h.logger.Info("provider_event", "event_id", event.ID, "type", event.Type, "account_id", event.Account)
	default:
		// Unhandled event types are acknowledged so the provider
		// stops redelivering them.
		h.logger.Debug("ignoring provider event", "event_id", event.ID, "type", event.Type)
	}

	writeSuccess(w, http.StatusOK, nil)
}
