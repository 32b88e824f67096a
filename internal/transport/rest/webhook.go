package rest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mailtriage/triagem-backend/internal/domain"
	"github.com/mailtriage/triagem-backend/internal/service/inbound"
)

// inboundService defines the minimal interface needed by WebhookHandler.
type inboundService interface {
	Receive(ctx context.Context, p inbound.Payload) (*domain.EmailRecord, error)
}

// WebhookHandler serves the inbound mail webhook.
type WebhookHandler struct {
	svc    inboundService
	secret string
	log    *slog.Logger
}

// NewWebhookHandler creates a WebhookHandler. An empty secret disables the
// X-Webhook-Secret check.
func NewWebhookHandler(svc inboundService, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		svc:    svc,
		secret: secret,
		log:    logger.With("handler", "webhook"),
	}
}

// Inbound handles POST /webhook/inbound. Rejections are whole: a delivery
// that fails validation is answered 400 and nothing is stored.
func (h *WebhookHandler) Inbound(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		got := r.Header.Get("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid webhook secret")
			return
		}
	}

	var payload inbound.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Receive(r.Context(), payload)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "inbound delivery failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": rec.ID.String()})
}
