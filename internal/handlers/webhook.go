package handlers

import (
	"encoding/json"
	"net/http"

	"supaagent/internal/contextutil"
	"supaagent/internal/service"
	"supaagent/internal/whatsapp"
)

// WebhookHandler handles the Meta webhook: the GET verification handshake
// and POST message deliveries.
type WebhookHandler struct {
	verifyToken string
	inbound     service.InboundService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(verifyToken string, inbound service.InboundService) *WebhookHandler {
	return &WebhookHandler{verifyToken: verifyToken, inbound: inbound}
}

// Verify handles GET /webhook, Meta's subscription handshake. The challenge
// is echoed back verbatim when the mode and token match.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		logger.InfoContext(ctx, "webhook verified")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(challenge))
		return
	}

	logger.WarnContext(ctx, "webhook verification rejected", "mode", mode)
	w.WriteHeader(http.StatusForbidden)
}

// Receive handles POST /webhook. Deliveries are acknowledged with 200 even
// when processing fails, since Meta retries non-2xx responses.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var payload whatsapp.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.WarnContext(ctx, "invalid webhook body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, ok := whatsapp.FirstTextMessage(&payload)
	if !ok {
		// Status updates, media messages and empty deliveries
		logger.DebugContext(ctx, "webhook delivery without text message")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.inbound.HandleIncoming(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "failed to handle incoming message", "error", err)
	}
	w.WriteHeader(http.StatusOK)
}
