package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
	"github.com/codeologic/whatsapp-dashboard/internal/infrastructure/whatsapp"
)

// WebhookHandler receives the provider's verification challenge and delivery
// status callbacks. Both routes are unauthenticated; verification relies on
// the shared verify token.
type WebhookHandler struct {
	service     ports.MessageService
	verifyToken string
	log         zerolog.Logger
}

func NewWebhookHandler(service ports.MessageService, verifyToken string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, verifyToken: verifyToken, log: log}
}

// Verify handles GET /api/webhook, the provider's subscription handshake. On
// a matching token the raw challenge is echoed back as plain text.
func (h *WebhookHandler) Verify(c echo.Context) error {
	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	challenge := c.QueryParam("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		return c.String(http.StatusOK, challenge)
	}
	return c.JSON(http.StatusForbidden, map[string]string{"error": "Verification failed"})
}

// Receive handles POST /api/webhook. Status events are applied best-effort;
// the provider retries on non-200 so this always acknowledges.
func (h *WebhookHandler) Receive(c echo.Context) error {
	var payload whatsapp.StatusPayload
	if err := c.Bind(&payload); err != nil {
		h.log.Warn().Err(err).Msg("undecodable webhook payload")
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	ctx := c.Request().Context()
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, status := range change.Value.Statuses {
				errTitle := ""
				if len(status.Errors) > 0 {
					errTitle = status.Errors[0].Title
				}
				if err := h.service.ApplyStatusUpdate(ctx, status.ID, status.Status, errTitle); err != nil {
					h.log.Warn().Err(err).Str("message_id", status.ID).Msg("status update failed")
				}
			}
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
