package domain

import "time"

const (
	MessageTypeTemplate = "template"
	MessageTypeText     = "text"
	MessageTypeBulk     = "bulk"
)

// Message log statuses. "delivered" and "read" are only reachable through
// webhook status updates, never set at send time.
const (
	MessageStatusSent      = "sent"
	MessageStatusFailed    = "failed"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// MessageLog records one outbound send attempt. MessageID is the provider
// assigned id and is nil when the send failed before dispatch.
type MessageLog struct {
	ID             int        `json:"id"`
	MessageID      *string    `json:"message_id"`
	RecipientPhone string     `json:"recipient_phone"`
	RecipientName  *string    `json:"recipient_name"`
	MessageType    string     `json:"message_type"`
	TemplateID     *int       `json:"template_id"`
	TemplateName   *string    `json:"template_name"`
	BodyPreview    string     `json:"body_preview"`
	Status         string     `json:"status"`
	ErrorMessage   *string    `json:"error_message"`
	SentBy         int        `json:"sent_by"`
	SentAt         time.Time  `json:"sent_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	ReadAt         *time.Time `json:"read_at"`
}

// BodyPreviewLimit caps the stored body preview length.
const BodyPreviewLimit = 100

// Preview truncates s to BodyPreviewLimit characters. Truncation counts
// runes, not bytes, so multibyte bodies never yield broken UTF-8.
func Preview(s string) string {
	r := []rune(s)
	if len(r) > BodyPreviewLimit {
		return string(r[:BodyPreviewLimit])
	}
	return s
}
