package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// SendMessageInput describes a single outbound send.
type SendMessageInput struct {
	Phone      string
	Name       string
	Type       string // "template" or "text"
	TemplateID *int
	Variables  []string
	Text       string
}

// SendMessageResult mirrors the gateway outcome plus the recorded log status.
type SendMessageResult struct {
	Success   bool
	MessageID *string
	Status    string
	Simulated bool
	Note      string
}

// BulkRecipient is one target of a bulk send, resolved from either the
// direct recipient list or an uploaded CSV.
type BulkRecipient struct {
	Phone     string   `json:"phone"`
	Name      string   `json:"name"`
	Variables []string `json:"variables"`
}

// BulkSendInput describes a bulk send request.
type BulkSendInput struct {
	CampaignName string
	TemplateID   int
	Recipients   []BulkRecipient
}

// BulkRecipientResult is the per-recipient outcome of a bulk send.
type BulkRecipientResult struct {
	Phone     string
	Name      string
	Status    string
	MessageID *string
	Error     string
}

// BulkSendResult summarizes a completed campaign run.
type BulkSendResult struct {
	CampaignID int
	Total      int
	Sent       int
	Failed     int
	Results    []BulkRecipientResult
}

// LogPage is one page of message logs.
type LogPage struct {
	Logs  []*domain.MessageLog
	Total int
	Page  int
	Pages int
}

// CampaignDetail is a campaign plus its most recent logs.
type CampaignDetail struct {
	Campaign *domain.Campaign
	Logs     []*domain.MessageLog
}

// MessageService implements single and bulk sending, log queries, and
// webhook-driven delivery status updates.
type MessageService interface {
	Send(ctx context.Context, actor Actor, in SendMessageInput) (*SendMessageResult, error)
	SendBulk(ctx context.Context, actor Actor, in BulkSendInput) (*BulkSendResult, error)
	Logs(ctx context.Context, q LogQuery) (*LogPage, error)
	Campaigns(ctx context.Context) ([]*domain.Campaign, error)
	Campaign(ctx context.Context, id int) (*CampaignDetail, error)

	// ApplyStatusUpdate processes one provider status event. Unknown
	// message ids are ignored without error.
	ApplyStatusUpdate(ctx context.Context, messageID, status, errorTitle string) error
}
