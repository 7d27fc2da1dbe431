package domain

import "time"

const (
	CampaignStatusRunning   = "running"
	CampaignStatusCompleted = "completed"
)

// Campaign is one bulk-send operation and its aggregate outcome counters.
// A crash mid-loop leaves a campaign permanently "running" with undercounted
// totals; the store is not durable, so there is no resumption.
type Campaign struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	TemplateID      int        `json:"template_id"`
	TemplateName    string     `json:"template_name"`
	TotalRecipients int        `json:"total_recipients"`
	SentCount       int        `json:"sent_count"`
	DeliveredCount  int        `json:"delivered_count"`
	ReadCount       int        `json:"read_count"`
	FailedCount     int        `json:"failed_count"`
	Status          string     `json:"status"`
	CreatedBy       int        `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at"`
}
