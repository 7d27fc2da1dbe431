package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// LogQuery selects a page of message logs. Status matches exactly, Phone is a
// substring match against the recipient phone.
type LogQuery struct {
	Page   int
	Limit  int
	Status string
	Phone  string
}

// MessageRepository defines persistence for message logs.
type MessageRepository interface {
	Create(ctx context.Context, log *domain.MessageLog) (*domain.MessageLog, error)
	List(ctx context.Context, q LogQuery) ([]*domain.MessageLog, int, error) // page, total
	ListByTemplateName(ctx context.Context, templateName string, limit int) ([]*domain.MessageLog, error)
	FindByMessageID(ctx context.Context, messageID string) (*domain.MessageLog, error)
	Update(ctx context.Context, log *domain.MessageLog) error
	All(ctx context.Context) ([]*domain.MessageLog, error)
}
