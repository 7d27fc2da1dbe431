package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// ActivityRepository defines persistence for the audit trail.
type ActivityRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, page, limit int) ([]*domain.ActivityLog, int, error) // timestamp descending, total
}
