package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// CampaignRepository defines persistence for bulk-send campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	FindByID(ctx context.Context, id int) (*domain.Campaign, error)
	List(ctx context.Context) ([]*domain.Campaign, error) // created_at descending
	Update(ctx context.Context, campaign *domain.Campaign) error
	Count(ctx context.Context) (int, error)
}
