package memory

import (
	"context"
	"sort"
	"time"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// CampaignRepository implements ports.CampaignRepository against the shared store.
type CampaignRepository struct {
	store *Store
}

func NewCampaignRepository(store *Store) *CampaignRepository {
	return &CampaignRepository{store: store}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := copyCampaign(campaign)
	stored.ID = r.store.autoID(colCampaigns)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.store.campaigns = append(r.store.campaigns, stored)
	return copyCampaign(stored), nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id int) (*domain.Campaign, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.campaigns {
		if c.ID == id {
			return copyCampaign(c), nil
		}
	}
	return nil, domain.ErrCampaignNotFound
}

func (r *CampaignRepository) List(ctx context.Context) ([]*domain.Campaign, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Campaign, 0, len(r.store.campaigns))
	for _, c := range r.store.campaigns {
		out = append(out, copyCampaign(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *CampaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, c := range r.store.campaigns {
		if c.ID == campaign.ID {
			r.store.campaigns[i] = copyCampaign(campaign)
			return nil
		}
	}
	return domain.ErrCampaignNotFound
}

func (r *CampaignRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.campaigns), nil
}
