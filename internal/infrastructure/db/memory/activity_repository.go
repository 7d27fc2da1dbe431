package memory

import (
	"context"
	"sort"
	"time"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// ActivityRepository implements ports.ActivityRepository against the shared store.
type ActivityRepository struct {
	store *Store
}

func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

func (r *ActivityRepository) Append(ctx context.Context, entry *domain.ActivityLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := copyActivity(entry)
	stored.ID = r.store.autoID(colActivities)
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}
	r.store.activities = append(r.store.activities, stored)
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, page, limit int) ([]*domain.ActivityLog, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.ActivityLog, 0, len(r.store.activities))
	for _, a := range r.store.activities {
		out = append(out, copyActivity(a))
	}
	total := len(out)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	offset := (page - 1) * limit
	if offset >= total {
		return []*domain.ActivityLog{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return out[offset:end], total, nil
}
