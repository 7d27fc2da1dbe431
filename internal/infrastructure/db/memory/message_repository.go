package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

// MessageRepository implements ports.MessageRepository against the shared store.
type MessageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) *MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, log *domain.MessageLog) (*domain.MessageLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := copyMessage(log)
	stored.ID = r.store.autoID(colMessages)
	if stored.SentAt.IsZero() {
		stored.SentAt = time.Now().UTC()
	}
	r.store.messages = append(r.store.messages, stored)
	return copyMessage(stored), nil
}

func (r *MessageRepository) List(ctx context.Context, q ports.LogQuery) ([]*domain.MessageLog, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	filtered := make([]*domain.MessageLog, 0, len(r.store.messages))
	for _, m := range r.store.messages {
		if q.Status != "" && m.Status != q.Status {
			continue
		}
		if q.Phone != "" && !strings.Contains(m.RecipientPhone, q.Phone) {
			continue
		}
		filtered = append(filtered, copyMessage(m))
	}

	total := len(filtered)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].SentAt.After(filtered[j].SentAt)
	})

	offset := (q.Page - 1) * q.Limit
	if offset >= total {
		return []*domain.MessageLog{}, total, nil
	}
	end := offset + q.Limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

func (r *MessageRepository) ListByTemplateName(ctx context.Context, templateName string, limit int) ([]*domain.MessageLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.MessageLog, 0)
	for _, m := range r.store.messages {
		if m.TemplateName != nil && *m.TemplateName == templateName {
			out = append(out, copyMessage(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SentAt.After(out[j].SentAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MessageRepository) FindByMessageID(ctx context.Context, messageID string) (*domain.MessageLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, m := range r.store.messages {
		if m.MessageID != nil && *m.MessageID == messageID {
			return copyMessage(m), nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (r *MessageRepository) Update(ctx context.Context, log *domain.MessageLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, m := range r.store.messages {
		if m.ID == log.ID {
			r.store.messages[i] = copyMessage(log)
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

func (r *MessageRepository) All(ctx context.Context) ([]*domain.MessageLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.MessageLog, 0, len(r.store.messages))
	for _, m := range r.store.messages {
		out = append(out, copyMessage(m))
	}
	return out, nil
}
