package memory

import (
	"context"
	"sort"
	"time"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// TemplateRepository implements ports.TemplateRepository against the shared store.
type TemplateRepository struct {
	store *Store
}

func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

func (r *TemplateRepository) List(ctx context.Context, category, status string) ([]*domain.Template, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Template, 0, len(r.store.templates))
	for _, t := range r.store.templates {
		if category != "" && t.Category != category {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, copyTemplate(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id int) (*domain.Template, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, t := range r.store.templates {
		if t.ID == id {
			return copyTemplate(t), nil
		}
	}
	return nil, domain.ErrTemplateNotFound
}

func (r *TemplateRepository) FindByName(ctx context.Context, name string) (*domain.Template, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, t := range r.store.templates {
		if t.Name == name {
			return copyTemplate(t), nil
		}
	}
	return nil, domain.ErrTemplateNotFound
}

func (r *TemplateRepository) Create(ctx context.Context, tmpl *domain.Template) (*domain.Template, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored := copyTemplate(tmpl)
	stored.ID = r.store.autoID(colTemplates)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.store.templates = append(r.store.templates, stored)
	return copyTemplate(stored), nil
}

func (r *TemplateRepository) Update(ctx context.Context, tmpl *domain.Template) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, t := range r.store.templates {
		if t.ID == tmpl.ID {
			r.store.templates[i] = copyTemplate(tmpl)
			return nil
		}
	}
	return domain.ErrTemplateNotFound
}

// Delete removes a template permanently. Its id is never reassigned.
func (r *TemplateRepository) Delete(ctx context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, t := range r.store.templates {
		if t.ID == id {
			r.store.templates = append(r.store.templates[:i], r.store.templates[i+1:]...)
			return nil
		}
	}
	return domain.ErrTemplateNotFound
}

func (r *TemplateRepository) CountApproved(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := 0
	for _, t := range r.store.templates {
		if t.Status == domain.TemplateStatusApproved {
			n++
		}
	}
	return n, nil
}
