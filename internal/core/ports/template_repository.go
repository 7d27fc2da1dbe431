package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// TemplateRepository defines persistence for message templates. Templates are
// the only entity that is ever hard deleted.
type TemplateRepository interface {
	List(ctx context.Context, category, status string) ([]*domain.Template, error) // created_at descending
	FindByID(ctx context.Context, id int) (*domain.Template, error)
	FindByName(ctx context.Context, name string) (*domain.Template, error)
	Create(ctx context.Context, tmpl *domain.Template) (*domain.Template, error)
	Update(ctx context.Context, tmpl *domain.Template) error
	Delete(ctx context.Context, id int) error
	CountApproved(ctx context.Context) (int, error)
}
