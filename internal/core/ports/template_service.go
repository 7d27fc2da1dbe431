package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// CreateTemplateInput carries the fields for a new template. Empty optional
// fields are stored as nil.
type CreateTemplateInput struct {
	Name       string
	Category   string
	Language   string
	Body       string
	Header     string
	Footer     string
	ButtonText string
	ButtonURL  string
}

// UpdateTemplateInput is a partial update; nil fields are left untouched.
// Status may only be changed by an admin actor.
type UpdateTemplateInput struct {
	Body       *string
	Header     *string
	Footer     *string
	ButtonText *string
	ButtonURL  *string
	Status     *string
}

// TemplateService implements template CRUD and approval.
type TemplateService interface {
	List(ctx context.Context, category, status string) ([]*domain.Template, error)
	Get(ctx context.Context, id int) (*domain.Template, error)
	Create(ctx context.Context, actor Actor, in CreateTemplateInput) (*domain.Template, error)
	Update(ctx context.Context, actor Actor, id int, in UpdateTemplateInput) error
	Delete(ctx context.Context, actor Actor, id int) error
	Approve(ctx context.Context, actor Actor, id int) error
}
