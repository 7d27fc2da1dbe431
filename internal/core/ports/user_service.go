package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// CreateUserInput carries the fields for a new user account.
type CreateUserInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Role     string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	IsActive *bool
}

// UserService implements user administration. Users are soft-deactivated,
// never removed.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, actor Actor, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor Actor, id int, in UpdateUserInput) error
	Deactivate(ctx context.Context, actor Actor, id int) error
}
