package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// UserRepository defines persistence for user records. Implementations return
// defensive copies; all mutation goes through Update.
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error) // created_at ascending
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	CountActive(ctx context.Context) (int, error)
}
