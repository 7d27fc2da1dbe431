package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// AuthService implements login, session introspection and password changes.
type AuthService interface {
	// Login authenticates an active user and returns a signed JWT. The
	// client IP is recorded in the activity log.
	Login(ctx context.Context, username, password, ip string) (string, *domain.User, error)
	Logout(ctx context.Context, actor Actor) error
	Me(ctx context.Context, userID int) (*domain.User, error)
	ChangePassword(ctx context.Context, actor Actor, currentPassword, newPassword string) error
}
