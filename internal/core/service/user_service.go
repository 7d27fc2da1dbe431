package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

// UserService implements user administration.
type UserService struct {
	users    ports.UserRepository
	activity activityRecorder
	maxUsers int
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, activity ports.ActivityRepository, maxUsers int, log zerolog.Logger) *UserService {
	if maxUsers <= 0 {
		maxUsers = 6
	}
	return &UserService{
		users:    users,
		activity: activityRecorder{repo: activity, log: log},
		maxUsers: maxUsers,
		log:      log,
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Create enforces the active-user cap and username/email uniqueness across
// all users ever created, deactivated ones included.
func (s *UserService) Create(ctx context.Context, actor ports.Actor, in ports.CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if name == "" || email == "" || username == "" || in.Password == "" {
		return nil, domain.Invalid("Name, email, username, and password are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.Invalid("Password must be at least %d characters", minPasswordLength)
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.Invalid("Role must be admin, operator, or viewer")
	}

	active, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	if active >= s.maxUsers {
		return nil, domain.Invalid("Maximum %d users allowed per the license", s.maxUsers)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameExists
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, domain.ActionCreateUser,
		fmt.Sprintf("Created user: %s (%s)", username, in.Role))
	return created, nil
}

func (s *UserService) Update(ctx context.Context, actor ports.Actor, id int, in ports.UpdateUserInput) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return domain.Invalid("Role must be admin, operator, or viewer")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.activity.record(ctx, actor, domain.ActionUpdateUser, fmt.Sprintf("Updated user ID: %d", id))
	return nil
}

// Deactivate soft-deletes a user. The record stays queryable so historical
// logs keep resolving. Admins cannot deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, actor ports.Actor, id int) error {
	if id == actor.UserID {
		return domain.ErrSelfDeactivate
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.activity.record(ctx, actor, domain.ActionDeactivateUser, fmt.Sprintf("Deactivated user ID: %d", id))
	return nil
}
