package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

const minPasswordLength = 6

// AuthService implements login, session introspection and password changes.
type AuthService struct {
	users     ports.UserRepository
	activity  activityRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, activity ports.ActivityRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &AuthService{
		users:     users,
		activity:  activityRecorder{repo: activity, log: log},
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login authenticates an active user, updates last_login and returns a
// signed token. Deactivated users cannot log in, but tokens they already
// hold stay valid until expiry.
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.Invalid("Username and password required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil || !user.IsActive {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.activity.record(ctx, ports.Actor{UserID: user.ID, Username: user.Username, IP: ip},
		domain.ActionLogin, fmt.Sprintf("Login from %s", ip))
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")

	return token, user, nil
}

// Logout only records the audit entry; tokens are stateless and cannot be
// revoked server-side.
func (s *AuthService) Logout(ctx context.Context, actor ports.Actor) error {
	s.activity.record(ctx, actor, domain.ActionLogout, "")
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID int) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, actor ports.Actor, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.Invalid("Both current and new password required")
	}
	if len(newPassword) < minPasswordLength {
		return domain.Invalid("New password must be at least %d characters", minPasswordLength)
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.activity.record(ctx, actor, domain.ActionPasswordChange, "")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
