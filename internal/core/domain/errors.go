package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP status codes by the API error handler.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrSelfDeactivate     = errors.New("cannot delete your own account")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateExists   = errors.New("template already exists")

	ErrCampaignNotFound = errors.New("campaign not found")
	ErrMessageNotFound  = errors.New("message not found")

	ErrForbidden = errors.New("admin access required")

	// ErrValidation marks request-level validation failures. Use Invalid to
	// attach a human-readable message.
	ErrValidation = errors.New("validation failed")
)

type conflictError struct {
	sentinel error
	msg      string
}

func (e *conflictError) Error() string { return e.msg }

func (e *conflictError) Is(target error) bool { return target == e.sentinel }

// TemplateNameExists builds an ErrTemplateExists error naming the normalized
// template name that collided.
func TemplateNameExists(name string) error {
	return &conflictError{
		sentinel: ErrTemplateExists,
		msg:      fmt.Sprintf("Template with name %q already exists", name),
	}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a validation error carrying a human-readable detail string.
// errors.Is(err, ErrValidation) holds for the result.
func Invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}
