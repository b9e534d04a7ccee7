package ports

import (
	"context"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// CreateUserInput carries the fields an administrator supplies when creating
// an account. The password is never part of it; accounts start passwordless
// and the invite email carries the set-password token.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      domain.Role
	Enabled   bool
}

// UpdateUserInput is a partial update; nil fields are left untouched.
// Email is immutable after creation and deliberately absent.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *domain.Role
	Enabled   *bool
}

// UserService covers account management and the password-action token flows.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	SendCreatedEmail(ctx context.Context, id string) error
	SendResetEmail(ctx context.Context, email string) error

	// PasswordTokenState validates a set-password token: ErrUserNotFound for
	// an invalid token or unknown subject, ErrPasswordAlreadySet when the
	// account already has a password.
	PasswordTokenState(ctx context.Context, token string) error
	// SetPassword redeems a set-password token, guarded like
	// PasswordTokenState. The already-set guard is what stops token replay.
	SetPassword(ctx context.Context, token, password string) error
	// ResetPassword redeems a reset token and overwrites the password.
	// No already-set guard: a valid reset token is reusable.
	ResetPassword(ctx context.Context, token, password string) error
}
