package ports

import (
	"context"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Implementations must
// enforce email uniqueness and surface violations as domain.ErrDuplicateUser.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail looks up by the lowercased form of email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// CountByEmail counts users with the given (lowercased) email, excluding
	// excludeID when non-empty. Used by the pre-insert duplicate check.
	CountByEmail(ctx context.Context, email, excludeID string) (int64, error)
}
