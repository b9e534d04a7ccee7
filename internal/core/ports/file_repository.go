package ports

import (
	"context"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// FileRepository defines persistence for upload metadata.
type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	FindByFilename(ctx context.Context, filename string) (*domain.File, error)
	Delete(ctx context.Context, id string) error
	// ClearAuthor removes the author reference from every file owned by
	// userID. Called when the owning user is deleted.
	ClearAuthor(ctx context.Context, userID string) error
}
