package ports

import (
	"context"
	"io"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// FileService covers upload, download and deletion of stored files.
type FileService interface {
	// Upload sniffs the content type, rejects unsupported types with
	// domain.ErrInvalidFile and stores the blob as <id>.<ext> attributed to
	// the uploading principal.
	Upload(ctx context.Context, principal domain.Principal, content io.Reader, originalFilename string) (*domain.File, error)
	// Open returns the file record, its content stream and MIME type.
	Open(ctx context.Context, filename string) (*domain.File, io.ReadCloser, string, error)
	// Delete removes record and blob. A regular-role principal that is not
	// the author gets domain.ErrInvalidAuthor; administrators may delete
	// anything.
	Delete(ctx context.Context, principal domain.Principal, filename string) error
}
