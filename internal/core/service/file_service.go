package service

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
)

// extensionByMIME is the closed set of accepted upload types. The extension
// comes from the sniffed content, never from the client filename.
var extensionByMIME = map[string]string{
	"image/png":       "png",
	"image/jpeg":      "jpg",
	"video/mp4":       "mp4",
	"video/webm":      "webm",
	"application/pdf": "pdf",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": "xlsx",
}

var mimeByExtension = func() map[string]string {
	m := make(map[string]string, len(extensionByMIME))
	for mime, ext := range extensionByMIME {
		m[ext] = mime
	}
	return m
}()

// sniffLen matches the default detection window of the mimetype library.
const sniffLen = 3072

// FileService stores uploads on a blob store with their metadata in the file
// repository, and enforces the author rule on deletion.
type FileService struct {
	files  ports.FileRepository
	blobs  ports.BlobStore
	logger zerolog.Logger
}

func NewFileService(files ports.FileRepository, blobs ports.BlobStore, logger zerolog.Logger) *FileService {
	return &FileService{files: files, blobs: blobs, logger: logger}
}

// Upload sniffs the content type from the leading bytes, rejects anything
// outside the allowlist and stores the blob as <id>.<ext>.
func (s *FileService) Upload(ctx context.Context, principal domain.Principal, content io.Reader, originalFilename string) (*domain.File, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(content, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	head = head[:n]

	ext, ok := extensionByMIME[mimetype.Detect(head).String()]
	if !ok {
		return nil, domain.ErrInvalidFile
	}

	file := &domain.File{
		ID:               uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
		AuthorID:         principal.UserID(),
		OriginalFilename: sanitizeFilename(originalFilename),
	}
	file.Filename = file.ID + "." + ext

	if err := s.blobs.Save(file.Filename, io.MultiReader(bytes.NewReader(head), content)); err != nil {
		return nil, err
	}
	if err := s.files.Create(ctx, file); err != nil {
		_ = s.blobs.Remove(file.Filename)
		return nil, err
	}

	s.logger.Info().
		Str("filename", file.Filename).
		Str("author_id", file.AuthorID).
		Msg("file stored")
	return file, nil
}

// Open returns the record, a content stream, and the MIME type derived from
// the stored extension.
func (s *FileService) Open(ctx context.Context, filename string) (*domain.File, io.ReadCloser, string, error) {
	file, err := s.files.FindByFilename(ctx, filename)
	if err != nil {
		return nil, nil, "", err
	}

	blob, err := s.blobs.Open(file.Filename)
	if err != nil {
		return nil, nil, "", err
	}

	ext := strings.TrimPrefix(filepath.Ext(file.Filename), ".")
	return file, blob, mimeByExtension[ext], nil
}

// Delete removes record and blob. Administrators may delete any file; a
// regular user only their own.
func (s *FileService) Delete(ctx context.Context, principal domain.Principal, filename string) error {
	file, err := s.files.FindByFilename(ctx, filename)
	if err != nil {
		return err
	}

	if principal.Role() == domain.RoleUser && file.AuthorID != principal.UserID() {
		return domain.ErrInvalidAuthor
	}

	if err := s.files.Delete(ctx, file.ID); err != nil {
		return err
	}
	if err := s.blobs.Remove(file.Filename); err != nil {
		// Record is gone; an orphaned blob is only worth a log line.
		s.logger.Error().Err(err).Str("filename", file.Filename).Msg("removing blob failed")
	}
	return nil
}

// sanitizeFilename keeps only the base name of whatever the client sent.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}
