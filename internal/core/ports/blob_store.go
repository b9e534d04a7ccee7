package ports

import "io"

// BlobStore persists uploaded file contents under their storage filename.
type BlobStore interface {
	Save(filename string, r io.Reader) error
	Open(filename string) (io.ReadCloser, error)
	// Remove deletes the blob; removing a missing blob is not an error.
	Remove(filename string) error
}
