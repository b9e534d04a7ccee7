package domain

import (
	"errors"
	"time"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrInvalidFile   = errors.New("unsupported file type")
	ErrInvalidAuthor = errors.New("not the file author")
)

// File is the metadata record for an uploaded blob. Filename is the storage
// name (`<id>.<ext>`) and doubles as the public identifier; OriginalFilename
// preserves what the client sent, sanitized. AuthorID is empty for uploads by
// the super admin and is cleared when the owning user is deleted.
type File struct {
	ID               string    `bson:"_id" json:"id"`
	CreatedAt        time.Time `bson:"created_at" json:"creation_date"`
	AuthorID         string    `bson:"author_id,omitempty" json:"author_id,omitempty"`
	Filename         string    `bson:"filename" json:"filename"`
	OriginalFilename string    `bson:"original_filename" json:"original_filename"`
}
