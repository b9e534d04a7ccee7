package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

const collectionFiles = "files"

type FileRepository struct {
	col *mongo.Collection
}

func NewFileRepository(db *mongo.Database) *FileRepository {
	return &FileRepository{col: db.Collection(collectionFiles)}
}

func (r *FileRepository) Create(ctx context.Context, file *domain.File) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, file); err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

func (r *FileRepository) FindByFilename(ctx context.Context, filename string) (*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.File
	if err := r.col.FindOne(ctx, bson.M{"filename": filename}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return &f, nil
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

// ClearAuthor detaches every file owned by userID; the records survive the
// owner's deletion with no author reference.
func (r *FileRepository) ClearAuthor(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"author_id": userID},
		bson.M{"$unset": bson.M{"author_id": ""}})
	if err != nil {
		return fmt.Errorf("clear file author: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique filename index used for lookups.
func (r *FileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "filename", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
