package ports

import (
	"context"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// MessageService covers the public message board.
type MessageService interface {
	List(ctx context.Context) ([]domain.Message, error)
	Post(ctx context.Context, text string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
}
