package ports

import (
	"context"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

// MessageRepository defines persistence for board messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	List(ctx context.Context) ([]domain.Message, error)
	Delete(ctx context.Context, id string) error
}
