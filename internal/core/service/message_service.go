package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
)

// MessageService is the public message board.
type MessageService struct {
	messages ports.MessageRepository
}

func NewMessageService(messages ports.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

func (s *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}

func (s *MessageService) Post(ctx context.Context, text string) (*domain.Message, error) {
	message := &domain.Message{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Text:      text,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	return s.messages.Delete(ctx, id)
}
