package service

import (
	"context"
	"fmt"

	"collegeconnect/internal/domain"
)

// MessageService handles sending and reading direct messages.
type MessageService struct {
	messages domain.MessageRepository
	users    domain.UserRepository

	// AllowSelfMessages controls the degenerate sender == receiver case.
	AllowSelfMessages bool
}

func NewMessageService(messages domain.MessageRepository, users domain.UserRepository, allowSelfMessages bool) *MessageService {
	return &MessageService{
		messages:          messages,
		users:             users,
		AllowSelfMessages: allowSelfMessages,
	}
}

// Send creates a message from the authenticated sender to receiverID. The
// receiver must exist; a dangling reference would poison every later
// conversation read.
func (s *MessageService) Send(ctx context.Context, sender *domain.User, receiverID int64, content string) (*domain.Message, error) {
	if receiverID == 0 || content == "" {
		return nil, fmt.Errorf("%w: receiver and content are required", domain.ErrValidation)
	}
	if receiverID == sender.ID && !s.AllowSelfMessages {
		return nil, fmt.Errorf("%w: cannot message yourself", domain.ErrValidation)
	}

	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("get receiver: %w", err)
	}
	if receiver == nil {
		return nil, fmt.Errorf("%w: receiver %d", domain.ErrNotFound, receiverID)
	}

	msg := &domain.Message{
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	msg.Sender = sender.Ref()
	msg.Receiver = receiver.Ref()
	return msg, nil
}

// ListBetween returns the full history between userID and counterpartID in
// chronological order, regardless of which side sent each message.
func (s *MessageService) ListBetween(ctx context.Context, userID, counterpartID int64) ([]*domain.Message, error) {
	return s.messages.ListBetween(ctx, userID, counterpartID)
}
