package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// MessageService provides the message-log access pattern: validated
// appends and two-way ordered history.
type MessageService struct {
	messageRepo IMessageRepository
	notifier    Notifier
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo IMessageRepository, notifier Notifier) *MessageService {
	return &MessageService{messageRepo: messageRepo, notifier: notifier}
}

// Send persists a new message and pushes it to the recipient's live
// connection if one exists. A recipient without a binding simply sees
// the message on the next history fetch.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, text, image string) (*domain.Message, error) {
	message, err := domain.NewMessage(senderID, receiverID, text, image)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.Append(ctx, message); err != nil {
		return nil, err
	}
	s.notifier.Push(receiverID, message)
	return message, nil
}

// History returns all messages between two users, oldest first. An
// unknown peer yields an empty list, not an error.
func (s *MessageService) History(ctx context.Context, userA, userB uuid.UUID) ([]*domain.Message, error) {
	messages, err := s.messageRepo.History(ctx, userA.String(), userB.String())
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return messages, nil
}
