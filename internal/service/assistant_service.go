package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// AssistantService handles conversations with the AI assistant. Each
// chat call produces exactly two log entries: the user's turn and the
// assistant's turn. The generator never fails outright, it degrades to
// a fixed fallback reply, so the assistant turn is always persisted.
type AssistantService struct {
	messageRepo IMessageRepository
	userRepo    IUserRepository
	generator   Generator
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(messageRepo IMessageRepository, userRepo IUserRepository, generator Generator) *AssistantService {
	return &AssistantService{messageRepo: messageRepo, userRepo: userRepo, generator: generator}
}

// Chat appends the user's message, generates a reply, appends the
// assistant's turn, and returns both records in order.
//
// The round-trip is not transactional: if the process dies or the
// second append fails after the user turn is stored, the conversation
// shows a user message with no reply on the next history fetch.
func (s *AssistantService) Chat(ctx context.Context, userID uuid.UUID, text string) (*domain.Message, *domain.Message, error) {
	assistant, err := s.userRepo.GetAssistant()
	if err != nil {
		return nil, nil, err
	}
	if assistant == nil {
		return nil, nil, ErrAssistantMissing
	}

	userMsg, err := domain.NewMessage(userID, assistant.ID, text, "")
	if err != nil {
		return nil, nil, err
	}
	if err := s.messageRepo.Append(ctx, userMsg); err != nil {
		return nil, nil, err
	}

	reply := s.generator.Generate(ctx, text)

	assistantMsg, err := domain.NewMessage(assistant.ID, userID, reply, "")
	if err != nil {
		return nil, nil, err
	}
	if err := s.messageRepo.Append(ctx, assistantMsg); err != nil {
		return nil, nil, err
	}

	return userMsg, assistantMsg, nil
}
