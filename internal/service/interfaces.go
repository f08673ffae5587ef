package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// --- Service Interfaces ---

// IUserService defines the interface for identity-related business logic.
type IUserService interface {
	Signup(fullName, email, password string) (*domain.User, error)
	Login(email, password string) (*domain.User, error)
	GetByID(id uuid.UUID) (*domain.User, error)
	ListPeers(selfID uuid.UUID) ([]*domain.User, error)
	ToggleAIChat(userID uuid.UUID) (bool, error)
	UpdateProfilePic(userID uuid.UUID, pic string) (*domain.User, error)
	EnsureAssistant(email, name, pic string) (*domain.User, error)
}

// IMessageService defines the interface for the message log.
type IMessageService interface {
	Send(ctx context.Context, senderID, receiverID uuid.UUID, text, image string) (*domain.Message, error)
	History(ctx context.Context, userA, userB uuid.UUID) ([]*domain.Message, error)
}

// IAssistantService defines the interface for assistant conversations.
type IAssistantService interface {
	Chat(ctx context.Context, userID uuid.UUID, text string) (userMsg, assistantMsg *domain.Message, err error)
}

// --- Repository Interfaces ---

// IUserRepository defines the interface for user persistence.
type IUserRepository interface {
	CreateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(id uuid.UUID) (*domain.User, error)
	GetAssistant() (*domain.User, error)
	ListUsersExcept(id uuid.UUID) ([]*domain.User, error)
	SetAIChatEnabled(id uuid.UUID, enabled bool) error
	SetProfilePic(id uuid.UUID, pic string) error
}

// IMessageRepository defines the interface for message persistence.
type IMessageRepository interface {
	Append(ctx context.Context, message *domain.Message) error
	History(ctx context.Context, userA, userB string) ([]*domain.Message, error)
}

// --- Collaborator Interfaces ---

// Generator produces assistant replies. Implementations never fail:
// upstream errors come back as fixed fallback reply text.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// Notifier delivers a newly persisted message to the recipient's live
// connection, if any. Delivery is best-effort; the message log is the
// source of truth.
type Notifier interface {
	Push(recipientID uuid.UUID, message *domain.Message)
}
