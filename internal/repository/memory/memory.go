// Package memory provides in-memory repository implementations used by
// tests, mirroring the behavior of the postgres/mongo repositories.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// UserRepository is an in-memory user store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (r *UserRepository) CreateUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *UserRepository) GetUserByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetUserByID(id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepository) GetAssistant() (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Role == domain.RoleAssistant {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) ListUsersExcept(id uuid.UUID) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []*domain.User
	for _, u := range r.users {
		if u.ID == id {
			continue
		}
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *UserRepository) SetAIChatEnabled(id uuid.UUID, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.AIChatEnabled = enabled
	}
	return nil
}

func (r *UserRepository) SetProfilePic(id uuid.UUID, pic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.ProfilePic = pic
	}
	return nil
}

// MessageRepository is an in-memory append-only message log.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

// NewMessageRepository creates an empty in-memory message log.
func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Append(ctx context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *MessageRepository) History(ctx context.Context, userA, userB string) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Message
	for _, m := range r.messages {
		between := (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA)
		if between {
			copied := *m
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Len reports the total number of stored messages, across all conversations.
func (r *MessageRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}
