package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role distinguishes the assistant account from human users. Code that
// needs to know "is this the assistant" branches on this field, never
// on a hard-coded email constant.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// User represents a user account in the system.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	PasswordHash  string    `json:"-"` // Do not expose password hash
	ProfilePic    string    `json:"profilePic"`
	Role          Role      `json:"role"`
	AIChatEnabled bool      `json:"aiChatEnabled"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewUser creates a new human user with a hashed password.
func NewUser(fullName, email, password string) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hashedPassword),
		Role:         RoleHuman,
		CreatedAt:    time.Now(),
	}, nil
}

// CheckPassword compares a plaintext password with the user's hashed password.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsAssistant reports whether this account is the AI assistant.
func (u *User) IsAssistant() bool {
	return u.Role == RoleAssistant
}
