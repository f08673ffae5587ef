package service

import (
	"fmt"

	"github.com/google/uuid"
	passwordvalidator "github.com/wagslane/go-password-validator"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// passwordMinEntropyBits is the minimum entropy accepted at signup.
// Roughly: 8+ characters drawn from more than one character class.
const passwordMinEntropyBits = 50

// UserService provides identity-related services.
type UserService struct {
	userRepo IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup creates a new user account.
func (s *UserService) Signup(fullName, email, password string) (*domain.User, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if err := passwordvalidator.Validate(password, passwordMinEntropyBits); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	newUser, err := domain.NewUser(fullName, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

// Login authenticates a user. The same error covers an unknown email
// and a wrong password.
func (s *UserService) Login(email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetUserByID(id)
}

// ListPeers returns every user except the caller, for the sidebar.
func (s *UserService) ListPeers(selfID uuid.UUID) ([]*domain.User, error) {
	return s.userRepo.ListUsersExcept(selfID)
}

// ToggleAIChat flips the caller's assistant-enabled flag and returns
// the new value.
func (s *UserService) ToggleAIChat(userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrUnknownUser
	}
	enabled := !user.AIChatEnabled
	if err := s.userRepo.SetAIChatEnabled(userID, enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

// UpdateProfilePic stores a new avatar reference and returns the
// updated user.
func (s *UserService) UpdateProfilePic(userID uuid.UUID, pic string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	if err := s.userRepo.SetProfilePic(userID, pic); err != nil {
		return nil, err
	}
	user.ProfilePic = pic
	return user, nil
}

// EnsureAssistant creates the assistant account on first startup. The
// account gets a throwaway random password; nobody logs in as the
// assistant.
func (s *UserService) EnsureAssistant(email, name, pic string) (*domain.User, error) {
	existing, err := s.userRepo.GetAssistant()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	assistant, err := domain.NewUser(name, email, uuid.NewString())
	if err != nil {
		return nil, err
	}
	assistant.Role = domain.RoleAssistant
	assistant.ProfilePic = pic
	assistant.AIChatEnabled = true

	if err := s.userRepo.CreateUser(assistant); err != nil {
		return nil, err
	}
	return assistant, nil
}
