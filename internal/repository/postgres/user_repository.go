package postgres

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/NajimuddinS/ChatMate/internal/domain"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, full_name, password_hash, profile_pic, role, ai_chat_enabled, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash,
		&user.ProfilePic, &user.Role, &user.AIChatEnabled, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No user found is not an application error
		}
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(user *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(query, user.ID, user.Email, user.FullName, user.PasswordHash,
		user.ProfilePic, user.Role, user.AIChatEnabled, user.CreatedAt)
	return err
}

// GetUserByEmail retrieves a user by their email address.
func (r *UserRepository) GetUserByEmail(email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(query, email))
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(query, id))
}

// GetAssistant retrieves the assistant account, if one exists.
func (r *UserRepository) GetAssistant() (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 LIMIT 1`
	return scanUser(r.DB.QueryRow(query, domain.RoleAssistant))
}

// ListUsersExcept retrieves all users except the given one, for the peer sidebar.
func (r *UserRepository) ListUsersExcept(id uuid.UUID) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id != $1 ORDER BY created_at`
	rows, err := r.DB.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SetAIChatEnabled updates the assistant-enabled flag for a user.
func (r *UserRepository) SetAIChatEnabled(id uuid.UUID, enabled bool) error {
	_, err := r.DB.Exec(`UPDATE users SET ai_chat_enabled = $1 WHERE id = $2`, enabled, id)
	return err
}

// SetProfilePic updates a user's avatar reference.
func (r *UserRepository) SetProfilePic(id uuid.UUID, pic string) error {
	_, err := r.DB.Exec(`UPDATE users SET profile_pic = $1 WHERE id = $2`, pic, id)
	return err
}
