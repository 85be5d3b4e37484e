package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"forum/internal/models"
)

// bcryptCost matches the cost factor the stored hashes were created
// with from day one.
const bcryptCost = 10

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, password string) (models.User, error)
	FindByUsername(username string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
}

// UserService provides registration and credential checks.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user, hashing their password. It fails with
// ErrConflict when a case-insensitive match for the username exists and
// with ErrInvalidInput when either field is empty.
func (s *UserService) Register(username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("username and password are required: %w", ErrInvalidInput)
	}

	if _, err := s.FindByUsername(username); err == nil {
		return models.User{}, fmt.Errorf("username %q: %w", username, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, password_hash, created_at) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		// The NOCASE unique index backstops the lookup above when two
		// registrations of the same name race.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, fmt.Errorf("username %q: %w", username, ErrConflict)
		}
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// FindByUsername retrieves a user by a case-insensitive full-string
// match, including the password hash.
func (s *UserService) FindByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, created_at FROM users WHERE username = ? COLLATE NOCASE", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials. The bcrypt comparison is
// constant-time against the stored hash.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.FindByUsername(username)
	if err != nil {
		return models.User{}, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return models.User{}, fmt.Errorf("password mismatch for %q: %w", username, ErrInvalidCredentials)
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
