// Package domain defines the user directory entities.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/orders/internal/errors"
)

// User is an entry of the user directory. Orders reference users by ID.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserInput carries the fields a client supplies to register a user.
type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser builds a user with a normalized e-mail address.
func NewUser(name, email string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeEmail lowercases and trims an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
