package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankapi/pkg/domain"
	"github.com/amirasaad/bankapi/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = domain.NewError(domain.ErrNotFound, "user not found")
	// ErrUserUnauthorized is returned when credentials do not match an active user.
	ErrUserUnauthorized = domain.NewError(domain.ErrUnauthorized, "user unauthorized")
	// ErrEmailTaken is returned when registering an email that is already in use.
	ErrEmailTaken = domain.NewError(domain.ErrAlreadyExists, "email is already registered")
	// ErrUserHasAccounts is returned when deleting a user that still owns accounts.
	ErrUserHasAccounts = domain.NewError(domain.ErrConflict, "user still owns accounts")
	// ErrInvalidRole is returned for roles outside the known set.
	ErrInvalidRole = domain.NewError(domain.ErrValidation, "invalid role")
	// ErrInvalidStatus is returned for statuses outside the known set.
	ErrInvalidStatus = domain.NewError(domain.ErrValidation, "invalid user status")
)

// Status is the lifecycle state of a user.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// User represents a user in the system.
type User struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Password    string // bcrypt hash
	PhoneNumber string
	Address     string
	Role        Role
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a new User with a hashed password and current timestamps.
func New(firstName, lastName, email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !utils.IsEmail(email) {
		return nil, domain.NewError(domain.ErrValidation, "a valid email is required")
	}
	if password == "" {
		return nil, domain.NewError(domain.ErrValidation, "password cannot be empty")
	}
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanLogin reports whether the user may obtain tokens.
func (u *User) CanLogin() bool {
	return u.Status == StatusActive
}

// Identity returns the identity carried in tokens for this user.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Email: u.Email, Roles: NewRoles(u.Role)}
}
