package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to persist a new user.
type UserCreate struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Password    string // bcrypt hash
	PhoneNumber string
	Address     string
	Role        string
	Status      string
}

// UserSignup is the input for registering or creating a user. Role is
// ignored on self registration.
type UserSignup struct {
	FirstName   string `json:"firstName" validate:"required,min=1,max=100"`
	LastName    string `json:"lastName" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=32"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	Role        string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UserUpdate represents the data that can be updated for a user.
type UserUpdate struct {
	FirstName   *string    `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName    *string    `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Email       *string    `json:"email,omitempty" validate:"omitempty,email"`
	Password    *string    `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	PhoneNumber *string    `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	Address     *string    `json:"address,omitempty" validate:"omitempty,max=255"`
	Role        *string    `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
	LastLoginAt *time.Time `json:"-"`
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	PhoneNumber    string     `json:"phoneNumber,omitempty"`
	Address        string     `json:"address,omitempty"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
