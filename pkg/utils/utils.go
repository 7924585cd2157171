package utils

import (
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used by HashPassword.
var PasswordCost = bcrypt.DefaultCost

// HashPassword hashes a plain password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsEmail returns true if the string is a bare email address.
func IsEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == strings.TrimSpace(email)
}
