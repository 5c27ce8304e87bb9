package domain

import (
	"strings"
	"time"
)

// User models an account holder. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Claims is the identity carried by a verified bearer token.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// NormalizeEmail is applied before every store access so that email
// uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
