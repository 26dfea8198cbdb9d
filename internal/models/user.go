package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account; it starts inactive until the emailed activation link is followed
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

// NewUser creates a pending User with a generated UUID
func NewUser(username, email, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     false,
		CreatedAt:    time.Now().UTC(),
	}
}
