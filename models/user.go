package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole controls admin-panel access.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleEditor UserRole = "EDITOR"
	RoleUser   UserRole = "USER"
)

// User represents an account. Authentication itself is handled by the
// calling application; the record store only persists the accounts.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
