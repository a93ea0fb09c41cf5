package domain

import (
	"errors"
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Common validation errors for users.
var (
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email format")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrInvalidRole   = errors.New("role must be \"user\" or \"admin\"")
)

// User represents a registered storefront account.
// Username and email are each globally unique.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never exposed in JSON
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// InsertUser is the payload for creating a user. The backend assigns the ID
// and the creation timestamp. Password must already be hashed by the caller.
type InsertUser struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// Validate checks the payload without relying on struct tags, so backends can
// enforce the same rules regardless of how the payload reached them.
func (in *InsertUser) Validate() error {
	if in.Username == "" {
		return ErrEmptyUsername
	}
	if in.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmail(in.Email) {
		return ErrInvalidEmail
	}
	if in.Password == "" {
		return ErrEmptyPassword
	}
	switch in.Role {
	case "", RoleUser, RoleAdmin:
	default:
		return ErrInvalidRole
	}
	return nil
}

// RoleOrDefault returns the requested role, defaulting to "user".
func (in *InsertUser) RoleOrDefault() string {
	if in.Role == "" {
		return RoleUser
	}
	return in.Role
}

// validEmail performs a minimal structural check: one '@' with a dotted
// domain after it. Full RFC 5322 validation happens at the API boundary via
// the validator tags; this is the last line of defense inside the backends.
func validEmail(email string) bool {
	at := -1
	for i, c := range email {
		if c == '@' {
			at = i
			break
		}
	}
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := -1
	for i, c := range domain {
		if c == '.' {
			dot = i
			break
		}
	}
	return dot > 0 && dot < len(domain)-1
}
