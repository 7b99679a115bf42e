// Package domain defines the core domain models for the estate service.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling.
package domain

import "strings"

// User represents a credentialed principal.
//
// Users are created once at startup (seed data) or through the
// administrative create path and are immutable afterwards.
type User struct {
	// ID is the unique user identifier, assigned sequentially at creation.
	ID int64 `json:"id"`

	// Username is the unique login name. Matching is case-sensitive.
	Username string `json:"username"`

	// PasswordHash is the Argon2id hash of the user's password.
	// Plaintext passwords are never stored.
	PasswordHash string `json:"-"`

	// Email is informational only.
	Email string `json:"email"`
}

// PublicUser is the subset of User that may be returned to clients.
// It never carries credential material.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Public returns the client-safe view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

// Validate validates user fields at creation time.
func (u *User) Validate() error {
	var violations []string

	if strings.TrimSpace(u.Username) == "" {
		violations = append(violations, "username is required")
	}
	if u.PasswordHash == "" {
		violations = append(violations, "password hash is required")
	}

	if len(violations) > 0 {
		return ErrValidation.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}
