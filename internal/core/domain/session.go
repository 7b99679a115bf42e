// Package domain defines the core domain models for the estate service.
package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultSessionTTL is the session lifetime applied when no TTL is
// configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionIDPrefix is the prefix for session record IDs.
const SessionIDPrefix = "nlss-"

// Session represents a single authenticated browser or API context.
//
// The opaque identifier handed to the client is never stored; the
// registry holds only its SHA-256 hash. The client owns the sole copy of
// the plaintext identifier.
type Session struct {
	// ID is the internal session record identifier.
	// Format: nlss-{ulid_lowercase}.
	ID string `json:"id"`

	// TokenHash is the SHA-256 hash of the session identifier.
	TokenHash string `json:"token_hash"`

	// UserID identifies the user who owns this session.
	UserID int64 `json:"user_id"`

	// CreatedAt is the session creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`

	// ExpiresAt is the absolute expiration timestamp (Unix milliseconds).
	ExpiresAt int64 `json:"expires_at"`
}

// NewSession creates a new Session bound to a user.
// The returned session has ID and CreatedAt initialized; the caller sets
// TokenHash and the expiration.
func NewSession(userID int64) (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.Now().UnixMilli(),
	}, nil
}

// GenerateSessionID generates a new session record ID using ULID.
func GenerateSessionID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalServer.WithCause(err)
	}
	return SessionIDPrefix + strings.ToLower(id.String()), nil
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return time.Now().UnixMilli() > s.ExpiresAt
}

// SetExpiration sets the expiration time from a TTL duration.
func (s *Session) SetExpiration(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl).UnixMilli()
}

// TTLDuration returns the remaining time-to-live as a duration.
// Returns 0 if expired or no expiration is set.
func (s *Session) TTLDuration() time.Duration {
	if s.ExpiresAt == 0 {
		return 0
	}
	remaining := s.ExpiresAt - time.Now().UnixMilli()
	if remaining < 0 {
		return 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// ExpiresAtTime returns ExpiresAt as time.Time.
func (s *Session) ExpiresAtTime() time.Time {
	if s.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.ExpiresAt)
}

// Clone creates a copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	return &clone
}

// Validate validates the session fields.
func (s *Session) Validate() error {
	var violations []string

	if s.UserID <= 0 {
		violations = append(violations, "user_id is required")
	}
	if s.TokenHash == "" {
		violations = append(violations, "token hash is required")
	}

	if len(violations) > 0 {
		return ErrValidation.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}
