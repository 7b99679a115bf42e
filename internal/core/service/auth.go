// Package service provides domain services for the estate site.
//
// AuthService verifies credentials, mints sessions, and answers gate
// checks for protected routes.
package service

import (
	"context"
	"time"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/telemetry/metric"
	"github.com/nainaland/estate-go/pkg/password"
	"github.com/nainaland/estate-go/pkg/token"
)

// UserRepository defines the credential store interface.
//
// Absence is modeled as a (nil, nil) result, not a failure; a non-nil
// error means the lookup itself broke.
type UserRepository interface {
	// FindByUsername resolves a username with case-sensitive exact match.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID resolves a user by id.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// CreateUser stores a new user and assigns its id.
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SessionRegistry defines the authoritative store of live sessions.
//
// Implementations must be safe for concurrent request handlers.
type SessionRegistry interface {
	// Put registers a session. The insert must be visible to any
	// subsequent Get for the same token hash.
	Put(ctx context.Context, session *domain.Session) error

	// GetByTokenHash resolves a session by the hash of its identifier.
	// Returns ErrSessionNotFound for unknown hashes. An entry whose TTL
	// has elapsed yields ErrSessionExpired and is evicted.
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)

	// Remove deletes a session. Removing an absent session is not an
	// error.
	Remove(ctx context.Context, tokenHash string) error

	// DeleteExpired evicts all expired sessions and returns the count.
	DeleteExpired(ctx context.Context) (int, error)

	// Count returns the number of physically present sessions.
	Count() int
}

// AuthConfig holds configuration for AuthService.
type AuthConfig struct {
	// SessionTTL is the session lifetime. Zero means the default 24h.
	SessionTTL time.Duration
}

// AuthService verifies credentials against the credential store and
// manages the session lifecycle.
type AuthService struct {
	users    UserRepository
	sessions SessionRegistry
	metrics  *metric.Registry
	ttl      time.Duration

	// dummyHash is verified against when the username is unknown, so a
	// missing user costs the same as a wrong password.
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepository, sessions SessionRegistry, metrics *metric.Registry, cfg AuthConfig) *AuthService {
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = domain.DefaultSessionTTL
	}

	dummy, err := password.Hash("estate-dummy-credential")
	if err != nil {
		// crypto/rand failing is not survivable anyway; keep a static
		// well-formed hash so Verify still burns the same work.
		dummy = "$argon2id$v=19$m=16384,t=2,p=2$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	}

	return &AuthService{
		users:     users,
		sessions:  sessions,
		metrics:   metrics,
		ttl:       ttl,
		dummyHash: dummy,
	}
}

// SessionTTL returns the configured session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// LoginResult carries the outcome of a successful login. Token is the
// plaintext identifier and is only ever returned here.
type LoginResult struct {
	User      domain.PublicUser
	Token     string
	ExpiresAt int64
}

// Login validates a username/password pair and mints a session.
//
// Unknown usernames and wrong passwords fail with the same
// ErrInvalidCredentials so the two cases cannot be told apart. Empty
// credentials are a guaranteed failure, never a panic. The registry is
// only touched once everything else has succeeded, so an aborted request
// leaves no partial session behind.
func (s *AuthService) Login(ctx context.Context, username, secret string) (*LoginResult, error) {
	if username == "" || secret == "" {
		s.countLogin("failure")
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.countLogin("failure")
		return nil, domain.ErrStorageError.WithCause(err)
	}

	if user == nil {
		password.Verify(secret, s.dummyHash)
		s.countLogin("failure")
		return nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(secret, user.PasswordHash) {
		s.countLogin("failure")
		return nil, domain.ErrInvalidCredentials
	}

	plain, err := token.Generate()
	if err != nil {
		s.countLogin("failure")
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	session, err := domain.NewSession(user.ID)
	if err != nil {
		s.countLogin("failure")
		return nil, err
	}
	session.TokenHash = token.Hash(plain)
	session.SetExpiration(s.ttl)

	// Abort cleanly if the client went away; nothing is registered yet.
	if err := ctx.Err(); err != nil {
		s.countLogin("failure")
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		s.countLogin("failure")
		return nil, domain.ErrStorageError.WithCause(err)
	}

	s.countLogin("success")
	s.trackSessions()

	return &LoginResult{
		User:      user.Public(),
		Token:     plain,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout revokes the session behind the identifier. It is idempotent:
// unknown, already-removed, and empty identifiers all succeed.
func (s *AuthService) Logout(ctx context.Context, identifier string) error {
	if identifier == "" {
		return nil
	}
	if err := s.sessions.Remove(ctx, token.Hash(identifier)); err != nil {
		return domain.ErrStorageError.WithCause(err)
	}
	s.trackSessions()
	return nil
}

// Check runs the gate decision for an identifier extracted from a
// request. It never returns an error; every failure mode collapses into
// a Rejected outcome.
func (s *AuthService) Check(ctx context.Context, identifier string) domain.AuthOutcome {
	if identifier == "" {
		return s.reject(domain.ReasonMissingIdentifier)
	}

	session, err := s.sessions.GetByTokenHash(ctx, token.Hash(identifier))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrSessionExpired.Code) {
			// The registry evicted the stale entry on this lookup.
			if s.metrics != nil {
				s.metrics.SessionsExpired.Inc()
			}
			s.trackSessions()
			return s.reject(domain.ReasonExpired)
		}
		return s.reject(domain.ReasonUnknownIdentifier)
	}

	return domain.Admit(session.UserID)
}

// StatusResult carries the outcome of a status probe.
type StatusResult struct {
	Authenticated bool
	User          *domain.PublicUser
}

// Status reports whether the identifier maps to a live session. It never
// fails: internal errors degrade to an unauthenticated result.
func (s *AuthService) Status(ctx context.Context, identifier string) *StatusResult {
	outcome := s.Check(ctx, identifier)
	if !outcome.Admitted {
		return &StatusResult{}
	}

	user, err := s.users.FindByID(ctx, outcome.UserID)
	if err != nil || user == nil {
		// The session outlived its user record; treat as anonymous.
		return &StatusResult{}
	}

	pub := user.Public()
	return &StatusResult{Authenticated: true, User: &pub}
}

// CreateUser registers a new credentialed principal, hashing the secret
// before it ever reaches storage.
func (s *AuthService) CreateUser(ctx context.Context, username, secret, email string) (*domain.User, error) {
	hash, err := password.Hash(secret)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	return s.users.CreateUser(ctx, user)
}

func (s *AuthService) reject(reason domain.RejectReason) domain.AuthOutcome {
	if s.metrics != nil {
		s.metrics.GateRejections.WithLabelValues(string(reason)).Inc()
	}
	return domain.Reject(reason)
}

func (s *AuthService) countLogin(result string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(result).Inc()
	}
}

func (s *AuthService) trackSessions() {
	if s.metrics != nil {
		s.metrics.SessionsActive.Set(float64(s.sessions.Count()))
	}
}
