// Package memory provides in-memory storage for the estate service.
//
// The session registry lives here exclusively: sessions are process
// state and are deliberately lost on restart.
package memory

import (
	"context"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/pkg/cmap"
)

// SessionRegistry is the authoritative store of live sessions, keyed by
// the SHA-256 hash of the opaque identifier.
//
// It is safe for concurrent request handlers: the underlying sharded map
// guarantees that a Put happens-before any Get that observes it.
type SessionRegistry struct {
	byHash *cmap.Map[*domain.Session]
}

// NewSessionRegistry creates an empty registry. Instances are
// constructor-injected so tests can isolate state per test case.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		byHash: cmap.New[*domain.Session](),
	}
}

// Put registers a session under its token hash.
//
// An identifier, once issued, maps to exactly one user until revoked or
// expired; a hash collision therefore fails rather than overwrites.
func (r *SessionRegistry) Put(_ context.Context, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	if !r.byHash.SetIfAbsent(session.TokenHash, session.Clone()) {
		return domain.ErrSessionConflict
	}
	return nil
}

// GetByTokenHash resolves a session by token hash.
//
// An entry observed past its expiry is treated as absent: it is evicted
// and ErrSessionExpired is returned so the caller can classify the
// rejection.
func (r *SessionRegistry) GetByTokenHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	session, ok := r.byHash.Get(tokenHash)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	if session.IsExpired() {
		r.byHash.Delete(tokenHash)
		return nil, domain.ErrSessionExpired
	}

	return session.Clone(), nil
}

// Remove deletes a session. Idempotent: removing an unknown hash is a
// no-op.
func (r *SessionRegistry) Remove(_ context.Context, tokenHash string) error {
	r.byHash.Delete(tokenHash)
	return nil
}

// DeleteExpired evicts every expired session and returns the count.
func (r *SessionRegistry) DeleteExpired(_ context.Context) (int, error) {
	evicted := r.byHash.DeleteIf(func(_ string, s *domain.Session) bool {
		return s.IsExpired()
	})
	return evicted, nil
}

// Count returns the number of physically present sessions, expired
// entries included until they are observed or swept.
func (r *SessionRegistry) Count() int {
	return r.byHash.Count()
}
