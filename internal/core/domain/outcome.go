// Package domain defines the core domain models for the estate service.
package domain

// RejectReason classifies why a gate check turned a request away.
//
// The reason is internal: logging and metrics distinguish the cases, but
// every rejection surfaces to the client as the same 401 response so
// session-lifecycle details do not leak.
type RejectReason string

// Gate rejection reasons.
const (
	// ReasonMissingIdentifier means the request carried no identifier in
	// either the Authorization header or the session cookie.
	ReasonMissingIdentifier RejectReason = "missing_identifier"

	// ReasonUnknownIdentifier means the identifier resolved to no live
	// registry entry.
	ReasonUnknownIdentifier RejectReason = "unknown_identifier"

	// ReasonExpired means the registry entry existed but its TTL had
	// elapsed; the entry is evicted as a side effect.
	ReasonExpired RejectReason = "expired"
)

// AuthOutcome is the transient result of a gate check. It is never
// persisted.
type AuthOutcome struct {
	Admitted bool
	UserID   int64
	Reason   RejectReason
}

// Admit builds an admitted outcome carrying the resolved identity.
func Admit(userID int64) AuthOutcome {
	return AuthOutcome{Admitted: true, UserID: userID}
}

// Reject builds a rejected outcome with the given reason.
func Reject(reason RejectReason) AuthOutcome {
	return AuthOutcome{Reason: reason}
}
