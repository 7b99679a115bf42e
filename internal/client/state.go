// Package client provides the API client with a cached session state.
package client

// State is the client's view of its own session.
//
// The cache starts Unknown, passes through Checking while a status
// probe is in flight, and settles on Authenticated or Unauthenticated.
// Any 401 from the server drops the cached token and forces
// Unauthenticated immediately.
type State int32

// Session cache states.
const (
	StateUnknown State = iota
	StateChecking
	StateAuthenticated
	StateUnauthenticated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}
