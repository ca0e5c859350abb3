// package session holds the process-wide MusicKit session state.
//
// State only advances through the Mark* transitions and is read through
// point-in-time snapshots. Transitions are monotonic: no transition ever
// clears a flag another component observed as set.
package session

import (
	"fmt"
	"sync"
)

// Snapshot is an immutable view of the session at one point in time.
type Snapshot struct {
	SDKReady   bool
	Configured bool
	Authorized bool

	DeveloperToken string
	UserToken      string

	// Handle is the opaque SDK instance reference. Owned by the session
	// after configuration; borrowed, never copied, by the authorizer.
	Handle any
}

// Session is the single mutable holder of authorization state.
//
// Safe for concurrent reads; writes are expected from one in-flight
// authorization or fetch at a time.
type Session struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New returns a Session in the idle state.
func New() *Session {
	return &Session{}
}

// Observe returns the current snapshot.
func (s *Session) Observe() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// MarkSDKReady records that the SDK library finished loading.
func (s *Session) MarkSDKReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SDKReady = true
}

// MarkConfigured records a successful configure call, storing the developer
// token and SDK handle.
//
// Panics when called before MarkSDKReady or with an empty token: that is a
// programming-contract violation, not a recoverable runtime error.
func (s *Session) MarkConfigured(developerToken string, handle any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.SDKReady {
		panic("session: MarkConfigured before MarkSDKReady")
	}
	if developerToken == "" {
		panic("session: MarkConfigured with empty developer token")
	}

	s.snap.Configured = true
	s.snap.DeveloperToken = developerToken
	s.snap.Handle = handle
}

// MarkAuthorized records a successful authorization, storing the user token.
//
// Panics when called before MarkConfigured or with an empty token.
func (s *Session) MarkAuthorized(userToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.snap.Configured {
		panic("session: MarkAuthorized before MarkConfigured")
	}
	if userToken == "" {
		panic("session: MarkAuthorized with empty user token")
	}

	s.snap.Authorized = true
	s.snap.UserToken = userToken
}

// String summarizes the session stage for logs and status output.
func (s *Session) String() string {
	snap := s.Observe()
	switch {
	case snap.Authorized:
		return "authorized"
	case snap.Configured:
		return "configured"
	case snap.SDKReady:
		return "ready"
	default:
		return "idle"
	}
}

// Describe returns a human-readable multi-line status report.
func (s *Session) Describe() string {
	snap := s.Observe()
	return fmt.Sprintf(
		"stage: %s\nsdk ready: %v\nconfigured: %v\nauthorized: %v",
		s.String(), snap.SDKReady, snap.Configured, snap.Authorized,
	)
}
