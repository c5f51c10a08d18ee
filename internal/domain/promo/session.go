package promo

import "sync"

// Session holds the in-memory promo state for the single active user.
// It is never persisted; a restart resets it.
type Session struct {
	mu      sync.Mutex
	applied bool
	code    string
}

// Apply records that a validated code is active for this session.
func (s *Session) Apply(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = true
	s.code = code
}

// Reset clears any active promo.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = false
	s.code = ""
}

// Applied reports whether a valid promo is active.
func (s *Session) Applied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// Code returns the active promo code, or "".
func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}
