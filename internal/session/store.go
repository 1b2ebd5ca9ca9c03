package session

import "sync"

// Store maps a Telegram user ID to its bounded conversation window.
// All methods are safe for concurrent use; unknown user IDs behave as
// empty histories and never produce an error.
type Store struct {
	mu       sync.Mutex
	maxTurns int
	turns    map[int64][]Turn
}

// NewStore creates a Store retaining at most maxTurns turns per user.
// Non-positive maxTurns falls back to DefaultMaxTurns.
func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		maxTurns: maxTurns,
		turns:    make(map[int64][]Turn),
	}
}

// AppendUser records a user turn, creating the history on first contact
// and evicting the oldest turns beyond the bound.
func (s *Store) AppendUser(userID int64, content string) {
	s.append(userID, Turn{Role: RoleUser, Content: content})
}

// AppendAssistant records an assistant turn. Callers must only append on a
// genuine model reply; failed turns are never recorded.
func (s *Store) AppendAssistant(userID int64, content string) {
	s.append(userID, Turn{Role: RoleAssistant, Content: content})
}

func (s *Store) append(userID int64, t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := append(s.turns[userID], t)
	if len(h) > s.maxTurns {
		h = h[len(h)-s.maxTurns:]
	}
	s.turns[userID] = h
}

// Clear resets the history for userID. Clearing an unknown user is a no-op.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, userID)
}

// Snapshot returns a copy of the user's history in insertion order.
// The returned slice is owned by the caller.
func (s *Store) Snapshot(userID int64) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.turns[userID]
	out := make([]Turn, len(h))
	copy(out, h)
	return out
}

// Len reports the number of retained turns for userID.
func (s *Store) Len(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns[userID])
}
