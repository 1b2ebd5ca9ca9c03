package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UnknownUser(t *testing.T) {
	s := NewStore(10)

	assert.Empty(t, s.Snapshot(42))
	assert.Equal(t, 0, s.Len(42))

	// Clearing an unseen user must be a no-op, not an error
	s.Clear(42)
	assert.Empty(t, s.Snapshot(42))
}

func TestStore_AppendAndSnapshot(t *testing.T) {
	s := NewStore(10)

	s.AppendUser(1, "Hello")
	s.AppendAssistant(1, "Hi there!")

	turns := s.Snapshot(1)
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "Hello", turns[0].Content)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.Equal(t, "Hi there!", turns[1].Content)
}

func TestStore_EvictsOldestBeyondBound(t *testing.T) {
	s := NewStore(3)

	for i := 1; i <= 5; i++ {
		s.AppendUser(1, fmt.Sprintf("m%d", i))
	}

	turns := s.Snapshot(1)
	require.Len(t, turns, 3)
	assert.Equal(t, "m3", turns[0].Content)
	assert.Equal(t, "m4", turns[1].Content)
	assert.Equal(t, "m5", turns[2].Content)
}

func TestStore_ClearResets(t *testing.T) {
	s := NewStore(10)

	s.AppendUser(1, "Hello")
	s.AppendAssistant(1, "Hi")
	require.Equal(t, 2, s.Len(1))

	s.Clear(1)
	assert.Empty(t, s.Snapshot(1))

	// History starts fresh after a clear
	s.AppendUser(1, "again")
	turns := s.Snapshot(1)
	require.Len(t, turns, 1)
	assert.Equal(t, "again", turns[0].Content)
}

func TestStore_UsersAreIsolated(t *testing.T) {
	s := NewStore(10)

	s.AppendUser(1, "from one")
	s.AppendUser(2, "from two")
	s.Clear(1)

	assert.Empty(t, s.Snapshot(1))
	require.Len(t, s.Snapshot(2), 1)
	assert.Equal(t, "from two", s.Snapshot(2)[0].Content)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore(10)
	s.AppendUser(1, "original")

	turns := s.Snapshot(1)
	turns[0].Content = "mutated"

	assert.Equal(t, "original", s.Snapshot(1)[0].Content)
}

func TestStore_NonPositiveBoundFallsBack(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < DefaultMaxTurns+5; i++ {
		s.AppendUser(1, "x")
	}
	assert.Equal(t, DefaultMaxTurns, s.Len(1))
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := NewStore(10)

	var wg sync.WaitGroup
	for u := int64(1); u <= 8; u++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.AppendUser(userID, "msg")
			}
		}(u)
	}
	wg.Wait()

	for u := int64(1); u <= 8; u++ {
		assert.Equal(t, 10, s.Len(u))
	}
}
