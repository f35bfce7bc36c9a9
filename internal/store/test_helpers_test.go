package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/cluesolver/internal/board"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testBoard() board.Definition {
	return board.Definition{
		Locations: []string{"Kitchen", "Library"},
		People:    []string{"Green", "White"},
		Weapons:   []string{"Knife", "Rope"},
	}
}

// createTestSession writes a session header with the test board.
func createTestSession(t *testing.T, s *Store, id string) SessionRecord {
	t.Helper()
	rec := SessionRecord{ID: id, Board: testBoard()}
	if err := s.WriteSession(t.Context(), rec); err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
	return rec
}

// createTestEvent creates an event with minimal required fields.
func createTestEvent(sessionID string, seq int64, command string) Event {
	return Event{
		SessionID: sessionID,
		Seq:       seq,
		Command:   command,
	}
}
