package store

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"
)

func TestReadSession_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()

	def := testBoard()
	def.Locations = []string{"R&D Lab", "Café"}
	if err := s.WriteSession(ctx, SessionRecord{ID: "session-1", Board: def}); err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}

	rec, err := s.ReadSession(ctx, "session-1")
	if err != nil {
		t.Fatalf("ReadSession() failed: %v", err)
	}
	if !reflect.DeepEqual(rec.Board, def) {
		t.Errorf("Board = %+v, want %+v", rec.Board, def)
	}
}

func TestReadSession_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadSession(t.Context(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ReadSession() error = %v, want sql.ErrNoRows", err)
	}
}

func TestReadEvents_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "session-1")

	// Written out of order on purpose.
	for _, seq := range []int64{3, 1, 2} {
		ev := createTestEvent("session-1", seq, "cmd")
		if err := s.WriteEvent(ctx, ev); err != nil {
			t.Fatalf("WriteEvent(%d) failed: %v", seq, err)
		}
	}

	events, err := s.ReadEvents(ctx, "session-1")
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	for i, ev := range events {
		if ev.Seq != int64(i+1) {
			t.Errorf("events[%d].Seq = %d, want %d", i, ev.Seq, i+1)
		}
	}
}

func TestReadEvents_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)
	createTestSession(t, s, "session-1")

	events, err := s.ReadEvents(t.Context(), "session-1")
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if events == nil {
		t.Error("ReadEvents() returned nil, want empty slice")
	}
}

func TestReadEvents_PreservesOutcome(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "session-1")

	want := Event{
		SessionID: "session-1",
		Seq:       1,
		Command:   "q1|w2",
		ErrorCode: "E201",
		Message:   `E201: invalid section ("q1")`,
	}
	if err := s.WriteEvent(ctx, want); err != nil {
		t.Fatalf("WriteEvent() failed: %v", err)
	}

	events, err := s.ReadEvents(ctx, "session-1")
	if err != nil {
		t.Fatalf("ReadEvents() failed: %v", err)
	}
	if len(events) != 1 || events[0] != want {
		t.Errorf("events = %+v, want [%+v]", events, want)
	}
	if events[0].OK() {
		t.Error("OK() = true for a rejected command")
	}
}

func TestFindClue(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "b-session")
	createTestSession(t, s, "a-session")

	writes := []Event{
		{SessionID: "b-session", Seq: 1, Command: "w1|l1", ClueID: "clue-1"},
		{SessionID: "a-session", Seq: 2, Command: "w1 | l1", ClueID: "clue-1"},
		{SessionID: "a-session", Seq: 1, Command: "w2|l2", ClueID: "clue-2"},
		{SessionID: "a-session", Seq: 3, Command: "w1x"},
	}
	for _, ev := range writes {
		if err := s.WriteEvent(ctx, ev); err != nil {
			t.Fatalf("WriteEvent() failed: %v", err)
		}
	}

	events, err := s.FindClue(ctx, "clue-1")
	if err != nil {
		t.Fatalf("FindClue() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].SessionID != "a-session" || events[1].SessionID != "b-session" {
		t.Errorf("sessions = %q, %q; want a-session, b-session", events[0].SessionID, events[1].SessionID)
	}
}

func TestListSessions(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "session-2")
	createTestSession(t, s, "session-1")

	writes := []Event{
		{SessionID: "session-1", Seq: 1, Command: "w1x"},
		{SessionID: "session-1", Seq: 2, Command: "zz", ErrorCode: "E201", Message: "bad"},
		{SessionID: "session-1", Seq: 3, Command: "w1|l1"},
	}
	for _, ev := range writes {
		if err := s.WriteEvent(ctx, ev); err != nil {
			t.Fatalf("WriteEvent() failed: %v", err)
		}
	}

	got, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() failed: %v", err)
	}
	hash := testBoard().Hash()
	want := []SessionSummary{
		{ID: "session-1", BoardHash: hash, Events: 3, Failed: 1, LastSeq: 3},
		{ID: "session-2", BoardHash: hash, Events: 0, Failed: 0, LastSeq: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListSessions() = %+v, want %+v", got, want)
	}
}

func TestLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := t.Context()
	createTestSession(t, s, "session-1")

	seq, err := s.LastSeq(ctx, "session-1")
	if err != nil {
		t.Fatalf("LastSeq() failed: %v", err)
	}
	if seq != 0 {
		t.Errorf("LastSeq() on empty session = %d, want 0", seq)
	}

	for i := int64(1); i <= 4; i++ {
		if err := s.WriteEvent(ctx, createTestEvent("session-1", i, "cmd")); err != nil {
			t.Fatalf("WriteEvent() failed: %v", err)
		}
	}
	seq, err = s.LastSeq(ctx, "session-1")
	if err != nil {
		t.Fatalf("LastSeq() failed: %v", err)
	}
	if seq != 4 {
		t.Errorf("LastSeq() = %d, want 4", seq)
	}
}
