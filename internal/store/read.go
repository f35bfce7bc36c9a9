package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadSession retrieves a session header by ID.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) ReadSession(ctx context.Context, id string) (SessionRecord, error) {
	var rec SessionRecord
	var boardJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, board, board_hash
		FROM sessions
		WHERE id = ?
	`, id).Scan(&rec.ID, &boardJSON, &rec.BoardHash)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("read session %s: %w", id, err)
	}

	rec.Board, err = unmarshalBoard(boardJSON)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return rec, nil
}

// ReadEvents returns every event of a session ordered by seq ASC.
// Returns an empty slice (not nil) if the session has no events.
func (s *Store) ReadEvents(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, command, error_code, message, clue_id
		FROM events
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// FindClue returns the events, across all sessions, that added the clue with
// the given content-addressed ID. Ordered by session_id, then seq.
func (s *Store) FindClue(ctx context.Context, clueID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, command, error_code, message, clue_id
		FROM events
		WHERE clue_id = ?
		ORDER BY session_id COLLATE BINARY ASC, seq ASC
	`, clueID)
	if err != nil {
		return nil, fmt.Errorf("find clue: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// ListSessions summarises every stored session, ordered by ID.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.board_hash,
		       COUNT(e.seq),
		       COALESCE(SUM(CASE WHEN e.error_code != '' OR e.message != '' THEN 1 ELSE 0 END), 0),
		       COALESCE(MAX(e.seq), 0)
		FROM sessions s
		LEFT JOIN events e ON e.session_id = s.id
		GROUP BY s.id, s.board_hash
		ORDER BY s.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	summaries := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.ID, &sum.BoardHash, &sum.Events, &sum.Failed, &sum.LastSeq); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return summaries, nil
}

// LastSeq returns the highest seq recorded for a session, or 0 if it has no events.
// Used to resume a session's logical clock.
func (s *Store) LastSeq(ctx context.Context, sessionID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM events WHERE session_id = ?
	`, sessionID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var ev Event
	if err := rows.Scan(&ev.SessionID, &ev.Seq, &ev.Command, &ev.ErrorCode, &ev.Message, &ev.ClueID); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}
	return ev, nil
}
