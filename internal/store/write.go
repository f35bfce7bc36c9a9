package store

import (
	"context"
	"fmt"
)

// WriteSession inserts a session header.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same session
// twice is silently ignored.
//
// BoardHash is computed from Board when empty.
func (s *Store) WriteSession(ctx context.Context, rec SessionRecord) error {
	boardJSON, err := marshalBoard(rec.Board)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	hash := rec.BoardHash
	if hash == "" {
		hash = rec.Board.Hash()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, board, board_hash)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, rec.ID, boardJSON, hash)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteEvent appends one executed command to a session's log.
// Uses ON CONFLICT(session_id, seq) DO NOTHING for idempotency: seq comes
// from the session's logical clock, so a duplicate is the same event.
//
// Note: The session referenced by SessionID must exist (foreign key constraint).
func (s *Store) WriteEvent(ctx context.Context, ev Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (session_id, seq, command, error_code, message, clue_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, seq) DO NOTHING
	`,
		ev.SessionID,
		ev.Seq,
		ev.Command,
		ev.ErrorCode,
		ev.Message,
		ev.ClueID,
	)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
