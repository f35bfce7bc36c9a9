package store

import "github.com/roach88/cluesolver/internal/board"

// SessionRecord is the durable header of a session: its ID and the board it
// was started on.
type SessionRecord struct {
	ID        string
	Board     board.Definition
	BoardHash string
}

// Event is one executed command and its outcome.
type Event struct {
	SessionID string
	Seq       int64

	// Command is the command line as typed, trimmed.
	Command string

	// ErrorCode and Message describe a rejected command. Both are empty on success.
	ErrorCode string
	Message   string

	// ClueID is the content-addressed ID of the clue a command added, if any.
	ClueID string
}

// OK reports whether the command succeeded.
func (e Event) OK() bool {
	return e.ErrorCode == "" && e.Message == ""
}

// SessionSummary is a one-line overview of a stored session.
type SessionSummary struct {
	ID        string
	BoardHash string
	Events    int
	Failed    int
	LastSeq   int64
}
