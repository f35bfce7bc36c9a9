package session

import (
	"errors"
	"fmt"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
)

// ErrorCode categorizes rejected session commands.
// The E2xx range is shared with clue and mark parse errors.
type ErrorCode string

const (
	// ErrCodeInvalidIndex indicates a reference to an element or clue that
	// does not exist.
	ErrCodeInvalidIndex ErrorCode = "E202"

	// ErrCodeInvalidState indicates an apply with no forced state behind it.
	ErrCodeInvalidState ErrorCode = "E204"

	// ErrCodeInvalidCommand indicates a malformed rm or apply command.
	ErrCodeInvalidCommand ErrorCode = "E205"

	// ErrCodeInternal marks an error that carries no code of its own.
	ErrCodeInternal ErrorCode = "E299"
)

// CommandError reports why a command was rejected.
type CommandError struct {
	Code    ErrorCode
	Message string
	Input   string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s: %s (%q)", e.Code, e.Message, e.Input)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCommandError returns true if err is a CommandError with the given code.
// Uses errors.As to handle wrapped errors.
func IsCommandError(err error, code ErrorCode) bool {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// Code returns the E2xx code carried by err, whichever package produced it.
// Returns "" for nil and ErrCodeInternal for an error without a code.
func Code(err error) string {
	if err == nil {
		return ""
	}

	var ce *CommandError
	if errors.As(err, &ce) {
		return string(ce.Code)
	}
	var pe *clue.ParseError
	if errors.As(err, &pe) {
		return string(pe.Code)
	}
	var me *board.MarkError
	if errors.As(err, &me) {
		return string(me.Code)
	}
	return string(ErrCodeInternal)
}

// ReplayError reports a stored event whose re-execution did not reproduce
// the recorded outcome.
type ReplayError struct {
	Seq      int64
	Command  string
	Message  string
	WantCode string
	GotCode  string
}

// Error implements the error interface.
func (e *ReplayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("replay diverged at seq %d (%q): %s", e.Seq, e.Command, e.Message)
	}
	return fmt.Sprintf("replay diverged at seq %d (%q): want code %q, got %q",
		e.Seq, e.Command, e.WantCode, e.GotCode)
}
