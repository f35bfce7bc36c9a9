package board

import (
	"errors"
	"fmt"
	"strings"
)

// MarkErrorCode categorizes mark parsing failures.
// Codes share the E2xx range with clue parse errors so the console can
// report both the same way.
type MarkErrorCode string

const (
	// ErrCodeInvalidSection indicates an unrecognised category letter.
	ErrCodeInvalidSection MarkErrorCode = "E201"

	// ErrCodeInvalidIndex indicates a missing, unparsable or out-of-range index.
	ErrCodeInvalidIndex MarkErrorCode = "E202"

	// ErrCodeInvalidState indicates an unrecognised state letter.
	ErrCodeInvalidState MarkErrorCode = "E204"
)

// MarkError reports why a mark command was rejected.
type MarkError struct {
	Code    MarkErrorCode
	Message string
	Input   string
}

// Error implements the error interface.
func (e *MarkError) Error() string {
	return fmt.Sprintf("%s: %s (%q)", e.Code, e.Message, e.Input)
}

// ErrIncomplete is returned for a mark that names an element but no state,
// e.g. "l3". Callers treat it as "nothing to do" rather than a failure.
var ErrIncomplete = errors.New("mark is incomplete")

// Mark is a parsed request to record a state for one element.
type Mark struct {
	ID    Identifier
	State State
}

// ParseIdentifier reads a <category><index> prefix from s, e.g. "l3" in
// "l3c", and returns the identifier and the unconsumed remainder.
//
// The index is checked against snap so that identifiers for elements that do
// not exist are rejected up front.
func ParseIdentifier(s string, snap Snapshot) (Identifier, string, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Identifier{}, "", ErrIncomplete
	}

	cat, ok := ParseCategory(rune(raw[0]))
	if !ok {
		return Identifier{}, "", &MarkError{Code: ErrCodeInvalidSection, Message: "invalid section", Input: s}
	}

	rest := raw[1:]
	index, n, ok := ParseIndex(rest)
	if !ok || index >= snap.Len(cat) {
		return Identifier{}, "", &MarkError{Code: ErrCodeInvalidIndex, Message: "invalid index", Input: s}
	}
	return ID(cat, index), rest[n:], nil
}

// ParseMark parses a mark command of the form <category><index><state>, where
// state is 'c' (confirmed), 'x' (dismissed) or '?' (back to unknown).
// Examples: "l3c", "w2x", "p1?".
func ParseMark(line string, snap Snapshot) (Mark, error) {
	id, rest, err := ParseIdentifier(line, snap)
	if err != nil {
		return Mark{}, err
	}
	if rest == "" {
		return Mark{}, ErrIncomplete
	}

	var state State
	switch rest[0] {
	case 'c':
		state = Confirmed
	case 'x':
		state = Dismissed
	case '?':
		state = Unknown
	default:
		return Mark{}, &MarkError{Code: ErrCodeInvalidState, Message: "invalid state", Input: line}
	}

	return Mark{ID: id, State: state}, nil
}

// IsMarkError reports whether err is a MarkError with the given code.
func IsMarkError(err error, code MarkErrorCode) bool {
	var me *MarkError
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}
