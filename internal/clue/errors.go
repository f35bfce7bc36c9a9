package clue

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes clue parse failures.
type ErrorCode string

const (
	// ErrCodeInvalidSection indicates an operand whose first character is not
	// a category letter.
	ErrCodeInvalidSection ErrorCode = "E201"

	// ErrCodeInvalidIndex indicates an operand with a missing or unparsable index.
	ErrCodeInvalidIndex ErrorCode = "E202"

	// ErrCodeInvalidConstraint indicates a token sequence that does not form a
	// tree with at least one operator: a lone leaf, empty input, or a dangling
	// operator.
	ErrCodeInvalidConstraint ErrorCode = "E203"
)

// ParseError rejects a clue outright. No partial Constraint is ever returned
// alongside one.
type ParseError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Operand is the offending operand text, when the error is tied to one.
	Operand string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Operand != "" {
		return fmt.Sprintf("%s: %s (%q)", e.Code, e.Message, e.Operand)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newSectionError(operand string) *ParseError {
	return &ParseError{Code: ErrCodeInvalidSection, Message: "invalid section", Operand: operand}
}

func newIndexError(operand string) *ParseError {
	return &ParseError{Code: ErrCodeInvalidIndex, Message: "invalid index", Operand: operand}
}

func newConstraintError(message string) *ParseError {
	return &ParseError{Code: ErrCodeInvalidConstraint, Message: message}
}

// IsParseError returns true if err is a ParseError of any code.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsInvalidSection returns true if err is a ParseError with ErrCodeInvalidSection.
func IsInvalidSection(err error) bool {
	return hasCode(err, ErrCodeInvalidSection)
}

// IsInvalidIndex returns true if err is a ParseError with ErrCodeInvalidIndex.
func IsInvalidIndex(err error) bool {
	return hasCode(err, ErrCodeInvalidIndex)
}

// IsInvalidConstraint returns true if err is a ParseError with ErrCodeInvalidConstraint.
func IsInvalidConstraint(err error) bool {
	return hasCode(err, ErrCodeInvalidConstraint)
}

func hasCode(err error, code ErrorCode) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// UnsolvableError is returned by Solve when the clue has no single unresolved
// leaf. It is an ordinary outcome, not a rejection: the clue is valid and may
// become solvable after the board changes.
type UnsolvableError struct {
	Solvable Solvable
}

// Error implements the error interface.
func (e *UnsolvableError) Error() string {
	return fmt.Sprintf("clue not solvable: %s", e.Solvable.Verdict)
}

// IsUnsolvable returns the verdict carried by an UnsolvableError, if err is one.
func IsUnsolvable(err error) (Verdict, bool) {
	var ue *UnsolvableError
	if errors.As(err, &ue) {
		return ue.Solvable.Verdict, true
	}
	return 0, false
}
