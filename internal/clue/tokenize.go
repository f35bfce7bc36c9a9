package clue

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/cluesolver/internal/board"
)

// Tokenize converts clue text into a flat token sequence.
//
// Whitespace is ignored everywhere. '|' is the only operator and separates
// operands; every other character accumulates into the current operand. An
// operand is flushed into a leaf at each '|' and at end of input:
//
//   - its first character must be 'w', 'l' or 'p' (else ErrCodeInvalidSection)
//   - the digit run after it is a 1-based index (else ErrCodeInvalidIndex),
//     stored 0-based; "w0" clamps to index 0
//   - anything after the digit run is ignored
//
// Empty operands are skipped silently, so "w1 || l1" tokenizes as
// [w1, |, |, l1]. Structural checks are left to Build.
func Tokenize(raw string) ([]Token, error) {
	var out []Token
	var operand strings.Builder

	flush := func() error {
		if operand.Len() == 0 {
			return nil
		}
		tok, err := parseOperand(operand.String())
		if err != nil {
			return err
		}
		operand.Reset()
		out = append(out, tok)
		return nil
	}

	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '|':
			if err := flush(); err != nil {
				return nil, err
			}
			out = append(out, OpToken(OpOr))
		default:
			operand.WriteRune(r)
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseOperand(s string) (Token, error) {
	first, size := utf8.DecodeRuneInString(s)
	cat, ok := board.ParseCategory(first)
	if !ok {
		return Token{}, newSectionError(s)
	}

	index, _, ok := board.ParseIndex(s[size:])
	if !ok {
		return Token{}, newIndexError(s)
	}

	return Leaf(board.ID(cat, index)), nil
}
