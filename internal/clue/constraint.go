package clue

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/roach88/cluesolver/internal/board"
)

// DomainClue is the hash domain for content-addressed clue IDs.
// The version suffix leaves room for changing the key format later.
const DomainClue = "cluesolver/clue/v1"

// Constraint is a validated clue: a tree with at least one operator and at
// least two leaves. The zero value is not a valid Constraint; obtain one from
// Parse or Build.
//
// Constraints are immutable. Two constraints are equal iff they have the same
// tree shape and leaves, which Key captures as a comparable string.
type Constraint struct {
	root *Token
}

// Parse tokenizes and builds raw in one step.
func Parse(raw string) (Constraint, error) {
	tokens, err := Tokenize(raw)
	if err != nil {
		return Constraint{}, err
	}
	return Build(tokens)
}

// MustParse is like Parse but panics on error. Intended for tests and fixed tables.
func MustParse(raw string) Constraint {
	c, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// IsZero reports whether c is the zero value.
func (c Constraint) IsZero() bool {
	return c.root == nil
}

// Root returns the tree's root token. The returned token shares nodes with c
// and must not be modified.
func (c Constraint) Root() Token {
	if c.root == nil {
		return Token{}
	}
	return *c.root
}

// Leaves returns the leaf identifiers in left-to-right order. For a clue built
// from text this is the order the elements were typed.
func (c Constraint) Leaves() []board.Identifier {
	if c.root == nil {
		return nil
	}
	return c.root.Leaves()
}

// String renders the clue in normalised form: "w1 | l3 | p5".
func (c Constraint) String() string {
	if c.root == nil {
		return ""
	}
	return c.root.String()
}

// Key returns the structural identity of c, e.g. "((w1|l3)|p5)".
// Use it wherever a Constraint would be a map key.
func (c Constraint) Key() string {
	if c.root == nil {
		return ""
	}
	var sb strings.Builder
	c.root.key(&sb)
	return sb.String()
}

// ID returns a content-addressed identifier for c: hex SHA-256 over the
// domain, a 0x00 separator and Key. Stable across processes and versions of
// the clue text ("w1|l1" and " w1 | l1 " share an ID).
func (c Constraint) ID() string {
	h := sha256.New()
	h.Write([]byte(DomainClue))
	h.Write([]byte{0x00})
	h.Write([]byte(c.Key()))
	return hex.EncodeToString(h.Sum(nil))
}

// Equal reports structural equality.
func (c Constraint) Equal(other Constraint) bool {
	if c.root == nil || other.root == nil {
		return c.root == other.root
	}
	return c.root.Equal(*other.root)
}

// MarshalText implements encoding.TextMarshaler using the normalised form.
func (c Constraint) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by parsing the text.
func (c *Constraint) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
