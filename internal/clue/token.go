package clue

import (
	"fmt"
	"strings"

	"github.com/roach88/cluesolver/internal/board"
)

// Op is a boolean operator. Disjunction is the only one.
type Op int

const (
	OpOr Op = iota
)

// String returns the operator as written in clue text.
func (o Op) String() string {
	switch o {
	case OpOr:
		return "|"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Kind tags the variant held by a Token.
type Kind int

const (
	// KindOp is a bare operator. Only appears in tokenizer output.
	KindOp Kind = iota

	// KindLeaf references a single element.
	KindLeaf

	// KindTree is an internal node (Op, Left, Right). Only appears after Build.
	KindTree
)

// Token is a tagged variant: an operator marker, a leaf naming an element, or
// an internal tree node. Fields not used by the Kind are zero.
//
// Tokens reachable from a Constraint are shared and must not be modified.
type Token struct {
	Kind  Kind
	Op    Op
	ID    board.Identifier
	Left  *Token
	Right *Token
}

// OpToken returns an operator token.
func OpToken(op Op) Token {
	return Token{Kind: KindOp, Op: op}
}

// Leaf returns a leaf token for id.
func Leaf(id board.Identifier) Token {
	return Token{Kind: KindLeaf, ID: id}
}

// Tree returns an internal node joining left and right with op.
func Tree(op Op, left, right Token) Token {
	l, r := left, right
	return Token{Kind: KindTree, Op: op, Left: &l, Right: &r}
}

// String renders the token as clue text. Trees render infix without
// parentheses: "w1 | l3 | p5".
func (t Token) String() string {
	switch t.Kind {
	case KindOp:
		return t.Op.String()
	case KindLeaf:
		return t.ID.String()
	case KindTree:
		return fmt.Sprintf("%s %s %s", t.Left, t.Op, t.Right)
	default:
		return fmt.Sprintf("Token(%d)", int(t.Kind))
	}
}

// Leaves returns the identifiers of every leaf under t, left subtree first.
// Tree nodes contribute no entry of their own.
func (t Token) Leaves() []board.Identifier {
	var out []board.Identifier
	t.appendLeaves(&out)
	return out
}

func (t Token) appendLeaves(out *[]board.Identifier) {
	switch t.Kind {
	case KindLeaf:
		*out = append(*out, t.ID)
	case KindTree:
		t.Left.appendLeaves(out)
		t.Right.appendLeaves(out)
	}
}

// key writes a fully parenthesised rendering that distinguishes tree shapes,
// so (a|b)|c and a|(b|c) have different keys.
func (t Token) key(sb *strings.Builder) {
	switch t.Kind {
	case KindOp:
		sb.WriteString(t.Op.String())
	case KindLeaf:
		sb.WriteString(t.ID.String())
	case KindTree:
		sb.WriteByte('(')
		t.Left.key(sb)
		sb.WriteString(t.Op.String())
		t.Right.key(sb)
		sb.WriteByte(')')
	}
}

// Equal reports structural equality.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindOp:
		return t.Op == other.Op
	case KindLeaf:
		return t.ID == other.ID
	case KindTree:
		return t.Op == other.Op && t.Left.Equal(*other.Left) && t.Right.Equal(*other.Right)
	default:
		return true
	}
}
