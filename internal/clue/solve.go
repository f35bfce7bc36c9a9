package clue

import (
	"fmt"

	"github.com/roach88/cluesolver/internal/board"
)

// Verdict is the outcome of the Solvable pre-check.
type Verdict int

const (
	// No means two or more leaves are still Unknown.
	No Verdict = iota

	// Yes means exactly one leaf is Unknown; Solvable.ID names it.
	Yes

	// AlreadySolved means every leaf is already Confirmed or Dismissed.
	AlreadySolved
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case No:
		return "no"
	case Yes:
		return "yes"
	case AlreadySolved:
		return "already solved"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Solvable is the result of the pre-check. ID is meaningful only when Verdict is Yes.
type Solvable struct {
	Verdict Verdict
	ID      board.Identifier
}

// SolvedState is what a clue says about its one unresolved leaf.
// Distinct from board.State: Any has no registry counterpart.
type SolvedState int

const (
	// SolvedConfirmed means the leaf must be true for the clue to hold.
	SolvedConfirmed SolvedState = iota

	// SolvedDismissed means the leaf must be false for the clue to hold.
	SolvedDismissed

	// SolvedAny means the clue holds whatever the leaf is; it carries no new information.
	SolvedAny
)

// String returns the state name.
func (s SolvedState) String() string {
	switch s {
	case SolvedConfirmed:
		return "confirmed"
	case SolvedDismissed:
		return "dismissed"
	case SolvedAny:
		return "any"
	default:
		return fmt.Sprintf("SolvedState(%d)", int(s))
	}
}

// BoardState maps a forced verdict to the registry state it suggests.
// ok is false for SolvedAny.
func (s SolvedState) BoardState() (board.State, bool) {
	switch s {
	case SolvedConfirmed:
		return board.Confirmed, true
	case SolvedDismissed:
		return board.Dismissed, true
	default:
		return board.Unknown, false
	}
}

// Solvable scans the leaves in order and reports how many are still Unknown
// in snap. The scan stops at the second Unknown leaf.
func (c Constraint) Solvable(snap board.Snapshot) Solvable {
	var missing *board.Identifier

	for _, id := range c.Leaves() {
		if snap.State(id) != board.Unknown {
			continue
		}
		if missing != nil {
			return Solvable{Verdict: No}
		}
		id := id
		missing = &id
	}

	if missing == nil {
		return Solvable{Verdict: AlreadySolved}
	}
	return Solvable{Verdict: Yes, ID: *missing}
}

// Solve derives what c forces on its single unresolved leaf.
//
// If the pre-check does not return Yes, Solve returns an *UnsolvableError
// carrying that verdict. Otherwise the tree is evaluated twice, with the leaf
// fixed Confirmed and then Dismissed, and the pair of results decides:
//
//	true,  false -> SolvedConfirmed
//	false, true  -> SolvedDismissed
//	true,  true  -> SolvedAny
//
// Disjunction is monotonic, so raising the leaf from false to true can never
// lower the result; false/false means a malformed tree and panics.
func (c Constraint) Solve(snap board.Snapshot) (board.Identifier, SolvedState, error) {
	check := c.Solvable(snap)
	if check.Verdict != Yes {
		return board.Identifier{}, 0, &UnsolvableError{Solvable: check}
	}

	id := check.ID
	withTrue := evaluate(c.Root(), hypothesis{snap: snap, id: id, state: board.Confirmed})
	withFalse := evaluate(c.Root(), hypothesis{snap: snap, id: id, state: board.Dismissed})

	switch {
	case withTrue && !withFalse:
		return id, SolvedConfirmed, nil
	case !withTrue && withFalse:
		return id, SolvedDismissed, nil
	case withTrue && withFalse:
		return id, SolvedAny, nil
	default:
		panic(fmt.Sprintf("clue: %q evaluated false with %s both confirmed and dismissed", c, id))
	}
}

// states is the read-only view evaluate needs.
type states interface {
	State(id board.Identifier) board.State
}

// hypothesis is snap with one element's state overridden. The override
// applies even when id is outside the board, which a Snapshot would ignore.
type hypothesis struct {
	snap  board.Snapshot
	id    board.Identifier
	state board.State
}

func (h hypothesis) State(id board.Identifier) board.State {
	if id == h.id {
		return h.state
	}
	return h.snap.State(id)
}

// Evaluate computes the truth value of c under snap with strict disjunction.
// Every leaf must be Confirmed or Dismissed in snap; it panics otherwise.
func (c Constraint) Evaluate(snap board.Snapshot) bool {
	return evaluate(c.Root(), snap)
}

// evaluate computes the truth value of t under snap.
// Every leaf reached must be fixed; an Unknown leaf is a caller bug and panics.
func evaluate(t Token, snap states) bool {
	switch t.Kind {
	case KindTree:
		left := evaluate(*t.Left, snap)
		right := evaluate(*t.Right, snap)
		switch t.Op {
		case OpOr:
			return left || right
		default:
			panic(fmt.Sprintf("clue: unsupported operator %s", t.Op))
		}
	case KindLeaf:
		switch snap.State(t.ID) {
		case board.Confirmed:
			return true
		case board.Dismissed:
			return false
		default:
			panic(fmt.Sprintf("clue: evaluated unresolved leaf %s", t.ID))
		}
	default:
		panic(fmt.Sprintf("clue: cannot evaluate %s token", t))
	}
}
