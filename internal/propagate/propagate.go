// Package propagate re-evaluates every stored clue against a board snapshot.
//
// A refresh is a full recomputation: it keeps no state between calls and
// never writes into the registry. Its Result is advisory. Applying a
// suggestion to the board is a separate, explicit action taken by the caller.
package propagate

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
)

// Result is the outcome of one refresh.
type Result struct {
	// Cache maps each resolved identifier to what its clue forces on it.
	// When several clues resolve the same identifier, the last one wins.
	Cache map[board.Identifier]clue.SolvedState

	// Unresolved holds the clues that currently yield nothing: two or more
	// leaves Unknown, or none. Keyed by clue.Constraint.Key.
	Unresolved map[string]clue.Constraint
}

// Suggestion returns the cached verdict for id.
func (r Result) Suggestion(id board.Identifier) (clue.SolvedState, bool) {
	s, ok := r.Cache[id]
	return s, ok
}

// IsUnresolved reports whether c carried no new information in this refresh.
func (r Result) IsUnresolved(c clue.Constraint) bool {
	_, ok := r.Unresolved[c.Key()]
	return ok
}

// Equal reports whether two results hold the same cache and unresolved set.
func (r Result) Equal(other Result) bool {
	if len(r.Cache) != len(other.Cache) || len(r.Unresolved) != len(other.Unresolved) {
		return false
	}
	for id, s := range r.Cache {
		if o, ok := other.Cache[id]; !ok || o != s {
			return false
		}
	}
	for k := range r.Unresolved {
		if _, ok := other.Unresolved[k]; !ok {
			return false
		}
	}
	return true
}

// outcome is the evaluation of one clue, kept in input order so that
// last-write-wins is decided by clue position rather than completion order.
type outcome struct {
	solved bool
	id     board.Identifier
	state  clue.SolvedState
}

func evaluateOne(c clue.Constraint, snap board.Snapshot) outcome {
	id, state, err := c.Solve(snap)
	if err != nil {
		return outcome{}
	}
	return outcome{solved: true, id: id, state: state}
}

func merge(constraints []clue.Constraint, outcomes []outcome) Result {
	res := Result{
		Cache:      make(map[board.Identifier]clue.SolvedState),
		Unresolved: make(map[string]clue.Constraint),
	}
	for i, o := range outcomes {
		if o.solved {
			res.Cache[o.id] = o.state
			continue
		}
		c := constraints[i]
		res.Unresolved[c.Key()] = c
	}
	return res
}

// Refresh evaluates every constraint against snap in order.
//
// A clue that solves contributes its verdict to Cache; a clue whose pre-check
// says No or AlreadySolved goes into Unresolved. Calling Refresh twice with
// the same inputs yields equal results.
func Refresh(constraints []clue.Constraint, snap board.Snapshot) Result {
	outcomes := make([]outcome, len(constraints))
	for i, c := range constraints {
		outcomes[i] = evaluateOne(c, snap)
	}
	return merge(constraints, outcomes)
}

// RefreshConcurrent is Refresh with clue evaluations spread over up to
// workers goroutines (GOMAXPROCS when workers <= 0). Evaluations only read
// snap, and results are merged in input order, so the Result equals Refresh's.
func RefreshConcurrent(constraints []clue.Constraint, snap board.Snapshot, workers int) Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]outcome, len(constraints))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, c := range constraints {
		g.Go(func() error {
			outcomes[i] = evaluateOne(c, snap)
			return nil
		})
	}
	_ = g.Wait()

	return merge(constraints, outcomes)
}
