// Package board holds the element registry for a cluesolver game.
//
// A board has three fixed categories (weapons, locations, people), each an
// ordered list of named elements. Every element carries a tri-state knowledge
// value: Unknown, Confirmed or Dismissed.
//
// The Registry is the single owning, mutable handle. Everything else (the
// deduction engine, the propagation cache, the renderer) works against a
// Snapshot: a value copy of the element states taken under the registry's
// read lock. Snapshots never change after they are taken, so evaluations
// against one are reproducible and safe to run in parallel.
//
// Board definitions are loaded from TOML, YAML or CUE files (see Load).
package board
