// Package harness runs scripted games against a real session.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: knife_dismissed
//	description: "Dismissing the knife confirms the kitchen"
//	board_file: boards/classic.toml     # or an inline board: {locations, people, weapons}
//	steps:
//	  - command: "w1 | l1"
//	    expect: ok
//	  - command: w1x
//	assertions:
//	  - type: suggestion
//	    element: l1
//	    expect: confirmed
//	  - type: clue
//	    clue: "w1 | l1"
//	    expect: resolved
//
// A step's expect is "ok", "ignored" (blank or incomplete input) or an
// error code such as "E201".
//
// # Assertion Types
//
//   - state: an element's board state (unknown, confirmed, dismissed)
//   - suggestion: the propagation cache entry (confirmed, dismissed, any, none)
//   - clue: a stored clue is unresolved, resolved or absent
//   - clue_count: number of stored clues
//   - history_count: number of recorded commands, optionally with one code
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory SQLite log, a testutil.DeterministicClock
// and a fixed session ID, so the trace and final state can be compared with
// a golden file (RunWithGolden). The stored log is then replayed into a new
// session; a replay that does not reach the same final state fails the run.
package harness
