// Package session runs the interactive solver: it owns the board registry and
// the clue list, executes player commands, and refreshes the propagation
// cache after each one.
//
// Commands:
//
//	w1 | l1 | p2   add a clue (any line containing "|")
//	l3c            mark l3 confirmed ("x" dismissed, "?" unknown again)
//	rm 2           remove the 2nd clue in display order (newest first)
//	apply l1       apply the forced state suggested for l1
//	apply all      apply every forced suggestion
//
// Every executed command is stamped with seq from a logical clock, appended
// to the history and, when a Recorder is attached, to the durable log. A
// session can be rebuilt from that log with Replay.
package session
