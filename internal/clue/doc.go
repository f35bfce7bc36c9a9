// Package clue implements the clue language and the single-clue deduction engine.
//
// A clue is a disjunction over board elements, typed by the player as
//
//	w1 | l3 | p5
//
// meaning "at least one of these elements is the solution". Parsing happens in
// two stages:
//
//  1. Tokenize turns the text into a flat sequence of leaf and operator tokens,
//     validating category letters and indices.
//  2. Build folds that sequence left to right into a strictly binary tree and
//     wraps it in a Constraint. A Constraint always has at least one operator
//     and two leaves.
//
// Evaluation works against a board.Snapshot and never touches the registry:
//
//   - Solvable reports whether exactly one leaf is still Unknown.
//   - Solve evaluates the tree with that leaf forced true and forced false and
//     derives what the clue says about it (Confirmed, Dismissed, or Any when the
//     clue already holds through another leaf).
//
// Only disjunction is supported, and each clue is reasoned about on its own;
// combining information across clues is left to the player.
package clue
