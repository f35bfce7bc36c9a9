// Package ui draws a session and runs the interactive loop.
//
// The screen has two columns: the board on the left, one section per
// category, and on the right a console with the last few commands above the
// list of stored clues (newest first, the ones that yield nothing dimmed).
// Element states are coloured by what the registry records; element names
// are coloured by what the propagation cache suggests.
//
// Play picks a full-screen bubbletea program when stdin is a terminal and a
// plain line loop otherwise, so the same binary works interactively and in
// pipelines.
package ui
