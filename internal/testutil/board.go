package testutil

import (
	"io"
	"log/slog"

	"github.com/roach88/cluesolver/internal/board"
)

// ClassicBoard returns the standard board: nine rooms, six suspects and six
// weapons. Tests that need a specific element refer to it by identifier,
// e.g. l1 is the Kitchen and w1 the Knife.
func ClassicBoard() board.Definition {
	return board.Definition{
		Locations: []string{
			"Kitchen", "Ballroom", "Conservatory", "Dining Room", "Billiard Room",
			"Library", "Lounge", "Hall", "Study",
		},
		People: []string{
			"Miss Scarlet", "Colonel Mustard", "Mrs. White", "Mr. Green", "Mrs. Peacock",
			"Professor Plum",
		},
		Weapons: []string{
			"Knife", "Candlestick", "Revolver", "Rope", "Lead Pipe", "Wrench",
		},
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
