package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/testutil"
)

func playLinesOpts(in string, out *bytes.Buffer) PlayOptions {
	return PlayOptions{
		In:     strings.NewReader(in),
		Out:    out,
		Styles: PlainStyles(),
		Logger: testutil.DiscardLogger(),
	}
}

func TestPlay_LineModeRedrawsAfterEachCommand(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer

	err := Play(t.Context(), s, playLinesOpts("l1c\n\nw1 | p1\n", &out))

	require.NoError(t, err)
	// Initial frame plus one per input line, blank ones included.
	assert.Equal(t, 4, strings.Count(out.String(), "+-Console"))
	assert.Len(t, s.History(), 2)
	assert.Len(t, s.Clues(), 1)
}

func TestPlay_LineModeStopsAtQuit(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer

	err := Play(t.Context(), s, playLinesOpts("l1c\nquit\nl2c\n", &out))

	require.NoError(t, err)
	assert.Len(t, s.History(), 1)
	assert.Equal(t, board.Unknown, s.Registry().State(board.ID(board.Location, 1)))
}

func TestPlay_LineModeKeepsGoingAfterRejection(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer

	err := Play(t.Context(), s, playLinesOpts("x9c\np2x\n", &out))

	require.NoError(t, err)
	require.Len(t, s.History(), 2)
	assert.False(t, s.History()[0].OK())
	assert.True(t, s.History()[1].OK())
}

func TestPlay_LineModeWatchesBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"locations = [\"Kitchen\", \"Library\"]\npeople = [\"Green\", \"White\"]\nweapons = [\"Knife\", \"Rope\"]\n",
	), 0o644))

	s := newTestSession(t)
	var out bytes.Buffer
	opts := playLinesOpts("l1c\n", &out)
	opts.BoardPath = path

	require.NoError(t, Play(t.Context(), s, opts))
	assert.Len(t, s.History(), 1)
}

func TestPlay_MissingBoardFileFailsToWatch(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer
	opts := playLinesOpts("", &out)
	opts.BoardPath = filepath.Join(t.TempDir(), "missing", "elements.toml")

	err := Play(t.Context(), s, opts)

	assert.Error(t, err)
}
