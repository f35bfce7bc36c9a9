package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
	"github.com/roach88/cluesolver/internal/session"
	"github.com/roach88/cluesolver/internal/store"
	"github.com/roach88/cluesolver/internal/testutil"
)

// seedDatabase records a short game in a fresh database and returns its path.
func seedDatabase(t *testing.T, id string, lines ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "games.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	def, err := board.Load(writeBoard(t))
	require.NoError(t, err)

	s, err := session.New(t.Context(), def,
		session.WithID(id),
		session.WithRecorder(st),
		session.WithLogger(testutil.DiscardLogger()),
	)
	require.NoError(t, err)

	for _, line := range lines {
		_ = s.Execute(t.Context(), line)
	}
	return dbPath
}

func TestReplayMissingDatabaseFlag(t *testing.T) {
	_, _, err := execute(t, "", "replay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestReplaySessionAndClueExclusive(t *testing.T) {
	dbPath := seedDatabase(t, "game-1")
	_, _, err := execute(t, "", "replay", "--db", dbPath, "--session", "game-1", "--clue", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestReplayEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, _, err := execute(t, "", "replay", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found in database.")
}

func TestReplayListsSessions(t *testing.T) {
	dbPath := seedDatabase(t, "game-1", "w1 | l1", "q1c", "w1x")

	out, _, err := execute(t, "", "replay", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Sessions: 1")
	assert.Contains(t, out, "game-1  3 command(s), 1 rejected, last seq 3")
}

func TestReplayListsSessionsJSON(t *testing.T) {
	dbPath := seedDatabase(t, "game-1", "w1 | l1", "w1x")

	out, _, err := execute(t, "", "--format", "json", "replay", "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   []SessionInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "game-1", resp.Data[0].ID)
	assert.Equal(t, 2, resp.Data[0].Events)
	assert.Equal(t, int64(2), resp.Data[0].LastSeq)
}

func TestReplaySessionRendersBoard(t *testing.T) {
	dbPath := seedDatabase(t, "game-1", "w1 | l1", "w1x")

	out, _, err := execute(t, "", "replay", "--db", dbPath, "--session", "game-1")
	require.NoError(t, err)
	assert.Contains(t, out, "(L)ocations")
	assert.Contains(t, out, "Kitchen")
	assert.Contains(t, out, "w1 | l1")
	assert.NotContains(t, out, "\x1b[")
}

func TestReplaySessionJSON(t *testing.T) {
	dbPath := seedDatabase(t, "game-1", "w1 | l1", "w1x")

	out, _, err := execute(t, "", "--format", "json", "replay", "--db", dbPath, "--session", "game-1")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   SessionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "game-1", resp.Data.Session)
	assert.Equal(t, int64(2), resp.Data.Seq)
	require.Len(t, resp.Data.Clues, 1)
	assert.Equal(t, "l1", resp.Data.Clues[0].Element)
	assert.Equal(t, "confirmed", resp.Data.Clues[0].Suggestion)
}

func TestReplayUnknownSession(t *testing.T) {
	dbPath := seedDatabase(t, "game-1")

	out, _, err := execute(t, "", "replay", "--db", dbPath, "--session", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeSessionNotFound)
}

func TestReplayFindsClue(t *testing.T) {
	dbPath := seedDatabase(t, "game-1", "w1 | l1", "w1x")
	id := clue.MustParse("w1 | l1").ID()

	out, _, err := execute(t, "", "replay", "--db", dbPath, "--clue", id)
	require.NoError(t, err)
	assert.Contains(t, out, "game-1  seq 1  w1 | l1")

	out, _, err = execute(t, "", "replay", "--db", dbPath, "--clue", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "Clue missing was never recorded.")
}
