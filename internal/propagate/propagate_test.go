package propagate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
)

func newRegistry() *board.Registry {
	return board.NewRegistry(board.Definition{
		Locations: []string{"Kitchen", "Library", "Hall"},
		People:    []string{"Green", "White", "Plum"},
		Weapons:   []string{"Knife", "Rope", "Pipe"},
	})
}

func parseAll(t *testing.T, clues ...string) []clue.Constraint {
	t.Helper()
	out := make([]clue.Constraint, len(clues))
	for i, s := range clues {
		c, err := clue.Parse(s)
		require.NoError(t, err, s)
		out[i] = c
	}
	return out
}

func TestRefresh_Empty(t *testing.T) {
	res := Refresh(nil, newRegistry().Snapshot())
	assert.Empty(t, res.Cache)
	assert.Empty(t, res.Unresolved)
}

func TestRefresh_RoutesClues(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.Set(board.ID(board.Weapon, 0), board.Dismissed))   // w1
	require.NoError(t, r.Set(board.ID(board.Person, 1), board.Confirmed))   // p2
	require.NoError(t, r.Set(board.ID(board.Location, 2), board.Dismissed)) // l3

	clues := parseAll(t,
		"w1 | l1", // forced: l1 confirmed
		"p2 | w3", // any: p2 already confirmed
		"w2 | p3", // two unknown
		"w1 | l3", // all fixed
	)
	res := Refresh(clues, r.Snapshot())

	assert.Equal(t, map[board.Identifier]clue.SolvedState{
		board.ID(board.Location, 0): clue.SolvedConfirmed,
		board.ID(board.Weapon, 2):   clue.SolvedAny,
	}, res.Cache)

	assert.Len(t, res.Unresolved, 2)
	assert.True(t, res.IsUnresolved(clues[2]))
	assert.True(t, res.IsUnresolved(clues[3]))
	assert.False(t, res.IsUnresolved(clues[0]))

	s, ok := res.Suggestion(board.ID(board.Location, 0))
	require.True(t, ok)
	assert.Equal(t, clue.SolvedConfirmed, s)
	_, ok = res.Suggestion(board.ID(board.Location, 1))
	assert.False(t, ok)
}

func TestRefresh_LastWriteWins(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.Set(board.ID(board.Weapon, 0), board.Dismissed))
	require.NoError(t, r.Set(board.ID(board.Weapon, 1), board.Confirmed))

	target := board.ID(board.Location, 0)

	res := Refresh(parseAll(t, "w1 | l1", "w2 | l1"), r.Snapshot())
	assert.Equal(t, clue.SolvedAny, res.Cache[target])

	res = Refresh(parseAll(t, "w2 | l1", "w1 | l1"), r.Snapshot())
	assert.Equal(t, clue.SolvedConfirmed, res.Cache[target])
}

func TestRefresh_DuplicateCluesShareUnresolvedEntry(t *testing.T) {
	res := Refresh(parseAll(t, "w1 | l1", " w1|l1 "), newRegistry().Snapshot())
	assert.Len(t, res.Unresolved, 1)
}

func TestRefresh_DoesNotMutateRegistry(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.Set(board.ID(board.Weapon, 0), board.Dismissed))
	before := r.Snapshot()

	_ = Refresh(parseAll(t, "w1 | l1"), r.Snapshot())

	assert.True(t, before.Equal(r.Snapshot()))
}

func TestRefresh_Idempotent(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.Set(board.ID(board.Weapon, 0), board.Dismissed))
	require.NoError(t, r.Set(board.ID(board.Person, 0), board.Confirmed))
	clues := parseAll(t, "w1 | l1", "p1 | l2", "w2 | w3", "w1 | p1 | l3")

	first := Refresh(clues, r.Snapshot())
	second := Refresh(clues, r.Snapshot())

	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Cache, second.Cache)
}

func TestRefreshConcurrent_MatchesSequential(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.Set(board.ID(board.Weapon, 0), board.Dismissed))
	require.NoError(t, r.Set(board.ID(board.Location, 1), board.Confirmed))

	var texts []string
	cats := "wlp"
	for i := 0; i < 60; i++ {
		a := fmt.Sprintf("%c%d", cats[i%3], 1+i%3)
		b := fmt.Sprintf("%c%d", cats[(i+1)%3], 1+(i/3)%3)
		texts = append(texts, a+" | "+b)
	}
	clues := parseAll(t, texts...)
	snap := r.Snapshot()

	want := Refresh(clues, snap)
	for _, workers := range []int{0, 1, 4, 16} {
		got := RefreshConcurrent(clues, snap, workers)
		assert.True(t, want.Equal(got), "workers=%d", workers)
		assert.Equal(t, want.Cache, got.Cache, "workers=%d", workers)
	}
}

func TestResult_Equal(t *testing.T) {
	a := Result{Cache: map[board.Identifier]clue.SolvedState{board.ID(board.Weapon, 0): clue.SolvedAny}}
	b := Result{Cache: map[board.Identifier]clue.SolvedState{board.ID(board.Weapon, 0): clue.SolvedConfirmed}}
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
}
