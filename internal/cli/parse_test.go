package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cluesolver/internal/clue"
)

func TestParse_Text(t *testing.T) {
	out, _, err := execute(t, "", "parse", "w1|l3 |p5")
	require.NoError(t, err)

	want := "clue:   w1 | l3 | p5\n" +
		"tree:   ((w1|l3)|p5)\n" +
		"leaves: w1 l3 p5\n" +
		"id:     " + clue.MustParse("w1 | l3 | p5").ID() + "\n"
	assert.Equal(t, want, out)
}

func TestParse_JSON(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "parse", "w1 | l1")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ParseResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "w1 | l1", resp.Data.Clue)
	assert.Equal(t, []string{"w1", "l1"}, resp.Data.Leaves)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestParse_Rejected(t *testing.T) {
	out, _, err := execute(t, "", "parse", "w1 |")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E203]")
}

func TestParse_RejectedJSON(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "parse", "x1 | l1")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E201", resp.Error.Code)
}

func TestParse_NeedsOneArg(t *testing.T) {
	_, _, err := execute(t, "", "parse")
	require.Error(t, err)
}
