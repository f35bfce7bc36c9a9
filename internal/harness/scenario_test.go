package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inlineBoard = `
board:
  locations: [Kitchen, Library]
  people: [Green, White]
  weapons: [Knife, Rope]
`

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// Loading
// =============================================================================

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/knife_dismissed.yaml")
	require.NoError(t, err)

	assert.Equal(t, "knife_dismissed", scenario.Name)
	assert.Equal(t, filepath.Join("testdata", "boards", "classic.toml"), scenario.BoardFile)
	assert.Nil(t, scenario.Board)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, "w1 | l1", scenario.Steps[0].Command)
	assert.Equal(t, OutcomeOK, scenario.Steps[0].Expect)
	assert.Len(t, scenario.Assertions, 5)
}

func TestLoadScenario_InlineBoard(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/kitchen_confirmed.yaml")
	require.NoError(t, err)

	require.NotNil(t, scenario.Board)
	assert.Equal(t, []string{"Kitchen", "Library"}, scenario.Board.Locations)

	def, err := scenario.Definition()
	require.NoError(t, err)
	assert.Equal(t, *scenario.Board, def)
}

func TestLoadScenario_BoardFileDefinition(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/knife_dismissed.yaml")
	require.NoError(t, err)

	def, err := scenario.Definition()
	require.NoError(t, err)
	assert.Len(t, def.Locations, 9)
	assert.Equal(t, "Knife", def.Weapons[0])
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MissingBoardFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: x
description: "x"
board_file: boards/missing.toml
steps:
  - command: l1c
assertions:
  - type: clue_count
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board file")
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: x
description: "x"
` + inlineBoard + `
steps:
  - command: l1c
assertion:
  - type: clue_count
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

// =============================================================================
// Validation
// =============================================================================

func TestParseScenario_Validation(t *testing.T) {
	steps := "\nsteps:\n  - command: l1c\n"
	asserts := "\nassertions:\n  - type: clue_count\n"

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing name", "description: x" + inlineBoard + steps + asserts, "name is required"},
		{"missing description", "name: x" + inlineBoard + steps + asserts, "description is required"},
		{"no board", "name: x\ndescription: x" + steps + asserts, "one of board or board_file"},
		{"both boards", "name: x\ndescription: x\nboard_file: b.toml" + inlineBoard + steps + asserts, "mutually exclusive"},
		{"empty category", "name: x\ndescription: x\nboard:\n  locations: [Kitchen]\n  people: [Green]\n  weapons: []\n" + steps + asserts, "board:"},
		{"no steps", "name: x\ndescription: x" + inlineBoard + asserts, "steps list is required"},
		{"no assertions", "name: x\ndescription: x" + inlineBoard + steps, "assertions list is required"},
		{"empty command", "name: x\ndescription: x" + inlineBoard + "\nsteps:\n  - expect: ok\n" + asserts, "steps[0]: command is required"},
		{"negative workers", "name: x\ndescription: x\nworkers: -1" + inlineBoard + steps + asserts, "workers must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAssertion(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   string
	}{
		{"missing type", Assertion{}, "type is required"},
		{"unknown type", Assertion{Type: "trace_contains"}, "unknown assertion type"},
		{"state without element", Assertion{Type: AssertState, Expect: "confirmed"}, "element is required"},
		{"state bad expect", Assertion{Type: AssertState, Element: "l1", Expect: "maybe"}, "expect must be one of"},
		{"suggestion without element", Assertion{Type: AssertSuggestion, Expect: "any"}, "element is required"},
		{"suggestion bad expect", Assertion{Type: AssertSuggestion, Element: "l1", Expect: "unknown"}, "expect must be one of"},
		{"clue unparsable", Assertion{Type: AssertClue, Clue: "w1", Expect: "resolved"}, "clue:"},
		{"clue bad expect", Assertion{Type: AssertClue, Clue: "w1 | l1", Expect: "gone"}, "expect must be one of"},
		{"negative count", Assertion{Type: AssertClueCount, Count: -1}, "count must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAssertion(0, &tt.assertion)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAssertion_Valid(t *testing.T) {
	valid := []Assertion{
		{Type: AssertState, Element: "l1", Expect: "unknown"},
		{Type: AssertSuggestion, Element: "w2", Expect: "none"},
		{Type: AssertClue, Clue: "w1|l1", Expect: "absent"},
		{Type: AssertClueCount},
		{Type: AssertHistoryCount, Code: "E201", Count: 3},
	}
	for i := range valid {
		assert.NoError(t, validateAssertion(i, &valid[i]))
	}
}
