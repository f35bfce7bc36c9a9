package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallBoardTOML = `locations = ["Kitchen", "Library"]
people = ["Green", "White"]
weapons = ["Knife", "Rope"]
`

// writeBoard writes the small test board and returns its path.
func writeBoard(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elements.toml")
	writeFile(t, path, smallBoardTOML)
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)
	cmd.SetContext(t.Context())

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "cluesolver", cmd.Use)
	assert.Contains(t, cmd.Long, "disjunctive clues")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"play", "check", "parse", "replay", "scenario"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	logFlag := cmd.PersistentFlags().Lookup("log-file")
	require.NotNil(t, logFlag)
	assert.Equal(t, "", logFlag.DefValue)
}

func TestPlayCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	playCmd, _, err := cmd.Find([]string{"play"})
	require.NoError(t, err)

	boardFlag := playCmd.Flags().Lookup("board")
	require.NotNil(t, boardFlag)
	assert.Equal(t, DefaultBoardPath, boardFlag.DefValue)

	workersFlag := playCmd.Flags().Lookup("workers")
	require.NotNil(t, workersFlag)
	assert.Equal(t, "1", workersFlag.DefValue)

	watchFlag := playCmd.Flags().Lookup("watch")
	require.NotNil(t, watchFlag)
	assert.Equal(t, "true", watchFlag.DefValue)

	for _, name := range []string{"db", "session", "no-color"} {
		assert.NotNil(t, playCmd.Flags().Lookup(name), name)
	}
}

func TestReplayCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	replayCmd, _, err := cmd.Find([]string{"replay"})
	require.NoError(t, err)

	assert.NotNil(t, replayCmd.Flags().Lookup("db"))
	assert.NotNil(t, replayCmd.Flags().Lookup("session"))
	assert.NotNil(t, replayCmd.Flags().Lookup("clue"))
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := execute(t, "", "--format", "invalid", "parse", "w1 | l1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
