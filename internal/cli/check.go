package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/session"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Board string
	Marks []string
	Clues []string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate clues against a board once",
		Long: `Apply the given marks to a fresh board, record the given clues and
print what each clue yields.

Exit codes:
  0 - All marks and clues were accepted
  1 - A mark or clue was rejected
  2 - Command error (board not found, etc.)

Examples:
  cluesolver check --clue "w1 | l1" --mark w1x
  cluesolver check --board ./classic.toml --clue "w1 | l1" --clue "p2 | w3" --mark l1c --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Board, "board", DefaultBoardPath, "board file (.toml, .yaml or .cue)")
	cmd.Flags().StringArrayVar(&opts.Marks, "mark", nil, "mark to apply first, e.g. w1x (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Clues, "clue", nil, `clue to record, e.g. "w1 | l1" (repeatable)`)
	_ = cmd.MarkFlagRequired("clue")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	logger, closeLog, err := newLogger(opts.RootOptions, cmd.ErrOrStderr(), !opts.Verbose)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to set up logging", err)
	}
	defer closeLog()

	def, err := board.Load(opts.Board)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBoardLoad, "failed to load board", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := session.New(ctx, def, session.WithLogger(logger))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to start session", err)
	}

	for _, line := range append(append([]string{}, opts.Marks...), opts.Clues...) {
		formatter.VerboseLog("> %s", line)
		if err := s.Execute(ctx, line); err != nil {
			_ = formatter.Error(session.Code(err), err.Error(), line)
			return WrapExitError(ExitFailure, fmt.Sprintf("command %q rejected", line), err)
		}
	}

	view := viewOf(s)
	return formatter.Report(view, nil, func(w io.Writer) error {
		writeClues(w, view)
		return nil
	})
}
