package cli

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/session"
	"github.com/roach88/cluesolver/internal/store"
	"github.com/roach88/cluesolver/internal/ui"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Board    string
	Database string
	Session  string
	Workers  int
	Watch    bool
	NoColor  bool

	// IDGenerator allows overriding session ID generation (for testing).
	// If nil, defaults to UUIDv7.
	IDGenerator session.IDGenerator
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Track a game interactively",
		Long: `Track a game: mark elements, record clues and apply what they force.

Commands:
  w1 | l3 | p5    record a clue (at least one of these is true)
  l3c, w2x, p1?   mark an element confirmed, dismissed or unknown
  apply l3        copy the suggestion for l3 onto the board
  apply all       copy every forced suggestion onto the board
  rm 2            remove the 2nd clue from the top of the list
  q, quit         leave

When stdin is a terminal the board is drawn full-screen; otherwise one
command is read per line and the board is redrawn after each.

With --db every command is saved; --session resumes a saved game.

Examples:
  cluesolver play
  cluesolver play --board ./classic.toml --db ./games.db
  cluesolver play --db ./games.db --session 01920000-0000-7000-8000-000000000000
  printf 'w1 | l1\nw1x\n' | cluesolver play --no-color`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Board, "board", DefaultBoardPath, "board file (.toml, .yaml or .cue)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "save the game to this SQLite database")
	cmd.Flags().StringVar(&opts.Session, "session", "", "resume a saved session (requires --db)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "goroutines evaluating clues (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "reload element names when the board file changes")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colours")

	return cmd
}

func runPlay(opts *PlayOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.ErrOrStderr(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	in := cmd.InOrStdin()
	stdin, isFile := in.(*os.File)
	interactive := isFile && ui.IsTerminal(stdin)

	// Log lines on stderr would tear the full-screen view.
	logger, closeLog, err := newLogger(opts.RootOptions, cmd.ErrOrStderr(), interactive)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to set up logging", err)
	}
	defer closeLog()

	if opts.Session != "" && opts.Database == "" {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "--session requires --db", nil)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessOpts := []session.Option{
		session.WithLogger(logger),
		session.WithWorkers(opts.Workers),
	}
	if opts.IDGenerator != nil {
		sessOpts = append(sessOpts, session.WithIDGenerator(opts.IDGenerator))
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		sessOpts = append(sessOpts, session.WithRecorder(st))
	}

	var s *session.Session
	if opts.Session != "" {
		s, err = session.Load(ctx, st, opts.Session, sessOpts...)
		if err != nil {
			return replayFailure(formatter, opts.Session, err)
		}
	} else {
		def, err := board.Load(opts.Board)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeBoardLoad, "failed to load board", err)
		}
		s, err = session.New(ctx, def, sessOpts...)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to start session", err)
		}
	}

	playOpts := ui.PlayOptions{
		In:          in,
		Out:         cmd.OutOrStdout(),
		Interactive: interactive,
		Styles:      ui.NewStyles(lipgloss.NewRenderer(cmd.OutOrStdout())),
		Logger:      logger,
	}
	if opts.NoColor {
		playOpts.Styles = ui.PlainStyles()
	}
	// A resumed session's board lives in the database; only watch a file
	// the player named explicitly.
	if opts.Watch && (opts.Session == "" || cmd.Flags().Changed("board")) {
		playOpts.BoardPath = opts.Board
	}

	if err := ui.Play(ctx, s, playOpts); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "play failed", err)
	}

	if st != nil {
		logger.Info("session saved", "session", s.ID(), "db", opts.Database, "seq", s.Seq())
		formatter.VerboseLog("session %s saved to %s", s.ID(), opts.Database)
	}
	return nil
}

// replayFailure maps a session.Load error to output and exit code.
func replayFailure(formatter *OutputFormatter, id string, err error) error {
	var re *session.ReplayError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return formatter.Fail(ExitCommandError, ErrCodeSessionNotFound, "session not found: "+id, nil)
	case errors.As(err, &re):
		return formatter.Fail(ExitFailure, ErrCodeReplayDiverged, "replay diverged", err)
	default:
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to load session", err)
	}
}
