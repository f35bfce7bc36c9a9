package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cluesolver/internal/session"
	"github.com/roach88/cluesolver/internal/store"
	"github.com/roach88/cluesolver/internal/ui"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - rebuild this session only
	ClueID   string // optional - list the commands that recorded this clue
}

// SessionInfo is one row of the session listing.
type SessionInfo struct {
	ID        string `json:"id"`
	BoardHash string `json:"board_hash"`
	Events    int    `json:"events"`
	Failed    int    `json:"failed"`
	LastSeq   int64  `json:"last_seq"`
}

// ClueEvent is a stored command that recorded a given clue.
type ClueEvent struct {
	Session string `json:"session"`
	Seq     int64  `json:"seq"`
	Command string `json:"command"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild saved sessions from the database",
		Long: `Rebuild a saved session by re-executing its command log and print
the resulting board. Every command must reproduce its recorded outcome.

Without --session, lists the saved sessions. With --clue, lists the
commands that recorded the clue with that ID.

Exit codes:
  0 - Session rebuilt (or listing printed)
  1 - Replay diverged from the recorded outcomes
  2 - Command error (database not found, unknown session, etc.)

Examples:
  cluesolver replay --db ./games.db
  cluesolver replay --db ./games.db --session 01920000-0000-7000-8000-000000000000
  cluesolver replay --db ./games.db --clue 3f1c... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "rebuild this session")
	cmd.Flags().StringVar(&opts.ClueID, "clue", "", "list commands that recorded this clue ID")
	cmd.MarkFlagsMutuallyExclusive("session", "clue")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

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

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	switch {
	case opts.Session != "":
		s, err := session.Load(ctx, st, opts.Session, session.WithLogger(logger))
		if err != nil {
			return replayFailure(formatter, opts.Session, err)
		}
		view := viewOf(s)
		return formatter.Report(view, nil, func(w io.Writer) error {
			_, err := io.WriteString(w, ui.Render(ui.FrameOf(s), ui.PlainStyles()))
			return err
		})

	case opts.ClueID != "":
		return listClueEvents(ctx, st, opts.ClueID, formatter)

	default:
		return listSessions(ctx, st, formatter)
	}
}

func listSessions(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	summaries, err := st.ListSessions(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list sessions", err)
	}

	infos := make([]SessionInfo, 0, len(summaries))
	for _, s := range summaries {
		infos = append(infos, SessionInfo(s))
	}

	return formatter.Report(infos, nil, func(w io.Writer) error {
		if len(infos) == 0 {
			fmt.Fprintln(w, "No sessions found in database.")
			return nil
		}
		fmt.Fprintf(w, "Sessions: %d\n\n", len(infos))
		for _, s := range infos {
			fmt.Fprintf(w, "%s  %d command(s), %d rejected, last seq %d\n", s.ID, s.Events, s.Failed, s.LastSeq)
		}
		return nil
	})
}

func listClueEvents(ctx context.Context, st *store.Store, clueID string, formatter *OutputFormatter) error {
	events, err := st.FindClue(ctx, clueID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to search clues", err)
	}

	found := make([]ClueEvent, 0, len(events))
	for _, ev := range events {
		found = append(found, ClueEvent{Session: ev.SessionID, Seq: ev.Seq, Command: ev.Command})
	}

	return formatter.Report(found, nil, func(w io.Writer) error {
		if len(found) == 0 {
			fmt.Fprintf(w, "Clue %s was never recorded.\n", clueID)
			return nil
		}
		for _, ev := range found {
			fmt.Fprintf(w, "%s  seq %d  %s\n", ev.Session, ev.Seq, ev.Command)
		}
		return nil
	})
}
