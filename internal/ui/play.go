package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/session"
)

// PlayOptions configures Play.
type PlayOptions struct {
	In  io.Reader
	Out io.Writer

	// Interactive selects the full-screen program. Use IsTerminal to decide.
	Interactive bool

	// BoardPath, when set, is watched and reloaded into the session on change.
	BoardPath string

	Styles Styles
	Logger *slog.Logger
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Play runs s until the player quits, the input ends or ctx is cancelled.
func Play(ctx context.Context, s *session.Session, opts PlayOptions) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Interactive {
		return playTUI(ctx, s, opts)
	}
	return playLines(ctx, s, opts)
}

func playTUI(ctx context.Context, s *session.Session, opts PlayOptions) error {
	m := NewModel(ctx, s, opts.Styles, opts.Logger)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(opts.In),
		tea.WithOutput(opts.Out),
	)

	if opts.BoardPath != "" {
		stop, err := watch(ctx, opts.BoardPath, func(def board.Definition, err error) {
			p.Send(ReloadMsg{Definition: def, Err: err})
		})
		if err != nil {
			return err
		}
		defer stop()
	}

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// playLines reads one command per line and redraws after each.
func playLines(ctx context.Context, s *session.Session, opts PlayOptions) error {
	if opts.BoardPath != "" {
		stop, err := watch(ctx, opts.BoardPath, func(def board.Definition, err error) {
			reload(s, def, err, opts.Logger)
		})
		if err != nil {
			return err
		}
		defer stop()
	}

	if _, err := io.WriteString(opts.Out, Render(FrameOf(s), opts.Styles)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(opts.In)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		if isQuit(line) {
			return nil
		}
		execute(ctx, s, line, opts.Logger)
		if _, err := io.WriteString(opts.Out, Render(FrameOf(s), opts.Styles)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

func watch(ctx context.Context, path string, handler board.ReloadHandler) (func(), error) {
	w, err := board.NewWatcher(path, handler, board.DefaultDebounce)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	return w.Stop, nil
}
