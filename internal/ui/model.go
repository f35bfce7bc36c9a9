package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/session"
)

// ReloadMsg carries a board definition re-read from disk by the watcher.
type ReloadMsg struct {
	Definition board.Definition
	Err        error
}

// Model is the bubbletea model for the interactive screen.
//
// Not thread-safe: use it only from the bubbletea event loop.
type Model struct {
	ctx     context.Context
	session *session.Session
	styles  Styles
	input   textinput.Model
	logger  *slog.Logger

	quitting bool
}

// NewModel creates a model driving s.
func NewModel(ctx context.Context, s *session.Session, styles Styles, logger *slog.Logger) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = minBoxWidth - 2
	ti.Focus()

	return Model{
		ctx:     ctx,
		session: s,
		styles:  styles,
		input:   ti,
		logger:  logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if isQuit(line) {
				m.quitting = true
				return m, tea.Quit
			}
			execute(m.ctx, m.session, line, m.logger)
			return m, nil
		}

	case ReloadMsg:
		reload(m.session, msg.Definition, msg.Err, m.logger)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	f := FrameOf(m.session)
	f.Input = m.input.View()
	return Render(f, m.styles)
}

func isQuit(line string) bool {
	line = strings.TrimSpace(line)
	return line == "q" || line == "quit"
}

// execute runs one command. Rejected commands are already visible in the
// console; only a failure to record one is worth a log line.
func execute(ctx context.Context, s *session.Session, line string, logger *slog.Logger) {
	err := s.Execute(ctx, line)
	if err != nil && session.Code(err) == string(session.ErrCodeInternal) {
		logger.Error("command failed", "command", line, "error", err)
	}
}

func reload(s *session.Session, def board.Definition, err error, logger *slog.Logger) {
	if err != nil {
		logger.Warn("board reload failed", "error", err)
		return
	}
	if err := s.Reload(def); err != nil {
		logger.Warn("board reload rejected", "error", err)
	}
}
