package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
	"github.com/roach88/cluesolver/internal/propagate"
	"github.com/roach88/cluesolver/internal/store"
)

// Recorder persists sessions and their commands. *store.Store implements it.
type Recorder interface {
	WriteSession(ctx context.Context, rec store.SessionRecord) error
	WriteEvent(ctx context.Context, ev store.Event) error
}

// Entry is one executed command in the history.
type Entry struct {
	Seq     int64
	Command string
	Err     error
}

// OK reports whether the command succeeded.
func (e Entry) OK() bool {
	return e.Err == nil
}

// Message is what the console shows next to the command: "ok" or the error.
func (e Entry) Message() string {
	if e.Err == nil {
		return "ok"
	}
	return e.Err.Error()
}

// Session is one game being solved.
//
// Thread-safety: all methods are safe for concurrent use. Commands are
// serialised; a board reload from the file watcher may arrive between them.
type Session struct {
	mu sync.Mutex

	id       string
	def      board.Definition
	registry *board.Registry
	clues    []clue.Constraint
	history  []Entry
	result   propagate.Result

	clock    Clock
	idGen    IDGenerator
	recorder Recorder
	logger   *slog.Logger
	workers  int
}

// Option configures a Session.
type Option func(*Session)

// WithID fixes the session ID instead of generating one.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithIDGenerator sets the generator for new session IDs.
// Default: UUIDv7Generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Session) {
		s.idGen = gen
	}
}

// WithClock sets the clock used to stamp commands.
// Default: a LogicalClock starting at 0.
func WithClock(c Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithRecorder persists the session header and every executed command.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithWorkers sets how many goroutines evaluate clues during a refresh.
// 1 (the default) refreshes sequentially; 0 or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Session) {
		s.workers = n
	}
}

// build assembles a session without touching the recorder.
func build(def board.Definition, opts ...Option) (*Session, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		def:      def,
		registry: board.NewRegistry(def),
		clock:    NewClock(),
		idGen:    UUIDv7Generator{},
		logger:   slog.Default(),
		workers:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = s.idGen.Generate()
	}

	s.refreshLocked()
	return s, nil
}

// New starts a session on the given board. Every element starts Unknown and
// there are no clues. With a Recorder attached, the session header is
// written before New returns.
func New(ctx context.Context, def board.Definition, opts ...Option) (*Session, error) {
	s, err := build(def, opts...)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		rec := store.SessionRecord{ID: s.id, Board: def, BoardHash: def.Hash()}
		if err := s.recorder.WriteSession(ctx, rec); err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
	}

	s.logger.Info("session started", "session", s.id, "board", def.Hash()[:12])
	return s, nil
}

// Execute runs one command line.
//
// Blank lines and marks without a state letter ("l3") do nothing and are not
// recorded. Anything else is stamped, added to the history and followed by a
// refresh, whether it succeeded or not. The returned error is the command's
// rejection, or a failure to record it.
func (s *Session) Execute(ctx context.Context, line string) error {
	cmd := strings.TrimSpace(line)
	if cmd == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clueID, err := s.dispatch(cmd)
	if errors.Is(err, board.ErrIncomplete) {
		s.logger.Debug("incomplete command ignored", "command", cmd)
		return nil
	}

	seq := s.clock.Next()
	s.history = append(s.history, Entry{Seq: seq, Command: cmd, Err: err})
	s.refreshLocked()

	if err != nil {
		s.logger.Debug("command rejected", "seq", seq, "command", cmd, "code", Code(err), "error", err)
	} else {
		s.logger.Debug("command executed", "seq", seq, "command", cmd,
			"clues", len(s.clues), "suggestions", len(s.result.Cache))
	}

	if s.recorder != nil {
		ev := store.Event{SessionID: s.id, Seq: seq, Command: cmd, ClueID: clueID}
		if err != nil {
			ev.ErrorCode = Code(err)
			ev.Message = err.Error()
		}
		if werr := s.recorder.WriteEvent(ctx, ev); werr != nil {
			return fmt.Errorf("record %q: %w", cmd, werr)
		}
	}

	return err
}

// Reload swaps in new element names, e.g. after the board file was edited.
// The new definition must have the same shape; a board with a different
// number of elements would change what stored commands mean.
func (s *Session) Reload(def board.Definition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("reload board: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.def.SameShape(def) {
		return errors.New("reload board: element counts changed; restart the session to use the new board")
	}
	s.registry.Reload(def)
	s.def = def
	s.refreshLocked()

	s.logger.Info("board reloaded", "session", s.id)
	return nil
}

// refreshLocked recomputes the propagation cache. Must be called with s.mu held.
func (s *Session) refreshLocked() {
	snap := s.registry.Snapshot()
	if s.workers == 1 {
		s.result = propagate.Refresh(s.clues, snap)
		return
	}
	s.result = propagate.RefreshConcurrent(s.clues, snap, s.workers)
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Registry returns the session's element registry.
// Callers should treat it as read-only and change state through Execute.
func (s *Session) Registry() *board.Registry {
	return s.registry
}

// Definition returns the current board definition.
func (s *Session) Definition() board.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.def
}

// Clues returns the clues in the order they were added.
func (s *Session) Clues() []clue.Constraint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]clue.Constraint(nil), s.clues...)
}

// History returns every executed command, oldest first.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.history...)
}

// Result returns the propagation result computed after the last command.
func (s *Session) Result() propagate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Seq returns the seq of the last executed command.
func (s *Session) Seq() int64 {
	return s.clock.Current()
}
