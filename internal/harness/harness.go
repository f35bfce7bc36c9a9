package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/session"
	"github.com/roach88/cluesolver/internal/store"
	"github.com/roach88/cluesolver/internal/testutil"
)

// Harness runs one scenario against a live session.
type Harness struct {
	store   *store.Store
	session *session.Session
	clock   *testutil.DeterministicClock
	logger  *slog.Logger
	workers int
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database with a deterministic
// clock and session ID, so traces are identical across runs. After the last
// step the stored log is replayed into a second session, which must reach
// the same final state.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	def, err := scenario.Definition()
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:   st,
		clock:   testutil.NewDeterministicClock(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers: max(scenario.Workers, 1),
	}

	h.session, err = session.New(ctx, def,
		session.WithClock(h.clock),
		session.WithIDGenerator(testutil.NewFixedSessionID(scenario.SessionID)),
		session.WithRecorder(st),
		session.WithLogger(h.logger),
		session.WithWorkers(h.workers),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, err
	}

	result.Final = finalState(h.session)

	actx := &AssertionContext{Snapshot: h.session.Registry().Snapshot()}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	h.verifyReplay(ctx, result)
	return result, nil
}

func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		before := h.clock.Current()
		err := h.session.Execute(ctx, step.Command)

		outcome := OutcomeOK
		if err != nil {
			outcome = session.Code(err)
			if outcome == string(session.ErrCodeInternal) {
				return fmt.Errorf("step %d %q: %w", i, step.Command, err)
			}
		}

		seq := h.clock.Current()
		if seq == before {
			seq, outcome = 0, OutcomeIgnored
		}
		result.AddTrace(seq, step.Command, outcome)

		if step.Expect != "" && step.Expect != outcome {
			result.AddError(fmt.Sprintf("steps[%d] %q: expected %s, got %s", i, step.Command, step.Expect, outcome))
		}

		h.logger.Info("step executed", "step", i, "command", step.Command, "seq", seq, "outcome", outcome)
	}
	return nil
}

// verifyReplay rebuilds the session from the store and compares final states.
func (h *Harness) verifyReplay(ctx context.Context, result *Result) {
	replayed, err := session.Load(ctx, h.store, h.session.ID(),
		session.WithLogger(h.logger),
		session.WithWorkers(h.workers),
	)
	if err != nil {
		result.AddError(fmt.Sprintf("replay: %v", err))
		return
	}
	if !finalState(replayed).Equal(result.Final) {
		result.AddError("replay: rebuilt session differs from the live one")
	}
}

func finalState(s *session.Session) FinalState {
	f := FinalState{
		Board:       map[string]string{},
		Suggestions: map[string]string{},
		Clues:       []ClueState{},
	}

	reg := s.Registry()
	for _, c := range board.Categories {
		for i, e := range reg.Elements(c) {
			if e.State != board.Unknown {
				f.Board[board.ID(c, i).String()] = e.State.String()
			}
		}
	}

	res := s.Result()
	for id, v := range res.Cache {
		f.Suggestions[id.String()] = v.String()
	}

	for _, c := range s.Clues() {
		f.Clues = append(f.Clues, ClueState{Clue: c.String(), Unresolved: res.IsUnresolved(c)})
	}
	return f
}
