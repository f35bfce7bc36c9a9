package session

import (
	"context"
	"fmt"

	"github.com/roach88/cluesolver/internal/store"
)

// Replay rebuilds a session from its stored header and event log.
//
// Every event is re-executed in seq order, failures included, and must
// reproduce both its seq and its recorded outcome code; the first mismatch
// stops the replay with a *ReplayError. Replay never writes to the recorder
// for the events it re-executes. A Recorder passed in opts is attached once
// the replay completes, so the rebuilt session can continue the same log.
func Replay(ctx context.Context, rec store.SessionRecord, events []store.Event, opts ...Option) (*Session, error) {
	if rec.BoardHash != "" && rec.BoardHash != rec.Board.Hash() {
		return nil, fmt.Errorf("replay %s: board hash mismatch", rec.ID)
	}

	s, err := build(rec.Board, append(opts, WithID(rec.ID))...)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", rec.ID, err)
	}

	recorder := s.recorder
	s.recorder = nil

	for _, ev := range events {
		before := s.clock.Current()
		err := s.Execute(ctx, ev.Command)

		if got := s.clock.Current(); got == before || got != ev.Seq {
			return nil, &ReplayError{
				Seq:     ev.Seq,
				Command: ev.Command,
				Message: fmt.Sprintf("re-executed at seq %d", got),
			}
		}
		if code := Code(err); code != ev.ErrorCode {
			return nil, &ReplayError{
				Seq:      ev.Seq,
				Command:  ev.Command,
				WantCode: ev.ErrorCode,
				GotCode:  code,
			}
		}
	}

	s.recorder = recorder
	s.logger.Info("session replayed", "session", s.id, "events", len(events), "seq", s.clock.Current())
	return s, nil
}

// Load reads a session's header and log from st and replays it.
func Load(ctx context.Context, st *store.Store, id string, opts ...Option) (*Session, error) {
	rec, err := st.ReadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := st.ReadEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return Replay(ctx, rec, events, opts...)
}
