package cli

import (
	"fmt"
	"io"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/session"
)

// ElementView is one board element as printed by check and replay.
type ElementView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	State      string `json:"state"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ClueView is one stored clue and what it currently yields.
type ClueView struct {
	Clue       string `json:"clue"`
	ID         string `json:"id"`
	Unresolved bool   `json:"unresolved"`

	// Element and Suggestion are set when the clue forces a verdict.
	Element    string `json:"element,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SessionView is the printable state of a session.
type SessionView struct {
	Session  string        `json:"session"`
	Seq      int64         `json:"seq"`
	Elements []ElementView `json:"elements"`
	Clues    []ClueView    `json:"clues"`
}

func viewOf(s *session.Session) SessionView {
	res := s.Result()
	reg := s.Registry()

	v := SessionView{Session: s.ID(), Seq: s.Seq(), Elements: []ElementView{}, Clues: []ClueView{}}
	for _, c := range board.Categories {
		for i, e := range reg.Elements(c) {
			id := board.ID(c, i)
			ev := ElementView{ID: id.String(), Name: e.Name, State: e.State.String()}
			if sug, ok := res.Suggestion(id); ok {
				ev.Suggestion = sug.String()
			}
			v.Elements = append(v.Elements, ev)
		}
	}

	snap := reg.Snapshot()
	for _, c := range s.Clues() {
		cv := ClueView{Clue: c.String(), ID: c.ID(), Unresolved: res.IsUnresolved(c)}
		if id, sug, err := c.Solve(snap); err == nil {
			cv.Element = id.String()
			cv.Suggestion = sug.String()
		}
		v.Clues = append(v.Clues, cv)
	}
	return v
}

// writeClues prints one line per clue, e.g. "1. w1 | l1 -> l1 (Kitchen) confirmed".
func writeClues(w io.Writer, v SessionView) {
	names := make(map[string]string, len(v.Elements))
	for _, e := range v.Elements {
		names[e.ID] = e.Name
	}
	for i, c := range v.Clues {
		if c.Unresolved {
			fmt.Fprintf(w, "%d. %s -> nothing new\n", i+1, c.Clue)
			continue
		}
		fmt.Fprintf(w, "%d. %s -> %s (%s) %s\n", i+1, c.Clue, c.Element, names[c.Element], c.Suggestion)
	}
}
