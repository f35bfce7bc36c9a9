package session

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
)

// dispatch routes cmd to its handler. It returns the content-addressed ID of
// the clue involved, if any. Must be called with s.mu held.
func (s *Session) dispatch(cmd string) (string, error) {
	if strings.ContainsRune(cmd, '|') {
		return s.addClue(cmd)
	}

	fields := strings.Fields(cmd)
	switch fields[0] {
	case "rm":
		return "", s.remove(cmd, fields[1:])
	case "apply":
		return "", s.apply(cmd, fields[1:])
	default:
		return "", s.mark(cmd)
	}
}

// addClue parses and stores a clue. A clue equal to one already stored is
// accepted without being added twice.
func (s *Session) addClue(cmd string) (string, error) {
	c, err := clue.Parse(cmd)
	if err != nil {
		return "", err
	}

	snap := s.registry.Snapshot()
	for _, id := range c.Leaves() {
		if id.Index >= snap.Len(id.Category) {
			return "", &CommandError{Code: ErrCodeInvalidIndex, Message: "no such element", Input: id.String()}
		}
	}

	if slices.ContainsFunc(s.clues, c.Equal) {
		s.logger.Debug("duplicate clue ignored", "clue", c.String())
		return c.ID(), nil
	}
	s.clues = append(s.clues, c)
	return c.ID(), nil
}

func (s *Session) mark(cmd string) error {
	m, err := board.ParseMark(cmd, s.registry.Snapshot())
	if err != nil {
		return err
	}
	return s.registry.Set(m.ID, m.State)
}

// remove deletes the n-th clue counting from the newest, matching the order
// clues are displayed in.
func (s *Session) remove(cmd string, args []string) error {
	if len(args) != 1 {
		return &CommandError{Code: ErrCodeInvalidCommand, Message: "usage: rm <n>", Input: cmd}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return &CommandError{Code: ErrCodeInvalidCommand, Message: "usage: rm <n>", Input: cmd}
	}
	if n < 1 || n > len(s.clues) {
		return &CommandError{Code: ErrCodeInvalidIndex, Message: "no such clue", Input: args[0]}
	}

	i := len(s.clues) - n
	s.clues = slices.Delete(s.clues, i, i+1)
	return nil
}

// apply copies a forced suggestion from the last refresh into the registry.
// SolvedAny is never applied: it says nothing about the element.
func (s *Session) apply(cmd string, args []string) error {
	if len(args) != 1 {
		return &CommandError{Code: ErrCodeInvalidCommand, Message: "usage: apply <element>|all", Input: cmd}
	}
	if args[0] == "all" {
		return s.applyAll()
	}

	id, rest, err := board.ParseIdentifier(args[0], s.registry.Snapshot())
	if err != nil {
		return err
	}
	if rest != "" {
		return &CommandError{Code: ErrCodeInvalidCommand, Message: "usage: apply <element>|all", Input: cmd}
	}

	suggestion, ok := s.result.Suggestion(id)
	if !ok {
		return &CommandError{Code: ErrCodeInvalidState, Message: "no suggestion", Input: id.String()}
	}
	state, ok := suggestion.BoardState()
	if !ok {
		return &CommandError{Code: ErrCodeInvalidState, Message: "suggestion does not force a state", Input: id.String()}
	}
	return s.registry.Set(id, state)
}

// applyAll applies every forced suggestion, in category then index order.
func (s *Session) applyAll() error {
	ids := make([]board.Identifier, 0, len(s.result.Cache))
	for id := range s.result.Cache {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b board.Identifier) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Index, b.Index))
	})

	applied := 0
	for _, id := range ids {
		state, ok := s.result.Cache[id].BoardState()
		if !ok {
			continue
		}
		if err := s.registry.Set(id, state); err != nil {
			return err
		}
		applied++
	}
	s.logger.Debug("applied suggestions", "count", applied)
	return nil
}
