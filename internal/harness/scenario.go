package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
)

// Scenario is a scripted game: a board, the commands typed into a session
// and what must hold afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Board is an inline board definition. Exactly one of Board and
	// BoardFile must be set.
	Board *board.Definition `yaml:"board,omitempty"`

	// BoardFile is a board file path, relative to the scenario file.
	BoardFile string `yaml:"board_file,omitempty"`

	// SessionID fixes the session ID. Defaults to "test-session-default".
	SessionID string `yaml:"session_id,omitempty"`

	// Workers is passed to session.WithWorkers. Zero means sequential.
	Workers int `yaml:"workers,omitempty"`

	// Steps are executed in order, one command each.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against the final session state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one command line.
type Step struct {
	Command string `yaml:"command"`

	// Expect is the outcome the command must have: "ok", "ignored" or an
	// error code such as "E201". Empty means any outcome is accepted.
	Expect string `yaml:"expect,omitempty"`
}

// Assertion checks one aspect of the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Element is an identifier such as "l3" (state, suggestion).
	Element string `yaml:"element,omitempty"`

	// Clue is a clue such as "w1 | l3" (clue).
	Clue string `yaml:"clue,omitempty"`

	// Expect is the expected value:
	//   state:      unknown | confirmed | dismissed
	//   suggestion: confirmed | dismissed | any | none
	//   clue:       unresolved | resolved | absent
	Expect string `yaml:"expect,omitempty"`

	// Code restricts history_count to commands with this outcome.
	Code string `yaml:"code,omitempty"`

	// Count is the expected number for clue_count and history_count.
	Count int `yaml:"count,omitempty"`
}

// Assertion types.
const (
	AssertState        = "state"
	AssertSuggestion   = "suggestion"
	AssertClue         = "clue"
	AssertClueCount    = "clue_count"
	AssertHistoryCount = "history_count"
)

// Step outcomes besides error codes.
const (
	OutcomeOK      = "ok"
	OutcomeIgnored = "ignored"
)

// LoadScenario reads and parses a scenario YAML file. BoardFile is resolved
// relative to the scenario's directory. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.BoardFile != "" && !filepath.IsAbs(scenario.BoardFile) {
		scenario.BoardFile = filepath.Join(filepath.Dir(path), scenario.BoardFile)
	}
	if scenario.BoardFile != "" {
		if _, err := os.Stat(scenario.BoardFile); err != nil {
			return nil, fmt.Errorf("invalid scenario: board file: %w", err)
		}
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML. BoardFile is left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "assertion:" for "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// Definition returns the scenario's board, loading BoardFile if needed.
func (s *Scenario) Definition() (board.Definition, error) {
	if s.Board != nil {
		return *s.Board, s.Board.Validate()
	}
	return board.Load(s.BoardFile)
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}

	switch {
	case s.Board == nil && s.BoardFile == "":
		return errors.New("one of board or board_file is required")
	case s.Board != nil && s.BoardFile != "":
		return errors.New("board and board_file are mutually exclusive")
	case s.Board != nil:
		if err := s.Board.Validate(); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	if s.Workers < 0 {
		return errors.New("workers must be non-negative")
	}
	if len(s.Steps) == 0 {
		return errors.New("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return errors.New("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Command == "" {
			return fmt.Errorf("steps[%d]: command is required", i)
		}
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	oneOf := func(field, value string, allowed ...string) error {
		for _, v := range allowed {
			if value == v {
				return nil
			}
		}
		return fmt.Errorf("assertions[%d]: %s must be one of %v for %s, got %q", index, field, allowed, a.Type, value)
	}

	switch a.Type {
	case AssertState:
		if a.Element == "" {
			return fmt.Errorf("assertions[%d]: element is required for state", index)
		}
		return oneOf("expect", a.Expect, "unknown", "confirmed", "dismissed")
	case AssertSuggestion:
		if a.Element == "" {
			return fmt.Errorf("assertions[%d]: element is required for suggestion", index)
		}
		return oneOf("expect", a.Expect, "confirmed", "dismissed", "any", "none")
	case AssertClue:
		if _, err := clue.Parse(a.Clue); err != nil {
			return fmt.Errorf("assertions[%d]: clue: %w", index, err)
		}
		return oneOf("expect", a.Expect, "unresolved", "resolved", "absent")
	case AssertClueCount, AssertHistoryCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
