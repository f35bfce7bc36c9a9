package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
)

// AssertionContext carries what assertions need beyond the result.
type AssertionContext struct {
	// Snapshot is the final board, used to check that asserted
	// identifiers exist.
	Snapshot board.Snapshot
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s -> %s\n", event.Seq, event.Command, event.Outcome)
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns the failure
// messages, in assertion order. An empty slice means all passed.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	errs := []string{}
	for i, a := range assertions {
		if err := evaluate(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertState:
		return assertState(result, a, actx)
	case AssertSuggestion:
		return assertSuggestion(result, a, actx)
	case AssertClue:
		return assertClue(result, a)
	case AssertClueCount:
		return assertCount(result, a, len(result.Final.Clues), "clues")
	case AssertHistoryCount:
		n := 0
		for _, ev := range result.Trace {
			if ev.Outcome == OutcomeIgnored {
				continue
			}
			if a.Code == "" || ev.Outcome == a.Code {
				n++
			}
		}
		what := "recorded commands"
		if a.Code != "" {
			what = fmt.Sprintf("commands with outcome %s", a.Code)
		}
		return assertCount(result, a, n, what)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// element resolves an asserted identifier to its canonical form, rejecting
// identifiers that are not on the board.
func element(a Assertion, actx *AssertionContext) (string, error) {
	id, rest, err := board.ParseIdentifier(a.Element, actx.Snapshot)
	if err != nil {
		return "", fmt.Errorf("element %q: %w", a.Element, err)
	}
	if rest != "" {
		return "", fmt.Errorf("element %q: unexpected %q after identifier", a.Element, rest)
	}
	return id.String(), nil
}

func assertState(result *Result, a Assertion, actx *AssertionContext) error {
	key, err := element(a, actx)
	if err != nil {
		return err
	}
	got, ok := result.Final.Board[key]
	if !ok {
		got = board.Unknown.String()
	}
	if got != a.Expect {
		return &AssertionError{
			Type:     AssertState,
			Expected: fmt.Sprintf("%s is %s", key, a.Expect),
			Actual:   got,
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertSuggestion(result *Result, a Assertion, actx *AssertionContext) error {
	key, err := element(a, actx)
	if err != nil {
		return err
	}
	got, ok := result.Final.Suggestions[key]
	if !ok {
		got = "none"
	}
	if got != a.Expect {
		return &AssertionError{
			Type:     AssertSuggestion,
			Expected: fmt.Sprintf("suggestion for %s is %s", key, a.Expect),
			Actual:   got,
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertClue(result *Result, a Assertion) error {
	c, err := clue.Parse(a.Clue)
	if err != nil {
		return fmt.Errorf("clue %q: %w", a.Clue, err)
	}
	want := c.String()

	got := "absent"
	for _, cs := range result.Final.Clues {
		if cs.Clue == want {
			got = "resolved"
			if cs.Unresolved {
				got = "unresolved"
			}
			break
		}
	}
	if got != a.Expect {
		return &AssertionError{
			Type:     AssertClue,
			Expected: fmt.Sprintf("clue %s is %s", want, a.Expect),
			Actual:   got,
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertCount(result *Result, a Assertion, got int, what string) error {
	if got != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d %s", a.Count, what),
			Actual:   fmt.Sprintf("%d %s", got, what),
			Trace:    result.Trace,
		}
	}
	return nil
}
