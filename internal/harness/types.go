package harness

// TraceEvent is one executed step.
type TraceEvent struct {
	// Seq is the session seq stamped on the command; 0 when ignored.
	Seq     int64  `json:"seq"`
	Command string `json:"command"`

	// Outcome is "ok", "ignored" or the error code.
	Outcome string `json:"outcome"`
}

// ClueState is a stored clue and whether it yielded anything.
type ClueState struct {
	Clue       string `json:"clue"`
	Unresolved bool   `json:"unresolved"`
}

// FinalState is the session state after the last step.
type FinalState struct {
	// Board maps identifiers to their state; Unknown elements are omitted.
	Board map[string]string `json:"board"`

	// Suggestions maps identifiers to the propagation cache verdict.
	Suggestions map[string]string `json:"suggestions"`

	// Clues in the order they were added.
	Clues []ClueState `json:"clues"`
}

// Equal reports whether two final states match.
func (f FinalState) Equal(other FinalState) bool {
	if len(f.Board) != len(other.Board) || len(f.Suggestions) != len(other.Suggestions) || len(f.Clues) != len(other.Clues) {
		return false
	}
	for k, v := range f.Board {
		if other.Board[k] != v {
			return false
		}
	}
	for k, v := range f.Suggestions {
		if other.Suggestions[k] != v {
			return false
		}
	}
	for i := range f.Clues {
		if f.Clues[i] != other.Clues[i] {
			return false
		}
	}
	return true
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held and the
	// stored log replayed to the same final state.
	Pass bool `json:"pass"`

	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	Final FinalState `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final: FinalState{
			Board:       map[string]string{},
			Suggestions: map[string]string{},
			Clues:       []ClueState{},
		},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(seq int64, command, outcome string) {
	r.Trace = append(r.Trace, TraceEvent{Seq: seq, Command: command, Outcome: outcome})
}
