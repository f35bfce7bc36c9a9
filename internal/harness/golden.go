package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/cluesolver/internal/testutil"
)

// TraceSnapshot is what a golden file holds for one scenario run.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	SessionID    string       `json:"session_id"`
	Trace        []TraceEvent `json:"trace"`
	Final        FinalState   `json:"final"`
}

// Snapshot builds the golden snapshot of a result.
func Snapshot(scenario *Scenario, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: scenario.Name,
		SessionID:    testutil.NewFixedSessionID(scenario.SessionID).Generate(),
		Trace:        result.Trace,
		Final:        result.Final,
	}
}

// MarshalSnapshot renders a snapshot as indented JSON with a trailing
// newline. Map keys are sorted, so the output is stable.
func MarshalSnapshot(s TraceSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(Snapshot(scenario, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
