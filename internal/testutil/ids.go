package testutil

// FixedSessionID hands out the same session ID every time, so that golden
// output and stored logs do not depend on UUID generation.
//
// Thread-safety: FixedSessionID is stateless and safe for concurrent use.
type FixedSessionID struct {
	id string
}

// NewFixedSessionID creates a generator for id.
// If id is empty, Generate returns "test-session-default".
func NewFixedSessionID(id string) *FixedSessionID {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedSessionID{id: id}
}

// Generate returns the fixed ID. Implements session.IDGenerator.
func (g *FixedSessionID) Generate() string {
	return g.id
}
