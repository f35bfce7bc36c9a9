package board

// Snapshot is a read-only view of every element's state at one point in time.
//
// The zero value is an empty board on which every identifier is Unknown.
// A Snapshot shares no memory with the Registry it was taken from, and none
// of its methods modify it; With returns a new Snapshot instead.
type Snapshot struct {
	states [categoryCount][]State
}

// NewSnapshot builds a snapshot from explicit per-category state lists.
// The slices are copied.
func NewSnapshot(weapons, locations, people []State) Snapshot {
	var s Snapshot
	s.states[Weapon] = append([]State(nil), weapons...)
	s.states[Location] = append([]State(nil), locations...)
	s.states[Person] = append([]State(nil), people...)
	return s
}

// State returns the state of id. Out-of-range identifiers are Unknown.
func (s Snapshot) State(id Identifier) State {
	if !id.Category.Valid() {
		return Unknown
	}
	list := s.states[id.Category]
	if id.Index < 0 || id.Index >= len(list) {
		return Unknown
	}
	return list[id.Index]
}

// Len returns the number of elements in category c.
func (s Snapshot) Len(c Category) int {
	if !c.Valid() {
		return 0
	}
	return len(s.states[c])
}

// With returns a copy of s in which id has the given state.
// If id is out of range the copy is identical to s.
func (s Snapshot) With(id Identifier, state State) Snapshot {
	if !id.Category.Valid() || id.Index < 0 || id.Index >= len(s.states[id.Category]) {
		return s
	}
	out := s
	list := make([]State, len(s.states[id.Category]))
	copy(list, s.states[id.Category])
	list[id.Index] = state
	out.states[id.Category] = list
	return out
}

// Equal reports whether two snapshots hold the same states.
func (s Snapshot) Equal(other Snapshot) bool {
	for c := range s.states {
		if len(s.states[c]) != len(other.states[c]) {
			return false
		}
		for i := range s.states[c] {
			if s.states[c][i] != other.states[c][i] {
				return false
			}
		}
	}
	return true
}
