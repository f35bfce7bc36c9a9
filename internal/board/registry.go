package board

import (
	"fmt"
	"sync"
	"unicode/utf8"
)

// Registry is the authoritative, mutable element store.
//
// Thread-safety: all methods are safe for concurrent use. Readers that need a
// consistent view across several lookups should take a Snapshot instead of
// calling State repeatedly.
type Registry struct {
	mu       sync.RWMutex
	elements [categoryCount][]Element
}

// NewRegistry creates a registry from a board definition.
// Every element starts Unknown.
func NewRegistry(def Definition) *Registry {
	r := &Registry{}
	r.elements[Weapon] = newElements(def.Weapons)
	r.elements[Location] = newElements(def.Locations)
	r.elements[Person] = newElements(def.People)
	return r
}

func newElements(names []string) []Element {
	out := make([]Element, len(names))
	for i, name := range names {
		out[i] = Element{Name: name, State: Unknown}
	}
	return out
}

// Snapshot copies the current states under the read lock.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Snapshot
	for c := range r.elements {
		states := make([]State, len(r.elements[c]))
		for i, e := range r.elements[c] {
			states[i] = e.State
		}
		s.states[c] = states
	}
	return s
}

// State returns the recorded state of id, or Unknown if id is out of range.
func (r *Registry) State(id Identifier) State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.inRange(id) {
		return Unknown
	}
	return r.elements[id.Category][id.Index].State
}

// Set records a new state for id.
// Returns an error if id does not name an element on this board.
func (r *Registry) Set(id Identifier, state State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(id) {
		return fmt.Errorf("set %s: no such element", id)
	}
	r.elements[id.Category][id.Index].State = state
	return nil
}

// Len returns the number of elements in category c.
func (r *Registry) Len(c Category) int {
	if !c.Valid() {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.elements[c])
}

// Name returns the display name of id, or "" if id is out of range.
func (r *Registry) Name(id Identifier) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.inRange(id) {
		return ""
	}
	return r.elements[id.Category][id.Index].Name
}

// Elements returns a copy of the elements of category c in board order.
func (r *Registry) Elements(c Category) []Element {
	if !c.Valid() {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Element(nil), r.elements[c]...)
}

// MaxNameLength returns the length in runes of the longest element name.
func (r *Registry) MaxNameLength() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	longest := 0
	for c := range r.elements {
		for _, e := range r.elements[c] {
			if n := utf8.RuneCountInString(e.Name); n > longest {
				longest = n
			}
		}
	}
	return longest
}

// Reload replaces element names with those in def.
//
// States are kept by position: element i of a category keeps its state if the
// new definition still has an element i. Elements beyond the old length start
// Unknown; elements beyond the new length are dropped.
func (r *Registry) Reload(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := [categoryCount][]string{
		Weapon:   def.Weapons,
		Location: def.Locations,
		Person:   def.People,
	}
	for c := range r.elements {
		old := r.elements[c]
		elems := newElements(next[c])
		for i := range elems {
			if i < len(old) {
				elems[i].State = old[i].State
			}
		}
		r.elements[c] = elems
	}
}

// inRange must be called with r.mu held.
func (r *Registry) inRange(id Identifier) bool {
	if !id.Category.Valid() {
		return false
	}
	return id.Index >= 0 && id.Index < len(r.elements[id.Category])
}
