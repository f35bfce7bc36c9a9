package board

import (
	"fmt"
	"strconv"
)

// Category is one of the three fixed element groups.
type Category int

const (
	Weapon Category = iota
	Location
	Person
)

// categoryCount is the number of categories; Category values index arrays of this size.
const categoryCount = 3

// Categories lists the categories in display order.
var Categories = []Category{Location, Person, Weapon}

// Letter returns the lowercase letter used for the category in clue and mark text.
func (c Category) Letter() rune {
	switch c {
	case Weapon:
		return 'w'
	case Location:
		return 'l'
	case Person:
		return 'p'
	default:
		return '?'
	}
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Weapon:
		return "weapon"
	case Location:
		return "location"
	case Person:
		return "person"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	return c >= Weapon && c <= Person
}

// ParseCategory maps a category letter to its Category.
// Letters are case-sensitive: only 'w', 'l' and 'p' are recognised.
func ParseCategory(r rune) (Category, bool) {
	switch r {
	case 'w':
		return Weapon, true
	case 'l':
		return Location, true
	case 'p':
		return Person, true
	default:
		return 0, false
	}
}

// ParseIndex reads the leading ASCII digit run of s as a 1-based index and
// returns the 0-based index along with the number of bytes consumed.
//
// An index of 0 clamps to 0 rather than failing ("w0" and "w1" name the same
// element). ok is false when s has no leading digit or the run overflows int.
func ParseIndex(s string) (index int, n int, ok bool) {
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, 0, false
	}
	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, n, false
	}
	if v > 0 {
		v--
	}
	return v, n, true
}

// Identifier names one element: a category and a 0-based index into it.
// Identifiers are comparable and are used directly as map keys.
type Identifier struct {
	Category Category
	Index    int
}

// ID is shorthand for constructing an Identifier.
func ID(c Category, index int) Identifier {
	return Identifier{Category: c, Index: index}
}

// String renders the identifier as the player types it: the category letter
// followed by the 1-based index, e.g. {Location, 2} renders as "l3".
func (id Identifier) String() string {
	return fmt.Sprintf("%c%d", id.Category.Letter(), id.Index+1)
}

// State is the knowledge value recorded for an element.
type State int

const (
	Unknown State = iota
	Confirmed
	Dismissed
)

// Char returns the single character shown in the element column.
func (s State) Char() rune {
	switch s {
	case Confirmed:
		return 'C'
	case Dismissed:
		return 'X'
	default:
		return '?'
	}
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Confirmed:
		return "confirmed"
	case Dismissed:
		return "dismissed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Fixed reports whether the state is terminal (Confirmed or Dismissed).
func (s State) Fixed() bool {
	return s == Confirmed || s == Dismissed
}

// Element is one named entity on the board.
type Element struct {
	Name  string `json:"name"`
	State State  `json:"state"`
}
