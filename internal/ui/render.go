package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/cluesolver/internal/board"
	"github.com/roach88/cluesolver/internal/clue"
	"github.com/roach88/cluesolver/internal/propagate"
	"github.com/roach88/cluesolver/internal/session"
)

const (
	// consoleEntries is how many history entries the console shows.
	consoleEntries = 3

	// minBoxWidth is the narrowest content width of the console and clue boxes.
	minBoxWidth = 20

	// minNameWidth keeps the longest section title inside the board column.
	minNameWidth = 10
)

// Section is one category of the board, in display order.
type Section struct {
	Category board.Category
	Elements []board.Element
}

// Title returns the section heading, e.g. "(L)ocations".
func (s Section) Title() string {
	switch s.Category {
	case board.Location:
		return "(L)ocations"
	case board.Person:
		return "(P)eople"
	case board.Weapon:
		return "(W)eapons"
	default:
		return s.Category.String()
	}
}

// Frame is everything one screen shows.
type Frame struct {
	Sections []Section
	Result   propagate.Result

	// History is oldest first, as kept by the session.
	History []session.Entry

	// Clues is in the order they were added; Render lists them newest first.
	Clues []clue.Constraint

	// Input is drawn after the console prompt.
	Input string
}

// FrameOf captures the current state of s.
func FrameOf(s *session.Session) Frame {
	reg := s.Registry()
	f := Frame{
		Result:  s.Result(),
		History: s.History(),
		Clues:   s.Clues(),
	}
	for _, c := range board.Categories {
		f.Sections = append(f.Sections, Section{Category: c, Elements: reg.Elements(c)})
	}
	return f
}

// Render draws f as a block of text ending in a newline.
func Render(f Frame, st Styles) string {
	left := renderBoard(f, st)
	right := append(renderConsole(f, st), "")
	right = append(right, renderClues(f, st)...)

	out := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left, "\n"),
		" ",
		strings.Join(right, "\n"),
	)
	return out + "\n"
}

func renderBoard(f Frame, st Styles) []string {
	width := minNameWidth
	for _, sec := range f.Sections {
		for _, e := range sec.Elements {
			width = max(width, lipgloss.Width(e.Name))
		}
	}

	separator := func(title string) string {
		return "+-+-" + title + strings.Repeat("-", max(width+1-lipgloss.Width(title), 0)) + "+"
	}

	var lines []string
	for _, sec := range f.Sections {
		lines = append(lines, separator(sec.Title()))
		for i, e := range sec.Elements {
			id := board.ID(sec.Category, i)
			state := stateStyle(e.State, st).Render(string(e.State.Char()))
			name := suggestionStyle(f.Result, id, st).Render(e.Name)
			pad := strings.Repeat(" ", width-lipgloss.Width(e.Name))
			lines = append(lines, "|"+state+"| "+name+pad+" |")
		}
	}
	lines = append(lines, separator(""))
	return lines
}

func stateStyle(s board.State, st Styles) lipgloss.Style {
	switch s {
	case board.Confirmed:
		return st.Confirmed
	case board.Dismissed:
		return st.Dismissed
	default:
		return st.Normal
	}
}

func suggestionStyle(res propagate.Result, id board.Identifier, st Styles) lipgloss.Style {
	s, ok := res.Suggestion(id)
	if !ok {
		return st.Normal
	}
	switch s {
	case clue.SolvedConfirmed:
		return st.Confirmed
	case clue.SolvedDismissed:
		return st.Dismissed
	default:
		return st.Normal
	}
}

// boxLine pads text (already styled) to width using its plain width w.
func boxLine(text string, w, width int) string {
	return "| " + text + strings.Repeat(" ", width-w) + " |"
}

func renderConsole(f Frame, st Styles) []string {
	type row struct {
		text  string
		style lipgloss.Style
	}

	var rows []row
	for i := len(f.History) - 1; i >= 0 && len(rows) < consoleEntries; i-- {
		e := f.History[i]
		style := st.OK
		if !e.OK() {
			style = st.Error
		}
		rows = append(rows, row{text: fmt.Sprintf("%s: %s", e.Command, e.Message()), style: style})
	}
	if len(f.History) > consoleEntries {
		rows = append(rows, row{text: "...", style: st.Muted})
	}

	width := max(minBoxWidth, lipgloss.Width(f.Input)+1)
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.text))
	}

	lines := []string{
		"+-" + st.Bold.Render("Console") + strings.Repeat("-", width-6) + "+",
		"| > " + f.Input + strings.Repeat(" ", width-1-lipgloss.Width(f.Input)) + "|",
	}
	for _, r := range rows {
		lines = append(lines, boxLine(r.style.Render(r.text), lipgloss.Width(r.text), width))
	}
	lines = append(lines, "+"+strings.Repeat("-", width+2)+"+")
	return lines
}

func renderClues(f Frame, st Styles) []string {
	clues := slices.Clone(f.Clues)
	slices.Reverse(clues)

	texts := make([]string, len(clues))
	width := minBoxWidth
	for i, c := range clues {
		texts[i] = fmt.Sprintf("%d. %s", i+1, c)
		width = max(width, lipgloss.Width(texts[i]))
	}

	lines := []string{"+-Constraints" + strings.Repeat("-", width-10) + "+"}
	for i, c := range clues {
		text := texts[i]
		if f.Result.IsUnresolved(c) {
			text = st.Muted.Render(text)
		}
		lines = append(lines, boxLine(text, lipgloss.Width(texts[i]), width))
	}
	lines = append(lines, "+"+strings.Repeat("-", width+2)+"+")
	return lines
}
