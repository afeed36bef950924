// Package diff renders before/after code for an issue: a shallow regex
// highlighter and a side-by-side line listing. No line matching is done;
// the two panes are numbered independently.
package diff

import "strings"

// Side tags a pane row for presentation.
type Side int

const (
	SideRemoved Side = iota
	SideAdded
)

func (s Side) String() string {
	if s == SideAdded {
		return "added"
	}
	return "removed"
}

// NBSP stands in for an empty line so the row keeps its height.
const NBSP = "\u00a0"

// DiffLine is one numbered row of a pane.
type DiffLine struct {
	Number int
	Text   string // highlighted markup
	Tokens []Token
	Side   Side
}

// SideBySide holds the two panes of a rendered diff.
type SideBySide struct {
	Removed []DiffLine
	Added   []DiffLine
}

// Rows returns the taller pane's row count.
func (s SideBySide) Rows() int {
	return max(len(s.Removed), len(s.Added))
}

// SplitLines splits code on line boundaries. CRLF is treated as LF. The
// result always has at least one element.
func SplitLines(code string) []string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	return strings.Split(code, "\n")
}

// CountLines returns how many rows SplitLines produces.
func CountLines(code string) int {
	return len(SplitLines(code))
}

// RenderDiff renders before as the removed pane and after as the added pane.
func RenderDiff(before, after string) SideBySide {
	return SideBySide{
		Removed: renderPane(before, SideRemoved),
		Added:   renderPane(after, SideAdded),
	}
}

func renderPane(code string, side Side) []DiffLine {
	lines := SplitLines(code)
	out := make([]DiffLine, len(lines))
	for i, line := range lines {
		tokens := Tokenize(line)
		text := Markup(tokens)
		if text == "" {
			text = NBSP
			tokens = []Token{{Text: NBSP}}
		}
		out[i] = DiffLine{
			Number: i + 1,
			Text:   text,
			Tokens: tokens,
			Side:   side,
		}
	}
	return out
}
