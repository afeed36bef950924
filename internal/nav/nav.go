// Package nav implements the view navigation state machine.
//
// Exactly one View is visible at a time. Input and Complexity are always
// reachable; every other View stays locked until the session reports a
// completed analysis. A rejected request leaves the current View as is.
package nav

import (
	"errors"
	"fmt"
)

// View is one exclusive full-panel mode of the client.
type View int

const (
	ViewInput View = iota
	ViewReadme
	ViewIssues
	ViewComplexity
)

// Views lists every View in sidebar order.
var Views = []View{ViewInput, ViewReadme, ViewIssues, ViewComplexity}

func (v View) String() string {
	switch v {
	case ViewInput:
		return "input"
	case ViewReadme:
		return "readme"
	case ViewIssues:
		return "issues"
	case ViewComplexity:
		return "complexity"
	default:
		return "unknown"
	}
}

// Label is the sidebar caption for v.
func (v View) Label() string {
	switch v {
	case ViewInput:
		return "Analyze"
	case ViewReadme:
		return "README"
	case ViewIssues:
		return "Issues"
	case ViewComplexity:
		return "Complexity"
	default:
		return "?"
	}
}

func (v View) valid() bool {
	return v >= ViewInput && v <= ViewComplexity
}

// AlwaysOpen reports whether v is reachable without a completed analysis.
func AlwaysOpen(v View) bool {
	return v == ViewInput || v == ViewComplexity
}

// ErrNavigationDenied is returned for a locked View.
var ErrNavigationDenied = errors.New("analyze a repository first to unlock this view")

// ErrUnknownView is returned for a View outside the enumerated set.
var ErrUnknownView = errors.New("unknown view")

// DeniedError wraps ErrNavigationDenied with the requested View.
type DeniedError struct {
	View View
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %v", e.View.Label(), ErrNavigationDenied)
}

func (e *DeniedError) Unwrap() error { return ErrNavigationDenied }

// Gate reports whether locked Views may be entered.
type Gate interface {
	Completed() bool
}

// Entry is one sidebar row.
type Entry struct {
	View   View
	Label  string
	Active bool
	Locked bool
}

// Navigator tracks the visible View.
type Navigator struct {
	gate    Gate
	current View
}

// New returns a Navigator showing the input View.
func New(gate Gate) *Navigator {
	return &Navigator{gate: gate, current: ViewInput}
}

// Current returns the visible View.
func (n *Navigator) Current() View {
	return n.current
}

// Allowed reports whether target could be entered right now.
func (n *Navigator) Allowed(target View) bool {
	if !target.valid() {
		return false
	}
	return AlwaysOpen(target) || n.gate.Completed()
}

// Request enters target if allowed. Re-entering the current View is a
// no-op success.
func (n *Navigator) Request(target View) error {
	if !target.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownView, int(target))
	}
	if !n.Allowed(target) {
		return &DeniedError{View: target}
	}
	n.current = target
	return nil
}

// Next requests the View after the current one in sidebar order, wrapping.
func (n *Navigator) Next() error {
	return n.Request(Views[(indexOf(n.current)+1)%len(Views)])
}

// Prev requests the View before the current one in sidebar order, wrapping.
func (n *Navigator) Prev() error {
	i := indexOf(n.current) - 1
	if i < 0 {
		i = len(Views) - 1
	}
	return n.Request(Views[i])
}

// Entries returns the sidebar rows. Exactly one row is active.
func (n *Navigator) Entries() []Entry {
	entries := make([]Entry, len(Views))
	for i, v := range Views {
		entries[i] = Entry{
			View:   v,
			Label:  v.Label(),
			Active: v == n.current,
			Locked: !n.Allowed(v),
		}
	}
	return entries
}

func indexOf(v View) int {
	for i, candidate := range Views {
		if candidate == v {
			return i
		}
	}
	return 0
}
