package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Input    key.Binding
	Readme   key.Binding
	Issues   key.Binding
	Complex  key.Binding
	Submit   key.Binding
	Consent  key.Binding
	Estimate key.Binding
	Copy     key.Binding
	Commit   key.Binding
	Skip     key.Binding
	Close    key.Binding
	Help     key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextView: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	PrevView: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev view"),
	),
	Input: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "analyze"),
	),
	Readme: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("F2", "readme"),
	),
	Issues: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("F3", "issues"),
	),
	Complex: key.NewBinding(
		key.WithKeys("f4"),
		key.WithHelp("F4", "complexity"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "analyze / open issue"),
	),
	Consent: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "toggle consent"),
	),
	Estimate: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "estimate snippet"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy document"),
	),
	Commit: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "commit document"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip typing"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc/q", "close"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQ: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
