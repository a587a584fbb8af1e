package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasktrack/internal/todo"
)

type keyMap struct {
	Add        key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	InProgress key.Binding
	Done       key.Binding
	Delete     key.Binding
	FilterAll  key.Binding
	FilterOpen key.Binding
	FilterProg key.Binding
	FilterDone key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new task")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		InProgress: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "in progress")),
		Done:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		FilterAll:  key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "all")),
		FilterOpen: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "open only")),
		FilterProg: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "in progress only")),
		FilterDone: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done only")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Done, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Submit, k.Cancel},
		{k.Open, k.InProgress, k.Done, k.Delete},
		{k.FilterAll, k.FilterOpen, k.FilterProg, k.FilterDone},
		{k.Help, k.Quit},
	}
}

// filterFor maps a filter key to its filter.
func (k keyMap) filterFor(msg tea.KeyMsg) (todo.Filter, bool) {
	switch {
	case key.Matches(msg, k.FilterAll):
		return todo.FilterAll, true
	case key.Matches(msg, k.FilterOpen):
		return todo.FilterOpen, true
	case key.Matches(msg, k.FilterProg):
		return todo.FilterInProgress, true
	case key.Matches(msg, k.FilterDone):
		return todo.FilterDone, true
	}
	return "", false
}

// statusFor maps a status key to its status.
func (k keyMap) statusFor(msg tea.KeyMsg) (todo.Status, bool) {
	switch {
	case key.Matches(msg, k.Open):
		return todo.StatusOpen, true
	case key.Matches(msg, k.InProgress):
		return todo.StatusInProgress, true
	case key.Matches(msg, k.Done):
		return todo.StatusDone, true
	}
	return "", false
}
