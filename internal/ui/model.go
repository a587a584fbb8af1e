// Package ui provides the interactive terminal interface.
//
// The Model never mutates its rows directly in response to a key press.
// Keys are turned into store commands; rows change only when the store's
// notifications arrive, the same way any other subscriber would see them.
package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack/internal/store"
	"github.com/nibzard/tasktrack/internal/todo"
)

const errEmptyDesc = "Task description cannot be empty"

// row is one rendered task. It holds its own subscription to the task-data
// channel and reacts only to changes for its id.
type row struct {
	task        todo.Task
	unsubscribe func()
}

// Model is the bubbletea model for the task list.
type Model struct {
	store  *store.Store
	logger *log.Logger

	rows    []*row // newest first
	visible []*row
	filter  todo.Filter
	cursor  int

	adding bool
	input  textinput.Model
	errMsg string

	keys     keyMap
	help     help.Model
	showHelp bool
	width    int

	unsubs []func()
}

// NewModel builds a model over s and subscribes it to both channels.
// Call Close when the model is no longer used.
func NewModel(s *store.Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 256
	ti.Prompt = "> "
	ti.TextStyle = inputTextStyle
	ti.PromptStyle = inputPromptStyle
	ti.PlaceholderStyle = placeholderStyle

	m := &Model{
		store:  s,
		logger: logger,
		filter: s.CurrentFilter(),
		input:  ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}

	for _, t := range s.Tasks() {
		m.rows = append(m.rows, m.newRow(t))
	}
	m.unsubs = append(m.unsubs,
		s.SubscribeChanges(m.onChanges),
		s.SubscribeFilter(m.onFilter),
	)
	m.refilter()
	return m
}

// Close drops every subscription the model holds.
func (m *Model) Close() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
	for _, r := range m.rows {
		r.unsubscribe()
	}
}

func (m *Model) newRow(t todo.Task) *row {
	r := &row{task: t}
	r.unsubscribe = m.store.SubscribeChanges(func(cs store.ChangeSet) {
		m.onRowChanges(r, cs)
	})
	return r
}

// onChanges handles list-level reactions: new tasks become rows at the top.
func (m *Model) onChanges(cs store.ChangeSet) {
	added := false
	for _, c := range cs {
		if c.Action != store.ActionAdd || c.Task == nil {
			continue
		}
		m.rows = append([]*row{m.newRow(*c.Task)}, m.rows...)
		added = true
	}
	if added {
		m.refilter()
	}
}

func (m *Model) onRowChanges(r *row, cs store.ChangeSet) {
	for _, c := range cs {
		if c.ID != r.task.ID {
			continue
		}
		switch c.Action {
		case store.ActionUpdate:
			if t, ok := m.store.Get(r.task.ID); ok {
				r.task.Status = t.Status
			}
			m.refilter()
		case store.ActionDelete:
			r.unsubscribe()
			m.removeRow(r)
			return
		}
	}
}

func (m *Model) onFilter(f todo.Filter) {
	m.filter = f
	m.refilter()
}

func (m *Model) removeRow(r *row) {
	for i, existing := range m.rows {
		if existing == r {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			break
		}
	}
	m.refilter()
}

func (m *Model) refilter() {
	m.visible = m.visible[:0]
	for _, r := range m.rows {
		if m.filter.Match(r.task) {
			m.visible = append(m.visible, r)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() *row {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		desc := m.input.Value()
		if strings.TrimSpace(desc) == "" {
			m.errMsg = errEmptyDesc
			return m, nil
		}
		if _, err := m.store.Add(desc, todo.StatusOpen); err != nil {
			m.fail("add task", err)
			return m, nil
		}
		m.closeForm()
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeForm() {
	m.adding = false
	m.errMsg = ""
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	if f, ok := m.keys.filterFor(msg); ok {
		m.store.SetFilter(f)
		return m, nil
	}
	if status, ok := m.keys.statusFor(msg); ok {
		m.changeStatus(status)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Delete):
		if r := m.selected(); r != nil {
			if err := m.store.Delete(r.task.ID); err != nil {
				m.fail("delete task", err)
			}
		}
	}
	return m, nil
}

// changeStatus asks the store to move the selected task to status. A
// request for the status the task already has is ignored.
func (m *Model) changeStatus(status todo.Status) {
	r := m.selected()
	if r == nil || r.task.Status == status {
		return
	}
	if err := m.store.ChangeStatus(r.task.ID, status); err != nil {
		m.fail("change status", err)
	}
}

func (m *Model) fail(action string, err error) {
	m.logger.Error(action, "err", err)
	m.errMsg = err.Error()
}
