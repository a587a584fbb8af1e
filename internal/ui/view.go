package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasktrack/internal/todo"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	doneDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	filterActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true)
	filterInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	inputTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	inputPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	statusStyles = map[todo.Status]lipgloss.Style{
		todo.StatusOpen:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		todo.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		todo.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

var statusLabels = map[todo.Status]string{
	todo.StatusOpen:       "open",
	todo.StatusInProgress: "doing",
	todo.StatusDone:       "done",
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tasktrack"))
	b.WriteString("  ")
	b.WriteString(countStyle.Render(m.counts()))
	b.WriteString("\n\n")

	b.WriteString(m.filterBar())
	b.WriteString("\n\n")

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		if len(m.rows) == 0 {
			b.WriteString(emptyStyle.Render("  No tasks yet. Press a to add one."))
		} else {
			b.WriteString(emptyStyle.Render("  No tasks match this filter."))
		}
		b.WriteString("\n")
	}
	for i, r := range m.visible {
		b.WriteString(renderRow(r.task, i == m.cursor && !m.adding))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) counts() string {
	tasks := make([]todo.Task, len(m.rows))
	for i, r := range m.rows {
		tasks[i] = r.task
	}
	c := todo.CountByStatus(tasks)
	return fmt.Sprintf("%d open · %d in progress · %d done",
		c[todo.StatusOpen], c[todo.StatusInProgress], c[todo.StatusDone])
}

func (m *Model) filterBar() string {
	parts := make([]string, 0, len(todo.Filters()))
	for i, f := range todo.Filters() {
		label := fmt.Sprintf("%d %s", i, f)
		if f == m.filter {
			parts = append(parts, filterActiveStyle.Render(label))
		} else {
			parts = append(parts, filterInactiveStyle.Render(label))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func renderRow(t todo.Task, selected bool) string {
	status := fmt.Sprintf("[%-5s]", statusLabels[t.Status])
	if style, ok := statusStyles[t.Status]; ok {
		status = style.Render(status)
	}

	desc := t.Desc
	if t.Status == todo.StatusDone {
		desc = doneDescStyle.Render(desc)
	}

	cursor := "  "
	if selected {
		cursor = selectedStyle.Render(">") + " "
	}
	return fmt.Sprintf("%s%s %s", cursor, status, desc)
}
