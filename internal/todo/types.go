// Package todo defines tasks, statuses and filters.
package todo

import (
	"strings"
)

// Status represents a task status.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "INPROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusDone}
}

// Valid reports whether s is a member of the status set.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts a user-supplied string to a Status.
// Matching is exact; lowercase input is accepted and upper-cased first.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", &InvalidStatusError{Value: s}
	}
	return status, nil
}

// Filter selects which tasks are displayed.
type Filter string

const (
	FilterAll        Filter = "ALL"
	FilterOpen       Filter = Filter(StatusOpen)
	FilterInProgress Filter = Filter(StatusInProgress)
	FilterDone       Filter = Filter(StatusDone)
)

// Filters returns every valid filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterOpen, FilterInProgress, FilterDone}
}

// Valid reports whether f is a recognized filter value.
func (f Filter) Valid() bool {
	return f == FilterAll || Status(f).Valid()
}

// Match reports whether the task is visible under f.
// An invalid filter matches nothing.
func (f Filter) Match(t Task) bool {
	if f == FilterAll {
		return true
	}
	return f.Valid() && Status(f) == t.Status
}

// ParseFilter converts a user-supplied string to a Filter.
// The empty string means ALL.
func ParseFilter(s string) (Filter, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return FilterAll, true
	}
	f := Filter(trimmed)
	if !f.Valid() {
		return "", false
	}
	return f, true
}

// Task is a single trackable item.
type Task struct {
	ID     int    `json:"id"`
	Desc   string `json:"desc"`
	Status Status `json:"status"`
}

// Draft is a task that has not been assigned an id yet.
type Draft struct {
	Desc   string `json:"desc"`
	Status Status `json:"status,omitempty"`
}

// Normalize returns the draft's status, defaulting to OPEN when empty.
func (d Draft) Normalize() (Status, error) {
	if d.Status == "" {
		return StatusOpen, nil
	}
	if !d.Status.Valid() {
		return "", &InvalidStatusError{Value: string(d.Status)}
	}
	return d.Status, nil
}

// FilterTasks returns the tasks visible under f, preserving order.
func FilterTasks(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// CountByStatus tallies tasks per status.
func CountByStatus(tasks []Task) map[Status]int {
	counts := map[Status]int{
		StatusOpen:       0,
		StatusInProgress: 0,
		StatusDone:       0,
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}
