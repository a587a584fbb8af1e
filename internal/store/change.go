package store

import "github.com/nibzard/tasktrack/internal/todo"

// Action identifies the kind of mutation a Change describes.
type Action string

const (
	ActionAdd    Action = "ADD"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Change describes one task mutation.
//
// Task is set only for ADD and points at a copy owned by the notification.
// Status is set only for UPDATE and carries the requested status, whether
// or not a task with ID existed.
type Change struct {
	ID     int         `json:"id"`
	Action Action      `json:"action"`
	Task   *todo.Task  `json:"task,omitempty"`
	Status todo.Status `json:"status,omitempty"`
}

// ChangeSet is the ordered payload of one task-data notification.
// All subscribers of a notification receive the same ChangeSet and must
// treat it as read-only.
type ChangeSet []Change

// IDs returns the ids in the change set, in order.
func (cs ChangeSet) IDs() []int {
	ids := make([]int, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

// Channel names a notification stream.
type Channel string
