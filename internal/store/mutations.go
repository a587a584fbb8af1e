package store

import (
	"github.com/nibzard/tasktrack/internal/todo"
)

// Add inserts a task at the front of the collection.
// An empty status means OPEN. The description is stored as given;
// rejecting blank input is the caller's job.
func (s *Store) Add(desc string, status todo.Status) (todo.Task, error) {
	status, err := todo.Draft{Desc: desc, Status: status}.Normalize()
	if err != nil {
		return todo.Task{}, err
	}

	s.mu.Lock()
	task := todo.Task{ID: s.nextID, Desc: desc, Status: status}
	next := make([]todo.Task, 0, len(s.tasks)+1)
	next = append(next, task)
	next = append(next, s.tasks...)
	if err := s.commit(next, task.ID+1); err != nil {
		s.mu.Unlock()
		return todo.Task{}, err
	}
	s.mu.Unlock()

	s.logger.Debug("task added", "namespace", s.namespace, "id", task.ID, "status", task.Status)
	added := task
	s.emit(ChangeSet{{ID: task.ID, Action: ActionAdd, Task: &added}})
	return task, nil
}

// AddMultiple appends drafts to the end of the collection in input order,
// persists once, and emits one ADD per draft in the same order.
// Every draft is validated before anything is applied.
func (s *Store) AddMultiple(drafts []todo.Draft) ([]todo.Task, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	statuses := make([]todo.Status, len(drafts))
	for i, d := range drafts {
		status, err := d.Normalize()
		if err != nil {
			return nil, err
		}
		statuses[i] = status
	}

	s.mu.Lock()
	id := s.nextID
	added := make([]todo.Task, len(drafts))
	for i, d := range drafts {
		added[i] = todo.Task{ID: id, Desc: d.Desc, Status: statuses[i]}
		id++
	}
	next := make([]todo.Task, 0, len(s.tasks)+len(added))
	next = append(next, s.tasks...)
	next = append(next, added...)
	if err := s.commit(next, id); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.logger.Debug("tasks added", "namespace", s.namespace, "count", len(added))
	cs := make(ChangeSet, len(added))
	for i := range added {
		task := added[i]
		cs[i] = Change{ID: task.ID, Action: ActionAdd, Task: &task}
	}
	s.emit(cs)

	out := make([]todo.Task, len(added))
	copy(out, added)
	return out, nil
}

// Delete removes the task with id. An unknown id is not an error: the
// collection is still persisted and a DELETE for id is still emitted.
func (s *Store) Delete(id int) error {
	return s.DeleteMultiple([]int{id})
}

// DeleteMultiple removes every task whose id is in ids, persists once, and
// emits one DELETE per requested id, matched or not, in request order.
// An empty ids slice does nothing.
func (s *Store) DeleteMultiple(ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	next := make([]todo.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !drop[t.ID] {
			next = append(next, t)
		}
	}
	removed := len(s.tasks) - len(next)
	if err := s.commit(next, s.nextID); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Debug("tasks deleted", "namespace", s.namespace, "requested", len(ids), "removed", removed)
	cs := make(ChangeSet, len(ids))
	for i, id := range ids {
		cs[i] = Change{ID: id, Action: ActionDelete}
	}
	s.emit(cs)
	return nil
}

// ChangeStatus sets the status of the task with id.
//
// An invalid status returns an *todo.InvalidStatusError and leaves the
// store, its storage and its subscribers untouched. An unknown id modifies
// nothing but still persists and emits an UPDATE.
func (s *Store) ChangeStatus(id int, status todo.Status) error {
	if !status.Valid() {
		return &todo.InvalidStatusError{Value: string(status)}
	}

	s.mu.Lock()
	next := make([]todo.Task, len(s.tasks))
	copy(next, s.tasks)
	found := false
	if i := indexOf(next, id); i >= 0 {
		next[i].Status = status
		found = true
	}
	if err := s.commit(next, s.nextID); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Debug("task status changed", "namespace", s.namespace, "id", id, "status", status, "found", found)
	s.emit(ChangeSet{{ID: id, Action: ActionUpdate, Status: status}})
	return nil
}
