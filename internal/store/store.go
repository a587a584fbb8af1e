// Package store owns the authoritative task collection.
//
// A Store assigns ids, applies mutations, writes the full collection to its
// kv.Storage after every mutation, and broadcasts what changed on two
// channels: task data (ChangeSet) and the active filter (todo.Filter).
//
// Every mutation runs in a fixed order: build the next collection, persist
// it, commit it in memory, then notify. Subscribers run synchronously on the
// caller's goroutine after the store lock is released, so a subscriber may
// call back into the store. Such a nested mutation is persisted and
// delivered in full before the outer notification continues with the next
// subscriber; subscribers later in the list therefore observe the nested
// change set before the outer one.
package store

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack/internal/kv"
	"github.com/nibzard/tasktrack/internal/notify"
	"github.com/nibzard/tasktrack/internal/todo"
)

// DefaultNamespace is the storage key and channel name used when none is given.
const DefaultNamespace = "todo"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the single writer of task state.
type Store struct {
	namespace string
	storage   kv.Storage
	logger    *log.Logger

	mu     sync.Mutex
	tasks  []todo.Task // newest first for single adds
	nextID int
	filter todo.Filter

	changes notify.Bus[ChangeSet]
	filters notify.Bus[todo.Filter]
}

// New returns a store persisting under namespace in storage.
// Call Initialize exactly once before use.
func New(namespace string, storage kv.Storage, opts ...Option) *Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	s := &Store{
		namespace: namespace,
		storage:   storage,
		logger:    log.New(io.Discard),
		filter:    todo.FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the persistence key.
func (s *Store) Namespace() string {
	return s.namespace
}

// TaskChannel returns the name of the task-data channel.
func (s *Store) TaskChannel() Channel {
	return Channel(s.namespace)
}

// FilterChannel returns the name of the filter-changed channel.
func (s *Store) FilterChannel() Channel {
	return Channel(s.namespace + ":filter")
}

// Initialize loads the persisted collection and resets the filter to ALL.
//
// Loaded tasks get fresh sequential ids in encounter order, continuing from
// the store's id counter (0 on a new store); stored ids are ignored. An
// absent or malformed collection loads as empty. Only a storage read
// failure is returned.
//
// Calling Initialize again reassigns ids to every task, invalidating ids
// already handed out. Callers should call it exactly once.
func (s *Store) Initialize() error {
	loaded, err := s.load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]todo.Task, len(loaded))
	for i, t := range loaded {
		t.ID = s.nextID
		s.nextID++
		tasks[i] = t
	}
	s.tasks = tasks
	s.filter = todo.FilterAll

	s.logger.Debug("store initialized", "namespace", s.namespace, "tasks", len(tasks), "next_id", s.nextID)
	return nil
}

func (s *Store) load() ([]todo.Task, error) {
	data, err := s.storage.Get(s.namespace)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.namespace, err)
	}

	tasks, err := todo.Decode(data)
	if err != nil {
		s.logger.Warn("ignoring malformed task data", "namespace", s.namespace, "err", err)
		return nil, nil
	}
	return tasks, nil
}

// commit persists next and, on success, makes it the current collection.
// The caller holds s.mu.
func (s *Store) commit(next []todo.Task, nextID int) error {
	data, err := todo.Encode(next)
	if err != nil {
		return err
	}
	if err := s.storage.Set(s.namespace, data); err != nil {
		return fmt.Errorf("persisting %s: %w", s.namespace, err)
	}
	s.tasks = next
	s.nextID = nextID
	return nil
}

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []todo.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]todo.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Visible returns a copy of the tasks matching the current filter.
func (s *Store) Visible() []todo.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return todo.FilterTasks(s.tasks, s.filter)
}

// Get returns a copy of the task with id.
func (s *Store) Get(id int) (todo.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.tasks, id); i >= 0 {
		return s.tasks[i], true
	}
	return todo.Task{}, false
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// NextID returns the id the next added task will receive.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// CurrentFilter returns the active filter.
func (s *Store) CurrentFilter() todo.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter makes f the active filter and notifies filter subscribers.
// Unrecognized values are ignored and reported as false. The filter is
// session state and is never persisted.
func (s *Store) SetFilter(f todo.Filter) bool {
	if !f.Valid() {
		s.logger.Debug("ignoring unknown filter", "filter", f)
		return false
	}

	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()

	s.filters.Publish(f)
	return true
}

// SubscribeChanges registers handler on the task-data channel.
func (s *Store) SubscribeChanges(handler func(ChangeSet)) (unsubscribe func()) {
	return s.changes.Subscribe(handler)
}

// SubscribeFilter registers handler on the filter channel.
func (s *Store) SubscribeFilter(handler func(todo.Filter)) (unsubscribe func()) {
	return s.filters.Subscribe(handler)
}

func (s *Store) emit(cs ChangeSet) {
	s.changes.Publish(cs)
}

func indexOf(tasks []todo.Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
