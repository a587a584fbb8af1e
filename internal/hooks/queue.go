package hooks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack/internal/store"
)

// DefaultQueueSize is the number of change sets a Queue holds before it
// starts dropping them.
const DefaultQueueSize = 64

// Queue runs the hook on a background goroutine so that the caller of a
// store mutation never waits for it. Change sets are handed to the hook one
// at a time, in the order they were published. When the buffer is full the
// change set is dropped with a warning.
type Queue struct {
	logger *log.Logger
	run    func(store.ChangeSet)
	jobs   chan store.ChangeSet
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewQueue starts the worker. Call Close to drain and stop it.
func NewQueue(ctx context.Context, logger *log.Logger, opts Options, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	q := &Queue{
		logger: logger,
		run:    Subscriber(ctx, logger, opts),
		jobs:   make(chan store.ChangeSet, size),
		done:   make(chan struct{}),
	}
	go q.work()
	return q
}

func (q *Queue) work() {
	defer close(q.done)
	for cs := range q.jobs {
		q.run(cs)
	}
}

// Subscriber returns a task-data subscriber that enqueues each change set.
func (q *Queue) Subscriber() func(store.ChangeSet) {
	return func(cs store.ChangeSet) {
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.closed {
			return
		}
		select {
		case q.jobs <- cs:
		default:
			q.logger.Warn("hook queue full, dropping change set", "changes", len(cs))
		}
	}
}

// Close stops accepting change sets and waits for the queued ones to run.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	<-q.done
}
