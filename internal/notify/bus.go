// Package notify provides a typed, synchronous observer registry.
//
// A Bus carries one channel of notifications. Handlers run on the
// publisher's goroutine, in registration order, before Publish returns.
// A handler may publish, subscribe or unsubscribe re-entrantly: Publish
// iterates over a snapshot, so registrations made during delivery take
// effect from the next Publish onward, and a handler removed during
// delivery is not invoked afterwards.
package notify

import "sync"

type subscription[T any] struct {
	id      uint64
	handler func(T)
	active  bool
}

// Bus is a registry of handlers for payloads of type T.
// The zero value is ready to use.
type Bus[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []*subscription[T]
}

// Subscribe registers handler and returns a function that removes exactly
// this registration. The returned function is safe to call more than once.
func (b *Bus[T]) Subscribe(handler func(T)) (unsubscribe func()) {
	if handler == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	sub := &subscription[T]{id: b.nextID, handler: handler, active: true}
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(sub.id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			sub.active = false
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every current subscriber.
func (b *Bus[T]) Publish(payload T) {
	b.mu.Lock()
	snapshot := make([]*subscription[T], len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, sub := range snapshot {
		if !b.isActive(sub) {
			continue
		}
		sub.handler(payload)
	}
}

func (b *Bus[T]) isActive(sub *subscription[T]) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sub.active
}

// Len returns the number of registered handlers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
