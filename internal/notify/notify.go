// Package notify provides change notification for store updates.
//
// The notify package implements an observer pattern that allows components
// to subscribe to a store's change events and receive callbacks when its
// state is modified. It is shared by the config and keybinding stores.
package notify

import (
	"sync"
)

// Listener is called when an event is published.
type Listener[T any] func(event T)

// Subscription represents an active listener registration.
type Subscription[T any] struct {
	id       uint64
	notifier *Notifier[T]
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription[T]) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages listener subscriptions for one event type.
type Notifier[T any] struct {
	mu sync.RWMutex

	listeners map[uint64]Listener[T]

	// Next subscription ID
	nextID uint64

	// Closed flag for idempotent Close
	closed bool
}

// New creates a new Notifier.
func New[T any]() *Notifier[T] {
	return &Notifier[T]{
		listeners: make(map[uint64]Listener[T]),
	}
}

// Subscribe registers a listener for all events.
func (n *Notifier[T]) Subscribe(listener Listener[T]) *Subscription[T] {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.listeners[id] = listener

	return &Subscription[T]{
		id:       id,
		notifier: n,
	}
}

// Notify delivers an event to all listeners.
// Listeners are invoked outside the lock and delivery order is not
// guaranteed. A panicking listener does not prevent delivery to the rest.
func (n *Notifier[T]) Notify(event T) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	listeners := make([]Listener[T], 0, len(n.listeners))
	for _, l := range n.listeners {
		listeners = append(listeners, l)
	}
	n.mu.RUnlock()

	for _, l := range listeners {
		safeCall(l, event)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier[T]) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Close drops all subscriptions and stops delivery.
// It is safe to call Close multiple times.
func (n *Notifier[T]) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	n.listeners = make(map[uint64]Listener[T])
}

// unsubscribe removes a listener by ID.
func (n *Notifier[T]) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.listeners, id)
}

// safeCall invokes a listener with panic recovery.
func safeCall[T any](listener Listener[T], event T) {
	defer func() {
		// Recover from panics to keep delivery running
		_ = recover()
	}()
	listener(event)
}
