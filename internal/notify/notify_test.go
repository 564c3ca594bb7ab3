package notify

import (
	"sync"
	"sync/atomic"
	"testing"
)

type testEvent struct {
	Name  string
	Value int
}

func TestNew(t *testing.T) {
	n := New[testEvent]()
	if n == nil {
		t.Fatal("New() returned nil")
	}
	defer n.Close()

	if got := n.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New[testEvent]()
	defer n.Close()

	var received atomic.Bool

	sub := n.Subscribe(func(event testEvent) {
		received.Store(true)
	})

	n.Notify(testEvent{Name: "test"})

	if !received.Load() {
		t.Error("listener did not receive notification")
	}

	// Unsubscribe
	sub.Unsubscribe()

	received.Store(false)
	n.Notify(testEvent{Name: "test2"})

	if received.Load() {
		t.Error("unsubscribed listener received notification")
	}
}

func TestNotifier_EventPayload(t *testing.T) {
	n := New[testEvent]()
	defer n.Close()

	var got testEvent
	n.Subscribe(func(event testEvent) {
		got = event
	})

	n.Notify(testEvent{Name: "tabSize", Value: 4})

	if got.Name != "tabSize" {
		t.Errorf("Name = %q, want %q", got.Name, "tabSize")
	}
	if got.Value != 4 {
		t.Errorf("Value = %d, want 4", got.Value)
	}
}

func TestNotifier_MultipleListeners(t *testing.T) {
	n := New[testEvent]()
	defer n.Close()

	var count atomic.Int32
	for i := 0; i < 3; i++ {
		n.Subscribe(func(event testEvent) {
			count.Add(1)
		})
	}

	if got := n.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}

	n.Notify(testEvent{})

	if count.Load() != 3 {
		t.Errorf("delivered to %d listeners, want 3", count.Load())
	}
}

func TestNotifier_PanickingListener(t *testing.T) {
	n := New[testEvent]()
	defer n.Close()

	var survived atomic.Bool

	n.Subscribe(func(event testEvent) {
		panic("listener failure")
	})
	n.Subscribe(func(event testEvent) {
		survived.Store(true)
	})

	// Must not panic past Notify and must still reach the second listener.
	n.Notify(testEvent{Name: "boom"})

	if !survived.Load() {
		t.Error("panic in one listener starved the others")
	}
}

func TestSubscription_UnsubscribeTwice(t *testing.T) {
	n := New[testEvent]()
	defer n.Close()

	sub := n.Subscribe(func(event testEvent) {})
	sub.Unsubscribe()
	sub.Unsubscribe() // must be a no-op

	if got := n.Len(); got != 0 {
		t.Errorf("Len() = %d after double unsubscribe, want 0", got)
	}
}

func TestNotifier_Close(t *testing.T) {
	n := New[testEvent]()

	var received atomic.Bool
	n.Subscribe(func(event testEvent) {
		received.Store(true)
	})

	n.Close()
	n.Close() // idempotent

	n.Notify(testEvent{})

	if received.Load() {
		t.Error("listener received notification after Close")
	}
}

func TestNotifier_ConcurrentSubscribeNotify(t *testing.T) {
	n := New[testEvent]()
	defer n.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := n.Subscribe(func(event testEvent) {})
			n.Notify(testEvent{Value: 1})
			sub.Unsubscribe()
		}()
	}
	wg.Wait()

	if got := n.Len(); got != 0 {
		t.Errorf("Len() = %d after all unsubscribes, want 0", got)
	}
}
