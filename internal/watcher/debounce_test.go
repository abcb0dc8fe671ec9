package watcher

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// mockWatcher is a simple mock for testing DebouncedWatcher.
type mockWatcher struct {
	mu       sync.Mutex
	events   chan Event
	errors   chan error
	watching map[string]bool
	closed   bool
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{
		events:   make(chan Event, 100),
		errors:   make(chan error, 100),
		watching: make(map[string]bool),
	}
}

func (m *mockWatcher) Watch(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watching[path] = true
	return nil
}

func (m *mockWatcher) Unwatch(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.watching, path)
	return nil
}

func (m *mockWatcher) Events() <-chan Event {
	return m.events
}

func (m *mockWatcher) Errors() <-chan error {
	return m.errors
}

func (m *mockWatcher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
		close(m.errors)
	}
	return nil
}

func (m *mockWatcher) send(path string, op Op) {
	m.events <- Event{Path: path, Op: op, Timestamp: time.Now()}
}

func receive(t *testing.T, ch <-chan Event, timeout time.Duration) (Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-ch:
		return ev, ok
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestDebouncedWatcher_CoalescesBurst(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 30*time.Millisecond)
	defer dw.Close()

	mock.send("/src/a.go", OpCreate)
	mock.send("/src/a.go", OpWrite)
	mock.send("/src/a.go", OpWrite)

	ev, ok := receive(t, dw.Events(), time.Second)
	if !ok {
		t.Fatal("no debounced event delivered")
	}
	if ev.Path != "/src/a.go" {
		t.Errorf("Path = %q, want /src/a.go", ev.Path)
	}
	if !ev.Op.Has(OpCreate) || !ev.Op.Has(OpWrite) {
		t.Errorf("Op = %s, want CREATE|WRITE", ev.Op)
	}

	if ev, ok := receive(t, dw.Events(), 100*time.Millisecond); ok {
		t.Errorf("unexpected second event %+v", ev)
	}
}

func TestDebouncedWatcher_SeparatesPaths(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 20*time.Millisecond)
	defer dw.Close()

	mock.send("/src/a.go", OpWrite)
	mock.send("/src/b.go", OpWrite)

	seen := make(map[string]bool)
	for range 2 {
		ev, ok := receive(t, dw.Events(), time.Second)
		if !ok {
			t.Fatalf("got %d events, want 2", len(seen))
		}
		seen[ev.Path] = true
	}
	if !seen["/src/a.go"] || !seen["/src/b.go"] {
		t.Errorf("events for %v, want both files", seen)
	}
}

func TestDebouncedWatcher_Flush(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, time.Hour)
	defer dw.Close()

	mock.send("/src/a.go", OpWrite)

	deadline := time.Now().Add(time.Second)
	for dw.PendingCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if dw.PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1", dw.PendingCount())
	}

	dw.Flush()
	if _, ok := receive(t, dw.Events(), time.Second); !ok {
		t.Fatal("Flush() did not deliver the pending event")
	}
	if dw.PendingCount() != 0 {
		t.Errorf("PendingCount() after Flush = %d, want 0", dw.PendingCount())
	}
}

func TestDebouncedWatcher_ForwardsErrors(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 10*time.Millisecond)
	defer dw.Close()

	want := errors.New("overflow")
	mock.errors <- want

	select {
	case err := <-dw.Errors():
		if !errors.Is(err, want) {
			t.Errorf("error = %v, want %v", err, want)
		}
	case <-time.After(time.Second):
		t.Fatal("error not forwarded")
	}
}

func TestDebouncedWatcher_Close(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, time.Hour)

	if err := dw.Watch("/src/a.go"); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	mock.send("/src/a.go", OpWrite)

	if err := dw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("Close() did not close the inner watcher")
	}
	if _, ok := <-dw.Events(); ok {
		t.Error("Events() not closed after Close()")
	}
}
