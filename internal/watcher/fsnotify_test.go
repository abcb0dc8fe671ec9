package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newTestWatcher(t *testing.T) *FSNotifyWatcher {
	t.Helper()
	w, err := NewFSNotifyWatcher()
	if err != nil {
		t.Fatalf("NewFSNotifyWatcher() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestFSNotifyWatcher_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, "package main\n")

	w := newTestWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	writeFile(t, path, "package main\n\nfunc main() {}\n")

	ev, ok := receive(t, w.Events(), 2*time.Second)
	if !ok {
		t.Fatal("no event for write")
	}
	if ev.Path != path {
		t.Errorf("Path = %q, want %q", ev.Path, path)
	}
	if !ev.Op.Changed() {
		t.Errorf("Op = %s, want a content change", ev.Op)
	}
}

func TestFSNotifyWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, "package main\n")

	w := newTestWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	writeFile(t, filepath.Join(dir, "other.go"), "package other\n")

	if ev, ok := receive(t, w.Events(), 200*time.Millisecond); ok {
		t.Errorf("unexpected event %+v for unwatched sibling", ev)
	}
}

func TestFSNotifyWatcher_AtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, "v1\n")

	w := newTestWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	tmp := filepath.Join(dir, ".main.go.swp")
	writeFile(t, tmp, "v2\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	ev, ok := receive(t, w.Events(), 2*time.Second)
	if !ok {
		t.Fatal("no event for rename over the watched file")
	}
	if ev.Path != path || !ev.Op.Has(OpCreate) {
		t.Errorf("event = %+v, want CREATE of %s", ev, path)
	}
}

func TestFSNotifyWatcher_WatchErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, "x")

	w := newTestWatcher(t)

	if err := w.Watch(filepath.Join(dir, "missing.go")); !errors.Is(err, ErrPathNotExist) {
		t.Errorf("Watch(missing) error = %v, want ErrPathNotExist", err)
	}
	if err := w.Watch(dir); !errors.Is(err, ErrIsDirectory) {
		t.Errorf("Watch(dir) error = %v, want ErrIsDirectory", err)
	}
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Watch(path); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("second Watch() error = %v, want ErrAlreadyWatching", err)
	}
	if !w.IsWatching(path) {
		t.Error("IsWatching() = false after Watch")
	}

	if err := w.Unwatch(path); err != nil {
		t.Fatalf("Unwatch() error = %v", err)
	}
	if w.IsWatching(path) {
		t.Error("IsWatching() = true after Unwatch")
	}
	if err := w.Unwatch(path); !errors.Is(err, ErrNotWatching) {
		t.Errorf("second Unwatch() error = %v, want ErrNotWatching", err)
	}
}

func TestFSNotifyWatcher_Closed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, "x")

	w, err := NewFSNotifyWatcher()
	if err != nil {
		t.Fatalf("NewFSNotifyWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch(path); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Watch() after Close error = %v, want ErrWatcherClosed", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("Events() not closed after Close()")
	}
}

func TestDebouncedFSNotify_OneEventPerSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, "v1\n")

	inner := newTestWatcher(t)
	dw := NewDebouncedWatcher(inner, 50*time.Millisecond)
	defer dw.Close()

	if err := dw.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	for _, chunk := range []string{"package ", "main", "\n"} {
		if _, err := f.WriteString(chunk); err != nil {
			t.Fatalf("WriteString: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, ok := receive(t, dw.Events(), 2*time.Second); !ok {
		t.Fatal("no debounced event")
	}
	if ev, ok := receive(t, dw.Events(), 200*time.Millisecond); ok {
		t.Errorf("unexpected second event %+v", ev)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpWrite, "WRITE"},
		{OpCreate | OpWrite, "CREATE|WRITE"},
		{0, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
