package app

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"op only", &OperationError{Op: "render"}, "render"},
		{"with target", NewOperationError("load", "a.go", nil), "load a.go"},
		{"with cause", NewOperationError("load", "a.go", os.ErrNotExist), "load a.go: file does not exist"},
		{
			"with context",
			NewOperationError("edit", "b.go", errors.New("boom")).WithContext("step 2"),
			"edit b.go (step 2): boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_NilSafe(t *testing.T) {
	var e *OperationError
	if e.WithContext("x") != nil {
		t.Error("WithContext on nil receiver should return nil")
	}
	if e.Error() != "" {
		t.Error("Error on nil receiver should be empty")
	}
	if e.Unwrap() != nil {
		t.Error("Unwrap on nil receiver should be nil")
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("load", "a.go", os.ErrNotExist)
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestComponentError(t *testing.T) {
	cause := errors.New("no tty")
	err := &ComponentError{Component: "backend", Err: cause}

	if err.Error() != "backend: no tty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInitialization) {
		t.Error("ComponentError should match ErrInitialization")
	}
	if !errors.Is(err, cause) {
		t.Error("ComponentError should match its cause")
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "boom", Stack: "goroutine 1"}
	if !strings.HasPrefix(err.Error(), "panic: boom\n") {
		t.Errorf("Error() = %q", err.Error())
	}
	if (&RecoveredPanicError{Value: 1}).Error() != "panic: 1" {
		t.Error("unexpected message without stack")
	}
}
