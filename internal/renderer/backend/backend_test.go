package backend

import (
	"testing"

	"github.com/dshills/codemorph/internal/renderer/core"
)

func textCell(r rune) core.Cell {
	return core.Cell{Rune: r, Width: 1, Style: core.DefaultStyle()}
}

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.Cell{Rune: 'X', Width: 1, Style: core.DefaultStyle().WithForeground(core.ColorWhite)}
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendClearUsesBackground(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Init()

	bg := core.ColorFromRGB(30, 30, 30)
	b.SetBackground(bg)
	b.SetCell(1, 1, textCell('X'))
	b.Clear()

	got := b.GetCell(1, 1)
	if got.Rune != ' ' {
		t.Errorf("clear should reset cells, got %q", got.Rune)
	}
	if !got.Style.Background.Equals(bg) {
		t.Errorf("background = %s, want %s", got.Style.Background, bg)
	}
}

func TestNullBackendFillText(t *testing.T) {
	b := NewNullBackend(20, 4)
	b.Init()

	b.FillText(core.DrawOp{Text: "func", X: 2, Y: 1, Color: core.ColorWhite, Alpha: 1})
	b.FillText(core.DrawOp{Text: "gone", X: 0, Y: 0, Color: core.ColorWhite, Alpha: 0})

	if got, want := b.Text(), "\n  func"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	resizeCalled := false
	b.OnResize(func(w, h int) {
		resizeCalled = true
		if w != 100 || h != 40 {
			t.Errorf("resize callback: expected (100, 40), got (%d, %d)", w, h)
		}
	})

	b.Resize(100, 40)

	if !resizeCalled {
		t.Error("resize callback was not called")
	}

	w, h := b.Size()
	if w != 100 || h != 40 {
		t.Errorf("expected size (100, 40), got (%d, %d)", w, h)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyEnter})

	got := b.PollEvent()
	if got.Type != EventKey || got.Key != KeyEnter {
		t.Errorf("expected enter key event, got %+v", got)
	}
}

func TestNullBackendShutdownClosesEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()
	b.Shutdown()

	if got := b.PollEvent(); got.Type != EventClosed {
		t.Errorf("expected closed event after shutdown, got %+v", got)
	}
}

func TestNullBackendHasTrueColor(t *testing.T) {
	b := NewNullBackend(80, 24)
	if !b.HasTrueColor() {
		t.Error("null backend should report true color support")
	}
}

func TestModMaskHas(t *testing.T) {
	mod := ModShift | ModCtrl

	if !mod.Has(ModShift) {
		t.Error("should have shift")
	}
	if !mod.Has(ModCtrl) {
		t.Error("should have ctrl")
	}
	if mod.Has(ModAlt) {
		t.Error("should not have alt")
	}
}

func TestEventIsQuit(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"escape", Event{Type: EventKey, Key: KeyEscape}, true},
		{"ctrl-c", Event{Type: EventKey, Key: KeyCtrlC}, true},
		{"q", Event{Type: EventKey, Key: KeyRune, Rune: 'q'}, true},
		{"Q", Event{Type: EventKey, Key: KeyRune, Rune: 'Q'}, true},
		{"closed", Event{Type: EventClosed}, true},
		{"space", Event{Type: EventKey, Key: KeyRune, Rune: ' '}, false},
		{"enter", Event{Type: EventKey, Key: KeyEnter}, false},
		{"resize", Event{Type: EventResize, Width: 10, Height: 10}, false},
		{"interrupt", Event{Type: EventInterrupt}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsQuit(); got != tt.want {
				t.Errorf("IsQuit() = %v, want %v", got, tt.want)
			}
		})
	}
}
