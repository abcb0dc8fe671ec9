package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/codemorph/internal/renderer/core"
)

func newSimTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(term.Shutdown)
	return term, screen
}

func TestTerminalFillText(t *testing.T) {
	term, _ := newSimTerminal(t, 20, 4)

	fg := core.ColorFromRGB(220, 220, 170)
	term.FillText(core.DrawOp{Text: "func", X: 2, Y: 1, Color: fg, Alpha: 1})
	term.Show()

	for i, want := range "func" {
		got := term.GetCell(2+i, 1)
		if got.Rune != want {
			t.Errorf("cell %d = %q, want %q", 2+i, got.Rune, want)
		}
		if !got.Style.Foreground.Equals(fg) {
			t.Errorf("cell %d foreground = %s, want %s", 2+i, got.Style.Foreground, fg)
		}
	}
}

func TestTerminalFillTextKeepsCombining(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 1)

	term.FillText(core.DrawOp{Text: "e\u0301x", Color: core.ColorWhite, Alpha: 1})
	term.Show()

	mainc, combc, _, _ := screen.GetContent(0, 0) //nolint:staticcheck // GetContent is the correct API
	if mainc != 'e' || len(combc) != 1 || combc[0] != '\u0301' {
		t.Errorf("cell 0 = %q %q", mainc, combc)
	}
	if got := term.GetCell(1, 0).Rune; got != 'x' {
		t.Errorf("cell 1 = %q, want 'x'", got)
	}
}

func TestTerminalCompositesOverBackground(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 1)
	term.SetBackground(core.ColorBlack)

	term.FillText(core.DrawOp{Text: "a", Color: core.ColorWhite, Alpha: 0.5})
	term.Show()

	got := term.GetCell(0, 0).Style
	if got.Foreground.Equals(core.ColorWhite) || got.Foreground.Equals(core.ColorBlack) {
		t.Errorf("expected blended foreground, got %s", got.Foreground)
	}
	if !got.Background.Equals(core.ColorBlack) {
		t.Errorf("background = %s, want black", got.Background)
	}
}

func TestTerminalSetCellRoundTrip(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 2)

	cell := core.Cell{
		Rune:  'Z',
		Width: 1,
		Style: core.DefaultStyle().
			WithForeground(core.ColorFromRGB(1, 2, 3)).
			WithAttributes(core.AttrBold | core.AttrItalic),
	}
	term.SetCell(3, 1, cell)

	got := term.GetCell(3, 1)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}
}

func TestTerminalEvents(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 2)

	term.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'q'})
	ev := term.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'q' || !ev.IsQuit() {
		t.Errorf("expected quit key, got %+v", ev)
	}

	term.PostEvent(Event{Type: EventInterrupt, Data: 7})
	ev = term.PollEvent()
	if ev.Type != EventInterrupt || ev.Data != 7 {
		t.Errorf("expected interrupt, got %+v", ev)
	}
}

func TestConvertColorRoundTrip(t *testing.T) {
	colors := []core.Color{
		core.ColorDefault,
		core.ColorFromIndex(4),
		core.ColorFromRGB(255, 128, 0),
	}
	for _, c := range colors {
		if got := convertTcellColor(convertColor(c)); !got.Equals(c) {
			t.Errorf("round trip of %s gave %s", c, got)
		}
	}
}
