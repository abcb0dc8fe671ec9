// Package backend provides display surfaces for rendered frames.
//
// Every backend is a core.Canvas: draw operations produced by the traversal
// are rasterized into cells, with their alpha composited over the backend's
// background color.
package backend

import "github.com/dshills/codemorph/internal/renderer/core"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Interrupt payload
	Data any
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyCtrlC
	KeyCtrlL
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// IsQuit reports whether the event asks playback to stop.
func (e Event) IsQuit() bool {
	if e.Type == EventClosed {
		return true
	}
	if e.Type != EventKey {
		return false
	}
	switch e.Key {
	case KeyEscape, KeyCtrlC:
		return true
	case KeyRune:
		return e.Rune == 'q' || e.Rune == 'Q'
	}
	return false
}

// Backend defines the interface for display backends.
type Backend interface {
	core.Canvas

	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// OnResize registers a callback for resize events.
	OnResize(callback func(width, height int))

	// SetBackground sets the color that Clear fills with and that
	// translucent text is composited over.
	SetBackground(bg core.Color)

	// SetCell sets a single cell at the given position.
	// Positions outside the surface are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the surface.
	GetCell(x, y int) core.Cell

	// Clear clears the entire surface with the background.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// HasTrueColor returns true if the backend supports 24-bit color.
	HasTrueColor() bool
}

// NullBackend is an in-memory backend for headless playback and tests.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	background    core.Color
	resizeHandler func(width, height int)
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:      width,
		height:     height,
		background: core.ColorDefault,
		events:     make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = b.blank()
		}
	}
}

func (b *NullBackend) blank() core.Cell {
	cell := core.EmptyCell()
	cell.Style = cell.Style.WithBackground(b.background)
	return cell
}

func (b *NullBackend) Shutdown() {
	select {
	case b.events <- Event{Type: EventClosed}:
	default:
	}
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) OnResize(callback func(width, height int)) {
	b.resizeHandler = callback
}

// Resize changes the dimensions and notifies the resize callback.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	if b.resizeHandler != nil {
		b.resizeHandler(width, height)
	}
}

func (b *NullBackend) SetBackground(bg core.Color) {
	b.background = bg
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || b.cells == nil {
		return
	}
	b.cells[y][x] = cell
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || b.cells == nil {
		return core.EmptyCell()
	}
	return b.cells[y][x]
}

func (b *NullBackend) Clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = b.blank()
		}
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) FillText(op core.DrawOp) {
	Rasterize(op, b.background, func(x, y int, cell core.Cell, _ []rune) {
		b.SetCell(x, y, cell)
	})
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

func (b *NullBackend) HasTrueColor() bool {
	return true
}

// Text returns the visible runes row by row with trailing spaces trimmed.
func (b *NullBackend) Text() string {
	return cellsText(b.cells)
}
