package app

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dshills/codemorph/internal/engine/fragment"
	"github.com/dshills/codemorph/internal/renderer/backend"
	"github.com/dshills/codemorph/internal/renderer/core"
	"github.com/dshills/codemorph/internal/renderer/traverse"
)

// render draws the current frame to the application's backend.
func (app *Application) render() error {
	app.backend.Clear()
	if err := app.draw(app.backend); err != nil {
		return err
	}
	app.backend.Show()
	return nil
}

// draw traverses the code's tree onto b, centered on its surface.
func (app *Application) draw(b backend.Backend) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	scope := app.code.Scope()
	opts := app.traverse
	if opts.Highlighter != nil {
		before, after := app.code.Caches()
		opts.Caches = &traverse.Caches{Before: before, After: after}
	}

	size, err := traverse.Measure(scope, opts)
	if err != nil {
		return NewOperationError("render", "", err)
	}
	w, h := size.Cells(opts.Measurer.CellWidth, opts.LineHeight)
	sw, sh := b.Size()
	dx := float64(max(0, (sw-w)/2))
	dy := float64(max(0, (sh-h)/2))

	canvas := core.CanvasFunc(func(op core.DrawOp) {
		op.X += dx
		op.Y += dy
		b.FillText(op)
	})
	if err := traverse.Draw(scope, canvas, opts); err != nil {
		return NewOperationError("render", "", err)
	}
	return nil
}

// frameSize returns the cells needed to show the largest source.
func (app *Application) frameSize() (width, height int, err error) {
	for _, src := range app.sources {
		scope, err := fragment.MeasureScope(fragment.FromText(src), app.traverse.Measurer)
		if err != nil {
			return 0, 0, err
		}
		size, err := traverse.Measure(scope, app.traverse)
		if err != nil {
			return 0, 0, err
		}
		w, h := size.Cells(app.traverse.Measurer.CellWidth, app.traverse.LineHeight)
		width = max(width, w)
		height = max(height, h)
	}
	return max(width, 1), max(height, 1), nil
}

// Dump plays every step headlessly and writes frames+1 text snapshots of
// each transition to w, starting from the first file. It does not need a
// terminal and ignores the configured backend.
func (app *Application) Dump(ctx context.Context, w io.Writer, frames int) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if frames < 1 {
		frames = 1
	}
	width, height, err := app.frameSize()
	if err != nil {
		return NewOperationError("dump", "", err)
	}
	nb := backend.NewNullBackend(width, height)
	if err := nb.Init(); err != nil {
		return err
	}
	defer nb.Shutdown()

	snapshot := func(step, frame int) error {
		nb.Clear()
		if err := app.draw(nb); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "--- %s [%d/%d] frame %d/%d ---\n%s\n",
			app.opts.Files[step], step+1, len(app.sources), frame, frames,
			strings.TrimRight(nb.Text(), "\n"))
		return err
	}

	app.restart()
	if err := snapshot(0, frames); err != nil {
		return err
	}

	d := app.cfg.Transition.Duration.Std()
	for app.step+1 < len(app.sources) {
		if err := ctx.Err(); err != nil {
			return err
		}
		app.step++
		if err := app.edit(ctx, app.sources[app.step]); err != nil {
			return err
		}
		for frame := 1; frame <= frames; frame++ {
			if frame == frames {
				app.code.Finish()
			} else {
				app.code.Advance(d / time.Duration(frames))
			}
			if err := snapshot(app.step, frame); err != nil {
				return err
			}
		}
	}
	return nil
}
