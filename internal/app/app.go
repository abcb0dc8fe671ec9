// Package app wires the engine, renderer and watcher into a player that
// animates source files morphing into one another.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/codemorph/internal/config"
	"github.com/dshills/codemorph/internal/engine/coderange"
	"github.com/dshills/codemorph/internal/engine/transition"
	"github.com/dshills/codemorph/internal/plugin/lua"
	"github.com/dshills/codemorph/internal/renderer/backend"
	"github.com/dshills/codemorph/internal/renderer/highlight"
	"github.com/dshills/codemorph/internal/renderer/traverse"
	"github.com/dshills/codemorph/internal/watcher"
)

// DefaultPause is the time a finished step is held before the next starts.
const DefaultPause = 700 * time.Millisecond

// Options configures the application.
type Options struct {
	// Config is the resolved configuration. Nil means config.Default().
	Config *config.Config

	// Files are shown in order: the first is displayed, then each
	// following file is morphed in.
	Files []string

	// Watch keeps watching the last file and morphs to its new content
	// whenever it is saved.
	Watch bool

	// Loop restarts from the first file after the last step.
	Loop bool

	// Pause is the hold between steps. Zero means DefaultPause.
	Pause time.Duration

	// Selection dims every character outside the ranges.
	Selection []coderange.Range

	// Backend is the display. Nil means the terminal.
	Backend backend.Backend

	// Logger receives diagnostics. Nil means a logger at the configured
	// level writing to stderr.
	Logger *Logger
}

// Application plays a sequence of source files.
type Application struct {
	opts   Options
	cfg    *config.Config
	logger *Logger

	backend     backend.Backend
	highlighter highlight.Highlighter
	theme       *highlight.Theme
	timing      *lua.Timing
	code        *transition.Code
	traverse    traverse.Options
	watcher     watcher.Watcher

	sources []string
	step    int
	idle    time.Duration
	paused  bool

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New creates an Application and loads its files.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Code returns the controller holding the displayed text.
func (app *Application) Code() *transition.Code {
	return app.code
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Run shows the files until the user quits, ctx is cancelled or Stop is
// called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return &ComponentError{Component: "backend", Err: err}
		}
		app.backend = backend.NewBufferedBackend(term)
	}
	if err := app.backend.Init(); err != nil {
		return &ComponentError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	app.backend.SetBackground(app.theme.Background)

	stop := make(chan struct{})
	defer close(stop)
	return app.eventLoop(ctx, app.startInputPolling(stop))
}

// Stop ends Run.
func (app *Application) Stop() {
	app.stopOnce.Do(func() {
		close(app.done)
	})
}

// Close releases the watcher and the timing script.
func (app *Application) Close() error {
	app.Stop()
	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.timing != nil {
		app.timing.Close()
	}
	return errors.Join(errs...)
}

// eventLoop advances and draws one frame per tick, and handles input and
// file events between frames. All tree access happens on this goroutine.
func (app *Application) eventLoop(ctx context.Context, input <-chan backend.Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(app.cfg.Render.FPS))
	defer ticker.Stop()

	var fileEvents <-chan watcher.Event
	var fileErrors <-chan error
	if app.watcher != nil {
		fileEvents = app.watcher.Events()
		fileErrors = app.watcher.Errors()
	}

	if err := app.render(); err != nil {
		return err
	}

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-app.done:
			return nil

		case ev, ok := <-input:
			if !ok {
				return nil
			}
			if err := app.handleBackendEvent(ctx, ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

		case ev, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			app.handleFileEvent(ctx, ev)

		case err, ok := <-fileErrors:
			if !ok {
				fileErrors = nil
				continue
			}
			app.logger.Warn("watcher error", "error", err)

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := app.update(ctx, dt); err != nil {
				return err
			}
			if err := app.render(); err != nil {
				return err
			}
		}
	}
}

// startInputPolling forwards backend events to the returned channel until
// the backend closes or stop is closed. Shutdown unblocks the pending
// PollEvent.
func (app *Application) startInputPolling(stop <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 16)

	go func() {
		defer close(events)
		for {
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventClosed {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	return events
}
