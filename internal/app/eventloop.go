package app

import (
	"context"
	"time"

	"github.com/dshills/codemorph/internal/renderer/backend"
	"github.com/dshills/codemorph/internal/watcher"
)

// pause returns the hold between steps.
func (app *Application) pause() time.Duration {
	if app.opts.Pause > 0 {
		return app.opts.Pause
	}
	return DefaultPause
}

// update advances the running transition by dt and starts the next step
// once the current one has been held for the pause.
func (app *Application) update(ctx context.Context, dt time.Duration) error {
	if app.paused {
		return nil
	}
	busy := app.code.Busy()
	if !app.code.Advance(dt) || busy {
		app.idle = 0
		return nil
	}

	app.idle += dt
	if app.idle < app.pause() {
		return nil
	}
	return app.next(ctx)
}

// next starts the transition to the following file. After the last file it
// starts over when looping and does nothing otherwise.
func (app *Application) next(ctx context.Context) error {
	if app.step+1 >= len(app.sources) {
		if !app.opts.Loop || len(app.sources) < 2 {
			return nil
		}
		app.restart()
		return nil
	}

	app.step++
	app.idle = 0
	app.logger.Debug("starting step", "step", app.step, "file", app.opts.Files[app.step])
	return app.edit(ctx, app.sources[app.step])
}

// restart shows the first file again without animation.
func (app *Application) restart() {
	app.step = 0
	app.idle = 0
	app.code.Set(app.sources[0])
	app.logger.Debug("restarted")
}

func (app *Application) edit(ctx context.Context, text string) error {
	d := app.cfg.Transition.Duration.Std()
	if _, err := app.code.Edit(ctx, text, d); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return NewOperationError("edit", app.opts.Files[app.step], err)
	}
	return nil
}

// handleBackendEvent reacts to a key press or resize. It returns ErrQuit
// when playback should stop.
func (app *Application) handleBackendEvent(ctx context.Context, ev backend.Event) error {
	if ev.IsQuit() {
		return ErrQuit
	}

	switch ev.Type {
	case backend.EventResize:
		return app.render()

	case backend.EventKey:
		switch {
		case ev.Key == backend.KeyRune && ev.Rune == ' ':
			app.paused = !app.paused
			app.logger.Debug("pause toggled", "paused", app.paused)

		case ev.Key == backend.KeyRune && (ev.Rune == 'r' || ev.Rune == 'R'):
			app.restart()
			return app.render()

		case ev.Key == backend.KeyRight, ev.Key == backend.KeyRune && ev.Rune == 'n':
			app.code.Finish()
			if err := app.next(ctx); err != nil {
				return err
			}
			return app.render()

		case ev.Key == backend.KeyCtrlL:
			return app.render()
		}
	}
	return nil
}

// handleFileEvent morphs to the new content of a watched file.
func (app *Application) handleFileEvent(ctx context.Context, ev watcher.Event) {
	if !ev.Op.Changed() {
		app.logger.Debug("ignoring file event", "path", ev.Path, "op", ev.Op)
		return
	}

	text, err := loadSource(ev.Path)
	if err != nil {
		app.logger.Warn("reload failed", "path", ev.Path, "error", err)
		return
	}
	if text == app.code.Text() {
		return
	}

	last := len(app.sources) - 1
	app.sources[last] = text
	app.step = last
	app.idle = 0
	if err := app.edit(ctx, text); err != nil {
		app.logger.Warn("reload failed", "path", ev.Path, "error", err)
		return
	}
	app.logger.Info("reloaded", "path", ev.Path)
}
