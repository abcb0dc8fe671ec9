package app

import (
	"fmt"
	"os"

	"github.com/dshills/codemorph/internal/config"
	"github.com/dshills/codemorph/internal/engine/coderange"
	"github.com/dshills/codemorph/internal/engine/fragment"
	"github.com/dshills/codemorph/internal/engine/transition"
	"github.com/dshills/codemorph/internal/plugin/lua"
	"github.com/dshills/codemorph/internal/renderer/core"
	"github.com/dshills/codemorph/internal/renderer/highlight"
	"github.com/dshills/codemorph/internal/renderer/traverse"
	"github.com/dshills/codemorph/internal/watcher"
)

// bootstrapper builds the application's components in dependency order.
type bootstrapper struct {
	app  *Application
	opts Options
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{app: app, opts: app.opts}
}

func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initSources,
		b.initHighlighter,
		b.initCode,
		b.initTraversal,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.backend = b.opts.Backend
	return nil
}

func (b *bootstrapper) initConfig() error {
	cfg := b.opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	b.app.cfg = cfg
	return nil
}

func (b *bootstrapper) initLogger() error {
	logger := b.opts.Logger
	if logger == nil {
		cfg := DefaultLoggerConfig()
		cfg.Level = ParseLogLevel(b.app.cfg.Logging.Level)
		logger = NewLogger(cfg)
	}
	b.app.logger = logger
	return nil
}

func (b *bootstrapper) initSources() error {
	if len(b.opts.Files) == 0 {
		return ErrNoSource
	}
	for _, path := range b.opts.Files {
		text, err := loadSource(path)
		if err != nil {
			return err
		}
		b.app.sources = append(b.app.sources, text)
	}
	return nil
}

func (b *bootstrapper) initHighlighter() error {
	hc := b.app.cfg.Highlight
	if !hc.Enabled {
		theme, ok := highlight.ThemeByName(hc.Theme)
		if !ok {
			theme = highlight.DefaultTheme()
		}
		b.app.theme = theme
		return nil
	}

	chroma := highlight.NewChroma(
		highlight.WithThemeName(hc.Theme),
		highlight.WithLogger(b.app.logger.WithComponent("highlight")),
	)
	b.app.highlighter = chroma
	b.app.theme = chroma.Theme()
	return nil
}

func (b *bootstrapper) initCode() error {
	tc := b.app.cfg.Transition

	timing, err := b.timing(tc)
	if err != nil {
		return err
	}
	algorithm, err := transition.ParseAlgorithm(tc.Differ)
	if err != nil {
		return err
	}

	opts := []transition.Option{
		transition.WithDiffer(transition.LineDiffer{Algorithm: algorithm, DetectMoves: tc.DetectMoves}),
		transition.WithMeasurer(b.measurer()),
		transition.WithLogger(b.app.logger.WithComponent("transition")),
		transition.WithTiming(timing),
	}
	if b.app.highlighter != nil {
		opts = append(opts,
			transition.WithHighlighter(b.app.highlighter),
			transition.WithDialect(b.dialect()),
		)
	}

	b.app.code = transition.NewCode(b.app.sources[0], opts...)
	return nil
}

func (b *bootstrapper) timing(tc config.TransitionConfig) (transition.TimingFunc, error) {
	if tc.TimingScript == "" {
		return transition.TimingByName(tc.Timing)
	}

	script, err := lua.LoadTimingFile(tc.TimingScript)
	if err != nil {
		return nil, &ComponentError{Component: "timing script", Err: err}
	}
	script.SetLogger(b.app.logger.WithComponent("lua"))
	b.app.timing = script
	return script.Func(), nil
}

func (b *bootstrapper) dialect() string {
	if d := b.app.cfg.Highlight.Dialect; d != "" {
		return d
	}
	d := highlight.DetectDialect(b.opts.Files[0])
	if d == "" {
		b.app.logger.Info("no dialect detected, highlighting disabled", "file", b.opts.Files[0])
	}
	return d
}

// measurer scales terminal cell widths by the configured cell width.
func (b *bootstrapper) measurer() fragment.Measurer {
	m := fragment.RuneWidthMeasurer()
	cellWidth := b.app.cfg.Render.CellWidth
	cells := m.WidthOf
	m.CellWidth = cellWidth
	m.WidthOf = func(text string) float64 {
		return cells(text) * cellWidth
	}
	return m
}

func (b *bootstrapper) initTraversal() error {
	rc := b.app.cfg.Render

	fallback, err := core.ColorFromHex(rc.FallbackColor)
	if err != nil {
		return err
	}

	selection, err := coderange.ConsolidateChecked(b.opts.Selection)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}

	b.app.traverse = traverse.Options{
		Measurer:    b.measurer(),
		LineHeight:  rc.LineHeight,
		Hold:        rc.Hold,
		Fallback:    fallback,
		Highlighter: b.app.highlighter,
		Selection:   selection,
		DimAlpha:    rc.DimAlpha,
	}
	return nil
}

func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch {
		return nil
	}

	inner, err := watcher.NewFSNotifyWatcher()
	if err != nil {
		return &ComponentError{Component: "watcher", Err: err}
	}
	w := watcher.NewDebouncedWatcher(inner, b.app.cfg.Watch.Debounce.Std())

	path := b.opts.Files[len(b.opts.Files)-1]
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return NewOperationError("watch", path, err)
	}
	b.app.watcher = w
	return nil
}

// cleanup releases what earlier steps created.
func (b *bootstrapper) cleanup() {
	if b.app.timing != nil {
		b.app.timing.Close()
		b.app.timing = nil
	}
}

// loadSource reads a file and strips its surrounding blank lines and
// common indentation.
func loadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewOperationError("load", path, err)
	}
	return transition.CorrectWhitespace(string(data)), nil
}
