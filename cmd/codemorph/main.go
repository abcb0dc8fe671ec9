// Package main is the entry point for codemorph, which plays source files
// morphing into one another in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/codemorph/internal/app"
	"github.com/dshills/codemorph/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type flags struct {
	configPath  string
	watch       bool
	loop        bool
	dialect     string
	theme       string
	logLevel    string
	noHighlight bool
	selection   string
	dump        int
	pause       time.Duration
	sets        multiFlag
	printConfig bool
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, []string, error) {
	var f flags
	fs := flag.NewFlagSet("codemorph", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&f.watch, "watch", false, "Morph to the last file's new content whenever it is saved")
	fs.BoolVar(&f.watch, "w", false, "Watch the last file (shorthand)")
	fs.BoolVar(&f.loop, "loop", false, "Start over after the last file")
	fs.StringVar(&f.dialect, "dialect", "", "Highlighting dialect (default: detected from the first file)")
	fs.StringVar(&f.theme, "theme", "", "Color theme")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "Disable syntax highlighting")
	fs.StringVar(&f.selection, "select", "", "Lines to keep at full opacity, e.g. 3,5-7")
	fs.IntVar(&f.dump, "dump", 0, "Write N frames per transition to stdout instead of playing")
	fs.DurationVar(&f.pause, "pause", app.DefaultPause, "Hold between files")
	fs.Var(&f.sets, "set", "Override a setting as path=value (repeatable)")
	fs.BoolVar(&f.printConfig, "print-config", false, "Print the resolved configuration and exit")
	fs.BoolVar(&f.showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "codemorph - animated source code transitions\n\n")
		fmt.Fprintf(stderr, "Usage: codemorph [options] file [file...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nKeys: space pause, n/right next, r restart, q/esc quit\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  codemorph v1.go v2.go v3.go     Play three versions in order\n")
		fmt.Fprintf(stderr, "  codemorph -w draft.go           Morph on every save\n")
		fmt.Fprintf(stderr, "  codemorph -dump 10 a.go b.go    Print frames without a terminal\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return &f, fs.Args(), nil
}

// resolveConfig loads the file, then applies -set assignments and the
// shorthand flags in that order.
func resolveConfig(f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.SetAll(f.sets); err != nil {
		return nil, err
	}

	overrides := map[string]string{
		"highlight.dialect": f.dialect,
		"highlight.theme":   f.theme,
		"logging.level":     f.logLevel,
	}
	if f.noHighlight {
		overrides["highlight.enabled"] = "false"
	}
	for path, value := range overrides {
		if value == "" {
			continue
		}
		if err := cfg.Set(path, value); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, files, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if f.showVersion {
		fmt.Fprintf(stdout, "codemorph %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if f.printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitRuntime
		}
		_, _ = stdout.Write(data)
		return exitOK
	}

	if len(files) == 0 {
		fmt.Fprintf(stderr, "Error: no files given\n")
		return exitUsage
	}

	selection, err := app.ParseSelection(f.selection)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	application, err := app.New(app.Options{
		Config:    cfg,
		Files:     files,
		Watch:     f.watch,
		Loop:      f.loop,
		Pause:     f.pause,
		Selection: selection,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		if errors.Is(err, config.ErrValidationFailed) {
			return exitUsage
		}
		return exitRuntime
	}
	defer application.Close()

	if f.dump > 0 {
		err = application.Dump(ctx, stdout, f.dump)
	} else {
		err = application.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitRuntime
	}
	return exitOK
}
