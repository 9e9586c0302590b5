// Package main is the entry point for the wobl grid demo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/dshills/wobl/internal/config"
	"github.com/dshills/wobl/internal/logging"
	"github.com/dshills/wobl/internal/renderer"
	"github.com/dshills/wobl/internal/renderer/backend"
	"github.com/dshills/wobl/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds parsed command line flags.
type options struct {
	configPath  string
	script      string
	frames      int
	showVersion bool

	// overrides maps config keys to flag values.
	overrides map[string]string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if opts.showVersion {
		fmt.Printf("wobl %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	loader := config.NewLoader(config.WithFile(opts.configPath))
	cfg, err := loadConfig(loader, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	dev, err := newBackend(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create backend: %v\n", err)
		return 1
	}

	r, err := renderer.New(dev, renderer.Options{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Restore the terminal before a panic reaches the user.
	defer func() {
		p := recover()
		if err := r.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if p != nil {
			panic(p)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := newSession(r, cfg, logger)
	s.override = func(c *config.Config) error { return applyOverrides(c, opts.overrides) }
	if opts.configPath != "" {
		updates, err := loader.Watch(ctx)
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			s.updates = updates
		}
	}

	if opts.script != "" {
		err = script.Run(ctx, s, opts.script, script.WithLogger(logger))
	} else {
		err = runDemo(ctx, s, opts.frames)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("run failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, output io.Writer) (options, error) {
	opts := options{overrides: make(map[string]string)}
	fs := flag.NewFlagSet("wobl", flag.ContinueOnError)
	fs.SetOutput(output)

	override := func(key string) func(string) error {
		return func(v string) error {
			opts.overrides[key] = v
			return nil
		}
	}

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.script, "script", "", "Lua script defining frame(n)")
	fs.StringVar(&opts.script, "s", "", "Lua script (shorthand)")
	fs.IntVar(&opts.frames, "frames", 0, "Stop the demo after this many frames (0 runs until quit)")
	fs.Func("backend", "Backend: terminal or canvas", override("backend"))
	fs.Func("b", "Backend (shorthand)", override("backend"))
	fs.Func("title", "Window title", override("title"))
	fs.Func("width", "Grid width in cells", override("width"))
	fs.Func("height", "Grid height in cells", override("height"))
	fs.Func("fps", "Target frame rate (0 is unbounded)", override("fps"))
	fs.Func("log-level", "Log level (debug, info, warn, error)", override("log_level"))
	fs.Func("log-file", "Write logs to this file", override("log_file"))
	fs.Func("release-timeout", "Terminal key release timeout, e.g. 300ms", override("release_timeout"))
	fs.Func("snapshot", "Canvas: write each frame to this PNG", override("canvas.snapshot"))
	fs.Func("scale", "Canvas: snapshot pixel scale", override("canvas.scale"))
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(output, "wobl - character grid renderer\n\n")
		fmt.Fprintf(output, "Usage: wobl [options]\n\n")
		fmt.Fprintf(output, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(output, "\nExamples:\n")
		fmt.Fprintf(output, "  wobl                              Run the built-in demo\n")
		fmt.Fprintf(output, "  wobl -c wobl.toml                  Load settings and reload on change\n")
		fmt.Fprintf(output, "  wobl -s game.lua                   Run a Lua frame script\n")
		fmt.Fprintf(output, "  wobl -b canvas -snapshot out.png   Render frames to a PNG\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.configPath == "" {
		opts.configPath = defaultConfigPath()
	}
	return opts, nil
}

// defaultConfigPath returns the first wobl config file in the working
// directory, or "".
func defaultConfigPath() string {
	for _, name := range []string{"wobl.toml", "wobl.yaml", "wobl.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadConfig loads every config layer and then applies flag overrides.
func loadConfig(loader *config.Loader, opts options) (config.Config, error) {
	cfg, err := loader.Load()
	if err != nil {
		return cfg, err
	}
	if err := applyOverrides(&cfg, opts.overrides); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyOverrides(cfg *config.Config, overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := cfg.Set(k, overrides[k]); err != nil {
			return fmt.Errorf("flag: %w", err)
		}
	}
	return nil
}

// newLogger writes to log_file when set. Without a file, the terminal
// backend owns the screen so logs are discarded, and the canvas backend
// logs to stderr.
func newLogger(cfg config.Config) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, nil, err
		}
		logger := logging.New(logging.Config{Level: level, Output: f, Prefix: "wobl"})
		return logger, func() { f.Close() }, nil
	}
	if cfg.Backend == config.BackendTerminal {
		return logging.Discard(), func() {}, nil
	}
	logger := logging.New(logging.Config{Level: level, Output: os.Stderr, Prefix: "wobl"})
	return logger, func() {}, nil
}

func newBackend(cfg config.Config) (backend.Backend, error) {
	switch cfg.Backend {
	case config.BackendCanvas:
		opts := []backend.Option{backend.WithScale(cfg.Canvas.Scale)}
		if cfg.Canvas.Snapshot != "" {
			opts = append(opts, backend.WithSnapshot(cfg.Canvas.Snapshot))
		}
		return backend.NewCanvas(opts...), nil
	case config.BackendTerminal:
		term, err := backend.NewTerminal(backend.WithReleaseTimeout(cfg.ReleaseTimeout))
		if err != nil {
			return nil, err
		}
		return term, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
