// Package main is the entry point for the paneedit command.
//
// paneedit opens files into an editor, runs Lua against it and prints
// the result. It has no interactive mode; a terminal front end drives the
// same internal packages.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/dshills/paneedit/internal/config"
	"github.com/dshills/paneedit/internal/editor"
	"github.com/dshills/paneedit/internal/engine/buffer"
	"github.com/dshills/paneedit/internal/engine/search"
	"github.com/dshills/paneedit/internal/logging"
	"github.com/dshills/paneedit/internal/render"
	"github.com/dshills/paneedit/internal/script"
	"github.com/dshills/paneedit/internal/viewport"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options holds the parsed command line.
type options struct {
	configPath  string
	scriptPath  string
	code        string
	logLevel    string
	write       bool
	diff        bool
	render      string
	showVersion bool
	files       []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fl := flag.NewFlagSet("paneedit", flag.ContinueOnError)
	fl.SetOutput(stderr)
	fl.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fl.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fl.StringVar(&opts.scriptPath, "script", "", "Lua file to run against the editor")
	fl.StringVar(&opts.code, "e", "", "Lua code to run after -script")
	fl.StringVar(&opts.logLevel, "log-level", "", "Log level, overrides the configuration (debug, info, warn, error)")
	fl.BoolVar(&opts.write, "write", false, "Write modified buffers back to their files")
	fl.BoolVar(&opts.diff, "diff", false, "Print a unified diff of every modified buffer against its file")
	fl.StringVar(&opts.render, "render", "", "Print the pane layout painted at `WxH` cells")
	fl.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fl.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fl.Usage = func() {
		fmt.Fprintf(stderr, "paneedit - scriptable multi-pane text editor\n\n")
		fmt.Fprintf(stderr, "Usage: paneedit [options] [files...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fl.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  paneedit -e 'editor.insert(\"// \")' main.go      Print main.go with a comment marker\n")
		fmt.Fprintf(stderr, "  paneedit -script fix.lua -diff a.go b.go           Show what fix.lua changes\n")
		fmt.Fprintf(stderr, "  paneedit -e 'editor.split(\"vertical\")' -render 80x24 a.go\n")
	}

	if err := fl.Parse(args); err != nil {
		return opts, err
	}
	opts.files = fl.Args()

	if opts.write && opts.diff {
		return opts, errors.New("-write and -diff are mutually exclusive")
	}
	return opts, nil
}

// parseSize parses a "WxH" cell size.
func parseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	width, err = strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	height, err = strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return width, height, nil
}

func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "paneedit %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	var width, height int
	if opts.render != "" {
		if width, height, err = parseSize(opts.render); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to set up logging: %v\n", err)
		return 1
	}

	ed := editor.New(
		editor.WithLogger(logger),
		editor.WithHistoryLimit(cfg.History.Limit),
		editor.WithScrollMargin(cfg.View.ScrollMargin),
		editor.WithSearchOptions(search.Options{
			Regexp:     cfg.Search.Regexp,
			IgnoreCase: cfg.Search.IgnoreCase,
		}),
	)
	defer ed.Close()

	if err := openFiles(ed, opts.files); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.scriptPath != "" || opts.code != "" {
		if err := runScripts(ctx, ed, cfg, opts, stdout, logger); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	switch {
	case opts.write:
		err = writeFiles(ed, opts.files, logger)
	case opts.diff:
		err = printDiffs(ed, opts.files, stdout)
	case opts.render != "":
		var out string
		out, err = render.Text(ed.Tree(), width, height)
		if err == nil {
			_, err = io.WriteString(stdout, out)
		}
	default:
		_, err = io.WriteString(stdout, ed.ActiveBuffer().Export())
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openFiles opens every file into its own pane, stacked top to bottom. A
// file that does not exist yet opens as an empty buffer. The first file's
// pane is left active.
func openFiles(ed *editor.Editor, files []string) error {
	var first viewport.LeafID
	for i, name := range files {
		data, err := os.ReadFile(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if i == 0 {
			first = ed.Tree().Active()
		} else if _, err := ed.Split(viewport.Horizontal); err != nil {
			return err
		}
		if _, err := ed.Open(name, string(data)); err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
	}
	if len(files) > 0 {
		return ed.Tree().SetActive(first)
	}
	return nil
}

func runScripts(ctx context.Context, ed *editor.Editor, cfg *config.Config, opts options, stdout io.Writer, logger zerolog.Logger) error {
	eng, err := script.New(ed,
		script.WithTimeout(cfg.Script.Timeout.Std()),
		script.WithOutput(stdout),
		script.WithLogger(logger.With().Str("component", "script").Logger()),
	)
	if err != nil {
		return fmt.Errorf("start script engine: %w", err)
	}
	defer eng.Close()

	if opts.scriptPath != "" {
		if err := eng.DoFile(ctx, opts.scriptPath); err != nil {
			return err
		}
	}
	if opts.code != "" {
		if err := eng.DoString(ctx, opts.code); err != nil {
			return err
		}
	}
	return nil
}

// writeFiles saves every modified buffer that was opened from files.
func writeFiles(ed *editor.Editor, files []string, logger zerolog.Logger) error {
	for _, name := range files {
		buf, ok := ed.BufferByName(name)
		if !ok || !buf.Modified() {
			continue
		}
		perm := fs.FileMode(0o644)
		if info, err := os.Stat(name); err == nil {
			perm = info.Mode().Perm()
		}
		if err := os.WriteFile(name, []byte(buf.Export()), perm); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		buf.MarkSaved()
		logger.Info().Str("file", name).Msg("buffer written")
	}
	return nil
}

// printDiffs prints a unified diff from each file on disk to its buffer.
func printDiffs(ed *editor.Editor, files []string, w io.Writer) error {
	for _, name := range files {
		buf, ok := ed.BufferByName(name)
		if !ok || !buf.Modified() {
			continue
		}
		data, err := os.ReadFile(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", name, err)
		}
		disk := buffer.NewBufferFromString(string(data))
		if _, err := io.WriteString(w, disk.UnifiedDiff("a/"+name, "b/"+name, buf.Text())); err != nil {
			return err
		}
	}
	return nil
}
