package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/vstack/internal/config"
	"github.com/dshills/vstack/internal/items"
	"github.com/dshills/vstack/internal/logging"
	"github.com/dshills/vstack/internal/template"
	"github.com/dshills/vstack/internal/term"
)

// entry is one generated list item.
type entry struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Size  int    `json:"size"`
}

type runOptions struct {
	configPath   string
	templatePath string
	count        int
	mode         string
	logLevel     string
	logFile      string
	watch        bool

	// set records which override flags were given.
	set map[string]bool

	lookup config.LookupFunc
}

func runCmd() *cobra.Command {
	o := runOptions{set: map[string]bool{}}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Browse a generated list in the terminal",
		Long: `run opens a virtualized list of generated items. Use the arrow keys,
j/k, PgUp/PgDn and Home/End to scroll; q or Esc quits.

Settings come from the configuration file, then VSTACK_* environment
variables, then flags. The configuration file is watched and re-applied
when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range []string{"mode", "log-level"} {
				o.set[name] = cmd.Flags().Changed(name)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return o.run(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "Path to configuration file")
	f.StringVarP(&o.templatePath, "template", "t", "", "Lua script defining render(item, index)")
	f.IntVarP(&o.count, "count", "n", 10000, "Number of generated items")
	f.StringVar(&o.mode, "mode", "", "Auto update mode (manual, viewport-resize, auto)")
	f.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&o.logFile, "log-file", "", "Write logs to this file (discarded if empty)")
	f.BoolVar(&o.watch, "watch", true, "Re-apply the configuration file when it changes")
	return cmd
}

// loadConfig layers the configuration file, the environment and the flags.
func (o *runOptions) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	return o.overlay(cfg)
}

// overlay applies the environment and flag layers over cfg.
func (o *runOptions) overlay(cfg config.Config) (config.Config, error) {
	cfg, err := config.ApplyEnv(cfg, o.lookup)
	if err != nil {
		return cfg, err
	}
	if o.set["mode"] {
		if err := cfg.Set("auto-update-mode", o.mode); err != nil {
			return cfg, err
		}
	}
	if o.set["log-level"] {
		if !logging.ValidLevel(o.logLevel) {
			return cfg, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", o.logLevel)
		}
		if err := cfg.Set("logging.level", o.logLevel); err != nil {
			return cfg, err
		}
	}
	return cfg.Normalize(), nil
}

func (o *runOptions) template() (template.Template, func(), error) {
	if o.templatePath == "" {
		return template.Func(renderEntry), func() {}, nil
	}
	lt, err := template.LoadLua(o.templatePath)
	if err != nil {
		return nil, nil, err
	}
	return lt, func() { _ = lt.Close() }, nil
}

func (o *runOptions) logger(cfg config.Config) (*logging.Logger, func(), error) {
	var out io.Writer = io.Discard
	closeFn := func() {}
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: out,
		Prefix: "vstack",
	})
	return log, closeFn, nil
}

// build assembles the application on screen. The returned cleanup releases
// everything build opened.
func (o *runOptions) build(screen tcell.Screen) (*term.App[entry], func(), error) {
	if o.count < 0 {
		return nil, nil, fmt.Errorf("--count must not be negative, got %d", o.count)
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	log, closeLog, err := o.logger(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanups = append(cleanups, closeLog)

	tmpl, closeTmpl, err := o.template()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cleanups = append(cleanups, closeTmpl)

	app, err := term.NewApp(term.AppOptions[entry]{
		Config:   cfg,
		Items:    generate(o.count),
		Template: tmpl,
		Screen:   screen,
		Logger:   log,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	if o.watch && o.configPath != "" {
		w, err := config.NewWatcher(o.configPath, func(next config.Config, err error) {
			if err == nil {
				next, err = o.overlay(next)
			}
			if err != nil {
				log.Warn("configuration reload failed: %v", err)
				return
			}
			log.SetLevel(logging.ParseLevel(next.Logging.Level))
			app.Apply(next)
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = w.Close() })
	}

	log.Info("starting with %d items, mode %s", o.count, cfg.AutoUpdateMode)
	return app, cleanup, nil
}

func (o *runOptions) run(ctx context.Context) error {
	app, cleanup, err := o.build(nil)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run(ctx)
}

func generate(n int) *items.List[entry] {
	list := items.NewList[entry]()
	batch := make([]entry, n)
	for i := range batch {
		batch[i] = entry{Index: i, Title: fmt.Sprintf("item %05d", i), Size: (i*7919 + 13) % 10000}
	}
	return list.Append(batch...)
}

func renderEntry(item any, index int) (string, error) {
	e, ok := item.(entry)
	if !ok {
		return "", fmt.Errorf("unexpected item %T at %d", item, index)
	}
	return fmt.Sprintf("%6d  %-12s %5d", e.Index, e.Title, e.Size), nil
}
