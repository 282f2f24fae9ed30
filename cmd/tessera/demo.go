package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/tessera/internal/app"
	"github.com/dshills/tessera/internal/config"
	"github.com/dshills/tessera/internal/demo"
	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/renderer/backend"
)

// errNotTerminal is returned when stdout is redirected.
var errNotTerminal = errors.New("demo needs an interactive terminal")

type demoOptions struct {
	configPath string
	logLevel   string
	fps        int
	watch      bool
}

func newDemoCmd() *cobra.Command {
	var opts demoOptions
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive demo dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML or YAML config file")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.IntVar(&opts.fps, "fps", -1, "frame-rate cap, 0 for uncapped")
	f.BoolVar(&opts.watch, "watch", true, "reload the config file when it changes")
	return cmd
}

// loadConfig applies flags over the file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if f.Changed("log-level") {
		cfg.Logging.Level, _ = f.GetString("log-level")
	}
	if f.Changed("fps") {
		cfg.Render.MaxFPS, _ = f.GetInt("fps")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLog returns the configured log sink. Without a file, logs are
// discarded: the terminal belongs to the renderer.
func openLog(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Logging.File == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func runDemo(cmd *cobra.Command, opts demoOptions) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := logging.New(logging.Config{Level: cfg.LogLevel(), Output: out, Prefix: "tessera"})

	termName := os.Getenv("TERM")
	term, err := backend.NewTTY(termName, cfg.Render.AltScreen)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}

	ctrl := demo.NewController()
	appOpts := app.Options{
		Backend: term,
		Term:    termName,
		Config:  cfg,
		Logger:  logger,
		Root:    demo.Dashboard{Controller: ctrl},
	}
	if opts.watch {
		appOpts.ConfigPath = opts.configPath
	}
	application, err := app.New(appOpts)
	if err != nil {
		return err
	}
	ctrl.OnQuit = application.Quit
	application.SetFocus(ctrl)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go tick(ctx, application, ctrl)

	return application.Run(ctx)
}

// tick drives the dashboard clock from outside the UI goroutine.
func tick(ctx context.Context, a *app.Application, ctrl *demo.Controller) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		now := time.Now()
		if !a.Post(func() { ctrl.Tick(now) }) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
