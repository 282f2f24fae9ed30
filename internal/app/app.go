// Package app runs a component tree against a terminal backend. It wires
// configuration, logging, the frame scheduler and input handling together
// and owns the UI goroutine.
package app

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/tessera/internal/config"
	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/pipeline"
	"github.com/dshills/tessera/internal/renderer/backend"
	"github.com/dshills/tessera/internal/renderer/flush"
)

// EventHandler receives input events on the UI goroutine. It reports
// whether it consumed the event.
type EventHandler interface {
	HandleEvent(ev backend.Event) bool
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ev backend.Event) bool

// HandleEvent calls f(ev).
func (f EventHandlerFunc) HandleEvent(ev backend.Event) bool { return f(ev) }

// Options configures the application.
type Options struct {
	// Backend is the terminal to draw on. Required.
	Backend backend.Backend

	// Config is the initial configuration. Defaults to config.Default().
	Config *config.Config

	// ConfigPath, when set, is watched and reloaded while running.
	ConfigPath string

	// Term names the terminal type, normally $TERM. Its terminfo entry
	// selects the escape sequences written; unknown or empty names get a
	// generic ANSI terminal.
	Term string

	// Logger defaults to a logger that discards everything.
	Logger *logging.Logger

	// Root is the initial root component.
	Root element.Component
}

// Application is the central coordinator. Everything that touches the
// component tree runs on the goroutine executing Run; other goroutines
// reach it through Post.
type Application struct {
	id      uuid.UUID
	backend backend.Backend
	sched   *pipeline.Scheduler
	logger  *logging.Logger

	configPath string
	cfgMu      sync.RWMutex
	cfg        *config.Config

	focus  EventHandler
	posted chan func()
	events chan backend.Event

	running  atomic.Bool
	quit     chan struct{}
	quitOnce sync.Once
	stopOnce sync.Once
}

// postQueue bounds functions waiting for the UI goroutine.
const postQueue = 64

// New creates an application. It does not touch the terminal until Run.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, &InitError{Component: "backend", Err: ErrNoBackend}
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	id := uuid.New()
	logger = logger.WithField("instance", id.String()[:8])
	logger.SetLevel(cfg.LogLevel())

	a := &Application{
		id:         id,
		backend:    opts.Backend,
		logger:     logger.WithComponent("app"),
		configPath: opts.ConfigPath,
		cfg:        cfg,
		posted:     make(chan func(), postQueue),
		events:     make(chan backend.Event, postQueue),
		quit:       make(chan struct{}),
	}
	a.sched = pipeline.NewScheduler(opts.Backend, pipeline.Options{
		MaxFPS:    cfg.Render.MaxFPS,
		Profile:   cfg.Profile(),
		Terminal:  flush.LookupTerminal(opts.Term),
		ShowStack: cfg.Debug.ShowStack,
		Logger:    logger.WithComponent("pipeline"),
	})
	if opts.Root != nil {
		a.sched.SetRoot(opts.Root)
	}
	return a, nil
}

// ID returns the instance id attached to every log line.
func (a *Application) ID() uuid.UUID { return a.id }

// Scheduler returns the frame scheduler.
func (a *Application) Scheduler() *pipeline.Scheduler { return a.sched }

// Config returns the configuration currently in effect.
func (a *Application) Config() *config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

// IsRunning reports whether Run is active.
func (a *Application) IsRunning() bool { return a.running.Load() }

// SetRoot replaces the root component. Call it on the UI goroutine or
// before Run.
func (a *Application) SetRoot(c element.Component) { a.sched.SetRoot(c) }

// SetFocus routes input events to h. Call it on the UI goroutine or before
// Run.
func (a *Application) SetFocus(h EventHandler) { a.focus = h }

// Post queues fn to run on the UI goroutine. It reports false once the
// application has quit.
func (a *Application) Post(fn func()) bool {
	select {
	case <-a.quit:
		return false
	default:
	}
	select {
	case a.posted <- fn:
		return true
	case <-a.quit:
		return false
	}
}

// Quit asks Run to return. It is safe from any goroutine.
func (a *Application) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Run initializes the backend and drives input and frames until Quit,
// Ctrl-C or cancellation of ctx. The terminal is restored before Run
// returns.
func (a *Application) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer a.stopBackend()

	w, h := a.backend.Size()
	a.sched.Resize(w, h)
	a.backend.OnResize(a.sched.Resize)

	if a.configPath != "" {
		watcher, err := config.NewWatcher(a.configPath,
			func(cfg *config.Config) { a.Post(func() { a.ApplyConfig(cfg) }) },
			config.WithLogger(a.logger.WithComponent("config")))
		if err != nil {
			a.logger.Warn("config watch disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	a.logger.Info("started %dx%d", w, h)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.pumpInput(gctx))
	g.Go(func() error {
		// Shutting the backend down unblocks PollEvent in the pump.
		defer a.stopBackend()
		return a.loop(gctx)
	})

	err := g.Wait()
	a.Quit()
	a.logStats()
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *Application) stopBackend() {
	a.stopOnce.Do(a.backend.Shutdown)
}

func (a *Application) pumpInput(ctx context.Context) func() error {
	return func() error {
		for {
			ev := a.backend.PollEvent()
			if ev.Type == backend.EventNone {
				// The backend is gone; nothing more can be drawn either.
				a.Quit()
				return nil
			}
			select {
			case a.events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (a *Application) loop(ctx context.Context) error {
	var throttle *time.Timer
	var throttleC <-chan time.Time
	defer func() {
		if throttle != nil {
			throttle.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-a.quit:
			return ErrQuit

		case ev := <-a.events:
			if err := a.handleEvent(ev); err != nil {
				return err
			}

		case fn := <-a.posted:
			if err := a.safely(fn); err != nil {
				return err
			}

		case <-a.sched.Frames():
			if throttleC != nil {
				continue
			}
			if d := a.sched.Delay(time.Now()); d > 0 {
				if throttle == nil {
					throttle = time.NewTimer(d)
				} else {
					throttle.Reset(d)
				}
				throttleC = throttle.C
				continue
			}
			if err := a.drawFrame(); err != nil {
				return err
			}

		case <-throttleC:
			throttleC = nil
			if err := a.drawFrame(); err != nil {
				return err
			}
		}
	}
}

func (a *Application) drawFrame() error {
	_, err := a.sched.DrawFrame()
	if errors.Is(err, pipeline.ErrNoRoot) {
		return nil
	}
	if err != nil {
		// A failed write or an aborted frame leaves the screen unknown; the
		// next frame redraws it in full.
		a.logger.Error("frame: %v", err)
	}
	return nil
}

func (a *Application) handleEvent(ev backend.Event) error {
	if ev.Type == backend.EventKey && ev.Key == backend.KeyCtrlC {
		return ErrQuit
	}
	if a.focus == nil {
		return nil
	}
	return a.safely(func() {
		if !a.focus.HandleEvent(ev) && a.logger.Enabled(logging.LevelDebug) {
			a.logger.Debug("unhandled %s", describe(ev))
		}
	})
}

// safely runs fn, turning a panic into an error that stops Run.
func (a *Application) safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			a.logger.Error("%v", err)
		}
	}()
	fn()
	return nil
}

// ApplyConfig switches to cfg. Log level, frame-rate cap, color profile and
// stack display change immediately; the alternate screen setting applies
// on the next start. Call it on the UI goroutine.
func (a *Application) ApplyConfig(cfg *config.Config) {
	a.cfgMu.Lock()
	prev := a.cfg
	a.cfg = cfg
	a.cfgMu.Unlock()

	a.logger.SetLevel(cfg.LogLevel())
	a.sched.SetMaxFPS(cfg.Render.MaxFPS)
	a.sched.SetProfile(cfg.Profile())
	a.sched.SetShowStack(cfg.Debug.ShowStack)
	if prev.Render.AltScreen != cfg.Render.AltScreen {
		a.logger.Info("alt_screen change takes effect on restart")
	}
	a.logger.Info("config applied: max_fps=%d profile=%s", cfg.Render.MaxFPS, cfg.Profile())
}

func (a *Application) logStats() {
	s := a.sched.Metrics().Snapshot()
	a.logger.WithFields(map[string]any{
		"drawn":   s.FramesDrawn,
		"skipped": s.FramesSkipped,
	}).Info("stopped, avg %.1f fps", s.AvgFPS())
}

func describe(ev backend.Event) string {
	switch ev.Type {
	case backend.EventKey:
		if ev.Key == backend.KeyRune {
			return "rune " + string(ev.Rune)
		}
		return "key " + ev.Key.String()
	case backend.EventResize:
		return "resize"
	default:
		return "event"
	}
}
