package pipeline

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2/terminfo"

	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/renderer/backend"
	"github.com/dshills/tessera/internal/renderer/buffer"
	"github.com/dshills/tessera/internal/renderer/flush"
	"github.com/dshills/tessera/internal/renderer/render"
)

// ErrNoRoot indicates DrawFrame was called before a root component was set.
var ErrNoRoot = errors.New("no root component")

// ErrFrameAborted indicates a panic escaped a frame phase. The frame is
// dropped and the next one redraws the whole screen.
var ErrFrameAborted = errors.New("frame aborted")

// Options configures a Scheduler.
type Options struct {
	// MaxFPS caps the frame rate. Zero or less means uncapped.
	MaxFPS int

	// Profile is the output color profile.
	Profile flush.Profile

	// Terminal selects the escape sequences written. Nil uses a generic
	// ANSI terminal.
	Terminal *terminfo.Terminfo

	// ShowStack includes stack traces in error boxes.
	ShowStack bool

	Logger  *logging.Logger
	Metrics *Metrics
}

// FrameStats describes one DrawFrame call.
type FrameStats struct {
	Skipped  bool
	Built    int
	LaidOut  int
	Timing   FrameTiming
	Flush    flush.Stats
	Size     render.Size
	Resized  bool
	Sequence uint64
}

// Scheduler runs frames for one terminal.
//
// RequestVisualUpdate and Resize are safe from any goroutine. Everything
// else, including DrawFrame, belongs to the goroutine that owns the
// pipeline.
type Scheduler struct {
	backend backend.Backend
	owner   *Owner
	flusher *flush.Flusher
	logger  *logging.Logger
	metrics *Metrics

	frames  chan struct{}
	inFrame atomic.Bool

	mu         sync.Mutex
	size       render.Size
	resized    bool
	minFrame   time.Duration
	lastFrame  time.Time
	frameCount uint64
}

// NewScheduler creates a scheduler drawing to b.
func NewScheduler(b backend.Backend, opts Options) *Scheduler {
	s := &Scheduler{
		backend: b,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		frames:  make(chan struct{}, 1),
		resized: true,
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	w, h := b.Size()
	s.size = render.Size{Width: w, Height: h}
	s.minFrame = frameInterval(opts.MaxFPS)

	s.owner = NewOwner(s.RequestVisualUpdate)
	s.owner.SetLogger(s.logger)
	s.owner.Tree().SetShowStack(opts.ShowStack)
	s.flusher = flush.New(b, opts.Profile)
	if opts.Terminal != nil {
		s.flusher.SetTerminal(opts.Terminal)
	}
	return s
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Owner returns the pipeline owner.
func (s *Scheduler) Owner() *Owner { return s.owner }

// Metrics returns the frame metrics.
func (s *Scheduler) Metrics() *Metrics { return s.metrics }

// SetRoot mounts or replaces the root component.
func (s *Scheduler) SetRoot(c element.Component) {
	s.owner.SetRoot(c)
	s.RequestVisualUpdate()
}

// Frames delivers a value when a frame has been requested. At most one
// request is pending at a time.
func (s *Scheduler) Frames() <-chan struct{} { return s.frames }

// RequestVisualUpdate schedules a frame. Requests made while a frame is
// pending, or from inside a frame, are coalesced into one.
func (s *Scheduler) RequestVisualUpdate() {
	if s.inFrame.Load() {
		return
	}
	select {
	case s.frames <- struct{}{}:
	default:
	}
}

// Resize records a new terminal size and schedules a frame.
func (s *Scheduler) Resize(width, height int) {
	s.mu.Lock()
	s.size = render.Size{Width: width, Height: height}
	s.resized = true
	s.mu.Unlock()
	s.RequestVisualUpdate()
}

// Size returns the terminal size used for the next frame.
func (s *Scheduler) Size() render.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// SetMaxFPS changes the frame-rate cap.
func (s *Scheduler) SetMaxFPS(fps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minFrame = frameInterval(fps)
}

// SetProfile changes the color profile; the next frame redraws the screen.
func (s *Scheduler) SetProfile(p flush.Profile) {
	if p == s.flusher.Profile() {
		return
	}
	s.flusher.SetProfile(p)
	s.RequestVisualUpdate()
}

// SetShowStack toggles stack traces in error boxes for nodes painted from
// now on.
func (s *Scheduler) SetShowStack(show bool) {
	s.owner.Tree().SetShowStack(show)
}

// Delay returns how long to wait before the next frame may be drawn under
// the frame-rate cap.
func (s *Scheduler) Delay(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.minFrame == 0 || s.lastFrame.IsZero() {
		return 0
	}
	if d := s.minFrame - now.Sub(s.lastFrame); d > 0 {
		return d
	}
	return 0
}

// DrawFrame runs one frame. If nothing is dirty, no resize is pending and
// a previous frame is on screen, nothing is painted or written.
func (s *Scheduler) DrawFrame() (FrameStats, error) {
	if s.owner.Tree().Root() == 0 {
		return FrameStats{Skipped: true}, ErrNoRoot
	}

	s.mu.Lock()
	size, resized := s.size, s.resized
	s.resized = false
	s.mu.Unlock()

	if !resized && !s.owner.HasWork() && s.flusher.Previous() != nil {
		s.metrics.RecordSkipped()
		return FrameStats{Skipped: true, Size: size}, nil
	}

	st := FrameStats{Size: size, Resized: resized}
	fs, t, err := s.runPhases(&st, size, resized)
	if errors.Is(err, ErrFrameAborted) {
		return FrameStats{Skipped: true, Size: size}, err
	}

	st.Flush = fs
	st.Timing = FrameTiming{
		Build:  t[1].Sub(t[0]),
		Layout: t[2].Sub(t[1]),
		Paint:  t[3].Sub(t[2]),
		Flush:  t[4].Sub(t[3]),
	}

	s.mu.Lock()
	s.lastFrame = t[4]
	s.frameCount++
	st.Sequence = s.frameCount
	pending := s.resized
	s.mu.Unlock()

	s.metrics.RecordFrame(st.Timing, fs.Cells, fs.Bytes, fs.Full)
	if s.logger.Enabled(logging.LevelDebug) {
		s.logger.WithFields(map[string]any{
			"frame": st.Sequence,
			"built": st.Built,
			"cells": fs.Cells,
			"bytes": fs.Bytes,
		}).Debug("frame drawn in %s", st.Timing.Total())
	}

	// Work left over (or a resize that arrived mid-frame) needs another
	// frame; marks made during this one were not forwarded.
	if pending || s.owner.HasWork() {
		s.RequestVisualUpdate()
	}
	return st, err
}

// runPhases builds, lays out, paints and flushes. A panic from any phase is
// returned as ErrFrameAborted and leaves the scheduler able to run frames.
func (s *Scheduler) runPhases(st *FrameStats, size render.Size, resized bool) (fs flush.Stats, t [5]time.Time, err error) {
	s.inFrame.Store(true)
	defer s.inFrame.Store(false)
	defer func() {
		if r := recover(); r != nil {
			s.flusher.Invalidate()
			err = fmt.Errorf("%w: %w", ErrFrameAborted, render.NewRecoveredPanicError(r, string(debug.Stack())))
		}
	}()

	if resized {
		s.flusher.Invalidate()
	}
	t[0] = time.Now()
	st.Built = s.owner.FlushBuild()
	t[1] = time.Now()
	st.LaidOut = s.owner.FlushLayout(size)
	t[2] = time.Now()
	buf := buffer.New(size.Width, size.Height)
	s.owner.FlushPaint(buf)
	t[3] = time.Now()
	fs, err = s.flusher.Flush(buf)
	t[4] = time.Now()
	return fs, t, err
}
