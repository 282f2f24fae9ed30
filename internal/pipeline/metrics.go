package pipeline

import (
	"sync/atomic"
	"time"
)

// Metrics tracks frame statistics. It is safe for concurrent use.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64
	skipped      atomic.Uint64

	// Phase timing
	buildNs  atomic.Int64
	layoutNs atomic.Int64
	paintNs  atomic.Int64
	flushNs  atomic.Int64

	// Output
	cells       atomic.Uint64
	bytes       atomic.Uint64
	fullRedraws atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// FrameTiming is the duration of each phase of one frame.
type FrameTiming struct {
	Build, Layout, Paint, Flush time.Duration
}

// Total returns the duration of the whole frame.
func (t FrameTiming) Total() time.Duration {
	return t.Build + t.Layout + t.Paint + t.Flush
}

// RecordFrame records a drawn frame.
func (m *Metrics) RecordFrame(t FrameTiming, cells, bytes int, full bool) {
	ns := t.Total().Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)
	m.buildNs.Add(t.Build.Nanoseconds())
	m.layoutNs.Add(t.Layout.Nanoseconds())
	m.paintNs.Add(t.Paint.Nanoseconds())
	m.flushNs.Add(t.Flush.Nanoseconds())
	m.cells.Add(uint64(cells))
	m.bytes.Add(uint64(bytes))
	if full {
		m.fullRedraws.Add(1)
	}

	// Update min (atomic compare-and-swap loop)
	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordSkipped records a frame that had nothing to draw.
func (m *Metrics) RecordSkipped() {
	m.skipped.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frames := m.frameCount.Load()

	avg := func(total int64) time.Duration {
		if frames == 0 {
			return 0
		}
		return time.Duration(total / int64(frames))
	}

	minNs := m.frameMinNs.Load()
	if minNs == 1<<63-1 {
		minNs = 0
	}

	return MetricsSnapshot{
		Uptime:        time.Since(m.startTime),
		FramesDrawn:   frames,
		FramesSkipped: m.skipped.Load(),
		FullRedraws:   m.fullRedraws.Load(),
		AvgFrame:      avg(m.frameTotalNs.Load()),
		MinFrame:      time.Duration(minNs),
		MaxFrame:      time.Duration(m.frameMaxNs.Load()),
		LastFrame:     time.Duration(m.lastFrameNs.Load()),
		AvgBuild:      avg(m.buildNs.Load()),
		AvgLayout:     avg(m.layoutNs.Load()),
		AvgPaint:      avg(m.paintNs.Load()),
		AvgFlush:      avg(m.flushNs.Load()),
		CellsWritten:  m.cells.Load(),
		BytesWritten:  m.bytes.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotalNs.Store(0)
	m.frameMinNs.Store(1<<63 - 1)
	m.frameMaxNs.Store(0)
	m.lastFrameNs.Store(0)
	m.skipped.Store(0)
	m.buildNs.Store(0)
	m.layoutNs.Store(0)
	m.paintNs.Store(0)
	m.flushNs.Store(0)
	m.cells.Store(0)
	m.bytes.Store(0)
	m.fullRedraws.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	FramesDrawn   uint64
	FramesSkipped uint64
	FullRedraws   uint64
	AvgFrame      time.Duration
	MinFrame      time.Duration
	MaxFrame      time.Duration
	LastFrame     time.Duration
	AvgBuild      time.Duration
	AvgLayout     time.Duration
	AvgPaint      time.Duration
	AvgFlush      time.Duration
	CellsWritten  uint64
	BytesWritten  uint64
}

// AvgFPS returns the frame rate the average frame time would sustain.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrame == 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgFrame)
}

// SkipRate returns the percentage of requested frames that were skipped.
func (s MetricsSnapshot) SkipRate() float64 {
	total := s.FramesDrawn + s.FramesSkipped
	if total == 0 {
		return 0
	}
	return float64(s.FramesSkipped) / float64(total) * 100
}
