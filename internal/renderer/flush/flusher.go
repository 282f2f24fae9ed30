package flush

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2/terminfo"

	"github.com/dshills/tessera/internal/renderer/buffer"
)

// Stats describes one flush.
type Stats struct {
	Cells int  // cells changed
	Runs  int  // runs written
	Bytes int  // bytes written
	Full  bool // screen was cleared and redrawn
}

// Flusher writes frames to a terminal. It retains the last frame written
// and sends only the cells that differ from it, in a single Write.
type Flusher struct {
	w    io.Writer
	enc  *Encoder
	prev *buffer.Buffer
}

// New creates a flusher writing to w with the given color profile for a
// generic ANSI terminal.
func New(w io.Writer, p Profile) *Flusher {
	return &Flusher{w: w, enc: NewEncoder(p, nil)}
}

// SetProfile changes the color profile. The next flush redraws the screen.
func (f *Flusher) SetProfile(p Profile) {
	if p == f.enc.Profile() {
		return
	}
	f.enc = NewEncoder(p, f.enc.Terminal())
	f.prev = nil
}

// SetTerminal switches the terminfo description used to encode frames.
// The next flush redraws the screen.
func (f *Flusher) SetTerminal(ti *terminfo.Terminfo) {
	if ti == f.enc.Terminal() {
		return
	}
	f.enc = NewEncoder(f.enc.Profile(), ti)
	f.prev = nil
}

// Profile returns the color profile.
func (f *Flusher) Profile() Profile { return f.enc.Profile() }

// Invalidate drops the retained frame so the next flush clears the screen
// and redraws everything.
func (f *Flusher) Invalidate() { f.prev = nil }

// Previous returns the retained frame, or nil.
func (f *Flusher) Previous() *buffer.Buffer { return f.prev }

// Flush writes cur and retains it for the next diff.
//
// With no retained frame, or one of a different size, the screen is
// cleared first; after a clear every blank default cell is already on
// screen, so only the remaining cells are written. When nothing changed
// nothing is written.
//
// cur must not be modified after Flush.
func (f *Flusher) Flush(cur *buffer.Buffer) (Stats, error) {
	var st Stats
	base := f.prev
	if base == nil || base.Width() != cur.Width() || base.Height() != cur.Height() {
		st.Full = true
		base = buffer.New(cur.Width(), cur.Height())
	}

	changes := buffer.Diff(base, cur)
	if !st.Full && len(changes) == 0 {
		f.prev = cur
		return st, nil
	}
	runs := buffer.Coalesce(changes)

	f.enc.Begin(cur.Width())
	if st.Full {
		f.enc.Clear()
	}
	for _, r := range runs {
		f.enc.WriteRun(r)
	}
	f.enc.End()

	n, err := f.w.Write(f.enc.Bytes())
	st.Cells, st.Runs, st.Bytes = len(changes), len(runs), n
	if err != nil {
		// The terminal state is unknown; start over next frame.
		f.prev = nil
		return st, fmt.Errorf("flush: %w", err)
	}
	f.prev = cur
	return st, nil
}
