//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package backend

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Timeout for the bytes of one escape sequence. Terminals send sequences
// in a single burst, so anything slower is a lone Escape.
var keySeqTimeout = 10 * time.Millisecond

// TTY implements Backend on the controlling terminal. tcell puts the
// device into raw mode, reports its size and signals resizes; everything
// written is passed through unchanged.
type TTY struct {
	tty       tcell.Tty
	caps      ttyCaps
	altScreen bool

	mu            sync.Mutex
	resizeHandler func(width, height int)

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewTTY opens /dev/tty for a terminal of type term, normally $TERM. With
// altScreen the alternate screen is used and the previous terminal contents
// are restored on Shutdown.
func NewTTY(term string, altScreen bool) (*TTY, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTTY, err)
	}
	return &TTY{
		tty:       tty,
		caps:      capsFor(term),
		altScreen: altScreen,
		events:    make(chan Event, 128),
		done:      make(chan struct{}),
	}, nil
}

func (t *TTY) Init() error {
	if err := t.tty.Start(); err != nil {
		return fmt.Errorf("start tty: %w", err)
	}

	var setup bytes.Buffer
	if t.altScreen {
		setup.WriteString(t.caps.enterCA)
	}
	setup.WriteString(t.caps.hideCursor)
	if _, err := t.tty.Write(setup.Bytes()); err != nil {
		_ = t.tty.Stop()
		return fmt.Errorf("setup tty: %w", err)
	}

	t.tty.NotifyResize(t.resized)
	go t.readLoop()
	return nil
}

func (t *TTY) Shutdown() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.tty.NotifyResize(nil)

		var restore bytes.Buffer
		restore.WriteString(t.caps.attrOff)
		restore.WriteString(t.caps.showCursor)
		if t.altScreen {
			restore.WriteString(t.caps.exitCA)
		}
		_, _ = t.tty.Write(restore.Bytes())

		_ = t.tty.Drain()
		_ = t.tty.Stop()
		_ = t.tty.Close()
	})
}

func (t *TTY) Size() (int, int) {
	ws, err := t.tty.WindowSize()
	if err != nil || ws.Width <= 0 || ws.Height <= 0 {
		return 80, 24
	}
	return ws.Width, ws.Height
}

func (t *TTY) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeHandler = callback
}

func (t *TTY) Write(p []byte) (int, error) {
	return t.tty.Write(p)
}

func (t *TTY) PollEvent() Event {
	select {
	case ev := <-t.events:
		return ev
	case <-t.done:
		return Event{}
	}
}

func (t *TTY) PostEvent(event Event) {
	select {
	case t.events <- event:
	default:
	}
}

func (t *TTY) resized() {
	w, h := t.Size()
	t.mu.Lock()
	handler := t.resizeHandler
	t.mu.Unlock()
	if handler != nil {
		handler(w, h)
	}
	t.PostEvent(Event{Type: EventResize, Width: w, Height: h})
}

// readLoop decodes input until Shutdown. Bytes are read on a separate
// goroutine so a pending escape sequence can time out.
func (t *TTY) readLoop() {
	chunks := make(chan []byte)
	go func() {
		defer close(chunks)
		buf := make([]byte, 256)
		for {
			n, err := t.tty.Read(buf)
			if n > 0 {
				select {
				case chunks <- bytes.Clone(buf[:n]):
				case <-t.done:
					return
				}
			}
			if err != nil {
				return
			}
			select {
			case <-t.done:
				return
			default:
			}
		}
	}()

	var dec Decoder
	var timeout <-chan time.Time
	for {
		select {
		case p, ok := <-chunks:
			if !ok {
				return
			}
			t.deliver(dec.Feed(p))
			timeout = nil
			if dec.Pending() {
				timeout = time.After(keySeqTimeout)
			}
		case <-timeout:
			t.deliver(dec.Flush())
			timeout = nil
		case <-t.done:
			return
		}
	}
}

func (t *TTY) deliver(evs []Event) {
	for _, ev := range evs {
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}
