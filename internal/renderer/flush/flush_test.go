package flush

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/tessera/internal/renderer/buffer"
	"github.com/dshills/tessera/internal/renderer/core"
)

// countingWriter records each Write call.
type countingWriter struct {
	writes [][]byte
	err    error
}

func (w *countingWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.writes = append(w.writes, bytes.Clone(p))
	return len(p), nil
}

func TestFlushFirstFrameClears(t *testing.T) {
	w := &countingWriter{}
	f := New(w, TrueColor)

	buf := buffer.New(10, 2)
	buf.SetString(0, 0, "hi", core.DefaultStyle())

	st, err := f.Flush(buf)
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if !st.Full {
		t.Error("first flush should be a full redraw")
	}
	if len(w.writes) != 1 {
		t.Fatalf("expected 1 write, got %d", len(w.writes))
	}
	out := string(w.writes[0])
	if !strings.HasPrefix(out, "\033[0m\033[2J") {
		t.Errorf("expected clear screen prefix, got %q", out)
	}
	if !strings.Contains(out, "\033[1;1Hhi") {
		t.Errorf("expected cursor move and text, got %q", out)
	}
	if st.Cells != 2 {
		t.Errorf("expected 2 non-blank cells written, got %d", st.Cells)
	}
}

func TestFlushUnchangedFrameWritesNothing(t *testing.T) {
	w := &countingWriter{}
	f := New(w, TrueColor)

	frame := func() *buffer.Buffer {
		buf := buffer.New(10, 2)
		buf.SetString(0, 0, "hi", core.DefaultStyle())
		return buf
	}
	f.Flush(frame())

	st, err := f.Flush(frame())
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(w.writes) != 1 {
		t.Errorf("expected no write for an identical frame, got %d writes", len(w.writes))
	}
	if st.Cells != 0 || st.Bytes != 0 {
		t.Errorf("expected empty stats, got %+v", st)
	}
}

// 10% of an 80x24 screen changes: exactly those cells are written.
func TestFlushWritesOnlyChangedCells(t *testing.T) {
	w := &countingWriter{}
	f := New(w, TrueColor)

	dotted := func() *buffer.Buffer {
		buf := buffer.New(80, 24)
		for y := 0; y < 24; y++ {
			buf.SetString(0, y, strings.Repeat(".", 80), core.DefaultStyle())
		}
		return buf
	}
	f.Flush(dotted())

	cur := dotted()
	changed := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 8; x++ {
			cur.SetCell(x*10, y, core.NewCell("#"))
			changed++
		}
	}

	st, err := f.Flush(cur)
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if changed != 192 || st.Cells != 192 {
		t.Errorf("expected 192 changed cells, got %d", st.Cells)
	}
	out := string(w.writes[1])
	if n := strings.Count(out, "#"); n != 192 {
		t.Errorf("expected 192 cells on the wire, got %d", n)
	}
	if strings.Contains(out, ".") {
		t.Error("unchanged cells should not be written")
	}
	if st.Full {
		t.Error("same-size frame should not be a full redraw")
	}
}

func TestFlushSizeChangeRedraws(t *testing.T) {
	w := &countingWriter{}
	f := New(w, TrueColor)

	f.Flush(buffer.New(10, 2))
	st, _ := f.Flush(buffer.New(12, 3))
	if !st.Full {
		t.Error("size change should force a full redraw")
	}

	f.Invalidate()
	if f.Previous() != nil {
		t.Error("Invalidate should drop the retained frame")
	}
	st, _ = f.Flush(buffer.New(12, 3))
	if !st.Full {
		t.Error("flush after Invalidate should be a full redraw")
	}
}

func TestFlushSkipsRedundantMovesAndStyles(t *testing.T) {
	w := &countingWriter{}
	f := New(w, TrueColor)
	f.Flush(buffer.New(20, 1))

	red := core.DefaultStyle().WithForeground(core.ColorRed)
	cur := buffer.New(20, 1)
	cur.SetString(0, 0, "ab", red)
	cur.SetString(2, 0, "cd", core.DefaultStyle())
	cur.SetString(5, 0, "ef", red)

	f.Flush(cur)
	out := string(w.writes[1])

	want := "\033[1;1H\033[0m\033[38;2;255;0;0mab\033[0mcd\033[1;6H\033[0m\033[38;2;255;0;0mef\033[0m"
	if out != want {
		t.Errorf("expected\n%q\ngot\n%q", want, out)
	}
}

func TestFlushWriteError(t *testing.T) {
	w := &countingWriter{err: errors.New("broken pipe")}
	f := New(w, TrueColor)

	if _, err := f.Flush(buffer.New(4, 1)); err == nil {
		t.Fatal("expected error")
	}
	if f.Previous() != nil {
		t.Error("failed flush should not retain the frame")
	}
}

func TestFlushWideGraphemes(t *testing.T) {
	w := &countingWriter{}
	f := New(w, TrueColor)
	f.Flush(buffer.New(10, 1))

	cur := buffer.New(10, 1)
	cur.SetString(0, 0, "世界", core.DefaultStyle())
	st, _ := f.Flush(cur)

	if st.Cells != 4 {
		t.Errorf("expected 4 changed cells including continuations, got %d", st.Cells)
	}
	if got := string(w.writes[1]); got != "\033[1;1H世界" {
		t.Errorf("unexpected output %q", got)
	}
}
