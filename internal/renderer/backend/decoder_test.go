package backend

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecoderFeed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Event
	}{
		{"printable", "ab", []Event{RuneEvent('a', 0), RuneEvent('b', 0)}},
		{"utf8", "世", []Event{RuneEvent('世', 0)}},
		{"enter", "\r", []Event{KeyEvent(KeyEnter, 0)}},
		{"tab", "\t", []Event{KeyEvent(KeyTab, 0)}},
		{"backspace", "\x7f", []Event{KeyEvent(KeyBackspace, 0)}},
		{"ctrl-c", "\x03", []Event{KeyEvent(KeyCtrlC, ModCtrl)}},
		{"ctrl-space", "\x00", []Event{KeyEvent(KeyCtrlSpace, ModCtrl)}},
		{"ctrl-backslash", "\x1c", []Event{RuneEvent('\\', ModCtrl)}},
		{"up", "\x1b[A", []Event{KeyEvent(KeyUp, 0)}},
		{"left g3", "\x1bOD", []Event{KeyEvent(KeyLeft, 0)}},
		{"ctrl-right", "\x1b[1;5C", []Event{KeyEvent(KeyRight, ModCtrl)}},
		{"shift-alt-down", "\x1b[1;4B", []Event{KeyEvent(KeyDown, ModShift|ModAlt)}},
		{"delete", "\x1b[3~", []Event{KeyEvent(KeyDelete, 0)}},
		{"page down", "\x1b[6~", []Event{KeyEvent(KeyPageDown, 0)}},
		{"alt-x", "\x1bx", []Event{RuneEvent('x', ModAlt)}},
		{"double escape", "\x1b\x1b[A", []Event{KeyEvent(KeyEscape, 0), KeyEvent(KeyUp, 0)}},
		{"unknown csi dropped", "\x1b[99zq", []Event{RuneEvent('q', 0)}},
		{"mixed", "a\x1b[Bb", []Event{RuneEvent('a', 0), KeyEvent(KeyDown, 0), RuneEvent('b', 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decoder
			got := d.Feed([]byte(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			if d.Pending() {
				t.Error("expected no pending input")
			}
		})
	}
}

func TestDecoderSplitInput(t *testing.T) {
	var d Decoder

	if evs := d.Feed([]byte("\x1b[1;")); len(evs) != 0 {
		t.Fatalf("expected no events for a partial sequence, got %v", evs)
	}
	if !d.Pending() {
		t.Fatal("expected pending input")
	}
	got := d.Feed([]byte("5A"))
	want := []Event{KeyEvent(KeyUp, ModCtrl)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	// A multi-byte rune split across reads.
	b := []byte("é")
	if evs := d.Feed(b[:1]); len(evs) != 0 {
		t.Fatalf("expected no events for a partial rune, got %v", evs)
	}
	got = d.Feed(b[1:])
	if diff := cmp.Diff([]Event{RuneEvent('é', 0)}, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderFlush(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Event
	}{
		{"lone escape", "\x1b", []Event{KeyEvent(KeyEscape, 0)}},
		{"alt bracket", "\x1b[", []Event{RuneEvent('[', ModAlt)}},
		{"alt O", "\x1bO", []Event{RuneEvent('O', ModAlt)}},
		{"truncated csi", "\x1b[12", nil},
		{"nothing", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decoder
			if evs := d.Feed([]byte(tt.input)); len(evs) != 0 {
				t.Fatalf("unexpected events before flush: %v", evs)
			}
			got := d.Flush()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			if d.Pending() {
				t.Error("flush should clear pending input")
			}
		})
	}
}
