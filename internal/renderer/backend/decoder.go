package backend

import "unicode/utf8"

// Decoder turns raw terminal input into key events. It understands
// printable UTF-8, control keys, Alt-prefixed keys and the CSI and G3
// sequences xterm-style terminals send for cursor and editing keys.
// Mouse and paste reporting are not decoded.
//
// Input may arrive split at any byte. Incomplete sequences stay pending
// until more input arrives or Flush is called.
type Decoder struct {
	buf []byte
}

// Feed appends p to the pending input and returns every complete event.
func (d *Decoder) Feed(p []byte) []Event {
	d.buf = append(d.buf, p...)
	var out []Event
	for len(d.buf) > 0 {
		ev, n := decodeOne(d.buf)
		if n == 0 {
			break
		}
		d.buf = d.buf[n:]
		if ev.Type != EventNone {
			out = append(out, ev)
		}
	}
	if len(d.buf) == 0 {
		d.buf = d.buf[:0:0]
	}
	return out
}

// Pending reports whether an incomplete sequence is buffered.
func (d *Decoder) Pending() bool { return len(d.buf) > 0 }

// Flush resolves buffered input that no further bytes will complete. A
// lone ESC becomes the Escape key; ESC [ and ESC O become Alt-[ and Alt-O;
// a truncated CSI sequence is dropped.
func (d *Decoder) Flush() []Event {
	b := d.buf
	d.buf = nil
	if len(b) == 0 {
		return nil
	}
	if b[0] != 0x1b {
		return []Event{RuneEvent(utf8.RuneError, ModNone)}
	}
	switch {
	case len(b) == 1:
		return []Event{KeyEvent(KeyEscape, ModNone)}
	case len(b) == 2 && (b[1] == '[' || b[1] == 'O'):
		return []Event{RuneEvent(rune(b[1]), ModAlt)}
	case b[1] == '[':
		return nil
	default:
		return []Event{KeyEvent(KeyEscape, ModNone)}
	}
}

// decodeOne decodes the event at the start of b and returns it with the
// number of bytes consumed. Zero bytes consumed means b is incomplete.
// Unknown sequences are consumed and returned as EventNone.
func decodeOne(b []byte) (Event, int) {
	if b[0] != 0x1b {
		return decodeKey(b)
	}
	if len(b) == 1 {
		return Event{}, 0
	}
	switch b[1] {
	case '[':
		return decodeCSI(b)
	case 'O':
		// G3 style function key sequence: exactly one more byte.
		if len(b) < 3 {
			return Event{}, 0
		}
		if k, ok := g3Seq[b[2]]; ok {
			return KeyEvent(k, ModNone), 3
		}
		return Event{}, 3
	case 0x1b:
		// ESC ESC: the first one is a plain Escape.
		return KeyEvent(KeyEscape, ModNone), 1
	default:
		// Something other than '[' or 'O' follows: an Alt-modified key.
		ev, n := decodeKey(b[1:])
		if n == 0 {
			return Event{}, 0
		}
		ev.Mod |= ModAlt
		return ev, n + 1
	}
}

func decodeKey(b []byte) (Event, int) {
	c := b[0]
	switch {
	case c == '\r' || c == '\n':
		return KeyEvent(KeyEnter, ModNone), 1
	case c == '\t':
		return KeyEvent(KeyTab, ModNone), 1
	case c == 0x7f || c == 0x08:
		return KeyEvent(KeyBackspace, ModNone), 1
	case c == 0x00:
		return KeyEvent(KeyCtrlSpace, ModCtrl), 1
	case c <= 0x1a:
		return KeyEvent(KeyCtrlA+Key(c-1), ModCtrl), 1
	case c < 0x20:
		// ^\ ^] ^^ ^_
		return RuneEvent(rune(c)+0x40, ModCtrl), 1
	}
	if !utf8.FullRune(b) {
		return Event{}, 0
	}
	r, n := utf8.DecodeRune(b)
	return RuneEvent(r, ModNone), n
}

// decodeCSI decodes ESC [ params final.
func decodeCSI(b []byte) (Event, int) {
	nums := make([]int, 0, 2)
	i := 2
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case c == ';':
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			nums = append(nums, 0)
		case '0' <= c && c <= '9':
			if len(nums) == 0 {
				nums = append(nums, 0)
			}
			nums[len(nums)-1] = nums[len(nums)-1]*10 + int(c-'0')
		case 0x40 <= c && c <= 0x7e:
			return parseCSI(nums, c), i + 1
		default:
			// Intermediate or private-marker bytes; not used by keys we
			// decode.
		}
	}
	return Event{}, 0
}

func parseCSI(nums []int, final byte) Event {
	var k Key
	if final == '~' {
		if len(nums) == 0 {
			return Event{}
		}
		var ok bool
		if k, ok = tildeSeq[nums[0]]; !ok {
			return Event{}
		}
	} else {
		var ok bool
		if k, ok = csiSeq[final]; !ok {
			return Event{}
		}
	}
	mod := ModNone
	if len(nums) >= 2 {
		mod = xtermModifier(nums[1])
	}
	return KeyEvent(k, mod)
}

// xtermModifier decodes the modifier parameter of sequences like
// ESC [ 1 ; 5 A (Ctrl-Up).
func xtermModifier(m int) ModMask {
	if m < 2 {
		return ModNone
	}
	m--
	mod := ModNone
	if m&1 != 0 {
		mod |= ModShift
	}
	if m&2 != 0 {
		mod |= ModAlt
	}
	if m&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

var g3Seq = map[byte]Key{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
}

var csiSeq = map[byte]Key{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
}

var tildeSeq = map[int]Key{
	1: KeyHome, 3: KeyDelete, 4: KeyEnd, 5: KeyPageUp, 6: KeyPageDown,
	7: KeyHome, 8: KeyEnd,
}
