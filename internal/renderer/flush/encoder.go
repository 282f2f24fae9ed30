package flush

import (
	"bytes"
	"strconv"

	"github.com/gdamore/tcell/v2/terminfo"

	"github.com/dshills/tessera/internal/renderer/buffer"
	"github.com/dshills/tessera/internal/renderer/core"
)

// Encoder builds the escape-sequence stream for one frame from a terminfo
// description. It tracks the terminal cursor and the active style so
// redundant moves and style changes are skipped.
type Encoder struct {
	profile Profile
	ti      *terminfo.Terminfo
	buf     bytes.Buffer
	width   int

	cx, cy int // -1 when unknown
	style  core.Style
}

// NewEncoder creates an encoder for the given color profile and terminal.
// A nil ti selects a generic ANSI terminal.
func NewEncoder(p Profile, ti *terminfo.Terminfo) *Encoder {
	if ti == nil {
		ti = ansiTerminal
	}
	return &Encoder{profile: p, ti: ti, cx: -1, cy: -1, style: core.DefaultStyle()}
}

// Profile returns the color profile.
func (e *Encoder) Profile() Profile { return e.profile }

// Terminal returns the terminfo description in use.
func (e *Encoder) Terminal() *terminfo.Terminfo { return e.ti }

// Begin starts a frame for a screen width columns wide. The cursor
// position is unknown at the start of every frame.
func (e *Encoder) Begin(width int) {
	e.buf.Reset()
	e.width = width
	e.cx, e.cy = -1, -1
	e.style = core.DefaultStyle()
}

// Clear erases the screen with the default style.
func (e *Encoder) Clear() {
	e.buf.WriteString(e.ti.AttrOff)
	e.buf.WriteString(e.ti.Clear)
	e.style = core.DefaultStyle()
	e.cx, e.cy = -1, -1
}

// MoveTo positions the cursor at column x, row y.
func (e *Encoder) MoveTo(x, y int) {
	if x == e.cx && y == e.cy {
		return
	}
	e.buf.WriteString(e.ti.TGoto(x, y))
	e.cx, e.cy = x, y
}

// SetStyle switches the active style.
func (e *Encoder) SetStyle(s core.Style) {
	if s.Equals(e.style) {
		return
	}
	e.buf.WriteString(e.sgr(s))
	e.style = s
}

// WriteRun writes a run of cells. A leading continuation cell belongs to
// a wide grapheme whose lead cell is unchanged and is skipped.
func (e *Encoder) WriteRun(r buffer.Run) {
	cells := r.Cells
	x := r.X
	for len(cells) > 0 && cells[0].IsContinuation() {
		cells = cells[1:]
		x++
	}
	if len(cells) == 0 {
		return
	}
	e.MoveTo(x, r.Y)
	e.SetStyle(r.Style)
	for i := range cells {
		e.buf.WriteString(cells[i].Grapheme)
	}
	e.cx = x + len(cells)
	if e.cx >= e.width {
		// Cursor is in the pending-wrap state at the last column.
		e.cx, e.cy = -1, -1
	}
}

// End resets the style so the terminal is left in a known state.
func (e *Encoder) End() {
	if !e.style.IsDefault() {
		e.buf.WriteString(e.ti.AttrOff)
		e.style = core.DefaultStyle()
	}
}

// Bytes returns the encoded frame. The slice is valid until the next Begin.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// Len returns the number of encoded bytes.
func (e *Encoder) Len() int { return e.buf.Len() }

// sgr returns the sequences selecting s from a reset state. Attributes the
// terminal has no sequence for are dropped.
func (e *Encoder) sgr(s core.Style) string {
	out := e.ti.AttrOff
	for _, a := range attrCaps {
		if s.Attributes.Has(a.attr) {
			out += a.seq(e.ti)
		}
	}
	if fg := e.profile.Convert(s.Foreground); !fg.Default {
		out += e.color(fg, false)
	}
	if bg := e.profile.Convert(s.Background); !bg.Default {
		out += e.color(bg, true)
	}
	return out
}

// attrCaps maps each attribute to its terminfo capability. Hidden has no
// terminfo capability and uses the ECMA-48 code.
var attrCaps = []struct {
	attr core.Attribute
	seq  func(*terminfo.Terminfo) string
}{
	{core.AttrBold, func(ti *terminfo.Terminfo) string { return ti.Bold }},
	{core.AttrDim, func(ti *terminfo.Terminfo) string { return ti.Dim }},
	{core.AttrItalic, func(ti *terminfo.Terminfo) string { return ti.Italic }},
	{core.AttrUnderline, func(ti *terminfo.Terminfo) string { return ti.Underline }},
	{core.AttrBlink, func(ti *terminfo.Terminfo) string { return ti.Blink }},
	{core.AttrReverse, func(ti *terminfo.Terminfo) string { return ti.Reverse }},
	{core.AttrHidden, func(*terminfo.Terminfo) string { return "\x1b[8m" }},
	{core.AttrStrikethrough, func(ti *terminfo.Terminfo) string { return ti.StrikeThrough }},
}

// color returns the sequence selecting c. Direct colors fall back to the
// ISO 8613-6 sequence when the terminal does not describe one.
func (e *Encoder) color(c core.Color, bg bool) string {
	if c.Indexed {
		if bg {
			return e.ti.TColor(-1, int(c.R))
		}
		return e.ti.TColor(int(c.R), -1)
	}
	tmpl, code := e.ti.SetFgRGB, "38"
	if bg {
		tmpl, code = e.ti.SetBgRGB, "48"
	}
	if tmpl != "" {
		return e.ti.TParm(tmpl, int(c.R), int(c.G), int(c.B))
	}
	return "\x1b[" + code + ";2;" + strconv.Itoa(int(c.R)) + ";" +
		strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B)) + "m"
}
