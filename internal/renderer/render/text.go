package render

import (
	"strings"

	"github.com/dshills/tessera/internal/renderer/core"
)

// Text lays out and paints a styled string. Lines are split at newlines and,
// when Wrap is set and the width is bounded, word-wrapped to the width.
type Text struct {
	Content string
	Style   core.Style
	Wrap    bool
	Align   Align

	lines []string
}

// PerformLayout measures the text.
func (t *Text) PerformLayout(_ *LayoutContext, c Constraints) Size {
	width := -1
	if t.Wrap && c.HasBoundedWidth() {
		width = c.MaxWidth
	}
	t.lines = WrapText(t.Content, width)
	w := 0
	for _, l := range t.lines {
		w = max(w, core.StringWidth(l))
	}
	return c.Constrain(Size{Width: w, Height: len(t.lines)})
}

// Paint draws the measured lines clipped to the node's size.
func (t *Text) Paint(pc *PaintContext, offset Offset) {
	size := pc.Size()
	for i, line := range t.lines {
		if i >= size.Height {
			break
		}
		dx := t.Align.place(size.Width - core.StringWidth(line))
		pc.Canvas.DrawTextClipped(offset.X+dx, offset.Y+i, line, size.Width-dx, t.Style)
	}
}

// WrapText splits s into lines. With a positive width, lines are broken at
// spaces so that none is wider than width; words longer than width are
// broken between graphemes. A negative width only splits at newlines.
func WrapText(s string, width int) []string {
	paras := strings.Split(s, "\n")
	if width < 0 {
		return paras
	}
	if width == 0 {
		return nil
	}
	var out []string
	for _, p := range paras {
		out = append(out, wrapLine(p, width)...)
	}
	return out
}

func wrapLine(p string, width int) []string {
	if core.StringWidth(p) <= width {
		return []string{p}
	}
	var lines []string
	var cur strings.Builder
	curW := 0
	flush := func() {
		lines = append(lines, strings.TrimRight(cur.String(), " "))
		cur.Reset()
		curW = 0
	}
	for _, word := range strings.SplitAfter(p, " ") {
		ww := core.StringWidth(strings.TrimRight(word, " "))
		if curW > 0 && curW+ww > width {
			flush()
		}
		if ww > width {
			core.Graphemes(word, func(g string, w int) {
				if curW+w > width {
					flush()
				}
				cur.WriteString(g)
				curW += w
			})
			continue
		}
		cur.WriteString(word)
		curW += core.StringWidth(word)
	}
	if cur.Len() > 0 {
		flush()
	}
	return lines
}
