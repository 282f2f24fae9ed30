package render

import (
	"slices"

	"github.com/dshills/tessera/internal/renderer/buffer"
	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/core"
)

// recordingOwner records dirty registrations and visual update requests.
type recordingOwner struct {
	layout   []NodeID
	paint    []NodeID
	requests int
}

func (o *recordingOwner) AddNodeNeedingLayout(id NodeID) {
	if !slices.Contains(o.layout, id) {
		o.layout = append(o.layout, id)
	}
}

func (o *recordingOwner) AddNodeNeedingPaint(id NodeID) {
	if !slices.Contains(o.paint, id) {
		o.paint = append(o.paint, id)
	}
}

func (o *recordingOwner) RequestVisualUpdate() { o.requests++ }

// flushLayout processes registered nodes shallowest first, as the pipeline
// does.
func (o *recordingOwner) flushLayout(t *Tree) {
	for len(o.layout) > 0 {
		dirty := o.layout
		o.layout = nil
		slices.SortFunc(dirty, func(a, b NodeID) int { return t.Depth(a) - t.Depth(b) })
		for _, id := range dirty {
			t.Relayout(id)
		}
	}
}

func (o *recordingOwner) flushPaint(t *Tree, w, h int) *buffer.Buffer {
	buf := buffer.New(w, h)
	t.Paint(canvas.New(buf))
	o.paint = nil
	return buf
}

// fake is a configurable behavior that counts its calls.
type fake struct {
	size        Size
	text        string
	layouts     int
	paints      int
	panicLayout bool
	panicPaint  bool
	layoutOther NodeID
}

func (p *fake) PerformLayout(lc *LayoutContext, c Constraints) Size {
	p.layouts++
	if p.panicLayout {
		panic("layout boom")
	}
	if p.layoutOther != 0 {
		lc.LayoutChild(p.layoutOther, c)
	}
	y := 0
	for _, child := range lc.Children() {
		s := lc.LayoutChild(child, c.Loosen())
		lc.SetChildOffset(child, Offset{Y: y})
		y += s.Height
	}
	return p.size
}

func (p *fake) Paint(pc *PaintContext, offset Offset) {
	p.paints++
	if p.panicPaint {
		panic("paint boom")
	}
	if p.text != "" {
		pc.Canvas.DrawText(offset.X, offset.Y, p.text, core.DefaultStyle())
	}
	pc.PaintChildren(offset)
}

type layerFake struct{ *fake }

func (layerFake) IsRepaintBoundary() bool { return true }

type fixedFake struct{ *fake }

func (fixedFake) IsLayoutBoundary() bool { return true }

// chain builds a root and depth-1 descendants, each the only child of the
// previous one.
func chain(t *Tree, depth int) []NodeID {
	ids := make([]NodeID, depth)
	for i := range ids {
		ids[i] = t.Create(&fake{size: Size{10, 1}}, SingleChild)
		if i == 0 {
			_ = t.SetRoot(ids[i])
			continue
		}
		_ = t.Insert(ids[i-1], ids[i], 0)
	}
	return ids
}
