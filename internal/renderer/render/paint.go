package render

import (
	"runtime/debug"

	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/core"
)

// PaintContext is passed to Behavior.Paint.
type PaintContext struct {
	tree *Tree
	id   NodeID

	// Canvas receives the node's cells. Coordinates are absolute.
	Canvas *canvas.Canvas
}

// Node returns the node being painted.
func (pc *PaintContext) Node() NodeID { return pc.id }

// Size returns the node's laid out size.
func (pc *PaintContext) Size() Size { return pc.tree.Size(pc.id) }

// Bounds returns the node's rectangle when painted at offset.
func (pc *PaintContext) Bounds(offset Offset) core.Rect {
	return offset.Rect(pc.Size())
}

// Children returns the node's children in paint order.
// The slice must not be modified.
func (pc *PaintContext) Children() []NodeID {
	if n := pc.tree.get(pc.id); n != nil {
		return n.children
	}
	return nil
}

// ShowStack reports whether error boxes should include stack traces.
func (pc *PaintContext) ShowStack() bool { return pc.tree.showStack }

// Clipped returns a context whose canvas is clipped to rect.
func (pc *PaintContext) Clipped(rect core.Rect) *PaintContext {
	return &PaintContext{tree: pc.tree, id: pc.id, Canvas: pc.Canvas.WithClip(rect)}
}

// PaintChild paints a child at offset plus the child's layout offset.
// offset is the origin of the node being painted.
func (pc *PaintContext) PaintChild(child NodeID, offset Offset) {
	n := pc.tree.get(child)
	if n == nil || n.parent != pc.id {
		panic(&NodeError{Node: child, Phase: "paint", Err: ErrNotChild})
	}
	pc.tree.paintNode(child, pc.Canvas, offset.Add(n.parentData.Offset))
}

// PaintChildren paints every child in order.
func (pc *PaintContext) PaintChildren(offset Offset) {
	for _, c := range pc.Children() {
		pc.PaintChild(c, offset)
	}
}

// Paint paints the whole tree from the root onto c.
func (t *Tree) Paint(c *canvas.Canvas) {
	if t.root == 0 {
		return
	}
	t.paintNode(t.root, c, Offset{})
}

func (t *Tree) paintNode(id NodeID, c *canvas.Canvas, offset Offset) {
	n := t.get(id)
	if n == nil || !n.hasConstraints {
		return
	}

	boundary := isRepaintBoundary(n.behavior)
	if boundary {
		if !n.needsPaint && n.layer != nil {
			n.layer.Replay(c, offset.X, offset.Y)
			return
		}
		if n.layer == nil {
			n.layer = &canvas.Recording{}
		}
		c = c.Record(n.layer, offset.X, offset.Y)
	}

	if n.err == nil {
		if err := t.performPaint(id, n.behavior, c, offset); err != nil {
			t.logger.Warn("paint failed: %v", err)
			if n = t.get(id); n == nil {
				return
			}
			n.err = err
		}
	}
	n = t.get(id)
	if n == nil {
		return
	}
	if n.err != nil {
		t.paintError(c, offset.Rect(n.size), n.err)
	}
	n.needsPaint = false
}

func (t *Tree) performPaint(id NodeID, b Behavior, c *canvas.Canvas, offset Offset) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &NodeError{Node: id, Phase: "paint", Err: NewRecoveredPanicError(r, string(debug.Stack()))}
		}
	}()
	if b == nil {
		return nil
	}
	b.Paint(&PaintContext{tree: t, id: id, Canvas: c}, offset)
	return nil
}

func (t *Tree) paintError(c *canvas.Canvas, rect core.Rect, err error) {
	stack := ""
	if t.showStack {
		stack = StackOf(err)
	}
	DrawError(c, rect, err.Error(), stack)
}
