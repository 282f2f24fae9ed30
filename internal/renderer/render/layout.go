package render

import "runtime/debug"

// LayoutContext is passed to Behavior.PerformLayout. It only gives access
// to the node being laid out and its direct children.
type LayoutContext struct {
	tree *Tree
	id   NodeID
}

// Node returns the node being laid out.
func (lc *LayoutContext) Node() NodeID { return lc.id }

// Children returns the node's children in paint order.
// The slice must not be modified.
func (lc *LayoutContext) Children() []NodeID {
	if n := lc.tree.get(lc.id); n != nil {
		return n.children
	}
	return nil
}

// ParentData returns the parent data of a child.
func (lc *LayoutContext) ParentData(child NodeID) ParentData {
	lc.mustBeChild(child)
	return lc.tree.ParentData(child)
}

// LayoutChild lays out a child under c and returns its size.
// Requesting layout of a node that is not a child panics with a *NodeError
// wrapping ErrNotChild, which fails the current node.
func (lc *LayoutContext) LayoutChild(child NodeID, c Constraints) Size {
	lc.mustBeChild(child)
	return lc.tree.layoutNode(child, c)
}

// SetChildOffset positions a child relative to this node's origin.
func (lc *LayoutContext) SetChildOffset(child NodeID, o Offset) {
	lc.mustBeChild(child)
	n := lc.tree.get(child)
	if n.parentData.Offset != o {
		n.parentData.Offset = o
		lc.tree.MarkNeedsPaint(lc.id)
	}
}

func (lc *LayoutContext) mustBeChild(child NodeID) {
	n := lc.tree.get(child)
	if n == nil || n.parent != lc.id {
		panic(&NodeError{Node: child, Phase: "layout", Err: ErrNotChild})
	}
}

// Layout lays out id under c and returns its size. Pipeline code uses it for
// the root; behaviors use LayoutContext.LayoutChild.
//
// A node that is clean and receives the constraints of its previous layout
// keeps its size without running PerformLayout.
func (t *Tree) Layout(id NodeID, c Constraints) Size {
	return t.layoutNode(id, c)
}

// Relayout lays out a dirty node again under the constraints of its previous
// layout. It reports false if the node is clean, dead or was never laid out,
// in which case its parent is responsible for it. If the node's size
// changes its parent is marked for layout.
func (t *Tree) Relayout(id NodeID) bool {
	n := t.get(id)
	if n == nil || !n.needsLayout || !n.hasConstraints {
		return false
	}
	before := n.size
	size := t.layoutNode(id, n.constraints)
	if size != before && id != t.root {
		if p := t.get(id); p != nil && p.parent != 0 {
			t.MarkNeedsLayout(p.parent)
		}
	}
	return true
}

func (t *Tree) layoutNode(id NodeID, c Constraints) Size {
	n := t.get(id)
	if n == nil {
		return Size{}
	}
	if !n.needsLayout && n.hasConstraints && n.constraints == c {
		return n.size
	}
	n.constraints, n.hasConstraints = c, true

	var size Size
	if n.err != nil {
		size = errorSize(c, n.err.Error())
	} else {
		var err error
		size, err = t.performLayout(id, n.behavior, c)
		if err != nil {
			t.logger.Warn("layout failed: %v", err)
			size = errorSize(c, err.Error())
			n = t.get(id)
			if n == nil {
				return Size{}
			}
			n.err = err
		}
	}

	// Behaviors may have grown the arena; refetch.
	n = t.get(id)
	if n == nil {
		return Size{}
	}
	n.size = c.Constrain(size)
	n.needsLayout = false
	t.MarkNeedsPaint(id)
	return n.size
}

func (t *Tree) performLayout(id NodeID, b Behavior, c Constraints) (size Size, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &NodeError{Node: id, Phase: "layout", Err: NewRecoveredPanicError(r, string(debug.Stack()))}
		}
	}()
	if b == nil {
		return c.Smallest(), nil
	}
	lc := &LayoutContext{tree: t, id: id}
	return b.PerformLayout(lc, c), nil
}
