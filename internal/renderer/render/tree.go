package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/renderer/canvas"
)

// NodeID is a handle to a node in a Tree. The zero value refers to no node.
// The low 32 bits hold the arena index plus one, the high 32 bits the slot
// generation, so handles to destroyed nodes never resolve to a reused slot.
type NodeID uint64

func makeID(index int, gen uint32) NodeID {
	return NodeID(uint64(gen)<<32 | uint64(index+1))
}

func (id NodeID) index() int   { return int(uint32(id)) - 1 }
func (id NodeID) gen() uint32  { return uint32(id >> 32) }
func (id NodeID) IsZero() bool { return id == 0 }

func (id NodeID) String() string {
	if id == 0 {
		return "none"
	}
	return fmt.Sprintf("#%d.%d", id.index(), id.gen())
}

// ChildModel is the number of children a node accepts.
type ChildModel uint8

const (
	// NoChildren is a leaf.
	NoChildren ChildModel = iota
	// SingleChild accepts at most one child.
	SingleChild
	// MultiChildren accepts an ordered list of children.
	MultiChildren
)

// Behavior supplies layout and paint for a node.
//
// PerformLayout must return a size within c; the tree clamps it otherwise.
// Children are laid out through lc and positioned with lc.SetChildOffset.
// Paint draws the node at offset and paints children through pc.
type Behavior interface {
	PerformLayout(lc *LayoutContext, c Constraints) Size
	Paint(pc *PaintContext, offset Offset)
}

// LayoutBoundary is implemented by behaviors whose size never depends on
// their children. Relayout of a descendant stops at such a node.
type LayoutBoundary interface {
	IsLayoutBoundary() bool
}

// RepaintBoundary is implemented by behaviors that paint into their own
// layer. Repaint of a descendant stops at such a node, and a clean boundary
// replays its last paint.
type RepaintBoundary interface {
	IsRepaintBoundary() bool
}

// Owner receives dirty nodes and visual update requests.
// Registration must be idempotent.
type Owner interface {
	AddNodeNeedingLayout(id NodeID)
	AddNodeNeedingPaint(id NodeID)
	RequestVisualUpdate()
}

type node struct {
	gen      uint32
	alive    bool
	behavior Behavior
	model    ChildModel
	parent   NodeID
	children []NodeID
	depth    int

	constraints    Constraints
	hasConstraints bool
	size           Size
	parentData     ParentData

	needsLayout bool
	needsPaint  bool
	err         error
	layer       *canvas.Recording
}

// Tree is an arena of render objects.
// A Tree is not safe for concurrent use; it belongs to the pipeline
// goroutine.
type Tree struct {
	nodes     []node
	free      []int
	live      int
	root      NodeID
	owner     Owner
	logger    *logging.Logger
	showStack bool
}

// NewTree creates an empty tree reporting to owner, which may be nil.
func NewTree(owner Owner) *Tree {
	return &Tree{owner: owner, logger: logging.Nop()}
}

// SetOwner sets the owner that receives dirty registrations.
func (t *Tree) SetOwner(o Owner) { t.owner = o }

// SetLogger sets the logger used to report layout and paint failures.
func (t *Tree) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	t.logger = l
}

// SetShowStack controls whether error boxes include stack traces.
func (t *Tree) SetShowStack(show bool) { t.showStack = show }

func (t *Tree) get(id NodeID) *node {
	i := id.index()
	if id == 0 || i < 0 || i >= len(t.nodes) {
		return nil
	}
	n := &t.nodes[i]
	if !n.alive || n.gen != id.gen() {
		return nil
	}
	return n
}

// Alive reports whether id refers to a live node.
func (t *Tree) Alive(id NodeID) bool { return t.get(id) != nil }

// Len returns the number of live nodes.
func (t *Tree) Len() int { return t.live }

// Create allocates a detached node. New nodes need layout and paint.
func (t *Tree) Create(b Behavior, model ChildModel) NodeID {
	var i int
	if n := len(t.free); n > 0 {
		i = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, node{})
		i = len(t.nodes) - 1
	}
	n := &t.nodes[i]
	n.gen++
	n.alive = true
	n.behavior = b
	n.model = model
	n.needsLayout = true
	n.needsPaint = true
	t.live++
	return makeID(i, n.gen)
}

// SetRoot makes a detached node the root of the tree.
func (t *Tree) SetRoot(id NodeID) error {
	n := t.get(id)
	if n == nil {
		return &NodeError{Node: id, Phase: "attach", Err: ErrDeadNode}
	}
	if n.parent != 0 {
		return &NodeError{Node: id, Phase: "attach", Err: ErrAttached}
	}
	t.root = id
	t.setDepth(id, 0)
	t.MarkNeedsLayout(id)
	return nil
}

// Root returns the root node.
func (t *Tree) Root() NodeID { return t.root }

// Insert attaches child to parent directly after the sibling after, or as
// the first child when after is zero.
func (t *Tree) Insert(parent, child, after NodeID) error {
	p, c := t.get(parent), t.get(child)
	if p == nil || c == nil {
		return &NodeError{Node: child, Phase: "attach", Err: ErrDeadNode}
	}
	if c.parent != 0 || child == t.root {
		return &NodeError{Node: child, Phase: "attach", Err: ErrAttached}
	}
	switch p.model {
	case NoChildren:
		return &NodeError{Node: parent, Phase: "attach", Err: ErrChildModel}
	case SingleChild:
		if len(p.children) > 0 {
			return &NodeError{Node: parent, Phase: "attach", Err: ErrChildModel}
		}
	}
	pos := 0
	if after != 0 {
		i := slices.Index(p.children, after)
		if i < 0 {
			return &NodeError{Node: after, Phase: "attach", Err: ErrNotChild}
		}
		pos = i + 1
	}
	p.children = slices.Insert(p.children, pos, child)
	c.parent = parent
	t.setDepth(child, p.depth+1)
	t.MarkNeedsLayout(parent)
	return nil
}

// Move repositions an attached child directly after the sibling after, or
// to the front when after is zero.
func (t *Tree) Move(parent, child, after NodeID) error {
	p, c := t.get(parent), t.get(child)
	if p == nil || c == nil {
		return &NodeError{Node: child, Phase: "move", Err: ErrDeadNode}
	}
	if c.parent != parent {
		return &NodeError{Node: child, Phase: "move", Err: ErrNotChild}
	}
	if after == child {
		return nil
	}
	i := slices.Index(p.children, child)
	p.children = slices.Delete(p.children, i, i+1)
	pos := 0
	if after != 0 {
		j := slices.Index(p.children, after)
		if j < 0 {
			p.children = slices.Insert(p.children, i, child)
			return &NodeError{Node: after, Phase: "move", Err: ErrNotChild}
		}
		pos = j + 1
	}
	p.children = slices.Insert(p.children, pos, child)
	if pos != i {
		t.MarkNeedsLayout(parent)
	}
	return nil
}

// Remove detaches child from parent without destroying it.
func (t *Tree) Remove(parent, child NodeID) error {
	p, c := t.get(parent), t.get(child)
	if p == nil || c == nil {
		return &NodeError{Node: child, Phase: "detach", Err: ErrDeadNode}
	}
	if c.parent != parent {
		return &NodeError{Node: child, Phase: "detach", Err: ErrNotChild}
	}
	i := slices.Index(p.children, child)
	p.children = slices.Delete(p.children, i, i+1)
	c.parent = 0
	t.MarkNeedsLayout(parent)
	return nil
}

// Destroy detaches a node and frees it together with its subtree.
// Destroying a dead handle is a no-op.
func (t *Tree) Destroy(id NodeID) {
	n := t.get(id)
	if n == nil {
		return
	}
	if n.parent != 0 {
		_ = t.Remove(n.parent, id)
	}
	if id == t.root {
		t.root = 0
	}
	t.free1(id)
}

func (t *Tree) free1(id NodeID) {
	n := t.get(id)
	if n == nil {
		return
	}
	children := n.children
	gen := n.gen
	t.nodes[id.index()] = node{gen: gen}
	t.free = append(t.free, id.index())
	t.live--
	for _, c := range children {
		t.free1(c)
	}
}

func (t *Tree) setDepth(id NodeID, depth int) {
	n := t.get(id)
	if n == nil {
		return
	}
	n.depth = depth
	for _, c := range n.children {
		t.setDepth(c, depth+1)
	}
}

// Parent returns the parent of id, or zero for the root and detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.get(id); n != nil {
		return n.parent
	}
	return 0
}

// Children returns a copy of the children of id in paint order.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.get(id); n != nil {
		return slices.Clone(n.children)
	}
	return nil
}

// Behavior returns the behavior of id.
func (t *Tree) Behavior(id NodeID) Behavior {
	if n := t.get(id); n != nil {
		return n.behavior
	}
	return nil
}

// SetBehavior replaces the behavior of id and marks it for layout.
func (t *Tree) SetBehavior(id NodeID, b Behavior) {
	if n := t.get(id); n != nil {
		n.behavior = b
		t.MarkNeedsLayout(id)
	}
}

// Size returns the size computed by the last layout of id.
func (t *Tree) Size(id NodeID) Size {
	if n := t.get(id); n != nil {
		return n.size
	}
	return Size{}
}

// Constraints returns the constraints of the last layout of id.
func (t *Tree) Constraints(id NodeID) (Constraints, bool) {
	if n := t.get(id); n != nil {
		return n.constraints, n.hasConstraints
	}
	return Constraints{}, false
}

// ParentData returns the parent data of id.
func (t *Tree) ParentData(id NodeID) ParentData {
	if n := t.get(id); n != nil {
		return n.parentData
	}
	return ParentData{}
}

// UpdateParentData applies fn to the parent data of id and reports whether
// the node exists. The caller decides whether the parent needs layout.
func (t *Tree) UpdateParentData(id NodeID, fn func(*ParentData)) bool {
	n := t.get(id)
	if n == nil {
		return false
	}
	fn(&n.parentData)
	return true
}

// Depth returns the distance of id from the root.
func (t *Tree) Depth(id NodeID) int {
	if n := t.get(id); n != nil {
		return n.depth
	}
	return 0
}

// NeedsLayout reports the layout dirty flag of id.
func (t *Tree) NeedsLayout(id NodeID) bool {
	n := t.get(id)
	return n != nil && n.needsLayout
}

// NeedsPaint reports the paint dirty flag of id.
func (t *Tree) NeedsPaint(id NodeID) bool {
	n := t.get(id)
	return n != nil && n.needsPaint
}

// Err returns the layout or paint failure recorded on id, if any.
// A failed node stays failed until it is destroyed.
func (t *Tree) Err(id NodeID) error {
	if n := t.get(id); n != nil {
		return n.err
	}
	return nil
}

// MarkNeedsLayout flags id for layout and propagates to its ancestors until
// a layout boundary or the root is reached. Every node visited is registered
// with the owner and a visual update is requested, whether or not the node
// was already dirty.
func (t *Tree) MarkNeedsLayout(id NodeID) {
	for id != 0 {
		n := t.get(id)
		if n == nil {
			return
		}
		n.needsLayout = true
		t.MarkNeedsPaint(id)
		if t.owner != nil {
			t.owner.AddNodeNeedingLayout(id)
			t.owner.RequestVisualUpdate()
		}
		if id == t.root || isLayoutBoundary(n.behavior) {
			return
		}
		id = n.parent
	}
}

// MarkNeedsPaint flags id for paint and propagates to its ancestors until a
// repaint boundary or the root is reached. Like MarkNeedsLayout it always
// registers and requests a visual update.
func (t *Tree) MarkNeedsPaint(id NodeID) {
	for id != 0 {
		n := t.get(id)
		if n == nil {
			return
		}
		n.needsPaint = true
		if t.owner != nil {
			t.owner.AddNodeNeedingPaint(id)
			t.owner.RequestVisualUpdate()
		}
		if id == t.root || isRepaintBoundary(n.behavior) {
			return
		}
		id = n.parent
	}
}

func isLayoutBoundary(b Behavior) bool {
	lb, ok := b.(LayoutBoundary)
	return ok && lb.IsLayoutBoundary()
}

func isRepaintBoundary(b Behavior) bool {
	rb, ok := b.(RepaintBoundary)
	return ok && rb.IsRepaintBoundary()
}

// Object returns a handle for id bound to t.
func (t *Tree) Object(id NodeID) Object {
	return Object{tree: t, id: id}
}

// Dump renders the subtree at id as an indented list of behaviors and sizes.
func (t *Tree) Dump(id NodeID) string {
	var sb strings.Builder
	var walk func(NodeID, int)
	walk = func(id NodeID, indent int) {
		n := t.get(id)
		if n == nil {
			return
		}
		fmt.Fprintf(&sb, "%s%T %dx%d @%d,%d", strings.Repeat("  ", indent), n.behavior,
			n.size.Width, n.size.Height, n.parentData.Offset.X, n.parentData.Offset.Y)
		if n.err != nil {
			sb.WriteString(" [error]")
		}
		sb.WriteByte('\n')
		for _, c := range n.children {
			walk(c, indent+1)
		}
	}
	walk(id, 0)
	return sb.String()
}

// Object is the handle through which components update the render object
// they own.
type Object struct {
	tree *Tree
	id   NodeID
}

// ID returns the node handle.
func (o Object) ID() NodeID { return o.id }

// Valid reports whether the node is alive.
func (o Object) Valid() bool { return o.tree != nil && o.tree.Alive(o.id) }

// Behavior returns the node's behavior.
func (o Object) Behavior() Behavior { return o.tree.Behavior(o.id) }

// SetBehavior replaces the node's behavior and marks it for layout.
func (o Object) SetBehavior(b Behavior) { o.tree.SetBehavior(o.id, b) }

// Size returns the node's last laid out size.
func (o Object) Size() Size { return o.tree.Size(o.id) }

// MarkNeedsLayout marks the node for layout.
func (o Object) MarkNeedsLayout() { o.tree.MarkNeedsLayout(o.id) }

// MarkNeedsPaint marks the node for paint.
func (o Object) MarkNeedsPaint() { o.tree.MarkNeedsPaint(o.id) }
