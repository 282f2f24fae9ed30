package pipeline

import (
	"slices"

	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/renderer/buffer"
	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/render"
)

// maxLayoutPasses bounds FlushLayout when layout keeps dirtying nodes.
const maxLayoutPasses = 64

// Owner holds the render tree, the element tree's build owner and the
// deduplicated sets of render objects waiting for layout or paint.
//
// Owner is not safe for concurrent use; it belongs to the goroutine that
// draws frames.
type Owner struct {
	tree    *render.Tree
	build   *element.BuildOwner
	request func()
	logger  *logging.Logger

	needsLayout map[render.NodeID]struct{}
	needsPaint  map[render.NodeID]struct{}

	rootSize render.Size
	laidOut  bool
}

// NewOwner creates an owner whose marks call requestFrame.
func NewOwner(requestFrame func()) *Owner {
	if requestFrame == nil {
		requestFrame = func() {}
	}
	o := &Owner{
		request:     requestFrame,
		logger:      logging.Nop(),
		needsLayout: make(map[render.NodeID]struct{}),
		needsPaint:  make(map[render.NodeID]struct{}),
	}
	o.tree = render.NewTree(o)
	o.build = element.NewBuildOwner(o.tree, requestFrame)
	return o
}

// SetLogger sets the logger for the owner and both trees.
func (o *Owner) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	o.logger = l
	o.tree.SetLogger(l)
	o.build.SetLogger(l)
}

// Tree returns the render tree.
func (o *Owner) Tree() *render.Tree { return o.tree }

// BuildOwner returns the element tree's build owner.
func (o *Owner) BuildOwner() *element.BuildOwner { return o.build }

// SetRoot mounts c as the root component, or reconciles the existing root
// with it.
func (o *Owner) SetRoot(c element.Component) {
	o.build.SetRoot(c)
}

// AddNodeNeedingLayout registers id for the next layout flush.
func (o *Owner) AddNodeNeedingLayout(id render.NodeID) {
	o.needsLayout[id] = struct{}{}
}

// AddNodeNeedingPaint registers id for the next paint flush.
func (o *Owner) AddNodeNeedingPaint(id render.NodeID) {
	o.needsPaint[id] = struct{}{}
}

// RequestVisualUpdate asks for a frame.
func (o *Owner) RequestVisualUpdate() {
	o.request()
}

// LayoutPending returns the number of render objects waiting for layout.
func (o *Owner) LayoutPending() int { return len(o.needsLayout) }

// PaintPending returns the number of render objects waiting for paint.
func (o *Owner) PaintPending() int { return len(o.needsPaint) }

// HasWork reports whether any element or render object is dirty.
func (o *Owner) HasWork() bool {
	return o.build.HasDirty() || len(o.needsLayout) > 0 || len(o.needsPaint) > 0
}

// FlushBuild rebuilds dirty elements and returns how many were rebuilt.
func (o *Owner) FlushBuild() int {
	return o.build.BuildScope()
}

// FlushLayout lays out every dirty render object, shallowest first, and
// the root under tight constraints of size. Layout may dirty more nodes;
// the flush repeats until none remain. It returns the number of nodes
// laid out from the dirty set.
func (o *Owner) FlushLayout(size render.Size) int {
	root := o.tree.Root()
	if root == 0 {
		clear(o.needsLayout)
		return 0
	}
	rootConstraints := render.Tight(size)
	if !o.laidOut || size != o.rootSize {
		o.tree.Layout(root, rootConstraints)
		o.rootSize = size
		o.laidOut = true
	}

	count := 0
	for pass := 0; len(o.needsLayout) > 0; pass++ {
		if pass == maxLayoutPasses {
			o.logger.Warn("layout did not settle after %d passes; %d nodes still dirty", pass, len(o.needsLayout))
			clear(o.needsLayout)
			break
		}
		batch := make([]render.NodeID, 0, len(o.needsLayout))
		for id := range o.needsLayout {
			batch = append(batch, id)
		}
		clear(o.needsLayout)
		slices.SortFunc(batch, func(a, b render.NodeID) int {
			return o.tree.Depth(a) - o.tree.Depth(b)
		})

		for _, id := range batch {
			if !o.tree.NeedsLayout(id) {
				continue
			}
			if id == root {
				o.tree.Layout(root, rootConstraints)
				count++
				continue
			}
			if o.tree.Relayout(id) {
				count++
			}
		}
		// A node never laid out is its parent's responsibility; if the
		// root itself is still dirty, lay it out.
		if o.tree.NeedsLayout(root) {
			o.tree.Layout(root, rootConstraints)
			count++
		}
	}
	return count
}

// FlushPaint paints the tree into buf and clears the paint registry.
func (o *Owner) FlushPaint(buf *buffer.Buffer) {
	o.tree.Paint(canvas.New(buf))
	clear(o.needsPaint)
}
