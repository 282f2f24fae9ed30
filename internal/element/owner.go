package element

import (
	"slices"

	"github.com/dshills/tessera/internal/logging"
	"github.com/dshills/tessera/internal/renderer/render"
)

// rootComponent is the component of the root element.
type rootComponent struct{}

func (rootComponent) Key() Key { return Key{} }

// BuildOwner tracks dirty elements and rebuilds them in depth order. It also
// owns the root element, whose render object is the root of the render
// tree.
//
// A BuildOwner belongs to the pipeline goroutine.
type BuildOwner struct {
	tree         *render.Tree
	logger       *logging.Logger
	requestFrame func()
	root         *Element
	dirty        []*Element
}

// NewBuildOwner creates an owner that builds render objects into tree and
// calls requestFrame whenever an element becomes dirty.
func NewBuildOwner(tree *render.Tree, requestFrame func()) *BuildOwner {
	if requestFrame == nil {
		requestFrame = func() {}
	}
	return &BuildOwner{
		tree:         tree,
		logger:       logging.Nop(),
		requestFrame: requestFrame,
	}
}

// SetLogger sets the logger used for build failures.
func (o *BuildOwner) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	o.logger = l
}

// Tree returns the render tree.
func (o *BuildOwner) Tree() *render.Tree { return o.tree }

// Root returns the root element, or nil before Mount.
func (o *BuildOwner) Root() *Element { return o.root }

// Mount creates the root element with c as its only child. The root owns a
// render.View, which becomes the root of the render tree.
func (o *BuildOwner) Mount(c Component) *Element {
	if o.root != nil {
		o.SetRoot(c)
		return o.root
	}
	root := &Element{
		kind:      KindRoot,
		owner:     o,
		component: rootComponent{},
		lifecycle: Active,
	}
	root.node = o.tree.Create(&render.View{}, render.SingleChild)
	if err := o.tree.SetRoot(root.node); err != nil {
		o.logger.Error("mount root: %v", err)
	}
	o.root = root
	root.setChild(root.updateChild(nil, c, Slot{}))
	return root
}

// SetRoot reconciles the root's child with c.
func (o *BuildOwner) SetRoot(c Component) {
	if o.root == nil {
		o.Mount(c)
		return
	}
	o.root.setChild(o.root.updateChild(o.root.child(), c, Slot{}))
}

// Unmount tears down the whole element tree.
func (o *BuildOwner) Unmount() {
	if o.root == nil {
		return
	}
	o.root.unmount()
	o.root = nil
	o.dirty = nil
}

func (o *BuildOwner) scheduleBuildFor(e *Element) {
	if !e.inDirtyList {
		e.inDirtyList = true
		o.dirty = append(o.dirty, e)
	}
	o.requestFrame()
}

// HasDirty reports whether any active element is waiting to be rebuilt.
func (o *BuildOwner) HasDirty() bool {
	for _, e := range o.dirty {
		if e.dirty && e.lifecycle == Active {
			return true
		}
	}
	return false
}

// BuildScope rebuilds dirty elements, shallowest first, until none remain,
// and returns how many were rebuilt. Elements dirtied during the scope are
// built in the same call.
func (o *BuildOwner) BuildScope() int {
	built := 0
	var rest []*Element
	defer func() {
		// Keep the unvisited part of the batch queued if a panic unwinds
		// through here.
		if r := recover(); r != nil {
			o.dirty = append(o.dirty, rest...)
			panic(r)
		}
	}()
	for len(o.dirty) > 0 {
		batch := o.dirty
		o.dirty = nil
		slices.SortStableFunc(batch, func(a, b *Element) int { return a.depth - b.depth })
		for i, e := range batch {
			rest = batch[i+1:]
			e.inDirtyList = false
			if e.dirty && e.lifecycle == Active {
				e.rebuild()
				built++
			}
		}
		rest = nil
	}
	return built
}
