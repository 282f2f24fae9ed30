package element

import (
	"fmt"

	"github.com/dshills/tessera/internal/renderer/render"
)

// inflate creates and mounts an element for c under e.
func (e *Element) inflate(c Component, slot Slot) *Element {
	if KindOf(c) == KindInvalid {
		err := &BuildError{
			Component: fmt.Sprintf("%T", c),
			Phase:     "inflate",
			Err:       ErrUnsupportedComponent,
		}
		e.owner.logger.Warn("build failed: %v", err)
		c = newErrorComponent(err)
	}
	child := newElement(c, e.owner)
	child.mount(e, slot)
	return child
}

func (e *Element) mount(parent *Element, slot Slot) {
	e.parent = parent
	e.slot = slot
	e.depth = parent.depth + 1
	e.lifecycle = Active

	switch e.kind {
	case KindStateless, KindStateful:
		e.firstBuild()
	case KindParentData:
		e.setChild(e.updateChild(nil, e.parentDataChild(), e.slot))
		e.replaceFailedParentDataChild()
	case KindInherited:
		e.setChild(e.updateChild(nil, e.component.(InheritedComponent).ChildComponent(), e.slot))
	case KindRenderLeaf, KindRenderSingle, KindRenderMulti:
		e.mountRender()
	case KindRoot, KindInvalid:
		// The root is mounted by its owner; invalid components never reach
		// here.
	}
}

func (e *Element) firstBuild() {
	if e.kind == KindStateful {
		sc := e.component.(StatefulComponent)
		err := guard(e.component, "createState", func() error {
			e.state = sc.CreateState()
			if e.state == nil {
				return errNilState
			}
			return nil
		})
		if err == nil {
			if init, ok := e.state.(Initializer); ok {
				err = guard(e.component, "initState", func() error {
					return init.InitState(e)
				})
			}
		}
		if err != nil {
			e.fail(err)
		}
	}
	e.rebuild()
}

func modelFor(k Kind) render.ChildModel {
	switch k {
	case KindRenderMulti:
		return render.MultiChildren
	case KindRenderSingle, KindRoot:
		return render.SingleChild
	default:
		return render.NoChildren
	}
}

func (e *Element) mountRender() {
	rc := e.component.(RenderComponent)
	var b render.Behavior
	err := guard(e.component, "createRenderObject", func() error {
		b = rc.CreateRenderObject(e)
		if b == nil {
			return errNilRenderObject
		}
		return nil
	})
	model := modelFor(e.kind)
	if err != nil {
		e.fail(err)
		b = &render.ErrorBox{Message: err.Error(), Stack: render.StackOf(err)}
		model = render.NoChildren
	}
	e.node = e.owner.tree.Create(b, model)
	e.attachRenderObject()
	if e.err != nil {
		return
	}

	switch e.kind {
	case KindRenderSingle:
		e.setChild(e.updateChild(nil, e.component.(SingleChildRenderComponent).ChildComponent(), Slot{}))
	case KindRenderMulti:
		e.children = e.updateChildren(nil, e.component.(MultiChildRenderComponent).ChildComponents())
	}
}

func (e *Element) attachRenderObject() {
	anc := e.renderAncestor()
	if anc == nil {
		return
	}
	e.applyParentData()
	if err := e.owner.tree.Insert(anc.node, e.node, anchorFor(e.slot)); err != nil {
		e.owner.logger.Warn("attach %s: %v", e, err)
	}
}

// applyParentData applies the annotations of every parent-data element
// between e and its render ancestor, outermost first. Elements whose
// annotations already failed are skipped.
func (e *Element) applyParentData() {
	var chain []*Element
	for p := e.parent; p != nil && !p.kind.IsRender(); p = p.parent {
		if p.kind == KindParentData && p.err == nil {
			chain = append(chain, p)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].annotate(e.node)
	}
}

// annotate runs the parent-data component's ApplyParentData on id. A panic
// fails the parent-data element.
func (e *Element) annotate(id render.NodeID) {
	pd := e.component.(ParentDataComponent)
	var err error
	e.owner.tree.UpdateParentData(id, func(d *render.ParentData) {
		err = guard(e.component, "applyParentData", func() error {
			pd.ApplyParentData(d)
			return nil
		})
	})
	if err != nil {
		e.fail(err)
	}
}

// parentDataChild returns what a parent-data element shows: its child, or an
// error component once its annotations have failed.
func (e *Element) parentDataChild() Component {
	if e.err != nil {
		return newErrorComponent(e.err)
	}
	return e.component.(ParentDataComponent).ChildComponent()
}

// replaceFailedParentDataChild swaps the child for an error component if
// annotating it just failed.
func (e *Element) replaceFailedParentDataChild() {
	if e.err == nil {
		return
	}
	if c := e.child(); c != nil {
		if _, ok := c.component.(errorComponent); ok {
			return
		}
	}
	e.setChild(e.updateChild(e.child(), e.parentDataChild(), e.slot))
}

// reapplyParentData pushes a parent-data component's annotations to the
// render object below it and marks the render parent for layout if they
// changed.
func (e *Element) reapplyParentData() {
	id := e.renderNode()
	if id == 0 {
		return
	}
	if e.err != nil {
		return
	}
	tree := e.owner.tree
	before := tree.ParentData(id)
	e.annotate(id)
	if e.err != nil {
		return
	}
	if parentDataEqual(before, tree.ParentData(id)) {
		return
	}
	if p := tree.Parent(id); p != 0 {
		tree.MarkNeedsLayout(p)
	}
}

func parentDataEqual(a, b render.ParentData) bool {
	if a.Flex != b.Flex || a.Fit != b.Fit {
		return false
	}
	if a.Position == nil || b.Position == nil {
		return a.Position == b.Position
	}
	return *a.Position == *b.Position
}

// update replaces the component of an element that CanUpdate approved and
// runs the kind's update step. Proxies update their child directly and
// never rebuild.
func (e *Element) update(next Component) {
	old := e.component
	e.component = next

	switch e.kind {
	case KindStateless:
		e.rebuild()
	case KindStateful:
		if u, ok := e.state.(ComponentUpdater); ok && e.err == nil {
			if err := guard(next, "didUpdateComponent", func() error {
				u.DidUpdateComponent(old)
				return nil
			}); err != nil {
				e.fail(err)
			}
		}
		e.rebuild()
	case KindParentData:
		e.builds++
		e.setChild(e.updateChild(e.child(), e.parentDataChild(), e.slot))
		e.reapplyParentData()
		e.replaceFailedParentDataChild()
	case KindInherited:
		e.builds++
		ic := next.(InheritedComponent)
		notify := true
		_ = guard(next, "updateShouldNotify", func() error {
			notify = ic.UpdateShouldNotify(old.(InheritedComponent))
			return nil
		})
		if notify {
			e.notifyDependents()
		}
		e.setChild(e.updateChild(e.child(), ic.ChildComponent(), e.slot))
	case KindRenderLeaf, KindRenderSingle, KindRenderMulti:
		e.builds++
		e.updateRender()
	case KindRoot, KindInvalid:
	}
}

// rebuild runs a dirty element's build step.
func (e *Element) rebuild() {
	if e.lifecycle != Active {
		return
	}
	e.dirty = false

	switch e.kind {
	case KindStateless, KindStateful:
		e.builds++
		var next Component
		if e.err == nil {
			err := guard(e.component, "build", func() error {
				if l, ok := e.state.(DependencyListener); ok && e.depsChanged {
					l.DidChangeDependencies()
				}
				e.depsChanged = false
				next = e.build()
				return nil
			})
			if err != nil {
				e.fail(err)
			}
		}
		if e.err != nil {
			next = newErrorComponent(e.err)
		}
		e.setChild(e.updateChild(e.child(), next, e.slot))
	case KindRenderLeaf, KindRenderSingle, KindRenderMulti:
		e.builds++
		e.updateRender()
	case KindParentData, KindInherited, KindRoot, KindInvalid:
		// Proxies and the root have nothing of their own to build.
	}
}

func (e *Element) build() Component {
	if e.kind == KindStateful {
		return e.state.Build(e)
	}
	return e.component.(StatelessComponent).Build(e)
}

func (e *Element) updateRender() {
	if e.err != nil {
		return
	}
	tree := e.owner.tree
	rc := e.component.(RenderComponent)
	if err := guard(e.component, "updateRenderObject", func() error {
		rc.UpdateRenderObject(e, tree.Object(e.node))
		return nil
	}); err != nil {
		e.fail(err)
		for _, c := range e.children {
			c.unmount()
		}
		e.children = nil
		tree.SetBehavior(e.node, &render.ErrorBox{Message: err.Error(), Stack: render.StackOf(err)})
		return
	}

	switch e.kind {
	case KindRenderSingle:
		e.setChild(e.updateChild(e.child(), e.component.(SingleChildRenderComponent).ChildComponent(), Slot{}))
	case KindRenderMulti:
		e.children = e.updateChildren(e.children, e.component.(MultiChildRenderComponent).ChildComponents())
	}
}

// updateSlot records a new slot and moves the render object accordingly.
// Component and proxy elements pass the slot to their child.
func (e *Element) updateSlot(slot Slot) {
	e.slot = slot
	if !e.kind.IsRender() {
		if c := e.child(); c != nil {
			c.updateSlot(slot)
		}
		return
	}
	anc := e.renderAncestor()
	if anc == nil || e.node == 0 {
		return
	}
	if err := e.owner.tree.Move(anc.node, e.node, anchorFor(slot)); err != nil {
		e.owner.logger.Warn("move %s: %v", e, err)
	}
}

// unmount releases the element, its subtree and the render objects they
// own. Render objects are destroyed top-down: destroying a node frees its
// whole render subtree, so descendants find their handles already dead.
func (e *Element) unmount() {
	if e.lifecycle != Active {
		return
	}
	if e.kind.IsRender() && e.node != 0 {
		e.owner.tree.Destroy(e.node)
	}
	for _, c := range e.children {
		c.unmount()
	}
	e.children = nil

	for dep := range e.dependencies {
		delete(dep.dependents, e)
	}
	e.dependencies = nil
	e.dependents = nil

	if d, ok := e.state.(Disposer); ok {
		if err := guard(e.component, "dispose", func() error {
			d.Dispose()
			return nil
		}); err != nil {
			e.owner.logger.Warn("%v", err)
		}
	}
	e.lifecycle = Defunct
	e.dirty = false
}
