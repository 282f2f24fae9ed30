package element

// updateChild reconciles the child element in slot with the component c and
// returns the element that now occupies the slot:
//
//   - c nil: child is unmounted, nil is returned.
//   - child nil: a new element is inflated for c.
//   - same type and key: child is reused. If c equals the current
//     component only the slot is updated; otherwise child is updated in
//     place and keeps its state.
//   - otherwise child is unmounted and a new element inflated.
func (e *Element) updateChild(child *Element, c Component, slot Slot) *Element {
	if c == nil {
		if child != nil {
			child.unmount()
		}
		return nil
	}
	if child != nil {
		if CanUpdate(child.component, c) {
			if child.slot != slot {
				child.updateSlot(slot)
			}
			if Equal(child.component, c) {
				child.component = c
			} else {
				child.update(c)
			}
			return child
		}
		child.unmount()
	}
	return e.inflate(c, slot)
}

// updateChildren reconciles a list of child elements with new components.
//
// Children are matched from the top while they can be updated in place,
// then from the bottom. Old children left in the middle are indexed by key;
// unkeyed ones are unmounted. New middle components reuse the keyed element
// with their key when possible. Each resulting child gets the slot
// {index, previous child}, so reused children whose predecessor changed
// move their render objects rather than being recreated.
func (e *Element) updateChildren(old []*Element, components []Component) []*Element {
	comps := make([]Component, 0, len(components))
	for _, c := range components {
		if c != nil {
			comps = append(comps, c)
		}
	}

	next := make([]*Element, len(comps))
	newTop, oldTop := 0, 0
	newBottom, oldBottom := len(comps)-1, len(old)-1
	var prev *Element

	for oldTop <= oldBottom && newTop <= newBottom {
		oc := old[oldTop]
		if !CanUpdate(oc.component, comps[newTop]) {
			break
		}
		child := e.updateChild(oc, comps[newTop], Slot{Index: newTop, Prev: prev})
		next[newTop] = child
		prev = child
		newTop++
		oldTop++
	}

	for oldTop <= oldBottom && newTop <= newBottom {
		if !CanUpdate(old[oldBottom].component, comps[newBottom]) {
			break
		}
		oldBottom--
		newBottom--
	}

	var keyed map[Key]*Element
	if oldTop <= oldBottom {
		keyed = make(map[Key]*Element)
		for ; oldTop <= oldBottom; oldTop++ {
			oc := old[oldTop]
			if k := oc.component.Key(); !k.IsZero() {
				keyed[k] = oc
			} else {
				oc.unmount()
			}
		}
	}

	for ; newTop <= newBottom; newTop++ {
		c := comps[newTop]
		var oc *Element
		if k := c.Key(); keyed != nil && !k.IsZero() {
			if m, ok := keyed[k]; ok && CanUpdate(m.component, c) {
				oc = m
				delete(keyed, k)
			}
		}
		child := e.updateChild(oc, c, Slot{Index: newTop, Prev: prev})
		next[newTop] = child
		prev = child
	}

	newBottom = len(comps) - 1
	oldBottom = len(old) - 1
	for oldTop <= oldBottom && newTop <= newBottom {
		child := e.updateChild(old[oldTop], comps[newTop], Slot{Index: newTop, Prev: prev})
		next[newTop] = child
		prev = child
		newTop++
		oldTop++
	}

	for _, oc := range keyed {
		oc.unmount()
	}
	return next
}
