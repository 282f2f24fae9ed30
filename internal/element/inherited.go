package element

// DependOn returns the nearest ancestor InheritedComponent of type T and
// registers ctx as its dependent: when that component is replaced and
// reports UpdateShouldNotify, ctx's element is rebuilt.
func DependOn[T InheritedComponent](ctx BuildContext) (T, bool) {
	e := ctx.element()
	a, c, ok := findInherited[T](e)
	if ok {
		e.addDependency(a)
	}
	return c, ok
}

// Lookup returns the nearest ancestor InheritedComponent of type T without
// registering a dependency.
func Lookup[T InheritedComponent](ctx BuildContext) (T, bool) {
	_, c, ok := findInherited[T](ctx.element())
	return c, ok
}

func findInherited[T InheritedComponent](e *Element) (*Element, T, bool) {
	for a := e.parent; a != nil; a = a.parent {
		if a.kind != KindInherited {
			continue
		}
		if c, ok := a.component.(T); ok {
			return a, c, true
		}
	}
	var zero T
	return nil, zero, false
}

func (e *Element) addDependency(a *Element) {
	if e.dependencies == nil {
		e.dependencies = make(map[*Element]struct{})
	}
	if a.dependents == nil {
		a.dependents = make(map[*Element]struct{})
	}
	e.dependencies[a] = struct{}{}
	a.dependents[e] = struct{}{}
}

func (e *Element) notifyDependents() {
	for d := range e.dependents {
		d.depsChanged = true
		d.MarkNeedsBuild()
	}
}
