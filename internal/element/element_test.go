package element

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/tessera/internal/renderer/render"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		c    Component
		want Kind
	}{
		{label{}, KindRenderLeaf},
		{column{}, KindRenderMulti},
		{wrap{}, KindStateless},
		{counter{}, KindStateful},
		{flexible{}, KindParentData},
		{palette{}, KindInherited},
		{notAComponent{}, KindInvalid},
	}

	for _, tt := range tests {
		if got := KindOf(tt.c); got != tt.want {
			t.Errorf("KindOf(%T) = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestKeysAndCanUpdate(t *testing.T) {
	a := label{Base: Base{ID: NewKey("a")}}
	a2 := label{Base: Base{ID: NewKey("a")}, Text: "other"}
	b := label{Base: Base{ID: NewKey("b")}}
	n1 := label{}

	if !CanUpdate(a, a2) {
		t.Error("same type and key should update")
	}
	if CanUpdate(a, b) {
		t.Error("different keys should not update")
	}
	if CanUpdate(a, n1) {
		t.Error("keyed and unkeyed should not update")
	}
	if !CanUpdate(n1, label{Text: "x"}) {
		t.Error("two unkeyed components of the same type should update")
	}
	if CanUpdate(label{}, wrap{}) {
		t.Error("different types should not update")
	}
	if NewKey(1).Equal(NewKey("1")) {
		t.Error("keys of different types must differ")
	}
}

func TestEqual(t *testing.T) {
	if !Equal(label{Text: "a"}, label{Text: "a"}) {
		t.Error("identical values should be equal")
	}
	if Equal(label{Text: "a"}, label{Text: "b"}) {
		t.Error("different fields should not be equal")
	}
	if Equal(column{}, column{}) {
		t.Error("incomparable types are never equal")
	}
	// An interface field holding an incomparable value must not panic.
	if Equal(flexible{Inner: column{}}, flexible{Inner: column{}}) {
		t.Error("incomparable dynamic field should compare unequal")
	}
}

func TestIdentityPreservedAcrossRebuild(t *testing.T) {
	h := newHarness()
	root := h.owner.Mount(counter{Label: "one"})
	el := root.Children()[0]
	st := el.State().(*counterState)
	st.count = 7

	h.owner.SetRoot(counter{Label: "two"})

	if got := root.Children()[0]; got != el {
		t.Fatal("element should be reused for same type and key")
	}
	if el.State() != st || st.count != 7 {
		t.Error("state should survive the rebuild")
	}
	if st.inits != 1 || st.updates != 1 {
		t.Errorf("expected 1 init and 1 update, got %d and %d", st.inits, st.updates)
	}
	if got := h.frame(10, 1).Row(0); got != "two" {
		t.Errorf("row = %q", got)
	}
}

func TestIdentityReplacedOnKeyChange(t *testing.T) {
	h := newHarness()
	root := h.owner.Mount(counter{Base: Base{ID: NewKey(1)}})
	el := root.Children()[0]
	st := el.State().(*counterState)

	h.owner.SetRoot(counter{Base: Base{ID: NewKey(2)}})

	if root.Children()[0] == el {
		t.Error("key change should create a new element")
	}
	if el.Mounted() || !st.disposed {
		t.Error("old element should be unmounted and its state disposed")
	}
}

func TestEqualComponentSkipsUpdate(t *testing.T) {
	h := newHarness()
	root := h.owner.Mount(wrap{Text: "x"})
	el := root.Children()[0]
	before := el.BuildCount()

	h.owner.SetRoot(wrap{Text: "x"})
	if el.BuildCount() != before {
		t.Errorf("equal component should not rebuild, builds %d -> %d", before, el.BuildCount())
	}

	h.owner.SetRoot(wrap{Text: "y"})
	if el.BuildCount() != before+1 {
		t.Errorf("changed component should rebuild once, builds %d -> %d", before, el.BuildCount())
	}
}

func labels(texts ...string) []Component {
	out := make([]Component, len(texts))
	for i, s := range texts {
		out[i] = label{Text: s}
	}
	return out
}

func keyedLabels(texts ...string) []Component {
	out := make([]Component, len(texts))
	for i, s := range texts {
		out[i] = label{Base: Base{ID: NewKey(s)}, Text: s}
	}
	return out
}

func renderTexts(h *harness, parent render.NodeID) []string {
	var out []string
	for _, id := range h.tree.Children(parent) {
		out = append(out, h.tree.Behavior(id).(*render.Text).Content)
	}
	return out
}

// Appending to a list leaves the existing children untouched.
func TestAppendKeepsLeadingChildren(t *testing.T) {
	h := newHarness()
	root := h.owner.Mount(column{Items: labels("a", "b", "c")})
	col := root.Children()[0]
	h.frame(10, 5)

	first := col.Children()
	var builds []int
	var slots []Slot
	var nodes []render.NodeID
	for _, el := range first {
		builds = append(builds, el.BuildCount())
		slots = append(slots, el.Slot())
		nodes = append(nodes, el.RenderNode())
	}

	h.owner.SetRoot(column{Items: labels("a", "b", "c", "d", "e")})

	now := col.Children()
	if len(now) != 5 {
		t.Fatalf("expected 5 children, got %d", len(now))
	}
	for i := range first {
		if now[i] != first[i] {
			t.Errorf("child %d was recreated", i)
		}
		if now[i].BuildCount() != builds[i] {
			t.Errorf("child %d was rebuilt", i)
		}
		if now[i].Slot() != slots[i] {
			t.Errorf("child %d changed slot", i)
		}
		if now[i].RenderNode() != nodes[i] {
			t.Errorf("child %d changed render object", i)
		}
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, renderTexts(h, col.RenderNode())); diff != "" {
		t.Errorf("render order (-want +got):\n%s", diff)
	}
	if got := h.frame(10, 5).Row(4); got != "e" {
		t.Errorf("last row = %q", got)
	}
}

func TestKeyedReorderMovesElements(t *testing.T) {
	h := newHarness()
	root := h.owner.Mount(column{Items: keyedLabels("a", "b", "c", "d")})
	col := root.Children()[0]
	byKey := map[string]*Element{}
	for _, el := range col.Children() {
		byKey[el.Component().(label).Text] = el
	}

	h.owner.SetRoot(column{Items: keyedLabels("d", "b", "x", "a")})

	now := col.Children()
	for _, el := range now {
		text := el.Component().(label).Text
		if old, ok := byKey[text]; ok && old != el {
			t.Errorf("keyed child %q was recreated", text)
		}
	}
	if byKey["c"].Mounted() {
		t.Error("removed keyed child should be unmounted")
	}
	if diff := cmp.Diff([]string{"d", "b", "x", "a"}, renderTexts(h, col.RenderNode())); diff != "" {
		t.Errorf("render order (-want +got):\n%s", diff)
	}
	for i, el := range now {
		if el.Slot().Index != i {
			t.Errorf("child %d has slot index %d", i, el.Slot().Index)
		}
		var prev *Element
		if i > 0 {
			prev = now[i-1]
		}
		if el.Slot().Prev != prev {
			t.Errorf("child %d has wrong previous sibling", i)
		}
	}
}

func TestInsertInMiddleThroughComponentChildren(t *testing.T) {
	h := newHarness()
	items := func(texts ...string) []Component {
		out := make([]Component, len(texts))
		for i, s := range texts {
			out[i] = wrap{Base: Base{ID: NewKey(s)}, Text: s}
		}
		return out
	}
	root := h.owner.Mount(column{Items: items("a", "c")})
	col := root.Children()[0]

	h.owner.SetRoot(column{Items: items("a", "b", "c")})

	if diff := cmp.Diff([]string{"a", "b", "c"}, renderTexts(h, col.RenderNode())); diff != "" {
		t.Errorf("render order (-want +got):\n%s", diff)
	}
}

func TestRemoveChildDestroysRenderObject(t *testing.T) {
	h := newHarness()
	root := h.owner.Mount(column{Items: labels("a", "b")})
	col := root.Children()[0]
	gone := col.Children()[1]
	node := gone.RenderNode()

	h.owner.SetRoot(column{Items: labels("a")})

	if gone.Mounted() {
		t.Error("removed element should be unmounted")
	}
	if h.tree.Alive(node) {
		t.Error("removed element's render object should be destroyed")
	}
}

// A build failure shows an error box in place of the subtree; siblings
// still render.
func TestBuildPanicShowsErrorBox(t *testing.T) {
	h := newHarness()
	root := h.owner.Mount(column{Items: []Component{
		label{Text: "left"},
		boom{},
		label{Text: "right"},
	}})
	col := root.Children()[0]

	buf := h.frame(30, 8)
	screen := buf.String()

	bad := col.Children()[1]
	if !errors.Is(bad.Err(), ErrBuildFailed) {
		t.Errorf("expected ErrBuildFailed, got %v", bad.Err())
	}
	for _, want := range []string{"left", "right", "error", "kaboom"} {
		if !strings.Contains(screen, want) {
			t.Errorf("screen should contain %q:\n%s", want, screen)
		}
	}
}

func TestBuildErrorIsSticky(t *testing.T) {
	h := newHarness()
	root := h.owner.Mount(boom{N: 1})
	el := root.Children()[0]

	h.owner.SetRoot(boom{N: 2})
	if root.Children()[0] != el || el.Err() == nil {
		t.Fatal("failed element should be reused and stay failed")
	}

	h.owner.SetRoot(wrap{Text: "fine"})
	if root.Children()[0].Err() != nil {
		t.Error("a new component identity should clear the failure")
	}
	if got := h.frame(10, 1).Row(0); got != "fine" {
		t.Errorf("row = %q", got)
	}
}

func TestInitStateErrorAndUnsupportedComponent(t *testing.T) {
	tests := []struct {
		name string
		c    Component
		want error
	}{
		{"init error", failingInit{}, ErrBuildFailed},
		{"unsupported", notAComponent{}, ErrBuildFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.owner.Mount(column{Items: []Component{tt.c, label{Text: "ok"}}})

			screen := h.frame(40, 6).String()
			if !strings.Contains(screen, "error") || !strings.Contains(screen, "ok") {
				t.Errorf("expected error box and sibling:\n%s", screen)
			}
		})
	}
}
