package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/core"
)

func TestConstraints(t *testing.T) {
	c := Constraints{MinWidth: 2, MaxWidth: 10, MinHeight: 1, MaxHeight: 5}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"constrain big", c.Constrain(Size{20, 20}), Size{10, 5}},
		{"constrain small", c.Constrain(Size{0, 0}), Size{2, 1}},
		{"biggest", c.Biggest(), Size{10, 5}},
		{"biggest unbounded", Unbounded().Biggest(), Size{0, 0}},
		{"loosen", c.Loosen(), Constraints{0, 10, 0, 5}},
		{"deflate", c.Deflate(4, 2), Constraints{0, 6, 0, 3}},
		{"deflate past zero", c.Deflate(20, 20), Constraints{0, 0, 0, 0}},
		{"deflate unbounded", Unbounded().Deflate(2, 2), Constraints{0, Infinity, 0, Infinity}},
		{"tight", Tight(Size{3, 4}).IsTight(), true},
		{"loose", Loose(Size{3, 4}).IsTight(), false},
		{"tighten", c.Tighten(Some(50), Opt{}), Constraints{10, 10, 1, 5}},
		{"satisfied", c.IsSatisfiedBy(Size{5, 5}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutClampsSize(t *testing.T) {
	tree := NewTree(nil)
	id := tree.Create(&fake{size: Size{100, 100}}, NoChildren)
	_ = tree.SetRoot(id)

	got := tree.Layout(id, Loose(Size{10, 4}))
	if got != (Size{10, 4}) {
		t.Errorf("size should be clamped to constraints, got %+v", got)
	}
}

func TestLayoutCache(t *testing.T) {
	tree := NewTree(nil)
	p := &fake{size: Size{3, 1}}
	id := tree.Create(p, NoChildren)
	_ = tree.SetRoot(id)

	c := Loose(Size{10, 10})
	tree.Layout(id, c)
	tree.Layout(id, c)
	if p.layouts != 1 {
		t.Errorf("clean node with same constraints should not relayout, got %d layouts", p.layouts)
	}

	tree.Layout(id, Loose(Size{8, 8}))
	if p.layouts != 2 {
		t.Errorf("new constraints should relayout, got %d layouts", p.layouts)
	}

	tree.MarkNeedsLayout(id)
	tree.Layout(id, Loose(Size{8, 8}))
	if p.layouts != 3 {
		t.Errorf("dirty node should relayout, got %d layouts", p.layouts)
	}
}

func TestLayoutPanicIsContained(t *testing.T) {
	owner := &recordingOwner{}
	tree := NewTree(owner)

	root := tree.Create(&fake{size: Size{20, 4}}, MultiChildren)
	bad := &fake{size: Size{5, 1}, panicLayout: true}
	badID := tree.Create(bad, NoChildren)
	good := tree.Create(&fake{size: Size{4, 1}, text: "good"}, NoChildren)
	_ = tree.SetRoot(root)
	_ = tree.Insert(root, badID, 0)
	_ = tree.Insert(root, good, badID)

	tree.Layout(root, Tight(Size{20, 4}))

	if tree.Err(badID) == nil {
		t.Fatal("failed node should record its error")
	}
	if tree.Err(root) != nil || tree.Err(good) != nil {
		t.Error("error should not spread to parent or sibling")
	}
	// The failed node takes the biggest size its loose constraints allow.
	if got := tree.Size(badID); got != (Size{20, 4}) {
		t.Errorf("failed node size = %+v", got)
	}

	buf := owner.flushPaint(tree, 20, 8)
	if !strings.Contains(buf.String(), "error") {
		t.Errorf("error box should be painted:\n%s", buf)
	}
	if !strings.Contains(buf.String(), "good") {
		t.Errorf("sibling should still paint:\n%s", buf)
	}

	// The error is sticky.
	bad.panicLayout = false
	tree.MarkNeedsLayout(badID)
	owner.flushLayout(tree)
	if tree.Err(badID) == nil {
		t.Error("error state should persist until the node is replaced")
	}
}

func TestFailedLayoutInsideFlexIsVisible(t *testing.T) {
	tests := []struct {
		name      string
		direction Axis
		screen    Size
		check     func(Size) bool
	}{
		{"row", Horizontal, Size{30, 3}, func(s Size) bool { return s.Width > 4 && s.Height == 3 }},
		{"column", Vertical, Size{30, 8}, func(s Size) bool { return s.Width == 30 && s.Height >= 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := &recordingOwner{}
			tree := NewTree(owner)

			flex := tree.Create(&Flex{Direction: tt.direction}, MultiChildren)
			sib := tree.Create(&Text{Content: "sib"}, NoChildren)
			bad := tree.Create(&fake{panicLayout: true}, NoChildren)
			_ = tree.SetRoot(flex)
			_ = tree.Insert(flex, sib, 0)
			_ = tree.Insert(flex, bad, sib)

			tree.Layout(flex, Tight(tt.screen))

			if tree.Err(bad) == nil {
				t.Fatal("expected layout error to be recorded")
			}
			if got := tree.Size(bad); !tt.check(got) {
				t.Errorf("unexpected failed node size %+v", got)
			}

			buf := owner.flushPaint(tree, tt.screen.Width, tt.screen.Height)
			out := buf.String()
			if !strings.Contains(out, "sib") {
				t.Errorf("sibling should paint:\n%s", out)
			}
			if !strings.Contains(out, "error") {
				t.Errorf("error box should be painted:\n%s", out)
			}
		})
	}
}

func TestLayoutChildRejectsNonChild(t *testing.T) {
	tree := NewTree(nil)
	stranger := tree.Create(&fake{}, NoChildren)
	id := tree.Create(&fake{layoutOther: stranger}, NoChildren)
	_ = tree.SetRoot(id)

	tree.Layout(id, Tight(Size{5, 5}))

	if err := tree.Err(id); !errors.Is(err, ErrNotChild) {
		t.Errorf("expected ErrNotChild, got %v", err)
	}
	if tree.NeedsLayout(id) {
		t.Error("failed layout should still clear the flag")
	}
}

func TestPaintPanicIsContained(t *testing.T) {
	owner := &recordingOwner{}
	tree := NewTree(owner)

	root := tree.Create(&fake{size: Size{10, 6}}, MultiChildren)
	bad := tree.Create(&fake{size: Size{10, 3}, panicPaint: true}, NoChildren)
	good := tree.Create(&fake{size: Size{10, 1}, text: "ok"}, NoChildren)
	_ = tree.SetRoot(root)
	_ = tree.Insert(root, bad, 0)
	_ = tree.Insert(root, good, bad)
	tree.Layout(root, Tight(Size{10, 6}))

	buf := owner.flushPaint(tree, 10, 6)

	if tree.Err(bad) == nil {
		t.Error("paint failure should be recorded")
	}
	if got := buf.Row(3); got != "ok" {
		t.Errorf("sibling row = %q", got)
	}
	if !strings.HasPrefix(buf.Row(0), "╭") {
		t.Errorf("error box border expected, got %q", buf.Row(0))
	}
}

func TestRepaintBoundaryReplaysLayer(t *testing.T) {
	owner := &recordingOwner{}
	tree := NewTree(owner)

	root := tree.Create(&fake{size: Size{10, 2}}, SingleChild)
	inner := &fake{size: Size{5, 1}, text: "cached"}
	layer := tree.Create(layerFake{&fake{size: Size{6, 1}}}, SingleChild)
	leaf := tree.Create(inner, NoChildren)
	_ = tree.SetRoot(root)
	_ = tree.Insert(root, layer, 0)
	_ = tree.Insert(layer, leaf, 0)
	tree.Layout(root, Tight(Size{10, 2}))

	first := owner.flushPaint(tree, 10, 2)
	if inner.paints != 1 {
		t.Fatalf("expected 1 paint, got %d", inner.paints)
	}

	tree.MarkNeedsPaint(root)
	second := owner.flushPaint(tree, 10, 2)
	if inner.paints != 1 {
		t.Errorf("clean boundary should replay, leaf painted %d times", inner.paints)
	}
	if !first.Equals(second) {
		t.Errorf("replay differs:\n%s\n---\n%s", first, second)
	}

	tree.MarkNeedsPaint(leaf)
	owner.flushPaint(tree, 10, 2)
	if inner.paints != 2 {
		t.Errorf("dirty boundary should repaint, leaf painted %d times", inner.paints)
	}
}

func TestRepaintBoundaryReplayKeepsClipping(t *testing.T) {
	owner := &recordingOwner{}
	tree := NewTree(owner)

	root := tree.Create(&View{}, SingleChild)
	stack := tree.Create(&Stack{}, MultiChildren)
	layer := tree.Create(&Layer{}, SingleChild)
	box := tree.Create(&Box{Width: Some(8)}, SingleChild)
	row := tree.Create(&Flex{Direction: Horizontal}, MultiChildren)
	left := tree.Create(&Text{Content: "abcdef"}, NoChildren)
	right := tree.Create(&Text{Content: "ghij"}, NoChildren)
	_ = tree.SetRoot(root)
	_ = tree.Insert(root, stack, 0)
	_ = tree.Insert(stack, layer, 0)
	_ = tree.Insert(layer, box, 0)
	_ = tree.Insert(box, row, 0)
	_ = tree.Insert(row, left, 0)
	_ = tree.Insert(row, right, left)
	tree.Layout(root, Tight(Size{20, 1}))

	first := owner.flushPaint(tree, 20, 1)
	if got := first.Row(0); got != "abcdefgh" {
		t.Fatalf("fresh paint = %q, want %q", got, "abcdefgh")
	}

	tree.MarkNeedsPaint(root)
	second := owner.flushPaint(tree, 20, 1)
	if got := second.Row(0); got != "abcdefgh" {
		t.Errorf("replayed paint = %q, want %q", got, "abcdefgh")
	}
}

func TestFlexDistributesRemainder(t *testing.T) {
	tree := NewTree(nil)
	row := tree.Create(&Flex{Direction: Horizontal}, MultiChildren)
	fixed := tree.Create(&Text{Content: "abc"}, NoChildren)
	one := tree.Create(&fake{}, NoChildren)
	two := tree.Create(&fake{}, NoChildren)
	_ = tree.SetRoot(row)
	_ = tree.Insert(row, fixed, 0)
	_ = tree.Insert(row, one, fixed)
	_ = tree.Insert(row, two, one)
	tree.UpdateParentData(one, func(pd *ParentData) { pd.Flex = 1 })
	tree.UpdateParentData(two, func(pd *ParentData) { pd.Flex = 2 })

	size := tree.Layout(row, Loose(Size{20, 3}))

	if size != (Size{20, 1}) {
		t.Errorf("row size = %+v", size)
	}
	got := []int{tree.Size(fixed).Width, tree.Size(one).Width, tree.Size(two).Width}
	if diff := cmp.Diff([]int{3, 5, 12}, got); diff != "" {
		t.Errorf("widths (-want +got):\n%s", diff)
	}
	offsets := []int{
		tree.ParentData(fixed).Offset.X,
		tree.ParentData(one).Offset.X,
		tree.ParentData(two).Offset.X,
	}
	if diff := cmp.Diff([]int{0, 3, 8}, offsets); diff != "" {
		t.Errorf("offsets (-want +got):\n%s", diff)
	}
}

func TestFlexColumnGapAndCross(t *testing.T) {
	tree := NewTree(nil)
	col := tree.Create(&Flex{Direction: Vertical, Gap: 1, Cross: CrossCenter, Shrink: true}, MultiChildren)
	a := tree.Create(&Text{Content: "a"}, NoChildren)
	b := tree.Create(&Text{Content: "bbbbb"}, NoChildren)
	_ = tree.SetRoot(col)
	_ = tree.Insert(col, a, 0)
	_ = tree.Insert(col, b, a)

	size := tree.Layout(col, Loose(Size{10, 10}))

	if size != (Size{5, 3}) {
		t.Errorf("column size = %+v, want 5x3", size)
	}
	if got := tree.ParentData(a).Offset; got != (Offset{X: 2, Y: 0}) {
		t.Errorf("a offset = %+v", got)
	}
	if got := tree.ParentData(b).Offset; got != (Offset{X: 0, Y: 2}) {
		t.Errorf("b offset = %+v", got)
	}
}

func TestStackPositioned(t *testing.T) {
	tree := NewTree(nil)
	stack := tree.Create(&Stack{Alignment: Center}, MultiChildren)
	base := tree.Create(&Text{Content: "base"}, NoChildren)
	corner := tree.Create(&Text{Content: "xyz"}, NoChildren)
	_ = tree.SetRoot(stack)
	_ = tree.Insert(stack, base, 0)
	_ = tree.Insert(stack, corner, base)
	tree.UpdateParentData(corner, func(pd *ParentData) {
		pd.Position = &Position{Right: Some(0), Bottom: Some(0), Width: Some(3), Height: Some(1)}
	})

	size := tree.Layout(stack, Tight(Size{10, 5}))

	if size != (Size{10, 5}) {
		t.Fatalf("stack size = %+v", size)
	}
	if got := tree.ParentData(base).Offset; got != (Offset{X: 3, Y: 2}) {
		t.Errorf("base offset = %+v", got)
	}
	if got := tree.ParentData(corner).Offset; got != (Offset{X: 7, Y: 4}) {
		t.Errorf("corner offset = %+v", got)
	}
}

func TestBoxBorderAndPadding(t *testing.T) {
	owner := &recordingOwner{}
	tree := NewTree(owner)
	box := tree.Create(&Box{Border: canvas.BorderSingle, Padding: Symmetric(0, 1), Title: "t"}, SingleChild)
	text := tree.Create(&Text{Content: "hi"}, NoChildren)
	_ = tree.SetRoot(box)
	_ = tree.Insert(box, text, 0)

	size := tree.Layout(box, Loose(Size{20, 10}))
	if size != (Size{6, 3}) {
		t.Fatalf("box size = %+v, want 6x3", size)
	}

	buf := owner.flushPaint(tree, 6, 3)
	want := []string{"┌─ t─┐", "│ hi │", "└────┘"}
	got := []string{buf.Row(0), buf.Row(1), buf.Row(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("box rows (-want +got):\n%s", diff)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"hello world", -1, []string{"hello world"}},
		{"a\nb", -1, []string{"a", "b"}},
		{"hello world", 5, []string{"hello", "world"}},
		{"hello big world", 9, []string{"hello big", "world"}},
		{"abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"世界世界", 4, []string{"世界", "世界"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, WrapText(tt.in, tt.width)); diff != "" {
				t.Errorf("WrapText(%q, %d) (-want +got):\n%s", tt.in, tt.width, diff)
			}
		})
	}
}

func TestTextAlign(t *testing.T) {
	owner := &recordingOwner{}
	tree := NewTree(owner)
	id := tree.Create(&Text{Content: "ab", Align: AlignEnd, Style: core.DefaultStyle()}, NoChildren)
	_ = tree.SetRoot(id)
	tree.Layout(id, Tight(Size{6, 1}))

	buf := owner.flushPaint(tree, 6, 1)
	if got := buf.Row(0); got != "    ab" {
		t.Errorf("row = %q", got)
	}
}
