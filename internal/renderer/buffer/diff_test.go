package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/tessera/internal/renderer/core"
)

func TestDiffIdentical(t *testing.T) {
	a := New(10, 3)
	a.SetString(0, 0, "same", core.DefaultStyle())
	b := a.clone()

	if changes := Diff(a, b); len(changes) != 0 {
		t.Errorf("expected no changes, got %d", len(changes))
	}
}

func TestDiffExactCells(t *testing.T) {
	prev := New(20, 5)
	cur := prev.clone()

	want := map[[2]int]bool{}
	set := func(x, y int, g string, s core.Style) {
		cur.SetCell(x, y, core.NewStyledCell(g, s))
		want[[2]int{x, y}] = true
	}
	set(0, 0, "a", core.DefaultStyle())
	set(5, 2, "b", core.DefaultStyle().Bold())
	set(19, 4, "c", core.DefaultStyle())
	// Style-only change.
	set(7, 1, " ", core.DefaultStyle().WithBackground(core.ColorRed))

	changes := Diff(prev, cur)
	got := map[[2]int]bool{}
	for _, ch := range changes {
		got[[2]int{ch.X, ch.Y}] = true
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("changed cells mismatch (-want +got):\n%s", diff)
	}
}

// An 80x24 frame where exactly 10% of the cells changed.
func TestDiffTenPercentOf80x24(t *testing.T) {
	prev := New(80, 24)
	cur := prev.clone()

	total := 80 * 24
	want := total / 10
	changed := 0
	for i := 0; changed < want; i += 10 {
		cur.SetCell(i%80, i/80, core.NewCell("x"))
		changed++
	}

	if got := len(Diff(prev, cur)); got != want {
		t.Errorf("Diff reported %d changes, want %d", got, want)
	}
}

func TestDiffSizeChangeIsFull(t *testing.T) {
	prev := New(10, 2)
	cur := New(12, 2)

	if got := len(Diff(prev, cur)); got != 24 {
		t.Errorf("size change should report every cell, got %d", got)
	}
	if got := len(Diff(nil, cur)); got != 24 {
		t.Errorf("nil previous should report every cell, got %d", got)
	}
}

func TestCoalesce(t *testing.T) {
	prev := New(20, 2)
	cur := prev.clone()
	bold := core.DefaultStyle().Bold()

	cur.SetString(2, 0, "abc", bold)
	cur.SetString(5, 0, "de", core.DefaultStyle().WithForeground(core.ColorRed))
	cur.SetString(10, 0, "fg", bold)
	cur.SetString(0, 1, "世x", bold)

	runs := Coalesce(Diff(prev, cur))

	type runInfo struct {
		X, Y int
		Text string
		Len  int
	}
	var got []runInfo
	for _, r := range runs {
		got = append(got, runInfo{r.X, r.Y, r.Text(), r.Len()})
	}
	want := []runInfo{
		{2, 0, "abc", 3},
		{5, 0, "de", 2},
		{10, 0, "fg", 2},
		{0, 1, "世x", 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("runs mismatch (-want +got):\n%s", diff)
	}

	// Runs cover exactly the changed cells.
	covered := 0
	for _, r := range runs {
		covered += r.Len()
	}
	if n := len(Diff(prev, cur)); covered != n {
		t.Errorf("runs cover %d cells, diff has %d", covered, n)
	}
}
