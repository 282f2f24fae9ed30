package core

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false},
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
	}

	for _, tt := range tests {
		c, err := ColorFromHex(tt.hex)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ColorFromHex(%q) expected error, got nil", tt.hex)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("ColorFromHex(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tt.hex, c.R, c.G, c.B, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorEquals(t *testing.T) {
	if !ColorDefault.Equals(Color{Default: true, R: 9}) {
		t.Error("default colors should compare equal regardless of components")
	}
	if ColorFromIndex(3).Equals(ColorFromRGB(3, 0, 0)) {
		t.Error("indexed and RGB colors should differ")
	}
	if !ColorFromIndex(3).Equals(Color{R: 3, G: 7, Indexed: true}) {
		t.Error("indexed colors compare by index only")
	}
}

func TestColorBlend(t *testing.T) {
	c := ColorBlack.Blend(ColorWhite, 0)
	if !c.Equals(ColorBlack) {
		t.Errorf("Blend(0) = %v, want black", c)
	}
	c = ColorBlack.Blend(ColorWhite, 1)
	if !c.Equals(ColorWhite) {
		t.Errorf("Blend(1) = %v, want white", c)
	}
	if got := ColorDefault.Blend(ColorRed, 0.2); !got.IsDefault() {
		t.Errorf("blending default should snap, got %v", got)
	}
}

func TestColorDownsample(t *testing.T) {
	if got := ColorFromRGB(255, 0, 0).To16(); !got.Equals(ColorFromIndex(9)) {
		t.Errorf("red To16 = %v, want idx(9)", got)
	}
	if got := ColorFromRGB(0, 0, 0).To256(); !got.Indexed || got.R < 16 {
		t.Errorf("To256 should pick from the extended palette, got %v", got)
	}
	if got := ColorDefault.To16(); !got.IsDefault() {
		t.Error("default should stay default")
	}
}

func TestStyleOver(t *testing.T) {
	base := DefaultStyle().WithForeground(ColorRed).Bold()
	top := DefaultStyle().WithBackground(ColorBlue).Italic()

	got := top.Over(base)
	if !got.Foreground.Equals(ColorRed) {
		t.Error("unset foreground should come from the base")
	}
	if !got.Background.Equals(ColorBlue) {
		t.Error("background should come from the top style")
	}
	if !got.Attributes.Has(AttrBold | AttrItalic) {
		t.Error("attributes should be combined")
	}
	if got.Attributes.Has(AttrBold | AttrDim) {
		t.Error("Has should require every attribute")
	}
	if !DefaultStyle().Over(base).Equals(base) {
		t.Error("default style over base should be base")
	}
}

func TestCellWidth(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want int
	}{
		{"ascii", NewCell("a"), 1},
		{"cjk", NewCell("世"), 2},
		{"emoji", NewCell("👍"), 2},
		{"flag", NewCell("🇯🇵"), 2},
		{"continuation", ContinuationCell(DefaultStyle()), 0},
		{"empty", EmptyCell(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cell
			if got := c.Width(); got != tt.want {
				t.Errorf("Width() = %d, want %d", got, tt.want)
			}
			// Cached value must be stable.
			if got := c.Width(); got != tt.want {
				t.Errorf("second Width() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCellEqualsIgnoresWidthCache(t *testing.T) {
	a := NewCell("x")
	b := NewCell("x")
	_ = a.Width()
	if !a.Equals(b) {
		t.Error("width cache must not affect equality")
	}
	if a.Equals(NewStyledCell("x", DefaultStyle().Bold())) {
		t.Error("style must affect equality")
	}
}

func TestGraphemes(t *testing.T) {
	var got []string
	var widths []int
	Graphemes("aé世\x1b", func(g string, w int) {
		got = append(got, g)
		widths = append(widths, w)
	})

	want := []string{"a", "é", "世", "�"}
	if len(got) != len(want) {
		t.Fatalf("got %d graphemes %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("grapheme %d = %q, want %q", i, got[i], want[i])
		}
	}
	if widths[2] != 2 {
		t.Errorf("width of wide grapheme = %d, want 2", widths[2])
	}
	if StringWidth("ab世") != 4 {
		t.Errorf("StringWidth = %d, want 4", StringWidth("ab世"))
	}
}

func TestRect(t *testing.T) {
	r := Span(0, 0, 20, 10)
	if r.Width() != 20 || r.Height() != 10 {
		t.Errorf("size = %dx%d, want 20x10", r.Width(), r.Height())
	}
	if !r.Contains(19, 9) || r.Contains(20, 9) {
		t.Error("Contains bounds are wrong")
	}
	in := r.Intersection(NewRect(15, 5, 10, 10))
	if in != Span(15, 5, 20, 10) {
		t.Errorf("Intersection = %+v", in)
	}
	if !r.Intersection(NewRect(30, 30, 1, 1)).IsEmpty() {
		t.Error("disjoint intersection should be empty")
	}
	if got := r.Union(NewRect(18, 8, 5, 5)); got != Span(0, 0, 23, 13) {
		t.Errorf("Union = %+v", got)
	}
	if got := (Rect{}).Union(r); got != r {
		t.Errorf("Union with empty = %+v", got)
	}
	if got := r.Inset(1, 2, 3, 4); got != Span(4, 1, 18, 7) {
		t.Errorf("Inset = %+v", got)
	}
}
