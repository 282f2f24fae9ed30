package core

// Attribute is a set of text attributes. The encoder maps each one to the
// terminal's capability for it.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikethrough
	// AttrHidden draws the cell invisibly.
	AttrHidden
)

// Has reports whether every attribute in attr is set.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr == attr
}

// Style is how a cell is drawn.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal's default colors and no attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// With returns s with attrs added.
func (s Style) With(attrs Attribute) Style {
	s.Attributes |= attrs
	return s
}

func (s Style) Bold() Style      { return s.With(AttrBold) }
func (s Style) Dim() Style       { return s.With(AttrDim) }
func (s Style) Italic() Style    { return s.With(AttrItalic) }
func (s Style) Underline() Style { return s.With(AttrUnderline) }

// Over layers s on top of base: colors set in s win and attributes add up.
func (s Style) Over(base Style) Style {
	if !s.Foreground.IsDefault() {
		base.Foreground = s.Foreground
	}
	if !s.Background.IsDefault() {
		base.Background = s.Background
	}
	base.Attributes |= s.Attributes
	return base
}

// Equals reports whether two styles draw the same.
func (s Style) Equals(o Style) bool {
	return s.Attributes == o.Attributes &&
		s.Foreground.Equals(o.Foreground) && s.Background.Equals(o.Background)
}

// IsDefault reports whether s is DefaultStyle.
func (s Style) IsDefault() bool {
	return s.Attributes == 0 && s.Foreground.IsDefault() && s.Background.IsDefault()
}
