package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 255, G: 0, B: 0}
	ColorGreen   = Color{R: 0, G: 255, B: 0}
	ColorBlue    = Color{R: 0, G: 0, B: 255}
	ColorYellow  = Color{R: 255, G: 255, B: 0}
	ColorCyan    = Color{R: 0, G: 255, B: 255}
	ColorMagenta = Color{R: 255, G: 0, B: 255}
	ColorGray    = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from a hex string.
// Supports "#RGB", "#RRGGBB", "RGB" and "RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 3 && len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend blends two true colors in Lab space.
// Amount 0.0 = c, 1.0 = other. Indexed or default colors snap to the
// nearer endpoint.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	r, g, b := c.colorful().BlendLab(other.colorful(), amount).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// To256 maps the color onto the xterm 256-color palette.
// Default and indexed colors are returned unchanged.
func (c Color) To256() Color {
	if c.Default || c.Indexed {
		return c
	}
	return ColorFromIndex(nearest(c.colorful(), 16, 256))
}

// To16 maps the color onto the 16 basic ANSI colors.
func (c Color) To16() Color {
	if c.Default {
		return c
	}
	if c.Indexed {
		if c.R < 16 {
			return c
		}
		return ColorFromIndex(nearest(paletteColor(c.R), 0, 16))
	}
	return ColorFromIndex(nearest(c.colorful(), 0, 16))
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// nearest returns the palette index in [lo, hi) closest to c.
func nearest(c colorful.Color, lo, hi int) uint8 {
	best := lo
	bestDist := -1.0
	for i := lo; i < hi; i++ {
		d := c.DistanceLab(paletteColor(uint8(i)))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// ansi16 holds the xterm default values of the 16 basic colors.
var ansi16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// paletteColor returns the RGB value of an xterm palette entry.
func paletteColor(idx uint8) colorful.Color {
	var r, g, b uint8
	switch {
	case idx < 16:
		r, g, b = ansi16[idx][0], ansi16[idx][1], ansi16[idx][2]
	case idx < 232:
		i := idx - 16
		level := func(v uint8) uint8 {
			if v == 0 {
				return 0
			}
			return 55 + v*40
		}
		r, g, b = level(i/36), level((i/6)%6), level(i%6)
	default:
		v := 8 + (idx-232)*10
		r, g, b = v, v, v
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}
