package flush

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2/terminfo"

	"github.com/dshills/tessera/internal/renderer/core"
)

// Profile is the color capability of the output terminal.
type Profile int

const (
	TrueColor Profile = iota
	ANSI256
	ANSI16
	Mono
)

var profileNames = [...]string{
	TrueColor: "truecolor",
	ANSI256:   "256",
	ANSI16:    "16",
	Mono:      "mono",
}

func (p Profile) String() string {
	if p >= 0 && int(p) < len(profileNames) {
		return profileNames[p]
	}
	return "unknown"
}

// ParseProfile parses a profile name. "auto" and "" detect the profile
// from the environment through getenv.
func ParseProfile(s string, getenv func(string) string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectProfile(getenv), nil
	case "truecolor", "24bit":
		return TrueColor, nil
	case "256", "ansi256":
		return ANSI256, nil
	case "16", "ansi", "ansi16":
		return ANSI16, nil
	case "mono", "none":
		return Mono, nil
	default:
		return TrueColor, fmt.Errorf("unknown color profile %q", s)
	}
}

// DetectProfile picks the profile from NO_COLOR, COLORTERM and the color
// count of TERM's terminfo entry. Terminals without an entry are judged by
// the name alone.
func DetectProfile(getenv func(string) string) Profile {
	if getenv == nil {
		return ANSI16
	}
	if getenv("NO_COLOR") != "" {
		return Mono
	}
	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return TrueColor
	}
	term := getenv("TERM")
	switch {
	case term == "dumb":
		return Mono
	case strings.Contains(term, "truecolor"):
		// Entries fabricated for -truecolor names do not set TrueColor.
		return TrueColor
	}
	if ti, err := terminfo.LookupTerminfo(term); err == nil {
		return profileForColors(ti.Colors, ti.TrueColor)
	}
	switch {
	case strings.Contains(term, "direct"):
		return TrueColor
	case strings.Contains(term, "256color"):
		return ANSI256
	default:
		return ANSI16
	}
}

func profileForColors(colors int, direct bool) Profile {
	switch {
	case direct:
		return TrueColor
	case colors >= 256:
		return ANSI256
	case colors >= 8:
		return ANSI16
	default:
		return Mono
	}
}

// Convert maps c into the palette of the profile. Mono maps every color to
// the terminal default.
func (p Profile) Convert(c core.Color) core.Color {
	if c.Default {
		return c
	}
	switch p {
	case ANSI256:
		return c.To256()
	case ANSI16:
		return c.To16()
	case Mono:
		return core.ColorDefault
	default:
		return c
	}
}
