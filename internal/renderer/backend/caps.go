package backend

import (
	"github.com/gdamore/tcell/v2/terminfo"
	_ "github.com/gdamore/tcell/v2/terminfo/extended"
)

// ttyCaps are the sequences a TTY writes when it takes over the terminal
// and when it gives it back.
type ttyCaps struct {
	enterCA, exitCA        string
	hideCursor, showCursor string
	attrOff                string
}

var ansiCaps = ttyCaps{
	enterCA:    "\033[?1049h",
	exitCA:     "\033[?1049l",
	hideCursor: "\033[?25l",
	showCursor: "\033[?25h",
	attrOff:    "\033[0m",
}

// capsFor returns the sequences from term's terminfo entry. Capabilities
// the entry lacks, or an unknown term, fall back to ANSI.
func capsFor(term string) ttyCaps {
	c := ansiCaps
	ti, err := terminfo.LookupTerminfo(term)
	if err != nil {
		return c
	}
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&c.enterCA, ti.EnterCA},
		{&c.exitCA, ti.ExitCA},
		{&c.hideCursor, ti.HideCursor},
		{&c.showCursor, ti.ShowCursor},
		{&c.attrOff, ti.AttrOff},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return c
}
