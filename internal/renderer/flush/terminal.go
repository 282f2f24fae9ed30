package flush

import (
	"github.com/gdamore/tcell/v2/terminfo"
	// Registers the terminal descriptions LookupTerminal searches.
	_ "github.com/gdamore/tcell/v2/terminfo/extended"
)

// ansiTerminal is used for terminals without a terminfo entry. It speaks
// ECMA-48 with the xterm 256-color and direct-color extensions.
var ansiTerminal = &terminfo.Terminfo{
	Name:          "ansi-generic",
	Colors:        256,
	Clear:         "\x1b[2J",
	AttrOff:       "\x1b[0m",
	Bold:          "\x1b[1m",
	Dim:           "\x1b[2m",
	Italic:        "\x1b[3m",
	Underline:     "\x1b[4m",
	Blink:         "\x1b[5m",
	Reverse:       "\x1b[7m",
	StrikeThrough: "\x1b[9m",
	SetFg:         "\x1b[%?%p1%{8}%<%t3%p1%d%e%p1%{16}%<%t9%p1%{8}%-%d%e38;5;%p1%d%;m",
	SetBg:         "\x1b[%?%p1%{8}%<%t4%p1%d%e%p1%{16}%<%t10%p1%{8}%-%d%e48;5;%p1%d%;m",
	SetFgRGB:      "\x1b[38;2;%p1%d;%p2%d;%p3%dm",
	SetBgRGB:      "\x1b[48;2;%p1%d;%p2%d;%p3%dm",
	SetCursor:     "\x1b[%i%p1%d;%p2%dH",
	TrueColor:     true,
}

// LookupTerminal returns the terminfo entry for the terminal named term,
// or a generic ANSI description when term is unknown.
func LookupTerminal(term string) *terminfo.Terminfo {
	if ti, err := terminfo.LookupTerminfo(term); err == nil {
		return ti
	}
	return ansiTerminal
}
