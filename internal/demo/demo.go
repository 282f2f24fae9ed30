// Package demo is a small dashboard exercising the widget set: nested
// flex layout, bordered boxes, theming, a repaint boundary, state updates
// driven from outside the UI goroutine and a panel that fails to build.
package demo

import (
	"fmt"
	"time"

	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/renderer/backend"
	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/core"
	"github.com/dshills/tessera/internal/renderer/render"
	"github.com/dshills/tessera/internal/widget"
)

// historySize is how many key names the keys panel keeps.
const historySize = 8

// WarmTheme is the alternative theme toggled with 't'.
var WarmTheme = warmTheme()

func warmTheme() widget.ThemeData {
	amber, _ := core.ColorFromHex("#ffb000")
	rust, _ := core.ColorFromHex("#b7410e")
	return widget.ThemeData{
		Text:   core.DefaultStyle().WithForeground(amber.Blend(core.ColorWhite, 0.6)),
		Border: core.DefaultStyle().WithForeground(rust),
		Accent: core.DefaultStyle().WithForeground(amber).Bold(),
		Muted:  core.DefaultStyle().WithForeground(rust.Blend(core.ColorGray, 0.5)),
	}
}

// Controller feeds input and clock ticks into a mounted Dashboard. Its
// methods must run on the UI goroutine.
type Controller struct {
	state  *dashboardState
	OnQuit func()
}

// NewController returns a controller for one Dashboard.
func NewController() *Controller { return &Controller{} }

// HandleEvent updates the dashboard for a key. 't' toggles the theme, 'p'
// breaks and repairs the status panel and 'q' quits.
func (c *Controller) HandleEvent(ev backend.Event) bool {
	s := c.state
	if s == nil || ev.Type != backend.EventKey {
		return false
	}
	if ev.Key == backend.KeyRune {
		switch ev.Rune {
		case 'q':
			if c.OnQuit != nil {
				c.OnQuit()
			}
			return true
		case 't':
			s.ctx.SetState(func() { s.warm = !s.warm })
			return true
		case 'p':
			s.ctx.SetState(func() { s.broken = !s.broken })
			return true
		}
	}
	name := ev.Key.String()
	if ev.Key == backend.KeyRune {
		name = fmt.Sprintf("%q", ev.Rune)
	}
	s.ctx.SetState(func() {
		s.presses++
		s.history = append(s.history, name)
		if len(s.history) > historySize {
			s.history = s.history[len(s.history)-historySize:]
		}
	})
	return true
}

// Tick shows now in the header.
func (c *Controller) Tick(now time.Time) {
	if s := c.state; s != nil {
		s.ctx.SetState(func() { s.now = now })
	}
}

// Dashboard is the demo's root component.
type Dashboard struct {
	element.Base
	Controller *Controller
}

func (d Dashboard) CreateState() element.State { return &dashboardState{} }

type dashboardState struct {
	ctx     element.BuildContext
	now     time.Time
	presses int
	history []string
	warm    bool
	broken  bool
}

func (s *dashboardState) InitState(ctx element.BuildContext) error {
	s.ctx = ctx
	s.attach()
	return nil
}

func (s *dashboardState) DidUpdateComponent(element.Component) { s.attach() }

func (s *dashboardState) attach() {
	if c := s.ctx.Component().(Dashboard).Controller; c != nil {
		c.state = s
	}
}

func (s *dashboardState) Dispose() {
	if c := s.ctx.Component().(Dashboard).Controller; c != nil && c.state == s {
		c.state = nil
	}
}

func (s *dashboardState) Build(element.BuildContext) element.Component {
	theme, themeName := widget.DefaultTheme, "default"
	if s.warm {
		theme, themeName = WarmTheme, "warm"
	}

	clock := "--:--:--"
	if !s.now.IsZero() {
		clock = s.now.Format("15:04:05")
	}

	keys := make([]element.Component, 0, len(s.history))
	for _, k := range s.history {
		keys = append(keys, widget.NewText(k))
	}
	if len(keys) == 0 {
		keys = append(keys, mutedText("press any key"))
	}

	var panel element.Component = mutedText("press p to break this panel")
	if s.broken {
		panel = brokenPanel{}
	}

	return widget.Theme{Data: theme, Child: widget.Column{Children: []element.Component{
		widget.Box{
			Border:  canvas.BorderRounded,
			Title:   "tessera",
			Padding: render.Insets{Left: 1, Right: 1},
			Child: widget.Row{Main: render.MainSpaceBetween, Children: []element.Component{
				accentText("retained-mode terminal UI"),
				widget.NewText(clock),
			}},
		},
		widget.Expanded(widget.Row{Gap: 1, Cross: render.CrossStretch, Children: []element.Component{
			widget.Expanded(widget.Box{
				Border:  canvas.BorderSingle,
				Title:   "keys",
				Padding: render.Insets{Left: 1},
				Child:   widget.Column{Children: keys},
			}),
			widget.Expanded(widget.Box{
				Border:  canvas.BorderSingle,
				Title:   "status",
				Padding: render.Insets{Left: 1},
				Child: widget.Column{Children: []element.Component{
					widget.NewText(fmt.Sprintf("presses: %d", s.presses)),
					widget.NewText("theme: " + themeName),
					widget.Expanded(panel),
				}},
			}),
		}}),
		widget.RepaintBoundary{Child: mutedText("t theme · p break · q quit")},
	}}}
}

// accentText and mutedText read the theme so they restyle when it changes.
type accentText string

func (t accentText) Key() element.Key { return element.Key{} }

func (t accentText) Build(ctx element.BuildContext) element.Component {
	return widget.Styled(string(t), widget.ThemeOf(ctx).Accent)
}

type mutedText string

func (t mutedText) Key() element.Key { return element.Key{} }

func (t mutedText) Build(ctx element.BuildContext) element.Component {
	return widget.Styled(string(t), widget.ThemeOf(ctx).Muted)
}

// brokenPanel always fails to build; the engine shows an error box in its
// place.
type brokenPanel struct{ element.Base }

func (brokenPanel) Build(element.BuildContext) element.Component {
	panic("status check failed")
}
