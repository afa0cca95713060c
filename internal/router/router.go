package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/screen"
)

// GoToMsg requests navigation to a screen through the navigator.
type GoToMsg struct {
	Screen nav.Screen
}

// GoTo returns a command that emits GoToMsg.
func GoTo(s nav.Screen) tea.Cmd {
	return func() tea.Msg { return GoToMsg{Screen: s} }
}

// ReplaceScreenMsg swaps the hosted model without changing the current
// navigator screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// NavErrorMsg reports a navigation the navigator rejected.
type NavErrorMsg struct {
	Err error
}

// Navigator is the subset of nav.Navigator the router drives.
type Navigator interface {
	Current() nav.Screen
	GoTo(s nav.Screen) (nav.Transition, error)
}

// Factory builds a fresh model for a screen.
type Factory func() screen.Screen

// Router hosts the model for the navigator's current screen. Whenever the
// current screen changes, a fresh model is built, so transient state is
// reset on every entry.
type Router struct {
	navigator Navigator
	factories map[nav.Screen]Factory
	hosted    nav.Screen
	active    screen.Screen
}

// New creates a router hosting the navigator's current screen. Init on the
// hosted model is not run until Init is called.
func New(n Navigator, factories map[nav.Screen]Factory) *Router {
	r := &Router{navigator: n, factories: factories}
	r.hosted = n.Current()
	r.active = r.build(r.hosted)
	return r
}

func (r *Router) build(id nav.Screen) screen.Screen {
	if f, ok := r.factories[id]; ok && f != nil {
		return f()
	}
	return nil
}

// Init runs the hosted model's Init.
func (r *Router) Init() tea.Cmd {
	if r.active == nil {
		return nil
	}
	return r.active.Init()
}

// Active returns the hosted model.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Hosted returns the navigator screen the active model belongs to.
func (r *Router) Hosted() nav.Screen {
	return r.hosted
}

// Replace hosts s in place of the active model and calls its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.active = s
	if s == nil {
		return nil
	}
	return s.Init()
}

// Sync rebuilds the hosted model if the navigator moved to another
// screen. The outgoing model is told to leave first.
func (r *Router) Sync() tea.Cmd {
	cur := r.navigator.Current()
	if cur == r.hosted && r.active != nil {
		return nil
	}
	if l, ok := r.active.(screen.Leaver); ok && cur != r.hosted {
		l.Leave()
	}
	r.hosted = cur
	return r.Replace(r.build(cur))
}

// Update handles navigation messages and forwards everything else to the
// active model. Services called by the model may move the navigator, so
// the router syncs after every update.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case GoToMsg:
		if _, err := r.navigator.GoTo(msg.Screen); err != nil {
			return func() tea.Msg { return NavErrorMsg{Err: err} }
		}
		return r.Sync()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	if r.active == nil {
		return r.Sync()
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return tea.Batch(cmd, r.Sync())
}

// View renders the active model.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
