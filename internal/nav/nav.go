package nav

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrUnknownScreen is returned for a screen outside the closed set.
	ErrUnknownScreen = errors.New("unknown screen")

	// ErrLoginRequired is returned when a post-login screen is requested
	// while the learner is logged out.
	ErrLoginRequired = errors.New("login required")

	// ErrLoggedIn is returned when the login screen is requested while the
	// learner is logged in. Only logout leads back to it.
	ErrLoggedIn = errors.New("already logged in")
)

// Screen identifies one top-level view. The set is closed.
type Screen string

const (
	Login      Screen = "login"
	Dashboard  Screen = "dashboard"
	Lesson     Screen = "lesson"
	Activities Screen = "activities"
	AITeacher  Screen = "ai_teacher"
	Profile    Screen = "profile"
	Settings   Screen = "settings"
)

// AllScreens returns every screen in navigation-bar order.
func AllScreens() []Screen {
	return []Screen{Login, Dashboard, Lesson, Activities, AITeacher, Profile, Settings}
}

// Valid reports whether s is a member of the closed set.
func (s Screen) Valid() bool {
	for _, known := range AllScreens() {
		if s == known {
			return true
		}
	}
	return false
}

// RequiresLogin reports whether s is only reachable while logged in.
func (s Screen) RequiresLogin() bool {
	return s != Login
}

// Title returns the header label for s.
func (s Screen) Title() string {
	switch s {
	case Login:
		return "Entrar"
	case Dashboard:
		return "Home"
	case Lesson:
		return "Lição"
	case Activities:
		return "Atividades"
	case AITeacher:
		return "Professor IA"
	case Profile:
		return "Perfil"
	case Settings:
		return "Configurações"
	}
	return string(s)
}

// ParseScreen converts a user-supplied name into a Screen. Dashes are
// accepted in place of underscores.
func ParseScreen(name string) (Screen, error) {
	s := Screen(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	return s, nil
}

// Gate reports whether the learner is logged in.
type Gate interface {
	LoggedIn() bool
}

// Transition describes the outcome of a GoTo call.
type Transition struct {
	From Screen
	To   Screen
	// Entered is true when the current screen changed. Screen-scoped
	// sessions are rebuilt only on entry.
	Entered bool
}

// Navigator owns the single current-screen value. There is no history
// stack; "back" behavior is local to each screen.
type Navigator struct {
	gate    Gate
	current Screen
	entries int
	log     *zap.Logger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// New creates a Navigator positioned on the login screen.
func New(gate Gate, opts ...Option) *Navigator {
	n := &Navigator{gate: gate, current: Login, entries: 1, log: zap.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Current returns the current screen.
func (n *Navigator) Current() Screen {
	return n.current
}

// Entries counts how many times a screen has been entered, including the
// initial one. Hosts compare it to detect re-entry.
func (n *Navigator) Entries() int {
	return n.entries
}

// Check reports whether GoTo(s) would be accepted, without moving. The
// login gate is checked against the Gate: post-login screens need a
// logged-in learner, and the login screen needs a logged-out one.
func (n *Navigator) Check(s Screen) error {
	if !s.Valid() {
		return fmt.Errorf("go to %q: %w", s, ErrUnknownScreen)
	}
	loggedIn := n.gate.LoggedIn()
	if s.RequiresLogin() && !loggedIn {
		return fmt.Errorf("go to %s: %w", s, ErrLoginRequired)
	}
	if !s.RequiresLogin() && loggedIn {
		return fmt.Errorf("go to %s: %w", s, ErrLoggedIn)
	}
	return nil
}

// GoTo makes s the current screen once Check accepts it.
func (n *Navigator) GoTo(s Screen) (Transition, error) {
	if err := n.Check(s); err != nil {
		n.log.Warn("navigation rejected",
			zap.String("from", string(n.current)),
			zap.String("to", string(s)),
			zap.Error(err))
		return Transition{}, err
	}

	t := Transition{From: n.current, To: s, Entered: n.current != s}
	if t.Entered {
		n.current = s
		n.entries++
		n.log.Debug("navigated",
			zap.String("from", string(t.From)),
			zap.String("to", string(s)))
	}
	return t, nil
}
