package auth

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/nav"
)

var (
	// ErrAlreadyLoggedIn is returned by Login when a learner is logged in.
	ErrAlreadyLoggedIn = errors.New("already logged in")

	// ErrNotLoggedIn is returned by Logout when nobody is logged in.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrUnknownMethod is returned for a login method the mock provider
	// does not offer.
	ErrUnknownMethod = errors.New("unknown login method")
)

// Service moves the learner between logged-out and logged-in. The identity
// provider is a mock: every login succeeds without credentials.
type Service struct {
	state     *learner.State
	navigator *nav.Navigator
	home      nav.Screen
	log       *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHome sets the screen opened after login. Defaults to the dashboard.
func WithHome(s nav.Screen) Option {
	return func(svc *Service) {
		if s.RequiresLogin() {
			svc.home = s
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

// NewService creates an auth service over the learner state and navigator.
func NewService(state *learner.State, navigator *nav.Navigator, opts ...Option) *Service {
	svc := &Service{
		state:     state,
		navigator: navigator,
		home:      nav.Dashboard,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Methods returns the login methods offered on the login screen.
func Methods() []learner.LoginMethod {
	return []learner.LoginMethod{learner.MethodGoogle, learner.MethodEmail, learner.MethodGuest}
}

// Login marks the learner logged in and navigates to the home screen.
func (s *Service) Login(method learner.LoginMethod) (learner.Snapshot, error) {
	if !validMethod(method) {
		return s.state.Snapshot(), fmt.Errorf("login with %q: %w", method, ErrUnknownMethod)
	}
	if s.state.LoggedIn() {
		s.log.Warn("login rejected", zap.Error(ErrAlreadyLoggedIn))
		return s.state.Snapshot(), fmt.Errorf("login: %w", ErrAlreadyLoggedIn)
	}

	s.state.SetLoggedIn(true, method)
	if _, err := s.navigator.GoTo(s.home); err != nil {
		s.state.SetLoggedIn(false, "")
		return s.state.Snapshot(), fmt.Errorf("login: %w", err)
	}

	s.log.Info("learner logged in",
		zap.String("method", string(method)),
		zap.Int("xp", s.state.XP()))
	return s.state.Snapshot(), nil
}

// Logout marks the learner logged out and navigates to the login screen.
// XP, streak and level are kept for the rest of the process.
func (s *Service) Logout() (learner.Snapshot, error) {
	if !s.state.LoggedIn() {
		s.log.Warn("logout rejected", zap.Error(ErrNotLoggedIn))
		return s.state.Snapshot(), fmt.Errorf("logout: %w", ErrNotLoggedIn)
	}

	method := s.state.Method()
	s.state.SetLoggedIn(false, "")
	if _, err := s.navigator.GoTo(nav.Login); err != nil {
		s.state.SetLoggedIn(true, method)
		return s.state.Snapshot(), fmt.Errorf("logout: %w", err)
	}

	s.log.Info("learner logged out", zap.Int("xp", s.state.XP()))
	return s.state.Snapshot(), nil
}

func validMethod(m learner.LoginMethod) bool {
	for _, known := range Methods() {
		if m == known {
			return true
		}
	}
	return false
}
