package learner

import (
	"errors"
	"fmt"
)

// Defaults applied when the application starts.
const (
	DefaultXP         = 1250
	DefaultStreakDays = 7
	DefaultLevel      = LevelB1
)

// ErrInvalidXP is returned when an XP award is not a positive amount.
var ErrInvalidXP = errors.New("xp amount must be positive")

// ErrUnknownLevel is returned for a proficiency label outside A1..C2.
var ErrUnknownLevel = errors.New("unknown proficiency level")

// Level is a CEFR proficiency band. It is a display value only and is
// never derived from XP.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// AllLevels returns the CEFR bands in ascending order.
func AllLevels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}
}

// ParseLevel validates a level label.
func ParseLevel(s string) (Level, error) {
	for _, l := range AllLevels() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// LoginMethod records which login button was used. The identity provider
// is a mock, so the method is informational.
type LoginMethod string

const (
	MethodGoogle LoginMethod = "google"
	MethodEmail  LoginMethod = "email"
	MethodGuest  LoginMethod = "guest"
)

// State holds the identity and progress facts of the single learner.
// It is owned by the event loop and is not safe for concurrent use.
type State struct {
	loggedIn   bool
	method     LoginMethod
	xp         int
	streakDays int
	level      Level
}

// NewState creates the learner state with the startup defaults.
func NewState() *State {
	return &State{
		xp:         DefaultXP,
		streakDays: DefaultStreakDays,
		level:      DefaultLevel,
	}
}

func (s *State) LoggedIn() bool      { return s.loggedIn }
func (s *State) Method() LoginMethod { return s.method }
func (s *State) XP() int             { return s.xp }
func (s *State) StreakDays() int     { return s.streakDays }
func (s *State) Level() Level        { return s.level }

// SetLoggedIn flips the login flag. Only the auth service calls this;
// XP, streak and level are never touched here.
func (s *State) SetLoggedIn(loggedIn bool, method LoginMethod) {
	s.loggedIn = loggedIn
	if loggedIn {
		s.method = method
	} else {
		s.method = ""
	}
}

// SetLevel changes the displayed proficiency level.
func (s *State) SetLevel(l Level) error {
	if _, err := ParseLevel(string(l)); err != nil {
		return err
	}
	s.level = l
	return nil
}

// AddXP accumulates XP. There is no cap and no decay.
func (s *State) AddXP(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("add %d xp: %w", amount, ErrInvalidXP)
	}
	s.xp += amount
	return nil
}

// Snapshot is a read-only copy of State for the presentation layer.
type Snapshot struct {
	LoggedIn   bool
	Method     LoginMethod
	XP         int
	StreakDays int
	Level      Level
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		LoggedIn:   s.loggedIn,
		Method:     s.method,
		XP:         s.xp,
		StreakDays: s.streakDays,
		Level:      s.level,
	}
}
