package activity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/nav"
)

const (
	// TotalQuestions is the number of correct answers that completes a session.
	TotalQuestions = 5

	// RewardXP is awarded when the learner claims the completion reward.
	RewardXP = 100
)

var (
	ErrUnknownType      = errors.New("unknown activity type")
	ErrTypeNotActive    = errors.New("activity type is not active")
	ErrNoAnswer         = errors.New("no answer given")
	ErrChoiceOutOfRange = errors.New("choice out of range")
	ErrNotComplete      = errors.New("activities not complete")
	ErrRewardClaimed    = errors.New("reward already claimed")
)

// Type is one of the five activity formats.
type Type string

const (
	FillBlank   Type = "fill_blank"
	DragDrop    Type = "drag_drop"
	Quiz        Type = "quiz"
	ListenWrite Type = "listen_write"
	Speaking    Type = "speaking"
)

// AllTypes returns the activity formats in tab order.
func AllTypes() []Type {
	return []Type{FillBlank, DragDrop, Quiz, ListenWrite, Speaking}
}

// Valid reports whether t is a known activity format.
func (t Type) Valid() bool {
	for _, known := range AllTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Label returns the tab label.
func (t Type) Label() string {
	switch t {
	case FillBlank:
		return "Complete a Frase"
	case DragDrop:
		return "Arraste e Solte"
	case Quiz:
		return "Quiz"
	case ListenWrite:
		return "Ouça e Escreva"
	case Speaking:
		return "Speaking"
	}
	return string(t)
}

// Verdict is the outcome of the last submission on the active tab.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	}
	return "none"
}

// Answer carries a submission. Text is used by fill_blank and listen_write,
// Choice by quiz. NoChoice means nothing is selected.
type Answer struct {
	Text   string
	Choice int
}

// NoChoice marks an Answer or Draft without a quiz selection.
const NoChoice = -1

// TextAnswer builds an Answer for the text formats.
func TextAnswer(text string) Answer { return Answer{Text: text, Choice: NoChoice} }

// ChoiceAnswer builds an Answer for the quiz.
func ChoiceAnswer(i int) Answer { return Answer{Choice: i} }

// Draft is the in-progress answer of the active tab. It is discarded when
// the learner switches tabs.
type Draft struct {
	Text      string
	Choice    int
	Recording bool
}

func emptyDraft() Draft { return Draft{Choice: NoChoice} }

// Answer converts the draft into a submission.
func (d Draft) Answer() Answer { return Answer{Text: d.Text, Choice: d.Choice} }

// Progress receives XP awards.
type Progress interface {
	AddXP(amount int) error
}

// Navigator moves between screens. Check must accept exactly what GoTo
// accepts.
type Navigator interface {
	Check(s nav.Screen) error
	GoTo(s nav.Screen) (nav.Transition, error)
}

// Session is the state of one visit to the activities screen. All five
// formats share one score counter.
type Session struct {
	id      string
	content catalog.Activities
	active  Type
	draft   Draft
	score   int
	last    Verdict
	claimed bool
	log     *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession creates a session positioned on the fill-in-the-blank tab.
func NewSession(content catalog.Activities, opts ...Option) *Session {
	s := &Session{
		id:      uuid.New().String(),
		content: content,
		active:  FillBlank,
		draft:   emptyDraft(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string                  { return s.id }
func (s *Session) Active() Type                { return s.active }
func (s *Session) Draft() Draft                { return s.draft }
func (s *Session) Score() int                  { return s.score }
func (s *Session) LastVerdict() Verdict        { return s.last }
func (s *Session) Content() catalog.Activities { return s.content }

// Complete reports whether the completion panel is visible.
func (s *Session) Complete() bool {
	return s.score >= TotalQuestions
}

// Claimed reports whether the completion reward was taken.
func (s *Session) Claimed() bool {
	return s.claimed
}

// SelectType switches tabs. The shared score is kept; the draft and the
// last verdict belong to the tab and are reset.
func (s *Session) SelectType(t Type) error {
	if !t.Valid() {
		s.log.Warn("unknown activity type", zap.String("session", s.id), zap.String("type", string(t)))
		return fmt.Errorf("select %q: %w", t, ErrUnknownType)
	}
	if t == s.active {
		return nil
	}
	s.log.Debug("activity selected", zap.String("session", s.id), zap.String("type", string(t)))
	s.active = t
	s.draft = emptyDraft()
	s.last = VerdictNone
	return nil
}

// SetText replaces the text draft of the active tab.
func (s *Session) SetText(text string) {
	s.draft.Text = text
}

// SelectChoice sets the quiz selection.
func (s *Session) SelectChoice(i int) error {
	if s.active != Quiz {
		return fmt.Errorf("select choice: %w", ErrTypeNotActive)
	}
	if i < 0 || i >= len(s.content.Quiz.Options) {
		return fmt.Errorf("select choice %d: %w", i, ErrChoiceOutOfRange)
	}
	s.draft.Choice = i
	return nil
}

// ToggleRecording flips the speaking tab's recording indicator. It has no
// effect on scoring.
func (s *Session) ToggleRecording() {
	s.draft.Recording = !s.draft.Recording
}

// Submit evaluates an answer for the active tab. A correct verdict adds one
// to the shared score; the score is clamped at TotalQuestions. Wrong
// answers only record the verdict.
func (s *Session) Submit(t Type, a Answer) (Verdict, error) {
	if !t.Valid() {
		return VerdictNone, fmt.Errorf("submit %q: %w", t, ErrUnknownType)
	}
	if t != s.active {
		s.log.Warn("submit for inactive tab", zap.String("session", s.id), zap.String("type", string(t)))
		return VerdictNone, fmt.Errorf("submit %s while %s is active: %w", t, s.active, ErrTypeNotActive)
	}
	if s.claimed {
		return VerdictNone, fmt.Errorf("submit %s: %w", t, ErrRewardClaimed)
	}

	correct, err := s.evaluate(t, a)
	if err != nil {
		return VerdictNone, fmt.Errorf("submit %s: %w", t, err)
	}
	s.log.Debug("answer submitted",
		zap.String("session", s.id),
		zap.String("type", string(t)),
		zap.Bool("correct", correct))

	if !correct {
		s.last = VerdictIncorrect
		return s.last, nil
	}
	s.last = VerdictCorrect
	if s.score < TotalQuestions {
		s.score++
	}
	return s.last, nil
}

func (s *Session) evaluate(t Type, a Answer) (bool, error) {
	switch t {
	case FillBlank:
		got := normalize(a.Text)
		if got == "" {
			return false, ErrNoAnswer
		}
		return got == normalize(s.content.FillBlank.Answer), nil

	case Quiz:
		if a.Choice == NoChoice {
			return false, ErrNoAnswer
		}
		if a.Choice < 0 || a.Choice >= len(s.content.Quiz.Options) {
			return false, ErrChoiceOutOfRange
		}
		return a.Choice == s.content.Quiz.CorrectIndex, nil

	default:
		// Word order, audio and recorded speech are not checked.
		return true, nil
	}
}

// normalize trims surrounding whitespace and lowercases.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ClaimReward awards RewardXP and returns to the dashboard. It is only
// available once the session is complete, and only once. Nothing is
// awarded when the dashboard cannot be opened.
func (s *Session) ClaimReward(p Progress, n Navigator) error {
	if !s.Complete() {
		s.log.Warn("reward claimed early", zap.String("session", s.id), zap.Int("score", s.score))
		return fmt.Errorf("claim reward at %d/%d: %w", s.score, TotalQuestions, ErrNotComplete)
	}
	if s.claimed {
		s.log.Warn("reward claimed twice", zap.String("session", s.id))
		return fmt.Errorf("claim reward: %w", ErrRewardClaimed)
	}
	if err := n.Check(nav.Dashboard); err != nil {
		return fmt.Errorf("claim reward: %w", err)
	}
	if err := p.AddXP(RewardXP); err != nil {
		return fmt.Errorf("claim reward: %w", err)
	}
	s.claimed = true
	s.log.Debug("reward claimed", zap.String("session", s.id), zap.Int("xp", RewardXP))
	if _, err := n.GoTo(nav.Dashboard); err != nil {
		return fmt.Errorf("claim reward: %w", err)
	}
	return nil
}

// Snapshot is a read-only view for rendering.
type Snapshot struct {
	ID             string
	ActiveType     Type
	Score          int
	TotalQuestions int
	LastVerdict    Verdict
	Complete       bool
	Claimed        bool
	Draft          Draft
}

// Percent returns the score as a whole percentage of TotalQuestions.
func (s Snapshot) Percent() int {
	if s.TotalQuestions == 0 {
		return 0
	}
	return s.Score * 100 / s.TotalQuestions
}

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:             s.id,
		ActiveType:     s.active,
		Score:          s.score,
		TotalQuestions: TotalQuestions,
		LastVerdict:    s.last,
		Complete:       s.Complete(),
		Claimed:        s.claimed,
		Draft:          s.draft,
	}
}
