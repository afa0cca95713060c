package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learnflix/learnflix/internal/learner"
)

const (
	// ReplyDelay is the fixed latency before the AI turn is appended.
	ReplyDelay = time.Second

	// TurnXP is awarded for every completed AI turn.
	TurnXP = 20
)

var (
	ErrUnknownScenario  = errors.New("unknown scenario")
	ErrNoScenario       = errors.New("no scenario selected")
	ErrMissingGreeting  = errors.New("missing scenario greeting")
	ErrProviderRequired = errors.New("feedback provider required")
)

// Scenario is a named conversational context.
type Scenario string

const (
	Casual     Scenario = "casual"
	Travel     Scenario = "travel"
	Work       Scenario = "work"
	Interview  Scenario = "interview"
	Restaurant Scenario = "restaurant"
)

// AllScenarios returns the scenarios in picker order.
func AllScenarios() []Scenario {
	return []Scenario{Casual, Travel, Work, Interview, Restaurant}
}

// Valid reports whether s is a known scenario.
func (s Scenario) Valid() bool {
	for _, known := range AllScenarios() {
		if s == known {
			return true
		}
	}
	return false
}

// Role identifies who sent a message.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Message is one transcript entry. Feedback is only set on AI replies
// that were scored.
type Message struct {
	Role     Role
	Text     string
	Feedback *Feedback
}

// Progress receives XP awards.
type Progress interface {
	AddXP(amount int) error
}

// PendingReply identifies an AI turn scheduled by SendUserMessage. It is
// bound to the session and generation that created it; once either moves
// on the reply is discarded.
type PendingReply struct {
	SessionID  string
	Generation uint64
	Turn       int
	UserText   string
	Due        time.Duration
}

// Config wires a Session.
type Config struct {
	Greetings map[Scenario]string
	Provider  FeedbackProvider
	Progress  Progress
	Level     learner.Level
	Logger    *zap.Logger
}

// Session is the AI-teacher state machine: no scenario, or an active
// scenario with an append-only transcript.
type Session struct {
	id         string
	generation uint64
	scenario   Scenario
	transcript []Message
	turns      int
	awaiting   int

	recording  bool
	aiSpeaking bool

	greetings map[Scenario]string
	provider  FeedbackProvider
	progress  Progress
	level     learner.Level
	log       *zap.Logger
}

// NewSession validates the config and returns a session in the
// no-scenario state.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Provider == nil {
		return nil, ErrProviderRequired
	}
	for _, sc := range AllScenarios() {
		if strings.TrimSpace(cfg.Greetings[sc]) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingGreeting, sc)
		}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		id:        uuid.New().String(),
		greetings: cfg.Greetings,
		provider:  cfg.Provider,
		progress:  cfg.Progress,
		level:     cfg.Level,
		log:       log,
	}, nil
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Generation() uint64 { return s.generation }
func (s *Session) Scenario() Scenario { return s.scenario }
func (s *Session) Active() bool       { return s.scenario != "" }
func (s *Session) Recording() bool    { return s.recording }
func (s *Session) AISpeaking() bool   { return s.aiSpeaking }

// Awaiting reports how many AI turns are still scheduled.
func (s *Session) Awaiting() int { return s.awaiting }

// Transcript returns a deep copy of the messages. Feedback is cloned so
// callers cannot rewrite recorded scores.
func (s *Session) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	for i, m := range s.transcript {
		m.Feedback = m.Feedback.clone()
		out[i] = m
	}
	return out
}

// SelectScenario starts a fresh conversation with the scenario greeting.
// Replies scheduled for an earlier conversation are cancelled.
func (s *Session) SelectScenario(sc Scenario) error {
	if !sc.Valid() {
		s.log.Warn("unknown scenario", zap.String("scenario", string(sc)))
		return fmt.Errorf("select scenario %q: %w", sc, ErrUnknownScenario)
	}
	s.reset()
	s.scenario = sc
	s.transcript = []Message{{Role: RoleAI, Text: s.greetings[sc]}}
	s.log.Debug("scenario selected",
		zap.String("session", s.id),
		zap.String("scenario", string(sc)),
		zap.Uint64("generation", s.generation))
	return nil
}

// Back returns to the scenario picker and discards the transcript.
func (s *Session) Back() {
	s.reset()
	s.log.Debug("conversation closed",
		zap.String("session", s.id),
		zap.Uint64("generation", s.generation))
}

func (s *Session) reset() {
	s.generation++
	s.scenario = ""
	s.transcript = nil
	s.turns = 0
	s.awaiting = 0
	s.recording = false
	s.aiSpeaking = false
}

// SendUserMessage appends the learner's message and returns the AI turn to
// complete after ReplyDelay. Blank text is ignored and yields no pending
// reply.
func (s *Session) SendUserMessage(text string) (*PendingReply, error) {
	if !s.Active() {
		s.log.Warn("message without scenario", zap.String("session", s.id))
		return nil, fmt.Errorf("send message: %w", ErrNoScenario)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	s.transcript = append(s.transcript, Message{Role: RoleUser, Text: text})
	s.turns++
	s.awaiting++
	return &PendingReply{
		SessionID:  s.id,
		Generation: s.generation,
		Turn:       s.turns,
		UserText:   text,
		Due:        ReplyDelay,
	}, nil
}

// Stale reports whether p no longer belongs to the current conversation.
func (s *Session) Stale(p PendingReply) bool {
	return p.SessionID != s.id || p.Generation != s.generation || !s.Active()
}

// CompleteReply appends the AI turn for p and awards TurnXP. A stale
// pending reply is dropped without touching the transcript, and false is
// returned.
func (s *Session) CompleteReply(ctx context.Context, p PendingReply) (bool, error) {
	if s.Stale(p) {
		s.log.Debug("stale reply discarded",
			zap.String("session", p.SessionID),
			zap.Uint64("generation", p.Generation),
			zap.Uint64("current_generation", s.generation))
		return false, nil
	}

	reply, err := s.provider.Reply(ctx, ReplyRequest{
		Scenario:   s.scenario,
		Level:      s.level,
		Transcript: s.Transcript(),
		UserText:   p.UserText,
	})
	if err != nil {
		s.awaiting--
		return false, fmt.Errorf("reply for turn %d: %w", p.Turn, err)
	}
	if reply.Feedback != nil {
		if err := reply.Feedback.Validate(); err != nil {
			s.awaiting--
			return false, fmt.Errorf("reply for turn %d: %w", p.Turn, err)
		}
	}

	s.transcript = append(s.transcript, Message{
		Role:     RoleAI,
		Text:     reply.Text,
		Feedback: reply.Feedback.clone(),
	})
	s.awaiting--

	if s.progress != nil {
		if err := s.progress.AddXP(TurnXP); err != nil {
			return true, fmt.Errorf("award turn xp: %w", err)
		}
	}
	return true, nil
}

// ToggleRecording flips the microphone indicator. It does not affect the
// transcript.
func (s *Session) ToggleRecording() { s.recording = !s.recording }

// ToggleAISpeaking flips the speaker indicator. It does not affect the
// transcript.
func (s *Session) ToggleAISpeaking() { s.aiSpeaking = !s.aiSpeaking }

// Snapshot is a read-only view for rendering.
type Snapshot struct {
	ID         string
	Scenario   Scenario
	Transcript []Message
	Awaiting   int
	Recording  bool
	AISpeaking bool
	Level      learner.Level
}

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:         s.id,
		Scenario:   s.scenario,
		Transcript: s.Transcript(),
		Awaiting:   s.awaiting,
		Recording:  s.recording,
		AISpeaking: s.aiSpeaking,
		Level:      s.level,
	}
}

// GreetingsFrom converts catalog greetings keyed by scenario id.
func GreetingsFrom(byID map[string]string) map[Scenario]string {
	out := make(map[Scenario]string, len(byID))
	for id, g := range byID {
		out[Scenario(id)] = g
	}
	return out
}
