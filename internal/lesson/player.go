package lesson

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/nav"
)

// FinishXP is awarded when the learner moves on to the activities.
const FinishXP = 50

var (
	ErrAlreadyFinished  = errors.New("lesson already finished")
	ErrUnknownSubtitles = errors.New("unknown subtitle mode")
	ErrUnsupportedSpeed = errors.New("unsupported playback speed")
)

// SubtitleMode selects which subtitle tracks are shown.
type SubtitleMode string

const (
	SubtitlesEN   SubtitleMode = "en"
	SubtitlesPT   SubtitleMode = "pt"
	SubtitlesBoth SubtitleMode = "both"
)

// SubtitleModes returns the modes in cycle order.
func SubtitleModes() []SubtitleMode {
	return []SubtitleMode{SubtitlesEN, SubtitlesPT, SubtitlesBoth}
}

// Label returns the selector label.
func (m SubtitleMode) Label() string {
	switch m {
	case SubtitlesEN:
		return "EN"
	case SubtitlesPT:
		return "PT"
	case SubtitlesBoth:
		return "EN + PT"
	}
	return string(m)
}

// Speed is a playback rate multiplier.
type Speed float64

// Speeds returns the selectable playback rates in ascending order.
func Speeds() []Speed {
	return []Speed{0.5, 0.75, 1.0, 1.25, 1.5}
}

// DefaultSpeed is the normal playback rate.
const DefaultSpeed Speed = 1.0

func (s Speed) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64) + "x"
}

// ValidSpeed reports whether s is one of Speeds.
func ValidSpeed(s Speed) bool {
	for _, known := range Speeds() {
		if s == known {
			return true
		}
	}
	return false
}

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

// Player is the state of one visit to the lesson screen. Playback is
// simulated; only the controls are tracked.
type Player struct {
	lesson    catalog.Lesson
	playing   bool
	subtitles SubtitleMode
	speed     Speed
	favorited bool
	replays   int
	finished  bool
	log       *zap.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPlayer returns a paused player with both subtitle tracks at normal
// speed.
func NewPlayer(l catalog.Lesson, opts ...Option) *Player {
	p := &Player{
		lesson:    l,
		subtitles: SubtitlesBoth,
		speed:     DefaultSpeed,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Player) Lesson() catalog.Lesson  { return p.lesson }
func (p *Player) Playing() bool           { return p.playing }
func (p *Player) Subtitles() SubtitleMode { return p.subtitles }
func (p *Player) Speed() Speed            { return p.speed }
func (p *Player) Favorited() bool         { return p.favorited }
func (p *Player) Replays() int            { return p.replays }
func (p *Player) Finished() bool          { return p.finished }

// TogglePlay flips between playing and paused.
func (p *Player) TogglePlay() { p.playing = !p.playing }

// ToggleFavorite flips the favorite marker.
func (p *Player) ToggleFavorite() { p.favorited = !p.favorited }

// SetSubtitles selects a subtitle mode.
func (p *Player) SetSubtitles(m SubtitleMode) error {
	switch m {
	case SubtitlesEN, SubtitlesPT, SubtitlesBoth:
		p.subtitles = m
		return nil
	}
	p.log.Warn("unknown subtitle mode", zap.String("mode", string(m)))
	return fmt.Errorf("set subtitles %q: %w", m, ErrUnknownSubtitles)
}

// CycleSubtitles advances to the next subtitle mode.
func (p *Player) CycleSubtitles() SubtitleMode {
	modes := SubtitleModes()
	for i, m := range modes {
		if m == p.subtitles {
			p.subtitles = modes[(i+1)%len(modes)]
			break
		}
	}
	return p.subtitles
}

// SetSpeed selects a playback rate.
func (p *Player) SetSpeed(s Speed) error {
	if !ValidSpeed(s) {
		p.log.Warn("unsupported speed", zap.Float64("speed", float64(s)))
		return fmt.Errorf("set speed %v: %w", float64(s), ErrUnsupportedSpeed)
	}
	p.speed = s
	return nil
}

// Faster steps up one playback rate, stopping at the fastest.
func (p *Player) Faster() Speed { return p.step(1) }

// Slower steps down one playback rate, stopping at the slowest.
func (p *Player) Slower() Speed { return p.step(-1) }

func (p *Player) step(dir int) Speed {
	speeds := Speeds()
	for i, s := range speeds {
		if s == p.speed {
			j := i + dir
			if j >= 0 && j < len(speeds) {
				p.speed = speeds[j]
			}
			break
		}
	}
	return p.speed
}

// Replay restarts the video from the beginning and starts playing.
func (p *Player) Replay() {
	p.replays++
	p.playing = true
}

// Finish awards FinishXP and opens the activities. It succeeds once per
// player, and awards nothing when the activities cannot be opened.
func (p *Player) Finish(pr Progress, n Navigator) error {
	if p.finished {
		p.log.Warn("lesson finished twice", zap.Int("lesson", p.lesson.ID))
		return fmt.Errorf("finish lesson %d: %w", p.lesson.ID, ErrAlreadyFinished)
	}
	if err := n.Check(nav.Activities); err != nil {
		return fmt.Errorf("finish lesson %d: %w", p.lesson.ID, err)
	}
	if err := pr.AddXP(FinishXP); err != nil {
		return fmt.Errorf("finish lesson %d: %w", p.lesson.ID, err)
	}
	p.finished = true
	p.playing = false
	p.log.Debug("lesson finished", zap.Int("lesson", p.lesson.ID), zap.Int("xp", FinishXP))
	if _, err := n.GoTo(nav.Activities); err != nil {
		return fmt.Errorf("finish lesson %d: %w", p.lesson.ID, err)
	}
	return nil
}
