package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/learnflix/learnflix/internal/lesson"
)

var (
	ErrUnknownKey = errors.New("unknown setting")
	ErrLocked     = errors.New("setting is locked")
	ErrInvalid    = errors.New("invalid settings")
)

// Language is an interface language tag.
type Language string

const (
	LanguagePTBR Language = "pt-BR"
	LanguageENUS Language = "en-US"
	LanguageESES Language = "es-ES"
)

// Languages returns the selectable interface languages.
func Languages() []Language {
	return []Language{LanguagePTBR, LanguageENUS, LanguageESES}
}

func (l Language) Label() string {
	switch l {
	case LanguagePTBR:
		return "Português (Brasil)"
	case LanguageENUS:
		return "English (US)"
	case LanguageESES:
		return "Español"
	}
	return string(l)
}

// Difficulty is the preferred lesson difficulty.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

func (d Difficulty) Label() string {
	switch d {
	case DifficultyBeginner:
		return "Iniciante"
	case DifficultyIntermediate:
		return "Intermediário"
	case DifficultyAdvanced:
		return "Avançado"
	}
	return string(d)
}

// Settings holds the learner's preferences. Nothing else in the application
// reads them.
type Settings struct {
	DualSubtitles     bool         `validate:"-"`
	VideoSpeed        lesson.Speed `validate:"playback_speed"`
	Autoplay          bool         `validate:"-"`
	InterfaceLanguage Language     `validate:"oneof=pt-BR en-US es-ES"`
	DarkMode          bool         `validate:"-"`
	SoundEffects      bool         `validate:"-"`
	Notifications     bool         `validate:"-"`
	DailyReminder     bool         `validate:"-"`
	NewLessons        bool         `validate:"-"`
	Achievements      bool         `validate:"-"`
	StreakAtRisk      bool         `validate:"-"`
	Difficulty        Difficulty   `validate:"oneof=beginner intermediate advanced"`
}

// Defaults returns the settings a new learner starts with.
func Defaults() Settings {
	return Settings{
		DualSubtitles:     true,
		VideoSpeed:        lesson.DefaultSpeed,
		Autoplay:          false,
		InterfaceLanguage: LanguagePTBR,
		DarkMode:          true,
		SoundEffects:      true,
		Notifications:     true,
		DailyReminder:     true,
		NewLessons:        true,
		Achievements:      true,
		StreakAtRisk:      true,
		Difficulty:        DifficultyBeginner,
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("playback_speed", func(fl validator.FieldLevel) bool {
		return lesson.ValidSpeed(lesson.Speed(fl.Field().Float()))
	})
}

// Validate checks the enumerated fields.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Key names one editable setting.
type Key string

const (
	KeyDualSubtitles     Key = "dual_subtitles"
	KeyVideoSpeed        Key = "video_speed"
	KeyAutoplay          Key = "autoplay"
	KeyInterfaceLanguage Key = "interface_language"
	KeyDarkMode          Key = "dark_mode"
	KeySoundEffects      Key = "sound_effects"
	KeyNotifications     Key = "notifications"
	KeyDailyReminder     Key = "daily_reminder"
	KeyNewLessons        Key = "new_lessons"
	KeyAchievements      Key = "achievements"
	KeyStreakAtRisk      Key = "streak_at_risk"
	KeyDifficulty        Key = "difficulty"
)

// Item describes one row of the settings screen.
type Item struct {
	Key         Key
	Section     string
	Label       string
	Description string
	Value       string
	Locked      bool
}

// Items returns the settings screen rows in display order.
func (s Settings) Items() []Item {
	return []Item{
		{KeyDualSubtitles, "Configurações de Vídeo", "Legenda Dupla (EN + PT)", "Exibir legendas em inglês e português simultaneamente", onOff(s.DualSubtitles), false},
		{KeyVideoSpeed, "Configurações de Vídeo", "Velocidade Padrão do Vídeo", "Velocidade de reprodução inicial dos vídeos", s.VideoSpeed.String(), false},
		{KeyAutoplay, "Configurações de Vídeo", "Autoplay", "Reproduzir automaticamente o próximo vídeo", onOff(s.Autoplay), false},
		{KeyInterfaceLanguage, "Interface", "Idioma da Interface", "Idioma dos menus e navegação", s.InterfaceLanguage.Label(), false},
		{KeyDarkMode, "Interface", "Tema Escuro", "Modo escuro permanente (recomendado)", onOff(s.DarkMode), true},
		{KeySoundEffects, "Interface", "Efeitos Sonoros", "Sons de feedback e notificações", onOff(s.SoundEffects), false},
		{KeyNotifications, "Notificações", "Notificações Push", "Receber lembretes e atualizações", onOff(s.Notifications), false},
		{KeyDailyReminder, "Notificações", "Lembrete diário de prática", "", onOff(s.DailyReminder), false},
		{KeyNewLessons, "Notificações", "Novas lições disponíveis", "", onOff(s.NewLessons), false},
		{KeyAchievements, "Notificações", "Conquistas desbloqueadas", "", onOff(s.Achievements), false},
		{KeyStreakAtRisk, "Notificações", "Sequência em risco", "", onOff(s.StreakAtRisk), false},
		{KeyDifficulty, "Aprendizado", "Nível de Dificuldade", "", s.Difficulty.Label(), false},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Change flips a toggle or advances a selector to its next option. The
// result is validated before it is returned; s is not modified.
func (s Settings) Change(k Key) (Settings, error) {
	next := s
	switch k {
	case KeyDualSubtitles:
		next.DualSubtitles = !s.DualSubtitles
	case KeyAutoplay:
		next.Autoplay = !s.Autoplay
	case KeySoundEffects:
		next.SoundEffects = !s.SoundEffects
	case KeyNotifications:
		next.Notifications = !s.Notifications
	case KeyDailyReminder:
		next.DailyReminder = !s.DailyReminder
	case KeyNewLessons:
		next.NewLessons = !s.NewLessons
	case KeyAchievements:
		next.Achievements = !s.Achievements
	case KeyStreakAtRisk:
		next.StreakAtRisk = !s.StreakAtRisk
	case KeyDarkMode:
		return s, fmt.Errorf("change %s: %w", k, ErrLocked)
	case KeyVideoSpeed:
		next.VideoSpeed = cycle(lesson.Speeds(), s.VideoSpeed)
	case KeyInterfaceLanguage:
		next.InterfaceLanguage = cycle(Languages(), s.InterfaceLanguage)
	case KeyDifficulty:
		next.Difficulty = cycle(Difficulties(), s.Difficulty)
	default:
		return s, fmt.Errorf("change %q: %w", k, ErrUnknownKey)
	}
	if err := next.Validate(); err != nil {
		return s, err
	}
	return next, nil
}

func cycle[T comparable](opts []T, cur T) T {
	for i, o := range opts {
		if o == cur {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}
