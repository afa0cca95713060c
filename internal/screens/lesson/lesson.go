package lesson

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/lesson"
	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/ui/components"
	"github.com/learnflix/learnflix/internal/ui/layout"
	"github.com/learnflix/learnflix/internal/ui/theme"
)

type tab int

const (
	tabSubtitles tab = iota
	tabVocabulary
	tabIdioms
	tabGrammar
	tabCount
)

var tabLabels = []string{"Legendas", "Vocabulário", "Expressões", "Gramática"}

// LessonScreen is the video player with its study material.
type LessonScreen struct {
	player   *lesson.Player
	content  catalog.LessonContent
	progress lesson.Progress
	nav      lesson.Navigator
	tab      tab
	errMsg   string
}

var _ screen.Screen = (*LessonScreen)(nil)

// New creates a LessonScreen playing l.
func New(l catalog.Lesson, content catalog.LessonContent, p lesson.Progress, n lesson.Navigator, opts ...lesson.Option) *LessonScreen {
	return &LessonScreen{
		player:   lesson.NewPlayer(l, opts...),
		content:  content,
		progress: p,
		nav:      n,
	}
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	s.errMsg = ""
	switch kmsg.String() {
	case "space", " ":
		s.player.TogglePlay()
	case "s":
		s.player.CycleSubtitles()
	case "+", "=":
		s.player.Faster()
	case "-":
		s.player.Slower()
	case "f":
		s.player.ToggleFavorite()
	case "r":
		s.player.Replay()
	case "tab":
		s.tab = (s.tab + 1) % tabCount
	case "shift+tab":
		s.tab = (s.tab + tabCount - 1) % tabCount
	case "enter":
		if err := s.player.Finish(s.progress, s.nav); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s, nil
}

// Player exposes the playback state.
func (s *LessonScreen) Player() *lesson.Player {
	return s.player
}

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	l := s.player.Lesson()

	title := theme.Title.Render(l.Title) + "  " +
		theme.Hint.Render(fmt.Sprintf("%s · %d min", l.Level, l.DurationMinutes))

	sections := []string{title, "", s.renderPlayer(cw), "", components.Tabs(tabLabels, int(s.tab))}
	sections = append(sections, components.Card("", s.renderTab(), cw))

	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *LessonScreen) renderPlayer(cw int) string {
	state := "⏸  Pausado"
	if s.player.Playing() {
		state = "▶  Reproduzindo"
	}
	fav := "♡"
	if s.player.Favorited() {
		fav = lipgloss.NewStyle().Foreground(theme.Secondary).Render("♥")
	}

	var subs []string
	mode := s.player.Subtitles()
	if mode == lesson.SubtitlesEN || mode == lesson.SubtitlesBoth {
		subs = append(subs, theme.Body.Render(s.content.Subtitles.EN))
	}
	if mode == lesson.SubtitlesPT || mode == lesson.SubtitlesBoth {
		subs = append(subs, theme.Subtitle.Render(s.content.Subtitles.PT))
	}

	controls := fmt.Sprintf("%s   Legendas: %s   Velocidade: %s   %s",
		state, mode.Label(), s.player.Speed(), fav)
	if n := s.player.Replays(); n > 0 {
		controls += theme.Hint.Render(fmt.Sprintf("   ↺ %d", n))
	}

	screenArea := lipgloss.NewStyle().
		Width(cw-4).
		Height(5).
		Align(lipgloss.Center, lipgloss.Bottom).
		Render(strings.Join(subs, "\n"))

	return components.Highlight(screenArea+"\n"+controls, cw)
}

func (s *LessonScreen) renderTab() string {
	var b strings.Builder
	switch s.tab {
	case tabSubtitles:
		b.WriteString(theme.Section.Render("EN  "))
		b.WriteString(theme.Body.Render(s.content.Subtitles.EN))
		b.WriteString("\n")
		b.WriteString(theme.Section.Render("PT  "))
		b.WriteString(theme.Subtitle.Render(s.content.Subtitles.PT))
	case tabVocabulary:
		for _, v := range s.content.Vocabulary {
			fmt.Fprintf(&b, "%s  %s\n%s\n",
				theme.Section.Render(v.Word), theme.Subtitle.Render(v.Translation), theme.Hint.Render(v.Context))
		}
	case tabIdioms:
		for _, i := range s.content.Idioms {
			fmt.Fprintf(&b, "%s  %s\n%s\n",
				theme.Section.Render(i.Phrase), theme.Subtitle.Render(i.Meaning), theme.Hint.Render(i.Explanation))
		}
	case tabGrammar:
		for _, g := range s.content.Grammar {
			fmt.Fprintf(&b, "%s\n%s\n", theme.Section.Render(g.Topic), theme.Body.Render(g.Note))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *LessonScreen) Title() string {
	return nav.Lesson.Title()
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Play/Pause"},
		{Key: "S", Description: "Legendas"},
		{Key: "+/-", Description: "Velocidade"},
		{Key: "F", Description: "Favoritar"},
		{Key: "Tab", Description: "Conteúdo"},
		{Key: "Enter", Description: "Concluir"},
	}
}
