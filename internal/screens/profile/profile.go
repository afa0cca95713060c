package profile

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/ui/components"
	"github.com/learnflix/learnflix/internal/ui/layout"
	"github.com/learnflix/learnflix/internal/ui/theme"
)

// Learner reports the current progress facts.
type Learner interface {
	Snapshot() learner.Snapshot
}

// Deauthenticator logs the learner out.
type Deauthenticator interface {
	Logout() (learner.Snapshot, error)
}

type tab int

const (
	tabStats tab = iota
	tabFavorites
	tabHistory
	tabCount
)

var tabLabels = []string{"Estatísticas", "Favoritos", "Histórico IA"}

var skillIcons = map[string]string{
	"Listening":  "🎧",
	"Speaking":   "🗣",
	"Vocabulary": "📚",
	"Grammar":    "✍",
	"Reading":    "📖",
}

// ProfileScreen shows the learner's stats, favorites and conversation
// history, and offers logout.
type ProfileScreen struct {
	learner Learner
	auth    Deauthenticator
	profile catalog.Profile
	names   func(id string) string
	tab     tab
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)

// New creates a ProfileScreen.
func New(l Learner, auth Deauthenticator, p catalog.Profile, names func(id string) string) *ProfileScreen {
	return &ProfileScreen{learner: l, auth: auth, profile: p, names: names}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "right", "l":
		s.tab = (s.tab + 1) % tabCount
	case "shift+tab", "left", "h":
		s.tab = (s.tab + tabCount - 1) % tabCount
	case "1":
		s.tab = tabStats
	case "2":
		s.tab = tabFavorites
	case "3":
		s.tab = tabHistory
	case "x":
		if _, err := s.auth.Logout(); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	snap := s.learner.Snapshot()

	badge := func(icon, label, value string, color lipgloss.Style) string {
		return theme.Hint.Render(icon+" "+label) + "\n" + color.Render(value)
	}
	badges := lipgloss.JoinHorizontal(lipgloss.Top,
		badge("🏆", "XP Total", fmt.Sprintf("%d", snap.XP), theme.XP),
		"     ",
		badge("🔥", "Sequência", fmt.Sprintf("%d dias", snap.StreakDays), lipgloss.NewStyle().Foreground(theme.Streak).Bold(true)),
		"     ",
		badge("📈", "Nível", string(snap.Level), theme.Selected),
	)
	header := theme.Title.Render("👤 "+s.profile.Name) + "\n" +
		theme.Subtitle.Render(s.profile.Since) + "\n\n" + badges

	sections := []string{
		components.Highlight(header, cw),
		"",
		components.Tabs(tabLabels, int(s.tab)),
		components.Card("", s.renderTab(snap, cw), cw),
	}
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *ProfileScreen) renderTab(snap learner.Snapshot, cw int) string {
	var b strings.Builder
	switch s.tab {
	case tabStats:
		b.WriteString(theme.Section.Render("Evolução por Habilidade"))
		b.WriteString("\n\n")
		for _, sk := range s.profile.Skills {
			label := fmt.Sprintf("%s %-10s", skillIcons[sk.Name], sk.Name)
			b.WriteString(components.NewMeter(label, sk.Value, cw-6).View())
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n%s  %s",
			theme.XP.Render(fmt.Sprintf("%d XP", snap.XP)),
			theme.Hint.Render(fmt.Sprintf("%d dias seguidos", snap.StreakDays)))

	case tabFavorites:
		if len(s.profile.Favorites) == 0 {
			return theme.Hint.Render("Nenhum favorito ainda.")
		}
		for _, f := range s.profile.Favorites {
			fmt.Fprintf(&b, "%s %s  %s\n",
				lipgloss.NewStyle().Foreground(theme.Secondary).Render("♥"),
				theme.Body.Render(f.Title), theme.Hint.Render(f.Level))
		}

	case tabHistory:
		if len(s.profile.History) == 0 {
			return theme.Hint.Render("Nenhuma conversa ainda.")
		}
		for _, h := range s.profile.History {
			name := h.Scenario
			if s.names != nil {
				name = s.names(h.Scenario)
			}
			fmt.Fprintf(&b, "💬 %s  %s  %s\n",
				theme.Body.Render(name), theme.Hint.Render(h.Date),
				scoreStyle(h.Score).Render(fmt.Sprintf("%d%%", h.Score)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func scoreStyle(score int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.ScoreColor(score)).Bold(true)
}

func (s *ProfileScreen) Title() string {
	return nav.Profile.Title()
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Abas"},
		{Key: "X", Description: "Sair"},
	}
}
