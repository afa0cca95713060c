package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/ui/components"
	"github.com/learnflix/learnflix/internal/ui/layout"
	"github.com/learnflix/learnflix/internal/ui/theme"
)

// Authenticator logs the learner in.
type Authenticator interface {
	Login(method learner.LoginMethod) (learner.Snapshot, error)
}

// loginMsg is emitted by a menu item.
type loginMsg struct {
	method learner.LoginMethod
}

// LoginScreen offers the mock identity provider's login methods.
type LoginScreen struct {
	auth   Authenticator
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(auth Authenticator) *LoginScreen {
	item := func(label string, m learner.LoginMethod) components.MenuItem {
		return components.MenuItem{Label: label, Action: func() tea.Cmd {
			return func() tea.Msg { return loginMsg{method: m} }
		}}
	}
	return &LoginScreen{
		auth: auth,
		menu: components.NewMenu([]components.MenuItem{
			item("Continuar com Google", learner.MethodGoogle),
			item("Continuar com Email", learner.MethodEmail),
			item("Entrar como Convidado", learner.MethodGuest),
		}),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return nil
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginMsg:
		if _, err := s.auth.Login(msg.method); err != nil {
			s.errMsg = err.Error()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "g":
			return s, s.loginCmd(learner.MethodGoogle)
		case "e":
			return s, s.loginCmd(learner.MethodEmail)
		case "c":
			return s, s.loginCmd(learner.MethodGuest)
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LoginScreen) loginCmd(m learner.LoginMethod) tea.Cmd {
	return func() tea.Msg { return loginMsg{method: m} }
}

func (s *LoginScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("LEARN FLIX"),
		theme.Subtitle.Render("Aprenda inglês assistindo suas séries favoritas"),
		"",
		s.menu.View(),
	)
	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	sections = append(sections, theme.Hint.Render("Sem senha necessária: qualquer opção entra."))

	card := components.Card("", strings.Join(sections, "\n"), 56)
	return components.Center(card, width, height)
}

func (s *LoginScreen) Title() string {
	return nav.Login.Title()
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Escolher"},
		{Key: "Enter", Description: "Entrar"},
		{Key: "G/E/C", Description: "Google/Email/Convidado"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}
