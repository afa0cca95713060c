package teacher

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/conversation"
	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/ui/components"
	"github.com/learnflix/learnflix/internal/ui/layout"
	"github.com/learnflix/learnflix/internal/ui/theme"
)

// scenarioMsg is emitted by a picker item.
type scenarioMsg struct {
	scenario conversation.Scenario
}

// replyDueMsg fires when a scheduled AI turn is due.
type replyDueMsg struct {
	pending conversation.PendingReply
}

// TeacherScreen is the AI conversation practice: a scenario picker, then
// a chat with the teacher and a feedback panel for the latest scored turn.
type TeacherScreen struct {
	session *conversation.Session
	names   func(id string) string
	phrases []string

	picker components.Menu
	input  components.TextInput
	phrase int
	errMsg string
}

var (
	_ screen.Screen = (*TeacherScreen)(nil)
	_ screen.Leaver = (*TeacherScreen)(nil)
)

// New creates a TeacherScreen around session. names resolves scenario
// display names and phrases are the quick suggestions offered by Tab.
func New(session *conversation.Session, names func(id string) string, phrases []string) *TeacherScreen {
	s := &TeacherScreen{
		session: session,
		names:   names,
		phrases: phrases,
		phrase:  -1,
		input:   components.NewTextInput("Digite sua mensagem em inglês...", 200),
	}

	items := make([]components.MenuItem, 0, len(conversation.AllScenarios()))
	for _, sc := range conversation.AllScenarios() {
		sc := sc
		items = append(items, components.MenuItem{
			Label: s.name(sc),
			Action: func() tea.Cmd {
				return func() tea.Msg { return scenarioMsg{scenario: sc} }
			},
		})
	}
	s.picker = components.NewMenu(items)
	return s
}

func (s *TeacherScreen) name(sc conversation.Scenario) string {
	if s.names != nil {
		if n := s.names(string(sc)); n != "" {
			return n
		}
	}
	return string(sc)
}

func (s *TeacherScreen) Init() tea.Cmd {
	return nil
}

// Session exposes the conversation state.
func (s *TeacherScreen) Session() *conversation.Session {
	return s.session
}

func (s *TeacherScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scenarioMsg:
		if err := s.session.SelectScenario(msg.scenario); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.input.Reset()
		s.phrase = -1
		return s, s.input.Init()

	case replyDueMsg:
		if _, err := s.session.CompleteReply(context.Background(), msg.pending); err != nil {
			s.errMsg = err.Error()
		}
		return s, nil

	case tea.KeyPressMsg:
		if !s.session.Active() {
			var cmd tea.Cmd
			s.picker, cmd = s.picker.Update(msg)
			return s, cmd
		}
		return s.handleChatKey(msg)
	}
	return s, nil
}

func (s *TeacherScreen) handleChatKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.session.Back()
		s.input.Reset()
		s.errMsg = ""
		return s, nil
	case "enter":
		return s, s.send()
	case "tab":
		if len(s.phrases) > 0 {
			s.phrase = (s.phrase + 1) % len(s.phrases)
			s.input.SetValue(s.phrases[s.phrase])
		}
		return s, nil
	case "ctrl+r":
		s.session.ToggleRecording()
		return s, nil
	case "ctrl+s":
		s.session.ToggleAISpeaking()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TeacherScreen) send() tea.Cmd {
	p, err := s.session.SendUserMessage(s.input.Value())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if p == nil {
		return nil
	}
	s.errMsg = ""
	s.input.Reset()
	s.phrase = -1
	pending := *p
	return tea.Tick(pending.Due, func(time.Time) tea.Msg {
		return replyDueMsg{pending: pending}
	})
}

func (s *TeacherScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if !s.session.Active() {
		return s.renderPicker(cw)
	}
	return s.renderChat(cw, height)
}

func (s *TeacherScreen) renderPicker(cw int) string {
	body := theme.Subtitle.Render("Escolha um cenário para praticar conversação em inglês") +
		"\n\n" + s.picker.View()
	parts := []string{components.Card("Professor IA", body, cw)}
	if s.errMsg != "" {
		parts = append(parts, theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *TeacherScreen) renderChat(cw, height int) string {
	snap := s.session.Snapshot()

	header := theme.Title.Render(s.name(snap.Scenario)) + "  " +
		theme.Hint.Render("Nível "+string(snap.Level))
	var indicators []string
	if snap.Recording {
		indicators = append(indicators, lipgloss.NewStyle().Foreground(theme.Error).Render("● Gravando"))
	}
	if snap.AISpeaking {
		indicators = append(indicators, lipgloss.NewStyle().Foreground(theme.Primary).Render("🔊 IA falando"))
	}
	if len(indicators) > 0 {
		header += "   " + strings.Join(indicators, "  ")
	}

	var feedback *conversation.Feedback
	var lines []string
	bubbleWidth := cw * 2 / 3
	for _, m := range snap.Transcript {
		if m.Feedback != nil {
			feedback = m.Feedback
		}
		if m.Role == conversation.RoleUser {
			b := theme.BubbleUser.MaxWidth(bubbleWidth).Render(m.Text)
			lines = append(lines, lipgloss.PlaceHorizontal(cw, lipgloss.Right, b))
		} else {
			lines = append(lines, theme.BubbleAI.MaxWidth(bubbleWidth).Render("🤖 "+m.Text))
		}
	}
	if snap.Awaiting > 0 {
		lines = append(lines, theme.Hint.Render("Professor está digitando..."))
	}

	parts := []string{header, ""}
	var fbView string
	if feedback != nil {
		fbView = renderFeedback(*feedback, cw)
	}

	avail := height - lipgloss.Height(fbView) - 6
	if avail < 3 {
		avail = 3
	}
	chat := strings.Join(lines, "\n")
	if h := lipgloss.Height(chat); h > avail {
		chatLines := strings.Split(chat, "\n")
		chat = strings.Join(chatLines[len(chatLines)-avail:], "\n")
	}
	parts = append(parts, chat, "")
	if fbView != "" {
		parts = append(parts, fbView)
	}
	parts = append(parts, s.input.View())
	if s.errMsg != "" {
		parts = append(parts, theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderFeedback(f conversation.Feedback, cw int) string {
	barWidth := (cw - 8) / 2
	bar := func(label string, v int) string {
		m := components.NewMeter(label, v, barWidth)
		m.Toned = true
		return m.View()
	}
	scores := lipgloss.JoinHorizontal(lipgloss.Top,
		bar("Pronúncia ", f.Pronunciation)+"\n"+bar("Fluência  ", f.Fluency),
		"  ",
		bar("Vocabulário", f.Vocabulary)+"\n"+bar("Gramática  ", f.Grammar),
	)
	var tips []string
	for _, sug := range f.Suggestions {
		tips = append(tips, theme.Hint.Render("• "+sug))
	}
	body := theme.XP.Render(fmt.Sprintf("Média %d", f.Average())) + "\n" + scores + "\n" + strings.Join(tips, "\n")
	return components.Card("Feedback", body, cw)
}

// Leave closes the conversation so replies still in flight are dropped.
func (s *TeacherScreen) Leave() {
	if s.session.Active() {
		s.session.Back()
	}
}

func (s *TeacherScreen) Title() string {
	return nav.AITeacher.Title()
}

func (s *TeacherScreen) KeyHints() []layout.KeyHint {
	if !s.session.Active() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Cenários"},
			{Key: "Enter", Description: "Começar"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Enviar"},
		{Key: "Tab", Description: "Frases rápidas"},
		{Key: "Ctrl+R", Description: "Gravar"},
		{Key: "Ctrl+S", Description: "Voz da IA"},
		{Key: "Esc", Description: "Cenários"},
	}
}
