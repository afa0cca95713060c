package activities

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/activity"
	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/ui/components"
	"github.com/learnflix/learnflix/internal/ui/layout"
	"github.com/learnflix/learnflix/internal/ui/theme"
)

// ActivitiesScreen hosts the five practice formats over one shared score.
type ActivitiesScreen struct {
	session  *activity.Session
	progress activity.Progress
	nav      activity.Navigator

	input  components.TextInput
	choice components.MultiChoice
	claim  components.Button
	errMsg string
}

// claimMsg is emitted by the reward button.
type claimMsg struct{}

var _ screen.Screen = (*ActivitiesScreen)(nil)

// New creates an ActivitiesScreen with a fresh session built with opts.
func New(content catalog.Activities, p activity.Progress, n activity.Navigator, opts ...activity.Option) *ActivitiesScreen {
	s := &ActivitiesScreen{
		session:  activity.NewSession(content, opts...),
		progress: p,
		nav:      n,
	}
	s.claim = components.NewOneShotButton(fmt.Sprintf("Resgatar +%d XP", activity.RewardXP), func() tea.Cmd {
		return func() tea.Msg { return claimMsg{} }
	})
	s.resetWidgets()
	return s
}

func (s *ActivitiesScreen) resetWidgets() {
	s.input = components.NewTextInput("Digite sua resposta...", 60)
	q := s.session.Content().Quiz
	s.choice = components.NewMultiChoice(q.Question, q.Options)
}

func (s *ActivitiesScreen) Init() tea.Cmd {
	return s.input.Init()
}

// Session exposes the underlying activity session.
func (s *ActivitiesScreen) Session() *activity.Session {
	return s.session
}

func (s *ActivitiesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceMsg:
		s.submitChoice(msg.Index)
		return s, nil
	case claimMsg:
		s.claimReward()
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ActivitiesScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.session.Complete() {
		var cmd tea.Cmd
		s.claim, cmd = s.claim.Update(msg)
		return s, cmd
	}

	switch key {
	case "tab":
		return s, s.shiftTab(1)
	case "shift+tab":
		return s, s.shiftTab(-1)
	}

	s.errMsg = ""
	switch s.session.Active() {
	case activity.FillBlank, activity.ListenWrite:
		if key == "enter" {
			s.submit(activity.TextAnswer(s.input.Value()))
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.session.SetText(s.input.Value())
		return s, cmd

	case activity.Quiz:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd

	case activity.Speaking:
		switch key {
		case "space", " ":
			s.session.ToggleRecording()
		case "enter":
			s.submit(s.session.Draft().Answer())
		}

	case activity.DragDrop:
		if key == "enter" {
			s.submit(s.session.Draft().Answer())
		}
	}
	return s, nil
}

func (s *ActivitiesScreen) shiftTab(dir int) tea.Cmd {
	types := activity.AllTypes()
	cur := 0
	for i, t := range types {
		if t == s.session.Active() {
			cur = i
		}
	}
	next := types[(cur+dir+len(types))%len(types)]
	if err := s.session.SelectType(next); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.resetWidgets()
	return s.input.Init()
}

func (s *ActivitiesScreen) submitChoice(i int) {
	if err := s.session.SelectChoice(i); err != nil {
		s.errMsg = err.Error()
		return
	}
	v, err := s.session.Submit(activity.Quiz, activity.ChoiceAnswer(i))
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.choice.MarkResult(v == activity.VerdictCorrect)
}

func (s *ActivitiesScreen) submit(a activity.Answer) {
	v, err := s.session.Submit(s.session.Active(), a)
	if err != nil {
		if errors.Is(err, activity.ErrNoAnswer) {
			s.errMsg = "Digite uma resposta primeiro."
		} else {
			s.errMsg = err.Error()
		}
		return
	}
	s.input.Submit(v == activity.VerdictCorrect)
}

func (s *ActivitiesScreen) claimReward() {
	if err := s.session.ClaimReward(s.progress, s.nav); err != nil {
		s.errMsg = err.Error()
		if !s.session.Claimed() {
			s.claim.Rearm()
		}
	}
}

func (s *ActivitiesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	snap := s.session.Snapshot()

	bar := components.Meter{
		Label:    "Progresso",
		Value:    snap.Score,
		Max:      snap.TotalQuestions,
		Width:    cw,
		Fraction: true,
	}

	sections := []string{bar.View(), ""}

	if snap.Complete {
		sections = append(sections, s.renderComplete(cw))
	} else {
		labels := make([]string, 0, len(activity.AllTypes()))
		selected := 0
		for i, t := range activity.AllTypes() {
			labels = append(labels, t.Label())
			if t == snap.ActiveType {
				selected = i
			}
		}
		sections = append(sections, components.Tabs(labels, selected), "")
		sections = append(sections, components.Card(snap.ActiveType.Label(), s.renderActive(snap), cw))
		if v := s.renderVerdict(snap.LastVerdict); v != "" {
			sections = append(sections, v)
		}
	}

	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *ActivitiesScreen) renderActive(snap activity.Snapshot) string {
	c := s.session.Content()
	switch snap.ActiveType {
	case activity.FillBlank:
		sentence := theme.Body.Render(c.FillBlank.Before) + " " +
			theme.Selected.Render("_____") + " " +
			theme.Body.Render(c.FillBlank.After)
		return sentence + "\n\n" + s.input.View()

	case activity.DragDrop:
		words := make([]string, len(c.DragDrop.Words))
		for i, w := range c.DragDrop.Words {
			words[i] = theme.TabInactive.Render("[" + w + "]")
		}
		return theme.Body.Render(c.DragDrop.Instruction) + "\n\n" +
			strings.Join(words, " ") + "\n\n" +
			theme.Hint.Render("Enter para verificar")

	case activity.Quiz:
		return s.choice.View()

	case activity.ListenWrite:
		return theme.Body.Render("🔊 "+c.ListenWrite.Prompt) + "\n\n" + s.input.View()

	case activity.Speaking:
		mic := theme.Hint.Render("🎤 Espaço para gravar")
		if snap.Draft.Recording {
			mic = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("● Gravando...")
		}
		return theme.Section.Render("\""+c.Speaking.Phrase+"\"") + "\n\n" + mic
	}
	return ""
}

func (s *ActivitiesScreen) renderVerdict(v activity.Verdict) string {
	switch v {
	case activity.VerdictCorrect:
		return theme.Correct.Render("✓ Correto!")
	case activity.VerdictIncorrect:
		return theme.Incorrect.Render("✗ Tente novamente")
	}
	return ""
}

func (s *ActivitiesScreen) renderComplete(cw int) string {
	body := theme.Title.Render("🏆 Parabéns!") + "\n\n" +
		theme.Body.Render("Você completou todas as atividades.") + "\n" +
		theme.XP.Render(fmt.Sprintf("+%d XP", activity.RewardXP)) + "\n\n" +
		s.claim.View()
	return components.Highlight(body, cw)
}

func (s *ActivitiesScreen) Title() string {
	return nav.Activities.Title()
}

func (s *ActivitiesScreen) KeyHints() []layout.KeyHint {
	if s.session.Complete() {
		return []layout.KeyHint{{Key: "Enter", Description: "Resgatar XP"}}
	}
	hints := []layout.KeyHint{{Key: "Tab", Description: "Próxima atividade"}}
	switch s.session.Active() {
	case activity.Quiz:
		hints = append(hints, layout.KeyHint{Key: "1-4", Description: "Responder"})
	case activity.Speaking:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Gravar"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Verificar"})
}
