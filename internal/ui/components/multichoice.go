package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/ui/theme"
)

// ChoiceMsg is emitted when the learner confirms an option.
type ChoiceMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector component. It only tracks the
// cursor; judging the answer is left to the owner.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int
	// Result marks the confirmed option: 0 none, 1 correct, -1 incorrect.
	Result int
	chosen int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		chosen:   -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Number keys select
// and confirm directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, m.confirm()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Options) {
				m.Selected = i
				return m, m.confirm()
			}
		}
	}
	return m, nil
}

func (m *MultiChoice) confirm() tea.Cmd {
	m.chosen = m.Selected
	m.Result = 0
	i := m.Selected
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

// MarkResult records whether the confirmed option was correct.
func (m *MultiChoice) MarkResult(correct bool) {
	if correct {
		m.Result = 1
	} else {
		m.Result = -1
	}
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := theme.Unselected
		switch {
		case i == m.chosen && m.Result > 0:
			style = theme.Correct
		case i == m.chosen && m.Result < 0:
			style = theme.Incorrect
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
