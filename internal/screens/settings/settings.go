package settings

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/settings"
	"github.com/learnflix/learnflix/internal/ui/components"
	"github.com/learnflix/learnflix/internal/ui/layout"
	"github.com/learnflix/learnflix/internal/ui/theme"
)

// SettingsScreen edits the in-memory preferences. The settings value is
// owned by the caller so it outlives the screen model.
type SettingsScreen struct {
	current  *settings.Settings
	selected int
	errMsg   string
}

var _ screen.Screen = (*SettingsScreen)(nil)

// New creates a SettingsScreen editing s in place.
func New(s *settings.Settings) *SettingsScreen {
	return &SettingsScreen{current: s}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	items := s.current.Items()
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		s.errMsg = ""
	case "down", "j":
		if s.selected < len(items)-1 {
			s.selected++
		}
		s.errMsg = ""
	case "enter", "space", " ":
		next, err := s.current.Change(items[s.selected].Key)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		*s.current = next
	}
	return s, nil
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	items := s.current.Items()

	var cards []string
	var rows []string
	section := ""
	flush := func() {
		if section != "" {
			cards = append(cards, components.Card(section, strings.Join(rows, "\n"), cw))
		}
		rows = nil
	}
	for i, it := range items {
		if it.Section != section {
			flush()
			section = it.Section
		}
		rows = append(rows, s.renderItem(it, i == s.selected, cw))
	}
	flush()

	if s.errMsg != "" {
		cards = append(cards, theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (s *SettingsScreen) renderItem(it settings.Item, selected bool, cw int) string {
	prefix := "  "
	label := theme.Unselected
	if selected {
		prefix = "▸ "
		label = theme.Selected
	}

	value := it.Value
	switch value {
	case "on":
		value = theme.Correct.Render("● on")
	case "off":
		value = theme.Hint.Render("○ off")
	default:
		value = theme.XP.Render("‹ " + value + " ›")
	}
	if it.Locked {
		value += theme.Hint.Render(" 🔒")
	}

	left := prefix + label.Render(it.Label)
	pad := cw - 6 - lipgloss.Width(left) - lipgloss.Width(value)
	if pad < 1 {
		pad = 1
	}
	line := left + strings.Repeat(" ", pad) + value
	if selected && it.Description != "" {
		line += "\n  " + theme.Hint.Render(it.Description)
	}
	return line
}

func (s *SettingsScreen) Title() string {
	return nav.Settings.Title()
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Alterar"},
	}
}
