package unavailable

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/ui/theme"
)

// UnavailableScreen stands in for a screen whose model could not be built.
type UnavailableScreen struct {
	title string
	err   error
}

var _ screen.Screen = (*UnavailableScreen)(nil)

// New creates an UnavailableScreen explaining err.
func New(title string, err error) *UnavailableScreen {
	return &UnavailableScreen{title: title, err: err}
}

func (p *UnavailableScreen) Init() tea.Cmd {
	return nil
}

func (p *UnavailableScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *UnavailableScreen) View(width, height int) string {
	text := "╌╌ Indisponível ╌╌\n\nEsta tela não pôde ser aberta."
	if p.err != nil {
		text += "\n\n" + theme.Hint.Render(p.err.Error())
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(text)
}

func (p *UnavailableScreen) Title() string {
	return p.title
}
