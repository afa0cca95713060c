package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/ui/theme"
)

// Meter is a horizontal bar for Value out of Max. Scores, skill levels and
// watch progress are 0..100; the activities counter is n out of 5.
type Meter struct {
	Label string
	Value int
	Max   int
	Width int

	// Fraction prints "3/5" after the bar instead of a percentage.
	Fraction bool

	// Toned fills the bar with the score band color.
	Toned bool
}

// NewMeter creates a meter for a 0..100 score.
func NewMeter(label string, score, width int) Meter {
	return Meter{Label: label, Value: score, Max: 100, Width: width}
}

// Percent returns Value as a whole percentage of Max, clamped to 0..100.
func (m Meter) Percent() int {
	if m.Max <= 0 {
		return 0
	}
	p := m.Value * 100 / m.Max
	return max(0, min(p, 100))
}

func (m Meter) suffix() string {
	if m.Fraction {
		return fmt.Sprintf("  %d/%d", max(0, min(m.Value, m.Max)), m.Max)
	}
	return fmt.Sprintf("  %d%%", m.Percent())
}

// View renders the meter within Width cells.
func (m Meter) View() string {
	var label string
	if m.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	suffix := lipgloss.NewStyle().Foreground(theme.TextDim).Render(m.suffix())

	barWidth := max(m.Width-lipgloss.Width(label)-lipgloss.Width(suffix), 4)
	filled := barWidth * m.Percent() / 100

	fill := theme.ProgressFilled
	if m.Toned {
		fill = lipgloss.NewStyle().Background(theme.ScoreColor(m.Percent()))
	}
	return label +
		fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		suffix
}
