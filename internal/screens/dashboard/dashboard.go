package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/router"
	"github.com/learnflix/learnflix/internal/screen"
	"github.com/learnflix/learnflix/internal/ui/components"
	"github.com/learnflix/learnflix/internal/ui/layout"
	"github.com/learnflix/learnflix/internal/ui/theme"
)

// entry is one selectable lesson row. A lesson can appear in more than one
// section.
type entry struct {
	section int
	lesson  catalog.Lesson
}

type section struct {
	title    string
	subtitle string
}

// DashboardScreen is the home screen: tip of the day, continue watching
// and the lessons grouped by category.
type DashboardScreen struct {
	cat      *catalog.Catalog
	choose   func(catalog.Lesson)
	sections []section
	entries  []entry
	selected int
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates a DashboardScreen. choose is called with the lesson the
// learner opens, before navigating to the lesson screen.
func New(cat *catalog.Catalog, choose func(catalog.Lesson)) *DashboardScreen {
	d := &DashboardScreen{cat: cat, choose: choose}

	d.sections = append(d.sections, section{title: "Continue de onde parou"})
	for _, l := range cat.ContinueWatching() {
		d.entries = append(d.entries, entry{section: 0, lesson: l})
	}
	subtitles := map[catalog.Category]string{
		catalog.CategoryBeginner:     "Comece sua jornada no inglês",
		catalog.CategoryIntermediate: "Aprimore suas habilidades",
		catalog.CategoryAdvanced:     "Domine o idioma",
	}
	for _, c := range catalog.Categories() {
		d.sections = append(d.sections, section{title: c.Label(), subtitle: subtitles[c]})
		idx := len(d.sections) - 1
		for _, l := range cat.ByCategory(c) {
			d.entries = append(d.entries, entry{section: idx, lesson: l})
		}
	}
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if d.selected > 0 {
			d.selected--
		}
	case "down", "j":
		if d.selected < len(d.entries)-1 {
			d.selected++
		}
	case "enter":
		if d.selected < len(d.entries) {
			return d, d.open(d.entries[d.selected].lesson)
		}
	case "s":
		return d, d.open(d.cat.Featured())
	case "a":
		return d, router.GoTo(nav.Activities)
	case "t":
		return d, router.GoTo(nav.AITeacher)
	}
	return d, nil
}

func (d *DashboardScreen) open(l catalog.Lesson) tea.Cmd {
	if d.choose != nil {
		d.choose(l)
	}
	return router.GoTo(nav.Lesson)
}

// Selected returns the highlighted lesson.
func (d *DashboardScreen) Selected() (catalog.Lesson, bool) {
	if d.selected < len(d.entries) {
		return d.entries[d.selected].lesson, true
	}
	return catalog.Lesson{}, false
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	tip := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("★ Dica do dia") + "\n" +
		theme.Section.Render(d.cat.Tip.Title) + "\n" +
		theme.Subtitle.Render(d.cat.Tip.Body) + "\n" +
		theme.Hint.Render("[S] Começar Agora")
	hero := components.Highlight(tip, cw)

	var lines []string
	selLine := 0
	current := -1
	for i, e := range d.entries {
		if e.section != current {
			current = e.section
			sec := d.sections[current]
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			head := theme.Section.Render(sec.title)
			if sec.subtitle != "" {
				head += "  " + theme.Hint.Render(sec.subtitle)
			}
			lines = append(lines, head)
		}
		if i == d.selected {
			selLine = len(lines)
		}
		lines = append(lines, d.renderLesson(e.lesson, i == d.selected, cw))
	}

	listHeight := height - lipgloss.Height(hero) - 1
	if listHeight < 3 {
		listHeight = 3
	}
	list := strings.Join(window(lines, selLine, listHeight), "\n")

	return lipgloss.JoinVertical(lipgloss.Left, hero, list)
}

func (d *DashboardScreen) renderLesson(l catalog.Lesson, selected bool, cw int) string {
	prefix := "    "
	titleStyle := theme.Unselected
	if selected {
		prefix = "  ▸ "
		titleStyle = theme.Selected
	}
	meta := theme.Hint.Render(fmt.Sprintf("%s · %d min", l.Level, l.DurationMinutes))
	line := prefix + titleStyle.Render(l.Title) + "  " + meta
	if l.Progress > 0 {
		bar := components.NewMeter("", l.Progress, 20)
		pad := cw - lipgloss.Width(line) - 22
		if pad < 2 {
			pad = 2
		}
		line += strings.Repeat(" ", pad) + bar.View()
	}
	return line
}

// window returns at most n lines of lines, scrolled so that line sel is
// visible.
func window(lines []string, sel, n int) []string {
	if len(lines) <= n {
		return lines
	}
	start := sel - n/2
	if start < 0 {
		start = 0
	}
	if start+n > len(lines) {
		start = len(lines) - n
	}
	return lines[start : start+n]
}

func (d *DashboardScreen) Title() string {
	return nav.Dashboard.Title()
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Lições"},
		{Key: "Enter", Description: "Assistir"},
		{Key: "A", Description: "Atividades"},
		{Key: "T", Description: "Professor IA"},
	}
}
