package dashboard

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/nav"
	"github.com/learnflix/learnflix/internal/router"
)

func testDashboard(t *testing.T) (*DashboardScreen, *catalog.Lesson) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	var chosen catalog.Lesson
	d := New(cat, func(l catalog.Lesson) { chosen = l })
	return d, &chosen
}

func gotoTarget(t *testing.T, cmd tea.Cmd) nav.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.GoToMsg)
	if !ok {
		t.Fatalf("expected GoToMsg, got %T", cmd())
	}
	return msg.Screen
}

func TestDashboard_Title(t *testing.T) {
	d, _ := testDashboard(t)
	if d.Title() != "Home" {
		t.Errorf("Title = %q, want %q", d.Title(), "Home")
	}
}

func TestDashboard_ContinueWatchingFirst(t *testing.T) {
	d, _ := testDashboard(t)
	l, ok := d.Selected()
	if !ok {
		t.Fatal("expected a selected lesson")
	}
	if l.Progress == 0 {
		t.Errorf("first entry should be in progress, got %+v", l)
	}
}

func TestDashboard_EnterOpensLesson(t *testing.T) {
	d, chosen := testDashboard(t)
	d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	want, _ := d.Selected()

	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := gotoTarget(t, cmd); got != nav.Lesson {
		t.Errorf("target = %q, want lesson", got)
	}
	if chosen.ID != want.ID {
		t.Errorf("chosen = %d, want %d", chosen.ID, want.ID)
	}
}

func TestDashboard_StartOpensFeatured(t *testing.T) {
	d, chosen := testDashboard(t)
	_, cmd := d.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	gotoTarget(t, cmd)
	if chosen.ID != d.cat.FeaturedLesson {
		t.Errorf("chosen = %d, want featured %d", chosen.ID, d.cat.FeaturedLesson)
	}
}

func TestDashboard_Shortcuts(t *testing.T) {
	d, _ := testDashboard(t)
	_, cmd := d.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if got := gotoTarget(t, cmd); got != nav.Activities {
		t.Errorf("target = %q, want activities", got)
	}
	_, cmd = d.Update(tea.KeyPressMsg{Code: 't', Text: "t"})
	if got := gotoTarget(t, cmd); got != nav.AITeacher {
		t.Errorf("target = %q, want ai_teacher", got)
	}
}

func TestDashboard_CursorBounds(t *testing.T) {
	d, _ := testDashboard(t)
	d.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if d.selected != 0 {
		t.Errorf("selected = %d, want 0", d.selected)
	}
	for i := 0; i < 50; i++ {
		d.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if d.selected != len(d.entries)-1 {
		t.Errorf("selected = %d, want %d", d.selected, len(d.entries)-1)
	}
}

func TestDashboard_View(t *testing.T) {
	d, _ := testDashboard(t)
	view := d.View(100, 40)
	for _, want := range []string{"Dica do dia", "Continue de onde parou", "Iniciante"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWindow(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f"}
	if got := window(lines, 0, 3); strings.Join(got, "") != "abc" {
		t.Errorf("window top = %v", got)
	}
	if got := window(lines, 5, 3); strings.Join(got, "") != "def" {
		t.Errorf("window bottom = %v", got)
	}
	if got := window(lines, 3, 10); len(got) != 6 {
		t.Errorf("window larger than lines = %v", got)
	}
}
