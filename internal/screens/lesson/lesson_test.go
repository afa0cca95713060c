package lesson

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/lesson"
	"github.com/learnflix/learnflix/internal/nav"
)

func testScreen(t *testing.T) (*LessonScreen, *learner.State, *nav.Navigator) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	state := learner.NewState()
	state.SetLoggedIn(true, learner.MethodGuest)
	n := nav.New(state)
	if _, err := n.GoTo(nav.Lesson); err != nil {
		t.Fatalf("GoTo lesson: %v", err)
	}
	return New(cat.Featured(), cat.LessonContent, state, n), state, n
}

func press(s *LessonScreen, key string) {
	switch key {
	case "enter":
		s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	case "tab":
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	case "space":
		s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	default:
		s.Update(tea.KeyPressMsg{Code: rune(key[0]), Text: key})
	}
}

func TestLessonScreen_Title(t *testing.T) {
	s, _, _ := testScreen(t)
	if s.Title() != "Lição" {
		t.Errorf("Title = %q, want %q", s.Title(), "Lição")
	}
}

func TestLessonScreen_PlaybackControls(t *testing.T) {
	s, _, _ := testScreen(t)

	press(s, "space")
	if !s.Player().Playing() {
		t.Error("space should start playback")
	}
	press(s, "s")
	if s.Player().Subtitles() != lesson.SubtitlesEN {
		t.Errorf("subtitles = %q, want en", s.Player().Subtitles())
	}
	press(s, "+")
	if s.Player().Speed() != 1.25 {
		t.Errorf("speed = %v, want 1.25", s.Player().Speed())
	}
	press(s, "-")
	press(s, "-")
	if s.Player().Speed() != 0.75 {
		t.Errorf("speed = %v, want 0.75", s.Player().Speed())
	}
	press(s, "f")
	if !s.Player().Favorited() {
		t.Error("f should favorite the lesson")
	}
	press(s, "r")
	if s.Player().Replays() != 1 {
		t.Errorf("replays = %d, want 1", s.Player().Replays())
	}
}

func TestLessonScreen_TabsCycle(t *testing.T) {
	s, _, _ := testScreen(t)
	for i := 0; i < int(tabCount); i++ {
		press(s, "tab")
	}
	if s.tab != tabSubtitles {
		t.Errorf("tab = %d, want wrap to subtitles", s.tab)
	}
	press(s, "tab")
	if !strings.Contains(s.View(100, 40), s.content.Vocabulary[0].Word) {
		t.Error("vocabulary tab should list words")
	}
}

func TestLessonScreen_FinishAwardsAndNavigates(t *testing.T) {
	s, state, n := testScreen(t)
	before := state.XP()

	press(s, "enter")
	if state.XP() != before+lesson.FinishXP {
		t.Errorf("xp = %d, want %d", state.XP(), before+lesson.FinishXP)
	}
	if n.Current() != nav.Activities {
		t.Errorf("current = %q, want activities", n.Current())
	}

	press(s, "enter")
	if state.XP() != before+lesson.FinishXP {
		t.Error("finishing twice should not award again")
	}
	if s.errMsg == "" {
		t.Error("expected an error message on second finish")
	}
}

type failingProgress struct{}

func (failingProgress) AddXP(int) error { return errors.New("boom") }

func TestLessonScreen_FinishErrorShown(t *testing.T) {
	s, _, n := testScreen(t)
	s.progress = failingProgress{}

	press(s, "enter")
	if n.Current() != nav.Lesson {
		t.Errorf("current = %q, want lesson", n.Current())
	}
	if !strings.Contains(s.View(100, 40), "boom") {
		t.Error("view should show the error")
	}
}

func TestLessonScreen_ViewSubtitles(t *testing.T) {
	s, _, _ := testScreen(t)
	view := s.View(100, 40)
	if !strings.Contains(view, s.content.Subtitles.PT) {
		t.Error("both mode should show the portuguese line")
	}
	press(s, "s")
	view = s.View(100, 40)
	if !strings.Contains(view, "Velocidade: 1x") {
		t.Errorf("view should show speed, got:\n%s", view)
	}
}
