package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/learnflix/learnflix/internal/router"
	"github.com/learnflix/learnflix/internal/screen"
)

type loginStub struct{}

func (loginStub) Init() tea.Cmd                             { return nil }
func (l loginStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return l, nil }
func (loginStub) View(int, int) string                      { return "login" }
func (loginStub) Title() string                             { return "Entrar" }

// splash returns a welcome screen and a counter of login screens built.
func splash() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return loginStub{}
	}), &built
}

func advance(w *WelcomeScreen, d time.Duration) {
	for i := time.Duration(0); i < d; i += tickInterval {
		w.Update(tickMsg(time.Now()))
	}
}

// handover presses key and returns the screen the splash hands over to.
func handover(t *testing.T, w *WelcomeScreen, key tea.KeyPressMsg) screen.Screen {
	t.Helper()
	_, cmd := w.Update(key)
	if cmd == nil {
		t.Fatalf("%s should hand over", key.String())
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("%s: expected ReplaceScreenMsg", key.String())
	}
	return msg.Screen
}

func TestAnyKeyHandsOverToLogin(t *testing.T) {
	keys := []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeySpace, Text: " "},
		{Code: tea.KeyEscape},
		{Code: 'g', Text: "g"},
		{Code: tea.KeyF1},
	}
	for _, k := range keys {
		t.Run(k.String(), func(t *testing.T) {
			w, built := splash()
			next := handover(t, w, k)
			if next == nil || next.Title() != "Entrar" {
				t.Errorf("handed over to %v, want the login screen", next)
			}
			if *built != 1 {
				t.Errorf("login built %d times, want 1", *built)
			}
		})
	}
}

func TestHandoverMidAnimation(t *testing.T) {
	w, _ := splash()
	advance(w, 200*time.Millisecond)
	if next := handover(t, w, tea.KeyPressMsg{Code: tea.KeyEnter}); next.View(80, 24) != "login" {
		t.Error("handover during the intro should still reach login")
	}
}

func TestSplashWaitsForKey(t *testing.T) {
	w, built := splash()
	advance(w, 2*totalDur)
	if *built != 0 {
		t.Error("splash should not leave on its own")
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want it to stop at %v", w.elapsed, totalDur)
	}
}

func TestHandoverHappensOnce(t *testing.T) {
	w, built := splash()
	handover(t, w, tea.KeyPressMsg{Code: tea.KeyEnter})

	if _, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("a second key should not hand over again")
	}
	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("animation should stop after handover")
	}
	if *built != 1 {
		t.Errorf("login built %d times, want 1", *built)
	}
}

func TestSplashPhases(t *testing.T) {
	w, _ := splash()
	tagline := "Aprenda inglês com séries e filmes"

	view := w.View(100, 30)
	if !strings.Contains(view, "▶") {
		t.Error("film reel should show from the start")
	}
	if strings.Contains(view, "★") || strings.Contains(view, tagline) {
		t.Error("sparkles and tagline should wait for their phase")
	}

	advance(w, phase1End)
	view = w.View(100, 30)
	if !strings.Contains(view, "★") && !strings.Contains(view, "✦") {
		t.Error("sparkles should show after the intro")
	}
	if strings.Contains(view, tagline) {
		t.Error("tagline should wait for the last phase")
	}

	advance(w, phase2End-phase1End)
	view = w.View(100, 30)
	if !strings.Contains(view, tagline) || !strings.Contains(view, "qualquer tecla") {
		t.Error("tagline and key hint should show in the last phase")
	}
}

func TestRenderBanner(t *testing.T) {
	if got := RenderBanner(bannerWidth - 1); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner = %q, want the compact form", got)
	}
	if got := RenderBanner(bannerWidth); !strings.Contains(got, "███████╗") {
		t.Error("wide banner should use the block art")
	}
}
