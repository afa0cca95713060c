package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader_Stats(t *testing.T) {
	h := RenderHeader("Home", HeaderStats{XP: 1250, StreakDays: 7, Level: "B1"}, 100)
	for _, want := range []string{"LEARN FLIX", "Home", "1250 XP", "7", "B1"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderHeader_ZeroStatsHidden(t *testing.T) {
	h := RenderHeader("Entrar", HeaderStats{}, 100)
	if strings.Contains(h, "XP") {
		t.Error("zero stats should be hidden")
	}
}

func TestRenderFooter_StatusReplacesHints(t *testing.T) {
	hints := []KeyHint{{Key: "Enter", Description: "Assistir"}}

	f := RenderFooter(hints, "", 100)
	if !strings.Contains(f, "Assistir") {
		t.Error("footer should show hints")
	}

	f = RenderFooter(hints, "Faça login para continuar.", 100)
	if strings.Contains(f, "Assistir") {
		t.Error("status should replace hints")
	}
	if !strings.Contains(f, "Faça login") {
		t.Error("footer should show the status")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}
