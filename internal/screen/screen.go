// Package screen defines the contract between the router and the models
// it hosts.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/learnflix/learnflix/internal/ui/layout"
)

// Screen is one navigable page. The router builds a fresh Screen on every
// entry, so any state a Screen holds lives for a single visit.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area; the app draws header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider supplies the footer hints for a screen.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is notified when the navigator moves away from the screen. Work
// the screen scheduled for itself must not land after Leave returns.
type Leaver interface {
	Leave()
}
