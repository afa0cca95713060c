package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/learnflix/learnflix/internal/ui/theme"
)

// Button fires OnPress on enter or space. A one-shot button disarms after
// its first press and stays disarmed until Rearm.
type Button struct {
	Label   string
	Active  bool
	OneShot bool
	OnPress func() tea.Cmd

	pressed bool
}

// NewButton creates an active button.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: true, OnPress: onPress}
}

// NewOneShotButton creates an active button that only fires once.
func NewOneShotButton(label string, onPress func() tea.Cmd) Button {
	b := NewButton(label, onPress)
	b.OneShot = true
	return b
}

// Pressed reports whether a one-shot button has fired.
func (b Button) Pressed() bool { return b.pressed }

// Rearm lets a one-shot button fire again, e.g. after its action failed.
func (b *Button) Rearm() { b.pressed = false }

func (b Button) armed() bool {
	return b.Active && !(b.OneShot && b.pressed)
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.armed() || b.OnPress == nil {
		return b, nil
	}
	switch kmsg.String() {
	case "enter", "space":
		b.pressed = true
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	switch {
	case b.OneShot && b.pressed:
		return theme.ButtonInactive.Render("✓ " + b.Label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render("  " + b.Label)
}
