package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/learnflix/learnflix/internal/ui/theme"
)

const bannerArt = `
 ██╗     ███████╗ █████╗ ██████╗ ███╗   ██╗    ███████╗██╗     ██╗██╗  ██╗
 ██║     ██╔════╝██╔══██╗██╔══██╗████╗  ██║    ██╔════╝██║     ██║╚██╗██╔╝
 ██║     █████╗  ███████║██████╔╝██╔██╗ ██║    █████╗  ██║     ██║ ╚███╔╝
 ██║     ██╔══╝  ██╔══██║██╔══██╗██║╚██╗██║    ██╔══╝  ██║     ██║ ██╔██╗
 ███████╗███████╗██║  ██║██║  ██║██║ ╚████║    ██║     ███████╗██║██╔╝ ██╗
 ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝    ╚═╝     ╚══════╝╚═╝╚═╝  ╚═╝`

const bannerCompact = "L E A R N   F L I X"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 76

// RenderBanner returns the LEARN FLIX banner in the brand color. Narrow
// terminals get a one-line fallback.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
