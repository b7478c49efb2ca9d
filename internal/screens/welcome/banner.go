package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/Mahwas/Cognito/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██████╗  ██████╗ ███╗   ██╗██╗████████╗ ██████╗
 ██╔════╝██╔═══██╗██╔════╝ ████╗  ██║██║╚══██╔══╝██╔═══██╗
 ██║     ██║   ██║██║  ███╗██╔██╗ ██║██║   ██║   ██║   ██║
 ██║     ██║   ██║██║   ██║██║╚██╗██║██║   ██║   ██║   ██║
 ╚██████╗╚██████╔╝╚██████╔╝██║ ╚████║██║   ██║   ╚██████╔╝
  ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═══╝╚═╝   ╚═╝    ╚═════╝`

const bannerCompact = "C O G N I T O"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 60

// RenderBanner returns the banner in the primary color, or the compact
// wordmark when the terminal is too narrow for the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
