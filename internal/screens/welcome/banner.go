package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/EkalavyanS/Flashy/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗      █████╗ ███████╗██╗  ██╗██╗   ██╗
 ██╔════╝██║     ██╔══██╗██╔════╝██║  ██║╚██╗ ██╔╝
 █████╗  ██║     ███████║███████╗███████║ ╚████╔╝
 ██╔══╝  ██║     ██╔══██║╚════██║██╔══██║  ╚██╔╝
 ██║     ███████╗██║  ██║███████║██║  ██║   ██║
 ╚═╝     ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝`

const bannerCompact = "F L A S H Y"

// RenderBanner returns the FLASHY banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 54 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 54 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
