package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/ui/theme"
)

const bannerArt = `
 ╔═╗ ╦ ╦ ╔═╗ ╔╗╔ ╔╦╗ ╦ ╦ ╔╦╗   ╦═╗ ╦ ╔═╗ ╦ ╦ ╦
 ║═╬╗║ ║ ╠═╣ ║║║  ║  ║ ║ ║║║   ╠╦╝ ║ ╚═╗ ╠═╣ ║
 ╚═╝╚╚═╝ ╩ ╩ ╝╚╝  ╩  ╚═╝ ╩ ╩   ╩╚═ ╩ ╚═╝ ╩ ╩ ╩`

// RenderBanner returns the brand banner in the primary color, falling back
// to plain text on terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(persona.Name)
	}
	return style.Render(bannerArt) + "\n" + theme.Subtitle.Render("developed by "+persona.Developer)
}
