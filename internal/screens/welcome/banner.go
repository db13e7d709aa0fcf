package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/agriscan/internal/ui/theme"
)

const bannerArt = `
  ___              _ ____
 / _ \ __ _ _ __(_) ___|  ___ __ _ _ __
| |_| |/ _' | '__| \___ \ / __/ _' | '_ \
|  _  | (_| | |  | |___) | (_| (_| | | | |
|_| |_|\__, |_|  |_|____/ \___\__,_|_| |_|
       |___/`

const bannerCompact = "A G R I S C A N"

// RenderBanner returns the AgriScan banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 46 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 46 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
