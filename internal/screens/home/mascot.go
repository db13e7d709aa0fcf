package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/agriscan/internal/ui/theme"
)

// MascotVariant selects which leaf art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // Default green
	MascotHealthy                       // Last scan was healthy
	MascotDiseased                      // Last scan found a disease
)

const mascotIdle = `   _
 _/ \_
 \   /
  \_/
   |`

const mascotHealthy = `   _    ✓
 _/ \_
 \   /
  \_/
   |`

const mascotDiseased = `   _    !
 _/•\_
 \ • /
  \_/
   |`

// RenderMascot returns the leaf art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotHealthy:
		art = mascotHealthy
		fg = theme.Success
	case MascotDiseased:
		art = mascotDiseased
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
