package components

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/agriscan/internal/imaging"
)

// LeafPreview renders an image with half-block characters, two pixel
// rows per terminal line.
type LeafPreview struct {
	Image  *imaging.Image
	Width  int
	Height int
}

// NewLeafPreview creates a preview that fits within width x height cells.
func NewLeafPreview(img *imaging.Image, width, height int) LeafPreview {
	return LeafPreview{Image: img, Width: width, Height: height}
}

// View renders the preview, or an empty string when there is no image.
func (p LeafPreview) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}
	thumb := imaging.Thumbnail(p.Image, uint(p.Width), uint(p.Height*2))
	if thumb == nil {
		return ""
	}
	return renderHalfBlocks(thumb)
}

func renderHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(img.At(x, y))
			if y+1 < bounds.Max.Y {
				style = style.Background(img.At(x, y+1))
			}
			b.WriteString(style.Render("▀"))
		}
		if y+2 < bounds.Max.Y {
			b.WriteString("\n")
		}
	}
	return b.String()
}
