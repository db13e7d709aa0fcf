package imaging

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img to fit within maxW x maxH, keeping the aspect ratio.
// It returns nil for an invalid handle.
func Thumbnail(img *Image, maxW, maxH uint) image.Image {
	if !img.Valid() || maxW == 0 || maxH == 0 {
		return nil
	}
	return resize.Thumbnail(maxW, maxH, img.Pixels, resize.Lanczos3)
}
