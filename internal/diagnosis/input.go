package diagnosis

import (
	"io"

	"github.com/abhisek/agriscan/internal/imaging"
)

// OpenImage loads an uploaded image file. Unreadable or unsupported files
// are reported as InvalidInputError.
func OpenImage(path string, maxBytes int64) (*imaging.Image, error) {
	img, err := imaging.Open(path, maxBytes)
	if err != nil {
		return nil, &InvalidInputError{Name: path, Err: err}
	}
	return img, nil
}

// ReadImage decodes an image from r. Failures are reported as
// InvalidInputError.
func ReadImage(name string, src imaging.Source, r io.Reader, maxBytes int64) (*imaging.Image, error) {
	img, err := imaging.Read(name, src, r, maxBytes)
	if err != nil {
		return nil, &InvalidInputError{Name: name, Err: err}
	}
	return img, nil
}
