package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Register decoders for the accepted upload formats.
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultMaxBytes caps how much of an upload is read.
	DefaultMaxBytes = 10 << 20

	// MaxPixels caps the decoded size. A small compressed file can declare
	// dimensions whose pixel buffer would not fit in memory.
	MaxPixels = 40_000_000
)

// Source records how an image reached the scanner.
type Source string

const (
	SourceCamera Source = "camera"
	SourceUpload Source = "upload"
)

var (
	ErrEmpty             = errors.New("image is empty")
	ErrTooLarge          = errors.New("image exceeds size limit")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

var acceptedMIME = []string{"image/jpeg", "image/png"}

// Image is an opaque handle to a decoded leaf photo.
type Image struct {
	Name   string
	Source Source
	MIME   string
	Size   int
	Pixels image.Image
}

// Bounds returns the pixel bounds, or an empty rectangle.
func (img *Image) Bounds() image.Rectangle {
	if img == nil || img.Pixels == nil {
		return image.Rectangle{}
	}
	return img.Pixels.Bounds()
}

// Valid reports whether the handle carries a decoded, non-empty image.
func (img *Image) Valid() bool {
	return img != nil && !img.Bounds().Empty()
}

// Decode sniffs and decodes raw image bytes. Only JPEG and PNG are accepted,
// and the header's dimensions are checked against MaxPixels before any
// pixel data is allocated.
func Decode(name string, src Source, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), acceptedMIME...) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mt.String(), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrEmpty
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, cfg.Width, cfg.Height)
	}

	pixels, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mt.String(), err)
	}

	return &Image{
		Name:   name,
		Source: src,
		MIME:   mt.String(),
		Size:   len(data),
		Pixels: pixels,
	}, nil
}

// Read decodes at most maxBytes from r. Larger inputs fail with ErrTooLarge.
func Read(name string, src Source, r io.Reader, maxBytes int64) (*Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	return Decode(name, src, data)
}

// Open reads and decodes an uploaded image file.
func Open(path string, maxBytes int64) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(filepath.Base(path), SourceUpload, f, maxBytes)
}
