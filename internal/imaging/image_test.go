package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: uint8(100 + x%100), B: 30, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	data := encodePNG(t, leaf(32, 16))

	img, err := Decode("leaf.png", SourceUpload, data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
	assert.True(t, img.Valid())
	assert.Equal(t, SourceUpload, img.Source)
}

func TestDecode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, leaf(20, 20), nil))

	img, err := Decode("leaf.jpg", SourceCamera, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIME)
}

func TestDecode_Errors(t *testing.T) {
	valid := encodePNG(t, leaf(8, 8))

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, ErrEmpty},
		{"text", []byte("definitely not a picture"), ErrUnsupportedFormat},
		{"gif", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), ErrUnsupportedFormat},
		{"truncated png", valid[:len(valid)/2], nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode("x", SourceUpload, tt.data)
			require.Error(t, err)
			assert.Nil(t, img)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRead_TooLarge(t *testing.T) {
	data := encodePNG(t, leaf(64, 64))
	_, err := Read("big.png", SourceUpload, bytes.NewReader(data), 16)
	assert.ErrorIs(t, err, ErrTooLarge)
}

// withDimensions rewrites the IHDR chunk of a PNG so the header declares
// w x h pixels, fixing up the chunk CRC.
func withDimensions(t *testing.T, data []byte, w, h uint32) []byte {
	t.Helper()
	require.Equal(t, "IHDR", string(data[12:16]))
	out := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestDecode_RejectsHugeDimensions(t *testing.T) {
	small := encodePNG(t, leaf(4, 4))

	tests := []struct {
		name string
		w, h uint32
	}{
		{"square", 16000, 16000},
		{"very large", 60000, 60000},
		{"one row", MaxPixels + 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := withDimensions(t, small, tt.w, tt.h)
			img, err := Read("bomb.png", SourceUpload, bytes.NewReader(data), DefaultMaxBytes)
			assert.ErrorIs(t, err, ErrTooLarge)
			assert.Nil(t, img)
		})
	}
}

func TestDecode_KeepsSource(t *testing.T) {
	img, err := Decode("leaf.png", SourceCamera, encodePNG(t, leaf(64, 48)))
	require.NoError(t, err)
	assert.Equal(t, SourceCamera, img.Source)
	assert.Equal(t, 64*48, img.Bounds().Dx()*img.Bounds().Dy())
}

func TestRead_DefaultLimit(t *testing.T) {
	_, err := Read("x", SourceUpload, strings.NewReader("plain"), 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, leaf(10, 10)), 0o644))

	img, err := Open(path, DefaultMaxBytes)
	require.NoError(t, err)
	assert.Equal(t, "leaf.png", img.Name)

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"), DefaultMaxBytes)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestThumbnail(t *testing.T) {
	img := &Image{Pixels: leaf(200, 100)}

	thumb := Thumbnail(img, 40, 40)
	require.NotNil(t, thumb)
	assert.Equal(t, 40, thumb.Bounds().Dx())
	assert.Equal(t, 20, thumb.Bounds().Dy())

	assert.Nil(t, Thumbnail(nil, 10, 10))
	assert.Nil(t, Thumbnail(&Image{}, 10, 10))
}
