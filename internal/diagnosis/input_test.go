package diagnosis

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/agriscan/internal/imaging"
)

func TestOpenImage_Unreadable(t *testing.T) {
	_, err := OpenImage(filepath.Join(t.TempDir(), "missing.jpg"), 0)
	var inErr *InvalidInputError
	if !errors.As(err, &inErr) {
		t.Fatalf("got %v, want InvalidInputError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestReadImage_Unsupported(t *testing.T) {
	_, err := ReadImage("notes.txt", imaging.SourceUpload, strings.NewReader("hello"), 0)
	if !errors.Is(err, imaging.ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
	var inErr *InvalidInputError
	if !errors.As(err, &inErr) {
		t.Errorf("got %T, want InvalidInputError", err)
	}
}
