package diagnosis

import (
	"fmt"
	"strings"

	"github.com/abhisek/agriscan/internal/catalog"
)

// ConfigurationError reports an empty or invalid label catalog, or a
// ScoreProvider whose output does not fit the catalog.
type ConfigurationError = catalog.ConfigurationError

// InvalidInputError indicates the image handle is malformed or unreadable.
// The scan is aborted and no result is produced.
type InvalidInputError struct {
	Name string
	Err  error
}

func (e *InvalidInputError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid image %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("invalid image: %v", e.Err)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// UnknownPresetError indicates a preset name outside the fixed set.
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset %q (available: %s)", e.Name, strings.Join(PresetNames(), ", "))
}
