package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the catalog file format this build reads. Files may
// name any v1.x.y version; a missing version means v1.
const FormatVersion = "v1"

// ErrUnsupportedVersion reports a catalog file written for another format.
var ErrUnsupportedVersion = errors.New("unsupported catalog format version")

//go:embed default.yaml
var defaultYAML []byte

// fileCatalog is the on-disk catalog layout.
type fileCatalog struct {
	Version string      `yaml:"version"`
	Crop    string      `yaml:"crop"`
	Labels  []fileEntry `yaml:"labels" validate:"unique=Name,dive"`
}

type fileEntry struct {
	Name     string `yaml:"name" validate:"required"`
	Category string `yaml:"category" validate:"omitempty,oneof=healthy early-blight late-blight septoria general"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in ten-label tomato catalog.
func Default() *Catalog {
	c, err := Parse(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file. An empty path yields the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Source = path
			return nil, cfgErr
		}
		return nil, &ConfigurationError{Source: path, Err: err}
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(r io.Reader) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.NewDecoder(r).Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigurationError{Err: fmt.Errorf("decode: %w", err)}
	}

	if err := checkVersion(fc.Version); err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	if len(fc.Labels) == 0 {
		return nil, &ConfigurationError{Err: ErrEmpty}
	}
	if err := validate.Struct(fc); err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("validate: %w", err)}
	}

	entries := make([]Entry, len(fc.Labels))
	for i, l := range fc.Labels {
		entries[i] = Entry{Label: Label(l.Name), Category: Category(l.Category)}
	}
	return New(fc.Crop, entries)
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != FormatVersion {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, FormatVersion)
	}
	return nil
}
