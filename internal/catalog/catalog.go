package catalog

import (
	"errors"
	"fmt"
)

// Label is one disease class name from the catalog, including the
// healthy sentinel.
type Label string

// Entry pairs a label with its treatment category.
type Entry struct {
	Label    Label
	Category Category
}

// Catalog is the fixed, ordered set of disease labels a scan ranks.
// Order matters: it is the tie-break order when two labels score the same.
type Catalog struct {
	crop    string
	entries []Entry
	index   map[Label]int
}

var (
	ErrEmpty           = errors.New("label catalog is empty")
	ErrDuplicateLabel  = errors.New("duplicate label")
	ErrBlankLabel      = errors.New("blank label")
	ErrUnknownCategory = errors.New("unknown category")
)

// ConfigurationError reports an unusable label catalog. It is fatal at
// startup and returned by any operation handed an empty catalog.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("catalog configuration (%s): %v", e.Source, e.Err)
	}
	return fmt.Sprintf("catalog configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// New builds a catalog from entries in order. Entries with an empty
// Category are classified from their label.
func New(crop string, entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, &ConfigurationError{Err: ErrEmpty}
	}

	c := &Catalog{
		crop:    crop,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[Label]int, len(entries)),
	}
	for i, e := range entries {
		if e.Label == "" {
			return nil, &ConfigurationError{Err: fmt.Errorf("entry %d: %w", i, ErrBlankLabel)}
		}
		if _, dup := c.index[e.Label]; dup {
			return nil, &ConfigurationError{Err: fmt.Errorf("%w: %q", ErrDuplicateLabel, e.Label)}
		}
		if e.Category == "" {
			e.Category = Classify(e.Label)
		} else if !e.Category.Valid() {
			return nil, &ConfigurationError{Err: fmt.Errorf("%q: %w %q", e.Label, ErrUnknownCategory, e.Category)}
		}
		c.index[e.Label] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Len returns the number of labels. A nil catalog has none.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Crop returns the crop name the labels are prefixed with.
func (c *Catalog) Crop() string {
	if c == nil {
		return ""
	}
	return c.crop
}

// Labels returns the labels in catalog order.
func (c *Catalog) Labels() []Label {
	if c == nil {
		return nil
	}
	out := make([]Label, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Label
	}
	return out
}

// Entries returns a copy of the catalog entries in order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Index returns the catalog position of label, or -1.
func (c *Catalog) Index(label Label) int {
	if c == nil {
		return -1
	}
	if i, ok := c.index[label]; ok {
		return i
	}
	return -1
}

// Contains reports whether label is a catalog member.
func (c *Catalog) Contains(label Label) bool {
	return c.Index(label) >= 0
}

// CategoryOf returns the category resolved for label at definition time.
func (c *Catalog) CategoryOf(label Label) (Category, bool) {
	i := c.Index(label)
	if i < 0 {
		return "", false
	}
	return c.entries[i].Category, true
}
