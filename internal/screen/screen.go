package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/agriscan/internal/scan"
	"github.com/abhisek/agriscan/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that collect scan input. The
// header shows the returned status in place of the catalog summary.
type StatusProvider interface {
	ScanStatus() scan.Status
}

// Busy is implemented by screens that cannot be left mid-operation. While
// Busy reports true the app ignores esc.
type Busy interface {
	Busy() bool
}
