package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/balazsv/quizdeck/internal/ui/layout"
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

// EscHandler is an optional interface for screens that take over Esc
// handling, e.g. to close an open modal or ask for confirmation before
// leaving. When HandlesEsc reports true the root model forwards the key
// instead of popping the screen.
type EscHandler interface {
	HandlesEsc() bool
}
