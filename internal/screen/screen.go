// Package screen defines the contract between the router and the
// individual TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/EkalavyanS/Flashy/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns a stack of them and
// only the top one receives messages.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that supply their own
// footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a focused text field.
// While CapturingInput is true, single-letter shortcuts such as "q"
// belong to the field, not the app.
type InputCapturer interface {
	CapturingInput() bool
}

// ContextProvider is implemented by screens that show extra context,
// such as the current topic, on the right of the header.
type ContextProvider interface {
	HeaderContext() string
}
