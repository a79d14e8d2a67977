package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/gravitdam/gravitdam/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the tab bar.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Enterable is implemented by screens that react to becoming the active
// tab, e.g. to start loading data.
type Enterable interface {
	OnEnter() tea.Cmd
}

// InputCapturer is implemented by screens that own free text input. While
// CapturesInput reports true, printable keys are not treated as global
// shortcuts.
type InputCapturer interface {
	CapturesInput() bool
}

// Canceler is implemented by screens that run background operations.
// Cancel aborts all of them; it is called when the program quits.
type Canceler interface {
	Cancel()
}
