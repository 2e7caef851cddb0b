package screen

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/tutor"
	"github.com/abhisek/quantpath/internal/ui/layout"
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

// InputCapturer is implemented by screens that are currently taking text
// input. While capturing, the app does not treat esc as "back".
type InputCapturer interface {
	CapturingInput() bool
}

// Env carries the shared services every screen reads from.
type Env struct {
	Ctx     context.Context
	Tracker *progress.Tracker
	Gateway *tutor.Gateway
	Logger  *slog.Logger
}
