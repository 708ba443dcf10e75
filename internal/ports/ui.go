// Package ports define the View interface for view abstraction.
// This interface allows the presenter to update the UI without depending on Fyne directly.
package ports

import (
	"github.com/tejashwikalptaru/govis/internal/domain"
)

// View is the interface for the visualizer window.
//
// Thread-safety: All methods must be called from the main UI thread.
// The presenter marshals event-bus callbacks with fyne.Do before calling them.
type View interface {
	// SetNowPlaying updates the "now playing" label.
	SetNowPlaying(text string)

	// SetOptions reflects display options in the controls without firing change handlers.
	SetOptions(options domain.DisplayOptions)

	// SetRunning enables or disables the Stop control.
	SetRunning(running bool)

	// ShowError displays an error dialog. The application stays usable afterward.
	ShowError(title, message string)

	// Run starts the UI event loop. This is a blocking call.
	Run()

	// Quit closes the application.
	Quit()
}
