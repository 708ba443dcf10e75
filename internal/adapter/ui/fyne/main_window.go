package fyne

import (
	"log/slog"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/govis/internal/adapter/ui/fyne/widgets/visualizer"
	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/ports"
	"github.com/tejashwikalptaru/govis/res"
)

// Window defaults.
const (
	WIDTH  = 960
	HEIGHT = 540
)

// MainWindow is the visualizer window implementing ports.View.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window
	logger *slog.Logger

	// UI components
	surface      *visualizer.Surface
	styleSelect  *widget.Select
	colorEntry   *widget.Entry
	colorButton  *widget.Button
	rainbowCheck *widget.Check
	openButton   *widget.Button
	micButton    *widget.Button
	stopButton   *widget.Button
	nowPlaying   *widget.Label

	// syncing suppresses change handlers while the view mirrors new options
	syncing bool
	options domain.DisplayOptions

	closeOnce sync.Once

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates the window around surface.
func NewMainWindow(app fyneapp.App, title string, surface *visualizer.Surface, logger *slog.Logger) *MainWindow {
	w := &MainWindow{
		app:     app,
		logger:  logger,
		surface: surface,
		options: domain.DefaultDisplayOptions(),
	}

	w.window = app.NewWindow(title)
	w.buildUI()
	w.window.Resize(fyneapp.NewSize(WIDTH, HEIGHT))
	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
	w.addShortcuts()
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	labels := make([]string, 0, len(domain.AllStyles()))
	for _, s := range domain.AllStyles() {
		labels = append(labels, s.Label())
	}
	w.styleSelect = widget.NewSelect(labels, nil)
	w.styleSelect.SetSelected(w.options.Style.Label())

	w.colorEntry = widget.NewEntry()
	w.colorEntry.SetPlaceHolder("8000ff")
	w.colorEntry.SetText(w.options.BaseColorHex)
	w.colorButton = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), nil)
	w.rainbowCheck = widget.NewCheck("Rainbow", nil)

	w.openButton = widget.NewButtonWithIcon("Open File", theme.FolderOpenIcon(), nil)
	w.micButton = widget.NewButtonWithIcon("Microphone", theme.MediaRecordIcon(), nil)
	w.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), nil)
	w.stopButton.Disable()

	w.nowPlaying = widget.NewLabel(domain.SourceInfo{}.NowPlaying())
	w.nowPlaying.Truncation = fyneapp.TextTruncateEllipsis
	w.nowPlaying.TextStyle = fyneapp.TextStyle{
		Bold:   true,
		Italic: true,
	}

	colorBox := container.NewBorder(nil, nil, nil, w.colorButton, w.colorEntry)
	display := container.NewGridWithColumns(3, w.styleSelect, colorBox, w.rainbowCheck)
	sources := container.NewHBox(w.openButton, w.micButton, w.stopButton)
	controls := container.NewVBox(
		container.NewBorder(nil, nil, sources, nil, w.nowPlaying),
		display,
	)

	w.window.SetContent(container.NewBorder(nil, container.NewPadded(controls), nil, nil, w.surface))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// wirePresenterHandlers connects UI events to presenter handlers.
func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	w.styleSelect.OnChanged = func(label string) {
		if w.syncing {
			return
		}
		if err := w.presenter.OnStyleSelected(label); err != nil {
			w.ShowError("Invalid style", err.Error())
		}
	}

	w.colorEntry.OnSubmitted = func(text string) {
		if err := w.presenter.OnColorChanged(text); err != nil {
			w.ShowError("Invalid color", "Enter six hex digits, for example 8000ff.")
			w.colorEntry.SetText(w.options.BaseColorHex)
		}
	}

	w.colorButton.OnTapped = func() {
		w.handlePickColor()
	}

	w.rainbowCheck.OnChanged = func(enabled bool) {
		if w.syncing {
			return
		}
		w.presenter.OnRainbowToggled(enabled)
	}

	w.openButton.OnTapped = func() {
		w.handleOpenFile()
	}

	w.micButton.OnTapped = func() {
		w.handleMicrophone()
	}

	w.stopButton.OnTapped = func() {
		w.presenter.OnStopClicked()
	}
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	separator := fyneapp.NewMenuItemSeparator()

	openFile := fyneapp.NewMenuItem("Open File", func() {
		w.handleOpenFile()
	})

	directInput := fyneapp.NewMenuItem("Direct Input", func() {
		w.handleMicrophone()
	})

	stop := fyneapp.NewMenuItem("Stop", func() {
		if w.presenter != nil {
			w.presenter.OnStopClicked()
		}
	})

	exitMenu := fyneapp.NewMenuItem("Exit", func() {
		w.window.Close()
	})

	about := fyneapp.NewMenuItem("About", func() {
		w.showAbout()
	})

	return []*fyneapp.Menu{
		fyneapp.NewMenu("File", openFile, directInput, separator, stop, separator, exitMenu),
		fyneapp.NewMenu("Help", about),
	}
}

// showAbout displays the application description.
func (w *MainWindow) showAbout() {
	content := widget.NewRichTextFromMarkdown(res.AboutContent)
	content.Wrapping = fyneapp.TextWrapWord
	d := dialog.NewCustom(w.window.Title(), "Close", content, w.window)
	d.Resize(fyneapp.NewSize(420, 260))
	d.Show()
}

// handleOpenFile handles the "Open File" action.
func (w *MainWindow) handleOpenFile() {
	if w.presenter == nil {
		return
	}

	// Errors surface through the source-failed event.
	dlg := NewFileDialog(w.window, func(filePath string) {
		_ = w.presenter.OnFileChosen(filePath)
	}, w.logger)
	dlg.Show()
}

// handleMicrophone handles the "Microphone" action.
func (w *MainWindow) handleMicrophone() {
	if w.presenter == nil {
		return
	}
	_ = w.presenter.OnMicrophoneClicked()
}

// handlePickColor opens the color picker at the current base color.
func (w *MainWindow) handlePickColor() {
	if w.presenter == nil {
		return
	}

	dlg := NewColorDialog(w.window, func(hex string) {
		if err := w.presenter.OnColorChanged(hex); err != nil {
			w.ShowError("Invalid color", err.Error())
		}
	})
	dlg.Show(w.options.BaseColor())
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyO,
		Modifier: fyneapp.KeyModifierShortcutDefault,
	}, func(fyneapp.Shortcut) {
		w.handleOpenFile()
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyR,
		Modifier: fyneapp.KeyModifierShortcutDefault,
	}, func(fyneapp.Shortcut) {
		w.rainbowCheck.SetChecked(!w.rainbowCheck.Checked)
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// SetOnBeforeClose sets a callback run when the window is about to close.
func (w *MainWindow) SetOnBeforeClose(callback func()) {
	w.window.SetCloseIntercept(func() {
		if callback != nil {
			callback()
		}
		w.window.Close()
	})
}

// ports.View implementation

// SetNowPlaying updates the "now playing" label.
func (w *MainWindow) SetNowPlaying(text string) {
	w.nowPlaying.SetText(text)
}

// SetOptions mirrors options in the controls without firing change handlers.
func (w *MainWindow) SetOptions(options domain.DisplayOptions) {
	w.syncing = true
	defer func() { w.syncing = false }()

	w.options = options
	w.styleSelect.SetSelected(options.Style.Label())
	w.colorEntry.SetText(options.BaseColorHex)
	w.rainbowCheck.SetChecked(options.Rainbow)
}

// SetRunning enables the Stop control while a source is visualized.
func (w *MainWindow) SetRunning(running bool) {
	if running {
		w.stopButton.Enable()
		return
	}
	w.stopButton.Disable()
	w.surface.Clear()
}

// ShowError displays an error dialog.
func (w *MainWindow) ShowError(title, message string) {
	dialog.ShowInformation(title, message, w.window)
}

// Run shows the window and runs the application.
func (w *MainWindow) Run() {
	w.window.ShowAndRun()
}

// Quit closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Quit() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// Verify ports.View implementation
var _ ports.View = (*MainWindow)(nil)
