package fyne

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/tejashwikalptaru/govis/internal/adapter/audio/file"
	"github.com/tejashwikalptaru/govis/internal/domain"
)

// FileDialog is a helper for choosing a sound file.
type FileDialog struct {
	window   fyne.Window
	callback func(string)
	logger   *slog.Logger
}

// NewFileDialog creates a new file dialog.
func NewFileDialog(window fyne.Window, callback func(string), logger *slog.Logger) *FileDialog {
	return &FileDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// Show displays the file dialog, listing only supported sound files.
func (d *FileDialog) Show() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			d.logger.Error("file dialog error", slog.Any("error", err))
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()

		if d.callback != nil {
			d.callback(reader.URI().Path())
		}
	}, d.window)
	open.SetFilter(storage.NewExtensionFileFilter(file.SupportedExtensions))
	open.Show()
}

// ColorDialog is a helper for picking the base color.
type ColorDialog struct {
	window   fyne.Window
	callback func(hex string)
}

// NewColorDialog creates a new color dialog. The callback receives a 6-digit hex color.
func NewColorDialog(window fyne.Window, callback func(hex string)) *ColorDialog {
	return &ColorDialog{
		window:   window,
		callback: callback,
	}
}

// Show displays the advanced color picker starting from current.
func (d *ColorDialog) Show(current domain.ColorSpec) {
	picker := dialog.NewColorPicker("Base color", "Pick the visualization color", func(c color.Color) {
		if d.callback != nil {
			d.callback(domain.ColorSpecFromColor(c).Hex())
		}
	}, d.window)
	picker.Advanced = true
	picker.SetColor(current.RGBA())
	picker.Show()
}
