package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/govis/internal/app"
	"github.com/tejashwikalptaru/govis/internal/domain"
)

func TestApply(t *testing.T) {
	config := app.DefaultConfig()
	err := apply(flags{
		file:      " song.mp3 ",
		style:     "Filled Wave",
		color:     "#FF0080",
		rainbow:   true,
		logLevel:  "debug",
		logFormat: "JSON",
	}, &config)
	require.NoError(t, err)

	assert.Equal(t, domain.DisplayOptions{Style: domain.StyleFilledWave, BaseColorHex: "ff0080", Rainbow: true}, config.InitialOptions)
	assert.Equal(t, app.SourceFile, config.Source)
	assert.Equal(t, "song.mp3", config.FilePath)
	assert.Equal(t, slog.LevelDebug, config.LogLevel)
	assert.Equal(t, "json", config.LogFormat)
}

func TestApply_SourceModes(t *testing.T) {
	config := app.DefaultConfig()
	require.NoError(t, apply(flags{mic: true, style: "bars", color: "8000ff"}, &config))
	assert.Equal(t, app.SourceMicrophone, config.Source)

	config = app.DefaultConfig()
	require.NoError(t, apply(flags{demo: true, style: "bars", color: "8000ff"}, &config))
	assert.Equal(t, app.SourceDemo, config.Source)

	config = app.DefaultConfig()
	require.NoError(t, apply(flags{style: "bars", color: "8000ff"}, &config))
	assert.Equal(t, app.SourceNone, config.Source)
}

func TestApply_Errors(t *testing.T) {
	config := app.DefaultConfig()
	assert.ErrorIs(t, apply(flags{style: "spiral", color: "8000ff"}, &config), domain.ErrInvalidStyle)
	assert.ErrorIs(t, apply(flags{style: "bars", color: "purple"}, &config), domain.ErrInvalidColor)
	assert.Error(t, apply(flags{style: "bars", color: "8000ff", mic: true, demo: true}, &config))
}
