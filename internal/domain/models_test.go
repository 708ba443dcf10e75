package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVisualStyle(t *testing.T) {
	tests := []struct {
		in   string
		want VisualStyle
	}{
		{"bars", StyleBars},
		{"Bars", StyleBars},
		{"wave", StyleWave},
		{"Filled Wave", StyleFilledWave},
		{"filled-wave", StyleFilledWave},
		{" Oscilloscope ", StyleOscilloscope},
	}

	for _, tt := range tests {
		got, err := ParseVisualStyle(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseVisualStyle("spectrogram")
	assert.ErrorIs(t, err, ErrInvalidStyle)
}

func TestVisualStyle_LabelRoundTrip(t *testing.T) {
	for _, s := range AllStyles() {
		got, err := ParseVisualStyle(s.Label())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestDisplayOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultDisplayOptions().Validate())

	opts := DefaultDisplayOptions()
	opts.BaseColorHex = "12345"
	assert.ErrorIs(t, opts.Validate(), ErrIllegalArgument)

	opts = DefaultDisplayOptions()
	opts.Style = VisualStyle(42)
	assert.ErrorIs(t, opts.Validate(), ErrIllegalArgument)
}

func TestDisplayOptions_BaseColor(t *testing.T) {
	assert.Equal(t, ColorSpec{R: 128, G: 0, B: 255}, DefaultDisplayOptions().BaseColor())
}

func TestSourceInfo_NowPlaying(t *testing.T) {
	assert.Equal(t, "No source selected", SourceInfo{}.NowPlaying())
	assert.Equal(t, "Streaming direct input", SourceInfo{Kind: SourceLiveStream, Name: "default"}.NowPlaying())
	assert.Equal(t, "song.mp3", SourceInfo{Kind: SourcePlayableMedia, Name: "song.mp3"}.NowPlaying())
	assert.Equal(t, "Title", SourceInfo{Kind: SourcePlayableMedia, Name: "song.mp3", Title: "Title"}.NowPlaying())
	assert.Equal(t, "Artist - Title", SourceInfo{Kind: SourcePlayableMedia, Title: "Title", Artist: "Artist"}.NowPlaying())
}

func TestSurfaceSize_IsEmpty(t *testing.T) {
	assert.True(t, SurfaceSize{}.IsEmpty())
	assert.True(t, SurfaceSize{Width: 10}.IsEmpty())
	assert.False(t, SurfaceSize{Width: 1, Height: 1}.IsEmpty())
}
