package domain

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    ColorSpec
		wantErr bool
	}{
		{"default purple", "8000ff", ColorSpec{R: 128, G: 0, B: 255}, false},
		{"with hash", "#ff0000", ColorSpec{R: 255, G: 0, B: 0}, false},
		{"upper case", "00FF80", ColorSpec{R: 0, G: 255, B: 128}, false},
		{"black", "000000", ColorSpec{}, false},
		{"too short", "fff", ColorSpec{}, true},
		{"too long", "8000ff00", ColorSpec{}, true},
		{"not hex", "zzzzzz", ColorSpec{}, true},
		{"empty", "", ColorSpec{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHex(tt.hex)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustFromHex_Panics(t *testing.T) {
	assert.Panics(t, func() { MustFromHex("nope") })
	assert.NotPanics(t, func() { MustFromHex("8000ff") })
}

func TestShade(t *testing.T) {
	base := ColorSpec{R: 128, G: 0, B: 255}

	got, err := Shade(base, 200, 0.5)
	require.NoError(t, err)
	assert.Equal(t, ColorSpec{R: 155.5, G: 27.5, B: 282.5}, got)

	got, err = Shade(base, 255, 1)
	require.NoError(t, err)
	assert.Equal(t, base, got, "full magnitude adds nothing")

	got, err = Shade(base, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, base, got, "zero factor adds nothing")
}

func TestShade_InvalidArguments(t *testing.T) {
	base := MustFromHex("8000ff")

	tests := []struct {
		name      string
		magnitude int
		factor    float64
	}{
		{"factor above one", 100, 1.01},
		{"negative factor", 100, -0.1},
		{"negative magnitude", -1, 0.5},
		{"magnitude above 255", 256, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Shade(base, tt.magnitude, tt.factor)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIllegalArgument)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestMagnitudeToColor_Tiers(t *testing.T) {
	base := ColorSpec{R: 10, G: 20, B: 30}

	shift := func(m int, f float64) ColorSpec {
		d := float64(255-m) * f
		return ColorSpec{R: base.R + d, G: base.G + d, B: base.B + d}
	}

	tests := []struct {
		magnitude uint8
		want      ColorSpec
	}{
		{0, base},
		{96, base},
		{97, shift(97, 0.25)},
		{128, shift(128, 0.25)},
		{129, shift(129, 0.33)},
		{156, shift(156, 0.33)},
		{157, shift(157, 0.5)},
		{255, base},
	}

	for _, tt := range tests {
		got := MagnitudeToColor(tt.magnitude, base)
		assert.InDelta(t, tt.want.R, got.R, 1e-9, "magnitude %d", tt.magnitude)
		assert.InDelta(t, tt.want.G, got.G, 1e-9, "magnitude %d", tt.magnitude)
		assert.InDelta(t, tt.want.B, got.B, 1e-9, "magnitude %d", tt.magnitude)
	}
}

func TestMagnitudeToColor_NotCumulative(t *testing.T) {
	base := MustFromHex("8000ff")
	got := MagnitudeToColor(200, base)

	// One 0.5 shade of (255-200), not 0.5+0.33+0.25.
	assert.Equal(t, "rgb(155.5,27.5,282.5)", got.String())
}

func TestAdvanceRainbow(t *testing.T) {
	tests := []struct {
		name string
		in   ColorSpec
		want ColorSpec
	}{
		{"red toward green", ColorSpec{R: 255, G: 0, B: 0}, ColorSpec{R: 254, G: 1, B: 0}},
		{"green toward blue", ColorSpec{R: 0, G: 255, B: 0}, ColorSpec{R: 0, G: 254, B: 1}},
		{"blue toward red", ColorSpec{R: 0, G: 0, B: 255}, ColorSpec{R: 1, G: 0, B: 254}},
		{"purple has no zero blue or red", ColorSpec{R: 128, G: 0, B: 255}, ColorSpec{R: 129, G: 0, B: 254}},
		{"no zero channel stays put", ColorSpec{R: 10, G: 10, B: 10}, ColorSpec{R: 10, G: 10, B: 10}},
		{"black stays put", ColorSpec{}, ColorSpec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdvanceRainbow(tt.in))
		})
	}
}

func TestAdvanceRainbow_SingleBranchPerCall(t *testing.T) {
	// R>0,B==0 fires first; the resulting G>0 must not also trigger the second branch.
	got := AdvanceRainbow(ColorSpec{R: 1, G: 0, B: 0})
	assert.Equal(t, ColorSpec{R: 0, G: 1, B: 0}, got)

	got = AdvanceRainbow(got)
	assert.Equal(t, ColorSpec{R: 0, G: 0, B: 1}, got)
}

func TestAdvanceRainbow_CyclesBackToStart(t *testing.T) {
	start := ColorSpec{R: 255, G: 0, B: 0}
	c := start
	for i := 0; i < 3*255; i++ {
		c = AdvanceRainbow(c)
	}
	assert.Equal(t, start, c)
}

func TestColorSpec_StringIsUnclamped(t *testing.T) {
	assert.Equal(t, "rgb(128,0,255)", MustFromHex("8000ff").String())
	assert.Equal(t, "rgb(300.25,-1,0)", ColorSpec{R: 300.25, G: -1, B: 0}.String())
}

func TestColorSpec_RGBAClamps(t *testing.T) {
	px := ColorSpec{R: 300.7, G: -4, B: 27.5}.RGBA()
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 27, A: 255}, px)
}

func TestColorSpec_HexRoundTrip(t *testing.T) {
	assert.Equal(t, "8000ff", MustFromHex("#8000FF").Hex())
	assert.Equal(t, ColorSpec{R: 1, G: 2, B: 3}, ColorSpecFromColor(color.NRGBA{R: 1, G: 2, B: 3, A: 255}))
}
