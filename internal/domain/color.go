package domain

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Shading tiers applied by MagnitudeToColor. Only the single matching tier is applied.
const (
	highTierThreshold = 156
	midTierThreshold  = 128
	lowTierThreshold  = 96

	highTierFactor = 0.50
	midTierFactor  = 0.33
	lowTierFactor  = 0.25
)

// ColorSpec is an RGB triple whose channels are not bounded during shading math.
// Channels may exceed 255 (or carry fractions) until they reach a pixel, where RGBA clamps them.
type ColorSpec struct {
	R float64
	G float64
	B float64
}

// FromHex parses a 6-hex-digit color ("8000ff" or "#8000ff").
func FromHex(hex string) (ColorSpec, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return ColorSpec{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	num, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ColorSpec{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	return ColorSpec{
		R: float64((num >> 16) & 255),
		G: float64((num >> 8) & 255),
		B: float64(num & 255),
	}, nil
}

// MustFromHex is like FromHex but panics on invalid input. Use it for constants only.
func MustFromHex(hex string) ColorSpec {
	c, err := FromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Shade adds (255 - magnitude) * factor to every channel without clamping.
func Shade(spec ColorSpec, magnitude int, factor float64) (ColorSpec, error) {
	if factor < 0 || factor > 1 {
		return spec, NewValidationError("factor", factor, "must be between 0.0 and 1.0")
	}
	if magnitude < 0 || magnitude > 255 {
		return spec, NewValidationError("magnitude", magnitude, "must be between 0 and 255")
	}

	diff := float64(255-magnitude) * factor
	return ColorSpec{
		R: spec.R + diff,
		G: spec.G + diff,
		B: spec.B + diff,
	}, nil
}

// MagnitudeToColor brightens base according to the tier the magnitude falls in.
// Magnitudes of 96 and below return base unchanged.
func MagnitudeToColor(magnitude uint8, base ColorSpec) ColorSpec {
	var factor float64
	switch {
	case magnitude > highTierThreshold:
		factor = highTierFactor
	case magnitude > midTierThreshold:
		factor = midTierFactor
	case magnitude > lowTierThreshold:
		factor = lowTierFactor
	default:
		return base
	}

	// A uint8 magnitude and a constant factor are always in range.
	shaded, _ := Shade(base, int(magnitude), factor)
	return shaded
}

// AdvanceRainbow moves the color one step along the RGB cube edge.
// At most one branch fires per call; a color with no channel at zero stays put.
func AdvanceRainbow(spec ColorSpec) ColorSpec {
	switch {
	case spec.R > 0 && spec.B == 0:
		spec.R--
		spec.G++
	case spec.G > 0 && spec.R == 0:
		spec.G--
		spec.B++
	case spec.B > 0 && spec.G == 0:
		spec.R++
		spec.B--
	}
	return spec
}

// String formats the color as "rgb(R,G,B)" with no clamping.
func (c ColorSpec) String() string {
	return "rgb(" + formatChannel(c.R) + "," + formatChannel(c.G) + "," + formatChannel(c.B) + ")"
}

// RGBA converts the color to an opaque pixel color, clamping each channel to 0-255.
func (c ColorSpec) RGBA() color.RGBA {
	return color.RGBA{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B), A: 255}
}

// Hex returns the clamped color as 6 lower-case hex digits.
func (c ColorSpec) Hex() string {
	px := c.RGBA()
	return fmt.Sprintf("%02x%02x%02x", px.R, px.G, px.B)
}

// ColorSpecFromColor converts any color.Color to a ColorSpec.
func ColorSpecFromColor(col color.Color) ColorSpec {
	px := color.RGBAModel.Convert(col).(color.RGBA)
	return ColorSpec{R: float64(px.R), G: float64(px.G), B: float64(px.B)}
}

func formatChannel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
