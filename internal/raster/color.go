package raster

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a straight (non-premultiplied) 8-bit RGBA value.
type Color struct {
	R, G, B, A uint8
}

// Named colors.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Magenta     = Color{255, 0, 255, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// HSV returns an opaque color from hue in degrees (wrapped into [0, 360))
// and saturation/value in [0, 1].
func HSV(hue, saturation, value float64) Color {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsv(hue, clamp01(saturation), clamp01(value)).Clamped().RGB255()
	return Color{r, g, b, 255}
}

// Add sums two colors channel-wise, saturating at 255.
func (c Color) Add(o Color) Color {
	return Color{addSat(c.R, o.R), addSat(c.G, o.G), addSat(c.B, o.B), addSat(c.A, o.A)}
}

// Sub subtracts o from c channel-wise, saturating at 0.
func (c Color) Sub(o Color) Color {
	return Color{subSat(c.R, o.R), subSat(c.G, o.G), subSat(c.B, o.B), subSat(c.A, o.A)}
}

// Mul multiplies channels as normalized [0,1] fixed-point values.
// White is the identity.
func (c Color) Mul(o Color) Color {
	return Color{mul8(c.R, o.R), mul8(c.G, o.G), mul8(c.B, o.B), mul8(c.A, o.A)}
}

// Inverted flips the RGB channels; alpha is kept.
func (c Color) Inverted() Color {
	return Color{255 - c.R, 255 - c.G, 255 - c.B, c.A}
}

// Opaque returns c with alpha forced to 255.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// Blend mixes fg over bg weighted by opacity (0 keeps bg, 255 yields fg).
// All four channels are mixed.
func Blend(fg, bg Color, opacity uint8) Color {
	return Color{
		lerp8(bg.R, fg.R, opacity),
		lerp8(bg.G, fg.G, opacity),
		lerp8(bg.B, fg.B, opacity),
		lerp8(bg.A, fg.A, opacity),
	}
}

func lerp8(bg, fg, t uint8) uint8 {
	return uint8((uint32(fg)*uint32(t) + uint32(bg)*uint32(255-t) + 127) / 255)
}

func mul8(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func subSat(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
