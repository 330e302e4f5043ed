package raster

import (
	"fmt"
	"strings"
)

// DrawMode selects how Pset composites an incoming color with the buffer.
type DrawMode uint8

const (
	// Opaque writes the tinted color only when its alpha is 255.
	Opaque DrawMode = iota
	// NoOp overwrites the pixel with the raw color, ignoring tint.
	NoOp
	// NoAlpha overwrites the pixel with the tinted color regardless of alpha.
	NoAlpha
	// Alpha blends the tinted color over the buffer by the opacity byte.
	Alpha
	// Addition adds the blended color onto the buffer.
	Addition
	// Subtraction subtracts the blended color from the buffer.
	Subtraction
	// Multiply multiplies the buffer by the blended inverse of the color.
	Multiply
	InvertedAlpha
	InvertedOpaque
	InvertedBgAlpha
	InvertedBgOpaque
	PatternOpaque
	PatternAlpha
	PatternAddition
	PatternSubtraction
	PatternMultiply
	PatternInvertedAlpha
	PatternInvertedOpaque
	PatternInvertedBgAlpha
	PatternInvertedBgOpaque
	// Collect records pixels in Collected instead of writing them.
	Collect
)

var drawModeNames = [...]string{
	Opaque:                  "opaque",
	NoOp:                    "noop",
	NoAlpha:                 "noalpha",
	Alpha:                   "alpha",
	Addition:                "addition",
	Subtraction:             "subtraction",
	Multiply:                "multiply",
	InvertedAlpha:           "inverted_alpha",
	InvertedOpaque:          "inverted_opaque",
	InvertedBgAlpha:         "inverted_bg_alpha",
	InvertedBgOpaque:        "inverted_bg_opaque",
	PatternOpaque:           "pattern_opaque",
	PatternAlpha:            "pattern_alpha",
	PatternAddition:         "pattern_addition",
	PatternSubtraction:      "pattern_subtraction",
	PatternMultiply:         "pattern_multiply",
	PatternInvertedAlpha:    "pattern_inverted_alpha",
	PatternInvertedOpaque:   "pattern_inverted_opaque",
	PatternInvertedBgAlpha:  "pattern_inverted_bg_alpha",
	PatternInvertedBgOpaque: "pattern_inverted_bg_opaque",
	Collect:                 "collect",
}

func (m DrawMode) String() string {
	if int(m) < len(drawModeNames) {
		return drawModeNames[m]
	}
	return fmt.Sprintf("DrawMode(%d)", m)
}

// ParseDrawMode maps a mode name (case-insensitive, "-" or "_" separated)
// to its DrawMode.
func ParseDrawMode(s string) (DrawMode, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range drawModeNames {
		if name == key {
			return DrawMode(i), nil
		}
	}
	return Opaque, fmt.Errorf("raster: unknown draw mode %q", s)
}

// base strips the pattern flag: PatternAlpha -> Alpha.
func (m DrawMode) base() (DrawMode, bool) {
	switch m {
	case PatternOpaque:
		return Opaque, true
	case PatternAlpha:
		return Alpha, true
	case PatternAddition:
		return Addition, true
	case PatternSubtraction:
		return Subtraction, true
	case PatternMultiply:
		return Multiply, true
	case PatternInvertedAlpha:
		return InvertedAlpha, true
	case PatternInvertedOpaque:
		return InvertedOpaque, true
	case PatternInvertedBgAlpha:
		return InvertedBgAlpha, true
	case PatternInvertedBgOpaque:
		return InvertedBgOpaque, true
	}
	return m, false
}

// Composite computes the new buffer pixel for incoming color c over bg.
// write is false when the mode skips the pixel. Pattern and Collect modes are
// resolved by Pset and never reach here.
func Composite(mode DrawMode, bg, c, tint Color, opacity uint8) (out Color, write bool) {
	switch mode {
	case NoOp:
		return c, true
	case NoAlpha:
		return c.Mul(tint), true
	case Opaque:
		if c.A < 255 {
			return bg, false
		}
		return c.Mul(tint), true
	case Alpha:
		return Blend(c.Mul(tint), bg.Opaque(), opacity).Opaque(), true
	case Addition:
		if c.A == 0 {
			return bg, false
		}
		bg = bg.Opaque()
		return Blend(c.Mul(tint), bg, opacity).Add(bg), true
	case Subtraction:
		if c.A == 0 {
			return bg, false
		}
		bg = bg.Opaque()
		return bg.Sub(Blend(c.Mul(tint), bg, opacity)).Opaque(), true
	case Multiply:
		if c.A == 0 {
			return bg, false
		}
		bg = bg.Opaque()
		return Blend(c.Mul(tint).Inverted(), bg, opacity).Mul(bg), true
	case InvertedAlpha:
		if c.A == 0 {
			return bg, false
		}
		return Blend(c.Mul(tint).Inverted(), bg.Opaque(), opacity), true
	case InvertedOpaque:
		if c.A < 255 {
			return bg, false
		}
		return c.Mul(tint).Inverted(), true
	case InvertedBgOpaque:
		if c.A < 255 {
			return bg, false
		}
		return bg.Opaque().Mul(tint).Inverted(), true
	case InvertedBgAlpha:
		if c.A < 255 {
			return bg, false
		}
		bg = bg.Opaque()
		return Blend(bg, bg.Mul(tint).Inverted(), opacity), true
	}
	return bg, false
}
