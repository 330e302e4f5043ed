// Package font builds glyph atlases for raster.Font: the built-in 7×13
// bitmap face, or a fixed-width atlas image loaded from disk.
package font

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"softraster/internal/logging"
	"softraster/internal/raster"
	"softraster/internal/texture"
)

// DefaultGlyphs is the glyph sequence of the built-in atlas: printable
// ASCII from '!' to '~'. Space is handled by Pprint as an advance.
const DefaultGlyphs = "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

const (
	defaultPerRow  = 16
	defaultSpacing = 1
)

// Default renders basicfont.Face7x13 into a white-on-transparent atlas.
func Default() *raster.Font {
	face := basicfont.Face7x13
	gw, gh := face.Advance, face.Height
	glyphs := []rune(DefaultGlyphs)
	rows := (len(glyphs) + defaultPerRow - 1) / defaultPerRow

	img := image.NewNRGBA(image.Rect(0, 0, defaultPerRow*gw, rows*gh))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for i, ch := range glyphs {
		x := (i % defaultPerRow) * gw
		y := (i / defaultPerRow) * gh
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(ch))
	}
	return raster.NewFont(raster.FromNRGBA(img), DefaultGlyphs, gw, gh, defaultSpacing)
}

// Load reads an atlas image whose cells hold glyphs in order, left to right
// then top to bottom, each glyphWidth×glyphHeight.
func Load(path, glyphs string, glyphWidth, glyphHeight, spacing int) (*raster.Font, error) {
	if glyphs == "" || glyphWidth <= 0 || glyphHeight <= 0 {
		return nil, fmt.Errorf("font: load %s: glyph table and cell size are required", path)
	}
	atlas, err := texture.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("font: load %s: %w", path, err)
	}
	if atlas.Width < glyphWidth || atlas.Width%glyphWidth != 0 {
		return nil, fmt.Errorf("font: load %s: atlas width %d is not a multiple of glyph width %d",
			path, atlas.Width, glyphWidth)
	}
	return raster.NewFont(atlas, glyphs, glyphWidth, glyphHeight, spacing), nil
}

// LoadOrDefault is Load that falls back to Default, logging why. An empty
// path selects Default silently.
func LoadOrDefault(path, glyphs string, glyphWidth, glyphHeight, spacing int) *raster.Font {
	if path == "" {
		return Default()
	}
	f, err := Load(path, glyphs, glyphWidth, glyphHeight, spacing)
	if err != nil {
		logging.Logger().Warn("font: using built-in face", "path", path, "err", err)
		return Default()
	}
	return f
}
