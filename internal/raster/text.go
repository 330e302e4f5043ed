package raster

// Font is a fixed-width glyph atlas. Glyph i of Glyphs occupies the cell
// starting at x = i*GlyphWidth (wrapping at the atlas width), on row
// (i*GlyphWidth / atlasWidth).
type Font struct {
	Atlas        *Rasterizer
	Glyphs       []rune
	GlyphWidth   int
	GlyphHeight  int
	GlyphSpacing int
}

// NewFont builds a Font from an atlas and the glyph sequence it contains.
func NewFont(atlas *Rasterizer, glyphs string, glyphWidth, glyphHeight, spacing int) *Font {
	return &Font{
		Atlas:        atlas,
		Glyphs:       []rune(glyphs),
		GlyphWidth:   glyphWidth,
		GlyphHeight:  glyphHeight,
		GlyphSpacing: spacing,
	}
}

// index returns the atlas position of ch, or -1.
func (f *Font) index(ch rune) int {
	for i, g := range f.Glyphs {
		if g == ch {
			return i
		}
	}
	return -1
}

// Cell returns the atlas rectangle of glyph i.
func (f *Font) Cell(i int) (x, y, w, h int) {
	aw := max(f.Atlas.Width, 1)
	return (i * f.GlyphWidth) % aw,
		((i * f.GlyphWidth) / aw) * f.GlyphHeight,
		f.GlyphWidth,
		f.GlyphHeight
}

// Pprint draws text with its top-left corner at (x, y). A space advances one
// glyph width, a newline returns to x and moves down GlyphHeight+lineSpacing,
// and characters missing from the font are skipped. When wrapWidth > 0 a
// line break is forced once the cursor passes wrapWidth pixels.
func (r *Rasterizer) Pprint(f *Font, text string, x, y, lineSpacing, wrapWidth int) {
	if f == nil || f.Atlas == nil || f.GlyphWidth <= 0 || f.GlyphHeight <= 0 {
		return
	}
	cx, cy := 0, 0
	newline := func() {
		cx = 0
		cy += f.GlyphHeight + lineSpacing
	}

	for _, ch := range text {
		switch ch {
		case '\n':
			newline()
			continue
		case ' ':
			cx += f.GlyphWidth
		default:
			if i := f.index(ch); i >= 0 {
				gx, gy, gw, gh := f.Cell(i)
				r.Pimgrect(f.Atlas, x+cx, y+cy, gx, gy, gw, gh)
				cx += f.GlyphWidth + f.GlyphSpacing
			}
		}
		if wrapWidth > 0 && cx > wrapWidth {
			newline()
		}
	}
}

// MeasureText returns the pixel extent Pprint would cover, ignoring
// wrapping.
func (f *Font) MeasureText(text string, lineSpacing int) (w, h int) {
	cx, lines := 0, 1
	for _, ch := range text {
		switch ch {
		case '\n':
			cx = 0
			lines++
		case ' ':
			cx += f.GlyphWidth
		default:
			if f.index(ch) >= 0 {
				cx += f.GlyphWidth + f.GlyphSpacing
			}
		}
		w = max(w, cx)
	}
	return w, lines*f.GlyphHeight + (lines-1)*lineSpacing
}
