package raster

import (
	"image"

	"softraster/internal/mathutil"
)

// CollectedPixel is one pixel recorded while the Collect draw mode is active.
type CollectedPixel struct {
	X, Y  int
	Color Color
}

// Rasterizer is a flat RGBA framebuffer plus the drawing state applied to
// every Pset-based primitive.
//
// A Rasterizer is not safe for concurrent use; partitioned rendering gives
// each goroutine its own instance.
type Rasterizer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, row-major, len = W*H*4

	Mode    DrawMode
	Tint    Color
	Opacity uint8

	// OffsetX/OffsetY place a partition tile inside its parent buffer.
	OffsetX int
	OffsetY int

	// DrawnPixels counts pixel writes since the last clear.
	DrawnPixels uint64
	Collected   []CollectedPixel

	Camera Camera

	recordEvery uint64
	frames      []*image.NRGBA
}

// New allocates a zeroed w×h rasterizer in Opaque mode with a white tint and
// full opacity. Negative sizes are treated as zero.
func New(w, h int) *Rasterizer {
	w, h = max(w, 0), max(h, 0)
	return &Rasterizer{
		Width:   w,
		Height:  h,
		Pix:     make([]uint8, w*h*4),
		Mode:    Opaque,
		Tint:    White,
		Opacity: 255,
		Camera:  NewCamera(),
	}
}

// FromNRGBA copies img into a new rasterizer. The image origin maps to (0, 0).
func FromNRGBA(img *image.NRGBA) *Rasterizer {
	b := img.Bounds()
	r := New(b.Dx(), b.Dy())
	rowLen := r.Width * 4
	for y := 0; y < r.Height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(r.Pix[y*rowLen:(y+1)*rowLen], img.Pix[off:off+rowLen])
	}
	return r
}

// Resize reallocates the buffer to w×h and clears it.
func (r *Rasterizer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	r.Width = w
	r.Height = h
	r.Pix = make([]uint8, w*h*4)
	r.DrawnPixels = 0
	r.stopRecording()
}

// SetDrawMode changes the compositing used by subsequent draws.
func (r *Rasterizer) SetDrawMode(m DrawMode) {
	r.Mode = m
}

func (r *Rasterizer) SetTint(c Color) {
	r.Tint = c
}

func (r *Rasterizer) SetOpacity(o uint8) {
	r.Opacity = o
}

// Clear zeroes the buffer and resets the drawn-pixel counter.
func (r *Rasterizer) Clear() {
	clear(r.Pix)
	r.DrawnPixels = 0
}

// ClearColor floods the buffer with c and resets the drawn-pixel counter.
func (r *Rasterizer) ClearColor(c Color) {
	if len(r.Pix) >= 4 {
		r.Pix[0], r.Pix[1], r.Pix[2], r.Pix[3] = c.R, c.G, c.B, c.A
		// Doubling copy fills the rest in O(log n) calls.
		for n := 4; n < len(r.Pix); n *= 2 {
			copy(r.Pix[n:], r.Pix[:n])
		}
	}
	r.DrawnPixels = 0
}

// ClearCollected empties the Collect-mode pixel list, keeping its capacity.
func (r *Rasterizer) ClearCollected() {
	r.Collected = r.Collected[:0]
}

// Blit copies src into r at (x, y) unconditionally, ignoring draw mode,
// tint and opacity. The copy is clipped to r's bounds.
func (r *Rasterizer) Blit(src *Rasterizer, x, y int) {
	x0 := max(x, 0)
	y0 := max(y, 0)
	x1 := min(x+src.Width, r.Width)
	y1 := min(y+src.Height, r.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	n := (x1 - x0) * 4
	for dy := y0; dy < y1; dy++ {
		si := ((dy-y)*src.Width + (x0 - x)) * 4
		di := (dy*r.Width + x0) * 4
		copy(r.Pix[di:di+n], src.Pix[si:si+n])
	}
}

// CopyRegion fills dst from r's pixels starting at (x, y), the inverse of
// Blit. Used to refresh a partition from its parent buffer.
func (r *Rasterizer) CopyRegion(dst *Rasterizer, x, y int) {
	x0 := max(x, 0)
	y0 := max(y, 0)
	x1 := min(x+dst.Width, r.Width)
	y1 := min(y+dst.Height, r.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	n := (x1 - x0) * 4
	for sy := y0; sy < y1; sy++ {
		si := (sy*r.Width + x0) * 4
		di := ((sy-y)*dst.Width + (x0 - x)) * 4
		copy(dst.Pix[di:di+n], r.Pix[si:si+n])
	}
}

// Image returns a copy of the buffer as an NRGBA image.
func (r *Rasterizer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	return img
}

// Bounds returns the area covered in parent-buffer coordinates.
func (r *Rasterizer) Bounds() image.Rectangle {
	return image.Rect(r.OffsetX, r.OffsetY, r.OffsetX+r.Width, r.OffsetY+r.Height)
}

// RecordFrames captures a snapshot after every `every` pixel writes until
// the buffer is resized. every <= 0 stops recording.
func (r *Rasterizer) RecordFrames(every int) {
	if every <= 0 {
		r.stopRecording()
		return
	}
	r.recordEvery = uint64(every)
	r.frames = nil
}

// Recording reports whether RecordFrames is active.
func (r *Rasterizer) Recording() bool {
	return r.recordEvery > 0
}

// CaptureIfDue appends one snapshot when the drawn-pixel counter crossed a
// recording interval since it read prev. Used after pixels were counted in
// bulk.
func (r *Rasterizer) CaptureIfDue(prev uint64) {
	if r.recordEvery > 0 && r.DrawnPixels/r.recordEvery > prev/r.recordEvery {
		r.frames = append(r.frames, r.Image())
	}
}

// Frames returns the snapshots captured so far.
func (r *Rasterizer) Frames() []*image.NRGBA {
	return r.frames
}

func (r *Rasterizer) stopRecording() {
	r.recordEvery = 0
}

// Pset composites c into the pixel at (x, y). Coordinates wrap around the
// buffer edges, so negative values address the opposite side.
func (r *Rasterizer) Pset(x, y int, c Color) {
	if r.Width == 0 || r.Height == 0 {
		return
	}
	x = mathutil.Mod(x, r.Width)
	y = mathutil.Mod(y, r.Height)
	r.plot(x, y, c)
}

// plot composites at an in-bounds coordinate.
func (r *Rasterizer) plot(x, y int, c Color) {
	mode := r.Mode
	if mode == Collect {
		r.Collected = append(r.Collected, CollectedPixel{x, y, c.Mul(r.Tint)})
		return
	}
	if base, pattern := mode.base(); pattern {
		// Stipple in parent coordinates so partitions line up.
		if (x+r.OffsetX+y+r.OffsetY)&1 != 0 {
			return
		}
		mode = base
	}

	i := (y*r.Width + x) * 4
	p := r.Pix[i : i+4 : i+4]
	bg := Color{p[0], p[1], p[2], p[3]}
	out, ok := Composite(mode, bg, c, r.Tint, r.Opacity)
	if !ok {
		return
	}
	p[0], p[1], p[2], p[3] = out.R, out.G, out.B, out.A
	r.DrawnPixels++
	if r.recordEvery > 0 && r.DrawnPixels%r.recordEvery == 0 {
		r.frames = append(r.frames, r.Image())
	}
}

// Pget reads the pixel at (x, y). Out-of-range coordinates return opaque
// black; unlike Pset there is no wraparound.
func (r *Rasterizer) Pget(x, y int) Color {
	if !r.inBounds(x, y) {
		return Black
	}
	i := (y*r.Width + x) * 4
	return Color{r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]}
}

// inBounds reports whether (x, y) addresses a pixel without wrapping.
func (r *Rasterizer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width && y < r.Height
}
