package raster

import (
	"math"

	"softraster/internal/mathutil"
)

// Pimg draws every pixel of img with its top-left corner at (x, y), skipping
// fully transparent source pixels. Draw mode, tint and opacity apply.
func (r *Rasterizer) Pimg(img *Rasterizer, x, y int) {
	x0 := max(x, 0)
	y0 := max(y, 0)
	x1 := min(x+img.Width, r.Width)
	y1 := min(y+img.Height, r.Height)

	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			c := img.Pget(dx-x, dy-y)
			if c.A == 0 {
				continue
			}
			r.plot(dx, dy, c)
		}
	}
}

// Pimgrect draws the rw×rh region of img starting at (rx, ry) with its
// top-left corner at (x, y). Source coordinates wrap, so regions larger than
// img tile it. Destination pixels outside the buffer are clipped and fully
// transparent source pixels are skipped.
func (r *Rasterizer) Pimgrect(img *Rasterizer, x, y, rx, ry, rw, rh int) {
	if img.Width == 0 || img.Height == 0 || rw <= 0 || rh <= 0 {
		return
	}
	sx0 := max(0, -x)
	sy0 := max(0, -y)
	sx1 := min(rw, r.Width-x)
	sy1 := min(rh, r.Height-y)

	for sy := sy0; sy < sy1; sy++ {
		v := mathutil.Mod(ry+sy, img.Height)
		for sx := sx0; sx < sx1; sx++ {
			c := img.Pget(mathutil.Mod(rx+sx, img.Width), v)
			if c.A == 0 {
				continue
			}
			r.plot(x+sx, y+sy, c)
		}
	}
}

// SpriteMatrix builds the forward transform used by Pimgmtx:
// translate(position) × rotate × scale × translate(-pivot·size).
// Pivot is normalized: (0.5, 0.5) rotates around the image centre.
func SpriteMatrix(w, h int, x, y, rotation, scaleX, scaleY, pivotX, pivotY float64) mathutil.Mat3 {
	pivot := mathutil.V2(
		-mathutil.Lerp(0, float64(w), pivotX),
		-mathutil.Lerp(0, float64(h), pivotY),
	)
	return mathutil.Chain(
		mathutil.Mat3Translated(mathutil.V2(x, y)),
		mathutil.Mat3Rotated(rotation),
		mathutil.Mat3Scaled(mathutil.V2(scaleX, scaleY)),
		mathutil.Mat3Translated(pivot),
	)
}

// Pimgmtx draws img rotated, scaled and positioned around a pivot, then
// viewed through the camera.
func (r *Rasterizer) Pimgmtx(img *Rasterizer, x, y, rotation, scaleX, scaleY, pivotX, pivotY float64) {
	m := SpriteMatrix(img.Width, img.Height, x, y, rotation, scaleX, scaleY, pivotX, pivotY)
	r.PimgTransform(img, mathutil.Mat3Mul(r.Camera.View(), m))
}

// boundsMargin widens the destination box so rounding never clips an edge
// pixel. Samples that land outside the source are skipped.
const boundsMargin = 2

// PimgTransform draws img through the forward matrix m, which maps source
// pixel space onto this buffer. The destination box is the transformed
// corner hull rounded outward plus boundsMargin; each destination pixel
// centre is mapped back through the inverse of m and sampled
// nearest-neighbour. Source pixels that are out of range or fully
// transparent are skipped. A singular m draws nothing.
func (r *Rasterizer) PimgTransform(img *Rasterizer, m mathutil.Mat3) {
	if img.Width == 0 || img.Height == 0 {
		return
	}
	inv, ok := m.Inverse()
	if !ok {
		return
	}

	w, h := float64(img.Width), float64(img.Height)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4]mathutil.Vec2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}} {
		q := m.Forward(p)
		minX = math.Min(minX, q.X)
		minY = math.Min(minY, q.Y)
		maxX = math.Max(maxX, q.X)
		maxY = math.Max(maxY, q.Y)
	}

	x0 := clampToInt(math.Floor(minX)-boundsMargin, 0, r.Width)
	y0 := clampToInt(math.Floor(minY)-boundsMargin, 0, r.Height)
	x1 := clampToInt(math.Ceil(maxX)+boundsMargin, 0, r.Width)
	y1 := clampToInt(math.Ceil(maxY)+boundsMargin, 0, r.Height)

	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			s := inv.Forward(mathutil.V2(float64(dx)+0.5, float64(dy)+0.5))
			u, v := math.Floor(s.X), math.Floor(s.Y)
			if u < 0 || v < 0 || u >= w || v >= h {
				continue
			}
			c := img.Pget(int(u), int(v))
			if c.A == 0 {
				continue
			}
			r.plot(dx, dy, c)
		}
	}
}

// clampToInt converts v to int limited to [lo, hi]; NaN maps to lo.
func clampToInt(v float64, lo, hi int) int {
	if math.IsNaN(v) || v < float64(lo) {
		return lo
	}
	if v > float64(hi) {
		return hi
	}
	return int(v)
}
