package raster

import (
	"image"
	"math"

	"softraster/internal/mathutil"
)

// bresenham visits every integer point from (x0, y0) to (x1, y1) inclusive.
func bresenham(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Pline draws a line between two points, both ends inclusive.
func (r *Rasterizer) Pline(x0, y0, x1, y1 int, c Color) {
	bresenham(x0, y0, x1, y1, func(x, y int) {
		r.Pset(x, y, c)
	})
}

// Cline returns the pixels Pline would visit, without drawing.
func Cline(x0, y0, x1, y1 int) []image.Point {
	n := max(abs(x1-x0), abs(y1-y0)) + 1
	pts := make([]image.Point, 0, n)
	bresenham(x0, y0, x1, y1, func(x, y int) {
		pts = append(pts, image.Pt(x, y))
	})
	return pts
}

// hspan draws [x0, x1] on row y, clipped to the buffer.
func (r *Rasterizer) hspan(x0, x1, y int, c Color) {
	if y < 0 || y >= r.Height {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, 0)
	x1 = min(x1, r.Width-1)
	for x := x0; x <= x1; x++ {
		r.plot(x, y, c)
	}
}

// Prectangle draws the w×h box with its top-left corner at (x, y), covering
// [x, x+w) × [y, y+h). The box is clipped to the buffer; an empty box draws
// nothing.
func (r *Rasterizer) Prectangle(filled bool, x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := max(x, 0)
	y0 := max(y, 0)
	x1 := min(x+w, r.Width)
	y1 := min(y+h, r.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	if filled {
		for py := y0; py < y1; py++ {
			for px := x0; px < x1; px++ {
				r.plot(px, py, c)
			}
		}
		return
	}

	// Outline: only border lines that are actually on screen.
	right, bottom := x+w-1, y+h-1
	if y >= 0 {
		r.hspan(x0, x1-1, y, c)
	}
	if bottom < r.Height && bottom != y {
		r.hspan(x0, x1-1, bottom, c)
	}
	for py := max(y0, y+1); py < min(y1, bottom); py++ {
		if x >= 0 {
			r.plot(x, py, c)
		}
		if right < r.Width && right != x {
			r.plot(right, py, c)
		}
	}
}

// Pcircle draws a circle of radius rad centred on (xc, yc). The filled form
// covers every pixel with (px-xc)²+(py-yc)² <= rad², clipped to the buffer.
// The outline uses the midpoint algorithm and wraps like Pset.
func (r *Rasterizer) Pcircle(filled bool, xc, yc, rad int, c Color) {
	if rad < 0 {
		return
	}

	if filled {
		minX := max(xc-rad, 0)
		maxX := min(xc+rad, r.Width-1)
		minY := max(yc-rad, 0)
		maxY := min(yc+rad, r.Height-1)
		r2 := rad * rad
		for py := minY; py <= maxY; py++ {
			dy := py - yc
			for px := minX; px <= maxX; px++ {
				dx := px - xc
				if dx*dx+dy*dy <= r2 {
					r.plot(px, py, c)
				}
			}
		}
		return
	}

	if rad == 0 {
		r.Pset(xc, yc, c)
		return
	}

	x, y := 0, rad
	d := 3 - 2*rad
	for y >= x {
		r.Pset(xc+x, yc+y, c)
		r.Pset(xc-x, yc+y, c)
		r.Pset(xc+x, yc-y, c)
		r.Pset(xc-x, yc-y, c)
		r.Pset(xc+y, yc+x, c)
		r.Pset(xc-y, yc+x, c)
		r.Pset(xc+y, yc-x, c)
		r.Pset(xc-y, yc-x, c)

		x++
		if d > 0 {
			y--
			d += 4*(x-y) + 10
		} else {
			d += 4*x + 6
		}
	}
}

// bezierSteps returns the sample count for a curve whose control polygon
// visits the given points. Four samples per polygon pixel keeps per-axis
// movement between samples below one pixel for cubics and quadratics.
func bezierSteps(pts ...image.Point) int {
	n := 0
	for i := 1; i < len(pts); i++ {
		n += len(Cline(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y))
	}
	return max(4*n, 1)
}

// Pbezier draws a quadratic Bezier from (x0, y0) to (x1, y1) bent towards
// the control point (mx, my), stamping a filled circle of radius thickness
// at every sample.
func (r *Rasterizer) Pbezier(thickness, x0, y0, x1, y1, mx, my int, c Color) {
	p0 := mathutil.V2(float64(x0), float64(y0))
	p1 := mathutil.V2(float64(x1), float64(y1))
	m := mathutil.V2(float64(mx), float64(my))

	steps := bezierSteps(image.Pt(x0, y0), image.Pt(mx, my), image.Pt(x1, y1))
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		a := p0.Lerp(m, t)
		b := m.Lerp(p1, t)
		p := a.Lerp(b, t)

		px, py := round(p.X), round(p.Y)
		if px == lastX && py == lastY {
			continue
		}
		r.Pcircle(true, px, py, thickness, c)
		lastX, lastY = px, py
	}
}

// PbezierCubic draws a cubic Bezier from (x0, y0) to (x1, y1) with control
// points (mx0, my0) and (mx1, my1), one pixel per sample.
func (r *Rasterizer) PbezierCubic(x0, y0, x1, y1, mx0, my0, mx1, my1 int, c Color) {
	p0 := mathutil.V2(float64(x0), float64(y0))
	p1 := mathutil.V2(float64(x1), float64(y1))
	m0 := mathutil.V2(float64(mx0), float64(my0))
	m1 := mathutil.V2(float64(mx1), float64(my1))

	steps := bezierSteps(image.Pt(x0, y0), image.Pt(mx0, my0), image.Pt(mx1, my1), image.Pt(x1, y1))
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		a := p0.Lerp(m0, t)
		b := m0.Lerp(m1, t)
		cc := m1.Lerp(p1, t)
		ab := a.Lerp(b, t)
		bc := b.Lerp(cc, t)
		p := ab.Lerp(bc, t)

		px, py := round(p.X), round(p.Y)
		if px == lastX && py == lastY {
			continue
		}
		r.Pset(px, py, c)
		lastX, lastY = px, py
	}
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
