package raster

import "math"

// Ptriangle draws the triangle (x1,y1)-(x2,y2)-(x3,y3). The outline is three
// Plines. The filled form is a scanline fill: the Bresenham pixels of all
// three edges are bucketed per row and each row is filled between its
// leftmost and rightmost edge pixel, clipped to the buffer.
func (r *Rasterizer) Ptriangle(filled bool, x1, y1, x2, y2, x3, y3 int, c Color) {
	if !filled {
		r.Pline(x1, y1, x2, y2, c)
		r.Pline(x1, y1, x3, y3, c)
		r.Pline(x2, y2, x3, y3, c)
		return
	}

	top := max(min(y1, y2, y3), 0)
	bottom := min(max(y1, y2, y3), r.Height-1)
	if top > bottom {
		return
	}

	// spans[i] holds the x extent of row top+i; lo > hi marks an empty row.
	spans := make([][2]int, bottom-top+1)
	for i := range spans {
		spans[i] = [2]int{math.MaxInt, math.MinInt}
	}
	edge := func(ax, ay, bx, by int) {
		bresenham(ax, ay, bx, by, func(x, y int) {
			if y < top || y > bottom {
				return
			}
			s := &spans[y-top]
			s[0] = min(s[0], x)
			s[1] = max(s[1], x)
		})
	}
	edge(x1, y1, x2, y2)
	edge(x2, y2, x3, y3)
	edge(x3, y3, x1, y1)

	for i, s := range spans {
		if s[0] > s[1] {
			continue
		}
		r.hspan(s[0], s[1], top+i, c)
	}
}

// TexVertex is a PtriTex corner: screen position, texel coordinates and a
// perspective weight (1/z). With W = 1 on all corners the mapping is affine.
type TexVertex struct {
	X, Y    float64
	U, V, W float64
}

// PtriTex fills a triangle sampling img. U and V are given pre-multiplied by
// W; each covered pixel centre samples img at (ΣλU / ΣλW, ΣλV / ΣλW) with
// barycentric weights λ. Experimental: there is no depth test.
func (r *Rasterizer) PtriTex(img *Rasterizer, a, b, c TexVertex) {
	if img.Width == 0 || img.Height == 0 {
		return
	}

	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	minX := clampToInt(math.Floor(min(a.X, b.X, c.X)), 0, r.Width)
	maxX := clampToInt(math.Ceil(max(a.X, b.X, c.X)), 0, r.Width)
	minY := clampToInt(math.Floor(min(a.Y, b.Y, c.Y)), 0, r.Height)
	maxY := clampToInt(math.Ceil(max(a.Y, b.Y, c.Y)), 0, r.Height)

	// Precompute edge deltas
	dyBC := b.Y - c.Y
	dxCB := c.X - b.X
	dyCA := c.Y - a.Y
	dxAC := a.X - c.X

	iw, ih := float64(img.Width), float64(img.Height)
	for sy := minY; sy < maxY; sy++ {
		dsy := float64(sy) + 0.5 - c.Y
		for sx := minX; sx < maxX; sx++ {
			dsx := float64(sx) + 0.5 - c.X
			w0 := (dyBC*dsx + dxCB*dsy) * invDet
			w1 := (dyCA*dsx + dxAC*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			ww := w0*a.W + w1*b.W + w2*c.W
			if ww == 0 {
				continue
			}
			u := math.Floor((w0*a.U + w1*b.U + w2*c.U) / ww)
			v := math.Floor((w0*a.V + w1*b.V + w2*c.V) / ww)
			if u < 0 || v < 0 || u >= iw || v >= ih {
				continue
			}
			col := img.Pget(int(u), int(v))
			if col.A == 0 {
				continue
			}
			r.plot(sx, sy, col)
		}
	}
}
