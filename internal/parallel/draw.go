package parallel

import (
	"image"
	"math"

	"softraster/internal/mathutil"
	"softraster/internal/raster"
)

// Image returns a copy of the master buffer.
func (p *PartitionedRasterizer) Image() *image.NRGBA {
	return p.master.Image()
}

func (p *PartitionedRasterizer) Pget(x, y int) raster.Color {
	return p.master.Pget(x, y)
}

// Pset draws one wrapped pixel on the master.
func (p *PartitionedRasterizer) Pset(x, y int, c raster.Color) {
	p.master.Pset(x, y, c)
	p.Invalidate()
}

func (p *PartitionedRasterizer) Pline(x0, y0, x1, y1 int, c raster.Color) {
	p.master.Pline(x0, y0, x1, y1, c)
	p.Invalidate()
}

// Blit copies src onto the master at (x, y), ignoring draw state.
func (p *PartitionedRasterizer) Blit(src *raster.Rasterizer, x, y int) {
	p.master.Blit(src, x, y)
	p.Invalidate()
}

func (p *PartitionedRasterizer) Pbezier(thickness, x0, y0, x1, y1, mx, my int, c raster.Color) {
	p.master.Pbezier(thickness, x0, y0, x1, y1, mx, my, c)
	p.Invalidate()
}

func (p *PartitionedRasterizer) PbezierCubic(x0, y0, x1, y1, mx0, my0, mx1, my1 int, c raster.Color) {
	p.master.PbezierCubic(x0, y0, x1, y1, mx0, my0, mx1, my1, c)
	p.Invalidate()
}

func (p *PartitionedRasterizer) Pprint(f *raster.Font, text string, x, y, lineSpacing, wrapWidth int) {
	p.master.Pprint(f, text, x, y, lineSpacing, wrapWidth)
	p.Invalidate()
}

func (p *PartitionedRasterizer) PtriTex(img *raster.Rasterizer, a, b, c raster.TexVertex) {
	p.master.PtriTex(img, a, b, c)
	p.Invalidate()
}

// Prectangle draws a rectangle covering [x, x+w) × [y, y+h). Filled
// rectangles with w*h at or above the threshold run on all partitions.
func (p *PartitionedRasterizer) Prectangle(filled bool, x, y, w, h int, c raster.Color) {
	if !filled {
		p.master.Prectangle(false, x, y, w, h, c)
		p.Invalidate()
		return
	}
	area := 0.0
	if w > 0 && h > 0 {
		area = float64(w) * float64(h)
	}
	p.dispatch("prectangle", area, func(r *raster.Rasterizer, ox, oy int) {
		r.Prectangle(true, x-ox, y-oy, w, h, c)
	})
}

// Pcircle draws a circle. Filled circles with π·r² at or above the
// threshold run on all partitions; outlines always run on the master.
func (p *PartitionedRasterizer) Pcircle(filled bool, xc, yc, rad int, c raster.Color) {
	if !filled {
		p.master.Pcircle(false, xc, yc, rad, c)
		p.Invalidate()
		return
	}
	area := 0.0
	if rad >= 0 {
		area = math.Pi * float64(rad) * float64(rad)
	}
	p.dispatch("pcircle", area, func(r *raster.Rasterizer, ox, oy int) {
		r.Pcircle(true, xc-ox, yc-oy, rad, c)
	})
}

// Ptriangle draws a triangle. Filled triangles are dispatched by the area
// of their bounding box.
func (p *PartitionedRasterizer) Ptriangle(filled bool, x1, y1, x2, y2, x3, y3 int, c raster.Color) {
	if !filled {
		p.master.Ptriangle(false, x1, y1, x2, y2, x3, y3, c)
		p.Invalidate()
		return
	}
	bw := max(x1, x2, x3) - min(x1, x2, x3) + 1
	bh := max(y1, y2, y3) - min(y1, y2, y3) + 1
	p.dispatch("ptriangle", float64(bw)*float64(bh), func(r *raster.Rasterizer, ox, oy int) {
		r.Ptriangle(true, x1-ox, y1-oy, x2-ox, y2-oy, x3-ox, y3-oy, c)
	})
}

// Pimg draws img with its top-left corner at (x, y).
func (p *PartitionedRasterizer) Pimg(img *raster.Rasterizer, x, y int) {
	area := float64(img.Width) * float64(img.Height)
	p.dispatch("pimg", area, func(r *raster.Rasterizer, ox, oy int) {
		r.Pimg(img, x-ox, y-oy)
	})
}

// Pimgrect draws the rw×rh region of img at (rx, ry) with its top-left
// corner at (x, y).
func (p *PartitionedRasterizer) Pimgrect(img *raster.Rasterizer, x, y, rx, ry, rw, rh int) {
	area := 0.0
	if rw > 0 && rh > 0 {
		area = float64(rw) * float64(rh)
	}
	p.dispatch("pimgrect", area, func(r *raster.Rasterizer, ox, oy int) {
		r.Pimgrect(img, x-ox, y-oy, rx, ry, rw, rh)
	})
}

// Pimgmtx draws img rotated and scaled around a normalized pivot, viewed
// through the camera. The area estimate is the scaled image area.
func (p *PartitionedRasterizer) Pimgmtx(img *raster.Rasterizer, x, y, rotation, scaleX, scaleY, pivotX, pivotY float64) {
	m := raster.SpriteMatrix(img.Width, img.Height, x, y, rotation, scaleX, scaleY, pivotX, pivotY)
	area := math.Abs(float64(img.Width) * scaleX * float64(img.Height) * scaleY)
	p.dispatch("pimgmtx", area, func(r *raster.Rasterizer, ox, oy int) {
		// Partitions see the master through an extra translation by
		// their offset, applied after the camera.
		local := mathutil.Chain(
			mathutil.Mat3Translated(mathutil.V2(float64(-ox), float64(-oy))),
			r.Camera.View(),
			m,
		)
		r.PimgTransform(img, local)
	})
}
