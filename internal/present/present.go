// Package present converts a finished framebuffer into what a display or
// file sink wants: scaled copies and packed 0xAARRGGBB words.
package present

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping pixels crisp. factor <= 1 returns img unchanged.
func Scale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return Stretch(img, b.Dx()*factor, b.Dy()*factor)
}

// Stretch resizes img to exactly w×h with nearest-neighbour sampling.
func Stretch(img *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Thumbnail shrinks img so its longer side is at most size, preserving the
// aspect ratio. Filtering runs on premultiplied alpha so transparent edges
// do not darken. Images already small enough are returned unchanged.
func Thumbnail(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if size <= 0 || (b.Dx() <= size && b.Dy() <= size) {
		return img
	}
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*size/b.Dx())
	} else {
		w = max(1, b.Dx()*size/b.Dy())
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	draw.Draw(out, out.Bounds(), dst, image.Point{}, draw.Src)
	return out
}

// PackARGB packs row-major RGBA bytes into one 0xAARRGGBB word per pixel.
func PackARGB(pix []uint8) []uint32 {
	out := make([]uint32, len(pix)/4)
	for i := range out {
		p := pix[i*4 : i*4+4 : i*4+4]
		out[i] = uint32(p[3])<<24 | uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
	}
	return out
}
