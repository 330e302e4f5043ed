package scene

import (
	"strings"

	"softraster/internal/raster"
)

const errorCardSize = 512

// ErrorCard renders msg onto a 512×512 card with a dark red-to-amber
// gradient, upper-cased and wrapped at 450px. It stands in for a scene that
// failed to load or play.
func ErrorCard(msg string, f *raster.Font) *raster.Rasterizer {
	r := raster.New(errorCardSize, errorCardSize)
	for i := 0; i < r.Height; i++ {
		r.Pline(0, i, r.Width-1, i, raster.HSV(float64(i)*0.1, 1, 0.35))
	}
	r.Pprint(f, strings.ToUpper(msg), 8, 8, 5, 450)
	return r
}
