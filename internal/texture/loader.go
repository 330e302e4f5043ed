package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"softraster/internal/logging"
	"softraster/internal/raster"
)

// Extensions lists the file types LoadImage understands, lowercase with the
// leading dot.
var Extensions = []string{".png", ".tga", ".webp", ".tif", ".tiff", ".bmp", ".gif", ".jpg", ".jpeg"}

type decodeFunc func(io.Reader) (image.Image, error)

// decoders picks the decoder by extension. image.Decode is never used: the
// tga package registers an empty magic string that matches every input.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// magics maps file signatures to decoders for Decode. "?" matches any byte.
var magics = []struct {
	magic  string
	decode decodeFunc
}{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8?a", gif.Decode},
	{"BM", bmp.Decode},
	{"II*\x00", tiff.Decode},
	{"MM\x00*", tiff.Decode},
	{"RIFF????WEBP", webp.Decode},
}

// LoadImage decodes the image file at path into a rasterizer. The decoder
// is chosen by extension; unknown extensions are sniffed like Decode.
func LoadImage(path string) (*raster.Rasterizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	if decode, ok := decoders[strings.ToLower(filepath.Ext(path))]; ok {
		img, err = decode(bufio.NewReader(f))
	} else {
		img, err = Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return raster.FromNRGBA(toNRGBA(img)), nil
}

// Decode sniffs the PNG, JPEG, GIF, BMP, TIFF and WebP signatures and falls
// back to TGA, which has none.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	for _, m := range magics {
		head, err := br.Peek(len(m.magic))
		if err == nil && match(m.magic, head) {
			return m.decode(br)
		}
	}
	return tga.Decode(br)
}

func match(magic string, b []byte) bool {
	if len(magic) != len(b) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// Placeholder returns the 1×1 opaque magenta image used for assets that
// failed to load.
func Placeholder() *raster.Rasterizer {
	r := raster.New(1, 1)
	r.ClearColor(raster.Magenta)
	return r
}

// LoadOrPlaceholder is LoadImage that never returns nil: on failure it logs
// a warning and returns Placeholder together with the error.
func LoadOrPlaceholder(path string) (*raster.Rasterizer, error) {
	r, err := LoadImage(path)
	if err != nil {
		logging.Logger().Warn("texture: using placeholder", "path", path, "err", err)
		return Placeholder(), err
	}
	return r, nil
}

// toNRGBA converts any image to non-premultiplied RGBA with its origin at
// (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
