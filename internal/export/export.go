// Package export encodes rendered frames to image files.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// Format names an output encoding.
type Format string

const (
	WebP Format = "webp"
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
)

// ParseFormat accepts a format name or file extension ("jpg", ".png").
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "webp":
		return WebP, nil
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// Ext returns the file extension for f, with the leading dot.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Options tune the encoders. Zero values pick defaults.
type Options struct {
	Quality    int // JPEG quality 1..100
	Colors     int // GIF palette size, at most 256
	FrameDelay int // GIF delay between frames, 1/100 s
}

func (o Options) quality() int {
	if o.Quality <= 0 || o.Quality > 100 {
		return 90
	}
	return o.Quality
}

func (o Options) colors() int {
	if o.Colors <= 0 || o.Colors > 256 {
		return 256
	}
	return o.Colors
}

// Encode writes img to w. WebP output is lossless.
func Encode(w io.Writer, img *image.NRGBA, f Format, opts Options) error {
	switch f {
	case WebP:
		return nativewebp.Encode(w, img, nil)
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: opts.quality()})
	case GIF:
		return EncodeGIF(w, []*image.NRGBA{img}, opts)
	}
	return fmt.Errorf("export: unknown format %q", f)
}

// EncodeGIF writes frames as an animated GIF, each quantized to its own
// median-cut palette.
func EncodeGIF(w io.Writer, frames []*image.NRGBA, opts Options) error {
	if len(frames) == 0 {
		return fmt.Errorf("export: gif: no frames")
	}
	anim := &gif.GIF{}
	q := quantize.MedianCutQuantizer{}
	for _, fr := range frames {
		pal := q.Quantize(make(color.Palette, 0, opts.colors()), fr)
		dst := image.NewPaletted(fr.Bounds(), pal)
		draw.Draw(dst, dst.Bounds(), fr, fr.Bounds().Min, draw.Src)
		anim.Image = append(anim.Image, dst)
		anim.Delay = append(anim.Delay, opts.FrameDelay)
	}
	return gif.EncodeAll(w, anim)
}

// WriteFile encodes img into path, creating parent directories.
func WriteFile(path string, img *image.NRGBA, f Format, opts Options) error {
	return writeFile(path, func(w io.Writer) error {
		return Encode(w, img, f, opts)
	})
}

// WriteGIF writes an animated GIF into path, creating parent directories.
func WriteGIF(path string, frames []*image.NRGBA, opts Options) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeGIF(w, frames, opts)
	})
}

func writeFile(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}
