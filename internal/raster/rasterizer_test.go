package raster

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c Color) *Rasterizer {
	r := New(w, h)
	r.ClearColor(c)
	return r
}

func TestNewAndResize(t *testing.T) {
	r := New(7, 5)
	assert.Len(t, r.Pix, 7*5*4)
	assert.Equal(t, Opaque, r.Mode)
	assert.Equal(t, White, r.Tint)
	assert.Equal(t, uint8(255), r.Opacity)

	r.ClearColor(Red)
	r.Resize(3, 9)
	assert.Len(t, r.Pix, 3*9*4)
	for _, b := range r.Pix {
		require.Zero(t, b)
	}

	neg := New(-4, 2)
	assert.Equal(t, 0, neg.Width)
	assert.Empty(t, neg.Pix)
	neg.Pset(1, 1, Red) // no panic on an empty buffer
}

func TestPsetWraps(t *testing.T) {
	r := New(10, 8)
	tests := []struct {
		x, y       int
		wantX, wantY int
	}{
		{-1, 0, 9, 0},
		{10, 0, 0, 0},
		{23, -9, 3, 7},
		{-20, 16, 0, 0},
		{4, 5, 4, 5},
	}
	for _, tt := range tests {
		r.Clear()
		r.Pset(tt.x, tt.y, Green)
		assert.Equal(t, Green, r.Pget(tt.wantX, tt.wantY), "pset(%d,%d)", tt.x, tt.y)
		assert.Equal(t, uint64(1), r.DrawnPixels)
	}
}

func TestPgetOutOfRange(t *testing.T) {
	r := solid(4, 4, White)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		assert.Equal(t, Black, r.Pget(p.X, p.Y), "pget(%v)", p)
	}
}

func TestClearIdempotence(t *testing.T) {
	r := solid(6, 6, Red)
	r.Pset(2, 2, Blue)
	r.Clear()
	assert.Zero(t, r.DrawnPixels)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			require.Equal(t, Transparent, r.Pget(x, y))
		}
	}

	c := RGBA(1, 2, 3, 4)
	r.ClearColor(c)
	r.ClearColor(c)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			require.Equal(t, c, r.Pget(x, y))
		}
	}
}

func TestOpaqueModeGatesAlpha(t *testing.T) {
	r := solid(2, 2, Green)
	r.SetTint(RGB(255, 128, 255))

	r.Pset(0, 0, RGBA(255, 255, 255, 254))
	assert.Equal(t, Green, r.Pget(0, 0))
	assert.Zero(t, r.DrawnPixels)

	r.Pset(0, 0, White)
	assert.Equal(t, RGB(255, 128, 255), r.Pget(0, 0))
	assert.Equal(t, uint64(1), r.DrawnPixels)
}

func TestAlphaModeOpacity(t *testing.T) {
	a := RGB(200, 10, 60)
	b := RGBA(20, 220, 90, 255)

	r := solid(1, 1, b)
	r.SetDrawMode(Alpha)
	r.SetOpacity(0)
	r.Pset(0, 0, a)
	assert.Equal(t, b, r.Pget(0, 0))

	r.SetOpacity(255)
	r.Pset(0, 0, a)
	assert.Equal(t, a, r.Pget(0, 0))
}

func TestCollectMode(t *testing.T) {
	r := solid(5, 5, Black)
	r.SetDrawMode(Collect)
	r.Pline(0, 0, 4, 0, Red)
	assert.Len(t, r.Collected, 5)
	assert.Equal(t, CollectedPixel{X: 4, Y: 0, Color: Red}, r.Collected[4])
	assert.Equal(t, Black, r.Pget(2, 0), "collect must not write")
	assert.Zero(t, r.DrawnPixels)

	r.ClearCollected()
	assert.Empty(t, r.Collected)
}

func TestPatternMode(t *testing.T) {
	r := New(4, 4)
	r.SetDrawMode(PatternOpaque)
	r.Prectangle(true, 0, 0, 4, 4, White)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := Transparent
			if (x+y)%2 == 0 {
				want = White
			}
			assert.Equal(t, want, r.Pget(x, y), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, uint64(8), r.DrawnPixels)
}

func TestPline(t *testing.T) {
	pts := Cline(0, 0, 5, 2)
	require.NotEmpty(t, pts)
	assert.Equal(t, image.Pt(0, 0), pts[0])
	assert.Equal(t, image.Pt(5, 2), pts[len(pts)-1])
	assert.Len(t, pts, 6)

	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		assert.LessOrEqual(t, abs(d.X), 1)
		assert.LessOrEqual(t, abs(d.Y), 1)
	}

	r := New(8, 8)
	r.Pline(7, 7, 0, 0, Red)
	for i := 0; i < 8; i++ {
		assert.Equal(t, Red, r.Pget(i, i))
	}
	assert.Equal(t, uint64(8), r.DrawnPixels)

	assert.Equal(t, []image.Point{{3, 3}}, Cline(3, 3, 3, 3))
}

func TestPrectangle(t *testing.T) {
	r := solid(100, 100, Red)
	r.Prectangle(true, 10, 10, 20, 20, Blue)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			want := Red
			if x >= 10 && x < 30 && y >= 10 && y < 30 {
				want = Blue
			}
			require.Equal(t, want, r.Pget(x, y), "(%d,%d)", x, y)
		}
	}

	// Clipped and degenerate rectangles never wrap.
	r.ClearColor(Red)
	r.Prectangle(true, -5, -5, 10, 10, Blue)
	assert.Equal(t, Blue, r.Pget(4, 4))
	assert.Equal(t, Red, r.Pget(99, 99))
	assert.Equal(t, Red, r.Pget(5, 5))
	r.Prectangle(true, 10, 10, 0, 5, Green)
	r.Prectangle(true, 10, 10, -3, 5, Green)
	r.Prectangle(true, 200, 200, 5, 5, Green)
	assert.Equal(t, uint64(25), r.DrawnPixels)
}

func TestPrectangleOutline(t *testing.T) {
	r := New(10, 10)
	r.Prectangle(false, 2, 2, 4, 3, White)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x <= 5 && y >= 2 && y <= 4
			border := inside && (x == 2 || x == 5 || y == 2 || y == 4)
			want := Transparent
			if border {
				want = White
			}
			require.Equal(t, want, r.Pget(x, y), "(%d,%d)", x, y)
		}
	}
	// Every border pixel is drawn once.
	assert.Equal(t, uint64(10), r.DrawnPixels)
}

func TestPcircle(t *testing.T) {
	r := New(40, 40)
	r.Pcircle(true, 20, 20, 5, White)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			dx, dy := x-20, y-20
			want := Transparent
			if dx*dx+dy*dy <= 25 {
				want = White
			}
			require.Equal(t, want, r.Pget(x, y), "(%d,%d)", x, y)
		}
	}

	r.Clear()
	r.Pcircle(false, 20, 20, 8, White)
	for _, p := range []image.Point{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		assert.Equal(t, White, r.Pget(p.X, p.Y), "%v", p)
	}
	assert.Equal(t, Transparent, r.Pget(20, 20))

	r.Clear()
	r.Pcircle(true, 3, 3, -1, White)
	r.Pcircle(false, 3, 3, -1, White)
	assert.Zero(t, r.DrawnPixels)
	r.Pcircle(true, 3, 3, 0, White)
	assert.Equal(t, uint64(1), r.DrawnPixels)
}

func TestPtriangleFilled(t *testing.T) {
	r := New(50, 50)
	v := [3]image.Point{{5, 5}, {40, 12}, {15, 45}}
	r.Ptriangle(true, v[0].X, v[0].Y, v[1].X, v[1].Y, v[2].X, v[2].Y, White)

	for _, p := range v {
		assert.Equal(t, White, r.Pget(p.X, p.Y), "vertex %v", p)
	}

	// Each row's span lies within the row's edge pixel extent.
	edges := append(append(Cline(5, 5, 40, 12), Cline(40, 12, 15, 45)...), Cline(15, 45, 5, 5)...)
	lo := map[int]int{}
	hi := map[int]int{}
	for _, p := range edges {
		if x, ok := lo[p.Y]; !ok || p.X < x {
			lo[p.Y] = p.X
		}
		if x, ok := hi[p.Y]; !ok || p.X > x {
			hi[p.Y] = p.X
		}
	}
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			l, ok := lo[y]
			in := ok && x >= l && x <= hi[y]
			if in {
				require.Equal(t, White, r.Pget(x, y), "(%d,%d)", x, y)
			} else {
				require.Equal(t, Transparent, r.Pget(x, y), "(%d,%d)", x, y)
			}
		}
	}

	// Interior point well inside the hull.
	assert.Equal(t, White, r.Pget(20, 20))
}

func TestPtriangleOutline(t *testing.T) {
	r := New(20, 20)
	r.Ptriangle(false, 1, 1, 10, 1, 1, 10, Red)
	assert.Equal(t, Red, r.Pget(5, 1))
	assert.Equal(t, Red, r.Pget(1, 5))
	assert.Equal(t, Red, r.Pget(5, 6))
	assert.Equal(t, Transparent, r.Pget(3, 3))
}

func TestBezierCubicConnected(t *testing.T) {
	r := New(200, 200)
	r.SetDrawMode(Collect)
	r.PbezierCubic(10, 10, 190, 30, 40, 180, 150, -60, Red)
	pts := r.Collected
	require.Greater(t, len(pts), 100)

	assert.Equal(t, 10, pts[0].X)
	assert.Equal(t, 10, pts[0].Y)
	last := pts[len(pts)-1]
	assert.Equal(t, 190, last.X)
	assert.Equal(t, 30, last.Y)

	for i := 1; i < len(pts); i++ {
		dx := abs(pts[i].X - pts[i-1].X)
		dy := abs(pts[i].Y - pts[i-1].Y)
		require.LessOrEqual(t, max(dx, dy), 1, "gap between sample %d and %d", i-1, i)
	}
}

func TestBezierQuadratic(t *testing.T) {
	r := New(100, 100)
	r.Pbezier(0, 10, 80, 90, 80, 50, 0, White)
	assert.Equal(t, White, r.Pget(10, 80))
	assert.Equal(t, White, r.Pget(90, 80))
	// Apex of the symmetric curve is halfway to the control point.
	assert.Equal(t, White, r.Pget(50, 40))

	r.Clear()
	r.Pbezier(2, 10, 50, 90, 50, 50, 50, White)
	assert.Equal(t, White, r.Pget(50, 52))
	assert.Equal(t, Transparent, r.Pget(50, 53))
}

func TestPimg(t *testing.T) {
	src := New(3, 2)
	src.Pset(0, 0, Red)
	src.Pset(2, 1, Blue)

	r := solid(10, 10, Green)
	r.Pimg(src, 4, 5)
	assert.Equal(t, Red, r.Pget(4, 5))
	assert.Equal(t, Blue, r.Pget(6, 6))
	assert.Equal(t, Green, r.Pget(5, 5), "transparent source pixels are skipped")

	// Clipped at the edges instead of wrapping.
	r.ClearColor(Green)
	r.Pimg(src, 8, 9)
	assert.Equal(t, Red, r.Pget(8, 9))
	assert.Equal(t, Green, r.Pget(0, 0))
	assert.Equal(t, uint64(1), r.DrawnPixels)
}

func TestPimgrectWraps(t *testing.T) {
	src := New(2, 2)
	src.Pset(0, 0, Red)
	src.Pset(1, 0, Green)
	src.Pset(0, 1, Blue)
	src.Pset(1, 1, White)

	r := New(10, 10)
	r.Pimgrect(src, 0, 0, 1, 1, 4, 3)
	want := [][]Color{
		{White, Blue, White, Blue},
		{Green, Red, Green, Red},
		{White, Blue, White, Blue},
	}
	for y, row := range want {
		for x, c := range row {
			assert.Equal(t, c, r.Pget(x, y), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, Transparent, r.Pget(4, 0))
}

func TestPimgmtxIdentityMatchesPimg(t *testing.T) {
	src := New(5, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if (x+y)%3 != 0 {
				src.Pset(x, y, RGB(uint8(x*40), uint8(y*60), 200))
			}
		}
	}

	a := solid(20, 20, Green)
	b := solid(20, 20, Green)
	a.Pimg(src, 7, 3)
	b.Pimgmtx(src, 7, 3, 0, 1, 1, 0, 0)
	assert.Equal(t, a.Pix, b.Pix)

	// Partially off-screen as well.
	a.ClearColor(Green)
	b.ClearColor(Green)
	a.Pimg(src, -2, 17)
	b.Pimgmtx(src, -2, 17, 0, 1, 1, 0, 0)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestPimgmtxRotatedSquare(t *testing.T) {
	src := solid(8, 8, White)
	r := New(100, 100)
	r.Pimgmtx(src, 50, 50, math.Pi/2, 1, 1, 0.5, 0.5)

	minX, minY, maxX, maxY := 100, 100, -1, -1
	count := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if r.Pget(x, y) == White {
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
				count++
			}
		}
	}
	assert.Equal(t, 64, count)
	assert.InDelta(t, 46, minX, 1)
	assert.InDelta(t, 46, minY, 1)
	assert.Equal(t, 8, maxX-minX+1)
	assert.Equal(t, 8, maxY-minY+1)
	assert.InDelta(t, 50.0, float64(minX+maxX+1)/2, 1)
	assert.InDelta(t, 50.0, float64(minY+maxY+1)/2, 1)
}

func TestPimgmtxNoHolesAtAnyAngle(t *testing.T) {
	src := solid(16, 16, White)
	for deg := 0; deg < 360; deg += 15 {
		r := New(64, 64)
		r.Pimgmtx(src, 32, 32, float64(deg)*math.Pi/180, 1.5, 1.5, 0.5, 0.5)
		// The inscribed circle of the scaled square must be fully covered.
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				dx, dy := float64(x)+0.5-32, float64(y)+0.5-32
				if dx*dx+dy*dy < 10*10 {
					require.Equal(t, White, r.Pget(x, y), "deg %d (%d,%d)", deg, x, y)
				}
			}
		}
	}
}

func TestPimgmtxScale(t *testing.T) {
	src := solid(4, 4, White)
	r := New(32, 32)
	r.Pimgmtx(src, 4, 4, 0, 2, 3, 0, 0)
	assert.Equal(t, uint64(8*12), r.DrawnPixels)
	assert.Equal(t, White, r.Pget(11, 15))
	assert.Equal(t, Transparent, r.Pget(12, 15))
	assert.Equal(t, Transparent, r.Pget(11, 16))

	r.Clear()
	r.Pimgmtx(src, 4, 4, 0, 0, 1, 0, 0)
	assert.Zero(t, r.DrawnPixels, "degenerate scale draws nothing")
}

func TestCameraOffsetsSprites(t *testing.T) {
	src := solid(2, 2, White)
	r := New(20, 20)
	r.SetCameraPosition(5, 3)
	r.UpdateCamera()
	r.Pimgmtx(src, 10, 10, 0, 1, 1, 0, 0)
	assert.Equal(t, White, r.Pget(5, 7))
	assert.Equal(t, Transparent, r.Pget(10, 10))

	r.Clear()
	r.Camera = NewCamera()
	r.Pimgmtx(src, 10, 10, 0, 1, 1, 0, 0)
	assert.Equal(t, White, r.Pget(10, 10))
}

func TestPtriTexAffine(t *testing.T) {
	src := New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Pset(x, y, RGB(uint8(x*60), uint8(y*60), 0))
		}
	}

	r := New(16, 16)
	// Two triangles mapping the 4×4 texture onto an 8×8 quad at (4, 4).
	a := TexVertex{X: 4, Y: 4, U: 0, V: 0, W: 1}
	b := TexVertex{X: 12, Y: 4, U: 4, V: 0, W: 1}
	c := TexVertex{X: 12, Y: 12, U: 4, V: 4, W: 1}
	d := TexVertex{X: 4, Y: 12, U: 0, V: 4, W: 1}
	r.PtriTex(src, a, b, c)
	r.PtriTex(src, a, c, d)

	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			want := src.Pget((x-4)/2, (y-4)/2)
			require.Equal(t, want, r.Pget(x, y), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, Transparent, r.Pget(3, 4))
	assert.Equal(t, Transparent, r.Pget(12, 12))
}

func TestBlitAndCopyRegion(t *testing.T) {
	tile := solid(3, 3, Blue)
	r := solid(8, 8, Red)
	r.SetDrawMode(Multiply)
	r.Blit(tile, 6, 6)
	assert.Equal(t, Blue, r.Pget(6, 6))
	assert.Equal(t, Blue, r.Pget(7, 7))
	assert.Equal(t, Red, r.Pget(5, 5))
	assert.Zero(t, r.DrawnPixels, "blit bypasses compositing")

	dst := New(4, 4)
	r.CopyRegion(dst, 5, 5)
	assert.Equal(t, Red, dst.Pget(0, 0))
	assert.Equal(t, Blue, dst.Pget(1, 1))
	assert.Equal(t, Blue, dst.Pget(2, 2))
	assert.Equal(t, Transparent, dst.Pget(3, 3), "outside the source stays untouched")
}

func TestPprint(t *testing.T) {
	// Atlas with three 2×2 glyphs laid out over two rows of a 4px-wide atlas.
	atlas := New(4, 4)
	atlas.Prectangle(true, 0, 0, 2, 2, Red)   // 'A'
	atlas.Prectangle(true, 2, 0, 2, 2, Green) // 'B'
	atlas.Prectangle(true, 0, 2, 2, 2, Blue)  // 'C'
	f := NewFont(atlas, "ABC", 2, 2, 1)

	x, y, _, _ := f.Cell(2)
	assert.Equal(t, 0, x)
	assert.Equal(t, 2, y)

	r := New(20, 20)
	r.Pprint(f, "A B?\nC", 1, 1, 1, 0)
	assert.Equal(t, Red, r.Pget(1, 1))
	// 'A' advances 3, space advances 2, unknown '?' is skipped.
	assert.Equal(t, Transparent, r.Pget(4, 1))
	assert.Equal(t, Green, r.Pget(6, 1))
	// Newline moves down glyph height + spacing.
	assert.Equal(t, Blue, r.Pget(1, 4))

	r.Clear()
	r.Pprint(f, "AAAA", 0, 0, 0, 5)
	assert.Equal(t, Red, r.Pget(3, 0))
	assert.Equal(t, Red, r.Pget(0, 2), "wrapped after passing 5px")

	w, h := f.MeasureText("AB\nA", 1)
	assert.Equal(t, 6, w)
	assert.Equal(t, 5, h)
}

func TestRecordFrames(t *testing.T) {
	r := New(4, 4)
	r.RecordFrames(4)
	assert.True(t, r.Recording())
	r.Prectangle(true, 0, 0, 4, 2, White)
	require.Len(t, r.Frames(), 2)
	assert.Equal(t, uint8(255), r.Frames()[0].Pix[3*4+3])
	assert.Equal(t, uint8(0), r.Frames()[0].Pix[4*4+3])

	// Clearing restarts the counter but keeps recording.
	r.Clear()
	assert.True(t, r.Recording())
	r.Prectangle(true, 0, 0, 2, 2, White)
	assert.Len(t, r.Frames(), 3)

	prev := r.DrawnPixels
	r.DrawnPixels += 3
	r.CaptureIfDue(prev)
	assert.Len(t, r.Frames(), 3, "7 pixels: interval not crossed")
	r.DrawnPixels += 20
	r.CaptureIfDue(prev + 3)
	assert.Len(t, r.Frames(), 4)

	r.Resize(4, 4)
	assert.False(t, r.Recording())
	r.Pset(0, 0, White)
	assert.Len(t, r.Frames(), 4)
}

func TestFromNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 3, 5, 5))
	img.Pix[img.PixOffset(4, 4)+0] = 9
	r := FromNRGBA(img)
	assert.Equal(t, 3, r.Width)
	assert.Equal(t, 2, r.Height)
	assert.Equal(t, uint8(9), r.Pget(2, 1).R)
	assert.Equal(t, img.Pix[:len(r.Pix)], r.Image().Pix[:len(r.Pix)])
}
