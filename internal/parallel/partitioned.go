package parallel

import (
	"runtime"

	"softraster/internal/logging"
	"softraster/internal/raster"
)

// Stats counts dispatch decisions since construction.
type Stats struct {
	ParallelCalls uint64
	SerialCalls   uint64
	FailedTasks   uint64
}

// PartitionedRasterizer owns a master rasterizer and a grid of partitions
// that exactly tile it. The master is the source of truth; partitions are
// private scratch buffers for parallel fills.
type PartitionedRasterizer struct {
	master     *raster.Rasterizer
	partitions []*raster.Rasterizer
	scheme     Scheme
	cores      int
	threshold  Threshold

	// stale is set when the master changed outside a parallel dispatch and
	// the partitions must be refreshed before the next one.
	stale bool
	stats Stats
}

// New creates a w×h partitioned rasterizer. cores = 0 uses runtime.NumCPU.
func New(w, h, cores int) *PartitionedRasterizer {
	p := &PartitionedRasterizer{
		master:    raster.New(w, h),
		threshold: ThresholdHigh,
	}
	p.SetCoreLimit(cores)
	return p
}

// Master returns the master rasterizer. Drawing on it directly is allowed;
// call Invalidate afterwards so the next parallel fill sees the change.
func (p *PartitionedRasterizer) Master() *raster.Rasterizer { return p.master }

// Partitions returns the partitions in row-major grid order.
func (p *PartitionedRasterizer) Partitions() []*raster.Rasterizer { return p.partitions }

func (p *PartitionedRasterizer) Scheme() Scheme       { return p.scheme }
func (p *PartitionedRasterizer) Threshold() Threshold { return p.threshold }
func (p *PartitionedRasterizer) Stats() Stats         { return p.stats }
func (p *PartitionedRasterizer) Width() int           { return p.master.Width }
func (p *PartitionedRasterizer) Height() int          { return p.master.Height }

// SetThreshold changes the parallel area threshold.
func (p *PartitionedRasterizer) SetThreshold(t Threshold) {
	p.threshold = max(t, 0)
}

// Invalidate marks the partitions out of date with the master.
func (p *PartitionedRasterizer) Invalidate() {
	p.stale = true
}

// SetCoreLimit selects the partition scheme for n cores (0 = all CPUs) and
// regenerates the partitions.
func (p *PartitionedRasterizer) SetCoreLimit(n int) {
	p.cores = max(n, 0)
	p.regenerate()
}

// Resize reallocates the master and regenerates the partitions.
func (p *PartitionedRasterizer) Resize(w, h int) {
	p.master.Resize(w, h)
	p.regenerate()
}

func (p *PartitionedRasterizer) regenerate() {
	cores := p.cores
	if cores == 0 {
		cores = runtime.NumCPU()
	}
	w, h := p.master.Width, p.master.Height

	want := SchemeFor(cores, w, h)
	s := fit(want, w, h)
	if s != want {
		logging.Logger().Warn("parallel: scheme does not divide buffer, falling back",
			"want", want.String(), "using", s.String(), "width", w, "height", h)
	}

	cw, ch := w/s.Cols, h/s.Rows
	parts := make([]*raster.Rasterizer, 0, s.Count())
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			part := raster.New(cw, ch)
			part.OffsetX = col * cw
			part.OffsetY = row * ch
			copyState(part, p.master)
			p.master.CopyRegion(part, part.OffsetX, part.OffsetY)
			parts = append(parts, part)
		}
	}

	p.scheme = s
	p.partitions = parts
	p.stale = false
	logging.Logger().Debug("parallel: partitions regenerated",
		"cores", cores, "scheme", s.String(), "cell_width", cw, "cell_height", ch)
}

// copyState mirrors the drawing state of src onto dst.
func copyState(dst, src *raster.Rasterizer) {
	dst.Mode = src.Mode
	dst.Tint = src.Tint
	dst.Opacity = src.Opacity
	dst.Camera = src.Camera
}

// each applies fn to the master and every partition.
func (p *PartitionedRasterizer) each(fn func(r *raster.Rasterizer)) {
	fn(p.master)
	for _, part := range p.partitions {
		fn(part)
	}
}

func (p *PartitionedRasterizer) SetDrawMode(m raster.DrawMode) {
	p.each(func(r *raster.Rasterizer) { r.SetDrawMode(m) })
}

func (p *PartitionedRasterizer) SetTint(c raster.Color) {
	p.each(func(r *raster.Rasterizer) { r.SetTint(c) })
}

func (p *PartitionedRasterizer) SetOpacity(o uint8) {
	p.each(func(r *raster.Rasterizer) { r.SetOpacity(o) })
}

func (p *PartitionedRasterizer) SetCameraPosition(x, y float64) {
	p.each(func(r *raster.Rasterizer) { r.SetCameraPosition(x, y) })
}

func (p *PartitionedRasterizer) SetCameraRotation(rad float64) {
	p.each(func(r *raster.Rasterizer) { r.SetCameraRotation(rad) })
}

func (p *PartitionedRasterizer) SetCameraScale(x, y float64) {
	p.each(func(r *raster.Rasterizer) { r.SetCameraScale(x, y) })
}

func (p *PartitionedRasterizer) UpdateCamera() {
	p.each(func(r *raster.Rasterizer) { r.UpdateCamera() })
}

// Clear zeroes the master and every partition.
func (p *PartitionedRasterizer) Clear() {
	p.each(func(r *raster.Rasterizer) { r.Clear() })
	p.stale = false
}

// ClearColor floods the master and every partition with c.
func (p *PartitionedRasterizer) ClearColor(c raster.Color) {
	p.each(func(r *raster.Rasterizer) { r.ClearColor(c) })
	p.stale = false
}

// Snapshot returns the master buffer, row-major RGBA. The slice is owned by
// the rasterizer and changes with subsequent draws.
func (p *PartitionedRasterizer) Snapshot() []uint8 {
	return p.master.Pix
}

// DrawDebugView outlines each partition's top and left edge on the master in
// magenta.
func (p *PartitionedRasterizer) DrawDebugView() {
	for _, part := range p.partitions {
		x, y := part.OffsetX, part.OffsetY
		p.master.Pline(x, y, x+part.Width-1, y, raster.Magenta)
		p.master.Pline(x, y, x, y+part.Height-1, raster.Magenta)
	}
	p.Invalidate()
}
