package parallel

import (
	"image"
	"sync"

	"softraster/internal/logging"
	"softraster/internal/raster"
)

// drawFunc issues one draw on r. (ox, oy) is r's offset in master
// coordinates and must be subtracted from every absolute position.
type drawFunc func(r *raster.Rasterizer, ox, oy int)

// dispatch runs draw on the master alone when area is below the threshold,
// otherwise on every partition concurrently followed by a recomposite.
func (p *PartitionedRasterizer) dispatch(op string, area float64, draw drawFunc) {
	if area < float64(p.threshold) || len(p.partitions) < 2 {
		p.stats.SerialCalls++
		draw(p.master, 0, 0)
		p.stale = true
		return
	}

	p.stats.ParallelCalls++
	if p.stale {
		p.syncPartitions()
	}
	logging.Logger().Debug("parallel: dispatch", "op", op, "area", area, "partitions", len(p.partitions))

	before := make([]uint64, len(p.partitions))
	for i, part := range p.partitions {
		before[i] = part.DrawnPixels
	}
	failed := p.fanOut(op, draw)
	p.recomposite(failed, before)
}

// fanOut runs draw on every partition in its own goroutine and waits for all
// of them. A panicking task is recovered and reported in the returned slice.
func (p *PartitionedRasterizer) fanOut(op string, draw drawFunc) []bool {
	failed := make([]bool, len(p.partitions))
	var wg sync.WaitGroup
	for i, part := range p.partitions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					failed[i] = true
					logging.Logger().Warn("parallel: partition task panicked",
						"op", op, "partition", i,
						"offset", image.Pt(part.OffsetX, part.OffsetY), "panic", v)
				}
			}()
			draw(part, part.OffsetX, part.OffsetY)
		}()
	}
	wg.Wait()
	return failed
}

// recomposite copies every successful partition back into the master in
// partition order. Failed partitions keep the master's previous pixels for
// their region.
func (p *PartitionedRasterizer) recomposite(failed []bool, before []uint64) {
	m := p.master
	prev := m.DrawnPixels
	for i, part := range p.partitions {
		if failed[i] {
			p.stats.FailedTasks++
			p.stale = true
			continue
		}
		m.Blit(part, part.OffsetX, part.OffsetY)
		m.DrawnPixels += part.DrawnPixels - before[i]
		if len(part.Collected) > 0 {
			for _, px := range part.Collected {
				px.X += part.OffsetX
				px.Y += part.OffsetY
				m.Collected = append(m.Collected, px)
			}
			part.ClearCollected()
		}
	}
	m.CaptureIfDue(prev)
}

// syncPartitions refreshes every partition from the master.
func (p *PartitionedRasterizer) syncPartitions() {
	for _, part := range p.partitions {
		p.master.CopyRegion(part, part.OffsetX, part.OffsetY)
	}
	p.stale = false
}
