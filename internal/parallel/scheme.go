// Package parallel splits a master rasterizer into a grid of independent
// partitions and runs large fills on every partition concurrently.
//
// A PartitionedRasterizer is driven from a single goroutine. Goroutines are
// only spawned inside a qualifying draw call and are joined before it
// returns.
package parallel

import "fmt"

// Scheme is a partition grid of Cols×Rows equally sized cells.
type Scheme struct {
	Cols int
	Rows int
}

// Full is the single-partition scheme.
var Full = Scheme{Cols: 1, Rows: 1}

// schemes lists every supported grid, densest first.
var schemes = []Scheme{
	{8, 8},
	{5, 5},
	{4, 4},
	{3, 3},
	{3, 2},
	{2, 2},
	{3, 1},
	{2, 1},
	{1, 2},
	Full,
}

// String returns "full" or "<cols>x<rows>".
func (s Scheme) String() string {
	if s == Full {
		return "full"
	}
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}

// Count returns the number of partitions in the grid.
func (s Scheme) Count() int {
	return s.Cols * s.Rows
}

// Fits reports whether a w×h buffer divides evenly into the grid.
func (s Scheme) Fits(w, h int) bool {
	return s.Cols > 0 && s.Rows > 0 && w%s.Cols == 0 && h%s.Rows == 0
}

// SchemeFor maps a core count to a grid. Two cores split left/right, or
// top/bottom when the buffer is taller than wide. Counts above 24 use the
// densest grid.
func SchemeFor(cores, w, h int) Scheme {
	switch {
	case cores <= 1:
		return Full
	case cores == 2:
		if h > w {
			return Scheme{1, 2}
		}
		return Scheme{2, 1}
	case cores == 3:
		return Scheme{3, 1}
	case cores <= 5:
		return Scheme{2, 2}
	case cores <= 7:
		return Scheme{3, 2}
	case cores <= 11:
		return Scheme{3, 3}
	case cores <= 19:
		return Scheme{4, 4}
	case cores <= 24:
		return Scheme{5, 5}
	default:
		return Scheme{8, 8}
	}
}

// fit returns s when it divides w×h, otherwise the densest supported grid
// with no more cells than s that does. Full always fits.
func fit(s Scheme, w, h int) Scheme {
	if s.Fits(w, h) {
		return s
	}
	for _, c := range schemes {
		if c.Count() <= s.Count() && c.Fits(w, h) {
			return c
		}
	}
	return Full
}
