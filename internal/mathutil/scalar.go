package mathutil

import "math"

// Lerp interpolates between a and b; t=0 yields a, t=1 yields b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mod returns the Euclidean remainder of a/n, always in [0, n).
func Mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
