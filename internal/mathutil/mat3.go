package mathutil

import "math"

// Mat3 is a 3×3 affine matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
// The bottom row is always (0, 0, 1) for matrices built by the factories below.
// Value type for zero heap allocation.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mat3Translated returns a translation by v.
func Mat3Translated(v Vec2) Mat3 {
	return Mat3{
		1, 0, v.X,
		0, 1, v.Y,
		0, 0, 1,
	}
}

// Mat3Rotated returns a rotation around the origin. Angle in radians; positive
// angles turn +X towards +Y (clockwise on a y-down screen).
func Mat3Rotated(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Mat3Scaled returns a scale along X and Y.
func Mat3Scaled(v Vec2) Mat3 {
	return Mat3{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, 1,
	}
}

// Mat3Mul returns a × b. Applied to a point, b acts first.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3+0]*b[0*3+c] + a[r*3+1]*b[1*3+c] + a[r*3+2]*b[2*3+c]
		}
	}
	return m
}

// Chain multiplies ms left to right: Chain(a, b, c) = a × b × c.
func Chain(ms ...Mat3) Mat3 {
	out := Mat3Identity()
	for _, m := range ms {
		out = Mat3Mul(out, m)
	}
	return out
}

// Forward transforms the point v by m.
func (m Mat3) Forward(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[1]*v.Y + m[2],
		m[3]*v.X + m[4]*v.Y + m[5],
	}
}

func (m Mat3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the analytic inverse of m. ok is false when m is singular,
// in which case the identity is returned.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	d := m.Det()
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return Mat3Identity(), false
	}
	invD := 1.0 / d
	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) * invD,
		(m[2]*m[7] - m[1]*m[8]) * invD,
		(m[1]*m[5] - m[2]*m[4]) * invD,
		(m[5]*m[6] - m[3]*m[8]) * invD,
		(m[0]*m[8] - m[2]*m[6]) * invD,
		(m[2]*m[3] - m[0]*m[5]) * invD,
		(m[3]*m[7] - m[4]*m[6]) * invD,
		(m[1]*m[6] - m[0]*m[7]) * invD,
		(m[0]*m[4] - m[1]*m[3]) * invD,
	}, true
}
