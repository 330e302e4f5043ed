package raster

import "softraster/internal/mathutil"

// Camera is a 2D view applied to transformed sprite draws (Pimgmtx).
// Position is the world point shown at the buffer origin.
type Camera struct {
	Position mathutil.Vec2
	Rotation float64
	Scale    mathutil.Vec2

	view mathutil.Mat3
}

// NewCamera returns an identity camera.
func NewCamera() Camera {
	return Camera{
		Scale: mathutil.V2(1, 1),
		view:  mathutil.Mat3Identity(),
	}
}

// Update recomputes the view matrix from Position, Rotation and Scale.
// Changes to the fields have no effect until Update is called.
func (c *Camera) Update() {
	c.view = mathutil.Chain(
		mathutil.Mat3Scaled(c.Scale),
		mathutil.Mat3Rotated(-c.Rotation),
		mathutil.Mat3Translated(c.Position.Scale(-1)),
	)
}

// View returns the last computed view matrix.
func (c *Camera) View() mathutil.Mat3 {
	if c.view == (mathutil.Mat3{}) {
		return mathutil.Mat3Identity()
	}
	return c.view
}

func (r *Rasterizer) SetCameraPosition(x, y float64) {
	r.Camera.Position = mathutil.V2(x, y)
}

func (r *Rasterizer) SetCameraRotation(rad float64) {
	r.Camera.Rotation = rad
}

func (r *Rasterizer) SetCameraScale(x, y float64) {
	r.Camera.Scale = mathutil.V2(x, y)
}

// UpdateCamera recomputes the camera view matrix.
func (r *Rasterizer) UpdateCamera() {
	r.Camera.Update()
}
