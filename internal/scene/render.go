package scene

import (
	"fmt"

	"softraster/internal/logging"
	"softraster/internal/mathutil"
	"softraster/internal/parallel"
	"softraster/internal/raster"
	"softraster/internal/texture"
)

// Env carries the collaborators a scene draws with.
type Env struct {
	Assets    texture.Resolver // nil: every image is the placeholder
	Font      *raster.Font     // nil: print draws nothing
	Cores     int
	Threshold parallel.Threshold
}

// Render creates a rasterizer sized for s and plays every command on it.
func Render(s *Scene, env Env) (*parallel.PartitionedRasterizer, error) {
	cores := env.Cores
	if s.Cores > 0 {
		cores = s.Cores
	}
	p := parallel.New(s.Width, s.Height, cores)
	p.SetThreshold(env.Threshold)
	if s.Threshold != "" {
		th, err := parallel.ParseThreshold(s.Threshold)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", s.Name, err)
		}
		p.SetThreshold(th)
	}
	if s.Record > 0 {
		p.Master().RecordFrames(s.Record)
	}
	if err := Play(p, s.Commands, env); err != nil {
		return p, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return p, nil
}

// Play runs cmds in order on p. It stops at the first invalid command.
func Play(p *parallel.PartitionedRasterizer, cmds []Command, env Env) error {
	for i := range cmds {
		c := &cmds[i]
		if err := c.validate(); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, c.Op, err)
		}
		c.apply(p, env)
	}
	return nil
}

func (c *Command) color() raster.Color {
	if c.Color == nil {
		return raster.White
	}
	return raster.Color(*c.Color)
}

func (c *Command) image(env Env) *raster.Rasterizer {
	if env.Assets != nil {
		if img := env.Assets.Resolve(c.Image); img != nil {
			return img
		}
	}
	logging.Logger().Warn("scene: unknown image, using placeholder", "image", c.Image)
	return texture.Placeholder()
}

func (c *Command) apply(p *parallel.PartitionedRasterizer, env Env) {
	x, y := c.At.XY()
	col := c.color()

	switch c.Op {
	case "clear":
		p.Clear()
	case "clear_color":
		p.ClearColor(col)
	case "draw_mode":
		m, _ := raster.ParseDrawMode(c.Mode)
		p.SetDrawMode(m)
	case "tint":
		p.SetTint(col)
	case "opacity":
		p.SetOpacity(uint8(c.Value))
	case "threshold":
		th, _ := parallel.ParseThreshold(c.Mode)
		p.SetThreshold(th)
	case "core_limit":
		p.SetCoreLimit(c.Value)
	case "camera":
		sx, sy := 1.0, 1.0
		if c.Scale != nil {
			sx, sy = c.Scale[0], c.Scale[1]
		}
		p.SetCameraPosition(c.At[0], c.At[1])
		p.SetCameraRotation(mathutil.Deg2Rad(c.Rotation))
		p.SetCameraScale(sx, sy)
		p.UpdateCamera()
	case "pset":
		p.Pset(x, y, col)
	case "line":
		x0, y0 := c.Points[0].XY()
		x1, y1 := c.Points[1].XY()
		p.Pline(x0, y0, x1, y1, col)
	case "rect":
		p.Prectangle(c.Filled, x, y, c.Size[0], c.Size[1], col)
	case "circle":
		p.Pcircle(c.Filled, x, y, c.Radius, col)
	case "triangle":
		x1, y1 := c.Points[0].XY()
		x2, y2 := c.Points[1].XY()
		x3, y3 := c.Points[2].XY()
		p.Ptriangle(c.Filled, x1, y1, x2, y2, x3, y3, col)
	case "bezier":
		x0, y0 := c.Points[0].XY()
		mx, my := c.Points[1].XY()
		x1, y1 := c.Points[2].XY()
		p.Pbezier(c.Thickness, x0, y0, x1, y1, mx, my, col)
	case "bezier_cubic":
		x0, y0 := c.Points[0].XY()
		mx0, my0 := c.Points[1].XY()
		mx1, my1 := c.Points[2].XY()
		x1, y1 := c.Points[3].XY()
		p.PbezierCubic(x0, y0, x1, y1, mx0, my0, mx1, my1, col)
	case "img":
		p.Pimg(c.image(env), x, y)
	case "imgrect":
		r := c.Region
		p.Pimgrect(c.image(env), x, y, r[0], r[1], r[2], r[3])
	case "imgmtx":
		sx, sy := 1.0, 1.0
		if c.Scale != nil {
			sx, sy = c.Scale[0], c.Scale[1]
		}
		p.Pimgmtx(c.image(env), c.At[0], c.At[1], mathutil.Deg2Rad(c.Rotation), sx, sy, c.Pivot[0], c.Pivot[1])
	case "tritex":
		var v [3]raster.TexVertex
		for i, k := range c.Corners {
			v[i] = raster.TexVertex{X: k[0], Y: k[1], U: k[2], V: k[3], W: 1}
			if len(k) == 5 {
				v[i].W = k[4]
			}
		}
		p.PtriTex(c.image(env), v[0], v[1], v[2])
	case "print":
		p.Pprint(env.Font, c.Text, x, y, c.Spacing, c.Wrap)
	case "debug_view":
		p.DrawDebugView()
	}
}
