// Package scene reads JSON drawing scripts and plays them against a
// parallel.PartitionedRasterizer.
package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"softraster/internal/parallel"
	"softraster/internal/raster"
)

// Scene is one drawing script.
type Scene struct {
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Cores     int       `json:"cores,omitempty"`     // overrides the configured core limit
	Threshold string    `json:"threshold,omitempty"` // overrides the configured threshold
	Record    int       `json:"record_every,omitempty"`
	Commands  []Command `json:"commands"`
}

// Point is an [x, y] pair.
type Point [2]float64

// XY rounds the point to pixel coordinates.
func (p Point) XY() (int, int) {
	return int(math.Round(p[0])), int(math.Round(p[1]))
}

// TexPoint is an [x, y, u, v] or [x, y, u, v, w] PtriTex corner.
type TexPoint []float64

// Command is one drawing call. Which fields are read depends on Op.
type Command struct {
	Op string `json:"op"`

	Color     *Color  `json:"color,omitempty"`
	At        Point   `json:"at"`
	Size      [2]int  `json:"size"`
	Radius    int     `json:"radius"`
	Filled    bool    `json:"filled"`
	Points    []Point `json:"points,omitempty"`
	Thickness int     `json:"thickness"`

	Image    string     `json:"image,omitempty"`
	Region   [4]int     `json:"region"`   // x, y, w, h in the source image
	Rotation float64    `json:"rotation"` // degrees
	Scale    *Point     `json:"scale,omitempty"`
	Pivot    Point      `json:"pivot"`
	Corners  []TexPoint `json:"corners,omitempty"`

	Mode    string `json:"mode,omitempty"`
	Value   int    `json:"value"`
	Text    string `json:"text,omitempty"`
	Spacing int    `json:"spacing"`
	Wrap    int    `json:"wrap"`
}

// ops maps op names to the number of points they require (-1: none).
var ops = map[string]int{
	"clear":        -1,
	"clear_color":  -1,
	"draw_mode":    -1,
	"tint":         -1,
	"opacity":      -1,
	"threshold":    -1,
	"core_limit":   -1,
	"camera":       -1,
	"pset":         -1,
	"line":         2,
	"rect":         -1,
	"circle":       -1,
	"triangle":     3,
	"bezier":       3,
	"bezier_cubic": 4,
	"img":          -1,
	"imgrect":      -1,
	"imgmtx":       -1,
	"tritex":       -1,
	"print":        -1,
	"debug_view":   -1,
}

// needsColor lists ops that draw with Command.Color.
var needsColor = map[string]bool{
	"clear_color": true, "tint": true, "pset": true, "line": true, "rect": true,
	"circle": true, "triangle": true, "bezier": true, "bezier_cubic": true,
}

// Load reads and validates a scene file. A missing name defaults to the
// file stem.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks sizes and per-command arguments.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", s.Width, s.Height)
	}
	if s.Threshold != "" {
		if _, err := parallel.ParseThreshold(s.Threshold); err != nil {
			return err
		}
	}
	for i, c := range s.Commands {
		if err := c.validate(); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, c.Op, err)
		}
	}
	return nil
}

func (c *Command) validate() error {
	points, ok := ops[c.Op]
	if !ok {
		return fmt.Errorf("unknown op %q", c.Op)
	}
	if points > 0 && len(c.Points) != points {
		return fmt.Errorf("want %d points, got %d", points, len(c.Points))
	}
	if needsColor[c.Op] && c.Color == nil {
		return fmt.Errorf("missing color")
	}
	switch c.Op {
	case "draw_mode":
		if _, err := raster.ParseDrawMode(c.Mode); err != nil {
			return err
		}
	case "threshold":
		if _, err := parallel.ParseThreshold(c.Mode); err != nil {
			return err
		}
	case "opacity":
		if c.Value < 0 || c.Value > 255 {
			return fmt.Errorf("opacity %d out of range", c.Value)
		}
	case "core_limit":
		if c.Value < 0 {
			return fmt.Errorf("negative core limit")
		}
	case "img", "imgrect", "imgmtx", "tritex":
		if c.Image == "" {
			return fmt.Errorf("missing image")
		}
	}
	if c.Op == "tritex" {
		if len(c.Corners) != 3 {
			return fmt.Errorf("want 3 corners, got %d", len(c.Corners))
		}
		for _, p := range c.Corners {
			if len(p) != 4 && len(p) != 5 {
				return fmt.Errorf("corner wants [x, y, u, v] or [x, y, u, v, w]")
			}
		}
	}
	return nil
}
