package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	SceneDir  string `json:"scene_dir"`
	AssetDir  string `json:"asset_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	Format    string `json:"format"`
	Quality   int    `json:"quality"`
	Cores     int    `json:"cores"`
	Threshold string `json:"threshold"`
	Workers   int    `json:"workers"`
	Scale     int    `json:"scale"`
	Thumbnail int    `json:"thumbnail"`

	// Font atlas; empty Font selects the built-in face.
	Font            string `json:"font"`
	FontGlyphs      string `json:"font_glyphs"`
	FontGlyphWidth  int    `json:"font_glyph_width"`
	FontGlyphHeight int    `json:"font_glyph_height"`
	FontSpacing     int    `json:"font_spacing"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the config untouched.
type Flags struct {
	BaseDir   string
	SceneDir  string
	OutputDir string
	Format    string
	Quality   int
	Cores     int
	Threshold string
	Workers   int
	Scale     int
}

// Resolve applies flags, resolves relative paths against BaseDir and fills
// empty settings with defaults. Cores and Workers of 0 become
// runtime.NumCPU().
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Quality > 0 {
		c.Quality = flags.Quality
	}
	if flags.Cores > 0 {
		c.Cores = flags.Cores
	}
	if flags.Threshold != "" {
		c.Threshold = flags.Threshold
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	c.SceneDir = c.under(c.SceneDir, "scenes")
	c.AssetDir = c.under(c.AssetDir, "assets")
	c.OutputDir = c.under(c.OutputDir, "renders")
	if c.Font != "" && !filepath.IsAbs(c.Font) {
		c.Font = filepath.Join(c.BaseDir, c.Font)
	}

	// Defaults for render settings
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Quality <= 0 || c.Quality > 100 {
		c.Quality = 90
	}
	if c.Cores <= 0 {
		c.Cores = runtime.NumCPU()
	}
	if c.Threshold == "" {
		c.Threshold = "high"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
}

// under resolves p against BaseDir, defaulting to BaseDir/def.
func (c *Config) under(p, def string) string {
	switch {
	case p == "":
		return filepath.Join(c.BaseDir, def)
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(c.BaseDir, p)
	}
}
