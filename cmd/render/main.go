package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"softraster/internal/batch"
	"softraster/internal/config"
	"softraster/internal/export"
	"softraster/internal/font"
	"softraster/internal/logging"
	"softraster/internal/parallel"
	"softraster/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	testN := flag.Int("test", 0, "Render only first N scenes for testing")
	only := flag.String("scene", "", "Render only the scene with this file stem")
	workers := flag.Int("workers", 0, "Number of scenes rendered at once (default: NumCPU)")
	cores := flag.Int("cores", 0, "Partitions per scene, by core count (default: NumCPU)")
	threshold := flag.String("threshold", "", "Parallel area threshold: always|high|medium|low|very_low|<pixels>")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: cwd)")
	sceneDir := flag.String("scenes", "", "Scene directory (default: <base>/scenes)")
	outputDir := flag.String("output", "", "Output directory (default: <base>/renders)")
	format := flag.String("format", "", "Output format: webp|png|jpeg|gif (default: webp)")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	scale := flag.Int("scale", 0, "Integer upscale factor (default: 1)")
	verbose := flag.Bool("v", false, "Log dispatch decisions and warnings to stderr")

	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:   *baseDir,
		SceneDir:  *sceneDir,
		OutputDir: *outputDir,
		Format:    *format,
		Quality:   *quality,
		Cores:     *cores,
		Threshold: *threshold,
		Workers:   *workers,
		Scale:     *scale,
	})

	outFormat, err := export.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	th, err := parallel.ParseThreshold(cfg.Threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	paths, err := batch.FindScenes(cfg.SceneDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenes: %v\n", err)
		os.Exit(1)
	}

	// Filter by name
	if *only != "" {
		var filtered []string
		for _, p := range paths {
			if filepath.Base(p) == *only+filepath.Ext(p) {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	// Limit for testing
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}

	if len(paths) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	// Build asset index
	assetIndex := texture.BuildIndex(cfg.AssetDir)
	assets := texture.NewCache(assetIndex)
	fmt.Printf("Assets: %d indexed\n", assetIndex.Len())

	fnt := font.LoadOrDefault(cfg.Font, cfg.FontGlyphs, cfg.FontGlyphWidth, cfg.FontGlyphHeight, cfg.FontSpacing)

	// Print summary
	mode := ""
	if *only != "" {
		mode = fmt.Sprintf(" (scene %s)", *only)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Partitioned software rasterizer → %s%s\n", outFormat, mode)
	fmt.Printf("Scenes: %d, Workers: %d, Cores: %d, Threshold: %s\n", len(paths), cfg.Workers, cfg.Cores, th)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Assets:    assets,
		Font:      fnt,
		Format:    outFormat,
		Export:    export.Options{Quality: cfg.Quality},
		Cores:     cfg.Cores,
		Threshold: th,
		Scale:     cfg.Scale,
		Thumbnail: cfg.Thumbnail,
		Workers:   cfg.Workers,
	}

	results := batch.Run(batchCfg, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(paths))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors[:min(len(errors), 20)] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
