package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"softraster/internal/export"
	"softraster/internal/logging"
	"softraster/internal/parallel"
	"softraster/internal/present"
	"softraster/internal/raster"
	"softraster/internal/scene"
	"softraster/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Assets    texture.Resolver
	Font      *raster.Font
	Format    export.Format
	Export    export.Options
	Cores     int
	Threshold parallel.Threshold
	Scale     int
	Thumbnail int // longest side of an extra PNG thumbnail; 0 disables
	Workers   int
}

// Result holds the outcome of rendering one scene.
type Result struct {
	Name          string
	Source        string
	Image         string
	Animation     string
	Width         int
	Height        int
	Scheme        string
	DrawnPixels   uint64
	ParallelCalls uint64
	SerialCalls   uint64
	FailedTasks   uint64
	Elapsed       time.Duration
	Success       bool
	Error         string
}

// FindScenes lists the *.json files directly inside dir, sorted.
func FindScenes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// Run renders all scenes using a worker pool. Results keep the order of
// paths.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := max(cfg.Workers, 1)
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processScene(cfg, paths[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, path string) Result {
	start := time.Now()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res := Result{Name: name, Source: path}

	s, err := scene.Load(path)
	if err != nil {
		return writeErrorCard(cfg, res, err)
	}
	res.Name = s.Name

	p, err := scene.Render(s, scene.Env{
		Assets:    cfg.Assets,
		Font:      cfg.Font,
		Cores:     cfg.Cores,
		Threshold: cfg.Threshold,
	})
	if err != nil {
		return writeErrorCard(cfg, res, err)
	}

	st := p.Stats()
	res.Width, res.Height = p.Width(), p.Height()
	res.Scheme = p.Scheme().String()
	res.DrawnPixels = p.Master().DrawnPixels
	res.ParallelCalls = st.ParallelCalls
	res.SerialCalls = st.SerialCalls
	res.FailedTasks = st.FailedTasks

	if err := cfg.write(&res, p.Image()); err != nil {
		res.Error = err.Error()
		return res
	}

	if frames := p.Master().Frames(); len(frames) > 0 {
		res.Animation = res.Name + ".anim.gif"
		opts := cfg.Export
		if opts.FrameDelay == 0 {
			opts.FrameDelay = 4
		}
		if err := export.WriteGIF(filepath.Join(cfg.OutputDir, res.Animation), frames, opts); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	res.Elapsed = time.Since(start)
	res.Success = true
	return res
}

// writeErrorCard renders err onto an error card in place of the scene.
func writeErrorCard(cfg Config, res Result, err error) Result {
	logging.Logger().Warn("batch: scene failed", "scene", res.Source, "err", err)
	res.Error = err.Error()
	card := scene.ErrorCard(err.Error(), cfg.Font)
	res.Width, res.Height = card.Width, card.Height
	if werr := cfg.write(&res, card.Image()); werr != nil {
		res.Error += "; " + werr.Error()
	}
	return res
}

// write saves img (and its thumbnail) under the result's name.
func (cfg Config) write(res *Result, img *image.NRGBA) error {
	format := cfg.Format
	if format == "" {
		format = export.WebP
	}
	res.Image = res.Name + format.Ext()
	if err := export.WriteFile(filepath.Join(cfg.OutputDir, res.Image), present.Scale(img, cfg.Scale), format, cfg.Export); err != nil {
		return err
	}
	if cfg.Thumbnail > 0 {
		thumb := present.Thumbnail(img, cfg.Thumbnail)
		if err := export.WriteFile(filepath.Join(cfg.OutputDir, "thumbs", res.Name+".png"), thumb, export.PNG, cfg.Export); err != nil {
			return err
		}
	}
	return nil
}
