package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"softraster/internal/parallel"
	"softraster/internal/texture"
)

func main() {
	width := flag.Int("width", 640, "Framebuffer width")
	height := flag.Int("height", 480, "Framebuffer height")
	cores := flag.Int("cores", 0, "Core count (default: NumCPU)")
	threshold := flag.String("threshold", "high", "Parallel area threshold")
	assets := flag.String("assets", "", "Also list the images indexed under this directory")
	flag.Parse()

	th, err := parallel.ParseThreshold(*threshold)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	n := *cores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := parallel.New(*width, *height, n)
	p.SetThreshold(th)

	want := parallel.SchemeFor(n, *width, *height)
	fmt.Printf("Buffer: %dx%d, Cores: %d\n", *width, *height, n)
	fmt.Printf("Scheme: %s", p.Scheme())
	if want != p.Scheme() {
		fmt.Printf(" (wanted %s, does not divide the buffer)", want)
	}
	fmt.Println()
	fmt.Printf("Threshold: %s (%d px)\n", th, int(th))

	for i, part := range p.Partitions() {
		b := part.Bounds()
		fmt.Printf("  Part[%d]: offset=(%d, %d) size=%dx%d bounds=%v\n",
			i, part.OffsetX, part.OffsetY, part.Width, part.Height, b)
	}

	if *assets != "" {
		idx := texture.BuildIndex(*assets)
		fmt.Printf("Assets: %d indexed\n", idx.Len())
		for _, name := range idx.Names() {
			path, _ := idx.ResolvePath(name)
			fmt.Printf("  %s → %s\n", name, path)
		}
	}
}
