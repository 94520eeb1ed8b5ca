package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trackgen/internal/batch"
	"trackgen/internal/config"
	"trackgen/internal/preview"
	"trackgen/internal/trackdef"
	"trackgen/internal/vehicle"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	defDir := flag.String("defs", "", "Directory of track definition files (default: ./tracks)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	only := flag.String("track", "", "Render only this track (comma-separated names)")
	format := flag.String("format", "", "Image format: webp, png or tga (default: webp)")
	view := flag.String("view", "", "Camera: top or iso (default: top)")
	size := flag.Int("size", 0, "Output size in pixels (default: 512)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	animate := flag.Int("animate", 0, "Also write an animated WebP ride of N frames per track")
	cars := flag.Int("cars", 3, "Cars behind the locomotive in -animate rides")

	flag.Parse()

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
		DefDir:    *defDir,
		OutputDir: *outputDir,
		Size:      *size,
		Format:    *format,
		View:      *view,
		Workers:   *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Load definitions; fall back to the built-in layout
	var defs []trackdef.Definition
	if cfg.DefDir != "" {
		var errs []error
		defs, errs = trackdef.LoadDir(cfg.DefDir)
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if len(defs) == 0 {
		fmt.Println("No definitions found, using the default track.")
		defs = []trackdef.Definition{trackdef.Default()}
	}

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	if *only != "" {
		names = strings.Split(*only, ",")
	}

	fmt.Printf("Track preview renderer → %s\n", strings.ToUpper(cfg.Format))
	fmt.Printf("Tracks: %d, Workers: %d, View: %s\n", len(names), cfg.Workers, cfg.View)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	cache := trackdef.NewCache(defs)
	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Tracks:      cache,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Format:      cfg.Format,
		View:        cfg.View,
		Workers:     cfg.Workers,
		Progress:    2 * time.Second,
	}, names)

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
		if len(r.Skipped) > 0 {
			fmt.Printf("  %s: skipped tokens %q\n", r.Name, r.Skipped)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(names))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	if *animate > 0 {
		for _, r := range results {
			if !r.Success {
				continue
			}
			path, err := writeRide(cfg, cache, r.Name, *animate, *cars)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: ride %s: %v\n", r.Name, err)
				continue
			}
			fmt.Printf("Ride: %s\n", path)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// writeRide renders a full-throttle ride along the named track at 25 fps.
func writeRide(cfg config.Config, cache *trackdef.Cache, name string, frames, cars int) (string, error) {
	tr, err := cache.Get(name)
	if err != nil {
		return "", err
	}
	view, err := preview.ViewMatrix(cfg.View)
	if err != nil {
		return "", err
	}

	train := vehicle.NewTrain(cars)
	train.Loco.Direction = vehicle.Forward
	const frameTime = 40 * time.Millisecond
	imgs, err := preview.Ride(tr, train, view, cfg.RenderSize, cfg.Supersample, frames, frameTime.Seconds())
	if err != nil {
		return "", err
	}

	path := filepath.Join(cfg.OutputDir, name+"-ride.webp")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := preview.EncodeAnimation(f, imgs, frameTime); err != nil {
		return "", err
	}
	return path, nil
}
