// Package batch builds and renders many track definitions in parallel.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"trackgen/internal/postprocess"
	"trackgen/internal/preview"
	"trackgen/internal/trackdef"
	"trackgen/internal/trackmesh"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Tracks      *trackdef.Cache
	RenderSize  int
	Supersample int
	Format      string
	View        string
	Workers     int
	Progress    time.Duration // interval between progress lines; 0 disables
}

// Result holds the outcome of processing one definition.
type Result struct {
	Name     string
	Image    string // path relative to OutputDir
	Points   int
	Sections int
	Closed   bool
	Skipped  []string // ignored tokens
	Success  bool
	Error    string
}

// Run processes all definitions using a worker pool. Results keep the
// order of names.
func Run(cfg Config, names []string) []Result {
	total := len(names)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
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
						fmt.Printf("  [%d/%d] %.1f tracks/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processTrack(cfg, names[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func processTrack(cfg Config, name string) Result {
	res := Result{Name: name}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	tr, err := cfg.Tracks.Get(name)
	if err != nil {
		return fail(err)
	}
	res.Points = tr.Len()
	res.Sections = len(tr.Spans())
	res.Closed = tr.Closed()
	for _, s := range tr.Skipped() {
		res.Skipped = append(res.Skipped, s.Token)
	}

	mesh, err := trackmesh.Build(tr)
	if err != nil {
		return fail(err)
	}
	view, err := preview.ViewMatrix(cfg.View)
	if err != nil {
		return fail(err)
	}

	img := preview.RenderMesh(mesh, view, cfg.RenderSize, cfg.Supersample)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Supersample)
	}

	res.Image = name + preview.Ext(cfg.Format)
	outPath := filepath.Join(cfg.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail(err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fail(err)
	}
	if err := preview.Encode(f, img, cfg.Format); err != nil {
		f.Close()
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}

	res.Success = true
	return res
}
