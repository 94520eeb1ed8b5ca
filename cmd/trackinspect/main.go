package main

import (
	"flag"
	"fmt"
	"os"

	"trackgen/internal/mathutil"
	"trackgen/internal/profile"
	"trackgen/internal/trackdef"
)

func main() {
	frames := flag.Int("frames", 0, "Print the first N rail frames")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: trackinspect [-frames N] [definition.json]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	def := trackdef.Default()
	if flag.NArg() > 0 {
		var err error
		def, err = trackdef.Load(flag.Arg(0))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	tr, err := def.Build()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Track %q: %d points, closed=%v\n", tr.Name, tr.Len(), tr.Closed())
	for _, s := range tr.Skipped() {
		fmt.Printf("  skipped token %q at %d\n", s.Token, s.Position)
	}

	lo, hi := bounds(tr.Points())
	fmt.Printf("  BBox: X[%.1f, %.1f] Y[%.1f, %.1f] Z[%.1f, %.1f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])

	fmt.Println("Sections:")
	for _, sp := range tr.Spans() {
		fmt.Printf("  [%d] rails %d-%d (%d)  lean %.3f→%.3f  turn %.3f→%.3f\n",
			sp.Section, sp.Start, sp.End, sp.Rails(), sp.From.Lean, sp.To.Lean, sp.From.Turn, sp.To.Turn)
	}

	series, err := profile.Extract(tr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Profile:")
	for _, s := range profile.Summarize(series) {
		fmt.Printf("  %-7s min %9.3f  max %9.3f  mean %9.3f  sd %8.3f\n", s.Name, s.Min, s.Max, s.Mean, s.StdDev)
	}

	if *frames > 0 {
		f := tr.Frames()
		n := *frames
		if n > tr.Len() {
			n = tr.Len()
		}
		fmt.Println("Frames:")
		for i := 0; i < n; i++ {
			fwd := mathutil.Forward(f.Rotations[i])
			up := mathutil.Up(f.Rotations[i])
			q := tr.Rotation(i)
			fmt.Printf("  %4d pos(%.2f, %.2f, %.2f) fwd(%.3f, %.3f, %.3f) up(%.3f, %.3f, %.3f) q(%.4f; %.4f, %.4f, %.4f)\n",
				i, tr.Point(i)[0], tr.Point(i)[1], tr.Point(i)[2],
				fwd[0], fwd[1], fwd[2], up[0], up[1], up[2],
				q.W, q.V[0], q.V[1], q.V[2])
		}
	}
}

func bounds(points []mathutil.Vec3) (lo, hi mathutil.Vec3) {
	if len(points) == 0 {
		return
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	return lo, hi
}
