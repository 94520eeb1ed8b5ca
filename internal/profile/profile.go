// Package profile extracts per-rail series from a track (height, banking,
// heading) and summarizes or charts them.
package profile

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"trackgen/internal/mathutil"
	"trackgen/internal/track"
)

// Series names produced by Extract.
const (
	Height = "height"
	Lean   = "lean"
	Turn   = "turn"
	Swivel = "swivel"
	Tilt   = "tilt"
)

// Series is one value per rail.
type Series struct {
	Name   string
	Values []float64
}

// Extract returns the height, lean, turn, swivel and tilt of every rail.
// Angles are in degrees.
func Extract(t *track.Track) ([]Series, error) {
	if !t.Ready() {
		return nil, track.ErrNotInitialized
	}
	f := t.Frames()
	height := make([]float64, t.Len())
	for i, p := range t.Points() {
		height[i] = p[1]
	}
	return []Series{
		{Name: Height, Values: height},
		{Name: Lean, Values: degrees(f.Lean)},
		{Name: Turn, Values: degrees(f.Turn)},
		{Name: Swivel, Values: degrees(unwrap(f.Swivel))},
		{Name: Tilt, Values: degrees(f.Tilt)},
	}, nil
}

// Find returns the named series from ss.
func Find(ss []Series, name string) (Series, error) {
	for _, s := range ss {
		if s.Name == name {
			return s, nil
		}
	}
	return Series{}, fmt.Errorf("profile: no series %q", name)
}

func degrees(rad []float64) []float64 {
	out := make([]float64, len(rad))
	for i, r := range rad {
		out[i] = mathutil.Rad2Deg(r)
	}
	return out
}

// unwrap removes 2π jumps so a heading that turns through ±π plots as a
// continuous line.
func unwrap(a []float64) []float64 {
	out := make([]float64, len(a))
	offset := 0.0
	for i, v := range a {
		if i > 0 {
			offset += mathutil.WrapAngle(v-a[i-1]) - (v - a[i-1])
		}
		out[i] = v + offset
	}
	return out
}

// Summary holds descriptive statistics of a series.
type Summary struct {
	Name   string
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes a Summary per series. Empty series summarize to zero.
func Summarize(ss []Series) []Summary {
	out := make([]Summary, len(ss))
	for i, s := range ss {
		out[i].Name = s.Name
		if len(s.Values) == 0 {
			continue
		}
		out[i].Min = floats.Min(s.Values)
		out[i].Max = floats.Max(s.Values)
		out[i].Mean, out[i].StdDev = stat.MeanStdDev(s.Values, nil)
	}
	return out
}
