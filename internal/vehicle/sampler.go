// Package vehicle places bodies on a track: it advances an arc position
// each tick and samples position and orientation between rails.
package vehicle

import (
	"fmt"
	"math"

	"trackgen/internal/mathutil"
)

// HeightAboveTrack lifts sampled positions clear of the rails.
const HeightAboveTrack = 1.5

// Path is the read side of a track as seen by the sampler.
type Path interface {
	Len() int
	Point(i int) mathutil.Vec3
	Rotation(i int) mathutil.Quat
}

// ReadyPath is a Path that may still be building.
type ReadyPath interface {
	Path
	Ready() bool
}

// Step is the result of advancing an arc position by one tick.
type Step struct {
	ArcPos    float64 // wrapped into [0, pathLength)
	Index     int     // floor of the previous arc position
	NextIndex int
	Factor    float64 // distance travelled past Index; may exceed [0, 1)
}

// Pose is a sampled placement.
type Pose struct {
	Position mathutil.Vec3
	Rotation mathutil.Quat
}

// Wrap maps an arc position into [0, pathLength).
func Wrap(arcPos float64, pathLength int) float64 {
	l := float64(pathLength)
	p := math.Mod(arcPos, l)
	if p < 0 {
		p += l
	}
	if p >= l {
		p = 0
	}
	return p
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Advance moves arcPos by speed*dt rails around a path of pathLength
// rails. Negative speeds travel backwards with correct wraparound.
//
// Factor is measured from the old floored index to the unwrapped new
// position, so a tick crossing a rail boundary keeps blending from the
// rail it started on.
func Advance(arcPos, speed, dt float64, pathLength int) (Step, error) {
	if pathLength <= 0 {
		return Step{}, ErrEmptyPath
	}
	if !finite(arcPos, speed, dt) {
		return Step{}, fmt.Errorf("%w: pos=%v speed=%v dt=%v", ErrNonFinite, arcPos, speed, dt)
	}

	old := Wrap(arcPos, pathLength)
	base := math.Floor(old)
	index := int(base) % pathLength
	moved := old + speed*dt
	return Step{
		ArcPos:    Wrap(moved, pathLength),
		Index:     index,
		NextIndex: (index + 1) % pathLength,
		Factor:    moved - base,
	}, nil
}

// Sample blends rails Index and NextIndex by Factor, clamped to [0, 1].
func Sample(p Path, s Step) (Pose, error) {
	n := p.Len()
	if n == 0 {
		return Pose{}, ErrEmptyPath
	}
	if s.Index < 0 || s.Index >= n || s.NextIndex < 0 || s.NextIndex >= n {
		return Pose{}, fmt.Errorf("vehicle: rail %d/%d outside path of %d", s.Index, s.NextIndex, n)
	}
	if !finite(s.Factor) {
		return Pose{}, fmt.Errorf("%w: factor=%v", ErrNonFinite, s.Factor)
	}
	t := math.Max(0, math.Min(1, s.Factor))

	pos := mathutil.Lerp(p.Point(s.Index), p.Point(s.NextIndex), t)
	pos[1] += HeightAboveTrack
	rot := mathutil.Slerp(p.Rotation(s.Index), p.Rotation(s.NextIndex), t)
	return Pose{Position: pos, Rotation: rot}, nil
}

// SampleAt places a body at an absolute arc position.
func SampleAt(p Path, arcPos float64) (Pose, error) {
	n := p.Len()
	if n == 0 {
		return Pose{}, ErrEmptyPath
	}
	if !finite(arcPos) {
		return Pose{}, fmt.Errorf("%w: pos=%v", ErrNonFinite, arcPos)
	}
	pos := Wrap(arcPos, n)
	base := math.Floor(pos)
	index := int(base) % n
	return Sample(p, Step{ArcPos: pos, Index: index, NextIndex: (index + 1) % n, Factor: pos - base})
}

// Behind returns the arc position offset rails behind leader.
func Behind(leader, offset float64, pathLength int) float64 {
	return Wrap(leader-offset+float64(pathLength), pathLength)
}
