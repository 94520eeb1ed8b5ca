// Package trackmesh derives renderable geometry from a built track: ties
// at every point and two rail tubes offset along the carriage binormal.
package trackmesh

import (
	"trackgen/internal/mathutil"
	"trackgen/internal/track"
)

const (
	SleeperWidth  = 0.2286 // along the rail
	SleeperHeight = 0.1778
	SleeperDepth  = 2.6 // across the rail
	SleeperDrop   = 0.5 // below the point, along the carriage normal

	RailGauge  = 0.9 // half distance between rails
	RailDrop   = 0.35
	RailRadius = 0.1
)

// Sleeper is one tie placement.
type Sleeper struct {
	Position mathutil.Vec3
	Rotation mathutil.Mat3
}

// Sleepers places a tie at every point except the last, oriented by the
// carriage frame so ties bank with the track.
func Sleepers(t *track.Track) ([]Sleeper, error) {
	if !t.Ready() {
		return nil, track.ErrNotInitialized
	}
	carriage := t.Frames().CarriageRotations
	out := make([]Sleeper, 0, t.Len())
	for i := 0; i < t.Len()-1; i++ {
		normal := mathutil.Up(carriage[i])
		out = append(out, Sleeper{
			Position: t.Point(i).Sub(normal.Mul(SleeperDrop)),
			Rotation: carriage[i],
		})
	}
	return out, nil
}

// Rail is one rail polyline with the carriage frame at each vertex.
type Rail struct {
	Points []mathutil.Vec3
	Frames []mathutil.Mat3
}

// RailPaths returns the two rails, on the +binormal and -binormal sides.
// A closed track repeats its first vertex so the tube wraps around.
func RailPaths(t *track.Track) (plus, minus Rail, err error) {
	if !t.Ready() {
		return Rail{}, Rail{}, track.ErrNotInitialized
	}
	carriage := t.Frames().CarriageRotations
	for i := 0; i < t.Len()-1; i++ {
		normal := mathutil.Up(carriage[i])
		binormal := mathutil.Side(carriage[i])
		base := t.Point(i).Sub(normal.Mul(RailDrop))
		plus.Points = append(plus.Points, base.Add(binormal.Mul(RailGauge)))
		minus.Points = append(minus.Points, base.Sub(binormal.Mul(RailGauge)))
		plus.Frames = append(plus.Frames, carriage[i])
		minus.Frames = append(minus.Frames, carriage[i])
	}
	if t.Closed() && len(plus.Points) > 0 {
		plus.Points = append(plus.Points, plus.Points[0])
		minus.Points = append(minus.Points, minus.Points[0])
		plus.Frames = append(plus.Frames, plus.Frames[0])
		minus.Frames = append(minus.Frames, minus.Frames[0])
	}
	return plus, minus, nil
}
