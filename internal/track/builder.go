package track

import (
	"fmt"
	"math"

	"trackgen/internal/mathutil"
)

const (
	// RailSpacing is the distance between consecutive straight points.
	RailSpacing = 0.5
	// DefaultStraightPoints is the number of points in a straight section.
	DefaultStraightPoints = 100
	// DefaultHeight is the Y coordinate of the first straight.
	DefaultHeight = 0.5
	// CurveRadius is the radius of every curve, in world units.
	CurveRadius = 30.0
	// CurveAngle is the nominal turn of a curve section, in degrees.
	CurveAngle = 90.0

	// Points per degree of turn. Empirical; changing it changes every
	// generated track.
	curvePointRatio = 105.0 / 90.0
)

// BuildOptions tune point generation. The zero value uses the defaults.
type BuildOptions struct {
	StraightPoints int     // points per straight section (>= 2)
	Height         float64 // Y of the first straight
	UseHeight      bool    // Height is set explicitly (0 is a valid height)
	Loop           bool    // append a loop-closing section marker at start 0
}

func (o BuildOptions) resolve() (BuildOptions, error) {
	if o.StraightPoints == 0 {
		o.StraightPoints = DefaultStraightPoints
	}
	if o.StraightPoints < 2 {
		return o, fmt.Errorf("%w: straight sections need at least 2 points, got %d", ErrBadOptions, o.StraightPoints)
	}
	if !o.UseHeight {
		o.Height = DefaultHeight
	}
	return o, nil
}

// CurvePointCount returns the number of points generated for a curve of
// angleDeg degrees.
func CurvePointCount(angleDeg float64) int {
	return int(math.Round(curvePointRatio * math.Abs(angleDeg)))
}

// BuildLayout converts section tokens into points and section markers.
//
// Every token pushes a section marker, so section i belongs to token i and
// overrides maps a token position to that section's options; unspecified
// sections get zero options. Unknown tokens are logged and recorded in
// Layout.Skipped; their marker covers no points. A section that cannot
// continue from the points built so far aborts the build.
func BuildLayout(tokens []string, overrides map[int]SectionOptions, opts BuildOptions) (*Layout, error) {
	opts, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	layout := &Layout{}
	for pos, tok := range tokens {
		section := Section{Start: len(layout.Points)}
		kind, err := ParseToken(pos, tok)
		if err != nil {
			Logf("%v", err)
			layout.Skipped = append(layout.Skipped, err.(*InvalidTokenError))
			layout.Sections = append(layout.Sections, section)
			continue
		}
		if err := checkContinuation(pos, kind, len(layout.Points)); err != nil {
			return nil, err
		}

		var next []mathutil.Vec3
		switch kind {
		case Straight:
			next = straightPoints(layout.Points, opts.StraightPoints, opts.Height)
		case Left, Right:
			next = curvePoints(layout.Points, kind, CurveAngle)
		}
		layout.Sections = append(layout.Sections, section)
		layout.Points = append(layout.Points, next...)
	}

	total := len(layout.Sections)
	if opts.Loop && total > 0 {
		total++
	}
	for idx, o := range overrides {
		if idx < 0 || idx >= total {
			Logf("track: override for section %d ignored, track has %d sections", idx, total)
			continue
		}
		if idx < len(layout.Sections) {
			layout.Sections[idx].Options = o
		}
	}

	if total > len(layout.Sections) {
		closing := Section{Start: 0, Options: layout.Sections[0].Options}
		if o, ok := overrides[total-1]; ok {
			closing.Options = o
		}
		layout.Sections = append(layout.Sections, closing)
	}

	return layout, nil
}

// checkContinuation rejects a section that needs a direction from fewer
// than two prior points. A curve always does; a straight only when it
// follows a single point.
func checkContinuation(pos int, kind Kind, prior int) error {
	if (kind == Straight && prior == 1) || (kind != Straight && prior < 2) {
		return &DegenerateCurveError{Position: pos, Kind: kind, Points: prior}
	}
	return nil
}

// straightPoints emits n points continuing the last rail's direction, or a
// run along +X from the origin when the track is empty.
func straightPoints(points []mathutil.Vec3, n int, height float64) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, 0, n)
	if len(points) == 0 {
		for i := 0; i < n; i++ {
			out = append(out, mathutil.Vec3{float64(i) * RailSpacing, height, 0})
		}
		return out
	}

	last := points[len(points)-1]
	dir := lastDirection(points)
	for i := 0; i < n; i++ {
		out = append(out, last.Add(dir.Mul(float64(i+1)*RailSpacing)))
	}
	return out
}

// curvePoints emits a horizontal circular arc of CurveRadius tangent to the
// last rail. Right turns bend towards +Z when heading along +X; left turns
// mirror that. Sample i sits at angleDeg*i/count for i in [0, count): the
// first repeats the last point and the arc stops one step short of
// angleDeg. Generated layouts depend on this sampling.
func curvePoints(points []mathutil.Vec3, kind Kind, angleDeg float64) []mathutil.Vec3 {
	last := points[len(points)-1]
	dir := lastDirection(points)
	initial := math.Atan2(dir[2], dir[0])
	sin0, cos0 := math.Sin(initial), math.Cos(initial)

	angle := mathutil.Deg2Rad(angleDeg)
	count := CurvePointCount(angleDeg)
	out := make([]mathutil.Vec3, 0, count)
	for i := 0; i < count; i++ {
		a := angle * float64(i) / float64(count)
		dx := CurveRadius * math.Sin(a)
		dz := CurveRadius * (1 - math.Cos(a))
		if kind == Left {
			dz = -dz
		}
		out = append(out, last.Add(mathutil.Vec3{
			dx*cos0 - dz*sin0,
			0,
			dx*sin0 + dz*cos0,
		}))
	}
	return out
}

func lastDirection(points []mathutil.Vec3) mathutil.Vec3 {
	n := len(points)
	return mathutil.Normalize(points[n-1].Sub(points[n-2]))
}
