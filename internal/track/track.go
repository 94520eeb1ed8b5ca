package track

import (
	"fmt"

	"trackgen/internal/mathutil"
)

// Status is the build state of a Track.
type Status int

const (
	NotInitialized Status = iota
	Initializing
	Initialized
)

func (s Status) String() string {
	switch s {
	case NotInitialized:
		return "not-initialized"
	case Initializing:
		return "initializing"
	case Initialized:
		return "initialized"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// closeTolerance is how near the last point must be to the first for the
// track to count as a closed loop.
const closeTolerance = 1e-6

// Track is a rail path with per-point orientations. It is built once by
// Init and is immutable afterwards. Track is not safe for concurrent Init;
// callers drive it from a single tick loop.
type Track struct {
	Name string

	tokens    []string
	overrides map[int]SectionOptions
	opts      BuildOptions

	status    Status
	points    []mathutil.Vec3
	sections  []Section
	frames    *Frames
	rotations []mathutil.Quat
	skipped   []*InvalidTokenError
}

// New returns an uninitialized track defined by section tokens.
func New(name string, tokens []string, overrides map[int]SectionOptions, opts BuildOptions) *Track {
	return &Track{
		Name:      name,
		tokens:    append([]string(nil), tokens...),
		overrides: overrides,
		opts:      opts,
	}
}

// FromPoints returns an uninitialized track over explicit points.
func FromPoints(name string, points []mathutil.Vec3, sections []Section) *Track {
	return &Track{
		Name:     name,
		points:   append([]mathutil.Vec3(nil), points...),
		sections: append([]Section(nil), sections...),
	}
}

// Init builds points (when defined by tokens), validates sections and
// propagates frames. It runs at most once: calls after the first are
// no-ops. A failed build leaves the track Initializing; it is not retried.
func (t *Track) Init() error {
	if t.status != NotInitialized {
		return nil
	}
	t.status = Initializing

	if t.tokens != nil {
		layout, err := BuildLayout(t.tokens, t.overrides, t.opts)
		if err != nil {
			Logf("track %s: build failed: %v", t.Name, err)
			return fmt.Errorf("track %s: %w", t.Name, err)
		}
		t.points = layout.Points
		t.sections = layout.Sections
		t.skipped = layout.Skipped
	}

	if len(t.points) == 0 {
		return fmt.Errorf("track %s: %w", t.Name, ErrNoPoints)
	}
	sections, err := NormalizeSections(t.sections, len(t.points))
	if err != nil {
		Logf("track %s: sections rejected: %v", t.Name, err)
		return fmt.Errorf("track %s: %w", t.Name, err)
	}
	frames := propagate(t.points, sections)

	rotations := make([]mathutil.Quat, len(frames.Rotations))
	for i, m := range frames.Rotations {
		rotations[i] = mathutil.Mat3ToQuat(m)
	}

	t.sections = sections
	t.frames = frames
	t.rotations = rotations
	t.status = Initialized
	return nil
}

func (t *Track) Status() Status { return t.status }

// Ready reports whether dependents may use the track. Poll it each tick.
func (t *Track) Ready() bool { return t.status == Initialized }

// Len returns the number of points (and rails).
func (t *Track) Len() int { return len(t.points) }

// Point returns point i. It panics when i is out of range.
func (t *Track) Point(i int) mathutil.Vec3 { return t.points[i] }

// Rotation returns the final orientation of rail i.
func (t *Track) Rotation(i int) mathutil.Quat { return t.rotations[i] }

// Points returns the path. The slice is shared; do not modify it.
func (t *Track) Points() []mathutil.Vec3 { return t.points }

// Sections returns the normalized sections once initialized.
func (t *Track) Sections() []Section { return t.sections }

// Frames returns the orientation layers, or nil before Init succeeds.
func (t *Track) Frames() *Frames { return t.frames }

// Rotations returns Frames.Rotations as quaternions.
func (t *Track) Rotations() []mathutil.Quat { return t.rotations }

// Skipped lists tokens ignored during the build.
func (t *Track) Skipped() []*InvalidTokenError { return t.skipped }

// Closed reports whether the last point coincides with the first.
func (t *Track) Closed() bool {
	n := len(t.points)
	if n < 2 {
		return false
	}
	return mathutil.Near(t.points[0], t.points[n-1], closeTolerance)
}

// Spans returns the rail range of every section.
func (t *Track) Spans() []Span {
	return Spans(t.sections, len(t.points))
}
