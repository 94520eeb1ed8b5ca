package track

import "trackgen/internal/mathutil"

// SectionOptions describe the carriage orientation at a section's first
// point and how it evolves up to the next section. Angles are radians.
type SectionOptions struct {
	Lean          float64 `json:"lean"`            // roll about the direction of travel
	LeanTwists    float64 `json:"lean_twists"`     // extra full lean rotations (+ve counter clockwise)
	LeanWaves     float64 `json:"lean_waves"`      // half-periods of lean oscillation
	LeanWaveAngle float64 `json:"lean_wave_angle"` // lean oscillation amplitude
	Turn          float64 `json:"turn"`            // yaw about the leaned upright
	TurnTwists    float64 `json:"turn_twists"`
	TurnWaves     float64 `json:"turn_waves"`
	TurnWaveAngle float64 `json:"turn_wave_angle"`
}

// Section marks the rail index where a new set of options takes effect.
type Section struct {
	Start   int            `json:"start"`
	Options SectionOptions `json:"options"`
}

// Span is the effective rail range [Start, End) of one section, with the
// options in force at both ends.
type Span struct {
	Section int
	Start   int
	End     int
	From    SectionOptions
	To      SectionOptions
}

// Rails returns the number of rails covered by the span.
func (s Span) Rails() int {
	return s.End - s.Start
}

// Kind is a recognised section token.
type Kind int

const (
	Straight Kind = iota
	Left
	Right
)

func (k Kind) String() string {
	switch k {
	case Straight:
		return "straight"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Layout is the raw output of the point builder.
type Layout struct {
	Points   []mathutil.Vec3
	Sections []Section
	Skipped  []*InvalidTokenError
}
