package track

import (
	"errors"
	"fmt"
)

var (
	ErrNoPoints       = errors.New("track: no points")
	ErrNotInitialized = errors.New("track: not initialized")
	ErrSectionRange   = errors.New("track: section start out of range")
	ErrBadOptions     = errors.New("track: invalid build options")
)

// SectionOrderError reports a section whose start precedes its predecessor's.
type SectionOrderError struct {
	Index     int // position of the offending section
	PrevStart int
	Start     int
}

func (e *SectionOrderError) Error() string {
	return fmt.Sprintf("track: section %d starts at %d, before previous start %d", e.Index, e.Start, e.PrevStart)
}

// InvalidTokenError reports an unrecognised section token. It is not fatal.
type InvalidTokenError struct {
	Position int
	Token    string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("track: invalid section token %q at position %d", e.Token, e.Position)
}

// DegenerateCurveError reports a section requested without a direction to
// continue from: a curve before two points exist, or a straight after
// exactly one.
type DegenerateCurveError struct {
	Position int
	Kind     Kind
	Points   int
}

func (e *DegenerateCurveError) Error() string {
	return fmt.Sprintf("track: %s section at position %d needs 2 prior points, have %d", e.Kind, e.Position, e.Points)
}
