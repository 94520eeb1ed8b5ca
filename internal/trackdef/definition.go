// Package trackdef reads track definitions from JSON and builds tracks
// from them.
package trackdef

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"trackgen/internal/track"
)

var ErrNoTokens = errors.New("trackdef: definition has no tokens")

// Definition is the on-disk form of a track.
//
//	{
//	  "name": "figure",
//	  "tokens": ["s", "r", "r", "s"],
//	  "straight_points": 100,
//	  "height": 0.5,
//	  "loop": false,
//	  "sections": {"1": {"lean": 0.4, "lean_waves": 2, "lean_wave_angle": 0.2}}
//	}
type Definition struct {
	Name           string                          `json:"name"`
	Tokens         []string                        `json:"tokens"`
	StraightPoints int                             `json:"straight_points,omitempty"`
	Height         *float64                        `json:"height,omitempty"`
	Loop           bool                            `json:"loop,omitempty"`
	Sections       map[string]track.SectionOptions `json:"sections,omitempty"`

	Path string `json:"-"` // file the definition was read from, if any
}

// Default is the layout used when no definition is given.
func Default() Definition {
	return Definition{
		Name:   "default",
		Tokens: []string{"straight", "left", "right", "left", "straight"},
	}
}

// Validate checks the definition without building it.
func (d Definition) Validate() error {
	if len(d.Tokens) == 0 {
		return fmt.Errorf("%w: %s", ErrNoTokens, d.label())
	}
	if d.StraightPoints < 0 || d.StraightPoints == 1 {
		return fmt.Errorf("trackdef: %s: straight_points must be 0 or >= 2, got %d", d.label(), d.StraightPoints)
	}
	_, err := d.overrides()
	return err
}

func (d Definition) label() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Path != "" {
		return d.Path
	}
	return "<unnamed>"
}

// overrides converts the string-keyed sections map into section indices.
func (d Definition) overrides() (map[int]track.SectionOptions, error) {
	if len(d.Sections) == 0 {
		return nil, nil
	}
	out := make(map[int]track.SectionOptions, len(d.Sections))
	for key, opts := range d.Sections {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("trackdef: %s: section key %q is not a section index", d.label(), key)
		}
		out[idx] = opts
	}
	return out, nil
}

// SectionIndices returns the overridden section indices in order.
func (d Definition) SectionIndices() []int {
	o, _ := d.overrides()
	idx := make([]int, 0, len(o))
	for i := range o {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Track returns an uninitialized track for the definition.
func (d Definition) Track() (*track.Track, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	overrides, _ := d.overrides()
	opts := track.BuildOptions{StraightPoints: d.StraightPoints, Loop: d.Loop}
	if d.Height != nil {
		opts.Height = *d.Height
		opts.UseHeight = true
	}
	return track.New(d.Name, d.Tokens, overrides, opts), nil
}

// Build returns an initialized track.
func (d Definition) Build() (*track.Track, error) {
	t, err := d.Track()
	if err != nil {
		return nil, err
	}
	if err := t.Init(); err != nil {
		return nil, err
	}
	return t, nil
}
