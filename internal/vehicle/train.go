package vehicle

import (
	"fmt"

	"trackgen/internal/track"
)

const (
	// DefaultCarOffset is the spacing between cars, in rails.
	DefaultCarOffset = 40.0
	// FrontWheelOffset places the front bogie ahead of the locomotive body,
	// in rails (5.325 m).
	FrontWheelOffset = 5.325 / track.RailSpacing
)

// Car is a trailing body Offset rails behind the locomotive.
type Car struct {
	Offset float64
}

// Train is a locomotive with its front wheels and trailing cars.
type Train struct {
	Loco *Locomotive
	Cars []Car
}

// NewTrain returns a train with n cars spaced DefaultCarOffset apart.
func NewTrain(n int) *Train {
	t := &Train{Loco: NewLocomotive()}
	for i := 1; i <= n; i++ {
		t.Cars = append(t.Cars, Car{Offset: float64(i) * DefaultCarOffset})
	}
	return t
}

// Poses is one tick's placement of every body in the train.
type Poses struct {
	Step        Step
	Locomotive  Pose
	FrontWheels Pose
	Cars        []Pose
}

// Tick advances the train by dt seconds along p and places every body.
// It returns ErrNotReady and leaves the train untouched until p is built.
func (t *Train) Tick(p ReadyPath, dt float64) (*Poses, error) {
	if !p.Ready() {
		return nil, ErrNotReady
	}
	n := p.Len()
	t.Loco.UpdateSpeed(dt)

	step, err := Advance(t.Loco.PositionOnTrack, t.Loco.Speed/track.RailSpacing, dt, n)
	if err != nil {
		return nil, err
	}
	t.Loco.PositionOnTrack = step.ArcPos

	out := &Poses{Step: step, Cars: make([]Pose, 0, len(t.Cars))}
	if out.Locomotive, err = Sample(p, step); err != nil {
		return nil, err
	}
	if out.FrontWheels, err = SampleAt(p, step.ArcPos+FrontWheelOffset); err != nil {
		return nil, err
	}
	for i, c := range t.Cars {
		pose, err := SampleAt(p, Behind(step.ArcPos, c.Offset, n))
		if err != nil {
			return nil, fmt.Errorf("vehicle: car %d: %w", i, err)
		}
		out.Cars = append(out.Cars, pose)
	}
	return out, nil
}
