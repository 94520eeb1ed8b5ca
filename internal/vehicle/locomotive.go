package vehicle

import "math"

// Direction is the driver's control input for one tick.
type Direction int

const (
	Neutral Direction = iota
	Forward
	Backward
	Stop
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Stop:
		return "stop"
	}
	return "neutral"
}

const (
	DefaultAcceleration = 5.0
	DefaultDeceleration = 10.0
	DefaultMaxSpeed     = 26.8224 // 60 mph in m/s

	mpsToMPH = 2.23694
)

// Locomotive is the leading body of a train. Speed is in metres per
// second; PositionOnTrack is an arc position in rails.
type Locomotive struct {
	PositionOnTrack float64
	Speed           float64
	PreviousSpeed   float64
	Acceleration    float64
	Deceleration    float64
	MaxSpeed        float64
	Direction       Direction
}

// NewLocomotive returns a stationary locomotive at rail 0.
func NewLocomotive() *Locomotive {
	return &Locomotive{
		Acceleration: DefaultAcceleration,
		Deceleration: DefaultDeceleration,
		MaxSpeed:     DefaultMaxSpeed,
	}
}

// UpdateSpeed applies the current Direction for dt seconds. Forward and
// Backward accelerate up to MaxSpeed in either sense, Stop brakes towards
// zero and Neutral coasts.
func (l *Locomotive) UpdateSpeed(dt float64) {
	l.PreviousSpeed = l.Speed
	switch l.Direction {
	case Forward:
		l.Speed = math.Min(l.Speed+l.Acceleration*dt, l.MaxSpeed)
	case Backward:
		l.Speed = math.Max(l.Speed-l.Acceleration*dt, -l.MaxSpeed)
	case Stop:
		brake := l.Deceleration * dt
		if math.Abs(l.Speed) <= brake {
			l.Speed = 0
		} else {
			l.Speed -= math.Copysign(brake, l.Speed)
		}
	}
}

// SpeedMPH returns the speed in miles per hour.
func (l *Locomotive) SpeedMPH() float64 {
	return l.Speed * mpsToMPH
}
