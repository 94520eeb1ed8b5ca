package track

import (
	"math"

	"trackgen/internal/mathutil"
)

// Frames holds the per-rail orientation layers of a track, index-aligned
// with its points. Rail i runs from point i to point (i+1) mod N.
type Frames struct {
	Rotations          []mathutil.Mat3 // carriage frame turned by theta
	CarriageRotations  []mathutil.Mat3 // track frame leaned by phi
	PassengerRotations []mathutil.Mat3 // theta about world up, no lean
	Directions         []mathutil.Vec3 // unit rail direction

	Swivel []float64 // yaw of the rail
	Tilt   []float64 // pitch of the rail
	Lean   []float64 // phi
	Turn   []float64 // theta
}

// Len returns the number of rails.
func (f *Frames) Len() int {
	return len(f.Rotations)
}

// modulation is one angle channel (lean or turn) across a span. Exactly
// one of wave or twist mode applies.
type modulation struct {
	initial   float64
	final     float64
	twists    float64
	waves     float64
	waveAngle float64
}

func leanModulation(sp Span) modulation {
	return modulation{
		initial:   sp.From.Lean,
		final:     sp.To.Lean,
		twists:    sp.From.LeanTwists,
		waves:     sp.From.LeanWaves,
		waveAngle: sp.From.LeanWaveAngle,
	}.resolve()
}

func turnModulation(sp Span) modulation {
	return modulation{
		initial:   sp.From.Turn,
		final:     sp.To.Turn,
		twists:    sp.From.TurnTwists,
		waves:     sp.From.TurnWaves,
		waveAngle: sp.From.TurnWaveAngle,
	}.resolve()
}

// resolve settles a section that asks for both waves and twists: waves win
// unless their amplitude is zero.
func (m modulation) resolve() modulation {
	if m.waves > 0 && m.twists != 0 {
		if m.waveAngle == 0 {
			m.waves = 0
		} else {
			m.twists = 0
		}
	}
	return m
}

func (m modulation) waving() bool {
	return m.waves > 0
}

// twistStep is the per-rail increment in twist mode. Over nbRails rails it
// reaches final plus the requested full rotations.
func (m modulation) twistStep(nbRails int) float64 {
	return (m.final + 2*m.twists*math.Pi - m.initial) / float64(nbRails)
}

// wave returns the angle at rail k of nbRails. Single-rail spans hold the
// initial angle.
func (m modulation) wave(k, nbRails int) float64 {
	if nbRails < 2 {
		return m.initial
	}
	steps := float64(nbRails - 1)
	grad := (m.final - m.initial) / steps
	return m.initial + float64(k)*grad + m.waveAngle*math.Sin(float64(k)*m.waves*math.Pi/steps)
}

// railAngles computes swivel (yaw) and tilt (pitch) of a unit rail direction.
func railAngles(dir mathutil.Vec3) (swivel, tilt float64) {
	swivel = -math.Atan2(dir[2], dir[0])
	tilt = math.Atan2(math.Abs(dir[1]), math.Abs(dir[0])) * mathutil.Sign(dir[1])
	return swivel, tilt
}

// trackFrame pitches the rail by tilt about local Z, then yaws it by swivel
// about world Y, so the frame's forward axis follows the rail.
func trackFrame(swivel, tilt float64) mathutil.Mat3 {
	return mathutil.Mat3Mul(mathutil.RotY(swivel), mathutil.RotZ(tilt))
}

// Propagate walks the path rail by rail and computes the orientation
// layers for every rail. Sections are normalized first, so ordering errors
// surface here.
func Propagate(points []mathutil.Vec3, sections []Section) (*Frames, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrNoPoints
	}
	prepared, err := NormalizeSections(sections, n)
	if err != nil {
		return nil, err
	}
	return propagate(points, prepared), nil
}

// propagate computes frames over already normalized sections.
func propagate(points []mathutil.Vec3, prepared []Section) *Frames {
	n := len(points)
	f := &Frames{
		Rotations:          make([]mathutil.Mat3, 0, n),
		CarriageRotations:  make([]mathutil.Mat3, 0, n),
		PassengerRotations: make([]mathutil.Mat3, 0, n),
		Directions:         make([]mathutil.Vec3, 0, n),
		Swivel:             make([]float64, 0, n),
		Tilt:               make([]float64, 0, n),
		Lean:               make([]float64, 0, n),
		Turn:               make([]float64, 0, n),
	}

	prevDir := mathutil.AxisX
	for _, sp := range Spans(prepared, n) {
		prevDir = f.appendSpan(points, sp, prevDir)
	}
	return f
}

func (f *Frames) appendSpan(points []mathutil.Vec3, sp Span, prevDir mathutil.Vec3) mathutil.Vec3 {
	nbRails := sp.Rails()
	if nbRails <= 0 {
		return prevDir
	}
	n := len(points)

	lean := leanModulation(sp)
	turn := turnModulation(sp)
	leanStep := lean.twistStep(nbRails)
	turnStep := turn.twistStep(nbRails)
	phi, theta := lean.initial, turn.initial

	for k, i := 0, sp.Start; i < sp.End; k, i = k+1, i+1 {
		dir := mathutil.Normalize(points[(i+1)%n].Sub(points[i]))
		if mathutil.IsZero(dir) {
			// Duplicated point, e.g. a loop whose last point repeats the first.
			dir = prevDir
		}
		prevDir = dir

		swivel, tilt := railAngles(dir)
		frame := trackFrame(swivel, tilt)

		if lean.waving() {
			phi = lean.wave(k, nbRails)
		} else {
			phi += leanStep
		}
		if turn.waving() {
			theta = turn.wave(k, nbRails)
		} else {
			theta += turnStep
		}

		leanRot := mathutil.RotAxis(dir, phi)
		carriage := mathutil.Mat3Mul(leanRot, frame)
		normal := mathutil.Up(carriage)
		final := mathutil.Mat3Mul(mathutil.RotAxis(normal, theta), carriage)

		f.Rotations = append(f.Rotations, final)
		f.CarriageRotations = append(f.CarriageRotations, carriage)
		f.PassengerRotations = append(f.PassengerRotations, mathutil.RotAxis(mathutil.AxisY, theta))
		f.Directions = append(f.Directions, dir)
		f.Swivel = append(f.Swivel, swivel)
		f.Tilt = append(f.Tilt, tilt)
		f.Lean = append(f.Lean, phi)
		f.Turn = append(f.Turn, theta)
	}
	return prevDir
}
