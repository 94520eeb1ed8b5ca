package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackgen/internal/mathutil"
)

func flatLine(n int) []mathutil.Vec3 {
	return straightRun(mathutil.Vec3{}, mathutil.AxisX, n)
}

func TestPropagateOneFramePerRail(t *testing.T) {
	layout, err := BuildLayout([]string{"s", "l", "r", "l", "s"}, nil, BuildOptions{})
	require.NoError(t, err)

	f, err := Propagate(layout.Points, layout.Sections)
	require.NoError(t, err)
	n := len(layout.Points)
	assert.Equal(t, 515, n)
	assert.Len(t, f.Rotations, n)
	assert.Len(t, f.CarriageRotations, n)
	assert.Len(t, f.PassengerRotations, n)
	assert.Len(t, f.Directions, n)
	assert.Len(t, f.Lean, n)
	for i, m := range f.Rotations {
		require.True(t, mathutil.IsRotation(m, 1e-9), "rail %d", i)
	}
}

func TestPropagateNoPoints(t *testing.T) {
	_, err := Propagate(nil, nil)
	assert.ErrorIs(t, err, ErrNoPoints)
}

func TestPropagateOrderError(t *testing.T) {
	quietLogs(t)
	_, err := Propagate(flatLine(100), []Section{{Start: 0}, {Start: 50}, {Start: 30}})
	var order *SectionOrderError
	assert.ErrorAs(t, err, &order)
}

func TestFlatStraightIsIdentity(t *testing.T) {
	f, err := Propagate(flatLine(20), nil)
	require.NoError(t, err)
	// The final rail wraps back to point 0; skip it.
	for i := 0; i < 19; i++ {
		assert.True(t, f.Rotations[i].ApproxEqualThreshold(mathutil.Mat3Identity(), 1e-12), "rail %d", i)
	}
}

func TestForwardAxisFollowsRail(t *testing.T) {
	layout, err := BuildLayout([]string{"s", "r", "l"}, nil, BuildOptions{})
	require.NoError(t, err)
	f, err := Propagate(layout.Points, layout.Sections)
	require.NoError(t, err)

	for i := 0; i < len(layout.Points)-1; i++ {
		want := mathutil.Normalize(layout.Points[i+1].Sub(layout.Points[i]))
		if mathutil.IsZero(want) {
			// A curve repeats the point it starts from.
			want = f.Directions[i-1]
		}
		assert.True(t, mathutil.Near(f.Directions[i], want, 1e-12), "rail %d", i)
		assert.True(t, mathutil.Near(mathutil.Forward(f.Rotations[i]), want, 1e-9), "rail %d", i)
		assert.True(t, mathutil.Near(mathutil.Up(f.Rotations[i]), mathutil.AxisY, 1e-9), "rail %d stays upright", i)
	}
}

func TestTiltPitchesAlongSlope(t *testing.T) {
	dir := mathutil.Normalize(mathutil.Vec3{1, 0.25, 0})
	points := straightRun(mathutil.Vec3{}, dir, 10)

	f, err := Propagate(points, nil)
	require.NoError(t, err)
	assert.InDelta(t, math.Atan2(0.25, 1), f.Tilt[0], 1e-12)
	assert.True(t, mathutil.Near(mathutil.Forward(f.Rotations[0]), dir, 1e-9))

	down := straightRun(mathutil.Vec3{}, mathutil.Vec3{dir[0], -dir[1], 0}, 10)
	f, err = Propagate(down, nil)
	require.NoError(t, err)
	assert.Less(t, f.Tilt[0], 0.0)
}

func TestLeanTwistRoundTrip(t *testing.T) {
	sections := []Section{{Start: 0, Options: SectionOptions{LeanTwists: 1}}}
	f, err := Propagate(flatLine(100), sections)
	require.NoError(t, err)
	require.Len(t, f.Lean, 100)

	step := 2 * math.Pi / 100
	assert.InDelta(t, step, f.Lean[0], 1e-12)
	for i := 1; i < 100; i++ {
		assert.InDelta(t, step, f.Lean[i]-f.Lean[i-1], 1e-12, "rail %d", i)
	}
	assert.InDelta(t, 0, mathutil.WrapAngle(f.Lean[99]), 1e-9)
	assert.Equal(t, make([]float64, 100), f.Turn)
}

func TestLeanInterpolatesBetweenSections(t *testing.T) {
	sections := []Section{
		{Start: 0, Options: SectionOptions{Lean: 0}},
		{Start: 50, Options: SectionOptions{Lean: 1}},
	}
	f, err := Propagate(flatLine(100), sections)
	require.NoError(t, err)

	assert.InDelta(t, 1.0/50, f.Lean[0], 1e-12)
	assert.InDelta(t, 1.0, f.Lean[49], 1e-12)
	// The last section keeps its own lean.
	for i := 50; i < 100; i++ {
		assert.InDelta(t, 1.0, f.Lean[i], 1e-12)
	}
}

func TestLeanWave(t *testing.T) {
	sections := []Section{{Start: 0, Options: SectionOptions{LeanWaves: 1, LeanWaveAngle: 0.5}}}
	f, err := Propagate(flatLine(100), sections)
	require.NoError(t, err)

	assert.InDelta(t, 0, f.Lean[0], 1e-12)
	assert.InDelta(t, 0, f.Lean[99], 1e-12)
	assert.InDelta(t, 0.5*math.Sin(49*math.Pi/99), f.Lean[49], 1e-12)
	for _, phi := range f.Lean {
		assert.GreaterOrEqual(t, phi, -1e-12)
		assert.LessOrEqual(t, phi, 0.5+1e-12)
	}
}

func TestWaveTwistPrecedence(t *testing.T) {
	tests := []struct {
		name string
		opts SectionOptions
		last float64
	}{
		{"waves win", SectionOptions{LeanWaves: 2, LeanWaveAngle: 0.3, LeanTwists: 1}, 0},
		{"zero amplitude lets twists win", SectionOptions{LeanWaves: 2, LeanTwists: 1}, 2 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Propagate(flatLine(50), []Section{{Start: 0, Options: tt.opts}})
			require.NoError(t, err)
			assert.InDelta(t, tt.last, f.Lean[49], 1e-9)
		})
	}

	// Turn follows the same rule, independently of lean.
	opts := SectionOptions{TurnWaves: 1, TurnWaveAngle: 0.2, TurnTwists: 3, LeanTwists: 1}
	f, err := Propagate(flatLine(50), []Section{{Start: 0, Options: opts}})
	require.NoError(t, err)
	assert.InDelta(t, 0, f.Turn[49], 1e-9)
	assert.InDelta(t, 2*math.Pi, f.Lean[49], 1e-9)
}

func TestSingleRailSectionIsGuarded(t *testing.T) {
	opts := SectionOptions{Lean: 0.4, LeanWaves: 1, LeanWaveAngle: 1, TurnWaves: 3, TurnWaveAngle: 1}
	sections := []Section{{Start: 0}, {Start: 99, Options: opts}}
	f, err := Propagate(flatLine(100), sections)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, f.Lean[99], 1e-12)
	assert.InDelta(t, 0, f.Turn[99], 1e-12)
	for _, m := range f.Rotations {
		for _, v := range m {
			require.False(t, math.IsNaN(v))
		}
	}
}

func TestConstantLeanRollsCarriage(t *testing.T) {
	sections := []Section{{Start: 0, Options: SectionOptions{Lean: 0.3}}}
	f, err := Propagate(flatLine(10), sections)
	require.NoError(t, err)

	up := mathutil.Up(f.CarriageRotations[3])
	assert.InDelta(t, 0.3, math.Acos(up.Dot(mathutil.AxisY)), 1e-9)
	assert.True(t, mathutil.Near(mathutil.Forward(f.CarriageRotations[3]), mathutil.AxisX, 1e-12))
	// Lean alone leaves the final frame equal to the carriage frame.
	assert.True(t, f.Rotations[3].ApproxEqualThreshold(f.CarriageRotations[3], 1e-12))
}

func TestTurnAndPassengerFrames(t *testing.T) {
	sections := []Section{{Start: 0, Options: SectionOptions{Lean: 0.5, Turn: 0.7}}}
	f, err := Propagate(flatLine(10), sections)
	require.NoError(t, err)

	carriage, final := f.CarriageRotations[2], f.Rotations[2]
	// Turning is about the leaned normal, so that normal is preserved.
	assert.True(t, mathutil.Near(mathutil.Up(final), mathutil.Up(carriage), 1e-9))
	assert.InDelta(t, 0.7, math.Acos(mathutil.Forward(final).Dot(mathutil.Forward(carriage))), 1e-9)

	// Passengers yaw with the turn but never roll.
	p := f.PassengerRotations[2]
	assert.True(t, mathutil.Near(mathutil.Up(p), mathutil.AxisY, 1e-12))
	assert.True(t, p.ApproxEqualThreshold(mathutil.RotY(0.7), 1e-12))
}

func TestZeroLengthRailReusesDirection(t *testing.T) {
	points := flatLine(10)
	points = append(points, points[9]) // duplicate
	f, err := Propagate(points, nil)
	require.NoError(t, err)
	assert.Equal(t, f.Directions[8], f.Directions[9])
	for _, d := range f.Directions {
		assert.InDelta(t, 1.0, d.Len(), 1e-12)
	}
}
