package mathutil

import "math"

// World axes. Y is up; a right-handed frame puts +Z to the right of a
// traveller heading along +X.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// WrapAngle maps a to (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDist returns the shortest angular distance between two angles in radians (0–π).
func AngleDist(a, b float64) float64 {
	return math.Abs(WrapAngle(a - b))
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
