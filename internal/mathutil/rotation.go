package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	return mgl64.Rotate3DX(a)
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	return mgl64.Rotate3DY(a)
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	return mgl64.Rotate3DZ(a)
}

// RotAxis returns a rotation of a radians about axis (right-hand rule).
// A degenerate axis yields the identity.
func RotAxis(axis Vec3, a float64) Mat3 {
	n := Normalize(axis)
	if IsZero(n) {
		return Mat3Identity()
	}
	return mgl64.HomogRotate3D(a, n).Mat3()
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}
