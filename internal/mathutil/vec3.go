package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 = mgl64.Vec3

// Normalize returns v scaled to unit length, or the zero vector when v is
// too short to have a direction. mgl64's Normalize yields NaN in that case.
func Normalize(v Vec3) Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Lerp blends a towards b by t. t is not clamped.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// Near reports whether a and b are within eps of each other on every axis.
func Near(a, b Vec3, eps float64) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func IsZero(v Vec3) bool {
	return v == Vec3{}
}
