package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Quat is a rotation quaternion (W + V).
type Quat = mgl64.Quat

// Mat3ToQuat converts a rotation matrix to a unit quaternion.
func Mat3ToQuat(m Mat3) Quat {
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// QuatToMat3 converts a quaternion to a 3×3 rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	return q.Normalize().Mat4().Mat3()
}

// Slerp interpolates along the shorter arc between a and b.
// t outside [0, 1] extrapolates.
func Slerp(a, b Quat, t float64) Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t)
}

// SameOrientation compares rotations, treating q and -q as equal.
func SameOrientation(a, b Quat, eps float64) bool {
	return a.OrientationEqualThreshold(b, eps)
}
