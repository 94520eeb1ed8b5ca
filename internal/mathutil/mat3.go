package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Mat3 is a 3×3 matrix stored column-major (mgl64 layout).
// Frames act on column vectors: world = M × local.
type Mat3 = mgl64.Mat3

func Mat3Identity() Mat3 {
	return mgl64.Ident3()
}

// Mat3Mul returns a × b, i.e. b is applied first.
func Mat3Mul(a, b Mat3) Mat3 {
	return a.Mul3(b)
}

// Forward is the image of the local X axis (direction of travel).
func Forward(m Mat3) Vec3 {
	return m.Col(0)
}

// Up is the image of the local Y axis.
func Up(m Mat3) Vec3 {
	return m.Col(1)
}

// Side is the image of the local Z axis (binormal).
func Side(m Mat3) Vec3 {
	return m.Col(2)
}

// IsRotation checks orthonormality and a positive determinant.
func IsRotation(m Mat3, eps float64) bool {
	if !m.Mul3(m.Transpose()).ApproxEqualThreshold(mgl64.Ident3(), eps) {
		return false
	}
	return m.Det() > 0
}
