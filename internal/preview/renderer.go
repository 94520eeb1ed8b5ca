// Package preview renders track meshes to images with a small software
// rasterizer and encodes them as WebP, PNG or TGA.
package preview

import (
	"fmt"
	"image"
	"math"

	"trackgen/internal/mathutil"
	"trackgen/internal/trackmesh"
)

// ViewMatrix returns the world-to-view rotation for a named view. View
// space has X to the right, Y up the image and Z towards the camera.
func ViewMatrix(name string) (mathutil.Mat3, error) {
	switch name {
	case "top", "":
		// Look straight down; world -Z is up the image.
		return mathutil.RotX(math.Pi / 2), nil
	case "iso":
		return mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(35.264)), mathutil.RotY(mathutil.Deg2Rad(45))), nil
	}
	return mathutil.Mat3{}, fmt.Errorf("preview: unknown view %q", name)
}

// Camera is an orthographic projection onto a square image.
type Camera struct {
	View   mathutil.Mat3
	Center mathutil.Vec3 // view-space point mapped to the image centre
	Scale  float64       // pixels per world unit
	Size   int
}

// FitCamera frames the mesh in a size×size image with a margin.
func FitCamera(m *trackmesh.Mesh, view mathutil.Mat3, size int) Camera {
	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Verts {
		tv := view.Mul3x1(v)
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], tv[k])
			hi[k] = math.Max(hi[k], tv[k])
		}
	}
	if len(m.Verts) == 0 {
		lo, hi = mathutil.Vec3{}, mathutil.Vec3{}
	}

	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	margin := size / 32
	return Camera{
		View:   view,
		Center: lo.Add(hi).Mul(0.5),
		Scale:  float64(size-2*margin) / span,
		Size:   size,
	}
}

// Supersampled returns the camera scaled for rendering at n× resolution.
func (c Camera) Supersampled(n int) Camera {
	if n <= 1 {
		return c
	}
	c.Scale *= float64(n)
	c.Size *= n
	return c
}

// Project maps a world point to screen x, y and depth.
func (c Camera) Project(v mathutil.Vec3) (x, y, z float64) {
	t := c.View.Mul3x1(v)
	half := float64(c.Size) / 2
	return (t[0]-c.Center[0])*c.Scale + half, -(t[1]-c.Center[1])*c.Scale + half, t[2]
}

// Render draws the meshes in order into one image of cam.Size pixels.
func Render(cam Camera, meshes ...*trackmesh.Mesh) *image.NRGBA {
	fb := NewFrameBuffer(cam.Size, cam.Size)
	lc := DefaultLightConfig()

	for _, m := range meshes {
		if m == nil || len(m.Verts) == 0 {
			continue
		}
		n := len(m.Verts)
		px := make([]float64, n)
		py := make([]float64, n)
		pz := make([]float64, n)
		for i, v := range m.Verts {
			px[i], py[i], pz[i] = cam.Project(v)
		}

		for _, tri := range m.Tris {
			a, b, c := m.Verts[tri.VI[0]], m.Verts[tri.VI[1]], m.Verts[tri.VI[2]]
			normal := cam.View.Mul3x1(b.Sub(a).Cross(c.Sub(a)))
			if normal.Len() < 1e-12 {
				continue
			}
			RasterizeTriangle(fb, px, py, pz, tri.VI, normal.Normalize(), tri.Color, &lc)
		}
	}
	return fb.Image()
}

// RenderMesh fits a camera to m and renders it at size×supersample pixels.
// Callers downsample the result to size.
func RenderMesh(m *trackmesh.Mesh, view mathutil.Mat3, size, supersample int) *image.NRGBA {
	cam := FitCamera(m, view, size).Supersampled(supersample)
	return Render(cam, m)
}
