package preview

import (
	"image"
	"image/color"

	"trackgen/internal/mathutil"
	"trackgen/internal/postprocess"
	"trackgen/internal/track"
	"trackgen/internal/trackmesh"
	"trackgen/internal/vehicle"
)

var (
	LocomotiveColor = color.NRGBA{R: 40, G: 90, B: 160, A: 255}
	CarColor        = color.NRGBA{R: 102, G: 102, B: 102, A: 255}
	WheelColor      = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
)

// Body half extents: length along the rail, height, width.
var (
	bodyHalf  = mathutil.Vec3{16.891 / 2, 3.048 / 2, 3.2258 / 2}
	wheelHalf = mathutil.Vec3{1.0, 0.6, 1.4}
)

// TrainMesh returns boxes for every body placed in p.
func TrainMesh(p *vehicle.Poses) *trackmesh.Mesh {
	m := &trackmesh.Mesh{}
	m.Box(p.Locomotive.Position, mathutil.QuatToMat3(p.Locomotive.Rotation), bodyHalf, LocomotiveColor)
	m.Box(p.FrontWheels.Position, mathutil.QuatToMat3(p.FrontWheels.Rotation), wheelHalf, WheelColor)
	for _, c := range p.Cars {
		m.Box(c.Position, mathutil.QuatToMat3(c.Rotation), bodyHalf, CarColor)
	}
	return m
}

// Ride ticks train along t frames times, dt seconds apart, and renders
// each tick over the track mesh. Frames are downsampled from supersample.
func Ride(t *track.Track, train *vehicle.Train, view mathutil.Mat3, size, supersample, frames int, dt float64) ([]image.Image, error) {
	base, err := trackmesh.Build(t)
	if err != nil {
		return nil, err
	}
	cam := FitCamera(base, view, size).Supersampled(supersample)

	out := make([]image.Image, 0, frames)
	for i := 0; i < frames; i++ {
		poses, err := train.Tick(t, dt)
		if err != nil {
			return nil, err
		}
		img := Render(cam, base, TrainMesh(poses))
		if supersample > 1 {
			img = postprocess.Downsample(img, supersample)
		}
		out = append(out, img)
	}
	return out, nil
}
