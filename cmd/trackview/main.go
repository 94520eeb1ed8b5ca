package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"trackgen/internal/mathutil"
	"trackgen/internal/preview"
	"trackgen/internal/track"
	"trackgen/internal/trackdef"
	"trackgen/internal/trackmesh"
	"trackgen/internal/vehicle"
)

const (
	WindowSize = 800
	TickRate   = 60
)

var (
	ColorLoco  = color.RGBA{60, 120, 220, 255}
	ColorCar   = color.RGBA{170, 170, 170, 255}
	ColorWheel = color.RGBA{255, 200, 0, 255}
	ColorPanel = color.RGBA{0, 0, 0, 180}
)

type Game struct {
	Track *track.Track
	Train *vehicle.Train
	View  mathutil.Mat3

	cam        preview.Camera
	background *ebiten.Image
	poses      *vehicle.Poses
	err        error
	paused     bool
}

func (g *Game) Update() error {
	// The track is built on the first tick; everything else waits for it.
	if g.Track.Status() == track.NotInitialized {
		if err := g.Track.Init(); err != nil {
			g.err = err
		}
	}
	if !g.Track.Ready() {
		return nil
	}
	if g.background == nil {
		if err := g.prepare(); err != nil {
			g.err = err
			return nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	switch {
	case ebiten.IsKeyPressed(ebiten.KeyW):
		g.Train.Loco.Direction = vehicle.Forward
	case ebiten.IsKeyPressed(ebiten.KeyS):
		g.Train.Loco.Direction = vehicle.Backward
	case ebiten.IsKeyPressed(ebiten.KeySpace):
		g.Train.Loco.Direction = vehicle.Stop
	default:
		g.Train.Loco.Direction = vehicle.Neutral
	}

	poses, err := g.Train.Tick(g.Track, 1.0/TickRate)
	if err != nil {
		g.err = err
		return nil
	}
	g.poses = poses
	return nil
}

func (g *Game) prepare() error {
	mesh, err := trackmesh.Build(g.Track)
	if err != nil {
		return err
	}
	g.cam = preview.FitCamera(mesh, g.View, WindowSize)
	g.background = ebiten.NewImageFromImage(preview.Render(g.cam, mesh))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.background != nil {
		screen.DrawImage(g.background, nil)
	}

	if g.poses != nil {
		g.drawBody(screen, g.poses.Locomotive, 16.891, 6, ColorLoco)
		g.drawBody(screen, g.poses.FrontWheels, 2, 4, ColorWheel)
		for _, c := range g.poses.Cars {
			g.drawBody(screen, c, 16.891, 5, ColorCar)
		}
	}

	vector.FillRect(screen, 0, 0, 220, 110, ColorPanel, true)
	msg := fmt.Sprintf("TRACK %s\n", g.Track.Name)
	msg += fmt.Sprintf("Status:  %s\n", g.Track.Status())
	if g.err != nil {
		msg += fmt.Sprintf("Error: %v\n", g.err)
	}
	msg += fmt.Sprintf("Speed:   %.1f mph\n", g.Train.Loco.SpeedMPH())
	msg += fmt.Sprintf("Rail:    %.1f / %d\n", g.Train.Loco.PositionOnTrack, g.Track.Len())
	msg += fmt.Sprintf("Control: %s\n", g.Train.Loco.Direction)
	if g.paused {
		msg += " [PAUSED]"
	}
	msg += "\nW/S = drive, Space = brake, P = pause"
	ebitenutil.DebugPrint(screen, msg)
}

// drawBody strokes a body of the given length along its forward axis.
func (g *Game) drawBody(screen *ebiten.Image, p vehicle.Pose, length float64, width float32, clr color.Color) {
	fwd := mathutil.QuatToMat3(p.Rotation).Col(0).Mul(length / 2)
	x1, y1, _ := g.cam.Project(p.Position.Sub(fwd))
	x2, y2, _ := g.cam.Project(p.Position.Add(fwd))
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), width, clr, true)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return WindowSize, WindowSize
}

func main() {
	defPath := flag.String("def", "", "Track definition file (default: built-in layout)")
	viewName := flag.String("view", "top", "Camera: top or iso")
	cars := flag.Int("cars", 3, "Cars behind the locomotive")
	flag.Parse()

	def := trackdef.Default()
	if *defPath != "" {
		var err error
		if def, err = trackdef.Load(*defPath); err != nil {
			log.Fatal(err)
		}
	}
	tr, err := def.Track()
	if err != nil {
		log.Fatal(err)
	}
	view, err := preview.ViewMatrix(*viewName)
	if err != nil {
		log.Fatal(err)
	}

	game := &Game{Track: tr, Train: vehicle.NewTrain(*cars), View: view}

	ebiten.SetWindowSize(WindowSize, WindowSize)
	ebiten.SetWindowTitle("trackview - " + tr.Name)
	ebiten.SetTPS(TickRate)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
