package trackmesh

import (
	"image/color"
	"math"

	"trackgen/internal/mathutil"
	"trackgen/internal/track"
)

var (
	SleeperColor = color.NRGBA{R: 112, G: 82, B: 58, A: 255}
	RailColor    = color.NRGBA{R: 168, G: 170, B: 180, A: 255}
)

// Tri is a flat-coloured triangle over Mesh.Verts.
type Tri struct {
	VI    [3]int
	Color color.NRGBA
}

// Mesh is an indexed triangle soup in world space.
type Mesh struct {
	Verts []mathutil.Vec3
	Tris  []Tri
}

// Bounds returns the axis-aligned extent of the mesh. An empty mesh
// returns zero vectors.
func (m *Mesh) Bounds() (lo, hi mathutil.Vec3) {
	if len(m.Verts) == 0 {
		return
	}
	lo = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Verts {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], v[k])
			hi[k] = math.Max(hi[k], v[k])
		}
	}
	return lo, hi
}

func (m *Mesh) quad(a, b, c, d int, col color.NRGBA) {
	m.Tris = append(m.Tris, Tri{VI: [3]int{a, b, c}, Color: col}, Tri{VI: [3]int{a, c, d}, Color: col})
}

// Box appends an oriented box with the given half extents.
func (m *Mesh) Box(center mathutil.Vec3, rot mathutil.Mat3, half mathutil.Vec3, col color.NRGBA) {
	base := len(m.Verts)
	for i := 0; i < 8; i++ {
		local := mathutil.Vec3{half[0], half[1], half[2]}
		if i&1 != 0 {
			local[0] = -local[0]
		}
		if i&2 != 0 {
			local[1] = -local[1]
		}
		if i&4 != 0 {
			local[2] = -local[2]
		}
		m.Verts = append(m.Verts, center.Add(rot.Mul3x1(local)))
	}
	faces := [6][4]int{
		{0, 2, 6, 4}, {1, 5, 7, 3}, // ±x
		{0, 4, 5, 1}, {2, 3, 7, 6}, // ±y
		{0, 1, 3, 2}, {4, 6, 7, 5}, // ±z
	}
	for _, f := range faces {
		m.quad(base+f[0], base+f[1], base+f[2], base+f[3], col)
	}
}

// tube appends a square-section prism along a rail.
func (m *Mesh) tube(r Rail, radius float64, col color.NRGBA) {
	if len(r.Points) < 2 {
		return
	}
	base := len(m.Verts)
	for i, p := range r.Points {
		up := mathutil.Up(r.Frames[i]).Mul(radius)
		side := mathutil.Side(r.Frames[i]).Mul(radius)
		m.Verts = append(m.Verts, p.Add(up), p.Add(side), p.Sub(up), p.Sub(side))
	}
	for i := 0; i+1 < len(r.Points); i++ {
		a, b := base+4*i, base+4*(i+1)
		for k := 0; k < 4; k++ {
			k2 := (k + 1) % 4
			m.quad(a+k, a+k2, b+k2, b+k, col)
		}
	}
}

// Build assembles ties and rails into one mesh.
func Build(t *track.Track) (*Mesh, error) {
	sleepers, err := Sleepers(t)
	if err != nil {
		return nil, err
	}
	plus, minus, err := RailPaths(t)
	if err != nil {
		return nil, err
	}

	m := &Mesh{}
	half := mathutil.Vec3{SleeperWidth / 2, SleeperHeight / 2, SleeperDepth / 2}
	for _, s := range sleepers {
		m.Box(s.Position, s.Rotation, half, SleeperColor)
	}
	m.tube(plus, RailRadius, RailColor)
	m.tube(minus, RailRadius, RailColor)
	return m, nil
}
