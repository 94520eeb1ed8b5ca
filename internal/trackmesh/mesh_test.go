package trackmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackgen/internal/mathutil"
	"trackgen/internal/track"
)

func straightTrack(t *testing.T) *track.Track {
	t.Helper()
	tr := track.New("straight", []string{"s"}, nil, track.BuildOptions{StraightPoints: 20})
	require.NoError(t, tr.Init())
	return tr
}

func squareTrack(t *testing.T) *track.Track {
	t.Helper()
	var points []mathutil.Vec3
	p := mathutil.Vec3{}
	for _, d := range []mathutil.Vec3{{1, 0, 0}, {0, 0, 1}, {-1, 0, 0}, {0, 0, -1}} {
		for i := 0; i < 8; i++ {
			points = append(points, p)
			p = p.Add(d.Mul(track.RailSpacing))
		}
	}
	points = append(points, p)
	tr := track.FromPoints("square", points, []track.Section{{Start: 0}})
	require.NoError(t, tr.Init())
	require.True(t, tr.Closed())
	return tr
}

func TestNotReady(t *testing.T) {
	tr := track.New("pending", []string{"s"}, nil, track.BuildOptions{})
	_, err := Sleepers(tr)
	assert.ErrorIs(t, err, track.ErrNotInitialized)
	_, _, err = RailPaths(tr)
	assert.ErrorIs(t, err, track.ErrNotInitialized)
	_, err = Build(tr)
	assert.ErrorIs(t, err, track.ErrNotInitialized)
}

func TestSleepersOnFlatStraight(t *testing.T) {
	tr := straightTrack(t)
	sleepers, err := Sleepers(tr)
	require.NoError(t, err)
	require.Len(t, sleepers, tr.Len()-1)

	for i, s := range sleepers {
		want := tr.Point(i).Sub(mathutil.Vec3{0, SleeperDrop, 0})
		assert.True(t, mathutil.Near(want, s.Position, 1e-12), "sleeper %d at %v", i, s.Position)
	}
}

func TestRailsStraddlePath(t *testing.T) {
	tr := straightTrack(t)
	plus, minus, err := RailPaths(tr)
	require.NoError(t, err)
	require.Len(t, plus.Points, tr.Len()-1)
	require.Len(t, minus.Points, tr.Len()-1)

	for i := range plus.Points {
		p := tr.Point(i)
		assert.True(t, mathutil.Near(p.Add(mathutil.Vec3{0, -RailDrop, RailGauge}), plus.Points[i], 1e-12))
		assert.True(t, mathutil.Near(p.Add(mathutil.Vec3{0, -RailDrop, -RailGauge}), minus.Points[i], 1e-12))
		assert.InDelta(t, 2*RailGauge, plus.Points[i].Sub(minus.Points[i]).Len(), 1e-12)
	}
}

func TestRailsCloseLoop(t *testing.T) {
	tr := squareTrack(t)
	plus, minus, err := RailPaths(tr)
	require.NoError(t, err)
	require.Len(t, plus.Points, tr.Len())
	assert.Equal(t, plus.Points[0], plus.Points[len(plus.Points)-1])
	assert.Equal(t, minus.Points[0], minus.Points[len(minus.Points)-1])
}

func TestBuildCounts(t *testing.T) {
	tr := straightTrack(t)
	m, err := Build(tr)
	require.NoError(t, err)

	ties := tr.Len() - 1
	railVerts := ties
	assert.Len(t, m.Verts, 8*ties+2*4*railVerts)
	assert.Len(t, m.Tris, 12*ties+2*8*(railVerts-1))
	for _, tri := range m.Tris {
		for _, vi := range tri.VI {
			require.Less(t, vi, len(m.Verts))
		}
	}

	lo, hi := m.Bounds()
	assert.InDelta(t, -SleeperDepth/2, lo[2], 1e-9)
	assert.InDelta(t, SleeperDepth/2, hi[2], 1e-9)
	assert.InDelta(t, track.DefaultHeight-RailDrop+RailRadius, hi[1], 1e-9)
}

func TestEmptyMeshBounds(t *testing.T) {
	lo, hi := (&Mesh{}).Bounds()
	assert.Equal(t, mathutil.Vec3{}, lo)
	assert.Equal(t, mathutil.Vec3{}, hi)
}
