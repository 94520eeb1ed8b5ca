package trackdef

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackgen/internal/track"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hill.json", `{
		"tokens": ["s", "r", "s"],
		"straight_points": 40,
		"height": 0,
		"sections": {"1": {"lean": 0.5, "turn_waves": 2, "turn_wave_angle": 0.1}}
	}`)

	d, err := Load(path)
	require.NoError(t, err)

	zero := 0.0
	want := Definition{
		Name:           "hill",
		Tokens:         []string{"s", "r", "s"},
		StraightPoints: 40,
		Height:         &zero,
		Sections:       map[string]track.SectionOptions{"1": {Lean: 0.5, TurnWaves: 2, TurnWaveAngle: 0.1}},
		Path:           path,
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{1}, d.SectionIndices())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, dir, "bad.json", `{"tokens": [`))
	assert.ErrorContains(t, err, "parse")

	_, err = Load(writeFile(t, dir, "empty.json", `{"name": "empty"}`))
	assert.ErrorIs(t, err, ErrNoTokens)

	_, err = Load(writeFile(t, dir, "key.json", `{"tokens": ["s"], "sections": {"first": {}}}`))
	assert.ErrorContains(t, err, `section key "first"`)

	_, err = Load(writeFile(t, dir, "points.json", `{"tokens": ["s"], "straight_points": 1}`))
	assert.ErrorContains(t, err, "straight_points")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"name": "beta", "tokens": ["s"]}`)
	writeFile(t, dir, "a.json", `{"name": "alpha", "tokens": ["s", "l"]}`)
	writeFile(t, dir, "nested/c.json", `{"tokens": ["s"]}`)
	writeFile(t, dir, "dup.json", `{"name": "alpha", "tokens": ["s"]}`)
	writeFile(t, dir, "broken.json", `nope`)
	writeFile(t, dir, "notes.txt", `ignored`)

	defs, errs := LoadDir(dir)
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"alpha", "beta", "c"}, names)
	assert.Len(t, errs, 2)
}

func TestLoadDirMissing(t *testing.T) {
	defs, errs := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Empty(t, defs)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
}

func TestDefaultBuild(t *testing.T) {
	tr, err := Default().Build()
	require.NoError(t, err)
	assert.True(t, tr.Ready())
	assert.Equal(t, 100+3*105+100, tr.Len())
	assert.Equal(t, "default", tr.Name)
}

func TestBuildOptions(t *testing.T) {
	h := 2.0
	d := Definition{
		Name:           "raised",
		Tokens:         []string{"s", "s"},
		StraightPoints: 10,
		Height:         &h,
		Loop:           true,
		Sections:       map[string]track.SectionOptions{"0": {Lean: 0.2}},
	}
	tr, err := d.Build()
	require.NoError(t, err)
	assert.Equal(t, 20, tr.Len())
	assert.Equal(t, 2.0, tr.Point(0)[1])
	require.Len(t, tr.Sections(), 3, "two straights plus the loop marker")
	assert.Equal(t, 0.2, tr.Sections()[0].Options.Lean)
}

func TestBuildFailure(t *testing.T) {
	prev := track.Logf
	track.Logf = func(string, ...interface{}) {}
	t.Cleanup(func() { track.Logf = prev })

	_, err := Definition{Name: "curvy", Tokens: []string{"r"}}.Build()
	var degenerate *track.DegenerateCurveError
	assert.ErrorAs(t, err, &degenerate)
}

func TestCacheBuildsOnce(t *testing.T) {
	c := NewCache([]Definition{Default(), {Name: "short", Tokens: []string{"s"}}})
	assert.Equal(t, 2, c.Len())

	var wg sync.WaitGroup
	got := make([]*track.Track, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr, err := c.Get("default")
			assert.NoError(t, err)
			got[i] = tr
		}(i)
	}
	wg.Wait()
	for _, tr := range got[1:] {
		assert.Same(t, got[0], tr)
	}

	_, err := c.Get("missing")
	assert.ErrorContains(t, err, "unknown track")
}

func TestCacheSharesConcurrentMisses(t *testing.T) {
	c := NewCache([]Definition{Default()})
	var builds atomic.Int32
	c.build = func(d Definition) (*track.Track, error) {
		builds.Add(1)
		time.Sleep(20 * time.Millisecond)
		return d.Build()
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := c.Get("default")
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()
	assert.Equal(t, int32(1), builds.Load())
}

func TestBundledTracksBuild(t *testing.T) {
	defs, errs := LoadDir(filepath.Join("..", "..", "tracks"))
	require.Empty(t, errs)
	require.NotEmpty(t, defs)
	for _, d := range defs {
		tr, err := d.Build()
		if assert.NoError(t, err, d.Name) {
			assert.Empty(t, tr.Skipped(), d.Name)
		}
	}
}
