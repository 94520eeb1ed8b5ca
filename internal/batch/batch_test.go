package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackgen/internal/track"
	"trackgen/internal/trackdef"
)

func TestRun(t *testing.T) {
	prev := track.Logf
	track.Logf = func(string, ...interface{}) {}
	t.Cleanup(func() { track.Logf = prev })

	out := t.TempDir()
	defs := []trackdef.Definition{
		trackdef.Default(),
		{Name: "short", Tokens: []string{"s", "x", "r"}, StraightPoints: 20},
		{Name: "broken", Tokens: []string{"l"}},
	}
	cfg := Config{
		OutputDir:   out,
		Tracks:      trackdef.NewCache(defs),
		RenderSize:  32,
		Supersample: 2,
		Format:      "png",
		View:        "top",
		Workers:     2,
	}

	results := Run(cfg, []string{"default", "short", "broken", "missing"})
	require.Len(t, results, 4)

	assert.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, 515, results[0].Points)
	assert.Equal(t, 5, results[0].Sections)
	assert.FileExists(t, filepath.Join(out, "default.png"))

	assert.True(t, results[1].Success, results[1].Error)
	assert.Equal(t, []string{"x"}, results[1].Skipped)
	assert.Equal(t, 20+105, results[1].Points)
	assert.Equal(t, 3, results[1].Sections, "the skipped token keeps its marker")

	assert.False(t, results[2].Success)
	assert.Contains(t, results[2].Error, "needs 2 prior points")
	assert.False(t, results[3].Success)
	assert.Contains(t, results[3].Error, "unknown track")

	manifest := filepath.Join(out, "manifest.json")
	require.NoError(t, WriteManifest(manifest, results))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)

	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	want := []ManifestEntry{
		{Name: "default", Image: "default.png", Points: 515, Sections: 5},
		{Name: "short", Image: "short.png", Points: 125, Sections: 3, Skipped: []string{"x"}},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}
