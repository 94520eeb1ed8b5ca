package track

import (
	"testing"

	"trackgen/internal/mathutil"
)

const tol = 1e-6

// quietLogs silences Logf for the duration of a test and returns the
// captured messages.
func quietLogs(t *testing.T) *[]string {
	t.Helper()
	var got []string
	prev := Logf
	Logf = func(format string, v ...interface{}) {
		got = append(got, format)
	}
	t.Cleanup(func() { Logf = prev })
	return &got
}

// straightRun returns n points spaced RailSpacing apart along dir from start.
func straightRun(start, dir mathutil.Vec3, n int) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, n)
	for i := range out {
		out[i] = start.Add(dir.Mul(float64(i) * RailSpacing))
	}
	return out
}
