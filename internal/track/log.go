package track

import "log"

// Logf reports non-fatal construction problems. It defaults to log.Printf
// and may be replaced (or silenced) by callers and tests.
var Logf func(format string, v ...interface{}) = log.Printf
