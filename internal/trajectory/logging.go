package trajectory

import "github.com/sandialabs/tracktable-go/internal/monitoring"

// Logf is the package-level diagnostic logger used by the lenient
// subsystems (the streaming assembler, subset_during_interval's reversed-
// interval swap, AppendSorted's dropping of out-of-order points). It delegates to
// internal/monitoring so the whole module shares one logger sink; callers
// and tests can redirect or mute it via SetLogger. Safe for concurrent use.
var Logf func(format string, v ...interface{}) = monitoring.Logf

// SetLogger replaces both this package's logger and internal/monitoring's,
// keeping them in lockstep. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	monitoring.SetLogger(f)
	Logf = monitoring.Logf
}
