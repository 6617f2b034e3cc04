// Package trajectory is the trajectory-analysis kernel: a domain-parameterized
// point and trajectory data model, the streaming assembly of raw samples into
// trajectories, the geometric algorithms that operate on them (interpolation
// by time and by arc length, subsetting, great-circle distance and bearing,
// convex hull, distance-geometry signatures, best-fit great-circle plane),
// and the tagged-union property map attached to points and trajectories.
//
// Algorithms are pure functions of their inputs: no internal goroutines, no
// global locks, no blocking I/O beyond the caller-supplied iterator. The only
// process-wide state is the logger sink (see Logf), configured once at
// startup and safe for concurrent use.
package trajectory
