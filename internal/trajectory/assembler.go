package trajectory

import (
	"sort"
	"time"

	"github.com/sandialabs/tracktable-go/internal/config"
)

// AssemblerState is the lifecycle state of a single in-progress trajectory
// inside Assembler.
type AssemblerState int

const (
	// StateEmpty is the state of an object_id that has never received a
	// point.
	StateEmpty AssemblerState = iota
	// StateCollecting is the state of an object_id with at least one point
	// that has not yet been closed out.
	StateCollecting
	// StateClosed is the state of an object_id whose buffered points have
	// been closed out by Flush. A break condition emits the finished
	// segment but leaves the object_id in StateCollecting.
	StateClosed
)

// AssemblerConfig controls the break conditions the Assembler uses to
// decide when one point ends a trajectory and the next begins a new one.
type AssemblerConfig struct {
	// SeparationTime is the maximum gap between consecutive points (by
	// timestamp) before a new trajectory is started for the same
	// object_id.
	SeparationTime time.Duration
	// SeparationDistance is the maximum gap between consecutive points (by
	// the domain's distance metric) before a new trajectory is started.
	SeparationDistance float64
	// MinimumLength is the minimum point count a trajectory must reach to
	// be emitted; shorter trajectories are logged and discarded.
	MinimumLength int
}

// DefaultAssemblerConfig returns the tuning defaults documented in
// internal/config.TuningConfig.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		SeparationTime:     30 * time.Minute,
		SeparationDistance: 100.0,
		MinimumLength:      2,
	}
}

// AssemblerConfigFromTuning builds an AssemblerConfig from a loaded tuning
// configuration, using its Get* accessors so unset fields fall back to the
// same defaults as DefaultAssemblerConfig.
func AssemblerConfigFromTuning(cfg *config.TuningConfig) AssemblerConfig {
	return AssemblerConfig{
		SeparationTime:     cfg.GetSeparationTime(),
		SeparationDistance: cfg.GetSeparationDistance(),
		MinimumLength:      cfg.GetMinimumLength(),
	}
}

// pendingTrajectory tracks one object_id's accumulating points and state.
type pendingTrajectory struct {
	objectID string
	domain   Domain
	points   []TrajectoryPoint
	state    AssemblerState
}

// Assembler consumes an unordered, possibly interleaved stream of
// TrajectoryPoints (as would arrive from a live feed or an unsorted file)
// grouped by ObjectID, and emits completed Trajectory values via a
// lazy, pull-based Next() once a break condition fires or the caller calls
// Flush. Points for a given object_id are buffered and sorted by timestamp
// before break detection runs, so out-of-order delivery within an object_id
// is tolerated; non-monotonic timestamps *within* an already-sorted run are
// impossible by construction, so ErrNonMonotonicTimestamp can only surface
// from AppendSorted, the variant that rejects a point older than the last
// one buffered for its object_id instead of accepting it (Drain still sorts
// every buffer).
type Assembler struct {
	config  AssemblerConfig
	pending map[string]*pendingTrajectory
	ready   []Trajectory
	order   []string // object_ids in first-seen order, for deterministic Flush iteration
}

// NewAssembler creates an Assembler with the given break-condition config.
func NewAssembler(config AssemblerConfig) *Assembler {
	return &Assembler{
		config:  config,
		pending: make(map[string]*pendingTrajectory),
	}
}

// Add appends a point to the assembler, buffering it under its ObjectID.
// Call Drain after a batch of Add calls to run break detection and collect
// any trajectories that are now ready to emit.
func (a *Assembler) Add(domain Domain, p TrajectoryPoint) {
	pend, ok := a.pending[p.ObjectID]
	if !ok {
		pend = &pendingTrajectory{objectID: p.ObjectID, domain: domain, state: StateCollecting}
		a.pending[p.ObjectID] = pend
		a.order = append(a.order, p.ObjectID)
	}
	pend.points = append(pend.points, p)
}

// AppendSorted appends a point that the caller guarantees arrives in
// non-decreasing timestamp order for its object_id. If a point arrives out
// of order, ErrNonMonotonicTimestamp is returned and the point is logged and
// dropped (lenient per-point recovery, matching spec.md §7's log-and-
// continue error handling for the assembly pipeline).
func (a *Assembler) AppendSorted(domain Domain, p TrajectoryPoint) error {
	pend, ok := a.pending[p.ObjectID]
	if !ok {
		pend = &pendingTrajectory{objectID: p.ObjectID, domain: domain, state: StateCollecting}
		a.pending[p.ObjectID] = pend
		a.order = append(a.order, p.ObjectID)
	}
	if n := len(pend.points); n > 0 && p.Timestamp.Before(pend.points[n-1].Timestamp) {
		Logf("assembler: dropping out-of-order point for object_id=%s ts=%v before last=%v", p.ObjectID, p.Timestamp, pend.points[n-1].Timestamp)
		return ErrNonMonotonicTimestamp
	}
	pend.points = append(pend.points, p)
	return nil
}

// Drain sorts every pending object_id's buffered points by timestamp,
// splits runs at separation breaks, and moves any completed segment that
// meets MinimumLength into the ready queue. A segment still accumulating
// (the last one for an object_id, since more points may arrive) is kept
// pending rather than emitted, unless Flush is called. Returns the number
// of trajectories newly queued.
func (a *Assembler) Drain() int {
	queued := 0
	for _, objectID := range a.order {
		pend := a.pending[objectID]
		if pend == nil || len(pend.points) == 0 {
			continue
		}
		sort.SliceStable(pend.points, func(i, j int) bool {
			return pend.points[i].Timestamp.Before(pend.points[j].Timestamp)
		})

		segments := a.splitOnBreaks(pend.points)
		// The last segment may still be accumulating; keep it pending.
		complete, remaining := segments[:len(segments)-1], segments[len(segments)-1]
		for _, seg := range complete {
			if a.emit(objectID, pend.domain, seg) {
				queued++
			}
		}
		pend.points = remaining
	}
	return queued
}

// Flush closes out every remaining pending trajectory (as if a break had
// just occurred at the end of its buffered points) and queues whatever
// meets MinimumLength. Call this once the input stream is exhausted.
func (a *Assembler) Flush() int {
	queued := a.Drain()
	for _, objectID := range a.order {
		pend := a.pending[objectID]
		if pend == nil || len(pend.points) == 0 {
			continue
		}
		if a.emit(objectID, pend.domain, pend.points) {
			queued++
		}
		pend.points = nil
		pend.state = StateClosed
	}
	return queued
}

// splitOnBreaks partitions a sorted run of points into segments, starting a
// new segment whenever the gap to the previous point exceeds
// SeparationTime or SeparationDistance. A threshold of zero or less
// disables that check.
func (a *Assembler) splitOnBreaks(points []TrajectoryPoint) [][]TrajectoryPoint {
	if len(points) == 0 {
		return [][]TrajectoryPoint{nil}
	}
	var segments [][]TrajectoryPoint
	current := []TrajectoryPoint{points[0]}
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		gapTime := cur.Timestamp.Sub(prev.Timestamp)
		gapDist := Distance(prev.Point, cur.Point)
		if (a.config.SeparationTime > 0 && gapTime > a.config.SeparationTime) ||
			(a.config.SeparationDistance > 0 && gapDist > a.config.SeparationDistance) {
			segments = append(segments, current)
			current = []TrajectoryPoint{cur}
			continue
		}
		current = append(current, cur)
	}
	segments = append(segments, current)
	return segments
}

// emit builds a Trajectory from seg and queues it if it meets
// MinimumLength, logging and discarding it otherwise.
func (a *Assembler) emit(objectID string, domain Domain, seg []TrajectoryPoint) bool {
	if len(seg) == 0 {
		return false
	}
	if len(seg) < a.config.MinimumLength {
		Logf("assembler: discarding object_id=%s trajectory of length %d (minimum %d)", objectID, len(seg), a.config.MinimumLength)
		return false
	}
	a.ready = append(a.ready, NewTrajectory(domain, objectID, seg))
	return true
}

// Next returns the next completed trajectory and true, or the zero
// Trajectory and false if none are ready. This is the assembler's
// lazy, pull-based output: callers loop on Next until it returns false,
// calling Drain/Flush in between batches of Add as needed.
func (a *Assembler) Next() (Trajectory, bool) {
	if len(a.ready) == 0 {
		return Trajectory{}, false
	}
	t := a.ready[0]
	a.ready = a.ready[1:]
	return t, true
}

// State returns the current lifecycle state of an object_id.
func (a *Assembler) State(objectID string) AssemblerState {
	pend, ok := a.pending[objectID]
	if !ok {
		return StateEmpty
	}
	return pend.state
}

// AssembleAll is a convenience wrapper for the common non-streaming case:
// given a full, unordered slice of points across arbitrarily many
// object_ids, run them through a fresh Assembler and return every resulting
// trajectory (segments below MinimumLength are dropped, matching
// Drain/Flush behavior, and are not reported as errors).
func AssembleAll(domain Domain, points []TrajectoryPoint, config AssemblerConfig) []Trajectory {
	asm := NewAssembler(config)
	for _, p := range points {
		asm.Add(domain, p)
	}
	asm.Flush()
	var out []Trajectory
	for {
		t, ok := asm.Next()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out
}
