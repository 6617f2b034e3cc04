package trajectory

import (
	"testing"
	"time"
)

func tpAt(objectID string, x, y float64, ts time.Time) TrajectoryPoint {
	return NewTrajectoryPoint(NewPoint(Cartesian2D, x, y), objectID, ts)
}

func TestAssembleAllSplitsOnTimeGap(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []TrajectoryPoint{
		tpAt("car1", 0, 0, base),
		tpAt("car1", 1, 0, base.Add(1*time.Second)),
		tpAt("car1", 2, 0, base.Add(1*time.Hour)), // big gap: new trajectory
		tpAt("car1", 3, 0, base.Add(1*time.Hour+1*time.Second)),
	}
	config := AssemblerConfig{SeparationTime: 5 * time.Minute, SeparationDistance: 0, MinimumLength: 2}
	trajs := AssembleAll(Cartesian2D, points, config)

	if len(trajs) != 2 {
		t.Fatalf("got %d trajectories, want 2", len(trajs))
	}
	if trajs[0].Len() != 2 || trajs[1].Len() != 2 {
		t.Errorf("trajectory lengths = %d, %d, want 2, 2", trajs[0].Len(), trajs[1].Len())
	}
}

func TestAssembleAllSplitsOnDistanceGap(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []TrajectoryPoint{
		tpAt("car1", 0, 0, base),
		tpAt("car1", 1, 0, base.Add(1*time.Second)),
		tpAt("car1", 1000, 0, base.Add(2*time.Second)), // big spatial jump
		tpAt("car1", 1001, 0, base.Add(3*time.Second)),
	}
	config := AssemblerConfig{SeparationTime: time.Hour, SeparationDistance: 50, MinimumLength: 2}
	trajs := AssembleAll(Cartesian2D, points, config)

	if len(trajs) != 2 {
		t.Fatalf("got %d trajectories, want 2", len(trajs))
	}
}

func TestAssembleAllDropsShortTrajectories(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []TrajectoryPoint{
		tpAt("car1", 0, 0, base),
		tpAt("car2", 0, 0, base), // only 1 point for car2
	}
	config := AssemblerConfig{SeparationTime: time.Hour, SeparationDistance: 1000, MinimumLength: 2}
	trajs := AssembleAll(Cartesian2D, points, config)

	if len(trajs) != 0 {
		t.Errorf("got %d trajectories, want 0 (both below MinimumLength)", len(trajs))
	}
}

func TestAssemblerGroupsByObjectID(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []TrajectoryPoint{
		tpAt("car1", 0, 0, base),
		tpAt("car2", 10, 10, base),
		tpAt("car1", 1, 0, base.Add(time.Second)),
		tpAt("car2", 11, 10, base.Add(time.Second)),
	}
	trajs := AssembleAll(Cartesian2D, points, DefaultAssemblerConfig())
	if len(trajs) != 2 {
		t.Fatalf("got %d trajectories, want 2", len(trajs))
	}
	seen := map[string]bool{}
	for _, tr := range trajs {
		seen[tr.ObjectID] = true
	}
	if !seen["car1"] || !seen["car2"] {
		t.Errorf("seen = %v, want both car1 and car2", seen)
	}
}

func TestAppendSortedRejectsOutOfOrder(t *testing.T) {
	asm := NewAssembler(DefaultAssemblerConfig())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := asm.AppendSorted(Cartesian2D, tpAt("car1", 0, 0, base)); err != nil {
		t.Fatalf("first append: %v", err)
	}
	err := asm.AppendSorted(Cartesian2D, tpAt("car1", 1, 0, base.Add(-time.Second)))
	if err != ErrNonMonotonicTimestamp {
		t.Errorf("err = %v, want ErrNonMonotonicTimestamp", err)
	}
}

func TestAssemblerStateTransitions(t *testing.T) {
	asm := NewAssembler(DefaultAssemblerConfig())
	if s := asm.State("car1"); s != StateEmpty {
		t.Errorf("State before any point = %v, want StateEmpty", s)
	}
	asm.Add(Cartesian2D, tpAt("car1", 0, 0, time.Now()))
	if s := asm.State("car1"); s != StateCollecting {
		t.Errorf("State after Add = %v, want StateCollecting", s)
	}
	asm.Flush()
	if s := asm.State("car1"); s != StateClosed {
		t.Errorf("State after Flush = %v, want StateClosed", s)
	}
}
