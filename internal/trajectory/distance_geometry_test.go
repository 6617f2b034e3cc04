package trajectory

import "testing"

func TestDistanceGeometryByDistanceVectorLength(t *testing.T) {
	traj := makeSquareTrajectory(t)
	const D = 4
	sig := DistanceGeometryByDistance(traj, D)
	want := D * (D + 1) / 2
	if len(sig) != want {
		t.Fatalf("signature length = %d, want %d", len(sig), want)
	}
}

func TestDistanceGeometryLevelOneZeroForClosedTrajectory(t *testing.T) {
	traj := makeSquareTrajectory(t) // starts and ends at (0,0)
	sig := DistanceGeometryByDistance(traj, 4)
	if sig[0] != 0 {
		t.Errorf("level-1 chord = %v, want 0 for a closed trajectory", sig[0])
	}
}

func TestDistanceGeometryValuesInUnitInterval(t *testing.T) {
	traj := makeSquareTrajectory(t)
	sig := DistanceGeometryByDistance(traj, 4)
	for i, v := range sig {
		if v < 0 || v > 1 {
			t.Errorf("sig[%d] = %v, want in [0,1]", i, v)
		}
	}
}

func TestDistanceGeometryTooFewPointsIsZeroVector(t *testing.T) {
	traj := NewTrajectory(Cartesian2D, "obj1", []TrajectoryPoint{makeTP(0, 0)})
	sig := DistanceGeometryByDistance(traj, 3)
	for i, v := range sig {
		if v != 0 {
			t.Errorf("sig[%d] = %v, want 0 for a single-point trajectory", i, v)
		}
	}
}

func TestDistanceGeometryByTimeVectorLength(t *testing.T) {
	traj := makeSquareTrajectory(t)
	const D = 3
	sig := DistanceGeometryByTime(traj, D)
	if len(sig) != D*(D+1)/2 {
		t.Fatalf("signature length = %d, want %d", len(sig), D*(D+1)/2)
	}
}
