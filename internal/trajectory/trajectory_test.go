package trajectory

import (
	"testing"
	"time"
)

func makeSquareTrajectory(t *testing.T) Trajectory {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := []TrajectoryPoint{
		NewTrajectoryPoint(NewPoint(Cartesian2D, 0, 0), "obj1", base),
		NewTrajectoryPoint(NewPoint(Cartesian2D, 1, 0), "obj1", base.Add(1*time.Second)),
		NewTrajectoryPoint(NewPoint(Cartesian2D, 1, 1), "obj1", base.Add(2*time.Second)),
		NewTrajectoryPoint(NewPoint(Cartesian2D, 0, 1), "obj1", base.Add(3*time.Second)),
		NewTrajectoryPoint(NewPoint(Cartesian2D, 0, 0), "obj1", base.Add(4*time.Second)),
	}
	return NewTrajectory(Cartesian2D, "obj1", pts)
}

func TestNewTrajectoryCurrentLength(t *testing.T) {
	traj := makeSquareTrajectory(t)
	if traj.Points[0].CurrentLength != 0 {
		t.Errorf("first point CurrentLength = %v, want 0", traj.Points[0].CurrentLength)
	}
	if got, want := traj.Length(), 4.0; got != want {
		t.Errorf("Length() = %v, want %v", got, want)
	}
}

func TestTrajectoryLenEmptyFirstLast(t *testing.T) {
	traj := makeSquareTrajectory(t)
	if traj.Len() != 5 {
		t.Errorf("Len() = %d, want 5", traj.Len())
	}
	if traj.Empty() {
		t.Error("Empty() = true, want false")
	}
	if traj.First().Coords[0] != 0 || traj.First().Coords[1] != 0 {
		t.Errorf("First() = %v, want (0,0)", traj.First().Coords)
	}
	if traj.Last().Timestamp.Second() != 4 {
		t.Errorf("Last().Timestamp second = %v, want 4", traj.Last().Timestamp.Second())
	}
}

func TestTrajectoryCloneIndependence(t *testing.T) {
	traj := makeSquareTrajectory(t)
	clone := traj.Clone()
	clone.Points[0].Coords[0] = 99

	if traj.Points[0].Coords[0] == 99 {
		t.Error("Clone shares point storage with original")
	}
	if clone.UUID != traj.UUID {
		t.Error("Clone should retain the same UUID (same logical trajectory)")
	}
}

func TestTrajectoryBoundingBox(t *testing.T) {
	traj := makeSquareTrajectory(t)
	bb := traj.BoundingBox()
	if bb.Min.Coords[0] != 0 || bb.Max.Coords[0] != 1 {
		t.Errorf("BoundingBox x range = [%v,%v], want [0,1]", bb.Min.Coords[0], bb.Max.Coords[0])
	}
}

func TestTrajectoryCentroidCartesian(t *testing.T) {
	traj := makeSquareTrajectory(t)
	c := traj.Centroid()
	approxEqual(t, c.Coords[0], 0.4, 1e-9, "centroid x")
	approxEqual(t, c.Coords[1], 0.4, 1e-9, "centroid y")
}

func TestRadiusOfGyrationTooFewPoints(t *testing.T) {
	traj := NewTrajectory(Cartesian2D, "obj1", []TrajectoryPoint{makeTP(0, 0)})
	if _, err := RadiusOfGyration(traj); err == nil {
		t.Error("RadiusOfGyration with 1 point should error")
	}
}
