package trajectory

import (
	"github.com/google/uuid"
)

// Trajectory is an ordered sequence of trajectory points sharing an object
// id, non-decreasing timestamps, and a monotonically non-decreasing
// CurrentLength established by NewTrajectory/ReestablishCurrentLength. A
// trajectory owns its points; no shared mutable aliasing between
// trajectories is supported — use Clone to share.
type Trajectory struct {
	Domain     Domain
	ObjectID   string
	Points     []TrajectoryPoint
	Properties PropertyMap
	UUID       uuid.UUID
}

// NewTrajectory builds a trajectory from points already sorted by
// timestamp and sharing an object id, computing CurrentLength per point
// (current_length[0] = 0, current_length[i+1] = current_length[i] +
// distance(point[i], point[i+1])) and assigning a fresh UUID.
func NewTrajectory(domain Domain, objectID string, points []TrajectoryPoint) Trajectory {
	t := Trajectory{
		Domain:     domain,
		ObjectID:   objectID,
		Points:     points,
		Properties: NewPropertyMap(),
		UUID:       uuid.New(),
	}
	t.ReestablishCurrentLength()
	return t
}

// ReestablishCurrentLength recomputes CurrentLength for every point in
// place, in domain distance units. Call after any destructive mutation
// of Points that may have changed point order or membership.
func (t *Trajectory) ReestablishCurrentLength() {
	if len(t.Points) == 0 {
		return
	}
	t.Points[0].CurrentLength = 0
	for i := 1; i < len(t.Points); i++ {
		seg := Distance(t.Points[i-1].Point, t.Points[i].Point)
		t.Points[i].CurrentLength = t.Points[i-1].CurrentLength + seg
	}
}

// Len returns the number of points in the trajectory.
func (t Trajectory) Len() int { return len(t.Points) }

// Empty reports whether the trajectory has no points.
func (t Trajectory) Empty() bool { return len(t.Points) == 0 }

// First returns the trajectory's first point. Panics if empty; callers
// must check Empty() first, matching the kernel's pure-function contract
// of never silently producing a wrong answer.
func (t Trajectory) First() TrajectoryPoint { return t.Points[0] }

// Last returns the trajectory's last point.
func (t Trajectory) Last() TrajectoryPoint { return t.Points[len(t.Points)-1] }

// Length returns the total arc length of the trajectory.
func (t Trajectory) Length() float64 { return Length(t.Points) }

// Clone returns a trajectory sharing no mutable state with the receiver:
// every point (and its property map) is deep-copied, and the clone gets
// its own PropertyMap but retains the same UUID (it denotes the same
// logical trajectory).
func (t Trajectory) Clone() Trajectory {
	points := make([]TrajectoryPoint, len(t.Points))
	for i, p := range t.Points {
		points[i] = p.Clone()
	}
	return Trajectory{
		Domain:     t.Domain,
		ObjectID:   t.ObjectID,
		Points:     points,
		Properties: t.Properties.Clone(),
		UUID:       t.UUID,
	}
}

// LineString returns the bare-point linestring underlying the trajectory.
func (t Trajectory) LineString() LineString {
	pts := make([]Point, len(t.Points))
	for i, p := range t.Points {
		pts[i] = p.Point
	}
	return LineString{Domain: t.Domain, Points: pts}
}

// BoundingBox returns the trajectory's axis-aligned bounding box.
func (t Trajectory) BoundingBox() BoundingBox {
	return BoundingBoxOf(t.Points)
}

// Centroid returns the trajectory's central point: the spherical unit-
// vector centroid (LonLatCentroid) for Terrestrial, matching the hull
// centroid's construction, or the arithmetic mean of coordinates for
// cartesian domains. Used by RadiusOfGyration.
func (t Trajectory) Centroid() Point {
	if len(t.Points) == 0 {
		return ZeroPoint(t.Domain, 0)
	}
	if t.Domain == Terrestrial {
		pts := make([]Point, len(t.Points))
		for i, p := range t.Points {
			pts[i] = p.Point
		}
		return LonLatCentroid(pts)
	}
	dim := t.Points[0].Dim()
	sum := make([]float64, dim)
	for _, p := range t.Points {
		for i := 0; i < dim; i++ {
			sum[i] += p.Coords[i]
		}
	}
	n := float64(len(t.Points))
	for i := range sum {
		sum[i] /= n
	}
	return NewPoint(t.Domain, sum...)
}
