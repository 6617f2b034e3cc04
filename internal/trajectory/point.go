package trajectory

import "time"

// Point is an ordered tuple of D real coordinates. Coordinate 0 is
// longitude/x, coordinate 1 is latitude/y, coordinate 2 (where present) is
// z. Terrestrial coordinates are in degrees; conversions to radians are
// explicit in the geometry primitives that need them.
type Point struct {
	Domain Domain
	Coords []float64
}

// NewPoint constructs a point in domain d from the given coordinates. The
// caller is responsible for passing a coordinate count consistent with d
// (2 for Terrestrial/Cartesian2D, 3 for Cartesian3D, 1..30 for
// FeatureVector); mixing domains across operations is a programmer error,
// not one this constructor detects.
func NewPoint(d Domain, coords ...float64) Point {
	c := make([]float64, len(coords))
	copy(c, coords)
	return Point{Domain: d, Coords: c}
}

// ZeroPoint returns the domain-zero point used as the point_at_time result
// for an empty trajectory.
func ZeroPoint(d Domain, dim int) Point {
	if dim <= 0 {
		dim = d.Dimension()
	}
	return Point{Domain: d, Coords: make([]float64, dim)}
}

// Dim returns the number of coordinates carried by the point.
func (p Point) Dim() int { return len(p.Coords) }

// Lon returns coordinate 0 (longitude for Terrestrial, x otherwise).
func (p Point) Lon() float64 { return p.Coords[0] }

// Lat returns coordinate 1 (latitude for Terrestrial, y otherwise).
func (p Point) Lat() float64 { return p.Coords[1] }

// Z returns coordinate 2, or 0 if the point has fewer than 3 coordinates.
func (p Point) Z() float64 {
	if len(p.Coords) > 2 {
		return p.Coords[2]
	}
	return 0
}

// Clone returns a point with its own backing coordinate slice.
func (p Point) Clone() Point {
	c := make([]float64, len(p.Coords))
	copy(c, p.Coords)
	return Point{Domain: p.Domain, Coords: c}
}

// TrajectoryPoint is a Point enriched with object identity, a UTC
// timestamp, and a property map. CurrentLength is only meaningful once the
// point has been assembled into a Trajectory (current_length[0] == 0 and
// monotonically non-decreasing thereafter).
type TrajectoryPoint struct {
	Point
	ObjectID      string
	Timestamp     time.Time
	Properties    PropertyMap
	CurrentLength float64
}

// NewTrajectoryPoint constructs a trajectory point with a fresh, empty
// property map and a zero CurrentLength (set later by the trajectory
// constructor or the assembler).
func NewTrajectoryPoint(p Point, objectID string, ts time.Time) TrajectoryPoint {
	return TrajectoryPoint{
		Point:      p,
		ObjectID:   objectID,
		Timestamp:  ts,
		Properties: NewPropertyMap(),
	}
}

// Clone returns a trajectory point with its own coordinate slice and
// property map, sharing no mutable state with the receiver.
func (tp TrajectoryPoint) Clone() TrajectoryPoint {
	out := tp
	out.Point = tp.Point.Clone()
	out.Properties = tp.Properties.Clone()
	return out
}

// Heading returns the "heading" real property, if present.
func (tp TrajectoryPoint) Heading() (float64, error) { return tp.Properties.GetReal("heading") }

// Speed returns the "speed" real property, if present.
func (tp TrajectoryPoint) Speed() (float64, error) { return tp.Properties.GetReal("speed") }

// Altitude returns the "altitude" real property, if present. Units are
// whatever the caller chose when setting the property; see
// ECEFFromPointFeet/ECEFFromPointMeters for the conversions the kernel
// itself performs.
func (tp TrajectoryPoint) Altitude() (float64, error) { return tp.Properties.GetReal("altitude") }
