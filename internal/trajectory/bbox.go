package trajectory

import "math"

// BoundingBox is an axis-aligned, domain-typed box defined by two corner
// points (Min, Max). For Terrestrial the longitude span is half-open in
// [-180, 180); callers that need antimeridian-crossing boxes must split
// into two boxes themselves, the kernel does not do this implicitly.
type BoundingBox struct {
	Domain Domain
	Min    Point
	Max    Point
}

// LineString is an ordered sequence of bare points: no timestamps, no ids.
type LineString struct {
	Domain Domain
	Points []Point
}

// BoundingBoxOf computes the axis-aligned bounding box of a non-empty slice
// of trajectory points, all assumed to share the same domain.
func BoundingBoxOf(points []TrajectoryPoint) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	dim := points[0].Dim()
	d := points[0].Domain
	min := make([]float64, dim)
	max := make([]float64, dim)
	copy(min, points[0].Coords)
	copy(max, points[0].Coords)

	for _, p := range points[1:] {
		for i := 0; i < dim; i++ {
			if p.Coords[i] < min[i] {
				min[i] = p.Coords[i]
			}
			if p.Coords[i] > max[i] {
				max[i] = p.Coords[i]
			}
		}
	}
	return BoundingBox{Domain: d, Min: NewPoint(d, min...), Max: NewPoint(d, max...)}
}

// Contains reports whether p lies componentwise within [Min, Max].
func (b BoundingBox) Contains(p Point) bool {
	for i := range p.Coords {
		if p.Coords[i] < b.Min.Coords[i] || p.Coords[i] > b.Max.Coords[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether two boxes of the same domain/dimension overlap
// (including touching at a boundary).
func (b BoundingBox) Intersects(other BoundingBox) bool {
	for i := range b.Min.Coords {
		if b.Max.Coords[i] < other.Min.Coords[i] || other.Max.Coords[i] < b.Min.Coords[i] {
			return false
		}
	}
	return true
}

// pointsAlmostEqual reports whether a and b agree in every coordinate within
// the given absolute tolerance. Used by the best-fit-plane ECEF search to
// detect degenerate (identical) position inputs.
func pointsAlmostEqual(a, b []float64, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
