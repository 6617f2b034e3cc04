package trajectory

import "sort"

// PlanarConvexHull computes the convex hull of a set of cartesian points
// using Andrew's monotone chain, returning a closed ring (last point
// equals first) in counterclockwise order. Points with fewer than 3
// distinct inputs return a degenerate ring containing whatever inputs
// were given.
func PlanarConvexHull(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Coords[0] != pts[j].Coords[0] {
			return pts[i].Coords[0] < pts[j].Coords[0]
		}
		return pts[i].Coords[1] < pts[j].Coords[1]
	})
	pts = dedupe(pts)
	n := len(pts)
	if n < 3 {
		ring := append([]Point{}, pts...)
		if n > 0 {
			ring = append(ring, pts[0].Clone())
		}
		return ring
	}

	cross := func(o, a, b Point) float64 {
		return (a.Coords[0]-o.Coords[0])*(b.Coords[1]-o.Coords[1]) - (a.Coords[1]-o.Coords[1])*(b.Coords[0]-o.Coords[0])
	}

	lower := make([]Point, 0, n)
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	hull = append(hull, hull[0].Clone())
	return hull
}

func dedupe(pts []Point) []Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		last := out[len(out)-1]
		if p.Coords[0] != last.Coords[0] || p.Coords[1] != last.Coords[1] {
			out = append(out, p)
		}
	}
	return out
}
