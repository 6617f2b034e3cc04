package trajectory

import "math"

// sphericalTriangleAngles returns the three interior angles (radians) of
// the spherical triangle with vertices a, b, c, via the spherical law of
// cosines applied to the three central angles (side lengths in radians).
func sphericalTriangleAngles(a, b, c Point) (angleA, angleB, angleC float64) {
	sideA := centralAngle(b, c) // side opposite vertex a
	sideB := centralAngle(a, c) // side opposite vertex b
	sideC := centralAngle(a, b) // side opposite vertex c

	angleA = sphericalAngle(sideA, sideB, sideC)
	angleB = sphericalAngle(sideB, sideA, sideC)
	angleC = sphericalAngle(sideC, sideA, sideB)
	return
}

// sphericalAngle returns the interior angle opposite `opposite`, given the
// other two sides of a spherical triangle.
func sphericalAngle(opposite, adjacent1, adjacent2 float64) float64 {
	denom := math.Sin(adjacent1) * math.Sin(adjacent2)
	if denom == 0 {
		return 0
	}
	cosAngle := (math.Cos(opposite) - math.Cos(adjacent1)*math.Cos(adjacent2)) / denom
	if cosAngle > 1 {
		cosAngle = 1
	} else if cosAngle < -1 {
		cosAngle = -1
	}
	return math.Acos(cosAngle)
}

func centralAngle(a, b Point) float64 {
	return Distance(a, b) / EarthRadiusKm
}

// HullAreaSteradians returns the area of a closed spherical hull ring (as
// produced by SphericalConvexHull) in steradians, computed by fan-
// triangulating the hull around its centroid and summing A+B+C-pi per
// spherical triangle (Girard's theorem).
func HullAreaSteradians(hull []Point) float64 {
	if len(hull) < 4 { // closed ring needs >= 3 distinct vertices + repeat
		return 0
	}
	ring := hull[:len(hull)-1] // drop the repeated closing vertex
	centroid := LonLatCentroid(ring)

	var total float64
	for i := 0; i < len(ring); i++ {
		b := ring[i]
		c := ring[(i+1)%len(ring)]
		angleA, angleB, angleC := sphericalTriangleAngles(centroid, b, c)
		total += angleA + angleB + angleC - math.Pi
	}
	return total
}

// HullAreaKm2 returns the hull area scaled to km^2 for terrestrial callers.
func HullAreaKm2(hull []Point) float64 {
	return HullAreaSteradians(hull) * EarthRadiusKm * EarthRadiusKm
}

// HullCentroid returns the weighted average of spherical-triangle centers
// of mass (weight = triangle area), re-normalized to unit magnitude and
// converted back to longitude/latitude.
func HullCentroid(hull []Point) Point {
	if len(hull) < 4 {
		if len(hull) > 0 {
			return hull[0]
		}
		return ZeroPoint(Terrestrial, 2)
	}
	ring := hull[:len(hull)-1]
	fanCenter := LonLatCentroid(ring)

	var sx, sy, sz, totalWeight float64
	for i := 0; i < len(ring); i++ {
		b := ring[i]
		c := ring[(i+1)%len(ring)]
		angleA, angleB, angleC := sphericalTriangleAngles(fanCenter, b, c)
		area := angleA + angleB + angleC - math.Pi
		if area <= 0 {
			continue
		}
		tx, ty, tz := unitVectorSum(fanCenter, b, c)
		norm := math.Sqrt(tx*tx + ty*ty + tz*tz)
		if norm == 0 {
			continue
		}
		sx += area * (tx / norm)
		sy += area * (ty / norm)
		sz += area * (tz / norm)
		totalWeight += area
	}
	if totalWeight == 0 {
		return fanCenter
	}
	norm := math.Sqrt(sx*sx + sy*sy + sz*sz)
	if norm == 0 {
		return fanCenter
	}
	lat := radToDeg(math.Asin(sz / norm))
	lon := radToDeg(math.Atan2(sy, sx))
	return NewPoint(Terrestrial, lon, lat)
}

func unitVectorSum(points ...Point) (x, y, z float64) {
	for _, p := range points {
		latR, lonR := degToRad(p.Lat()), degToRad(p.Lon())
		x += math.Cos(latR) * math.Cos(lonR)
		y += math.Cos(latR) * math.Sin(lonR)
		z += math.Sin(latR)
	}
	return
}

// HullAspectRatio is the min distance from the hull centroid to the hull
// boundary divided by the max distance from the centroid to a hull
// vertex, both measured in km. Returns 0 when the min distance is below
// 1e-5 km (degenerate/near-point hull).
func HullAspectRatio(hull []Point) float64 {
	if len(hull) < 4 {
		return 0
	}
	ring := hull[:len(hull)-1]
	centroid := HullCentroid(hull)

	maxVertexDist := 0.0
	for _, v := range ring {
		if d := Distance(centroid, v); d > maxVertexDist {
			maxVertexDist = d
		}
	}
	if maxVertexDist == 0 {
		return 0
	}

	minBoundaryDist := math.MaxFloat64
	for i := 0; i < len(ring); i++ {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		d := minDistanceToGreatCircleSegment(centroid, a, b)
		if d < minBoundaryDist {
			minBoundaryDist = d
		}
	}
	if minBoundaryDist < 1e-5 {
		return 0
	}
	return minBoundaryDist / maxVertexDist
}

// minDistanceToGreatCircleSegment samples along the great-circle segment
// (a, b) to approximate the minimum distance from p to the segment.
func minDistanceToGreatCircleSegment(p, a, b Point) float64 {
	const steps = 32
	best := math.Min(Distance(p, a), Distance(p, b))
	for i := 1; i < steps; i++ {
		frac := float64(i) / float64(steps)
		cand := Interpolate(a, b, frac)
		if d := Distance(p, cand); d < best {
			best = d
		}
	}
	return best
}

// RadiusOfGyration returns sqrt(sum(dist(p, centroid)^2) / (N-1)) where
// centroid is the trajectory's LonLatCentroid (or arithmetic-mean
// centroid for cartesian domains). Requires at least 2 points.
func RadiusOfGyration(t Trajectory) (float64, error) {
	if t.Len() < 2 {
		return 0, ErrTooFewPoints
	}
	centroid := t.Centroid()
	var sumSq float64
	for _, p := range t.Points {
		d := Distance(p.Point, centroid)
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(t.Len()-1)), nil
}
