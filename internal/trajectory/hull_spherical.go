package trajectory

import "math"

// LonLatCentroid computes the 3-D Cartesian centroid of a set of
// terrestrial points by summing unit vectors and projecting back to the
// sphere. Used as the hull "center" and as Trajectory.Centroid's
// terrestrial implementation.
func LonLatCentroid(points []Point) Point {
	if len(points) == 0 {
		return ZeroPoint(Terrestrial, 2)
	}
	var sx, sy, sz float64
	for _, p := range points {
		latR, lonR := degToRad(p.Lat()), degToRad(p.Lon())
		sx += math.Cos(latR) * math.Cos(lonR)
		sy += math.Cos(latR) * math.Sin(lonR)
		sz += math.Sin(latR)
	}
	norm := math.Sqrt(sx*sx + sy*sy + sz*sz)
	if norm < 1e-12 {
		// Inputs cancel out entirely (e.g. antipodal pairs); fall back to
		// an arbitrary but deterministic point rather than dividing by
		// zero. Callers that care about this degeneracy (the hull) check
		// the norm themselves before calling LonLatCentroid.
		return NewPoint(Terrestrial, 0, 0)
	}
	lat := radToDeg(math.Asin(sz / norm))
	lon := radToDeg(math.Atan2(sy, sx))
	return NewPoint(Terrestrial, lon, lat)
}

// centroidNorm returns the magnitude of the mean of the points' unit
// vectors (the summed unit-vector centroid divided by the point count),
// used to detect the TooLargeHemisphere degenerate case (spec.md open
// question: spherical hull requires input strictly within a hemisphere;
// a near-zero centroid magnitude indicates the input spans too much of
// the sphere for a single hull center to be meaningful).
func centroidNorm(points []Point) float64 {
	var sx, sy, sz float64
	for _, p := range points {
		latR, lonR := degToRad(p.Lat()), degToRad(p.Lon())
		sx += math.Cos(latR) * math.Cos(lonR)
		sy += math.Cos(latR) * math.Sin(lonR)
		sz += math.Sin(latR)
	}
	return math.Sqrt(sx*sx+sy*sy+sz*sz) / float64(len(points))
}

// minHemisphereCentroidNorm is the threshold below which the mean
// unit-vector centroid (centroidNorm) is considered degenerate (the input
// does not fit within a single hemisphere).
const minHemisphereCentroidNorm = 1e-3

// rotateToPole rotates a terrestrial point (lat, lon) so that the center
// point (latC, lonC) maps to the north pole: a longitude subtraction
// followed by a colatitude rotation by theta = latC.
func rotateToPole(lat, lon, latC, lonC float64) (latP, lonP float64) {
	dLon := degToRad(lon - lonC)
	latR := degToRad(lat)
	theta := degToRad(latC)

	x1 := math.Cos(latR) * math.Cos(dLon)
	y1 := math.Cos(latR) * math.Sin(dLon)
	z1 := math.Sin(latR)

	zr := x1*math.Cos(theta) + z1*math.Sin(theta)
	xr := x1*math.Sin(theta) - z1*math.Cos(theta)
	yr := y1

	if zr > 1 {
		zr = 1
	} else if zr < -1 {
		zr = -1
	}
	latP = radToDeg(math.Asin(zr))
	lonP = radToDeg(math.Atan2(yr, xr))
	return latP, lonP
}

// rotateFromPole inverts rotateToPole.
func rotateFromPole(latP, lonP, latC, lonC float64) (lat, lon float64) {
	theta := degToRad(latC)
	latR := degToRad(latP)
	lonR := degToRad(lonP)

	xr := math.Cos(latR) * math.Cos(lonR)
	yr := math.Cos(latR) * math.Sin(lonR)
	zr := math.Sin(latR)

	x1 := math.Sin(theta)*xr + math.Cos(theta)*zr
	z1 := -math.Cos(theta)*xr + math.Sin(theta)*zr
	y1 := yr

	if z1 > 1 {
		z1 = 1
	} else if z1 < -1 {
		z1 = -1
	}
	lat = radToDeg(math.Asin(z1))
	lon = radToDeg(math.Atan2(y1, x1)) + lonC
	return lat, lon
}

// SphericalConvexHull computes the convex hull of terrestrial points on
// the sphere, returning a closed ring (last vertex equals first) in
// counterclockwise order. Defined only for inputs spanning strictly less
// than a hemisphere; returns ErrTooLargeHemisphere when the summed
// unit-vector centroid's magnitude is near zero.
func SphericalConvexHull(points []Point) ([]Point, error) {
	if len(points) == 0 {
		return nil, nil
	}
	if centroidNorm(points) < minHemisphereCentroidNorm {
		return nil, ErrTooLargeHemisphere
	}
	center := LonLatCentroid(points)
	latC, lonC := center.Lat(), center.Lon()

	projected := make([]Point, len(points))
	for i, p := range points {
		latP, lonP := rotateToPole(p.Lat(), p.Lon(), latC, lonC)
		latR, lonR := degToRad(latP), degToRad(lonP)
		x := math.Cos(latR) * math.Cos(lonR)
		y := math.Cos(latR) * math.Sin(lonR)
		projected[i] = NewPoint(Cartesian2D, x, y)
	}

	planarHull := PlanarConvexHull(projected)

	hull := make([]Point, len(planarHull))
	for i, p := range planarHull {
		x, y := p.Coords[0], p.Coords[1]
		r2 := x*x + y*y
		if r2 > 1 {
			r2 = 1
		}
		latP := radToDeg(math.Acos(math.Sqrt(r2)))
		lonP := radToDeg(math.Atan2(y, x))
		lat, lon := rotateFromPole(latP, lonP, latC, lonC)
		hull[i] = NewPoint(Terrestrial, lon, lat)
	}
	return hull, nil
}
