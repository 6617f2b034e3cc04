package trajectory

import "testing"

func smallQuadAroundEquator() []Point {
	return []Point{
		NewPoint(Terrestrial, -1, -1),
		NewPoint(Terrestrial, 1, -1),
		NewPoint(Terrestrial, 1, 1),
		NewPoint(Terrestrial, -1, 1),
	}
}

func TestLonLatCentroidOfSmallQuad(t *testing.T) {
	c := LonLatCentroid(smallQuadAroundEquator())
	approxEqual(t, c.Lon(), 0, 1e-6, "centroid lon")
	approxEqual(t, c.Lat(), 0, 1e-6, "centroid lat")
}

func TestSphericalConvexHullSmallQuad(t *testing.T) {
	hull, err := SphericalConvexHull(smallQuadAroundEquator())
	if err != nil {
		t.Fatalf("SphericalConvexHull: %v", err)
	}
	if len(hull) != 5 {
		t.Fatalf("hull length = %d, want 5 (4 corners + closing repeat)", len(hull))
	}
	first, last := hull[0], hull[len(hull)-1]
	approxEqual(t, first.Lon(), last.Lon(), 1e-6, "ring closure lon")
	approxEqual(t, first.Lat(), last.Lat(), 1e-6, "ring closure lat")
}

func TestSphericalConvexHullTooLargeHemisphere(t *testing.T) {
	// Two antipodal pairs on the equator: their unit vectors cancel
	// exactly, so no single hull center is meaningful.
	points := []Point{
		NewPoint(Terrestrial, 0, 0),
		NewPoint(Terrestrial, 180, 0),
		NewPoint(Terrestrial, 90, 0),
		NewPoint(Terrestrial, -90, 0),
	}
	_, err := SphericalConvexHull(points)
	if err != ErrTooLargeHemisphere {
		t.Errorf("err = %v, want ErrTooLargeHemisphere", err)
	}
}

func TestRotateToPoleFromPoleRoundTrip(t *testing.T) {
	latC, lonC := 37.0, -122.0
	lat, lon := 40.0, -120.0

	latP, lonP := rotateToPole(lat, lon, latC, lonC)
	gotLat, gotLon := rotateFromPole(latP, lonP, latC, lonC)

	approxEqual(t, gotLat, lat, 1e-6, "round-trip lat")
	approxEqual(t, gotLon, lon, 1e-6, "round-trip lon")
}
