package trajectory

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64, label string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tol %v)", label, got, want, tol)
	}
}

func TestDistanceTerrestrialEquator(t *testing.T) {
	a := NewPoint(Terrestrial, 0, 0)
	b := NewPoint(Terrestrial, 1, 0)
	want := EarthRadiusKm * degToRad(1)
	approxEqual(t, Distance(a, b), want, 1e-6, "Distance")
}

func TestDistanceTerrestrialIdentical(t *testing.T) {
	a := NewPoint(Terrestrial, -122.4, 37.7)
	if d := Distance(a, a); d != 0 {
		t.Errorf("Distance(a, a) = %v, want 0", d)
	}
}

func TestDistanceCartesian(t *testing.T) {
	a := NewPoint(Cartesian2D, 0, 0)
	b := NewPoint(Cartesian2D, 3, 4)
	approxEqual(t, Distance(a, b), 5, 1e-9, "Distance")
}

func TestBearingCardinalDirections(t *testing.T) {
	origin := NewPoint(Terrestrial, 0, 0)
	north := NewPoint(Terrestrial, 0, 1)
	east := NewPoint(Terrestrial, 1, 0)

	approxEqual(t, Bearing(origin, north), 0, 1e-6, "Bearing north")
	approxEqual(t, Bearing(origin, east), 90, 1e-6, "Bearing east")
}

func TestBearingCoincidentIsZero(t *testing.T) {
	p := NewPoint(Terrestrial, 10, 20)
	if b := Bearing(p, p); b != 0 {
		t.Errorf("Bearing(p, p) = %v, want 0", b)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	a := NewPoint(Terrestrial, 0, 0)
	b := NewPoint(Terrestrial, 10, 10)

	start := Interpolate(a, b, 0)
	end := Interpolate(a, b, 1)
	approxEqual(t, start.Lon(), a.Lon(), 1e-9, "start lon")
	approxEqual(t, start.Lat(), a.Lat(), 1e-9, "start lat")
	approxEqual(t, end.Lon(), b.Lon(), 1e-6, "end lon")
	approxEqual(t, end.Lat(), b.Lat(), 1e-6, "end lat")
}

func TestInterpolateMidpointOnGreatCircle(t *testing.T) {
	a := NewPoint(Terrestrial, 0, 0)
	b := NewPoint(Terrestrial, 0, 90)
	mid := Interpolate(a, b, 0.5)
	approxEqual(t, mid.Lat(), 45, 1e-6, "midpoint lat")
}

func TestInterpolateCartesianIsLinear(t *testing.T) {
	a := NewPoint(Cartesian2D, 0, 0)
	b := NewPoint(Cartesian2D, 10, 20)
	mid := Interpolate(a, b, 0.5)
	approxEqual(t, mid.Coords[0], 5, 1e-9, "mid x")
	approxEqual(t, mid.Coords[1], 10, 1e-9, "mid y")
}

func TestSignedTurnAngleCartesian(t *testing.T) {
	a := NewPoint(Cartesian2D, 0, 0)
	b := NewPoint(Cartesian2D, 1, 0)
	c := NewPoint(Cartesian2D, 1, 1)
	angle := SignedTurnAngle(a, b, c)
	approxEqual(t, angle, 90, 1e-9, "left turn")
}

func TestSignedTurnAngleDegenerate(t *testing.T) {
	a := NewPoint(Cartesian2D, 0, 0)
	if angle := SignedTurnAngle(a, a, a); angle != 0 {
		t.Errorf("SignedTurnAngle(a,a,a) = %v, want 0", angle)
	}
}

func TestUnsignedTurnAngleIsAbsolute(t *testing.T) {
	a := NewPoint(Cartesian2D, 0, 0)
	b := NewPoint(Cartesian2D, 1, 0)
	c := NewPoint(Cartesian2D, 1, -1)
	if got := UnsignedTurnAngle(a, b, c); got <= 0 {
		t.Errorf("UnsignedTurnAngle = %v, want > 0", got)
	}
}
