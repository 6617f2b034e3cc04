package trajectory

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ECEFFromPoint converts a terrestrial (lon, lat[, altitude]) point to
// earth-centered, earth-fixed coordinates in kilometers, using the WGS-84
// ellipsoid. Altitude comes only from the altitudeKm argument, in
// kilometers (any third coordinate of p is ignored); use
// ECEFFromPointFeet/ECEFFromPointMeters for other units.
func ECEFFromPoint(p Point, altitudeKm float64) (r3.Vec, error) {
	if p.Domain != Terrestrial {
		return r3.Vec{}, ErrDimensionMismatch
	}
	latR := degToRad(p.Lat())
	lonR := degToRad(p.Lon())

	sinLat := math.Sin(latR)
	cosLat := math.Cos(latR)
	n := wgs84SemiMajorAxisKm / math.Sqrt(1-wgs84EccentricitySq*sinLat*sinLat)

	x := (n + altitudeKm) * cosLat * math.Cos(lonR)
	y := (n + altitudeKm) * cosLat * math.Sin(lonR)
	z := (n*(1-wgs84EccentricitySq) + altitudeKm) * sinLat
	return r3.Vec{X: x, Y: y, Z: z}, nil
}

// ECEFFromPointFeet is ECEFFromPoint with altitudeFeet converted to km.
func ECEFFromPointFeet(p Point, altitudeFeet float64) (r3.Vec, error) {
	return ECEFFromPoint(p, altitudeFeet*kmPerFoot)
}

// ECEFFromPointMeters is ECEFFromPoint with altitudeMeters converted to km.
func ECEFFromPointMeters(p Point, altitudeMeters float64) (r3.Vec, error) {
	return ECEFFromPoint(p, altitudeMeters*kmPerMeter)
}

// ECEFTrajectory converts every point of a terrestrial trajectory to ECEF
// vectors in kilometers, reading altitude from each point's "altitude"
// real property when present (meters assumed) and treating it as 0
// otherwise.
func ECEFTrajectory(t Trajectory) ([]r3.Vec, error) {
	if t.Domain != Terrestrial {
		return nil, ErrDimensionMismatch
	}
	out := make([]r3.Vec, t.Len())
	for i, tp := range t.Points {
		altM, err := tp.Altitude()
		if err != nil {
			altM = 0
		}
		v, err := ECEFFromPointMeters(tp.Point, altM)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
