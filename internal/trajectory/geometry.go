package trajectory

import (
	"math"
	"time"
)

func degToRad(d float64) float64 { return d * math.Pi / 180.0 }
func radToDeg(r float64) float64 { return r * 180.0 / math.Pi }

// normalizeBearingDeg wraps a bearing into [0, 360).
func normalizeBearingDeg(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// Distance returns the domain's notion of distance between a and b.
// Terrestrial: great-circle distance on a sphere of radius EarthRadiusKm,
// using the stable haversine-equivalent central-angle form
// acos(cos(Δlat) - 2·cos(lat1)·cos(lat2)·sin²(Δlon/2)). Cartesian-D
// (including FeatureVector): Euclidean distance.
func Distance(a, b Point) float64 {
	switch a.Domain {
	case Terrestrial:
		lat1, lon1 := degToRad(a.Lat()), degToRad(a.Lon())
		lat2, lon2 := degToRad(b.Lat()), degToRad(b.Lon())
		dLat := lat2 - lat1
		dLon := lon2 - lon1
		cosArg := math.Cos(dLat) - 2*math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
		// Guard against floating point drift pushing the argument a hair
		// outside [-1, 1], which would make acos return NaN for
		// coincident/antipodal points.
		if cosArg > 1 {
			cosArg = 1
		} else if cosArg < -1 {
			cosArg = -1
		}
		centralAngle := math.Acos(cosArg)
		return EarthRadiusKm * centralAngle
	default:
		return euclideanDistance(a.Coords, b.Coords)
	}
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Bearing returns the domain's notion of initial direction from a to b.
// Terrestrial: initial great-circle bearing, degrees in [0, 360).
// Cartesian-2D: atan2(dy, dx) in radians. Undefined (coincident points)
// returns 0 in both cases.
func Bearing(a, b Point) float64 {
	switch a.Domain {
	case Terrestrial:
		if a.Lat() == b.Lat() && a.Lon() == b.Lon() {
			return 0
		}
		lat1, lon1 := degToRad(a.Lat()), degToRad(a.Lon())
		lat2, lon2 := degToRad(b.Lat()), degToRad(b.Lon())
		dLon := lon2 - lon1
		y := math.Sin(dLon) * math.Cos(lat2)
		x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
		return normalizeBearingDeg(radToDeg(math.Atan2(y, x)))
	default:
		dx := b.Coords[0] - a.Coords[0]
		dy := b.Coords[1] - a.Coords[1]
		if dx == 0 && dy == 0 {
			return 0
		}
		return math.Atan2(dy, dx)
	}
}

// Interpolate returns the point a fraction t of the way from a to b
// (t=0 -> a, t=1 -> b). Terrestrial uses great-circle (spherical vector)
// interpolation; antipodal inputs pick an arbitrary great circle by virtue
// of the underlying atan2/asqrt being well-defined except at the exact
// antipode, which is out of scope. Cartesian is componentwise linear.
func Interpolate(a, b Point, t float64) Point {
	switch a.Domain {
	case Terrestrial:
		if a.Lat() == b.Lat() && a.Lon() == b.Lon() {
			return a.Clone()
		}
		lat1, lon1 := degToRad(a.Lat()), degToRad(a.Lon())
		lat2, lon2 := degToRad(b.Lat()), degToRad(b.Lon())

		dLat := lat2 - lat1
		dLon := lon2 - lon1
		sinArg := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
		if sinArg > 1 {
			sinArg = 1
		} else if sinArg < 0 {
			sinArg = 0
		}
		sigma := 2 * math.Atan2(math.Sqrt(sinArg), math.Sqrt(1-sinArg))
		if sigma == 0 {
			return a.Clone()
		}

		A := math.Sin((1-t)*sigma) / math.Sin(sigma)
		B := math.Sin(t*sigma) / math.Sin(sigma)

		x := A*math.Cos(lat1)*math.Cos(lon1) + B*math.Cos(lat2)*math.Cos(lon2)
		y := A*math.Cos(lat1)*math.Sin(lon1) + B*math.Cos(lat2)*math.Sin(lon2)
		z := A*math.Sin(lat1) + B*math.Sin(lat2)

		lat3 := math.Atan2(z, math.Sqrt(x*x+y*y))
		lon3 := math.Atan2(y, x)

		return NewPoint(Terrestrial, radToDeg(lon3), radToDeg(lat3))
	default:
		coords := make([]float64, len(a.Coords))
		for i := range coords {
			coords[i] = a.Coords[i] + t*(b.Coords[i]-a.Coords[i])
		}
		return Point{Domain: a.Domain, Coords: coords}
	}
}

// InterpolateTrajectoryPoint blends two trajectory points at fraction t:
// coordinates via Interpolate, timestamp and every real property linearly
// blended; string and null properties copied from the earlier point (a).
func InterpolateTrajectoryPoint(a, b TrajectoryPoint, t float64) TrajectoryPoint {
	out := NewTrajectoryPoint(Interpolate(a.Point, b.Point, t), a.ObjectID, interpolateTime(a.Timestamp, b.Timestamp, t))
	out.CurrentLength = a.CurrentLength + t*(b.CurrentLength-a.CurrentLength)

	seen := make(map[string]bool)
	for _, key := range a.Properties.Keys() {
		seen[key] = true
		blendProperty(&out.Properties, key, a.Properties, b.Properties, t)
	}
	for _, key := range b.Properties.Keys() {
		if seen[key] {
			continue
		}
		blendProperty(&out.Properties, key, a.Properties, b.Properties, t)
	}
	return out
}

func blendProperty(out *PropertyMap, key string, a, b PropertyMap, t float64) {
	av, aerr := a.get(key, PropertyReal)
	bv, berr := b.get(key, PropertyReal)
	if aerr == nil && berr == nil {
		out.Set(key, RealProperty(av.RealVal+t*(bv.RealVal-av.RealVal)))
		return
	}
	// Fall back: copy whatever the earlier point (a) holds, or b's if a
	// lacks the key entirely.
	if v, ok := a.values[key]; ok {
		out.Set(key, v)
		return
	}
	if v, ok := b.values[key]; ok {
		out.Set(key, v)
	}
}

func interpolateTime(a, b time.Time, t float64) time.Time {
	da := a.UnixMicro()
	db := b.UnixMicro()
	blended := float64(da) + t*float64(db-da)
	return time.UnixMicro(int64(math.Round(blended))).UTC()
}

// UnsignedTurnAngle returns the absolute turn angle at vertex b between
// incoming edge ab and outgoing edge bc, in degrees. 0 for degenerate
// (coincident) triples.
func UnsignedTurnAngle(a, b, c Point) float64 {
	return math.Abs(SignedTurnAngle(a, b, c))
}

// SignedTurnAngle returns the signed turn angle at vertex b between
// incoming edge ab and outgoing edge bc, in degrees, normalized to
// (-180, 180]. Terrestrial: difference of bearings. Cartesian-2D: sign
// taken from the 2-D cross product of the edge vectors. 0 for degenerate
// (coincident) triples.
func SignedTurnAngle(a, b, c Point) float64 {
	switch a.Domain {
	case Terrestrial:
		if (a.Lat() == b.Lat() && a.Lon() == b.Lon()) || (b.Lat() == c.Lat() && b.Lon() == c.Lon()) {
			return 0
		}
		inbound := Bearing(a, b)
		outbound := Bearing(b, c)
		diff := outbound - inbound
		for diff > 180 {
			diff -= 360
		}
		for diff <= -180 {
			diff += 360
		}
		return diff
	default:
		ax := b.Coords[0] - a.Coords[0]
		ay := b.Coords[1] - a.Coords[1]
		bx := c.Coords[0] - b.Coords[0]
		by := c.Coords[1] - b.Coords[1]
		if (ax == 0 && ay == 0) || (bx == 0 && by == 0) {
			return 0
		}
		cross := ax*by - ay*bx
		dot := ax*bx + ay*by
		angle := math.Atan2(cross, dot)
		return radToDeg(angle)
	}
}

// SpeedBetween returns distance(a,b) / (b.Timestamp - a.Timestamp).
// Terrestrial returns km/h, cartesian returns units/s. Returns 0 when the
// timestamps coincide.
func SpeedBetween(a, b TrajectoryPoint) float64 {
	dt := b.Timestamp.Sub(a.Timestamp)
	if dt <= 0 {
		return 0
	}
	d := Distance(a.Point, b.Point)
	switch a.Domain {
	case Terrestrial:
		return d / dt.Hours()
	default:
		return d / dt.Seconds()
	}
}

// Length returns the sum of segment distances of a trajectory, equal to
// the CurrentLength of its last point.
func Length(points []TrajectoryPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].CurrentLength
}
