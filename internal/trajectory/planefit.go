package trajectory

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PlaneFit is a best-fit great-circle plane through a set of terrestrial
// points, represented by its unit normal vector. A point lies on the plane
// when its ECEF position vector is perpendicular to Normal.
type PlaneFit struct {
	Normal     r3.Vec
	ResidualKm float64 // RMS perpendicular distance of the input points from the fitted plane, in km
}

// planeFitStepRad and planeFitMaxIterations are the local search's fixed
// probe step (in the tangent-plane unit used to perturb the normal) and an
// iteration cap guarding against a pathological input that never settles.
const (
	planeFitStepRad       = 5e-8
	planeFitMaxIterations = 100000
)

// FindBestFitPlane searches for the great-circle plane minimizing
// Σᵢ |n · p̂ᵢ| over the trajectory's unit ECEF position vectors p̂ᵢ, using a
// fixed-step local search seeded from the cross product of the first and
// last point (stepping the last index inward past duplicates of the first).
//
// Each iteration builds two orthogonal tangent vectors at the current
// normal, probes eight neighbors offset by planeFitStepRad·(cos k, sin k)
// for k·π/4, k = 0..7, and moves to whichever neighbor most reduces the
// objective. It stops as soon as no neighbor improves on the current
// normal.
func FindBestFitPlane(t Trajectory) (PlaneFit, error) {
	if t.Domain != Terrestrial {
		return PlaneFit{}, ErrDimensionMismatch
	}
	if t.Len() < 2 {
		return PlaneFit{}, ErrTooFewPoints
	}
	if allPositionsAlmostEqual(t.Points) {
		return PlaneFit{}, ErrIdenticalPositions
	}
	vecs, err := ECEFTrajectory(t)
	if err != nil {
		return PlaneFit{}, err
	}

	normal, ok := seedNormal(vecs)
	if !ok {
		return PlaneFit{}, ErrIdenticalPositions
	}

	units := make([]r3.Vec, len(vecs))
	for i, v := range vecs {
		units[i] = r3.Unit(v)
	}

	obj := absDotSum(units, normal)
	for iter := 0; iter < planeFitMaxIterations; iter++ {
		axes := perturbationAxes(normal)
		a, b := axes[0], axes[1]

		bestCandidate := normal
		bestObj := obj
		improved := false
		for k := 0; k < 8; k++ {
			angle := float64(k) * math.Pi / 4
			offset := r3.Add(
				r3.Scale(planeFitStepRad*math.Cos(angle), a),
				r3.Scale(planeFitStepRad*math.Sin(angle), b),
			)
			candidate := r3.Unit(r3.Add(normal, offset))
			if o := absDotSum(units, candidate); o < bestObj {
				bestObj = o
				bestCandidate = candidate
				improved = true
			}
		}
		if !improved {
			break
		}
		normal, obj = bestCandidate, bestObj
	}

	rms := math.Sqrt(sumSquaredResidual(vecs, normal) / float64(len(vecs)))
	return PlaneFit{Normal: normal, ResidualKm: rms}, nil
}

// allPositionsAlmostEqual reports whether every point in pts sits within
// 1e-9 degrees of the first (the ECEF fit's notion of "identical
// positions", checked in lon/lat space before the ECEF conversion runs).
func allPositionsAlmostEqual(pts []TrajectoryPoint) bool {
	if len(pts) == 0 {
		return true
	}
	first := pts[0].Coords
	for _, p := range pts[1:] {
		if !pointsAlmostEqual(first, p.Coords, 1e-9) {
			return false
		}
	}
	return true
}

// seedNormal picks an initial plane normal from the cross product of the
// first and last ECEF vectors, skipping from the end inward past any
// duplicates of the first point. If that pair is still too close to
// parallel to give a stable cross product, it falls back to scanning every
// pair for the first one that isn't.
func seedNormal(vecs []r3.Vec) (r3.Vec, bool) {
	n := len(vecs)
	last := n - 1
	for last > 0 && nearlyEqualVec(vecs[0], vecs[last]) {
		last--
	}
	if last > 0 {
		if cross := r3.Cross(vecs[0], vecs[last]); r3.Norm(cross) > 1e-9 {
			return r3.Unit(cross), true
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cross := r3.Cross(vecs[i], vecs[j]); r3.Norm(cross) > 1e-9 {
				return r3.Unit(cross), true
			}
		}
	}
	return r3.Vec{}, false
}

func nearlyEqualVec(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-9
}

// perturbationAxes returns two vectors orthogonal to normal, spanning the
// tangent plane at normal, used as rotation axes during the local search.
func perturbationAxes(normal r3.Vec) []r3.Vec {
	ref := r3.Vec{X: 0, Y: 0, Z: 1}
	if math.Abs(normal.Z) > 0.9 {
		ref = r3.Vec{X: 1, Y: 0, Z: 0}
	}
	a := r3.Unit(r3.Cross(normal, ref))
	b := r3.Unit(r3.Cross(normal, a))
	return []r3.Vec{a, b}
}

// absDotSum is the local search's objective: the sum, over unit position
// vectors units, of the absolute value of each one's dot product with a
// candidate normal. It is minimized (ideally to 0) when every point lies
// exactly on the candidate's great circle.
func absDotSum(units []r3.Vec, normal r3.Vec) float64 {
	var total float64
	for _, u := range units {
		total += math.Abs(r3.Dot(u, normal))
	}
	return total
}

// sumSquaredResidual is used only to report ResidualKm: the sum of squared
// signed perpendicular distances (in km) of the raw, non-unit ECEF vectors
// from the fitted plane.
func sumSquaredResidual(vecs []r3.Vec, normal r3.Vec) float64 {
	var total float64
	for _, v := range vecs {
		d := r3.Dot(v, normal)
		total += d * d
	}
	return total
}

// ProjectTrajectoryOntoPlane projects each point of t onto the plane
// described by fit (removing the component of its ECEF position along
// fit.Normal), then inverts the ECEF transform to recover longitude and
// latitude. The result is bare lon/lat points: no altitude is recomputed,
// and the input points' properties (altitude included) are not carried
// over; t itself is not modified.
func ProjectTrajectoryOntoPlane(t Trajectory, fit PlaneFit) ([]Point, error) {
	if t.Len() == 0 {
		return nil, ErrTooFewPoints
	}
	if r3.Dot(fit.Normal, fit.Normal) == 0 {
		return nil, ErrZeroNorm
	}
	vecs, err := ECEFTrajectory(t)
	if err != nil {
		return nil, err
	}
	out := make([]Point, len(vecs))
	for i, v := range vecs {
		d := r3.Dot(v, fit.Normal)
		projected := r3.Sub(v, r3.Scale(d, fit.Normal))
		lonRad, latRad := geodeticFromECEF(projected)
		out[i] = NewPoint(Terrestrial, radToDeg(lonRad), radToDeg(latRad))
	}
	return out, nil
}

// geodeticFromECEF inverts the WGS-84 ECEF transform using Bowring's
// closed-form approximation, returning longitude and latitude in radians.
// No altitude is computed; a projected position is off the ellipsoid, and
// only its longitude and latitude are recovered.
func geodeticFromECEF(v r3.Vec) (lonRad, latRad float64) {
	const a = wgs84SemiMajorAxisKm
	b := a * math.Sqrt(1-wgs84EccentricitySq)
	secondEccentricitySq := (a*a - b*b) / (b * b)

	p := math.Hypot(v.X, v.Y)
	lonRad = math.Atan2(v.Y, v.X)
	theta := math.Atan2(v.Z*a, p*b)
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

	latRad = math.Atan2(
		v.Z+secondEccentricitySq*b*sinTheta*sinTheta*sinTheta,
		p-wgs84EccentricitySq*a*cosTheta*cosTheta*cosTheta,
	)
	return lonRad, latRad
}
