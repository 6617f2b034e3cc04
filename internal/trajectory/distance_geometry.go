package trajectory

// DistanceGeometryByDistance computes the trajectory's distance-geometry
// signature using control points sampled by arc-length fraction. For
// levels d in [1, D], the d+1 control points at fractions k/d (k=0..d)
// are sampled and the d consecutive chord lengths between them are
// recorded. All chords are then normalized by the maximum chord length
// observed across every level, so values lie in [0, 1]. The result is a
// flat vector of length D(D+1)/2 in level-major order. Empty or
// single-point trajectories return the zero vector of the expected
// length.
func DistanceGeometryByDistance(t Trajectory, D int) []float64 {
	return distanceGeometry(D, func(f float64) TrajectoryPoint {
		return PointAtLengthFraction(t, f)
	}, t.Len())
}

// DistanceGeometryByTime is DistanceGeometryByDistance's time-sampled
// counterpart: control points are taken via PointAtTimeFraction instead
// of PointAtLengthFraction.
func DistanceGeometryByTime(t Trajectory, D int) []float64 {
	return distanceGeometry(D, func(f float64) TrajectoryPoint {
		return PointAtTimeFraction(t, f)
	}, t.Len())
}

func distanceGeometry(D int, sampleAt func(float64) TrajectoryPoint, n int) []float64 {
	size := D * (D + 1) / 2
	if n < 2 {
		return make([]float64, size)
	}

	result := make([]float64, 0, size)
	levels := make([][]float64, D)
	maxChord := 0.0

	for d := 1; d <= D; d++ {
		controlPoints := make([]TrajectoryPoint, d+1)
		for k := 0; k <= d; k++ {
			frac := float64(k) / float64(d)
			controlPoints[k] = sampleAtEndpointRule(sampleAt, frac)
		}
		chords := make([]float64, d)
		for k := 0; k < d; k++ {
			chords[k] = Distance(controlPoints[k].Point, controlPoints[k+1].Point)
			if chords[k] > maxChord {
				maxChord = chords[k]
			}
		}
		levels[d-1] = chords
	}

	for _, chords := range levels {
		for _, c := range chords {
			if maxChord > 0 {
				result = append(result, c/maxChord)
			} else {
				result = append(result, 0)
			}
		}
	}
	return result
}

// sampleAtEndpointRule enforces the endpoint rule from spec.md §4.4:
// fraction 0 returns first, fraction 1 returns last, handled naturally by
// the underlying PointAtLengthFraction/PointAtTimeFraction kernels — this
// wrapper exists so both call sites funnel through one place.
func sampleAtEndpointRule(sampleAt func(float64) TrajectoryPoint, f float64) TrajectoryPoint {
	return sampleAt(f)
}
