// Package dbscan implements density-based clustering over D-dimensional
// point sets with an anisotropic (per-dimension) neighborhood radius,
// generalizing the teacher's 2-D Euclidean-eps DBSCAN (clustering.go's
// SpatialIndex/expandCluster/buildClusters) to the box-shaped epsilon the
// kernel's distance-geometry and feature-vector points need: a trajectory
// and a feature-vector point may legitimately need a tighter tolerance on
// one axis than another.
package dbscan

import "github.com/sandialabs/tracktable-go/internal/rtree"

// unvisited and noise are sentinel labels kept out of the 0-based cluster
// id space (unvisited can't be 0, since 0 is the first real cluster id).
// unvisited never appears in a returned Result; noise is returned as the
// -1 label of points that belong to no cluster.
const (
	unvisited = -2
	noise     = -1
)

// Result is the cluster assignment for one input point: ClusterID is -1
// for noise, otherwise a 0-based cluster index assigned in the order
// clusters are discovered while scanning points left to right.
type Result struct {
	ClusterID int
}

// ClusterLabels runs DBSCAN over points using epsilonBox as the per-
// dimension neighborhood half-width (a point q is in p's neighborhood iff
// |q[i] - p[i]| <= epsilonBox[i] for every axis i) and minPoints as the
// minimum neighborhood size (including the point itself) to seed a
// cluster. Returns one Result per input point, in input order.
func ClusterLabels(points [][]float64, epsilonBox []float64, minPoints int) []Result {
	n := len(points)
	if n == 0 {
		return nil
	}
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}
	index := buildIndex(points, epsilonBox)

	clusterID := -1
	for i := 0; i < n; i++ {
		if labels[i] != unvisited {
			continue
		}
		neighbors := regionQuery(index, points, i, epsilonBox)
		if len(neighbors) < minPoints {
			labels[i] = noise
			continue
		}
		clusterID++
		expandCluster(index, points, labels, i, neighbors, clusterID, epsilonBox, minPoints)
	}

	out := make([]Result, n)
	for i, l := range labels {
		out[i] = Result{ClusterID: l}
	}
	return out
}

// buildIndex builds an R-tree over points scaled so that the anisotropic
// epsilonBox becomes an isotropic unit box: dividing each axis by its
// epsilon turns a box query of half-width 1 on every axis into exactly the
// desired per-axis neighborhood.
func buildIndex(points [][]float64, epsilonBox []float64) *rtree.RTree {
	scaled := make([][]float64, len(points))
	for i, p := range points {
		scaled[i] = scalePoint(p, epsilonBox)
	}
	return rtree.Build(scaled, 16)
}

func scalePoint(p, epsilonBox []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		eps := epsilonBox[i]
		if eps == 0 {
			eps = 1
		}
		out[i] = v / eps
	}
	return out
}

// regionQuery returns the indices of every point (including idx itself)
// within epsilonBox of points[idx], via a box query on the scaled index
// followed by an exact per-axis check (on an axis whose epsilon is 0 the
// scaled query still spans ±1, and division rounding can widen a bound;
// the exact check below trims those extra candidates back).
func regionQuery(index *rtree.RTree, points [][]float64, idx int, epsilonBox []float64) []int {
	p := points[idx]
	min := make([]float64, len(p))
	max := make([]float64, len(p))
	for i, v := range p {
		eps := epsilonBox[i]
		if eps == 0 {
			eps = 1
		}
		min[i] = v/eps - 1
		max[i] = v/eps + 1
	}
	candidates := index.FindPointsInBox(min, max)

	var out []int
	for _, c := range candidates {
		if inBox(points[c], p, epsilonBox) {
			out = append(out, c)
		}
	}
	return out
}

func inBox(q, p, epsilonBox []float64) bool {
	for i := range p {
		if q[i] < p[i]-epsilonBox[i] || q[i] > p[i]+epsilonBox[i] {
			return false
		}
	}
	return true
}

// expandCluster grows clusterID outward from a core point using a
// breadth-first queue of neighbors, exactly mirroring the teacher's
// expandCluster: border points absorb a cluster label without becoming
// seeds themselves, and only neighborhoods meeting minPoints re-seed
// expansion.
func expandCluster(index *rtree.RTree, points [][]float64, labels []int,
	seedIdx int, neighbors []int, clusterID int, epsilonBox []float64, minPoints int) {

	labels[seedIdx] = clusterID

	queue := append([]int{}, neighbors...)
	for j := 0; j < len(queue); j++ {
		idx := queue[j]
		if labels[idx] == noise {
			labels[idx] = clusterID
		}
		if labels[idx] != unvisited {
			continue
		}
		labels[idx] = clusterID
		more := regionQuery(index, points, idx, epsilonBox)
		if len(more) >= minPoints {
			queue = append(queue, more...)
		}
	}
}
