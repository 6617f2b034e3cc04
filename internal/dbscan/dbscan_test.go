package dbscan

import "testing"

func TestClusterLabelsTwoClusters(t *testing.T) {
	points := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1}, // cluster A
		{10, 10}, {10.1, 10}, {10, 10.1}, // cluster B
	}
	epsilonBox := []float64{0.5, 0.5}
	results := ClusterLabels(points, epsilonBox, 2)

	if len(results) != len(points) {
		t.Fatalf("got %d results, want %d", len(results), len(points))
	}
	clusterA := results[0].ClusterID
	clusterB := results[3].ClusterID
	if clusterA < 0 || clusterB < 0 {
		t.Fatalf("expected both clusters to be assigned non-negative ids, got %d and %d", clusterA, clusterB)
	}
	if clusterA == clusterB {
		t.Error("well-separated clusters should receive different ids")
	}
	if clusterA != 0 && clusterB != 0 {
		t.Errorf("expected the first discovered cluster to be id 0, got %d and %d", clusterA, clusterB)
	}
	for i := 1; i < 3; i++ {
		if results[i].ClusterID != clusterA {
			t.Errorf("point %d not grouped with cluster A", i)
		}
	}
	for i := 4; i < 6; i++ {
		if results[i].ClusterID != clusterB {
			t.Errorf("point %d not grouped with cluster B", i)
		}
	}
}

func TestClusterLabelsNoise(t *testing.T) {
	points := [][]float64{{0, 0}, {100, 100}, {-100, -100}}
	results := ClusterLabels(points, []float64{1, 1}, 2)
	for i, r := range results {
		if r.ClusterID != -1 {
			t.Errorf("point %d = %d, want -1 (noise, no neighbors within eps)", i, r.ClusterID)
		}
	}
}

func TestClusterLabelsAnisotropicEpsilon(t *testing.T) {
	// Points close on x but spread far apart on y: a tight x-epsilon and a
	// loose y-epsilon should still bind them into one cluster.
	points := [][]float64{{0, 0}, {0.1, 5}, {0.2, -5}}
	epsilonBox := []float64{0.5, 10}
	results := ClusterLabels(points, epsilonBox, 2)

	first := results[0].ClusterID
	if first < 0 {
		t.Fatalf("expected a non-negative cluster id, got %d", first)
	}
	for i, r := range results {
		if r.ClusterID != first {
			t.Errorf("point %d = %d, want %d (all in one cluster under the anisotropic box)", i, r.ClusterID, first)
		}
	}
}

func TestClusterLabelsEmpty(t *testing.T) {
	if results := ClusterLabels(nil, []float64{1, 1}, 2); results != nil {
		t.Errorf("ClusterLabels(nil) = %v, want nil", results)
	}
}
