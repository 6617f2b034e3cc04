package rtree

import "testing"

func gridPoints() [][]float64 {
	var pts [][]float64
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			pts = append(pts, []float64{float64(x), float64(y)})
		}
	}
	return pts
}

func TestBuildNilOnEmpty(t *testing.T) {
	if tree := Build(nil, 4); tree != nil {
		t.Error("Build(nil) should return nil")
	}
}

func TestFindPointsInBox(t *testing.T) {
	pts := gridPoints()
	tree := Build(pts, 4)

	got := tree.FindPointsInBox([]float64{1, 1}, []float64{2, 2})
	if len(got) != 4 {
		t.Fatalf("got %d points, want 4 (the 2x2 block from (1,1) to (2,2))", len(got))
	}
	for _, idx := range got {
		x, y := pts[idx][0], pts[idx][1]
		if x < 1 || x > 2 || y < 1 || y > 2 {
			t.Errorf("point %v outside query box", pts[idx])
		}
	}
}

func TestFindPointsInBoxEmptyRegion(t *testing.T) {
	pts := gridPoints()
	tree := Build(pts, 4)
	got := tree.FindPointsInBox([]float64{100, 100}, []float64{200, 200})
	if len(got) != 0 {
		t.Errorf("got %d points, want 0", len(got))
	}
}

func TestFindNearestNeighbors(t *testing.T) {
	pts := [][]float64{{0, 0}, {10, 10}, {0.5, 0}, {5, 5}}
	tree := Build(pts, 2)

	got := tree.FindNearestNeighbors([]float64{0, 0}, 2)
	if len(got) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(got))
	}
	if got[0] != 0 {
		t.Errorf("nearest neighbor index = %d, want 0 (the query point itself)", got[0])
	}
	if got[1] != 2 {
		t.Errorf("second-nearest index = %d, want 2 ((0.5,0))", got[1])
	}
}

func TestFindNearestNeighborsKLargerThanSet(t *testing.T) {
	pts := [][]float64{{0, 0}, {1, 1}}
	tree := Build(pts, 8)
	got := tree.FindNearestNeighbors([]float64{0, 0}, 10)
	if len(got) != 2 {
		t.Errorf("got %d neighbors, want 2 (capped at input size)", len(got))
	}
}

func TestFindNearestNeighborsDeterministicTieBreak(t *testing.T) {
	// Two points equidistant from the query; the lower original index wins.
	pts := [][]float64{{-1, 0}, {1, 0}}
	tree := Build(pts, 8)
	got := tree.FindNearestNeighbors([]float64{0, 0}, 1)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("got %v, want [0]", got)
	}
}
