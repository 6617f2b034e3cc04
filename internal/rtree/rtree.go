// Package rtree implements a fixed-dimension, bulk-loaded R-tree over
// point data, generalizing the teacher's grid-based spatial index (cell
// hashing with Szudzik pairing, used there for 2-D DBSCAN neighbor queries)
// to an arbitrary number of dimensions with a proper tree structure rather
// than a flat grid, so it also serves higher-dimensional distance-geometry
// and feature-vector queries.
package rtree

import (
	"container/heap"
	"math"
	"sort"
)

// Box is an axis-aligned bounding box in D dimensions.
type Box struct {
	Min []float64
	Max []float64
}

func boxOf(p []float64) Box {
	min := make([]float64, len(p))
	max := make([]float64, len(p))
	copy(min, p)
	copy(max, p)
	return Box{Min: min, Max: max}
}

func union(a, b Box) Box {
	min := make([]float64, len(a.Min))
	max := make([]float64, len(a.Max))
	for i := range a.Min {
		min[i] = math.Min(a.Min[i], b.Min[i])
		max[i] = math.Max(a.Max[i], b.Max[i])
	}
	return Box{Min: min, Max: max}
}

func (b Box) intersects(o Box) bool {
	for i := range b.Min {
		if b.Max[i] < o.Min[i] || b.Min[i] > o.Max[i] {
			return false
		}
	}
	return true
}

// minDistSq returns the squared distance from p to the nearest point of b
// (0 if p is inside b), used for the k-NN branch-and-bound search.
func (b Box) minDistSq(p []float64) float64 {
	var sum float64
	for i, v := range p {
		if v < b.Min[i] {
			d := b.Min[i] - v
			sum += d * d
		} else if v > b.Max[i] {
			d := v - b.Max[i]
			sum += d * d
		}
	}
	return sum
}

// entry is a leaf-level item: one input point and its original index.
type entry struct {
	point []float64
	index int
	box   Box
}

// node is either a leaf (holding entries directly) or an internal node
// (holding child nodes), mirroring a classic R-tree's two-level node
// shape collapsed into one type for simplicity.
type node struct {
	box      Box
	entries  []entry // non-nil only at leaves
	children []*node // non-nil only at internal nodes
}

func (n *node) isLeaf() bool { return n.children == nil }

// RTree is a static, bulk-built spatial index over D-dimensional points.
// It does not support incremental insertion; build a new tree when the
// point set changes.
type RTree struct {
	dim    int
	fanout int
	root   *node
}

// Build constructs an RTree over points by bulk loading: leaves hold at
// most fanout entries each; when there are more than fanout points, a
// single internal root holds every leaf directly, so the root's child
// count is not bounded by fanout. Returns nil if points is empty.
func Build(points [][]float64, fanout int) *RTree {
	if len(points) == 0 {
		return nil
	}
	if fanout < 2 {
		fanout = 2
	}
	dim := len(points[0])

	entries := make([]entry, len(points))
	for i, p := range points {
		entries[i] = entry{point: p, index: i, box: boxOf(p)}
	}

	root := strBuild(entries, dim, fanout)
	return &RTree{dim: dim, fanout: fanout, root: root}
}

// strBuild sorts entries along the first axis, cuts the sorted run into
// about sqrt(len/fanout) slabs and each slab into leaves of at most
// `fanout` entries. No other axis is sorted, and the tree has at most two
// levels (the leaves and one root above them).
func strBuild(entries []entry, dim, fanout int) *node {
	return strBuildLevel(entries, dim, fanout, 0)
}

func strBuildLevel(entries []entry, dim, fanout, axis int) *node {
	if len(entries) <= fanout {
		return leafNode(entries)
	}

	sortAxis := axis % dim
	sorted := make([]entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].point[sortAxis] < sorted[j].point[sortAxis]
	})

	// Number of leaf-groups needed at this level, then the number of
	// top-level slabs so that slices of slabs each hold ~fanout groups.
	numGroups := (len(sorted) + fanout - 1) / fanout
	numSlabs := int(math.Ceil(math.Sqrt(float64(numGroups))))
	if numSlabs < 1 {
		numSlabs = 1
	}
	slabSize := (len(sorted) + numSlabs - 1) / numSlabs

	var children []*node
	for i := 0; i < len(sorted); i += slabSize {
		end := i + slabSize
		if end > len(sorted) {
			end = len(sorted)
		}
		slab := sorted[i:end]
		children = append(children, groupIntoChildren(slab, dim, fanout, axis+1)...)
	}
	return internalNode(children)
}

// groupIntoChildren splits a slab (already sorted along the outer axis)
// into runs of at most fanout entries, one leaf per run.
func groupIntoChildren(slab []entry, dim, fanout, nextAxis int) []*node {
	var out []*node
	for i := 0; i < len(slab); i += fanout {
		end := i + fanout
		if end > len(slab) {
			end = len(slab)
		}
		group := slab[i:end]
		if len(group) <= fanout {
			out = append(out, leafNode(group))
		} else {
			out = append(out, strBuildLevel(group, dim, fanout, nextAxis))
		}
	}
	return out
}

func leafNode(entries []entry) *node {
	n := &node{entries: append([]entry{}, entries...)}
	n.box = entries[0].box
	for _, e := range entries[1:] {
		n.box = union(n.box, e.box)
	}
	return n
}

func internalNode(children []*node) *node {
	n := &node{children: children}
	n.box = children[0].box
	for _, c := range children[1:] {
		n.box = union(n.box, c.box)
	}
	return n
}

// FindPointsInBox returns the indices (into the slice passed to Build) of
// every point contained within box, in ascending index order.
func (t *RTree) FindPointsInBox(min, max []float64) []int {
	if t == nil || t.root == nil {
		return nil
	}
	query := Box{Min: min, Max: max}
	var out []int
	collectInBox(t.root, query, &out)
	sort.Ints(out)
	return out
}

func collectInBox(n *node, query Box, out *[]int) {
	if !n.box.intersects(query) {
		return
	}
	if n.isLeaf() {
		for _, e := range n.entries {
			if pointInBox(e.point, query) {
				*out = append(*out, e.index)
			}
		}
		return
	}
	for _, c := range n.children {
		collectInBox(c, query, out)
	}
}

func pointInBox(p []float64, b Box) bool {
	for i, v := range p {
		if v < b.Min[i] || v > b.Max[i] {
			return false
		}
	}
	return true
}

// pqItem is one entry in the best-first search priority queue: either an
// internal node (expand later) or a leaf point (a candidate result),
// ordered by minimum possible distance to the query point so the search
// never visits a subtree that can't beat the current k-th best result.
type pqItem struct {
	distSq float64
	n      *node  // non-nil for an unexpanded subtree
	leaf   *entry // non-nil for a concrete candidate point
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].distSq != pq[j].distSq {
		return pq[i].distSq < pq[j].distSq
	}
	// Deterministic tie-break: leaf candidates sort by original index,
	// subtrees (which haven't resolved to an index yet) sort first, so every
	// point at a given distance is queued before any of them is emitted.
	li, lj := pq[i].leaf, pq[j].leaf
	if li != nil && lj != nil {
		return li.index < lj.index
	}
	return lj != nil
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x any)   { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// FindNearestNeighbors returns the indices of the k closest points to
// query, nearest first, using a best-first branch-and-bound search over
// the tree (only subtrees whose bounding box could contain a closer point
// than what's already been found are ever expanded). Ties in distance are
// broken by ascending original index (insertion order into Build), so
// results are deterministic regardless of tree shape.
func (t *RTree) FindNearestNeighbors(query []float64, k int) []int {
	if t == nil || t.root == nil || k <= 0 {
		return nil
	}
	pq := &priorityQueue{{distSq: t.root.box.minDistSq(query), n: t.root}}
	heap.Init(pq)

	var result []int
	for pq.Len() > 0 && len(result) < k {
		item := heap.Pop(pq).(pqItem)
		if item.leaf != nil {
			result = append(result, item.leaf.index)
			continue
		}
		n := item.n
		if n.isLeaf() {
			for i := range n.entries {
				e := &n.entries[i]
				heap.Push(pq, pqItem{distSq: sqDist(e.point, query), leaf: e})
			}
			continue
		}
		for _, c := range n.children {
			heap.Push(pq, pqItem{distSq: c.box.minDistSq(query), n: c})
		}
	}
	return result
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
