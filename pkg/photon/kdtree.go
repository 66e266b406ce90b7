package photon

import (
	"sort"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// kdNode mirrors the teacher-derived geometry.BVH's median-split-on-
// longest-axis construction (pkg/geometry/bvh.go), generalized from
// bounding-box primitives to bare points: each internal node splits its
// point range at the median along the bounding box's longest axis; leaves
// hold a small index range into tree.perm.
type kdNode struct {
	bounds      core.AABB
	left, right int32
	start       int32
	count       int32
}

type kdTree struct {
	photons []Photon
	nodes   []kdNode
	perm    []int32
}

const kdLeafThreshold = 8

func newKDTree(photons []Photon) *kdTree {
	t := &kdTree{photons: photons}
	if len(photons) == 0 {
		return t
	}
	perm := make([]int32, len(photons))
	for i := range perm {
		perm[i] = int32(i)
	}
	t.perm = perm
	t.buildRange(0, int32(len(perm)))
	return t
}

func (t *kdTree) boundsOf(start, end int32) core.AABB {
	points := make([]core.Vec3, 0, end-start)
	for i := start; i < end; i++ {
		points = append(points, t.photons[t.perm[i]].Position)
	}
	return core.NewAABBFromPoints(points...)
}

func (t *kdTree) buildRange(start, end int32) int32 {
	box := t.boundsOf(start, end)
	count := end - start

	if count <= kdLeafThreshold {
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, kdNode{bounds: box, left: -1, start: start, count: count})
		return idx
	}

	axis := box.LongestAxis()
	lo, hi := axisRange(box, axis)
	if hi <= lo {
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, kdNode{bounds: box, left: -1, start: start, count: count})
		return idx
	}

	mid := (lo + hi) * 0.5
	split := t.partition(start, end, axis, mid)
	if split == start || split == end {
		idx := int32(len(t.nodes))
		t.nodes = append(t.nodes, kdNode{bounds: box, left: -1, start: start, count: count})
		return idx
	}

	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, kdNode{bounds: box})
	left := t.buildRange(start, split)
	right := t.buildRange(split, end)
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	return idx
}

func (t *kdTree) partition(start, end int32, axis int, mid float64) int32 {
	i := start
	for j := start; j < end; j++ {
		if axisValue(t.photons[t.perm[j]].Position, axis) < mid {
			t.perm[i], t.perm[j] = t.perm[j], t.perm[i]
			i++
		}
	}
	return i
}

func axisRange(box core.AABB, axis int) (lo, hi float64) {
	switch axis {
	case 0:
		return box.Min.X, box.Max.X
	case 1:
		return box.Min.Y, box.Max.Y
	default:
		return box.Min.Z, box.Max.Z
	}
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

type kdCandidate struct {
	index  int32
	distSq float64
}

// nearest walks the tree collecting every photon in a subtree that could
// still hold a closer point than the current k-th best, then sorts the
// survivors and truncates to k. Good enough for a scaffold: real photon
// mapping would keep a bounded max-heap during descent instead of
// re-sorting, but the map is capacity-bounded so this stays cheap.
func (t *kdTree) nearest(p core.Vec3, k int) ([]int32, float64) {
	if len(t.nodes) == 0 {
		return nil, 0
	}

	var candidates []kdCandidate
	worstDistSq := func() float64 {
		if len(candidates) < k {
			return -1 // unbounded: every subtree still worth visiting
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].distSq < candidates[j].distSq })
		candidates = candidates[:k]
		return candidates[k-1].distSq
	}

	// buildRange appends each internal node before its children, so the
	// root is always node 0.
	stack := []int32{0}
	for len(stack) > 0 {
		nodeIdx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := t.nodes[nodeIdx]

		if w := worstDistSq(); w >= 0 && !nodeMayContainCloser(node.bounds, p, w) {
			continue
		}

		if node.left < 0 {
			for i := node.start; i < node.start+node.count; i++ {
				idx := t.perm[i]
				d := t.photons[idx].Position.Subtract(p).LengthSquared()
				candidates = append(candidates, kdCandidate{index: idx, distSq: d})
			}
			continue
		}
		stack = append(stack, node.left, node.right)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].distSq < candidates[j].distSq })
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	result := make([]int32, len(candidates))
	maxDistSq := 0.0
	for i, c := range candidates {
		result[i] = c.index
		if c.distSq > maxDistSq {
			maxDistSq = c.distSq
		}
	}
	return result, maxDistSq
}

// nodeMayContainCloser reports whether any point inside box could be
// closer to p than sqrt(worstDistSq), i.e. whether this subtree is still
// worth descending into.
func nodeMayContainCloser(box core.AABB, p core.Vec3, worstDistSq float64) bool {
	var d float64
	if p.X < box.Min.X {
		d += (box.Min.X - p.X) * (box.Min.X - p.X)
	} else if p.X > box.Max.X {
		d += (p.X - box.Max.X) * (p.X - box.Max.X)
	}
	if p.Y < box.Min.Y {
		d += (box.Min.Y - p.Y) * (box.Min.Y - p.Y)
	} else if p.Y > box.Max.Y {
		d += (p.Y - box.Max.Y) * (p.Y - box.Max.Y)
	}
	if p.Z < box.Min.Z {
		d += (box.Min.Z - p.Z) * (box.Min.Z - p.Z)
	} else if p.Z > box.Max.Z {
		d += (p.Z - box.Max.Z) * (p.Z - box.Max.Z)
	}
	return d <= worstDistSq
}
