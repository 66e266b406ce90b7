package geometry

import (
	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// bvhNode is one node of the static binary tree built over a mesh's faces.
// Internal nodes set left/right to child indices into BVH.nodes; leaf nodes
// set left = -1 and describe a (start, count) range into BVH.perm instead
// of holding a []Shape slice, per §4.2's index-range leaf requirement.
type bvhNode struct {
	Bounds      core.AABB
	Left, Right int32
	Start       int32
	Count       int32
}

// BVH is a static bounding volume hierarchy over a flat set of primitive
// bounding boxes (here, a mesh's triangle faces), built once at mesh load
// and traversed with an explicit stack rather than recursion (§4.2,
// §5 "BVH traversal must use an explicit stack"). It is deliberately
// agnostic to what a "primitive" is beyond its bounds/centroid — the mesh
// owns the Möller-Trumbore math and supplies it back in via LeafTest.
type BVH struct {
	nodes []bvhNode
	perm  []int32
	root  int32
}

// leafThreshold: a node with this many or fewer primitives becomes a leaf,
// grounded in the teacher's pkg/geometry/bvh.go leafThreshold constant.
const leafThreshold = 8

// NewBVH builds a BVH over the given primitive bounding boxes and
// centroids (parallel slices, one entry per primitive), using the
// teacher's median-split-on-longest-axis construction generalized to
// operate on indices instead of Shape values.
func NewBVH(bounds []core.AABB, centroids []core.Vec3) *BVH {
	bvh := &BVH{}
	if len(bounds) == 0 {
		return bvh
	}

	perm := make([]int32, len(bounds))
	for i := range perm {
		perm[i] = int32(i)
	}
	bvh.perm = perm

	bvh.root = bvh.buildRange(bounds, centroids, 0, int32(len(perm)))
	return bvh
}

// buildRange recursively partitions perm[start:end] and appends the
// resulting subtree to bvh.nodes, returning the new node's index.
func (bvh *BVH) buildRange(bounds []core.AABB, centroids []core.Vec3, start, end int32) int32 {
	var box core.AABB
	for i := start; i < end; i++ {
		if i == start {
			box = bounds[bvh.perm[i]]
		} else {
			box = box.Union(bounds[bvh.perm[i]])
		}
	}

	count := end - start
	if count <= leafThreshold {
		idx := int32(len(bvh.nodes))
		bvh.nodes = append(bvh.nodes, bvhNode{Bounds: box, Left: -1, Start: start, Count: count})
		return idx
	}

	axis := box.LongestAxis()
	var lo, hi float64
	switch axis {
	case 0:
		lo, hi = box.Min.X, box.Max.X
	case 1:
		lo, hi = box.Min.Y, box.Max.Y
	default:
		lo, hi = box.Min.Z, box.Max.Z
	}

	if hi <= lo {
		idx := int32(len(bvh.nodes))
		bvh.nodes = append(bvh.nodes, bvhNode{Bounds: box, Left: -1, Start: start, Count: count})
		return idx
	}

	mid := (lo + hi) * 0.5
	split := partition(bvh.perm[start:end], centroids, axis, mid)
	splitIdx := start + int32(split)

	if splitIdx == start || splitIdx == end {
		idx := int32(len(bvh.nodes))
		bvh.nodes = append(bvh.nodes, bvhNode{Bounds: box, Left: -1, Start: start, Count: count})
		return idx
	}

	idx := int32(len(bvh.nodes))
	bvh.nodes = append(bvh.nodes, bvhNode{Bounds: box})

	left := bvh.buildRange(bounds, centroids, start, splitIdx)
	right := bvh.buildRange(bounds, centroids, splitIdx, end)
	bvh.nodes[idx].Left = left
	bvh.nodes[idx].Right = right
	return idx
}

// partition reorders perm in place so every entry whose centroid falls
// below mid along axis comes first, returning the split point.
func partition(perm []int32, centroids []core.Vec3, axis int, mid float64) int {
	i := 0
	for j := 0; j < len(perm); j++ {
		var v float64
		switch axis {
		case 0:
			v = centroids[perm[j]].X
		case 1:
			v = centroids[perm[j]].Y
		default:
			v = centroids[perm[j]].Z
		}
		if v < mid {
			perm[i], perm[j] = perm[j], perm[i]
			i++
		}
	}
	return i
}

// LeafTest is supplied by the owning mesh to test a single primitive
// (identified by its original index) against a ray.
type LeafTest func(primitiveIndex int, ray core.Ray, tMin, tMax float64) (*HitRecord, bool)

// OcclusionTest is the shadow-ray counterpart of LeafTest: true as soon as
// any hit is found, no need to find the closest one.
type OcclusionTest func(primitiveIndex int, ray core.Ray, tMin, tMax float64) bool

type bvhStackEntry struct {
	node int32
	tMin float64
}

// Intersect traverses the tree with an explicit stack, descending into the
// nearer child first so an early leaf hit can prune the farther subtree,
// exactly per §4.2.
func (bvh *BVH) Intersect(ray core.Ray, tMin, tMax float64, test LeafTest) (*HitRecord, bool) {
	if len(bvh.nodes) == 0 {
		return nil, false
	}

	var best *HitRecord
	closest := tMax

	stack := make([]bvhStackEntry, 0, 64)
	stack = append(stack, bvhStackEntry{node: bvh.root, tMin: tMin})

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if entry.tMin > closest {
			continue
		}
		node := &bvh.nodes[entry.node]
		if _, ok := node.Bounds.HitNear(ray, tMin, closest); !ok {
			continue
		}

		if node.Left < 0 {
			for i := node.Start; i < node.Start+node.Count; i++ {
				if hit, ok := test(int(bvh.perm[i]), ray, tMin, closest); ok {
					best = hit
					closest = hit.T
				}
			}
			continue
		}

		leftNear, leftOK := bvh.nodes[node.Left].Bounds.HitNear(ray, tMin, closest)
		rightNear, rightOK := bvh.nodes[node.Right].Bounds.HitNear(ray, tMin, closest)

		switch {
		case leftOK && rightOK:
			if leftNear < rightNear {
				stack = append(stack, bvhStackEntry{node: node.Right, tMin: rightNear})
				stack = append(stack, bvhStackEntry{node: node.Left, tMin: leftNear})
			} else {
				stack = append(stack, bvhStackEntry{node: node.Left, tMin: leftNear})
				stack = append(stack, bvhStackEntry{node: node.Right, tMin: rightNear})
			}
		case leftOK:
			stack = append(stack, bvhStackEntry{node: node.Left, tMin: leftNear})
		case rightOK:
			stack = append(stack, bvhStackEntry{node: node.Right, tMin: rightNear})
		}
	}

	return best, best != nil
}

// Occludes traverses the tree and returns as soon as any primitive reports
// an occluding hit; it does not need to order children by distance since
// it stops at the first success.
func (bvh *BVH) Occludes(ray core.Ray, tMin, tMax float64, test OcclusionTest) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	stack := make([]int32, 0, 64)
	stack = append(stack, bvh.root)

	for len(stack) > 0 {
		nodeIdx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &bvh.nodes[nodeIdx]
		if _, ok := node.Bounds.HitNear(ray, tMin, tMax); !ok {
			continue
		}

		if node.Left < 0 {
			for i := node.Start; i < node.Start+node.Count; i++ {
				if test(int(bvh.perm[i]), ray, tMin, tMax) {
					return true
				}
			}
			continue
		}

		stack = append(stack, node.Left, node.Right)
	}

	return false
}

// Bounds returns the bounding box of the whole tree (its root node).
func (bvh *BVH) Bounds() core.AABB {
	if len(bvh.nodes) == 0 {
		return core.AABB{}
	}
	return bvh.nodes[bvh.root].Bounds
}
