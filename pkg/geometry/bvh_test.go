package geometry

import (
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// unitBoxAt returns a small unit-size AABB centered at center, used to
// build a synthetic BVH independent of any Shape implementation.
func unitBoxAt(center core.Vec3) core.AABB {
	half := core.NewVec3(0.5, 0.5, 0.5)
	return core.NewAABB(center.Subtract(half), center.Add(half))
}

func TestBVHIntersectFindsClosestLeaf(t *testing.T) {
	centers := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, 5),
		core.NewVec3(0, 0, 10),
	}
	bounds := make([]core.AABB, len(centers))
	for i, c := range centers {
		bounds[i] = unitBoxAt(c)
	}

	bvh := NewBVH(bounds, centers)

	ray := core.NewRay(core.NewVec3(0, 0, -100), core.NewVec3(0, 0, 1))
	hit, ok := bvh.Intersect(ray, 0.001, 1000.0, func(idx int, ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
		t, ok := bounds[idx].HitNear(ray, tMin, tMax)
		if !ok {
			return nil, false
		}
		return &HitRecord{T: t}, true
	})

	if !ok {
		t.Fatal("expected a hit, got miss")
	}
	if hit.T < 99 || hit.T > 100 {
		t.Errorf("expected to hit the nearest box first, got t=%f", hit.T)
	}
}

func TestBVHOccludesStopsAtFirstHit(t *testing.T) {
	centers := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(3, 3, 3)}
	bounds := []core.AABB{unitBoxAt(centers[0]), unitBoxAt(centers[1])}

	bvh := NewBVH(bounds, centers)

	ray := core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1))
	occluded := bvh.Occludes(ray, 0.001, 1000.0, func(idx int, ray core.Ray, tMin, tMax float64) bool {
		_, ok := bounds[idx].HitNear(ray, tMin, tMax)
		return ok
	})
	if !occluded {
		t.Error("expected ray to be occluded")
	}

	missRay := core.NewRay(core.NewVec3(100, 100, -10), core.NewVec3(0, 0, 1))
	if bvh.Occludes(missRay, 0.001, 1000.0, func(idx int, ray core.Ray, tMin, tMax float64) bool {
		_, ok := bounds[idx].HitNear(ray, tMin, tMax)
		return ok
	}) {
		t.Error("expected miss ray to not be occluded")
	}
}

func TestBVHEmptyInput(t *testing.T) {
	bvh := NewBVH(nil, nil)
	if bvh.Bounds() != (core.AABB{}) {
		t.Errorf("expected zero-value bounds for empty BVH, got %+v", bvh.Bounds())
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if _, ok := bvh.Intersect(ray, 0.001, 1000.0, func(int, core.Ray, float64, float64) (*HitRecord, bool) {
		return nil, false
	}); ok {
		t.Error("expected no hit from empty BVH")
	}
}

func TestBVHBuildWithManyPrimitivesSplitsInternally(t *testing.T) {
	var bounds []core.AABB
	var centroids []core.Vec3
	for i := 0; i < 50; i++ {
		c := core.NewVec3(float64(i)*2, 0, 0)
		bounds = append(bounds, unitBoxAt(c))
		centroids = append(centroids, c)
	}

	bvh := NewBVH(bounds, centroids)

	test := func(idx int, ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
		t, ok := bounds[idx].HitNear(ray, tMin, tMax)
		if !ok {
			return nil, false
		}
		return &HitRecord{T: t}, true
	}

	// Probe near the start, middle, and end of the primitive range so a
	// traversal bug that only reaches one leaf (e.g. starting at the wrong
	// root) can't pass by hitting a single lucky leaf.
	for _, x := range []float64{0, 48, 98} {
		ray := core.NewRay(core.NewVec3(x, 0, -10), core.NewVec3(0, 0, 1))
		hit, ok := bvh.Intersect(ray, 0.001, 1000.0, test)
		if !ok {
			t.Fatalf("expected to find the primitive near x=%f", x)
		}
		if hit.T < 9 || hit.T > 11 {
			t.Errorf("x=%f: expected t close to 10, got %f", x, hit.T)
		}
	}
}
