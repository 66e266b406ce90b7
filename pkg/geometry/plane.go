package geometry

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// Plane is the canonical unit square lying in the local z=0 plane,
// spanning x,y ∈ [-1, 1], with outward normal +z (§3, §4.1). World
// placement, size, and orientation all come from the owning Node's
// Transform.
type Plane struct{}

func NewPlane() *Plane {
	return &Plane{}
}

// Intersect solves for the ray's z=0 crossing and rejects it unless it
// falls within the unit square, exactly per §4.1.
func (pl *Plane) Intersect(ray core.Ray, side Side, tMin, tMax float64) (*HitRecord, bool) {
	dz := ray.Direction.Z
	if math.Abs(dz) < 1e-6 {
		return nil, false
	}

	t := -ray.Origin.Z / dz
	if t <= tMin || t >= tMax {
		return nil, false
	}

	point := ray.At(t)
	if math.Abs(point.X) > 1 || math.Abs(point.Y) > 1 {
		return nil, false
	}

	front := dz < 0
	if side == SideFront && !front {
		return nil, false
	}
	if side == SideBack && front {
		return nil, false
	}

	normal := core.NewVec3(0, 0, 1)
	u := (point.X + 1) / 2
	v := (point.Y + 1) / 2

	return &HitRecord{
		T:      t,
		Point:  point,
		Normal: normal,
		UVW:    core.NewVec3(u, v, 1),
		Front:  front,
	}, true
}

// Occludes reports whether the ray crosses the unit square within
// (tMin, tMax), ignoring side.
func (pl *Plane) Occludes(ray core.Ray, tMin, tMax float64) bool {
	dz := ray.Direction.Z
	if math.Abs(dz) < 1e-6 {
		return false
	}
	t := -ray.Origin.Z / dz
	if t <= tMin || t >= tMax {
		return false
	}
	point := ray.At(t)
	return math.Abs(point.X) <= 1 && math.Abs(point.Y) <= 1
}

// Bounds returns the local-space bounding box of the unit square, given a
// thin epsilon thickness along z so it never degenerates in a BVH.
func (pl *Plane) Bounds() core.AABB {
	const eps = 1e-4
	return core.NewAABB(core.NewVec3(-1, -1, -eps), core.NewVec3(1, 1, eps))
}
