package geometry

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// Sphere is the canonical unit sphere centered at the origin with radius 1,
// expressed in a shape's own local frame (§3, §4.1); world placement,
// scaling, and off-center positioning all come from the owning Node's
// Transform rather than fields on Sphere itself.
type Sphere struct{}

// NewSphere returns the unit sphere.
func NewSphere() *Sphere {
	return &Sphere{}
}

// Intersect solves the quadratic a·t² + 2·halfB·t + c = 0 for a ray against
// the unit sphere (center at origin, radius 1): a = d·d, halfB = p·d,
// c = p·p - 1, exactly per §4.1.
func (s *Sphere) Intersect(ray core.Ray, side Side, tMin, tMax float64) (*HitRecord, bool) {
	p := ray.Origin
	d := ray.Direction

	a := d.Dot(d)
	halfB := p.Dot(d)
	c := p.Dot(p) - 1

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		// discriminant == 0 is a grazing/tangent ray, a miss per §8.
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	t1 := (-halfB - sqrtD) / a
	t2 := (-halfB + sqrtD) / a

	var t float64
	var front bool

	switch side {
	case SideFront:
		// FRONT: the first strictly-positive root.
		if t1 > tMin && t1 < tMax {
			t, front = t1, true
		} else if t2 > tMin && t2 < tMax {
			t, front = t2, false
		} else {
			return nil, false
		}
	case SideBack:
		// BACK: only t2, and only when the ray originates inside (t1 <= 0 < t2).
		if t1 <= tMin && t2 > tMin && t2 < tMax {
			t, front = t2, false
		} else {
			return nil, false
		}
	default: // SideFrontAndBack
		if t1 > tMin && t1 < tMax {
			t, front = t1, true
		} else if t2 > tMin && t2 < tMax {
			t, front = t2, t1 > tMin
		} else {
			return nil, false
		}
	}

	point := ray.At(t)
	normal := point // outward normal of a unit sphere at the origin equals the hit point itself

	u := math.Atan2(point.Y, point.X)/(2*math.Pi) + 0.5
	v := math.Asin(clampUnit(point.Z))/math.Pi + 0.5

	return &HitRecord{
		T:      t,
		Point:  point,
		Normal: normal.Normalize(),
		UVW:    core.NewVec3(u, v, 1),
		Front:  front,
	}, true
}

// Occludes reports whether any intersection exists in (tMin, tMax),
// ignoring side (§4.1).
func (s *Sphere) Occludes(ray core.Ray, tMin, tMax float64) bool {
	p := ray.Origin
	d := ray.Direction

	a := d.Dot(d)
	halfB := p.Dot(d)
	c := p.Dot(p) - 1

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	t1 := (-halfB - sqrtD) / a
	if t1 > tMin && t1 < tMax {
		return true
	}
	t2 := (-halfB + sqrtD) / a
	return t2 > tMin && t2 < tMax
}

// Bounds returns the local-space bounding box of the unit sphere.
func (s *Sphere) Bounds() core.AABB {
	return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
