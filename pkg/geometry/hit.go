package geometry

import "github.com/dlumiere/wisp-tracer/pkg/core"

// HitRecord is the result of a successful ray/shape or ray/scene-graph
// intersection (§3 "Hit record"). Point and Normal are expressed in
// whatever frame the caller asked for — a shape's Intersect returns them
// in its own local frame; the scene-graph intersector transforms them back
// to world space as it unwinds the recursion (§4.3).
type HitRecord struct {
	T      float64   // ray parameter
	Point  core.Vec3 // hit point
	Normal core.Vec3 // unit shading normal
	UVW    core.Vec3 // barycentric / texture coordinate triple, w=1 for 2D textures
	Node   *Node     // the scene-graph node that owns the hit shape
	Front  bool      // true if the ray struck the outward-facing side
	Light  bool      // true if this is a primary hit on a renderable light surface
}

// Shape is implemented by the three geometry kinds named in the spec:
// unit sphere, unit-square z=0 plane, and triangle mesh (§3 "Shape").
type Shape interface {
	// Intersect returns the closest accepted hit strictly within (tMin, tMax), or
	// (nil, false) on a miss. All coordinates are in the shape's own local
	// (canonical) frame.
	Intersect(ray core.Ray, side Side, tMin, tMax float64) (*HitRecord, bool)

	// Occludes returns true as soon as any accepted intersection is found
	// strictly within (tMin, tMax); side filtering does not apply (§4.1).
	Occludes(ray core.Ray, tMin, tMax float64) bool

	// Bounds returns the shape's axis-aligned bounding box in its local frame.
	Bounds() core.AABB
}
