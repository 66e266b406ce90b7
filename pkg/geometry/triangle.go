package geometry

import "github.com/dlumiere/wisp-tracer/pkg/core"

// triangleIntersect implements the Möller–Trumbore ray-triangle
// intersection test (§4.1). det is the signed determinant used for side
// filtering (FRONT requires det > 0, BACK requires det < 0); u, v are the
// two barycentric coordinates needed to interpolate per-vertex normals/UVs,
// with the third weight w = 1 - u - v. The guard |det| < 1e-6 discards
// near-degenerate/grazing hits, and t <= 1e-6 discards self-intersections.
func triangleIntersect(ray core.Ray, v0, v1, v2 core.Vec3, tMin, tMax float64) (t, u, v, det float64, ok bool) {
	const epsilon = 1e-6

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	det = edge1.Dot(h)
	if det > -epsilon && det < epsilon {
		return 0, 0, 0, det, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(v0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, det, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, det, false
	}

	t = f * edge2.Dot(q)
	if t <= epsilon || t <= tMin || t >= tMax {
		return 0, 0, 0, det, false
	}

	return t, u, v, det, true
}

// triangleNormal returns the geometric (flat-shaded) normal of a triangle.
func triangleNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}
