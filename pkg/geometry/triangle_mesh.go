package geometry

import (
	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// TriangleMesh is an indexed triangle mesh with an internal face BVH
// (§4.2). Vertices, per-vertex normals, and per-vertex UVs live in local
// (object) space; Faces groups vertex indices into triples. Normals and
// UVs are optional — when absent, flat face normals and barycentric UVs
// are used instead.
type TriangleMesh struct {
	Vertices []core.Vec3
	Normals  []core.Vec3 // optional, one per vertex
	UVs      []core.Vec2 // optional, one per vertex
	Faces    []int32     // len(Faces) == 3 * face count

	bvh  *BVH
	bbox core.AABB
}

// NewTriangleMesh builds a mesh from flat vertex/face data and constructs
// its face BVH once, up front (§4.2).
func NewTriangleMesh(vertices []core.Vec3, faces []int32, normals []core.Vec3, uvs []core.Vec2) *TriangleMesh {
	faceCount := len(faces) / 3

	bounds := make([]core.AABB, faceCount)
	centroids := make([]core.Vec3, faceCount)

	var overall core.AABB
	for f := 0; f < faceCount; f++ {
		v0 := vertices[faces[f*3]]
		v1 := vertices[faces[f*3+1]]
		v2 := vertices[faces[f*3+2]]

		box := core.NewAABBFromPoints(v0, v1, v2)
		bounds[f] = box
		centroids[f] = box.Center()

		if f == 0 {
			overall = box
		} else {
			overall = overall.Union(box)
		}
	}

	return &TriangleMesh{
		Vertices: vertices,
		Normals:  normals,
		UVs:      uvs,
		Faces:    faces,
		bvh:      NewBVH(bounds, centroids),
		bbox:     overall,
	}
}

// Intersect finds the closest ray/face hit via the mesh's BVH (§4.1, §4.2).
// Side filtering applies per face using the sign of the Möller–Trumbore
// determinant (the geometric winding), not the interpolated shading normal.
func (tm *TriangleMesh) Intersect(ray core.Ray, side Side, tMin, tMax float64) (*HitRecord, bool) {
	return tm.bvh.Intersect(ray, tMin, tMax, func(faceIdx int, ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
		return tm.hitFace(faceIdx, ray, side, tMin, tMax)
	})
}

func (tm *TriangleMesh) Occludes(ray core.Ray, tMin, tMax float64) bool {
	return tm.bvh.Occludes(ray, tMin, tMax, func(faceIdx int, ray core.Ray, tMin, tMax float64) bool {
		i0, i1, i2 := tm.faceVertexIndices(faceIdx)
		_, _, _, _, ok := triangleIntersect(ray, tm.Vertices[i0], tm.Vertices[i1], tm.Vertices[i2], tMin, tMax)
		return ok
	})
}

func (tm *TriangleMesh) Bounds() core.AABB {
	return tm.bbox
}

func (tm *TriangleMesh) faceVertexIndices(faceIdx int) (i0, i1, i2 int32) {
	return tm.Faces[faceIdx*3], tm.Faces[faceIdx*3+1], tm.Faces[faceIdx*3+2]
}

func (tm *TriangleMesh) hitFace(faceIdx int, ray core.Ray, side Side, tMin, tMax float64) (*HitRecord, bool) {
	i0, i1, i2 := tm.faceVertexIndices(faceIdx)
	v0, v1, v2 := tm.Vertices[i0], tm.Vertices[i1], tm.Vertices[i2]

	t, u, v, det, ok := triangleIntersect(ray, v0, v1, v2, tMin, tMax)
	if !ok {
		return nil, false
	}

	// Side filter per §4.1: FRONT requires det > 0, BACK requires det < 0.
	if side == SideFront && det <= 0 {
		return nil, false
	}
	if side == SideBack && det >= 0 {
		return nil, false
	}
	front := det > 0
	w := 1 - u - v

	var normal core.Vec3
	if tm.Normals != nil {
		n0, n1, n2 := tm.Normals[i0], tm.Normals[i1], tm.Normals[i2]
		normal = n0.Multiply(w).Add(n1.Multiply(u)).Add(n2.Multiply(v)).Normalize()
	} else {
		normal = triangleNormal(v0, v1, v2)
	}

	var uvw core.Vec3
	if tm.UVs != nil {
		uv0, uv1, uv2 := tm.UVs[i0], tm.UVs[i1], tm.UVs[i2]
		tex := uv0.Multiply(w).Add(uv1.Multiply(u)).Add(uv2.Multiply(v))
		uvw = core.NewVec3(tex.X, tex.Y, 1)
	} else {
		uvw = core.NewVec3(u, v, w)
	}

	return &HitRecord{
		T:      t,
		Point:  ray.At(t),
		Normal: normal,
		UVW:    uvw,
		Front:  front,
	}, true
}
