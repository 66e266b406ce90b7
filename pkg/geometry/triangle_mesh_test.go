package geometry

import (
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

func quadMesh() *TriangleMesh {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0), // 0
		core.NewVec3(1, 0, 0), // 1
		core.NewVec3(1, 1, 0), // 2
		core.NewVec3(0, 1, 0), // 3
	}
	faces := []int32{
		0, 1, 2,
		0, 2, 3,
	}
	return NewTriangleMesh(vertices, faces, nil, nil)
}

func TestTriangleMeshBounds(t *testing.T) {
	mesh := quadMesh()
	bbox := mesh.Bounds()

	expectedMin := core.NewVec3(0, 0, 0)
	expectedMax := core.NewVec3(1, 1, 0)

	const tolerance = 1e-9
	if bbox.Min.Subtract(expectedMin).Length() > tolerance {
		t.Errorf("expected min %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max.Subtract(expectedMax).Length() > tolerance {
		t.Errorf("expected max %v, got %v", expectedMax, bbox.Max)
	}
}

func TestTriangleMeshIntersect(t *testing.T) {
	mesh := quadMesh()

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
	}{
		{
			name:      "hits center of quad",
			ray:       core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
		},
		{
			name:      "hits corner",
			ray:       core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1)),
			shouldHit: true,
		},
		{
			name:      "misses quad",
			ray:       core.NewRay(core.NewVec3(2, 2, -1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := mesh.Intersect(tt.ray, SideFrontAndBack, 0.001, 10.0)
			if ok != tt.shouldHit {
				t.Errorf("expected hit=%v, got hit=%v", tt.shouldHit, ok)
			}
			if tt.shouldHit && hit == nil {
				t.Error("expected hit record, got nil")
			}
		})
	}
}

func TestTriangleMeshIntersectClosestFace(t *testing.T) {
	mesh := quadMesh()
	ray := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))

	hit, ok := mesh.Intersect(ray, SideFrontAndBack, 0.001, 10.0)
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if hit.T < 0.99 || hit.T > 1.01 {
		t.Errorf("expected t close to 1.0, got %f", hit.T)
	}
}

func TestTriangleMeshOccludes(t *testing.T) {
	mesh := quadMesh()

	hitRay := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))
	if !mesh.Occludes(hitRay, 0.001, 10.0) {
		t.Error("expected occluding ray to be reported as occluded")
	}

	missRay := core.NewRay(core.NewVec3(2, 2, -1), core.NewVec3(0, 0, 1))
	if mesh.Occludes(missRay, 0.001, 10.0) {
		t.Error("expected outside-quad ray to not be occluded")
	}
}

func TestTriangleMeshManyFacesExercisesBVHSplit(t *testing.T) {
	// Build a 4x4 grid of quads (32 triangles) so the BVH build goes past
	// leafThreshold and exercises internal-node traversal.
	const grid = 4
	var vertices []core.Vec3
	var faces []int32

	index := func(x, y int) int32 { return int32(y*(grid+1) + x) }
	for y := 0; y <= grid; y++ {
		for x := 0; x <= grid; x++ {
			vertices = append(vertices, core.NewVec3(float64(x), float64(y), 0))
		}
	}
	for y := 0; y < grid; y++ {
		for x := 0; x < grid; x++ {
			a, b, c, d := index(x, y), index(x+1, y), index(x+1, y+1), index(x, y+1)
			faces = append(faces, a, b, c, a, c, d)
		}
	}

	mesh := NewTriangleMesh(vertices, faces, nil, nil)

	ray := core.NewRay(core.NewVec3(2.5, 2.5, -1), core.NewVec3(0, 0, 1))
	hit, ok := mesh.Intersect(ray, SideFrontAndBack, 0.001, 10.0)
	if !ok {
		t.Fatal("expected hit inside grid, got miss")
	}
	if hit.T < 0.99 || hit.T > 1.01 {
		t.Errorf("expected t close to 1.0, got %f", hit.T)
	}

	missRay := core.NewRay(core.NewVec3(100, 100, -1), core.NewVec3(0, 0, 1))
	if _, ok := mesh.Intersect(missRay, SideFrontAndBack, 0.001, 10.0); ok {
		t.Error("expected miss far outside grid bounds")
	}
}

func TestTriangleMeshWithNormalsAndUVs(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}
	normals := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 0, 1),
	}
	uvs := []core.Vec2{
		core.NewVec2(0, 0),
		core.NewVec2(1, 0),
		core.NewVec2(0, 1),
	}
	faces := []int32{0, 1, 2}

	mesh := NewTriangleMesh(vertices, faces, normals, uvs)
	ray := core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1))

	hit, ok := mesh.Intersect(ray, SideFrontAndBack, 0.001, 10.0)
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("expected interpolated normal (0,0,1), got %v", hit.Normal)
	}
	if hit.UVW.Z != 1 {
		t.Errorf("expected UVW.w=1 for textured hit, got %f", hit.UVW.Z)
	}
}
