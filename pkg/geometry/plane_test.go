package geometry

import (
	"math"
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

func TestPlaneIntersectBasic(t *testing.T) {
	plane := NewPlane()
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	hit, ok := plane.Intersect(ray, SideFrontAndBack, 0.001, 1000.0)
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("expected t=1.0, got t=%f", hit.T)
	}
}

func TestPlaneIntersectOutsideUnitSquare(t *testing.T) {
	plane := NewPlane()
	ray := core.NewRay(core.NewVec3(2, 2, 1), core.NewVec3(0, 0, -1))

	if hit, ok := plane.Intersect(ray, SideFrontAndBack, 0.001, 1000.0); ok {
		t.Errorf("expected miss outside unit square, got hit at t=%f", hit.T)
	}
}

func TestPlaneIntersectParallelRay(t *testing.T) {
	plane := NewPlane()
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))

	if hit, ok := plane.Intersect(ray, SideFrontAndBack, 0.001, 1000.0); ok {
		t.Errorf("expected miss for parallel ray, got hit at t=%f", hit.T)
	}
}

func TestPlaneIntersectBehindRay(t *testing.T) {
	plane := NewPlane()
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))

	if hit, ok := plane.Intersect(ray, SideFrontAndBack, 0.001, 1000.0); ok {
		t.Errorf("expected miss for intersection behind ray, got hit at t=%f", hit.T)
	}
}

func TestPlaneIntersectFrontAndBackFace(t *testing.T) {
	plane := NewPlane()

	tests := []struct {
		name          string
		rayOrigin     core.Vec3
		rayDirection  core.Vec3
		expectedFront bool
	}{
		{"front face (from +z)", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), true},
		{"back face (from -z)", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, ok := plane.Intersect(ray, SideFrontAndBack, 0.001, 1000.0)
			if !ok {
				t.Fatal("expected hit, got miss")
			}
			if hit.Front != tt.expectedFront {
				t.Errorf("expected front=%t, got %t", tt.expectedFront, hit.Front)
			}
			if hit.Normal != core.NewVec3(0, 0, 1) {
				t.Errorf("expected normal (0,0,1), got %v", hit.Normal)
			}
		})
	}
}

func TestPlaneIntersectSideFilter(t *testing.T) {
	plane := NewPlane()
	ray := core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1))

	if _, ok := plane.Intersect(ray, SideFront, 0.001, 1000.0); ok {
		t.Error("expected SideFront to reject a back-face hit")
	}
	if _, ok := plane.Intersect(ray, SideBack, 0.001, 1000.0); !ok {
		t.Error("expected SideBack to accept a back-face hit")
	}
}

func TestPlaneOccludes(t *testing.T) {
	plane := NewPlane()
	hitRay := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	if !plane.Occludes(hitRay, 0.001, 1000.0) {
		t.Error("expected occluding ray to be reported as occluded")
	}

	missRay := core.NewRay(core.NewVec3(2, 2, 1), core.NewVec3(0, 0, -1))
	if plane.Occludes(missRay, 0.001, 1000.0) {
		t.Error("expected outside-square ray to not be occluded")
	}
}
