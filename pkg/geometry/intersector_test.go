package geometry

import (
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

func TestIntersectFindsLeafShape(t *testing.T) {
	root := NewNode("root", IdentityTransform())
	sphereNode := NewLeaf("sphere", Translate(core.NewVec3(0, 0, -5)), NewSphere(), 0)
	root.AddChild(sphereNode)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := Intersect(root, ray, SideFrontAndBack, 0.001, 1000.0)
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if hit.Node != sphereNode {
		t.Errorf("expected hit node to be sphereNode, got %v", hit.Node)
	}

	expectedT := 4.0 // sphere surface at z=-4 along -z from origin
	if hit.T < expectedT-1e-6 || hit.T > expectedT+1e-6 {
		t.Errorf("expected t=%f, got t=%f", expectedT, hit.T)
	}
}

func TestIntersectPicksClosestAcrossChildren(t *testing.T) {
	root := NewNode("root", IdentityTransform())
	near := NewLeaf("near", Translate(core.NewVec3(0, 0, -3)), NewSphere(), 0)
	far := NewLeaf("far", Translate(core.NewVec3(0, 0, -8)), NewSphere(), 0)
	root.AddChild(far)
	root.AddChild(near)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := Intersect(root, ray, SideFrontAndBack, 0.001, 1000.0)
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if hit.Node != near {
		t.Error("expected the nearer node to win")
	}
}

func TestIntersectNestedTransformHierarchy(t *testing.T) {
	root := NewNode("root", Translate(core.NewVec3(0, 0, -2)))
	child := NewNode("group", Translate(core.NewVec3(0, 0, -3)))
	sphereNode := NewLeaf("sphere", IdentityTransform(), NewSphere(), 0)
	child.AddChild(sphereNode)
	root.AddChild(child)

	// Combined offset along -z is -2 + -3 = -5, sphere radius 1, so surface at z=-4.
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, ok := Intersect(root, ray, SideFrontAndBack, 0.001, 1000.0)
	if !ok {
		t.Fatal("expected hit through nested transforms, got miss")
	}
	if hit.T < 3.99 || hit.T > 4.01 {
		t.Errorf("expected t close to 4.0, got %f", hit.T)
	}
	if hit.Point.Subtract(core.NewVec3(0, 0, -4)).Length() > 1e-6 {
		t.Errorf("expected world hit point (0,0,-4), got %v", hit.Point)
	}
}

func TestOccludesStopsAtFirstShape(t *testing.T) {
	root := NewNode("root", IdentityTransform())
	root.AddChild(NewLeaf("blocker", Translate(core.NewVec3(0, 0, -5)), NewSphere(), 0))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !Occludes(root, ray, 0.001, 1000.0) {
		t.Error("expected ray to be occluded")
	}

	missRay := core.NewRay(core.NewVec3(100, 100, 0), core.NewVec3(0, 0, -1))
	if Occludes(root, missRay, 0.001, 1000.0) {
		t.Error("expected miss ray to not be occluded")
	}
}
