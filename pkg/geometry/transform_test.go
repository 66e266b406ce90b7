package geometry

import (
	"math"
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

func vecClose(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func TestTranslateTransformPoint(t *testing.T) {
	tr := Translate(core.NewVec3(1, 2, 3))
	p := tr.TransformPoint(core.NewVec3(0, 0, 0))
	if !vecClose(p, core.NewVec3(1, 2, 3), 1e-9) {
		t.Errorf("expected (1,2,3), got %v", p)
	}

	back := tr.InverseTransformPoint(p)
	if !vecClose(back, core.NewVec3(0, 0, 0), 1e-9) {
		t.Errorf("expected inverse to round-trip to origin, got %v", back)
	}
}

func TestScaleTransformDirectionDoesNotRenormalize(t *testing.T) {
	tr := Scale(2, 1, 1)
	d := tr.TransformDirection(core.NewVec3(1, 0, 0))
	if !vecClose(d, core.NewVec3(2, 0, 0), 1e-9) {
		t.Errorf("expected scaled direction (2,0,0), got %v", d)
	}
}

func TestRotateZTransformPoint(t *testing.T) {
	tr := RotateZ(math.Pi / 2)
	p := tr.TransformPoint(core.NewVec3(1, 0, 0))
	if !vecClose(p, core.NewVec3(0, 1, 0), 1e-6) {
		t.Errorf("expected (0,1,0) after 90deg Z rotation, got %v", p)
	}
}

func TestTransformNormalUnderNonUniformScale(t *testing.T) {
	tr := Scale(2, 1, 1)
	n := tr.TransformNormal(core.NewVec3(1, 0, 0))
	// normal along the scaled axis should still point the same way after renormalization
	if !vecClose(n, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("expected normal (1,0,0), got %v", n)
	}
}

func TestComposeChainsParentAndChild(t *testing.T) {
	parent := Translate(core.NewVec3(10, 0, 0))
	child := Translate(core.NewVec3(0, 5, 0))

	combined := parent.Compose(child)
	p := combined.TransformPoint(core.NewVec3(0, 0, 0))
	if !vecClose(p, core.NewVec3(10, 5, 0), 1e-9) {
		t.Errorf("expected composed translation (10,5,0), got %v", p)
	}
}

func TestMat3InverseOfIdentity(t *testing.T) {
	inv := Identity3().Inverse()
	v := inv.MulVec(core.NewVec3(3, 4, 5))
	if !vecClose(v, core.NewVec3(3, 4, 5), 1e-9) {
		t.Errorf("expected identity inverse to preserve vector, got %v", v)
	}
}

func TestNodeAddChild(t *testing.T) {
	root := NewNode("root", IdentityTransform())
	child := NewLeaf("sphere", Translate(core.NewVec3(0, 0, -5)), NewSphere(), 0)
	root.AddChild(child)

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	if root.Children[0].MaterialIndex != 0 {
		t.Errorf("expected material index 0, got %d", root.Children[0].MaterialIndex)
	}
}
