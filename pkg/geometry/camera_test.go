package geometry

import (
	"math"
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

func TestCameraGenerateRayCentersOnAxis(t *testing.T) {
	cam := NewCamera(
		core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		math.Pi/2, 100, 100, 1.0, 0,
	)

	// Middle pixel, sample 0 has zero Halton jitter contribution at k=0,
	// so the ray should point very close to straight down -z.
	ray := cam.GenerateRay(50, 50, 0, PixelRotation{})
	dir := ray.Direction.Normalize()

	if dir.Z >= 0 {
		t.Errorf("expected ray to point toward -z, got direction %v", dir)
	}
}

func TestCameraGenerateRayNoDOFKeepsOriginFixed(t *testing.T) {
	cam := NewCamera(
		core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		math.Pi/2, 64, 64, 1.0, 0,
	)

	r1 := cam.GenerateRay(10, 10, 3, PixelRotation{RX: 0.3, RY: 0.7})
	r2 := cam.GenerateRay(10, 10, 7, PixelRotation{RX: 0.3, RY: 0.7})

	if r1.Origin != r2.Origin {
		t.Errorf("expected fixed origin with zero aperture, got %v vs %v", r1.Origin, r2.Origin)
	}
	if r1.Origin != core.NewVec3(0, 0, 5) {
		t.Errorf("expected origin at lookFrom, got %v", r1.Origin)
	}
}

func TestCameraGenerateRayWithDOFVariesOrigin(t *testing.T) {
	cam := NewCamera(
		core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		math.Pi/2, 64, 64, 1.0, 0.5,
	)

	r1 := cam.GenerateRay(10, 10, 1, PixelRotation{})
	r2 := cam.GenerateRay(10, 10, 2, PixelRotation{})

	if r1.Origin == r2.Origin {
		t.Error("expected lens jitter to vary ray origin across samples")
	}
}
