package integrator

import (
	"math/rand"
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/geometry"
	"github.com/dlumiere/wisp-tracer/pkg/lights"
	"github.com/dlumiere/wisp-tracer/pkg/material"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// testScene is a minimal Scene for exercising the integrators without
// pkg/scene or pkg/loaders.
type testScene struct {
	root      *geometry.Node
	lightList []lights.Light
	materials []*material.Dielectric
}

func (s *testScene) Root() *geometry.Node        { return s.root }
func (s *testScene) Lights() []lights.Light      { return s.lightList }
func (s *testScene) Material(index int) *material.Dielectric {
	if index < 0 || index >= len(s.materials) {
		return nil
	}
	return s.materials[index]
}
func (s *testScene) Environment(ray core.Ray) core.Vec3 { return core.Vec3{} }

func buildSphereScene() *testScene {
	root := geometry.NewNode("root", geometry.IdentityTransform())
	sphereNode := geometry.NewLeaf("sphere", geometry.Translate(core.NewVec3(0, 0, -5)), geometry.NewSphere(), 0)
	root.AddChild(sphereNode)

	mat := material.NewLambertian(core.NewVec3(0.8, 0.2, 0.2))
	return &testScene{
		root:      root,
		lightList: []lights.Light{lights.NewAmbientLight(core.NewVec3(0.3, 0.3, 0.3))},
		materials: []*material.Dielectric{mat},
	}
}

func TestWhittedIntegratorHitsSphereAndShadesWithAmbient(t *testing.T) {
	scene := buildSphereScene()
	integ := NewWhittedIntegrator(5)
	s := &sampler.RandSampler{Rand: rand.New(rand.NewSource(1))}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := integ.RayColor(ray, scene, s)

	if color.X <= 0 {
		t.Errorf("expected nonzero red channel from ambient*diffuse, got %v", color)
	}
}

func TestWhittedIntegratorMissReturnsEnvironment(t *testing.T) {
	scene := buildSphereScene()
	integ := NewWhittedIntegrator(5)
	s := &sampler.RandSampler{Rand: rand.New(rand.NewSource(1))}

	ray := core.NewRay(core.NewVec3(100, 100, 0), core.NewVec3(0, 0, -1))
	color := integ.RayColor(ray, scene, s)
	if color != (core.Vec3{}) {
		t.Errorf("expected zero environment color, got %v", color)
	}
}

func TestPathTracerHitsSphereAndAccumulatesAmbient(t *testing.T) {
	scene := buildSphereScene()
	pt := NewPathTracer(5)
	s := &sampler.RandSampler{Rand: rand.New(rand.NewSource(2))}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := pt.RayColor(ray, scene, s)

	if color.X <= 0 {
		t.Errorf("expected nonzero contribution from ambient light, got %v", color)
	}
}

func TestPathTracerSeesLightSurfaceOnPrimaryRayOnly(t *testing.T) {
	root := geometry.NewNode("root", geometry.IdentityTransform())
	scene := &testScene{
		root:      root,
		lightList: []lights.Light{lights.NewSphereLight(core.NewVec3(0, 0, -5), 1, core.NewVec3(4, 4, 4))},
	}
	pt := NewPathTracer(5)
	s := &sampler.RandSampler{Rand: rand.New(rand.NewSource(3))}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	color := pt.RayColor(ray, scene, s)
	if color.X < 3.9 || color.X > 4.1 {
		t.Errorf("expected to see the light's emission directly, got %v", color)
	}
}
