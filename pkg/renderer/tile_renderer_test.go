package renderer

import (
	"testing"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/estimator"
	"github.com/dlumiere/wisp-tracer/pkg/geometry"
	"github.com/dlumiere/wisp-tracer/pkg/integrator"
	"github.com/dlumiere/wisp-tracer/pkg/lights"
	"github.com/dlumiere/wisp-tracer/pkg/material"
)

// emptyScene is an integrator.Scene with no geometry and a constant
// environment color, so every ray resolves to the same deterministic
// shade and the estimator is guaranteed to converge quickly.
type emptyScene struct {
	env core.Vec3
}

func (s emptyScene) Root() *geometry.Node                    { return geometry.NewNode("root", geometry.IdentityTransform()) }
func (s emptyScene) Lights() []lights.Light                  { return nil }
func (s emptyScene) Material(index int) *material.Dielectric { return nil }
func (s emptyScene) Environment(ray core.Ray) core.Vec3       { return s.env }

func testCamera(t *testing.T) *geometry.Camera {
	t.Helper()
	return geometry.NewCamera(
		core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0),
		0.7, 8, 8, 1.0, 0)
}

func TestRenderTileConvergesOnConstantEnvironment(t *testing.T) {
	scene := emptyScene{env: core.NewVec3(0.5, 0.5, 0.5)}
	tr := NewTileRenderer(testCamera(t), scene, integrator.NewPathTracer(4))
	tr.Config = estimator.Config{MinSamples: 4, MaxSamples: 32, MaxHalfWidth: 0.01}

	targets := NewImageTargets(8, 8)
	tiles := NewTileGrid(8, 8, 8)
	tr.RenderTile(tiles[0], targets)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			n := targets.SampleCount[targets.index(x, y)]
			if n < 4 {
				t.Fatalf("pixel (%d,%d) took %d samples, want at least MinSamples=4", x, y, n)
			}
			mean := targets.Accumulator(x, y).Mean()
			if mean.Subtract(scene.env).Length() > 0.05 {
				t.Errorf("pixel (%d,%d) mean = %v, want close to %v", x, y, mean, scene.env)
			}
		}
	}
}

func TestRenderTileRecordsMissAsUnhitDepth(t *testing.T) {
	scene := emptyScene{env: core.NewVec3(0, 0, 0)}
	tr := NewTileRenderer(testCamera(t), scene, integrator.NewPathTracer(2))

	targets := NewImageTargets(4, 4)
	tiles := NewTileGrid(4, 4, 4)
	tr.RenderTile(tiles[0], targets)

	for i, d := range targets.Depth {
		if d != -1 {
			t.Errorf("pixel %d depth = %f, want -1 (no geometry in scene)", i, d)
		}
	}
}
