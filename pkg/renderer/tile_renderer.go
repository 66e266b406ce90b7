package renderer

import (
	"math/rand"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/estimator"
	"github.com/dlumiere/wisp-tracer/pkg/geometry"
	"github.com/dlumiere/wisp-tracer/pkg/integrator"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// primaryRayMaxDistance bounds the depth-buffer re-intersection query; it
// need only exceed any plausible scene extent.
const primaryRayMaxDistance = 1e6

// TileRenderer samples every pixel of a tile to convergence using an
// Integrator and adaptive-stopping estimator. Grounded in the teacher's
// pkg/renderer/tile_renderer.go RenderTileBounds/adaptiveSamplePixelWithIntegrator
// loop shape, with its PixelStats/shouldStopSampling pair replaced by
// pkg/estimator's per-channel PixelAccumulator and the teacher's
// core.Camera/core.Scene swapped for geometry.Camera/integrator.Scene.
type TileRenderer struct {
	Camera     *geometry.Camera
	Scene      integrator.Scene
	Integrator integrator.Integrator
	Config     estimator.Config
}

// NewTileRenderer builds a renderer for one scene/camera/integrator
// combination, reused across every tile.
func NewTileRenderer(camera *geometry.Camera, scene integrator.Scene, integ integrator.Integrator) *TileRenderer {
	return &TileRenderer{Camera: camera, Scene: scene, Integrator: integ, Config: estimator.DefaultConfig()}
}

// RenderTile samples every pixel within tile.Bounds into targets, stopping
// each pixel independently once its estimator converges or hits MaxSamples.
func (tr *TileRenderer) RenderTile(tile *Tile, targets *ImageTargets) {
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			n := tr.samplePixel(x, y, tile.Random, targets)
			targets.SetSampleCount(x, y, n)
		}
	}
}

// samplePixel draws samples for one pixel until the estimator says to
// stop, returning the number of samples taken.
func (tr *TileRenderer) samplePixel(x, y int, random *rand.Rand, targets *ImageTargets) int {
	acc := targets.Accumulator(x, y)
	s := &sampler.RandSampler{Rand: random}
	rot := geometry.PixelRotation{
		RX:         random.Float64(),
		RY:         random.Float64(),
		RLensTheta: random.Float64(),
		RLensR:     random.Float64(),
	}

	firstHitDepth := -1.0
	firstHit := false

	// k is the Halton sample index, advanced on every attempt regardless
	// of whether AddSample accepts the result, so a dropped non-finite
	// sample can't wedge the loop by reusing the same jittered ray. The
	// attemptCap bounds total attempts even if every sample is dropped.
	attemptCap := 4 * tr.Config.MaxSamples
	for k := 0; !acc.ShouldStop(tr.Config) && k < attemptCap; k++ {
		ray := tr.Camera.GenerateRay(x, y, k, rot)
		color := tr.Integrator.RayColor(ray, tr.Scene, s)
		acc.AddSample(color)

		if k == 0 {
			firstHitDepth, firstHit = tr.primaryHitDepth(ray)
		}
	}

	targets.SetDepth(x, y, firstHitDepth, firstHit)
	return acc.SampleCount()
}

// primaryHitDepth re-intersects the first sample's primary ray against the
// scene root to record a depth value for the depth buffer; it does not
// affect shading.
func (tr *TileRenderer) primaryHitDepth(ray core.Ray) (float64, bool) {
	hit, ok := geometry.Intersect(tr.Scene.Root(), ray, geometry.SideFrontAndBack, 1e-4, primaryRayMaxDistance)
	if !ok {
		return -1, false
	}
	return hit.T, true
}
