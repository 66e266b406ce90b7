package integrator

import (
	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/lights"
	"github.com/dlumiere/wisp-tracer/pkg/material"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// maxTraceDistance bounds the tMax of primary and secondary trace rays
// (shadow rays use the light sample's distance instead); ray directions are
// not renormalized, so this just needs to exceed any plausible scene extent
// in ray-parameter units.
const maxTraceDistance = 1e6

// WhittedIntegrator is the recursive Blinn-Phong shader of §4.4: every hit
// asks its material to Shade, which may recurse back into the integrator
// for reflection/refraction rays via the ShadingContext it is handed.
type WhittedIntegrator struct {
	MaxDepth int
}

func NewWhittedIntegrator(maxDepth int) *WhittedIntegrator {
	if maxDepth <= 0 {
		maxDepth = 5
	}
	return &WhittedIntegrator{MaxDepth: maxDepth}
}

func (w *WhittedIntegrator) RayColor(ray core.Ray, scene Scene, s sampler.Sampler) core.Vec3 {
	ctx := &whittedContext{scene: scene, sampler: s}
	return ctx.Trace(ray, w.MaxDepth)
}

// whittedContext implements material.ShadingContext by recursing back into
// the integrator's own trace function at one fewer bounce.
type whittedContext struct {
	scene   Scene
	sampler sampler.Sampler
}

func (c *whittedContext) Sampler() sampler.Sampler { return c.sampler }
func (c *whittedContext) Lights() []lights.Light   { return c.scene.Lights() }

func (c *whittedContext) Occludes(ray core.Ray, tMax float64) bool {
	if tMax <= 0 {
		return false
	}
	return occludes(c.scene, ray, 1e-4, tMax)
}

func (c *whittedContext) Trace(ray core.Ray, depth int) core.Vec3 {
	color, _, _, _ := c.TraceHit(ray, depth)
	return color
}

func (c *whittedContext) TraceHit(ray core.Ray, depth int) (core.Vec3, float64, bool, bool) {
	if depth <= 0 {
		return core.Vec3{}, 0, false, false
	}

	hit, hitGeometry := intersect(c.scene, ray, 1e-4, maxTraceDistance)
	closest := maxTraceDistance
	if hitGeometry {
		closest = hit.T
	}

	light, lightT, hitLight := intersectLight(c.scene, ray, 1e-4, closest)
	if hitLight {
		return light.Intensity(), lightT, true, true
	}
	if !hitGeometry {
		return c.scene.Environment(ray), 0, false, false
	}

	mat := c.scene.Material(hit.Node.MaterialIndex)
	if mat == nil {
		return core.Vec3{}, hit.T, hit.Front, true
	}

	v := ray.Direction.Negate().Normalize()
	color := mat.Shade(c, *hit, v, depth)
	return color, hit.T, hit.Front, true
}

var _ material.ShadingContext = (*whittedContext)(nil)
