package material

import (
	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/lights"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// ShadingContext is everything Dielectric.Shade needs beyond the hit itself:
// an RNG, the scene's lights, a shadow-ray probe, and a secondary-ray tracer
// bounded by remaining depth (§4.4). The integrator supplies the concrete
// implementation; material never depends on the integrator package, which
// keeps the dependency graph acyclic.
type ShadingContext interface {
	Sampler() sampler.Sampler
	Lights() []lights.Light

	// Occludes reports whether anything blocks the segment from ray.Origin
	// to ray.Origin + ray.Direction*tMax.
	Occludes(ray core.Ray, tMax float64) bool

	// Trace shades the secondary ray with depth bounces remaining (callers
	// pass one fewer than their own) and returns the resulting radiance.
	Trace(ray core.Ray, depth int) core.Vec3

	// TraceHit is like Trace but also reports the distance traveled and
	// whether the hit surface was a front face, needed to apply
	// Beer-Lambert absorption across refracted/TIR segments.
	TraceHit(ray core.Ray, depth int) (color core.Vec3, t float64, front bool, hit bool)
}

// SampleInfo is the result of Dielectric.GenerateSample: a drawn direction,
// its forward PDF, and the multiplicative radiance-transport factor for
// that lobe (§4.6).
type SampleInfo struct {
	Direction core.Vec3
	PDF       float64
	Mult      core.Vec3
}

// Emitter is implemented by materials that emit light directly when hit,
// independent of the Dielectric shading model (e.g. an area-light surface).
type Emitter interface {
	Emit(rayIn core.Ray) core.Vec3
}
