// Package lights implements the scene's illumination sources: ambient,
// directional, and spherical area lights (§4.7). Bidirectional-path-tracing
// concerns (emission importance sampling, MIS light samplers) are a
// Non-goal, so the interface here only covers what the forward path tracer
// needs for next-event estimation.
package lights

import (
	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// Sample is a single next-event-estimation draw toward a light: a direction
// from the shading point, the PDF of having drawn it, the light's radiant
// contribution along that direction, and the distance to the light (used
// both for the shadow-ray tMax and for inverse-square falloff where the
// light model calls for it).
type Sample struct {
	Direction core.Vec3
	PDF       float64
	Mult      core.Vec3
	Distance  float64
}

// Light is implemented by every illumination source in a scene. Ambient and
// directional lights have no position and cannot be hit by a ray; spherical
// area lights additionally satisfy AreaLight so the intersector can render
// them as visible emitters.
type Light interface {
	// GenerateSample draws a direction from point (with surface normal
	// normal) toward the light for next-event estimation.
	GenerateSample(point, normal core.Vec3, s sampler.Sampler) Sample

	// Intensity returns the light's emitted radiance.
	Intensity() core.Vec3
}

// AreaLight is a Light that also occupies space in the scene and can be hit
// directly by camera/reflection rays (§4.7, "primary and reflected rays can
// see the light as a bright disk").
type AreaLight interface {
	Light
	Intersect(ray core.Ray, tMin, tMax float64) (float64, bool)
}
