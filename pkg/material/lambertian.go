package material

import "github.com/dlumiere/wisp-tracer/pkg/core"

// NewLambertian builds a purely diffuse Dielectric: all energy goes into
// the diffuse lobe, with zero specular, reflection, and refraction — the
// same preset the teacher's Lambertian represented as its own type, now
// expressed as a point in Dielectric's parameter space.
func NewLambertian(albedo core.Vec3) *Dielectric {
	return NewDielectric(
		NewSolidColor(albedo), NewSolidColor(core.Vec3{}), NewSolidColor(core.Vec3{}),
		1, 0, 0, 1, core.Vec3{},
	)
}
