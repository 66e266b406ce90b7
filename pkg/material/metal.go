package material

import "github.com/dlumiere/wisp-tracer/pkg/core"

// metalMaxGlossiness/metalMinGlossiness bound the glossiness a fuzzness of
// 0 (mirror) or 1 (very rough) maps onto; the teacher's Metal perturbed a
// perfect mirror direction by a random vector scaled by fuzzness, which is
// the same shape of effect a low Blinn-Phong glossiness exponent produces.
const (
	metalMaxGlossiness = 2000.0
	metalMinGlossiness = 4.0
)

// NewMetal builds a pure-reflection Dielectric: zero diffuse/transmission,
// full reflection, with glossiness derived from fuzzness the way the
// teacher's Metal.Fuzzness widened its reflection lobe.
func NewMetal(albedo core.Vec3, fuzzness float64) *Dielectric {
	if fuzzness < 0 {
		fuzzness = 0
	}
	if fuzzness > 1 {
		fuzzness = 1
	}
	glossiness := metalMaxGlossiness - fuzzness*(metalMaxGlossiness-metalMinGlossiness)

	return NewDielectric(
		NewSolidColor(core.Vec3{}), NewSolidColor(albedo), NewSolidColor(core.Vec3{}),
		glossiness, 1, 0, 1, core.Vec3{},
	)
}
