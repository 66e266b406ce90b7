package lights

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// SphereLight is a spherical area light: a glowing ball of the given
// radius and emitted color, sampled via analytic cone sampling toward its
// visible hemisphere (§4.7). Grounded in the teacher's
// pkg/lights/sphere_light.go sampleVisible, simplified down from its
// BDPT-capable Sample/PDF/SampleEmission/EmissionPDF surface to the single
// GenerateSample the forward path tracer needs.
type SphereLight struct {
	Center core.Vec3
	Radius float64
	Color  core.Vec3
}

func NewSphereLight(center core.Vec3, radius float64, color core.Vec3) *SphereLight {
	return &SphereLight{Center: center, Radius: radius, Color: color}
}

// GenerateSample samples a direction within the cone subtended by the
// sphere as seen from point, so every sample lands on the light's visible
// hemisphere instead of being wasted on the side facing away from the
// viewer. If point is inside the sphere the cone degenerates (sinThetaMax
// would exceed 1); the sample then falls back to a cosine-weighted direction
// about normal, with PDF 1 and Distance set to the radius.
func (sl *SphereLight) GenerateSample(point, normal core.Vec3, s sampler.Sampler) Sample {
	toCenter := sl.Center.Subtract(point)
	distToCenter := toCenter.Length()

	if distToCenter <= sl.Radius {
		r1, r2 := s.Get2D()
		dir := sampler.CosineSampleHemisphere(normal, r1, r2)
		return Sample{Direction: dir, PDF: 1, Mult: sl.Color, Distance: sl.Radius}
	}

	axis := toCenter.Multiply(1 / distToCenter)
	sinThetaMax := sl.Radius / distToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax*sinThetaMax))

	r1, r2 := s.Get2D()
	dir, _ := sampler.UniformSampleCone(axis, cosThetaMax, r1, r2)
	pdf := 1 / (2 * math.Pi * (1 - cosThetaMax))

	dist, hit := sl.intersectDistance(core.Ray{Origin: point, Direction: dir})
	if !hit {
		dist = distToCenter
	}

	return Sample{Direction: dir, PDF: pdf, Mult: sl.Color, Distance: dist}
}

func (sl *SphereLight) Intensity() core.Vec3 {
	return sl.Color
}

// Intersect lets camera and reflection rays see the light directly as a
// bright disk (§4.7).
func (sl *SphereLight) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	return sl.intersectDistanceInRange(ray, tMin, tMax)
}

func (sl *SphereLight) intersectDistance(ray core.Ray) (float64, bool) {
	return sl.intersectDistanceInRange(ray, 1e-4, math.Inf(1))
}

func (sl *SphereLight) intersectDistanceInRange(ray core.Ray, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(sl.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - sl.Radius*sl.Radius
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	t := (-halfB - sqrtD) / a
	if t <= tMin || t >= tMax {
		t = (-halfB + sqrtD) / a
		if t <= tMin || t >= tMax {
			return 0, false
		}
	}
	return t, true
}

// Illuminate is a legacy soft-shadow estimator kept alongside GenerateSample
// for scenes that want a cheaper, non-importance-sampled visibility term: it
// casts up to 16 Halton-jittered rays across the disk subtended by the
// sphere and scales the light's intensity by the visible fraction, with
// early exit once the first 4 samples agree (all hit or all missed), falling
// off by inverse-square distance to the center (§4.7).
func (sl *SphereLight) Illuminate(point core.Vec3, pixelIndex int, occludes func(ray core.Ray, tMax float64) bool) core.Vec3 {
	const maxSamples = 16
	const earlyExit = 4

	toCenter := sl.Center.Subtract(point)
	distToCenter := toCenter.Length()
	if distToCenter <= sl.Radius {
		return sl.Color
	}
	axis := toCenter.Multiply(1 / distToCenter)
	sinThetaMax := sl.Radius / distToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax*sinThetaMax))

	hits := 0
	samples := 0
	for i := 0; i < maxSamples; i++ {
		idx := pixelIndex*maxSamples + i + 1
		r1 := sampler.Halton(idx, 2)
		r2 := sampler.Halton(idx, 3)
		dir, _ := sampler.UniformSampleCone(axis, cosThetaMax, r1, r2)

		dist, hit := sl.intersectDistance(core.Ray{Origin: point, Direction: dir})
		if !hit {
			dist = distToCenter
		}
		if !occludes(core.Ray{Origin: point, Direction: dir}, dist-1e-3) {
			hits++
		}
		samples++

		if samples == earlyExit && (hits == 0 || hits == earlyExit) {
			break
		}
	}

	visibility := float64(hits) / float64(samples)
	falloff := 1 / (distToCenter * distToCenter)
	return sl.Color.Multiply(visibility * falloff)
}
