package integrator

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/geometry"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// russianRouletteMinBounces/MaxBounces are the §4.5 defaults.
const (
	russianRouletteMinBounces = 3
	defaultMaxBounces         = 5
)

// PathTracer is the iterative, single-light unidirectional path tracer of
// §4.5: no recursion, one next-event-estimation sample against a single
// light per bounce, Russian roulette after the third bounce. Grounded in
// the teacher's pkg/integrator/path_tracing.go (ApplyRussianRoulette and
// the emitted/scattered split),
// restructured from per-call recursion into an explicit bounce loop and
// from its multi-light MIS sampling down to the spec's single-light NEE.
type PathTracer struct {
	MaxBounces int
}

func NewPathTracer(maxBounces int) *PathTracer {
	if maxBounces <= 0 {
		maxBounces = defaultMaxBounces
	}
	return &PathTracer{MaxBounces: maxBounces}
}

func (pt *PathTracer) RayColor(ray core.Ray, scene Scene, s sampler.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	result := core.Vec3{}

	for bounce := 0; bounce < pt.MaxBounces; bounce++ {
		hit, hitGeometry := intersect(scene, ray, 1e-4, maxTraceDistance)
		closest := maxTraceDistance
		if hitGeometry {
			closest = hit.T
		}

		light, _, hitLight := intersectLight(scene, ray, 1e-4, closest)
		if hitLight {
			if bounce == 0 {
				result = result.Add(throughput.MultiplyVec(light.Intensity()))
			}
			return result
		}

		if !hitGeometry {
			result = result.Add(throughput.MultiplyVec(scene.Environment(ray)))
			return result
		}

		mat := scene.Material(hit.Node.MaterialIndex)
		if mat == nil {
			return result
		}

		v := ray.Direction.Negate().Normalize()
		n := hit.Normal

		result = result.Add(throughput.MultiplyVec(pt.nextEventEstimate(scene, s, *hit, v, n)))

		sampleInfo, ok := mat.GenerateSample(*hit, v, s)
		if !ok || sampleInfo.PDF <= 0 {
			return result
		}

		sign := 1.0
		if n.Dot(sampleInfo.Direction) < 0 {
			sign = -1.0
		}
		origin := hit.Point.Add(n.Multiply(sign * 2e-3))
		ray = core.Ray{Origin: origin, Direction: sampleInfo.Direction}
		throughput = throughput.MultiplyVec(sampleInfo.Mult).Multiply(1 / sampleInfo.PDF)

		if bounce >= russianRouletteMinBounces {
			survival := math.Min(1, throughput.MaxComponent())
			if s.Get1D() >= survival || survival <= 0 {
				return result
			}
			throughput = throughput.Multiply(1 / survival)
		}
	}

	return result
}

// nextEventEstimate samples the scene's single light for direct
// illumination at a hit, per §4.5 step 3.
func (pt *PathTracer) nextEventEstimate(scene Scene, s sampler.Sampler, hit geometry.HitRecord, v, n core.Vec3) core.Vec3 {
	lightList := scene.Lights()
	if len(lightList) == 0 {
		return core.Vec3{}
	}
	light := lightList[0]

	sample := light.GenerateSample(hit.Point, n, s)
	if sample.PDF <= 0 {
		return core.Vec3{}
	}
	ndotl := n.Dot(sample.Direction)
	if ndotl <= 0 {
		return core.Vec3{}
	}

	sign := 1.0
	if !hit.Front {
		sign = -1.0
	}
	shadowOrigin := hit.Point.Add(n.Multiply(sign * 2e-3))
	tMax := sample.Distance - 2e-3
	if math.IsInf(sample.Distance, 1) {
		tMax = math.Inf(1)
	}
	if occludes(scene, core.Ray{Origin: shadowOrigin, Direction: sample.Direction}, 1e-4, tMax) {
		return core.Vec3{}
	}

	mat := scene.Material(hit.Node.MaterialIndex)
	if mat == nil {
		return core.Vec3{}
	}

	brdf := mat.GetDirectBRDF(hit, v, sample.Direction)
	return brdf.Multiply(ndotl).MultiplyVec(sample.Mult).Multiply(1 / sample.PDF)
}
