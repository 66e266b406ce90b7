package material

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/geometry"
	"github.com/dlumiere/wisp-tracer/pkg/lights"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// secondaryOffset pushes secondary rays off the surface along their own
// direction to avoid immediate self-intersection (§4.4 "origin offset").
const secondaryOffset = 2e-4

// shadowOffset is the corresponding offset for next-event-estimation rays,
// applied along the normal rather than the ray direction.
const shadowOffset = 2e-3

// Dielectric is the single Blinn-Phong shading model every surface in the
// scene uses: a diffuse/specular local-illumination term plus optional
// mirror-like reflection and refraction, unified the way the teacher's
// dielectric.go handles glass but generalized to also cover the teacher's
// separate Lambertian and Metal models (§4.4, §4.6).
type Dielectric struct {
	Diffuse      Texture
	Specular     Texture
	Transmission Texture
	Glossiness   float64

	Reflection      float64
	Refraction      float64
	RefractiveIndex float64
	Absorption      core.Vec3
}

func NewDielectric(diffuse, specular, transmission Texture, glossiness, reflection, refraction, ior float64, absorption core.Vec3) *Dielectric {
	return &Dielectric{
		Diffuse:         diffuse,
		Specular:        specular,
		Transmission:    transmission,
		Glossiness:      glossiness,
		Reflection:      reflection,
		Refraction:      refraction,
		RefractiveIndex: ior,
		Absorption:      absorption,
	}
}

// Shade computes outgoing radiance toward v (the direction from the hit
// back toward the camera/previous vertex) at depth remaining bounces,
// following §4.4 exactly: an analytic direct-lighting loop, then optional
// glossy reflection, then optional Fresnel-weighted refraction.
func (d *Dielectric) Shade(ctx ShadingContext, hit geometry.HitRecord, v core.Vec3, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	n := hit.Normal
	diffuse := d.Diffuse.Evaluate(hit.UVW)
	specular := d.Specular.Evaluate(hit.UVW)

	result := d.directLighting(ctx, hit, v, n, diffuse, specular)

	if d.Reflection > 0 {
		if glossy, ok := d.sampleGlossyReflection(ctx, n, v); ok {
			origin := hit.Point.Add(glossy.Multiply(secondaryOffset))
			reflected := ctx.Trace(core.Ray{Origin: origin, Direction: glossy}, depth-1)
			result = result.Add(reflected.Multiply(d.Reflection))
		}
	}

	if d.Refraction > 0 {
		result = result.Add(d.shadeRefraction(ctx, hit, v, n, depth))
	}

	return result
}

func (d *Dielectric) directLighting(ctx ShadingContext, hit geometry.HitRecord, v, n, diffuse, specular core.Vec3) core.Vec3 {
	var result core.Vec3
	s := ctx.Sampler()

	for _, light := range ctx.Lights() {
		switch lt := light.(type) {
		case *lights.AmbientLight:
			result = result.Add(diffuse.MultiplyVec(lt.Intensity()))

		case *lights.SphereLight:
			sample := lt.GenerateSample(hit.Point, n, s)
			ndotl := n.Dot(sample.Direction)
			if ndotl <= 0 {
				continue
			}
			lin := lt.Illuminate(hit.Point, 0, ctx.Occludes)
			brdf := d.blinnPhong(diffuse, specular, n, v, sample.Direction)
			result = result.Add(brdf.MultiplyVec(lin).Multiply(ndotl))

		default:
			sample := light.GenerateSample(hit.Point, n, s)
			if sample.PDF <= 0 {
				continue
			}
			ndotl := n.Dot(sample.Direction)
			if ndotl <= 0 {
				continue
			}
			sign := 1.0
			if !hit.Front {
				sign = -1.0
			}
			shadowOrigin := hit.Point.Add(n.Multiply(sign * shadowOffset))
			tMax := sample.Distance - shadowOffset
			if math.IsInf(sample.Distance, 1) {
				tMax = math.Inf(1)
			}
			if ctx.Occludes(core.Ray{Origin: shadowOrigin, Direction: sample.Direction}, tMax) {
				continue
			}
			brdf := d.blinnPhong(diffuse, specular, n, v, sample.Direction)
			result = result.Add(brdf.MultiplyVec(sample.Mult).Multiply(ndotl))
		}
	}

	return result
}

// GetDirectBRDF evaluates the local Blinn-Phong BRDF toward lightDir, for
// callers (such as the iterative path tracer of §4.5) that perform their
// own next-event estimation outside of Shade's direct-lighting loop.
func (d *Dielectric) GetDirectBRDF(hit geometry.HitRecord, v, lightDir core.Vec3) core.Vec3 {
	diffuse := d.Diffuse.Evaluate(hit.UVW)
	specular := d.Specular.Evaluate(hit.UVW)
	return d.blinnPhong(diffuse, specular, hit.Normal, v, lightDir)
}

// blinnPhong evaluates diffuse/π + specular·((g+2)/(8π))·max(0,N·H)^g,
// H = normalize(V + L_dir), per §4.4.
func (d *Dielectric) blinnPhong(diffuse, specular, n, v, lightDir core.Vec3) core.Vec3 {
	h := v.Add(lightDir).Normalize()
	cosTermPow := math.Pow(math.Max(0, n.Dot(h)), d.Glossiness)
	specularTerm := (d.Glossiness + 2) / (8 * math.Pi) * cosTermPow
	return diffuse.Multiply(1 / math.Pi).Add(specular.Multiply(specularTerm))
}

// sampleGlossyReflection importance-samples a half-vector around n and
// reflects v about it, rejecting directions below the surface (§4.4).
func (d *Dielectric) sampleGlossyReflection(ctx ShadingContext, n, v core.Vec3) (core.Vec3, bool) {
	r1, r2 := ctx.Sampler().Get2D()
	h := sampler.SampleHalfVectorGlossy(n, d.Glossiness, r1, r2)
	dir := reflectVector(v.Negate(), h)
	if n.Dot(dir) <= 0 {
		return core.Vec3{}, false
	}
	return dir, true
}

// shadeRefraction implements §4.4's Fresnel-weighted reflection/refraction
// split, including total-internal-reflection fallback and Beer-Lambert
// absorption across any segment traveled inside the medium.
func (d *Dielectric) shadeRefraction(ctx ShadingContext, hit geometry.HitRecord, v, n core.Vec3, depth int) core.Vec3 {
	nPrime := n
	eta := 1 / d.RefractiveIndex
	if !hit.Front {
		nPrime = n.Negate()
		eta = d.RefractiveIndex
	}

	incoming := v.Negate()
	cosIncidence := math.Min(-incoming.Dot(nPrime), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1-cosIncidence*cosIncidence))

	if eta*sinTheta > 1.0 {
		// Total internal reflection: the only outgoing ray is the mirror
		// reflection, absorbed over the distance traveled if it exits
		// the medium through a back face.
		reflectDir := reflectVector(incoming, nPrime)
		origin := hit.Point.Add(reflectDir.Multiply(secondaryOffset))
		color, t, front, hitSomething := ctx.TraceHit(core.Ray{Origin: origin, Direction: reflectDir}, depth-1)
		if hitSomething && !front {
			color = color.MultiplyVec(d.Absorption.Multiply(t).ExpNeg())
		}
		return color.Multiply(d.Refraction)
	}

	fresnel := Reflectance(cosIncidence, d.RefractiveIndex)

	reflectDir := reflectVector(incoming, nPrime)
	reflectOrigin := hit.Point.Add(reflectDir.Multiply(secondaryOffset))
	reflectedColor := ctx.Trace(core.Ray{Origin: reflectOrigin, Direction: reflectDir}, depth-1)

	refractDir := refractVector(incoming, nPrime, eta)
	refractOrigin := hit.Point.Add(refractDir.Multiply(secondaryOffset))
	refractedColor, t, front, hitSomething := ctx.TraceHit(core.Ray{Origin: refractOrigin, Direction: refractDir}, depth-1)
	if hitSomething && !front {
		refractedColor = refractedColor.MultiplyVec(d.Absorption.Multiply(t).ExpNeg())
	}

	return reflectedColor.Multiply(fresnel * d.Refraction).Add(refractedColor.Multiply((1 - fresnel) * d.Refraction))
}

// grayProbabilities computes the scalar lobe-selection probabilities for
// §4.6, normalizing if their sum exceeds 1.
func (d *Dielectric) grayProbabilities(uvw core.Vec3) (pd, ps, pt float64, diffuse, specular, transmission core.Vec3) {
	diffuse = d.Diffuse.Evaluate(uvw)
	specular = d.Specular.Evaluate(uvw)
	transmission = d.Transmission.Evaluate(uvw)

	pd = diffuse.Luminance()
	ps = specular.Luminance()
	pt = transmission.Luminance()

	if sum := pd + ps + pt; sum > 1 {
		pd /= sum
		ps /= sum
		pt /= sum
	}
	return
}

// GenerateSample draws one of the diffuse/specular/transmission lobes by
// russian-roulette on their gray probabilities, per §4.6.
func (d *Dielectric) GenerateSample(hit geometry.HitRecord, v core.Vec3, s sampler.Sampler) (SampleInfo, bool) {
	n := hit.Normal
	pd, ps, pt, diffuse, specular, transmission := d.grayProbabilities(hit.UVW)
	u := s.Get1D()

	switch {
	case u < pd:
		r1, r2 := s.Get2D()
		dir := sampler.CosineSampleHemisphere(n, r1, r2)
		ndotl := n.Dot(dir)
		if ndotl <= 0 {
			return SampleInfo{}, false
		}
		return SampleInfo{Direction: dir, PDF: pd * ndotl / math.Pi, Mult: diffuse.Multiply(1 / math.Pi)}, true

	case u < pd+ps:
		r1, r2 := s.Get2D()
		h := sampler.SampleHalfVectorGlossy(n, d.Glossiness, r1, r2)
		dir := reflectVector(v.Negate(), h)
		if n.Dot(dir) <= 0 {
			return SampleInfo{}, false
		}
		vDotH := v.Dot(h)
		if vDotH <= 0 {
			return SampleInfo{}, false
		}
		cosThetaH := math.Max(0, n.Dot(h))
		pdf := ps * ((d.Glossiness + 1) / (2 * math.Pi)) * math.Pow(cosThetaH, d.Glossiness) / (4 * vDotH)
		mult := specular.Multiply((d.Glossiness + 2) / (8 * math.Pi) * math.Pow(cosThetaH, d.Glossiness))
		return SampleInfo{Direction: dir, PDF: pdf, Mult: mult}, true

	case u < pd+ps+pt:
		nPrime := n
		eta := 1 / d.RefractiveIndex
		if !hit.Front {
			nPrime = n.Negate()
			eta = d.RefractiveIndex
		}
		incoming := v.Negate()
		cosIncidence := math.Min(-incoming.Dot(nPrime), 1.0)
		sinTheta := math.Sqrt(math.Max(0, 1-cosIncidence*cosIncidence))

		var dir core.Vec3
		if eta*sinTheta > 1.0 {
			dir = reflectVector(incoming, nPrime)
		} else {
			dir = refractVector(incoming, nPrime, eta)
		}
		ndotl := n.Dot(dir)
		if ndotl == 0 {
			return SampleInfo{}, false
		}
		return SampleInfo{Direction: dir, PDF: pt, Mult: transmission.Multiply(1 / math.Abs(ndotl))}, true

	default:
		return SampleInfo{}, false
	}
}

// GetSampleInfo returns the forward PDF GenerateSample would have assigned
// to dir, for MIS-capable consumers (§4.6). The transmission lobe is a
// delta distribution — it only has nonzero density along the single exact
// refraction/TIR direction — so it is left out of this continuous density,
// matching how MIS weighting conventionally treats delta lobes.
func (d *Dielectric) GetSampleInfo(hit geometry.HitRecord, v, dir core.Vec3) float64 {
	n := hit.Normal
	pd, ps, _, _, _, _ := d.grayProbabilities(hit.UVW)

	var pdf float64
	ndotl := n.Dot(dir)
	if ndotl > 0 {
		pdf += pd * ndotl / math.Pi

		h := v.Add(dir).Normalize()
		vDotH := v.Dot(h)
		if vDotH > 0 {
			cosThetaH := math.Max(0, n.Dot(h))
			pdf += ps * ((d.Glossiness + 1) / (2 * math.Pi)) * math.Pow(cosThetaH, d.Glossiness) / (4 * vDotH)
		}
	}
	return pdf
}

// reflectVector calculates the reflection of a vector v off a surface with normal n.
func reflectVector(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refractVector calculates the refraction of a vector using Snell's law.
func refractVector(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
