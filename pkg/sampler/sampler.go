package sampler

import (
	"math"
	"math/rand"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// Sampler is the capability every shading/path-tracing routine uses to draw
// random numbers, kept as a narrow interface so the core never depends on
// *rand.Rand directly (per spec.md §9, "recast as an explicit parameter").
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
}

// RandSampler is the default per-thread sampler backed by a math/rand
// generator. The tile renderer constructs one per pixel over its tile's own
// *rand.Rand, so render threads never share mutable state (§5 "per-thread
// state lives on the worker stack").
type RandSampler struct {
	Rand *rand.Rand
}

// NewRandSampler creates a sampler seeded deterministically; seed 0 selects
// a time-derived seed so default renders remain non-deterministic across
// runs, matching the spec's "default RNG is shared and non-deterministic"
// ordering guarantee while still allowing deterministic mode (§5).
func NewRandSampler(seed int64) *RandSampler {
	if seed == 0 {
		return &RandSampler{Rand: rand.New(rand.NewSource(rand.Int63()))}
	}
	return &RandSampler{Rand: rand.New(rand.NewSource(seed))}
}

func (s *RandSampler) Get1D() float64 {
	return s.Rand.Float64()
}

func (s *RandSampler) Get2D() (float64, float64) {
	return s.Rand.Float64(), s.Rand.Float64()
}

// RandomCosineDirection returns a cosine-weighted random direction in the
// hemisphere around the unit normal, used for the diffuse lobe (§4.6).
func RandomCosineDirection(normal core.Vec3, s Sampler) core.Vec3 {
	r1, r2 := s.Get2D()
	return CosineSampleHemisphere(normal, r1, r2)
}

// CosineSampleHemisphere draws a cosine-weighted direction from two uniform
// samples in [0,1), building an orthonormal frame around the normal.
func CosineSampleHemisphere(normal core.Vec3, r1, r2 float64) core.Vec3 {
	u, v := orthonormalBasis(normal)

	phi := 2 * math.Pi * r1
	cosTheta := math.Sqrt(1 - r2)
	sinTheta := math.Sqrt(r2)

	localX := math.Cos(phi) * sinTheta
	localY := math.Sin(phi) * sinTheta

	dir := u.Multiply(localX).Add(v.Multiply(localY)).Add(normal.Multiply(cosTheta))
	return dir.Normalize()
}

// UniformSampleCone draws a direction uniformly within a cone of half-angle
// whose cosine is cosThetaMax, around the given axis — used for spherical
// area-light sampling (§4.7).
func UniformSampleCone(axis core.Vec3, cosThetaMax, r1, r2 float64) (dir core.Vec3, cosTheta float64) {
	u, v := orthonormalBasis(axis)

	cosTheta = 1 - r1 + r1*cosThetaMax
	sinTheta := math.Sqrt(max0(1 - cosTheta*cosTheta))
	phi := 2 * math.Pi * r2

	localX := math.Cos(phi) * sinTheta
	localY := math.Sin(phi) * sinTheta

	dir = u.Multiply(localX).Add(v.Multiply(localY)).Add(axis.Multiply(cosTheta))
	return dir.Normalize(), cosTheta
}

// UniformSampleDisk maps two uniform samples to a point on the unit disk,
// used for thin-lens DOF jitter in the camera (§4.10).
func UniformSampleDisk(r1, r2 float64) (x, y float64) {
	theta := 2 * math.Pi * r1
	radius := math.Sqrt(r2)
	return radius * math.Cos(theta), radius * math.Sin(theta)
}

// SampleHalfVectorGlossy draws a half-vector around the normal for the
// Blinn-Phong glossy reflection/specular lobe, per §4.4/§4.6:
// cosθ = r2^(1/(g+1)), φ = 2π r1.
func SampleHalfVectorGlossy(normal core.Vec3, glossiness, r1, r2 float64) core.Vec3 {
	u, v := orthonormalBasis(normal)

	cosTheta := math.Pow(r2, 1/(glossiness+1))
	sinTheta := math.Sqrt(max0(1 - cosTheta*cosTheta))
	phi := 2 * math.Pi * r1

	localX := math.Cos(phi) * sinTheta
	localY := math.Sin(phi) * sinTheta

	h := u.Multiply(localX).Add(v.Multiply(localY)).Add(normal.Multiply(cosTheta))
	return h.Normalize()
}

// orthonormalBasis builds two vectors {u, v} perpendicular to n such that
// {u, v, n} is a right-handed orthonormal frame, following the
// Duff-Burgess branchless construction so it never degenerates for any n.
func orthonormalBasis(n core.Vec3) (u, v core.Vec3) {
	sign := signOf(n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	u = core.NewVec3(1+sign*n.X*n.X*a, sign*b, -sign*n.X)
	v = core.NewVec3(b, sign+n.Y*n.Y*a, -n.Y)
	return u, v
}

func signOf(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return -1
}

func max0(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
