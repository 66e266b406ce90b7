// Package sampler provides the low-discrepancy sequences, per-thread RNG,
// and hemisphere/disk/cone sampling helpers used by the camera, the
// shading model, and the path tracer.
package sampler

// Halton returns the i-th term (0-indexed) of the Halton sequence in the
// given prime base, using the standard radical-inverse construction.
func Halton(index int, base int) float64 {
	result := 0.0
	f := 1.0 / float64(base)
	i := index
	for i > 0 {
		result += f * float64(i%base)
		i /= base
		f /= float64(base)
	}
	return result
}

// bases used by the camera for AA (2,3) and lens (5,7) jitter, per §2/§4.10.
const (
	BaseAA1   = 2
	BaseAA2   = 3
	BaseLens1 = 5
	BaseLens2 = 7
)

// CranleyPatterson applies a per-pixel random rotation to a Halton sample,
// wrapping the result back into [0,1). This decorrelates the deterministic
// Halton sequence across pixels while keeping its low-discrepancy structure
// within a pixel (§4.10 "Cranley-Patterson rotation").
func CranleyPatterson(haltonValue, rotation float64) float64 {
	v := haltonValue + rotation
	v -= float64(int(v))
	if v < 0 {
		v += 1
	}
	return v
}
