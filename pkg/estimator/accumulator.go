// Package estimator implements the adaptive per-pixel sample accumulator
// of §4.8: a running sum and sum-of-squares per channel, stopped by a
// Student-t-style confidence half-width test. Grounded in the teacher's
// pkg/renderer/tile_renderer.go shouldStopSampling (luminance-based
// coefficient-of-variation stopping), generalized here to the spec's
// per-channel S/S² variance test instead of a single luminance scalar.
package estimator

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

const (
	// DefaultMinSamples is n_min: the estimator never stops before this
	// many samples, regardless of how tight the variance looks early on.
	DefaultMinSamples = 16
	// DefaultMaxSamples is n_max: a hard cap applied even if variance
	// never converges (e.g. fireflies).
	DefaultMaxSamples = 64
	// DefaultMaxHalfWidth is delta_max, the per-channel confidence
	// half-width below which sampling stops.
	DefaultMaxHalfWidth = 0.01
	// confidenceK is the fixed half-width multiplier k=3, used in place
	// of a full t_{n-1,0.975} lookup table (§4.8 "or the ... table when
	// required").
	confidenceK = 3.0
)

// PixelAccumulator tracks a single pixel's running color statistics across
// samples. All operations are thread-local; a render worker owns one per
// pixel in its tile and needs no locking (§4.8, §5).
type PixelAccumulator struct {
	sum     core.Vec3
	sumSq   core.Vec3
	samples int
}

// AddSample folds one more color sample into the running statistics. A
// sample with a non-finite channel (NaN/Inf, e.g. from a degenerate BRDF
// division) is dropped rather than folded in, per §7's overflow handling.
func (a *PixelAccumulator) AddSample(color core.Vec3) {
	if !isFinite(color.X) || !isFinite(color.Y) || !isFinite(color.Z) {
		return
	}
	a.sum = a.sum.Add(color)
	a.sumSq = a.sumSq.Add(color.Square())
	a.samples++
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Mean returns S/n, the current best estimate of the pixel's color.
func (a *PixelAccumulator) Mean() core.Vec3 {
	if a.samples == 0 {
		return core.Vec3{}
	}
	return a.sum.Multiply(1 / float64(a.samples))
}

// SampleCount returns n, the number of samples folded in so far.
func (a *PixelAccumulator) SampleCount() int {
	return a.samples
}

// Config bundles the adaptive estimator's tunable thresholds, normally
// sourced from the render configuration (§6 "samples per pixel min/max,
// delta-max threshold").
type Config struct {
	MinSamples   int
	MaxSamples   int
	MaxHalfWidth float64
}

// DefaultConfig returns the §4.8 defaults.
func DefaultConfig() Config {
	return Config{MinSamples: DefaultMinSamples, MaxSamples: DefaultMaxSamples, MaxHalfWidth: DefaultMaxHalfWidth}
}

// ShouldStop reports whether sampling should stop for this pixel: always
// continue below MinSamples, always stop at MaxSamples, and in between
// stop once every channel's half-width `k*sigma/sqrt(n)` is below
// MaxHalfWidth, per §4.8.
func (a *PixelAccumulator) ShouldStop(cfg Config) bool {
	if a.samples < cfg.MinSamples {
		return false
	}
	if a.samples >= cfg.MaxSamples {
		return true
	}

	n := float64(a.samples)
	sumSquared := a.sum.MultiplyVec(a.sum).Multiply(1 / n)
	variance := a.sumSq.Subtract(sumSquared).Multiply(1 / (n - 1)).Clamp(0, math.MaxFloat64)
	sigma := variance.Pow(0.5)
	halfWidth := sigma.Multiply(confidenceK / math.Sqrt(n))

	return halfWidth.X < cfg.MaxHalfWidth && halfWidth.Y < cfg.MaxHalfWidth && halfWidth.Z < cfg.MaxHalfWidth
}
