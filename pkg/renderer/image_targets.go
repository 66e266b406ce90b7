package renderer

import (
	"image"
	"image/color"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/estimator"
)

// ImageTargets holds the render's working and output buffers. Accumulators
// is the working state the tile scheduler writes into during rendering;
// Color/Depth/SampleCount are the §6 external-interface output buffers
// (packed 24-bit sRGB, float32 depth, uint16 sample count). Depth and
// SampleCount are written per pixel as tiles render; Color is produced by
// Finalize once every tile has converged. Grounded in the teacher's
// pkg/renderer/stats.go PixelStats-per-pixel approach, widened into
// parallel buffers and generalized from its luminance-only variance
// tracking to an estimator.PixelAccumulator per pixel.
type ImageTargets struct {
	Width, Height int
	Accumulators  []estimator.PixelAccumulator

	Color       []uint32
	Depth       []float32
	SampleCount []uint16
}

// NewImageTargets allocates buffers for a width x height render.
func NewImageTargets(width, height int) *ImageTargets {
	n := width * height
	depth := make([]float32, n)
	for i := range depth {
		depth[i] = -1 // unhit
	}
	return &ImageTargets{
		Width:        width,
		Height:       height,
		Accumulators: make([]estimator.PixelAccumulator, n),
		Color:        make([]uint32, n),
		Depth:        depth,
		SampleCount:  make([]uint16, n),
	}
}

func (t *ImageTargets) index(x, y int) int {
	return y*t.Width + x
}

// Accumulator returns the pixel accumulator for (x, y). A tile's pixels
// never overlap another tile's, so each worker mutates a disjoint slice
// range and needs no locking (§4.9, §5).
func (t *ImageTargets) Accumulator(x, y int) *estimator.PixelAccumulator {
	return &t.Accumulators[t.index(x, y)]
}

// SetDepth records the first-hit distance for (x, y), or leaves it at -1 on
// a miss.
func (t *ImageTargets) SetDepth(x, y int, depth float64, hit bool) {
	if !hit {
		return
	}
	t.Depth[t.index(x, y)] = float32(depth)
}

// SetSampleCount records how many samples a pixel's estimator stopped at.
func (t *ImageTargets) SetSampleCount(x, y, n int) {
	t.SampleCount[t.index(x, y)] = uint16(n)
}

// Finalize packs every accumulator's mean color into the 24-bit sRGB Color
// buffer, applying gamma correction, once rendering has completed.
func (t *ImageTargets) Finalize(gamma float64) {
	for i, acc := range t.Accumulators {
		t.Color[i] = packRGB(acc.Mean(), gamma)
	}
}

func packRGB(c core.Vec3, gamma float64) uint32 {
	corrected := c.Clamp(0, 1).GammaCorrect(gamma)
	r := uint32(corrected.X*255 + 0.5)
	g := uint32(corrected.Y*255 + 0.5)
	b := uint32(corrected.Z*255 + 0.5)
	return r<<16 | g<<8 | b
}

// ToImage renders the finalized Color buffer as a standard library RGBA
// image, ready for cmd/wisptrace to encode as PNG.
func (t *ImageTargets) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			packed := t.Color[t.index(x, y)]
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(packed >> 16),
				G: uint8(packed >> 8),
				B: uint8(packed),
				A: 255,
			})
		}
	}
	return img
}

// DepthImage renders the Depth buffer as an 8-bit grayscale image,
// normalized against the farthest recorded hit (the "z-buffer image" of
// §1).
func (t *ImageTargets) DepthImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, t.Width, t.Height))

	maxDepth := float32(0)
	for _, d := range t.Depth {
		if d > maxDepth {
			maxDepth = d
		}
	}
	if maxDepth <= 0 {
		return img
	}

	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			d := t.Depth[t.index(x, y)]
			if d < 0 {
				continue
			}
			img.SetGray(x, y, color.Gray{Y: uint8(255 * (1 - d/maxDepth))})
		}
	}
	return img
}

// SampleCountImage renders the SampleCount buffer as an 8-bit grayscale
// image, normalized against maxSamples (the "sampling-density image" of
// §1).
func (t *ImageTargets) SampleCountImage(maxSamples int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, t.Width, t.Height))
	if maxSamples <= 0 {
		return img
	}
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			n := t.SampleCount[t.index(x, y)]
			v := float64(n) / float64(maxSamples)
			if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(255 * v)})
		}
	}
	return img
}
