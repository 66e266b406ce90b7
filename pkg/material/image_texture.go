package material

import "github.com/dlumiere/wisp-tracer/pkg/core"

// ImageTexture provides color from a 2D image decoded by pkg/loaders
// (PNG/JPEG/BMP), sampled by nearest-neighbor at a hit's UVW coordinate.
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // row-major: Pixels[y*Width+x]
}

func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

func (t *ImageTexture) Evaluate(uvw core.Vec3) core.Vec3 {
	u := uvw.X - float64(int(uvw.X))
	v := uvw.Y - float64(int(uvw.Y))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return t.Pixels[y*t.Width+x]
}
