package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder, registered for image.Decode
	_ "image/png"  // PNG decoder, registered for image.Decode
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder, registered for image.Decode

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/material"
)

// LoadTexture decodes a PNG, JPEG, or BMP file and wraps it in a
// material.ImageTexture (§4.13). Format is auto-detected from the file
// header by image.Decode, so the same call handles all three. Grounded in
// the teacher's pkg/loaders/image.go LoadImage, widened from PNG/JPEG-only
// to also register golang.org/x/image/bmp and returning the concrete
// material.Texture the rest of the renderer expects instead of a raw pixel
// array.
func LoadTexture(path string) (*material.ImageTexture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*width+x] = core.NewVec3(float64(r)/65535, float64(g)/65535, float64(b)/65535)
		}
	}

	return material.NewImageTexture(width, height, pixels), nil
}
