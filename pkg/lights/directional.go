package lights

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// DirectionalLight models a light infinitely far away (sun-like), defined
// by the direction the light travels *in* (Direction points from the light
// toward the scene). GenerateSample always returns the single direction
// back toward the light, PDF 1, at infinite distance, per §4.7.
type DirectionalLight struct {
	Direction core.Vec3 // normalized, points from light to scene
	Color     core.Vec3
}

func NewDirectionalLight(direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Color: color}
}

func (d *DirectionalLight) GenerateSample(point, normal core.Vec3, s sampler.Sampler) Sample {
	return Sample{
		Direction: d.Direction.Negate(),
		PDF:       1,
		Mult:      d.Color,
		Distance:  math.Inf(1),
	}
}

func (d *DirectionalLight) Intensity() core.Vec3 {
	return d.Color
}
