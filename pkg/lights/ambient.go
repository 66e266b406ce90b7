package lights

import (
	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// AmbientLight is a uniform constant-radiance term with no position or
// direction, used to approximate indirect/sky illumination cheaply (§4.7).
// Its sample always succeeds: PDF 1, distance 0, direction the shading
// normal, so the caller never needs to shadow-test it.
type AmbientLight struct {
	Color core.Vec3
}

func NewAmbientLight(color core.Vec3) *AmbientLight {
	return &AmbientLight{Color: color}
}

func (a *AmbientLight) GenerateSample(point, normal core.Vec3, s sampler.Sampler) Sample {
	return Sample{
		Direction: normal,
		PDF:       1,
		Mult:      a.Color,
		Distance:  0,
	}
}

func (a *AmbientLight) Intensity() core.Vec3 {
	return a.Color
}
