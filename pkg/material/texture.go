package material

import "github.com/dlumiere/wisp-tracer/pkg/core"

// Texture provides a spatially-varying color for a material channel,
// evaluated at a hit's UVW coordinate (§3 "Material" — diffuse/specular/
// reflection/refraction colors are each optionally textured).
type Texture interface {
	Evaluate(uvw core.Vec3) core.Vec3
}

// SolidColor is a Texture that returns the same color everywhere,
// grounded in the teacher's pkg/material/color_source.go SolidColor.
type SolidColor struct {
	Color core.Vec3
}

func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

func (s *SolidColor) Evaluate(uvw core.Vec3) core.Vec3 {
	return s.Color
}
