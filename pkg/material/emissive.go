package material

import "github.com/dlumiere/wisp-tracer/pkg/core"

// Emissive is a constant-emission material: Emit returns Emission for any
// incoming ray. Scene nodes reference only Dielectric materials and no
// integrator calls Emit, so an Emissive does not appear in renders; light
// surfaces are handled through lights.Light instead (the path tracer's
// §4.5 step 2 treats those hits before ever calling into Dielectric.Shade).
type Emissive struct {
	Emission core.Vec3
}

func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

func (e *Emissive) Emit(rayIn core.Ray) core.Vec3 {
	return e.Emission
}
