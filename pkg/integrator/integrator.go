// Package integrator implements the two light-transport algorithms that
// turn a primary ray into a color: a recursive Whitted-style shader
// (§4.4) driving material.Dielectric.Shade, and an iterative unidirectional
// path tracer (§4.5). Bidirectional path tracing and MIS light samplers are
// an explicit Non-goal, so unlike the teacher's integrator package there is
// no bdpt.go/splat queue here.
package integrator

import (
	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/geometry"
	"github.com/dlumiere/wisp-tracer/pkg/lights"
	"github.com/dlumiere/wisp-tracer/pkg/material"
	"github.com/dlumiere/wisp-tracer/pkg/sampler"
)

// Scene is the minimal view of the scene graph an integrator needs. It is
// defined here, rather than depended on from the concrete scene type built
// by pkg/loaders, so pkg/loaders can depend on pkg/integrator without a
// cycle (the teacher's integrator.go used an analogous "defined locally to
// avoid circular import" interface).
type Scene interface {
	Root() *geometry.Node
	Lights() []lights.Light
	Material(index int) *material.Dielectric
	Environment(ray core.Ray) core.Vec3
}

// Integrator computes the color seen along a single primary ray.
type Integrator interface {
	RayColor(ray core.Ray, scene Scene, s sampler.Sampler) core.Vec3
}

// intersect runs the scene-graph intersector with FRONT_AND_BACK sides so
// glass back-faces are found by primary/reflection rays (§4.3 "side
// semantics").
func intersect(scene Scene, ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	return geometry.Intersect(scene.Root(), ray, geometry.SideFrontAndBack, tMin, tMax)
}

// occludes runs the scene-graph occlusion test plus every area light's own
// Intersect, since lights participate in the scene as visible geometry too.
func occludes(scene Scene, ray core.Ray, tMin, tMax float64) bool {
	if geometry.Occludes(scene.Root(), ray, tMin, tMax) {
		return true
	}
	for _, light := range scene.Lights() {
		if area, ok := light.(lights.AreaLight); ok {
			if _, hit := area.Intersect(ray, tMin, tMax); hit {
				return true
			}
		}
	}
	return false
}

// intersectLight finds the closest area light hit by ray, if any, closer
// than the closest scene geometry hit at closest.
func intersectLight(scene Scene, ray core.Ray, tMin, closest float64) (lights.AreaLight, float64, bool) {
	var bestLight lights.AreaLight
	bestT := closest
	found := false
	for _, light := range scene.Lights() {
		area, ok := light.(lights.AreaLight)
		if !ok {
			continue
		}
		if t, hit := area.Intersect(ray, tMin, bestT); hit {
			bestLight = area
			bestT = t
			found = true
		}
	}
	return bestLight, bestT, found
}
