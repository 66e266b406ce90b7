package geometry

import "github.com/dlumiere/wisp-tracer/pkg/core"

// Intersect walks the scene graph rooted at node, transforming the ray
// into each node's local frame with its cached inverse transform and
// never renormalizing the direction, so `t` stays consistent in the
// current frame's units across the whole recursion (§4.3). Primary and
// reflected rays use side = SideFrontAndBack so glass back-faces are
// found; shadow rays should call Occludes instead.
func Intersect(node *Node, ray core.Ray, side Side, tMin, tMax float64) (*HitRecord, bool) {
	localRay := core.Ray{
		Origin:    node.Transform.InverseTransformPoint(ray.Origin),
		Direction: node.Transform.InverseTransformDirection(ray.Direction),
	}

	var best *HitRecord
	closest := tMax

	if node.Shape != nil {
		if hit, ok := node.Shape.Intersect(localRay, side, tMin, closest); ok {
			hit.Node = node
			hit.Point = node.Transform.TransformPoint(hit.Point)
			hit.Normal = node.Transform.TransformNormal(hit.Normal)
			best = hit
			closest = hit.T
		}
	}

	for _, child := range node.Children {
		if hit, ok := Intersect(child, localRay, side, tMin, closest); ok {
			hit.Point = node.Transform.TransformPoint(hit.Point)
			hit.Normal = node.Transform.TransformNormal(hit.Normal)
			best = hit
			closest = hit.T
		}
	}

	return best, best != nil
}

// Occludes walks the scene graph looking for any occluding hit, stopping
// at the first one found; side filtering does not apply to shadow rays.
func Occludes(node *Node, ray core.Ray, tMin, tMax float64) bool {
	localRay := core.Ray{
		Origin:    node.Transform.InverseTransformPoint(ray.Origin),
		Direction: node.Transform.InverseTransformDirection(ray.Direction),
	}

	if node.Shape != nil && node.Shape.Occludes(localRay, tMin, tMax) {
		return true
	}

	for _, child := range node.Children {
		if Occludes(child, localRay, tMin, tMax) {
			return true
		}
	}

	return false
}
