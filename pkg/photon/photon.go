// Package photon implements the photon-map scaffold described in spec.md
// §3 "Photon map (scaffold)": a fixed-capacity array of photons supporting
// append-until-full and k-nearest-neighbor irradiance estimation after a
// one-shot kd-tree build. Consolidation strategies beyond accept-or-drop at
// a target count are an explicit Non-goal, so there is no Russian-roulette
// storage policy or density-aware merging here.
package photon

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// Photon is one stored photon hit: where it landed, the direction it
// arrived from, and the flux it carried.
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3
	Flux      core.Vec3
}

// Map is a fixed-capacity photon store. Photons accumulate via Add until
// capacity is reached, after which Add returns false; Prepare builds a
// kd-tree over the stored photons once emission is complete, enabling
// Irradiance queries.
type Map struct {
	capacity int
	photons  []Photon
	tree     *kdTree
}

// NewMap allocates a photon map with room for capacity photons.
func NewMap(capacity int) *Map {
	return &Map{
		capacity: capacity,
		photons:  make([]Photon, 0, capacity),
	}
}

// Add appends p to the map, returning false once capacity is reached
// (§7 "resource exhaustion: photon map full").
func (m *Map) Add(p Photon) bool {
	if len(m.photons) >= m.capacity {
		return false
	}
	m.photons = append(m.photons, p)
	return true
}

// Len reports how many photons are currently stored.
func (m *Map) Len() int {
	return len(m.photons)
}

// Full reports whether the map has reached capacity.
func (m *Map) Full() bool {
	return len(m.photons) >= m.capacity
}

// Prepare builds the kd-tree used by Irradiance. It must be called once,
// after emission has finished and before any Irradiance query.
func (m *Map) Prepare() {
	m.tree = newKDTree(m.photons)
}

// Irradiance estimates the irradiance at point p with surface normal n by
// gathering the k nearest photons (front-facing relative to n only) and
// summing their flux over the disc their furthest neighbor defines.
// Prepare must have been called first; Irradiance returns the zero vector
// if the map holds no photons.
func (m *Map) Irradiance(p core.Vec3, n core.Vec3, k int) core.Vec3 {
	if m.tree == nil || len(m.photons) == 0 || k <= 0 {
		return core.Vec3{}
	}

	neighbors, maxDistSq := m.tree.nearest(p, k)
	if len(neighbors) == 0 {
		return core.Vec3{}
	}

	var sum core.Vec3
	for _, idx := range neighbors {
		ph := m.photons[idx]
		if ph.Direction.Dot(n) >= 0 {
			// arriving from behind the surface; skip like a backface hit
			continue
		}
		sum = sum.Add(ph.Flux)
	}

	if maxDistSq <= 0 {
		return sum
	}
	area := math.Pi * maxDistSq
	return sum.Multiply(1 / area)
}
