package geometry

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// HitRecord is the mutable state of a single nearest-hit query.
// T only ever decreases while the query runs.
type HitRecord struct {
	T         float64   // Nearest distance found so far
	Hit       bool      // Whether any triangle was accepted
	U, V      float64   // Barycentric coordinates of the hit
	Normal    core.Vec3 // Interpolated shading normal (unit length)
	UV        core.Vec2 // Interpolated texture coordinates
	Material  *material.Material
	Primitive int // Index into the backend's triangle array
}

// newHitRecord starts a query with the far end of the ray interval
func newHitRecord(tMax float64) HitRecord {
	return HitRecord{T: tMax, Primitive: -1}
}
