package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that contains nothing and acts as the identity for Union
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.Extend(point)
	}
	return box
}

// Extend returns the box grown to contain point
func (aabb AABB) Extend(point Vec3) AABB {
	return AABB{
		Min: Vec3{min(aabb.Min.X, point.X), min(aabb.Min.Y, point.Y), min(aabb.Min.Z, point.Z)},
		Max: Vec3{max(aabb.Max.X, point.X), max(aabb.Max.Y, point.Y), max(aabb.Max.Z, point.Z)},
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{min(aabb.Min.X, other.Min.X), min(aabb.Min.Y, other.Min.Y), min(aabb.Min.Z, other.Min.Z)},
		Max: Vec3{max(aabb.Max.X, other.Max.X), max(aabb.Max.Y, other.Max.Y), max(aabb.Max.Z, other.Max.Z)},
	}
}

// Hit tests if a ray intersects this AABB using the slab method.
//
// Per axis the entry/exit distances are computed against both planes using the
// reciprocal direction; a zero direction component yields ±Inf and the comparisons
// below are written so that the resulting NaN (origin exactly on a plane) is ignored.
// The box is hit when the overall entry is not past the overall exit and the exit
// lies in front of the origin.
func (aabb AABB) Hit(ray Ray) bool {
	if !aabb.IsValid() {
		return false
	}

	entry := math.Inf(-1)
	exit := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		invDirection := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) * invDirection
		t1 := (aabb.Max.Axis(axis) - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > entry {
			entry = t0
		}
		if t1 < exit {
			exit = t1
		}
	}

	return entry <= exit && exit >= 0
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
