package geometry

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// parallelEpsilon is the determinant magnitude below which a ray is treated as parallel to the triangle
const parallelEpsilon = 1e-5

// Vertex is a triangle corner with its shading attributes
type Vertex struct {
	Position core.Vec3
	Normal   core.Vec3
	UV       core.Vec2
}

// NewVertex creates a vertex
func NewVertex(position, normal core.Vec3, uv core.Vec2) Vertex {
	return Vertex{Position: position, Normal: normal, UV: uv}
}

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 Vertex
	Material   *material.Material

	edge1, edge2 core.Vec3 // Cached V1-V0 and V2-V0
	normal       core.Vec3 // Cached geometric normal
	bbox         core.AABB // Cached bounding box
	area         float64
}

// NewTriangle creates a new triangle from three vertices.
// Zero vertex normals are replaced by the geometric normal.
func NewTriangle(v0, v1, v2 Vertex, mat *material.Material) Triangle {
	t := Triangle{V0: v0, V1: v1, V2: v2, Material: mat}

	t.edge1 = v1.Position.Subtract(v0.Position)
	t.edge2 = v2.Position.Subtract(v0.Position)
	cross := t.edge1.Cross(t.edge2)
	t.area = cross.Length() * 0.5
	t.normal = cross.Normalize()
	t.bbox = core.NewAABBFromPoints(v0.Position, v1.Position, v2.Position)

	for _, v := range []*Vertex{&t.V0, &t.V1, &t.V2} {
		if v.Normal.IsZero() {
			v.Normal = t.normal
		} else {
			v.Normal = v.Normal.Normalize()
		}
	}

	return t
}

// NewFlatTriangle creates a triangle from positions only, using the geometric normal everywhere
func NewFlatTriangle(p0, p1, p2 core.Vec3, mat *material.Material) Triangle {
	return NewTriangle(
		Vertex{Position: p0, UV: core.NewVec2(0, 0)},
		Vertex{Position: p1, UV: core.NewVec2(1, 0)},
		Vertex{Position: p2, UV: core.NewVec2(0, 1)},
		mat,
	)
}

// BoundingBox returns the cached bounding box
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Centroid returns the center of the bounding box, used for BVH partitioning
func (t *Triangle) Centroid() core.Vec3 {
	return t.bbox.Center()
}

// Area returns the surface area
func (t *Triangle) Area() float64 {
	return t.area
}

// Normal returns the geometric normal (unit length, right-handed winding)
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Interpolate blends the vertex positions and normals with barycentric weights (w0, w1, w2)
func (t *Triangle) Interpolate(w0, w1, w2 float64) (point, normal core.Vec3) {
	point = t.V0.Position.Multiply(w0).Add(t.V1.Position.Multiply(w1)).Add(t.V2.Position.Multiply(w2))
	normal = t.V0.Normal.Multiply(w0).Add(t.V1.Normal.Multiply(w1)).Add(t.V2.Normal.Multiply(w2)).Normalize()
	return point, normal
}

// Intersect runs the Möller-Trumbore test and updates hit if this triangle is strictly
// closer than hit.T and farther than tMin. Returns whether hit was updated.
func (t *Triangle) Intersect(ray core.Ray, tMin float64, hit *HitRecord) bool {
	h := ray.Direction.Cross(t.edge2)
	det := t.edge1.Dot(h)
	if math.Abs(det) < parallelEpsilon {
		return false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(t.V0.Position)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}

	q := s.Cross(t.edge1)
	v := invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}

	dist := invDet * t.edge2.Dot(q)
	if dist <= tMin || dist >= hit.T {
		return false
	}

	w := 1.0 - u - v
	hit.T = dist
	hit.Hit = true
	hit.U = u
	hit.V = v
	hit.Normal = t.V0.Normal.Multiply(w).Add(t.V1.Normal.Multiply(u)).Add(t.V2.Normal.Multiply(v)).Normalize()
	hit.UV = t.V0.UV.Multiply(w).Add(t.V1.UV.Multiply(u)).Add(t.V2.UV.Multiply(v))
	hit.Material = t.Material
	return true
}
