package scene

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// NewQuad creates two triangles spanning corner, corner+u, corner+u+v and corner+v.
// The face normal is u × v and UVs run from (0,0) at corner to (1,1) at the far corner.
func NewQuad(corner, u, v core.Vec3, mat *material.Material) []geometry.Triangle {
	normal := u.Cross(v).Normalize()
	p0 := geometry.NewVertex(corner, normal, core.NewVec2(0, 0))
	p1 := geometry.NewVertex(corner.Add(u), normal, core.NewVec2(1, 0))
	p2 := geometry.NewVertex(corner.Add(u).Add(v), normal, core.NewVec2(1, 1))
	p3 := geometry.NewVertex(corner.Add(v), normal, core.NewVec2(0, 1))
	return []geometry.Triangle{
		geometry.NewTriangle(p0, p1, p2, mat),
		geometry.NewTriangle(p0, p2, p3, mat),
	}
}

// NewGroundQuad creates a horizontal quad centered at center with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat *material.Material) []geometry.Triangle {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	return NewQuad(corner, core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), mat)
}

// NewBox creates an axis-aligned box of the given size, rotated about its vertical axis by
// rotationY radians and centered at center. Faces point outwards.
func NewBox(center, size core.Vec3, rotationY float64, mat *material.Material) []geometry.Triangle {
	h := size.Multiply(0.5)
	cos, sin := math.Cos(rotationY), math.Sin(rotationY)
	place := func(x, y, z float64) core.Vec3 {
		return core.NewVec3(center.X+x*cos+z*sin, center.Y+y, center.Z-x*sin+z*cos)
	}
	axis := func(x, y, z float64) core.Vec3 {
		return core.NewVec3(x*cos+z*sin, y, -x*sin+z*cos)
	}

	faces := [][3]core.Vec3{
		// corner, u, v with u × v pointing out of the box
		{place(-h.X, -h.Y, h.Z), axis(size.X, 0, 0), axis(0, size.Y, 0)},  // front (+Z)
		{place(h.X, -h.Y, -h.Z), axis(-size.X, 0, 0), axis(0, size.Y, 0)}, // back (-Z)
		{place(h.X, -h.Y, h.Z), axis(0, 0, -size.Z), axis(0, size.Y, 0)},  // right (+X)
		{place(-h.X, -h.Y, -h.Z), axis(0, 0, size.Z), axis(0, size.Y, 0)}, // left (-X)
		{place(-h.X, h.Y, h.Z), axis(size.X, 0, 0), axis(0, 0, -size.Z)},  // top (+Y)
		{place(-h.X, -h.Y, -h.Z), axis(size.X, 0, 0), axis(0, 0, size.Z)}, // bottom (-Y)
	}

	tris := make([]geometry.Triangle, 0, 12)
	for _, f := range faces {
		tris = append(tris, NewQuad(f[0], f[1], f[2], mat)...)
	}
	return tris
}

// icosahedron vertices (unnormalized) and faces
var (
	icoT     = (1.0 + math.Sqrt(5.0)) / 2.0
	icoVerts = []core.Vec3{
		{X: -1, Y: icoT}, {X: 1, Y: icoT}, {X: -1, Y: -icoT}, {X: 1, Y: -icoT},
		{Y: -1, Z: icoT}, {Y: 1, Z: icoT}, {Y: -1, Z: -icoT}, {Y: 1, Z: -icoT},
		{X: icoT, Z: -1}, {X: icoT, Z: 1}, {X: -icoT, Z: -1}, {X: -icoT, Z: 1},
	}
	icoFaces = [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// NewIcosphere creates a geodesic sphere by subdividing an icosahedron. Each subdivision
// level multiplies the face count by four. With smooth set, vertex normals are radial;
// otherwise each face is shaded flat.
func NewIcosphere(center core.Vec3, radius float64, subdivisions int, smooth bool, mat *material.Material) []geometry.Triangle {
	points := make([]core.Vec3, len(icoVerts))
	for i, v := range icoVerts {
		points[i] = v.Normalize()
	}
	faces := icoFaces

	for level := 0; level < subdivisions; level++ {
		midpoints := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if index, ok := midpoints[key]; ok {
				return index
			}
			points = append(points, points[a].Add(points[b]).Normalize())
			midpoints[key] = len(points) - 1
			return len(points) - 1
		}

		next := make([][3]int, 0, len(faces)*4)
		for _, f := range faces {
			ab, bc, ca := midpoint(f[0], f[1]), midpoint(f[1], f[2]), midpoint(f[2], f[0])
			next = append(next,
				[3]int{f[0], ab, ca},
				[3]int{f[1], bc, ab},
				[3]int{f[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		faces = next
	}

	vertex := func(index int) geometry.Vertex {
		n := points[index]
		var normal core.Vec3
		if smooth {
			normal = n
		}
		uv := core.NewVec2(0.5+math.Atan2(n.Z, n.X)/(2*math.Pi), 0.5+math.Asin(max(-1, min(1, n.Y)))/math.Pi)
		return geometry.NewVertex(center.Add(n.Multiply(radius)), normal, uv)
	}

	tris := make([]geometry.Triangle, len(faces))
	for i, f := range faces {
		tris[i] = geometry.NewTriangle(vertex(f[0]), vertex(f[1]), vertex(f[2]), mat)
	}
	return tris
}

// NewCheckerTexture creates a size x size checkerboard of two colors
func NewCheckerTexture(size int, a, b core.Vec3) *material.ImageTexture {
	pixels := make([]core.Vec3, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				pixels[y*size+x] = a
			} else {
				pixels[y*size+x] = b
			}
		}
	}
	return material.NewImageTexture(size, size, pixels)
}
