package scene

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

func TestNewQuad(t *testing.T) {
	mat := material.NewLambert("white", core.NewVec3(1, 1, 1))
	tris := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0), mat)
	if len(tris) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(tris))
	}
	area := tris[0].Area() + tris[1].Area()
	if math.Abs(area-6) > 1e-12 {
		t.Errorf("Expected area 6, got %v", area)
	}
	for i, tri := range tris {
		if n := tri.Normal(); math.Abs(n.Z-1) > 1e-12 {
			t.Errorf("Triangle %d: expected +Z normal, got %v", i, n)
		}
	}
}

func TestNewGroundQuadFacesUp(t *testing.T) {
	tris := NewGroundQuad(core.NewVec3(0, -1, 0), 4, nil)
	for i, tri := range tris {
		if n := tri.Normal(); math.Abs(n.Y-1) > 1e-12 {
			t.Errorf("Triangle %d: expected +Y normal, got %v", i, n)
		}
		for _, v := range []core.Vec3{tri.V0.Position, tri.V1.Position, tri.V2.Position} {
			if v.Y != -1 || math.Abs(v.X) > 2 || math.Abs(v.Z) > 2 {
				t.Errorf("Vertex %v outside the ground square", v)
			}
		}
	}
}

func TestNewBox(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
	}{
		{"axis aligned", 0},
		{"rotated", math.Pi / 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center := core.NewVec3(1, 2, 3)
			size := core.NewVec3(2, 4, 6)
			tris := NewBox(center, size, tt.rotation, nil)
			if len(tris) != 12 {
				t.Fatalf("Expected 12 triangles, got %d", len(tris))
			}

			area := 0.0
			for i, tri := range tris {
				area += tri.Area()
				// Outward normal: points away from the center
				toFace := tri.Centroid().Subtract(center)
				if tri.Normal().Dot(toFace) <= 0 {
					t.Errorf("Triangle %d normal %v points inwards", i, tri.Normal())
				}
			}
			expected := 2 * (2*4 + 4*6 + 6*2)
			if math.Abs(area-float64(expected)) > 1e-9 {
				t.Errorf("Expected surface area %v, got %v", expected, area)
			}
		})
	}
}

func TestNewIcosphere(t *testing.T) {
	center := core.NewVec3(1, 0, -1)
	for level, expected := range []int{20, 80, 320} {
		tris := NewIcosphere(center, 2, level, true, nil)
		if len(tris) != expected {
			t.Errorf("Level %d: expected %d triangles, got %d", level, expected, len(tris))
		}
		for _, tri := range tris {
			for _, v := range []struct{ p, n core.Vec3 }{
				{tri.V0.Position, tri.V0.Normal},
				{tri.V1.Position, tri.V1.Normal},
				{tri.V2.Position, tri.V2.Normal},
			} {
				if r := v.p.Subtract(center).Length(); math.Abs(r-2) > 1e-9 {
					t.Fatalf("Vertex at radius %v, expected 2", r)
				}
				radial := v.p.Subtract(center).Normalize()
				if radial.Dot(v.n) < 1-1e-9 {
					t.Fatalf("Smooth normal %v is not radial %v", v.n, radial)
				}
			}
		}
	}
}

func TestIcosphereFlatShading(t *testing.T) {
	tris := NewIcosphere(core.Vec3{}, 1, 1, false, nil)
	for i, tri := range tris {
		if tri.V0.Normal != tri.Normal() {
			t.Errorf("Triangle %d: flat vertex normal %v differs from face normal %v", i, tri.V0.Normal, tri.Normal())
		}
	}
}

func TestNewCheckerTexture(t *testing.T) {
	a, b := core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0)
	tex := NewCheckerTexture(4, a, b)
	if tex.Width != 4 || tex.Height != 4 {
		t.Fatalf("Expected 4x4, got %dx%d", tex.Width, tex.Height)
	}
	if tex.Texel(0.1, 0.1) != a {
		t.Error("Expected first color at top-left")
	}
	if tex.Texel(0.3, 0.1) != b {
		t.Error("Expected second color next to top-left")
	}
	if tex.Texel(0.3, 0.3) != a {
		t.Error("Expected first color on the diagonal")
	}
}
