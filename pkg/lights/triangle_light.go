package lights

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
)

// TriangleLight is an emissive triangle with its cumulative probability in the light CDF
type TriangleLight struct {
	Triangle *geometry.Triangle
	CDF      float64
}

// LightSample is a point drawn uniformly over a light's surface
type LightSample struct {
	Point  core.Vec3
	Normal core.Vec3
	Area   float64
}

// SamplePoint maps two uniform numbers to an area-uniform point on the triangle
func (l *TriangleLight) SamplePoint(r1, r2 float64) LightSample {
	u, v, w := core.SampleTriangleBarycentric(r1, r2)
	point, normal := l.Triangle.Interpolate(u, v, w)
	return LightSample{
		Point:  point,
		Normal: normal,
		Area:   l.Triangle.Area(),
	}
}

// Color returns the emitted radiance, or white when the material has no positive emission
func (l *TriangleLight) Color() core.Vec3 {
	if l.Triangle.Material != nil && l.Triangle.Material.IsEmissive() {
		return l.Triangle.Material.Emission
	}
	return core.NewVec3(1, 1, 1)
}
