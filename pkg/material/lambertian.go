package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// SampleLambert draws a cosine-weighted direction around normal for a diffuse surface.
// The BRDF is albedo/π and the density is cos(θ)/π.
func SampleLambert(normal, albedo core.Vec3, sample core.Vec2) Sample {
	direction, pdf := core.SampleCosineHemisphere(normal, sample)
	return Sample{
		Direction: direction,
		PDF:       pdf,
		F:         albedo.Multiply(1.0 / math.Pi),
	}
}

// EvaluateLambert returns the diffuse BRDF for a direction, zero below the surface
func EvaluateLambert(normal, albedo, direction core.Vec3) core.Vec3 {
	if normal.Dot(direction) <= 0 {
		return core.Vec3{}
	}
	return albedo.Multiply(1.0 / math.Pi)
}
