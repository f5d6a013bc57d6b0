package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Orthogonal returns a vector perpendicular to n (not normalized)
func Orthogonal(n Vec3) Vec3 {
	if math.Abs(n.X) > math.Abs(n.Z) {
		return NewVec3(n.Y, -n.X, 0)
	}
	return NewVec3(0, n.Z, -n.Y)
}

// Basis builds an orthonormal frame (tangent, bitangent) around the unit vector n
func Basis(n Vec3) (Vec3, Vec3) {
	tangent := Orthogonal(n).Normalize()
	bitangent := n.Cross(tangent)
	return tangent, bitangent
}

// toWorld maps local frame coordinates (x, y along the tangent plane, z along axis) to world space
func toWorld(axis Vec3, x, y, z float64) Vec3 {
	tangent, bitangent := Basis(axis)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(axis.Multiply(z))
}

// SampleCosineHemisphere generates a cosine-weighted random direction in the hemisphere around normal.
// Returns the unit direction and its solid-angle density cos(θ)/π.
func SampleCosineHemisphere(normal Vec3, sample Vec2) (Vec3, float64) {
	phi := 2.0 * math.Pi * sample.X
	cosTheta := math.Sqrt(1.0 - sample.Y)
	sinTheta := math.Sqrt(sample.Y)

	direction := toWorld(normal, sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	return direction, CosineHemispherePDF(normal, direction)
}

// CosineHemispherePDF returns the density of SampleCosineHemisphere for direction
func CosineHemispherePDF(normal, direction Vec3) float64 {
	cosTheta := normal.Dot(direction)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// SamplePowerCosine draws a direction around axis distributed proportionally to cos^n(α),
// where α is the angle to axis. Returns the unit direction and its solid-angle density.
func SamplePowerCosine(axis Vec3, exponent float64, sample Vec2) (Vec3, float64) {
	phi := 2.0 * math.Pi * sample.X
	cosAlpha := math.Pow(sample.Y, 1.0/(exponent+1.0))
	sinAlpha := math.Sqrt(math.Max(0, 1.0-cosAlpha*cosAlpha))

	direction := toWorld(axis, sinAlpha*math.Cos(phi), sinAlpha*math.Sin(phi), cosAlpha)
	return direction, PowerCosinePDF(axis, direction, exponent)
}

// PowerCosinePDF returns the density of SamplePowerCosine: (n+1)/(2π)·cos^n(α)
func PowerCosinePDF(axis, direction Vec3, exponent float64) float64 {
	cosAlpha := axis.Dot(direction)
	if cosAlpha <= 0 {
		return 0
	}
	return (exponent + 1.0) / (2.0 * math.Pi) * math.Pow(cosAlpha, exponent)
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return NewVec2(0, 0)
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SampleTriangleBarycentric maps two uniform numbers to area-uniform barycentric weights (u, v, w)
func SampleTriangleBarycentric(r1, r2 float64) (u, v, w float64) {
	sqrtR1 := math.Sqrt(r1)
	u = 1 - sqrtR1
	v = sqrtR1 * (1 - r2)
	w = sqrtR1 * r2
	return u, v, w
}
