package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// FresnelIndices returns the indices of refraction on the incident (n1) and transmitted (n2)
// side of a glass interface. A ray already travelling through a medium with the material's
// own index is leaving it, so the far side is air.
func FresnelIndices(current, materialIOR float64) (n1, n2 float64) {
	n1 = current
	n2 = materialIOR
	if n1 == n2 {
		n2 = IORAir
	}
	return n1, n2
}

// Schlick approximates Fresnel reflectance for light crossing from n1 into n2.
// cosI is the cosine of the incident angle. When n1 > n2 the transmitted angle is used,
// and total internal reflection returns 1.
func Schlick(cosI, n1, n2 float64) float64 {
	r0 := (n1 - n2) / (n1 + n2)
	r0 *= r0

	cosX := math.Abs(cosI)
	if n1 > n2 {
		eta := n1 / n2
		sinT2 := eta * eta * (1.0 - cosX*cosX)
		if sinT2 > 1.0 {
			return 1.0
		}
		cosX = math.Sqrt(1.0 - sinT2)
	}

	x := 1.0 - cosX
	return r0 + (1.0-r0)*x*x*x*x*x
}

// Refract bends unit direction v through a surface with unit normal n facing against v,
// with eta = n1/n2. ok is false on total internal reflection.
func Refract(v, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosI := -n.Dot(v)
	k := 1.0 - eta*eta*(1.0-cosI*cosI)
	if k < 0 {
		return core.Vec3{}, false
	}
	return v.Multiply(eta).Add(n.Multiply(eta*cosI - math.Sqrt(k))).Normalize(), true
}

// BeerLambert returns the per-channel transmittance exp(-μ·distance) through an absorbing medium
func BeerLambert(mu core.Vec3, distance float64) core.Vec3 {
	return mu.Multiply(-distance).Exp()
}
