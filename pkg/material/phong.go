package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Lobe identifies which component of a mixture BRDF produced a sample
type Lobe int

const (
	DiffuseLobe Lobe = iota
	SpecularLobe
)

func (l Lobe) String() string {
	if l == SpecularLobe {
		return "specular"
	}
	return "diffuse"
}

// DiffuseProbability returns the chance of picking the diffuse lobe: max(kd)/(max(kd)+max(ks)).
// Returns ok=false when neither lobe reflects any light.
func DiffuseProbability(kd, ks core.Vec3) (float64, bool) {
	d := math.Max(0, kd.MaxComponent())
	s := math.Max(0, ks.MaxComponent())
	if d+s <= 0 {
		return 0, false
	}
	return d / (d + s), true
}

// PhongSpecular evaluates the normalized Phong specular BRDF ks·(n+2)/(2π)·cos^n(α),
// where α is the angle between direction and the mirror direction.
func PhongSpecular(ks core.Vec3, shininess float64, mirror, direction core.Vec3) core.Vec3 {
	cosAlpha := mirror.Dot(direction)
	if cosAlpha <= 0 {
		return core.Vec3{}
	}
	return ks.Multiply((shininess + 2.0) / (2.0 * math.Pi) * math.Pow(cosAlpha, shininess))
}

// SamplePhong samples the diffuse + specular mixture of m at a surface with the given
// normal (facing the incoming ray). lobeChoice picks the lobe, sample drives the direction.
// The returned PDF includes the lobe selection probability. For the specular lobe it is the
// sampler's true density (n+1)/(2π)·cosⁿ, not the BRDF normalization (n+2)/(2π). ok is false when the sampled
// direction falls below the surface or the material reflects nothing.
func SamplePhong(m *Material, normal, incoming core.Vec3, uv core.Vec2, lobeChoice float64, sample core.Vec2) (Sample, Lobe, bool) {
	kd := m.DiffuseAt(uv)
	ks := m.SpecularAt(uv)

	pd, ok := DiffuseProbability(kd, ks)
	if !ok {
		return Sample{}, DiffuseLobe, false
	}

	if lobeChoice < pd {
		s := SampleLambert(normal, kd, sample)
		if s.PDF <= 0 {
			return Sample{}, DiffuseLobe, false
		}
		s.PDF *= pd
		return s, DiffuseLobe, true
	}

	mirror := Reflect(incoming.Normalize(), normal)
	direction, pdf := core.SamplePowerCosine(mirror, m.Shininess, sample)
	if direction.Dot(normal) <= 0 || pdf <= 0 {
		return Sample{}, SpecularLobe, false
	}

	return Sample{
		Direction: direction,
		PDF:       pdf * (1.0 - pd),
		F:         PhongSpecular(ks, m.Shininess, mirror, direction),
	}, SpecularLobe, true
}
