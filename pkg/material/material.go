package material

import (
	"fmt"
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// IORAir is the refractive index used for the medium surrounding all objects
const IORAir = 1.0

// ShaderKind selects the scattering model used when a ray hits a surface
type ShaderKind int

const (
	Lambert ShaderKind = iota // Ideal diffuse
	Phong                     // Diffuse + cosine-power specular mixture
	Mirror                    // Perfect specular reflection
	Glass                     // Dielectric with Fresnel reflection/refraction
)

func (k ShaderKind) String() string {
	switch k {
	case Lambert:
		return "lambert"
	case Phong:
		return "phong"
	case Mirror:
		return "mirror"
	case Glass:
		return "glass"
	}
	return fmt.Sprintf("shader(%d)", int(k))
}

// ParseShaderKind converts a shader name to a ShaderKind
func ParseShaderKind(name string) (ShaderKind, error) {
	switch strings.ToLower(name) {
	case "lambert", "diffuse":
		return Lambert, nil
	case "phong":
		return Phong, nil
	case "mirror":
		return Mirror, nil
	case "glass", "dielectric":
		return Glass, nil
	}
	return Lambert, fmt.Errorf("unknown shader %q", name)
}

// Material describes how a surface emits and scatters light.
// Materials are shared by reference between triangles and never mutated while rendering.
type Material struct {
	Name         string
	Shader       ShaderKind
	Diffuse      ColorSource // Diffuse reflectance (texture or constant)
	Specular     ColorSource // Specular reflectance for Phong
	Emission     core.Vec3   // Emitted radiance; any positive channel makes this a light
	Reflectivity float64     // Scale applied to mirror reflections
	Shininess    float64     // Phong exponent
	IOR          float64     // Index of refraction for glass
	Absorption   core.Vec3   // Beer-Lambert coefficient μ per channel, per unit distance
}

// NewLambert creates a diffuse material with a constant albedo
func NewLambert(name string, albedo core.Vec3) *Material {
	return &Material{
		Name:     name,
		Shader:   Lambert,
		Diffuse:  NewSolidColor(albedo),
		Specular: NewSolidColor(core.Vec3{}),
	}
}

// NewTexturedLambert creates a diffuse material whose albedo comes from a color source
func NewTexturedLambert(name string, albedo ColorSource) *Material {
	return &Material{
		Name:     name,
		Shader:   Lambert,
		Diffuse:  albedo,
		Specular: NewSolidColor(core.Vec3{}),
	}
}

// NewPhong creates a diffuse + glossy material
func NewPhong(name string, diffuse, specular core.Vec3, shininess float64) *Material {
	return &Material{
		Name:      name,
		Shader:    Phong,
		Diffuse:   NewSolidColor(diffuse),
		Specular:  NewSolidColor(specular),
		Shininess: shininess,
	}
}

// NewMirror creates a perfect mirror that scales reflected radiance by reflectivity
func NewMirror(name string, reflectivity float64) *Material {
	return &Material{
		Name:         name,
		Shader:       Mirror,
		Diffuse:      NewSolidColor(core.Vec3{}),
		Specular:     NewSolidColor(core.NewVec3(1, 1, 1)),
		Reflectivity: reflectivity,
	}
}

// NewGlass creates a dielectric with the given index of refraction and absorption coefficient
func NewGlass(name string, ior float64, absorption core.Vec3) *Material {
	return &Material{
		Name:       name,
		Shader:     Glass,
		Diffuse:    NewSolidColor(core.Vec3{}),
		Specular:   NewSolidColor(core.NewVec3(1, 1, 1)),
		IOR:        ior,
		Absorption: absorption,
	}
}

// NewEmissive creates a light-emitting material
func NewEmissive(name string, emission core.Vec3) *Material {
	return &Material{
		Name:     name,
		Shader:   Lambert,
		Diffuse:  NewSolidColor(core.Vec3{}),
		Specular: NewSolidColor(core.Vec3{}),
		Emission: emission,
	}
}

// IsEmissive reports whether any emission channel is positive
func (m *Material) IsEmissive() bool {
	return m.Emission.AnyPositive()
}

// DiffuseAt returns the diffuse color at texture coordinate uv
func (m *Material) DiffuseAt(uv core.Vec2) core.Vec3 {
	if m.Diffuse == nil {
		return core.Vec3{}
	}
	return m.Diffuse.Evaluate(uv)
}

// SpecularAt returns the specular color at texture coordinate uv
func (m *Material) SpecularAt(uv core.Vec2) core.Vec3 {
	if m.Specular == nil {
		return core.Vec3{}
	}
	return m.Specular.Evaluate(uv)
}

// Sample is a sampled continuation direction together with its density and BRDF value
type Sample struct {
	Direction core.Vec3 // Unit direction leaving the surface
	PDF       float64   // Solid-angle density of Direction
	F         core.Vec3 // BRDF value f_r for Direction
}
