package lights

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Environment gives the radiance arriving from infinitely far away along a direction
type Environment interface {
	Radiance(direction core.Vec3) core.Vec3
}

// UniformEnvironment emits the same radiance in every direction
type UniformEnvironment struct {
	Emission core.Vec3
}

// NewUniformEnvironment creates a constant environment
func NewUniformEnvironment(emission core.Vec3) *UniformEnvironment {
	return &UniformEnvironment{Emission: emission}
}

// Radiance returns the constant emission
func (u *UniformEnvironment) Radiance(direction core.Vec3) core.Vec3 {
	return u.Emission
}

// GradientEnvironment blends from a bottom color to a top color along +Y
type GradientEnvironment struct {
	TopColor    core.Vec3
	BottomColor core.Vec3
}

// NewGradientEnvironment creates a sky gradient
func NewGradientEnvironment(topColor, bottomColor core.Vec3) *GradientEnvironment {
	return &GradientEnvironment{TopColor: topColor, BottomColor: bottomColor}
}

// Radiance maps direction Y from [-1,1] to a [0,1] blend factor
func (g *GradientEnvironment) Radiance(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return g.BottomColor.Multiply(1.0 - t).Add(g.TopColor.Multiply(t))
}

// SphereMap looks up an equirectangular image with +Z as the pole
type SphereMap struct {
	Texture *material.ImageTexture
	Scale   float64
}

// NewSphereMap creates a sphere-mapped environment scaled by scale
func NewSphereMap(texture *material.ImageTexture, scale float64) *SphereMap {
	return &SphereMap{Texture: texture, Scale: scale}
}

// Radiance looks up u = φ/2π with φ in [0, 2π) and v = θ/π measured from +Z
func (s *SphereMap) Radiance(direction core.Vec3) core.Vec3 {
	d := direction.Normalize()
	phi := math.Atan2(d.Y, d.X)
	if d.Y < 0 {
		phi += 2 * math.Pi
	}
	theta := math.Acos(max(-1, min(1, d.Z)))

	u := phi / (2 * math.Pi)
	v := theta / math.Pi
	return s.Texture.Texel(u, v).Multiply(s.Scale)
}
