package lights

import (
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

func TestUniformEnvironment(t *testing.T) {
	env := NewUniformEnvironment(core.NewVec3(0.2, 0.4, 0.6))
	for _, dir := range []core.Vec3{{X: 1}, {Y: -1}, {X: 1, Y: 1, Z: 1}} {
		if got := env.Radiance(dir); got != env.Emission {
			t.Errorf("Radiance(%v) = %v, want %v", dir, got, env.Emission)
		}
	}
}

func TestGradientEnvironment(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1, 1, 1)
	env := NewGradientEnvironment(top, bottom)

	tests := []struct {
		name     string
		dir      core.Vec3
		expected core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), top},
		{"straight down", core.NewVec3(0, -1, 0), bottom},
		{"horizon", core.NewVec3(1, 0, 0), top.Add(bottom).Multiply(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := env.Radiance(tt.dir); got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Radiance = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSphereMap(t *testing.T) {
	// 4x2 map: top row covers +Z hemisphere, columns cover φ quadrants
	colors := []core.Vec3{
		{X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 1},
		{X: 2}, {Y: 2}, {Z: 2}, {X: 2, Y: 2},
	}
	env := NewSphereMap(material.NewImageTexture(4, 2, colors), 1)

	tests := []struct {
		name     string
		dir      core.Vec3
		expected core.Vec3
	}{
		{"upper, first quadrant", core.NewVec3(1, 1, 0.5), colors[0]},
		{"upper, second quadrant", core.NewVec3(-1, 1, 0.5), colors[1]},
		{"upper, third quadrant", core.NewVec3(-1, -1, 0.5), colors[2]},
		{"upper, fourth quadrant", core.NewVec3(1, -1, 0.5), colors[3]},
		{"lower, first quadrant", core.NewVec3(1, 1, -0.5), colors[4]},
		{"lower, fourth quadrant", core.NewVec3(1, -1, -0.5), colors[7]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := env.Radiance(tt.dir); got != tt.expected {
				t.Errorf("Radiance(%v) = %v, want %v", tt.dir, got, tt.expected)
			}
		})
	}

	scaled := NewSphereMap(material.NewImageTexture(4, 2, colors), 3)
	if got := scaled.Radiance(core.NewVec3(1, 1, 0.5)); got != colors[0].Multiply(3) {
		t.Errorf("Scaled radiance = %v, want %v", got, colors[0].Multiply(3))
	}
}
