package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("integrator")

// Scene is what an integrator needs to know about the world it renders
type Scene interface {
	// Query answers nearest-hit ray queries
	Query() geometry.Intersector
	// LightSampler returns the emissive triangles for explicit light sampling (may be empty)
	LightSampler() *lights.Sampler
	// Environment returns the radiance for rays that escape the scene (may be nil)
	Environment() lights.Environment
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Radiance estimates the radiance arriving along ray with one stochastic sample
	Radiance(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}

// Config contains the path tracing parameters
type Config struct {
	MaxDepth                  int     // Paths deeper than this return black
	RussianRouletteMinBounces int     // Depth at which diffuse bounces start playing Russian roulette
	RussianRouletteSurvival   float64 // Fixed survival probability; <= 0 uses the max diffuse channel
	NextEventEstimation       bool    // Sample one light explicitly at each diffuse bounce
	RayEpsilon                float64 // Offset for secondary and shadow rays
}

// DefaultConfig returns sensible defaults for interactive rendering
func DefaultConfig() Config {
	return Config{
		MaxDepth:                  8,
		RussianRouletteMinBounces: 3,
		RussianRouletteSurvival:   0,
		NextEventEstimation:       true,
		RayEpsilon:                1e-4,
	}
}
