package scene

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// NewGeosphereScene creates a white geodesic sphere resting on a checkered ground quad
func NewGeosphereScene(opts Options) (*Scene, error) {
	s := NewScene("geosphere")
	s.CameraConfig.ViewFrom = core.NewVec3(0, 1.5, 5)
	s.CameraConfig.ViewAt = core.NewVec3(0, 0.6, 0)
	s.CameraConfig.VFov = 40 * math.Pi / 180
	s.Env = lights.NewGradientEnvironment(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))

	checker := NewCheckerTexture(16, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.3, 0.1))
	ground := material.NewTexturedLambert("ground", checker)
	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 20, ground)...)

	white := material.NewLambert("white", core.NewVec3(0.8, 0.8, 0.8))
	s.Add(NewIcosphere(core.NewVec3(0, 1, 0), 1, 3, true, white)...)

	return s, nil
}

// NewMirrorSphereScene creates a mirror sphere above a diffuse ground in a uniform environment
func NewMirrorSphereScene(opts Options) (*Scene, error) {
	s := NewScene("mirror-sphere")
	s.CameraConfig.ViewFrom = core.NewVec3(0, 1, 5)
	s.CameraConfig.ViewAt = core.NewVec3(0, 1, 0)
	s.Env = lights.NewUniformEnvironment(core.NewVec3(0.6, 0.7, 0.8))

	ground := material.NewLambert("ground", core.NewVec3(0.5, 0.4, 0.3))
	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 20, ground)...)

	mirror := material.NewMirror("mirror", 0.95)
	s.Add(NewIcosphere(core.NewVec3(0, 1, 0), 1, 4, true, mirror)...)

	return s, nil
}

// NewEmissiveTriangleScene creates a single light triangle facing the camera
func NewEmissiveTriangleScene(opts Options) (*Scene, error) {
	s := NewScene("emissive-triangle")
	s.CameraConfig.Width = 200
	s.CameraConfig.Height = 200

	light := material.NewEmissive("light", core.NewVec3(1, 0.8, 0.6))
	s.Add(geometry.NewFlatTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0), light))

	return s, nil
}
