package scene

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// NewCornellScene creates the classic 555-unit Cornell box built from triangles.
// The light is a quad just below the ceiling; the box holds a mirror sphere,
// a glass sphere and a rotated glossy block.
func NewCornellScene(opts Options) (*Scene, error) {
	s := NewScene("cornell")
	s.CameraConfig.Width = 400
	s.CameraConfig.Height = 400
	s.CameraConfig.VFov = 40 * math.Pi / 180
	s.CameraConfig.ViewFrom = core.NewVec3(278, 278, -800)
	s.CameraConfig.ViewAt = core.NewVec3(278, 278, 0)
	s.Integrator.RayEpsilon = 1e-2

	white := material.NewLambert("white", core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambert("red", core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambert("green", core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive("light", core.NewVec3(15, 15, 15))

	const size = 555.0
	// Floor, ceiling and back wall
	s.Add(NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white)...)
	s.Add(NewQuad(core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), white)...)
	s.Add(NewQuad(core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), white)...)
	// Left wall (red) at x=555, right wall (green) at x=0 as seen from the camera
	s.Add(NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(0, size, 0), red)...)
	s.Add(NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), green)...)

	// Ceiling light, slightly below the ceiling so it is not coplanar
	s.Add(NewQuad(core.NewVec3(213, size-1, 227), core.NewVec3(130, 0, 0), core.NewVec3(0, 0, 105), light)...)

	mirror := material.NewMirror("mirror", 0.9)
	s.Add(NewIcosphere(core.NewVec3(150, 90, 190), 90, 3, true, mirror)...)

	glass := material.NewGlass("glass", 1.5, core.NewVec3(0.002, 0.0005, 0.002))
	s.Add(NewIcosphere(core.NewVec3(400, 80, 140), 80, 3, true, glass)...)

	glossy := material.NewPhong("glossy", core.NewVec3(0.6, 0.6, 0.7), core.NewVec3(0.3, 0.3, 0.3), 64)
	s.Add(NewBox(core.NewVec3(370, 120, 400), core.NewVec3(165, 240, 165), 15*math.Pi/180, glossy)...)

	return s, nil
}
