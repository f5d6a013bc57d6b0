package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

func TestCamera_GetRay(t *testing.T) {
	config := DefaultCameraConfig()
	config.Width = 200
	config.Height = 100
	config.VFov = math.Pi / 2
	camera := NewCamera(config)

	tests := []struct {
		name      string
		x, y      float64
		direction core.Vec3
	}{
		{"center looks at target", 100, 50, core.NewVec3(0, 0, -1)},
		{"top edge tilts up by half the fov", 100, 0, core.NewVec3(0, 1, -1).Normalize()},
		{"bottom edge tilts down", 100, 100, core.NewVec3(0, -1, -1).Normalize()},
		{"right edge uses the aspect ratio", 200, 50, core.NewVec3(2, 0, -1).Normalize()},
		{"left edge", 0, 50, core.NewVec3(-2, 0, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.x, tt.y)
			if ray.Origin != config.ViewFrom {
				t.Errorf("Origin = %v, want %v", ray.Origin, config.ViewFrom)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-9 {
				t.Errorf("Direction = %v, want %v", ray.Direction, tt.direction)
			}
		})
	}
}

func TestCamera_Orientation(t *testing.T) {
	config := DefaultCameraConfig()
	config.Width, config.Height = 100, 100
	config.ViewFrom = core.NewVec3(5, 0, 0)
	config.ViewAt = core.NewVec3(0, 0, 0)
	camera := NewCamera(config)

	center := camera.GetRay(50, 50)
	if center.Direction.Subtract(core.NewVec3(-1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Center ray %v should point at target", center.Direction)
	}

	// Image right maps to forward × up
	right := camera.GetRay(100, 50)
	if right.Direction.Z >= 0 {
		t.Errorf("Right edge ray %v should lean towards -Z", right.Direction)
	}
	top := camera.GetRay(50, 0)
	if top.Direction.Y <= 0 {
		t.Errorf("Top edge ray %v should lean up", top.Direction)
	}
}

func TestCamera_GetRaysPinhole(t *testing.T) {
	camera := NewCamera(DefaultCameraConfig())
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	rays := camera.GetRays(10, 20, sampler)
	if len(rays) != 1 {
		t.Fatalf("Pin-hole camera should return one ray, got %d", len(rays))
	}
	if rays[0] != camera.GetRay(10, 20) {
		t.Errorf("Pin-hole ray %v differs from GetRay", rays[0])
	}
}

func TestCamera_DepthOfField(t *testing.T) {
	config := DefaultCameraConfig()
	config.Aperture = 0.5
	config.LensSamples = 6
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(2)))

	focusDistance := config.ViewAt.Subtract(config.ViewFrom).Length()
	pinhole := camera.GetRay(123, 77)
	focusPoint := pinhole.At(focusDistance / pinhole.Direction.Dot(core.NewVec3(0, 0, -1)))

	rays := camera.GetRays(123, 77, sampler)
	if len(rays) != config.LensSamples {
		t.Fatalf("Expected %d rays, got %d", config.LensSamples, len(rays))
	}

	for i, ray := range rays {
		// Origins lie on the lens disk
		offset := ray.Origin.Subtract(config.ViewFrom)
		if offset.Length() > config.Aperture/2+1e-9 || math.Abs(offset.Z) > 1e-9 {
			t.Errorf("Ray %d origin %v outside lens", i, ray.Origin)
		}
		// All rays converge on the focal plane
		tFocus := (focusPoint.Z - ray.Origin.Z) / ray.Direction.Z
		if ray.At(tFocus).Subtract(focusPoint).Length() > 1e-9 {
			t.Errorf("Ray %d misses focus point: %v vs %v", i, ray.At(tFocus), focusPoint)
		}
	}
}
