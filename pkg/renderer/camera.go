package renderer

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig describes a pin-hole camera with optional thin-lens depth of field
type CameraConfig struct {
	Width, Height int
	VFov          float64   // Vertical field of view in radians
	ViewFrom      core.Vec3 // Eye position
	ViewAt        core.Vec3 // Look-at target
	Up            core.Vec3 // Approximate up direction
	Aperture      float64   // Lens diameter; 0 disables depth of field
	FocusDistance float64   // Distance to the focal plane; 0 focuses on ViewAt
	LensSamples   int       // Rays per bundle when Aperture > 0
}

// DefaultCameraConfig returns a 45° camera looking down -Z from z=5
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:       400,
		Height:      300,
		VFov:        math.Pi / 4,
		ViewFrom:    core.NewVec3(0, 0, 5),
		ViewAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		LensSamples: 4,
	}
}

// Camera generates primary rays for image coordinates
type Camera struct {
	config   CameraConfig
	origin   core.Vec3
	basis    mgl64.Mat3 // Columns: right, up, forward
	halfW    float64
	halfH    float64
	focusDis float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	forward := config.ViewAt.Subtract(config.ViewFrom).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward)

	halfH := math.Tan(config.VFov / 2)
	aspect := float64(config.Width) / float64(max(config.Height, 1))

	focusDis := config.FocusDistance
	if focusDis <= 0 {
		focusDis = config.ViewAt.Subtract(config.ViewFrom).Length()
	}
	if config.LensSamples <= 0 {
		config.LensSamples = 1
	}

	return &Camera{
		config:   config,
		origin:   config.ViewFrom,
		basis:    mgl64.Mat3FromCols(toMgl(right), toMgl(up), toMgl(forward)),
		halfW:    halfH * aspect,
		halfH:    halfH,
		focusDis: focusDis,
	}
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// direction returns the unit world-space direction through image position (x, y),
// measured in pixels from the top-left corner
func (c *Camera) direction(x, y float64) core.Vec3 {
	ndcX := (2*x/float64(c.config.Width) - 1) * c.halfW
	ndcY := (1 - 2*y/float64(c.config.Height)) * c.halfH
	return fromMgl(c.basis.Mul3x1(mgl64.Vec3{ndcX, ndcY, 1})).Normalize()
}

// GetRay generates the pin-hole ray through image position (x, y)
func (c *Camera) GetRay(x, y float64) core.Ray {
	return core.NewRay(c.origin, c.direction(x, y))
}

// GetRays generates the rays for one pixel sample: a single pin-hole ray, or a bundle of
// LensSamples rays through random lens points that converge on the focal plane.
func (c *Camera) GetRays(x, y float64, sampler core.Sampler) []core.Ray {
	if c.config.Aperture <= 0 {
		return []core.Ray{c.GetRay(x, y)}
	}

	dir := c.direction(x, y)
	forward := fromMgl(c.basis.Col(2))
	focusPoint := c.origin.Add(dir.Multiply(c.focusDis / dir.Dot(forward)))

	rays := make([]core.Ray, c.config.LensSamples)
	radius := c.config.Aperture / 2
	for i := range rays {
		disk := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(radius)
		offset := fromMgl(c.basis.Mul3x1(mgl64.Vec3{disk.X, disk.Y, 0}))
		origin := c.origin.Add(offset)
		rays[i] = core.NewRay(origin, focusPoint.Subtract(origin).Normalize())
	}
	return rays
}
