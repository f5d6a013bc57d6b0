package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], linear RGB
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// V=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2) core.Vec3 {
	return t.Texel(uv.X, 1.0-uv.Y)
}

// Texel returns the nearest pixel for image-space coordinates (x, y) in [0, 1),
// origin top-left, wrapping outside that range.
func (t *ImageTexture) Texel(x, y float64) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	x -= math.Floor(x)
	y -= math.Floor(y)

	px := min(int(x*float64(t.Width)), t.Width-1)
	py := min(int(y*float64(t.Height)), t.Height-1)

	return t.Pixels[py*t.Width+px]
}
