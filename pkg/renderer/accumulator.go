package renderer

import (
	"image"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Accumulator holds per-pixel running sums for a width x height image.
// Pixels are laid out row-major with the origin at the top-left.
type Accumulator struct {
	width, height int
	pixels        []PixelStats
}

// NewAccumulator creates an empty accumulator
func NewAccumulator(width, height int) *Accumulator {
	return &Accumulator{
		width:  width,
		height: height,
		pixels: make([]PixelStats, width*height),
	}
}

// Width returns the image width
func (a *Accumulator) Width() int { return a.width }

// Height returns the image height
func (a *Accumulator) Height() int { return a.height }

// Pixel returns the statistics for pixel (x, y)
func (a *Accumulator) Pixel(x, y int) *PixelStats {
	return &a.pixels[y*a.width+x]
}

// Color returns the mean linear radiance of pixel (x, y)
func (a *Accumulator) Color(x, y int) core.Vec3 {
	return a.Pixel(x, y).GetColor()
}

// Reset clears all samples
func (a *Accumulator) Reset() {
	clear(a.pixels)
}

// Image encodes the region within bounds as an 8-bit sRGB image whose origin is bounds.Min
func (a *Accumulator) Image(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, a.width, a.height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, core.ToRGBA(a.Color(x, y)))
		}
	}
	return img
}

// Stats summarizes sample counts over the whole image
func (a *Accumulator) Stats(targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels:    len(a.pixels),
		MaxSamples:     targetSamples,
		MinSamples:     targetSamples, // Start high, will be reduced
		MaxSamplesUsed: 0,
	}
	if len(a.pixels) == 0 {
		stats.MinSamples = 0
		return stats
	}

	for i := range a.pixels {
		pixel := &a.pixels[i]
		stats.TotalSamples += pixel.SampleCount
		stats.MinSamples = min(stats.MinSamples, pixel.SampleCount)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, pixel.SampleCount)
		if pixel.Converged {
			stats.Converged++
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}
