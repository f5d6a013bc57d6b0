package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
	Converged      int     // Pixels stopped early by adaptive sampling
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
	Converged        bool      // Adaptive sampling stopped this pixel
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// PassSummary records the outcome of one progressive pass
type PassSummary struct {
	Pass    int
	Target  int
	Stats   RenderStats
	Elapsed time.Duration
}

// FormatPassTable renders pass summaries as a text table with a total row
func FormatPassTable(passes []PassSummary) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Target spp", "Avg spp", "Min spp", "Max spp", "Converged", "Render time"})

	var total time.Duration
	for _, p := range passes {
		table.Append([]string{
			fmt.Sprintf("%d", p.Pass),
			fmt.Sprintf("%d", p.Target),
			fmt.Sprintf("%.1f", p.Stats.AverageSamples),
			fmt.Sprintf("%d", p.Stats.MinSamples),
			fmt.Sprintf("%d", p.Stats.MaxSamplesUsed),
			fmt.Sprintf("%02.1f %%", percent(p.Stats.Converged, p.Stats.TotalPixels)),
			p.Elapsed.Round(time.Millisecond).String(),
		})
		total += p.Elapsed
	}
	table.SetFooter([]string{"", "", "", "", "", "TOTAL", total.Round(time.Millisecond).String()})

	table.Render()
	return buf.String()
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
