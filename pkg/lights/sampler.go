package lights

import (
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("lights")

// Sampler picks emissive triangles with probability proportional to their area
type Sampler struct {
	lights    []TriangleLight
	TotalArea float64
}

// NewSampler builds the area CDF over triangles in the given order.
// Zero-area triangles are skipped since no point can be sampled on them.
func NewSampler(triangles []*geometry.Triangle) *Sampler {
	s := &Sampler{}
	for _, tri := range triangles {
		if tri.Area() <= 0 {
			continue
		}
		s.TotalArea += tri.Area()
		s.lights = append(s.lights, TriangleLight{Triangle: tri})
	}

	cumulative := 0.0
	for i := range s.lights {
		cumulative += s.lights[i].Triangle.Area() / s.TotalArea
		s.lights[i].CDF = cumulative
	}

	if skipped := len(triangles) - len(s.lights); skipped > 0 {
		logger.Warningf("skipped %d degenerate emissive triangles", skipped)
	}
	logger.Debugf("light sampler: %d lights, total area %.4f", len(s.lights), s.TotalArea)
	return s
}

// Len returns the number of lights
func (s *Sampler) Len() int {
	return len(s.lights)
}

// Empty reports whether there is nothing to sample
func (s *Sampler) Empty() bool {
	return s == nil || len(s.lights) == 0
}

// Lights returns the ordered light list
func (s *Sampler) Lights() []TriangleLight {
	return s.lights
}

// Select returns the first light whose CDF exceeds u, or the last light if none does.
// Returns nil when the sampler is empty.
func (s *Sampler) Select(u float64) *TriangleLight {
	if s.Empty() {
		return nil
	}
	for i := range s.lights {
		if s.lights[i].CDF > u {
			return &s.lights[i]
		}
	}
	return &s.lights[len(s.lights)-1]
}

// PDFArea is the area density of selecting a light by area then sampling it uniformly
func (s *Sampler) PDFArea() float64 {
	if s.Empty() || s.TotalArea <= 0 {
		return 0
	}
	return 1.0 / s.TotalArea
}
