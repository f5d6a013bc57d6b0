package scene

import (
	"bytes"
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Triangles    []geometry.Triangle // Geometry; reordered by Preprocess when using the BVH backend
	Env          lights.Environment  // Radiance for escaping rays (nil = black)
	CameraConfig renderer.CameraConfig
	Integrator   integrator.Config

	query        geometry.Intersector
	lightSampler *lights.Sampler
}

// Options controls how a registered scene is built
type Options struct {
	Width, Height int                // Overrides the scene's image size when > 0
	Backend       geometry.Backend   // Intersection backend
	LeafSize      int                // BVH leaf size (0 = default)
	Environment   lights.Environment // Overrides the scene's environment when set
}

// DefaultOptions returns the BVH backend with the default leaf size
func DefaultOptions() Options {
	return Options{Backend: geometry.BackendBVH, LeafSize: geometry.DefaultLeafSize}
}

// NewScene creates an empty scene with default camera and integrator settings
func NewScene(name string) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: renderer.DefaultCameraConfig(),
		Integrator:   integrator.DefaultConfig(),
	}
}

// Add appends triangles to the scene
func (s *Scene) Add(triangles ...geometry.Triangle) {
	s.Triangles = append(s.Triangles, triangles...)
}

// Preprocess builds the intersection backend and then the light sampler over its emissive triangles
func (s *Scene) Preprocess(backend geometry.Backend, leafSize int) error {
	query, err := geometry.NewIntersector(backend, s.Triangles, leafSize)
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	s.query = query

	// Point into the backend's own array so light triangles stay valid after reordering
	var emissive []*geometry.Triangle
	prims := query.Primitives()
	for i := range prims {
		if prims[i].Material != nil && prims[i].Material.IsEmissive() {
			emissive = append(emissive, &prims[i])
		}
	}
	s.lightSampler = lights.NewSampler(emissive)

	logger.Infof("scene %q: %d triangles, %d lights, %s backend", s.Name, len(prims), s.lightSampler.Len(), backend)
	return nil
}

// Query returns the intersection backend built by Preprocess
func (s *Scene) Query() geometry.Intersector {
	return s.query
}

// LightSampler returns the emissive triangle sampler built by Preprocess
func (s *Scene) LightSampler() *lights.Sampler {
	return s.lightSampler
}

// Environment returns the background radiance source
func (s *Scene) Environment() lights.Environment {
	return s.Env
}

// Stats returns a table describing the scene and its acceleration structure
func (s *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Property", "Value"})
	table.Append([]string{s.Name, "Triangles", fmt.Sprintf("%d", len(s.Triangles))})
	if s.lightSampler != nil {
		table.Append([]string{"", "Lights", fmt.Sprintf("%d", s.lightSampler.Len())})
		table.Append([]string{"", "Light area", fmt.Sprintf("%.3f", s.lightSampler.TotalArea)})
	}

	if bvh, ok := s.query.(*geometry.BVH); ok {
		stats := bvh.Stats()
		table.Append([]string{"BVH", "Nodes", fmt.Sprintf("%d", stats.Nodes)})
		table.Append([]string{"", "Leaves", fmt.Sprintf("%d", stats.Leaves)})
		table.Append([]string{"", "Max depth", fmt.Sprintf("%d", stats.MaxDepth)})
		table.Append([]string{"", "Avg leaf depth", fmt.Sprintf("%.2f", stats.AvgLeafDepth)})
		table.Append([]string{"", "Max leaf size", fmt.Sprintf("%d", stats.MaxLeafSize)})
	}

	table.Render()
	return buf.String()
}
