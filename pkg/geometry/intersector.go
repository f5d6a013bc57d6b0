package geometry

import (
	"strings"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("geometry")

// Intersector answers nearest-hit queries against a fixed set of triangles
type Intersector interface {
	// Intersect returns the nearest hit with tMin < t < tMax
	Intersect(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
	// Primitives returns the triangles that HitRecord.Primitive indexes into
	Primitives() []Triangle
}

// Backend selects an Intersector implementation
type Backend int

const (
	BackendBVH Backend = iota
	BackendLinear
)

func (b Backend) String() string {
	switch b {
	case BackendBVH:
		return "bvh"
	case BackendLinear:
		return "linear"
	}
	return "unknown"
}

// ParseBackend converts a backend name to a Backend
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "", "bvh":
		return BackendBVH, nil
	case "linear", "brute-force":
		return BackendLinear, nil
	}
	return BackendBVH, newQueryError(UnsupportedHardware, "unknown intersection backend %q", name)
}

// NewIntersector builds the requested backend over triangles
func NewIntersector(backend Backend, triangles []Triangle, leafSize int) (Intersector, error) {
	switch backend {
	case BackendBVH:
		bvh, err := NewBVH(triangles, leafSize)
		if err != nil {
			return nil, err
		}
		return bvh, nil
	case BackendLinear:
		return NewLinearIntersector(triangles), nil
	}
	return nil, newQueryError(UnsupportedHardware, "backend %d not available", int(backend))
}

// LinearIntersector tests every triangle for every ray
type LinearIntersector struct {
	triangles []Triangle
}

// NewLinearIntersector creates a brute-force intersector. An empty triangle set always misses.
func NewLinearIntersector(triangles []Triangle) *LinearIntersector {
	return &LinearIntersector{triangles: triangles}
}

// Intersect finds the nearest triangle hit with tMin < t < tMax
func (l *LinearIntersector) Intersect(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	hit := newHitRecord(tMax)
	for i := range l.triangles {
		if l.triangles[i].Intersect(ray, tMin, &hit) {
			hit.Primitive = i
		}
	}
	return hit, hit.Hit
}

// Primitives returns the triangle array
func (l *LinearIntersector) Primitives() []Triangle {
	return l.triangles
}
