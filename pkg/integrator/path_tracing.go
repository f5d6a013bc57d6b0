package integrator

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// PathTracer implements recursive unidirectional path tracing
type PathTracer struct {
	config Config
}

// NewPathTracer creates a new path tracer
func NewPathTracer(config Config) *PathTracer {
	if config.RayEpsilon <= 0 {
		config.RayEpsilon = DefaultConfig().RayEpsilon
	}
	logger.Debugf("path tracer: max depth %d, rr after %d, nee %v",
		config.MaxDepth, config.RussianRouletteMinBounces, config.NextEventEstimation)
	return &PathTracer{config: config}
}

// Config returns the tracer's configuration
func (pt *PathTracer) Config() Config {
	return pt.config
}

// Radiance computes the radiance for a single camera ray starting in air
func (pt *PathTracer) Radiance(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	ray.Direction = ray.Direction.Normalize()
	return pt.trace(ray, scene, sampler, 0, material.IORAir, true)
}

// Visible reports whether the segment between from and to is unobstructed,
// ignoring RayEpsilon at both ends.
func (pt *PathTracer) Visible(scene Scene, from, to core.Vec3) bool {
	toTarget := to.Subtract(from)
	dist := toTarget.Length()
	if dist <= 2*pt.config.RayEpsilon {
		return true
	}
	shadow := core.NewRay(from, toTarget.Multiply(1.0/dist))
	_, blocked := scene.Query().Intersect(shadow, pt.config.RayEpsilon, dist-pt.config.RayEpsilon)
	return !blocked
}

// trace follows ray through a medium with index ior. countEmission is false when the
// previous bounce already accounted for directly hit lights through light sampling.
func (pt *PathTracer) trace(ray core.Ray, scene Scene, sampler core.Sampler, depth int, ior float64, countEmission bool) core.Vec3 {
	if depth >= pt.config.MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := scene.Query().Intersect(ray, pt.config.RayEpsilon, math.Inf(1))
	if !isHit {
		if env := scene.Environment(); env != nil {
			return env.Radiance(ray.Direction)
		}
		return core.Vec3{}
	}

	mat := hit.Material
	if mat == nil {
		return core.Vec3{}
	}
	if mat.IsEmissive() {
		if !countEmission {
			return core.Vec3{}
		}
		return mat.Emission
	}

	// Shade with the normal on the side the ray arrives from
	normal := hit.Normal
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}
	point := ray.At(hit.T)

	switch mat.Shader {
	case material.Lambert:
		return pt.shadeLambert(ray, scene, sampler, depth, ior, &hit, point, normal)
	case material.Phong:
		return pt.shadePhong(ray, scene, sampler, depth, ior, &hit, point, normal)
	case material.Mirror:
		direction := material.Reflect(ray.Direction, normal).Normalize()
		reflected := pt.trace(pt.spawn(point, direction), scene, sampler, depth+1, ior, true)
		return reflected.Multiply(mat.Reflectivity)
	case material.Glass:
		return pt.shadeGlass(ray, scene, sampler, depth, ior, &hit, point, normal)
	}

	logger.Warningf("unknown shader %v on material %q", mat.Shader, mat.Name)
	return core.Vec3{}
}

// spawn starts a secondary ray slightly off the surface along its direction
func (pt *PathTracer) spawn(point, direction core.Vec3) core.Ray {
	return core.NewRay(point.Add(direction.Multiply(pt.config.RayEpsilon)), direction)
}

func (pt *PathTracer) shadeLambert(ray core.Ray, scene Scene, sampler core.Sampler, depth int, ior float64, hit *geometry.HitRecord, point, normal core.Vec3) core.Vec3 {
	albedo := hit.Material.DiffuseAt(hit.UV)

	// Russian roulette decides before any work is spent on this bounce
	rrScale := 1.0
	if depth >= pt.config.RussianRouletteMinBounces {
		alpha := pt.config.RussianRouletteSurvival
		if alpha <= 0 {
			alpha = albedo.MaxComponent()
		}
		alpha = math.Min(alpha, 1.0)
		if alpha <= 0 || sampler.Get1D() >= alpha {
			return core.Vec3{}
		}
		rrScale = 1.0 / alpha
	}

	f := albedo.Multiply(1.0 / math.Pi)

	var direct core.Vec3
	useNEE := pt.config.NextEventEstimation && !scene.LightSampler().Empty()
	if useNEE {
		direct = pt.sampleLight(scene, sampler, point, normal, f)
	}

	s := material.SampleLambert(normal, albedo, sampler.Get2D())
	var indirect core.Vec3
	if cos := normal.Dot(s.Direction); s.PDF > 0 && cos > 0 {
		li := pt.trace(pt.spawn(point, s.Direction), scene, sampler, depth+1, ior, !useNEE)
		indirect = s.F.MultiplyVec(li).Multiply(cos / s.PDF)
	}

	return direct.Add(indirect).Multiply(rrScale)
}

// sampleLight estimates direct lighting at point from one area-sampled light point.
// Lights are two-sided.
func (pt *PathTracer) sampleLight(scene Scene, sampler core.Sampler, point, normal, f core.Vec3) core.Vec3 {
	ls := scene.LightSampler()
	light := ls.Select(sampler.Get1D())
	r := sampler.Get2D()
	sample := light.SamplePoint(r.X, r.Y)

	toLight := sample.Point.Subtract(point)
	dist2 := toLight.LengthSquared()
	if dist2 <= 0 {
		return core.Vec3{}
	}
	wi := toLight.Multiply(1.0 / math.Sqrt(dist2))

	cosSurface := normal.Dot(wi)
	cosLight := math.Abs(sample.Normal.Dot(wi))
	if cosSurface <= 0 || cosLight <= 0 {
		return core.Vec3{}
	}
	if !pt.Visible(scene, point, sample.Point) {
		return core.Vec3{}
	}

	// Area-measure estimator: f·Le·G / pdfArea, with pdfArea = 1/TotalArea
	geometryTerm := cosSurface * cosLight / dist2
	return f.MultiplyVec(light.Color()).Multiply(geometryTerm / ls.PDFArea())
}

func (pt *PathTracer) shadePhong(ray core.Ray, scene Scene, sampler core.Sampler, depth int, ior float64, hit *geometry.HitRecord, point, normal core.Vec3) core.Vec3 {
	lobeChoice := sampler.Get1D()
	s, _, ok := material.SamplePhong(hit.Material, normal, ray.Direction, hit.UV, lobeChoice, sampler.Get2D())
	if !ok {
		return core.Vec3{}
	}

	cos := normal.Dot(s.Direction)
	li := pt.trace(pt.spawn(point, s.Direction), scene, sampler, depth+1, ior, true)
	return s.F.MultiplyVec(li).Multiply(cos / s.PDF)
}

func (pt *PathTracer) shadeGlass(ray core.Ray, scene Scene, sampler core.Sampler, depth int, ior float64, hit *geometry.HitRecord, point, normal core.Vec3) core.Vec3 {
	mat := hit.Material
	n1, n2 := material.FresnelIndices(ior, mat.IOR)

	cosI := -normal.Dot(ray.Direction)
	reflectance := material.Schlick(cosI, n1, n2)
	refracted, canRefract := material.Refract(ray.Direction, normal, n1/n2)
	if !canRefract {
		reflectance = 1.0
	}

	var result core.Vec3
	if reflectance > 0 {
		direction := material.Reflect(ray.Direction, normal).Normalize()
		reflected := pt.trace(pt.spawn(point, direction), scene, sampler, depth+1, ior, true)
		result = result.Add(reflected.Multiply(reflectance))
	}
	if reflectance < 1 {
		transmitted := pt.trace(pt.spawn(point, refracted), scene, sampler, depth+1, n2, true)
		result = result.Add(transmitted.Multiply(1.0 - reflectance))
	}

	// The segment that reached this hit ran through the current medium
	if ior != material.IORAir {
		result = result.MultiplyVec(material.BeerLambert(mat.Absorption, hit.T))
	}
	return result
}
