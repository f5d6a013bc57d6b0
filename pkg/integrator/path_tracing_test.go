package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// testScene is a minimal Scene built directly from triangles
type testScene struct {
	query  geometry.Intersector
	lights *lights.Sampler
	env    lights.Environment
}

func newTestScene(t *testing.T, tris []geometry.Triangle, env lights.Environment) *testScene {
	t.Helper()
	query, err := geometry.NewIntersector(geometry.BackendBVH, tris, 4)
	if err != nil {
		t.Fatalf("Failed to build intersector: %v", err)
	}

	var emissive []*geometry.Triangle
	prims := query.Primitives()
	for i := range prims {
		if prims[i].Material.IsEmissive() {
			emissive = append(emissive, &prims[i])
		}
	}

	return &testScene{query: query, lights: lights.NewSampler(emissive), env: env}
}

func (s *testScene) Query() geometry.Intersector     { return s.query }
func (s *testScene) LightSampler() *lights.Sampler   { return s.lights }
func (s *testScene) Environment() lights.Environment { return s.env }

// quad returns two triangles spanning corner, corner+u, corner+u+v, corner+v
func quad(corner, u, v core.Vec3, mat *material.Material) []geometry.Triangle {
	p0, p1, p2, p3 := corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v)
	return []geometry.Triangle{
		geometry.NewFlatTriangle(p0, p1, p2, mat),
		geometry.NewFlatTriangle(p0, p2, p3, mat),
	}
}

// octahedron returns the eight faces of a unit octahedron centered at the origin
func octahedron(mat *material.Material) []geometry.Triangle {
	axes := []core.Vec3{{X: 1}, {X: -1}}
	ys := []core.Vec3{{Y: 1}, {Y: -1}}
	zs := []core.Vec3{{Z: 1}, {Z: -1}}
	var tris []geometry.Triangle
	for _, x := range axes {
		for _, y := range ys {
			for _, z := range zs {
				tris = append(tris, geometry.NewFlatTriangle(x, y, z, mat))
			}
		}
	}
	return tris
}

func newSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func TestPathTracer_EmissiveTriangle(t *testing.T) {
	emission := core.NewVec3(3, 2, 1)
	tris := []geometry.Triangle{
		geometry.NewFlatTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
			material.NewEmissive("light", emission)),
	}
	scene := newTestScene(t, tris, lights.NewUniformEnvironment(core.NewVec3(0.1, 0.1, 0.1)))
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	for _, depth := range []int{1, 2, 5, 10} {
		config := DefaultConfig()
		config.MaxDepth = depth
		pt := NewPathTracer(config)
		if got := pt.Radiance(ray, scene, newSampler(1)); got != emission {
			t.Errorf("MaxDepth=%d: radiance %v, want emission %v", depth, got, emission)
		}
	}
}

func TestPathTracer_DepthZeroIsBlack(t *testing.T) {
	tris := quad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.NewEmissive("light", core.NewVec3(1, 1, 1)))
	scene := newTestScene(t, tris, lights.NewUniformEnvironment(core.NewVec3(1, 1, 1)))

	config := DefaultConfig()
	config.MaxDepth = 0
	pt := NewPathTracer(config)

	for _, ray := range []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), // hits the light
		core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)),  // escapes
	} {
		if got := pt.Radiance(ray, scene, newSampler(1)); !got.IsZero() {
			t.Errorf("Depth 0 radiance %v, want black", got)
		}
	}
}

func TestPathTracer_MissReturnsEnvironment(t *testing.T) {
	tris := quad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.NewLambert("grey", core.NewVec3(0.5, 0.5, 0.5)))
	env := lights.NewGradientEnvironment(core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 1, 0))

	pt := NewPathTracer(DefaultConfig())
	if got := pt.Radiance(ray, newTestScene(t, tris, env), newSampler(1)); got != env.Radiance(ray.Direction) {
		t.Errorf("Miss radiance %v, want %v", got, env.Radiance(ray.Direction))
	}

	if got := pt.Radiance(ray, newTestScene(t, tris, nil), newSampler(1)); !got.IsZero() {
		t.Errorf("Miss without environment should be black, got %v", got)
	}
}

func TestPathTracer_MirrorInUniformEnvironment(t *testing.T) {
	envColor := core.NewVec3(0.3, 0.6, 0.9)
	scene := newTestScene(t, octahedron(material.NewMirror("mirror", 1.0)), lights.NewUniformEnvironment(envColor))
	pt := NewPathTracer(DefaultConfig())
	sampler := newSampler(5)
	random := rand.New(rand.NewSource(5))

	for i := 0; i < 200; i++ {
		origin := core.NewVec3(0, 0, 4)
		target := core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, 0)
		ray := core.NewRay(origin, target.Subtract(origin))

		got := pt.Radiance(ray, scene, sampler)
		if got.Subtract(envColor).Length() > 1e-9 {
			t.Fatalf("Ray %d: mirror radiance %v, want %v", i, got, envColor)
		}
	}
}

func TestPathTracer_LambertFloorUnderUniformSky(t *testing.T) {
	// A diffuse floor lit by a uniform sky reflects exactly albedo·sky for every sample
	albedo := core.NewVec3(0.8, 0.5, 0.2)
	sky := core.NewVec3(1, 2, 3)
	tris := quad(core.NewVec3(-50, -50, 0), core.NewVec3(100, 0, 0), core.NewVec3(0, 100, 0),
		material.NewLambert("floor", albedo))
	scene := newTestScene(t, tris, lights.NewUniformEnvironment(sky))

	config := DefaultConfig()
	config.RussianRouletteMinBounces = 10
	pt := NewPathTracer(config)
	sampler := newSampler(3)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0.1, 0.2, -1))
	expected := albedo.MultiplyVec(sky)

	for i := 0; i < 100; i++ {
		got := pt.Radiance(ray, scene, sampler)
		if got.Subtract(expected).Length() > 1e-9 {
			t.Fatalf("Sample %d: %v, want %v", i, got, expected)
		}
	}
}

func TestPathTracer_RussianRoulette(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	sky := core.NewVec3(1, 1, 1)
	tris := quad(core.NewVec3(-50, -50, 0), core.NewVec3(100, 0, 0), core.NewVec3(0, 100, 0),
		material.NewLambert("floor", albedo))
	scene := newTestScene(t, tris, lights.NewUniformEnvironment(sky))
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	expected := albedo.MultiplyVec(sky)

	tests := []struct {
		name     string
		survival float64
	}{
		{"albedo survival", 0},
		{"fixed survival", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.RussianRouletteMinBounces = 0
			config.RussianRouletteSurvival = tt.survival
			pt := NewPathTracer(config)
			sampler := newSampler(11)

			alpha := tt.survival
			if alpha <= 0 {
				alpha = albedo.MaxComponent()
			}

			const n = 20000
			var sum core.Vec3
			killed := 0
			for i := 0; i < n; i++ {
				got := pt.Radiance(ray, scene, sampler)
				switch {
				case got.IsZero():
					killed++
				case got.Subtract(expected.Multiply(1/alpha)).Length() > 1e-9:
					t.Fatalf("Survivor radiance %v, want %v", got, expected.Multiply(1/alpha))
				}
				sum = sum.Add(got)
			}

			// Survivors are rescaled so the mean is unbiased
			mean := sum.Multiply(1.0 / n)
			if math.Abs(mean.X-expected.X) > 0.05*expected.X {
				t.Errorf("Mean %v, want %v", mean, expected)
			}
			killRate := float64(killed) / n
			if math.Abs(killRate-(1-alpha)) > 0.02 {
				t.Errorf("Kill rate %.3f, want %.3f", killRate, 1-alpha)
			}
		})
	}
}

func TestPathTracer_BlackAlbedoTerminates(t *testing.T) {
	tris := quad(core.NewVec3(-50, -50, 0), core.NewVec3(100, 0, 0), core.NewVec3(0, 100, 0),
		material.NewLambert("black", core.Vec3{}))
	scene := newTestScene(t, tris, lights.NewUniformEnvironment(core.NewVec3(1, 1, 1)))

	config := DefaultConfig()
	config.RussianRouletteMinBounces = 0
	pt := NewPathTracer(config)
	if got := pt.Radiance(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), scene, newSampler(1)); !got.IsZero() {
		t.Errorf("Black surface under roulette should be black, got %v", got)
	}
}

func TestPathTracer_NextEventEstimationMatchesBrdfSampling(t *testing.T) {
	floor := quad(core.NewVec3(-50, -50, 0), core.NewVec3(100, 0, 0), core.NewVec3(0, 100, 0),
		material.NewLambert("floor", core.NewVec3(0.5, 0.5, 0.5)))
	light := quad(core.NewVec3(-1, -1, 1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.NewEmissive("light", core.NewVec3(4, 4, 4)))
	scene := newTestScene(t, append(floor, light...), nil)

	// Look at the floor from below the light so primary rays hit the floor
	ray := core.NewRay(core.NewVec3(0.3, 0.2, 0.5), core.NewVec3(0, 0, -1))

	estimate := func(nee bool) float64 {
		config := DefaultConfig()
		config.MaxDepth = 2
		config.RussianRouletteMinBounces = 10
		config.NextEventEstimation = nee
		pt := NewPathTracer(config)
		sampler := newSampler(21)

		const n = 60000
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += pt.Radiance(ray, scene, sampler).X
		}
		return sum / n
	}

	withNEE := estimate(true)
	withoutNEE := estimate(false)
	if withNEE <= 0 {
		t.Fatalf("Expected direct light, got %f", withNEE)
	}
	if math.Abs(withNEE-withoutNEE) > 0.05*withNEE {
		t.Errorf("NEE estimate %f disagrees with BRDF-only estimate %f", withNEE, withoutNEE)
	}
}

func TestPathTracer_Visible(t *testing.T) {
	wall := quad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.NewLambert("wall", core.NewVec3(0.5, 0.5, 0.5)))
	scene := newTestScene(t, wall, nil)
	pt := NewPathTracer(DefaultConfig())

	tests := []struct {
		name     string
		from, to core.Vec3
		visible  bool
	}{
		{"blocked by wall", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), false},
		{"beside the wall", core.NewVec3(3, 0, -1), core.NewVec3(3, 0, 1), true},
		{"ending on the wall", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pt.Visible(scene, tt.from, tt.to); got != tt.visible {
				t.Errorf("Visible = %v, want %v", got, tt.visible)
			}
		})
	}
}

func TestPathTracer_GlassSlab(t *testing.T) {
	// Two parallel interfaces one unit apart, viewed at normal incidence
	slab := func(mat *material.Material) []geometry.Triangle {
		top := quad(core.NewVec3(-50, -50, 0), core.NewVec3(100, 0, 0), core.NewVec3(0, 100, 0), mat)
		bottom := quad(core.NewVec3(-50, -50, -1), core.NewVec3(100, 0, 0), core.NewVec3(0, 100, 0), mat)
		return append(top, bottom...)
	}
	env := lights.NewUniformEnvironment(core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0.1, 0.05, 4), core.NewVec3(0, 0, -1))

	config := DefaultConfig()
	config.MaxDepth = 6
	pt := NewPathTracer(config)

	clearRadiance := pt.Radiance(ray, newTestScene(t, slab(material.NewGlass("clear", 1.5, core.Vec3{})), env), newSampler(1))
	tintedRadiance := pt.Radiance(ray, newTestScene(t, slab(material.NewGlass("tinted", 1.5, core.NewVec3(0, 1, 3))), env), newSampler(1))

	// Without absorption only the energy of paths cut off by the depth cap is lost
	for _, c := range []float64{clearRadiance.X, clearRadiance.Y, clearRadiance.Z} {
		if c <= 0.99 || c > 1+1e-9 {
			t.Errorf("Clear glass radiance %v outside (0.99, 1]", clearRadiance)
		}
	}

	// Zero absorption on red leaves it untouched; green and blue are absorbed increasingly
	if math.Abs(tintedRadiance.X-clearRadiance.X) > 1e-12 {
		t.Errorf("Red channel changed: %f vs %f", tintedRadiance.X, clearRadiance.X)
	}
	if !(tintedRadiance.Y < clearRadiance.Y && tintedRadiance.Z < tintedRadiance.Y) {
		t.Errorf("Expected absorption to darken green then blue: %v", tintedRadiance)
	}

	// Front reflection plus the transmitted share attenuated by one unit of glass
	r0 := 0.04
	lower := r0 + (1-r0)*(1-r0)*math.Exp(-1)
	if tintedRadiance.Y < lower-1e-9 {
		t.Errorf("Green radiance %f below single-pass estimate %f", tintedRadiance.Y, lower)
	}
}

func TestPathTracer_PhongIsFinite(t *testing.T) {
	tris := quad(core.NewVec3(-50, -50, 0), core.NewVec3(100, 0, 0), core.NewVec3(0, 100, 0),
		material.NewPhong("phong", core.NewVec3(0.3, 0.3, 0.3), core.NewVec3(0.5, 0.5, 0.5), 40))
	scene := newTestScene(t, tris, lights.NewUniformEnvironment(core.NewVec3(1, 1, 1)))
	pt := NewPathTracer(DefaultConfig())
	sampler := newSampler(8)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0.3, 0, -1))

	sum := 0.0
	for i := 0; i < 2000; i++ {
		got := pt.Radiance(ray, scene, sampler)
		for _, c := range []float64{got.X, got.Y, got.Z} {
			if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
				t.Fatalf("Invalid Phong radiance %v", got)
			}
		}
		sum += got.X
	}
	if sum == 0 {
		t.Error("Phong floor never reflected the sky")
	}
}
