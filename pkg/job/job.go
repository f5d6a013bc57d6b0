// Package job assembles a scene, camera, integrator and progressive renderer from one
// set of user-facing settings. The CLI and the preview server both start renders here.
package job

import (
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/lights"
	"github.com/df07/go-bvh-pathtracer/pkg/loaders"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

var logger = log.New("job")

// Settings describes one render. Zero values fall back to the scene's own configuration.
type Settings struct {
	Scene           string  `json:"scene"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	Passes          int     `json:"passes"`
	MaxDepth        int     `json:"maxDepth"`
	RRMinBounces    int     `json:"rrMinBounces"`
	Backend         string  `json:"backend"`
	LeafSize        int     `json:"leafSize"`
	NEE             bool    `json:"nee"`
	Workers         int     `json:"workers"`
	PhysicalCores   bool    `json:"physicalCores"` // With Workers 0, one worker per physical core
	Seed            int64   `json:"seed"`
	TileSize        int     `json:"tileSize"`
	EnvMap          string  `json:"envMap"`      // Equirectangular image used as the environment
	EnvMapScale     float64 `json:"envMapScale"` // Radiance multiplier for EnvMap
	Adaptive        bool    `json:"adaptive"`
	RelativeError   float64 `json:"relativeError"`
}

// DefaultSettings renders the Cornell box at its native size
func DefaultSettings() Settings {
	progressive := renderer.DefaultProgressiveConfig()
	adaptive := renderer.DefaultAdaptiveConfig()
	return Settings{
		Scene:           "cornell",
		SamplesPerPixel: progressive.MaxSamplesPerPixel,
		Passes:          progressive.MaxPasses,
		MaxDepth:        integrator.DefaultConfig().MaxDepth,
		RRMinBounces:    integrator.DefaultConfig().RussianRouletteMinBounces,
		Backend:         geometry.BackendBVH.String(),
		LeafSize:        geometry.DefaultLeafSize,
		NEE:             true,
		TileSize:        progressive.TileSize,
		EnvMapScale:     1,
		RelativeError:   adaptive.RelativeError,
	}
}

// Job is a prepared render
type Job struct {
	Settings Settings
	Scene    *scene.Scene
	Camera   *renderer.Camera
	Renderer *renderer.ProgressiveRenderer
}

// New builds the scene and renderer described by settings
func New(settings Settings) (*Job, error) {
	backend, err := geometry.ParseBackend(settings.Backend)
	if err != nil {
		return nil, err
	}

	opts := scene.Options{
		Width:    settings.Width,
		Height:   settings.Height,
		Backend:  backend,
		LeafSize: settings.LeafSize,
	}
	if settings.EnvMap != "" {
		texture, err := loaders.LoadImage(settings.EnvMap)
		if err != nil {
			return nil, fmt.Errorf("failed to load environment map: %w", err)
		}
		scale := settings.EnvMapScale
		if scale <= 0 {
			scale = 1
		}
		opts.Environment = lights.NewSphereMap(texture, scale)
	}

	sc, err := scene.Build(settings.Scene, opts)
	if err != nil {
		return nil, err
	}

	config := sc.Integrator
	if settings.MaxDepth > 0 {
		config.MaxDepth = settings.MaxDepth
	}
	if settings.RRMinBounces > 0 {
		config.RussianRouletteMinBounces = settings.RRMinBounces
	}
	config.NextEventEstimation = settings.NEE

	progressive := renderer.DefaultProgressiveConfig()
	if settings.SamplesPerPixel > 0 {
		progressive.MaxSamplesPerPixel = settings.SamplesPerPixel
	}
	if settings.Passes > 0 {
		progressive.MaxPasses = settings.Passes
	}
	if settings.TileSize > 0 {
		progressive.TileSize = settings.TileSize
	}
	progressive.NumWorkers = settings.Workers
	progressive.PhysicalCores = settings.PhysicalCores
	progressive.Seed = settings.Seed
	progressive.Adaptive.Enabled = settings.Adaptive
	if settings.RelativeError > 0 {
		progressive.Adaptive.RelativeError = settings.RelativeError
	}

	camera := renderer.NewCamera(sc.CameraConfig)
	pr, err := renderer.NewProgressiveRenderer(sc, camera, integrator.NewPathTracer(config), progressive)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	logger.Infof("job: scene %q at %dx%d, %d spp over %d passes, depth %d, nee=%t",
		settings.Scene, sc.CameraConfig.Width, sc.CameraConfig.Height,
		progressive.MaxSamplesPerPixel, progressive.MaxPasses, config.MaxDepth, config.NextEventEstimation)

	return &Job{Settings: settings, Scene: sc, Camera: camera, Renderer: pr}, nil
}
