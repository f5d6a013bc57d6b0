package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/job"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/urfave/cli"
)

// RenderFlags are the flags accepted by the render command
func RenderFlags() []cli.Flag {
	defaults := job.DefaultSettings()
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: defaults.Scene,
			Usage: "name of the scene to render (see the scenes command)",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "frame width (0 = scene default)",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "frame height (0 = scene default)",
		},
		cli.IntFlag{
			Name:  "spp",
			Value: defaults.SamplesPerPixel,
			Usage: "maximum samples per pixel",
		},
		cli.IntFlag{
			Name:  "passes",
			Value: defaults.Passes,
			Usage: "number of progressive passes",
		},
		cli.IntFlag{
			Name:  "depth",
			Value: defaults.MaxDepth,
			Usage: "maximum path depth",
		},
		cli.IntFlag{
			Name:  "rr-bounces",
			Value: defaults.RRMinBounces,
			Usage: "minimum bounces before russian roulette may end a path",
		},
		cli.StringFlag{
			Name:  "backend",
			Value: defaults.Backend,
			Usage: "scene query backend: bvh or linear",
		},
		cli.IntFlag{
			Name:  "leaf-size",
			Value: defaults.LeafSize,
			Usage: "maximum triangles per BVH leaf",
		},
		cli.BoolTFlag{
			Name:  "nee",
			Usage: "sample area lights directly at diffuse hits",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of render workers (0 = one per logical CPU)",
		},
		cli.BoolFlag{
			Name:  "physical-cores",
			Usage: "with --workers 0, use one worker per physical core instead of per logical CPU",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "base seed for the per-tile random generators",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: defaults.TileSize,
			Usage: "tile edge length in pixels",
		},
		cli.StringFlag{
			Name:  "envmap",
			Usage: "equirectangular image to use as the environment",
		},
		cli.Float64Flag{
			Name:  "envmap-scale",
			Value: defaults.EnvMapScale,
			Usage: "radiance multiplier for the environment map",
		},
		cli.BoolFlag{
			Name:  "adaptive",
			Usage: "stop sampling pixels whose mean has converged",
		},
		cli.Float64Flag{
			Name:  "relative-error",
			Value: defaults.RelativeError,
			Usage: "relative error target for adaptive sampling",
		},
		cli.StringFlag{
			Name:  "out, o",
			Value: "frame.png",
			Usage: "image filename for the rendered frame",
		},
	}
}

func settingsFromFlags(ctx *cli.Context) job.Settings {
	return job.Settings{
		Scene:           ctx.String("scene"),
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		Passes:          ctx.Int("passes"),
		MaxDepth:        ctx.Int("depth"),
		RRMinBounces:    ctx.Int("rr-bounces"),
		Backend:         ctx.String("backend"),
		LeafSize:        ctx.Int("leaf-size"),
		NEE:             ctx.BoolT("nee"),
		Workers:         ctx.Int("workers"),
		PhysicalCores:   ctx.Bool("physical-cores"),
		Seed:            ctx.Int64("seed"),
		TileSize:        ctx.Int("tile-size"),
		EnvMap:          ctx.String("envmap"),
		EnvMapScale:     ctx.Float64("envmap-scale"),
		Adaptive:        ctx.Bool("adaptive"),
		RelativeError:   ctx.Float64("relative-error"),
	}
}

// RenderFrame renders a still frame and writes it as a PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	j, err := job.New(settingsFromFlags(ctx))
	if err != nil {
		return err
	}
	logger.Infof("scene statistics\n%s", j.Scene.Stats())

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	img, stats, err := j.Renderer.Render(renderCtx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	displayFrameStats(j.Renderer.Summaries())
	logger.Noticef("rendered %d pixels at %.1f samples/pixel in %s",
		stats.TotalPixels, stats.AverageSamples, time.Since(start).Round(time.Millisecond))

	return writePNG(ctx.String("out"), img)
}

func writePNG(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	logger.Noticef("frame saved to %s", filename)
	return nil
}

func displayFrameStats(passes []renderer.PassSummary) {
	logger.Noticef("frame statistics\n%s", renderer.FormatPassTable(passes))
}
