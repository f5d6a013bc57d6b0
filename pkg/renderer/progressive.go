package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize           int   // Size of each tile (64x64 recommended)
	InitialSamples     int   // Samples for first pass (1 recommended)
	MaxSamplesPerPixel int   // Maximum total samples per pixel
	MaxPasses          int   // Maximum number of passes
	NumWorkers         int   // Number of parallel workers (0 = use CPU count)
	PhysicalCores      bool  // With NumWorkers 0, size the pool by physical rather than logical cores
	Seed               int64 // Base seed for the per-tile random generators
	Adaptive           AdaptiveConfig
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           64,
		InitialSamples:     1,
		MaxSamplesPerPixel: 64,
		MaxPasses:          7,
		NumWorkers:         0, // Auto-detect CPU count
		Seed:               0,
		Adaptive:           DefaultAdaptiveConfig(),
	}
}

// ProgressiveRenderer manages progressive rendering with multiple passes
type ProgressiveRenderer struct {
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile
	accum         *Accumulator
	tileRenderer  *TileRenderer
	workerPool    *WorkerPool
	summaries     []PassSummary
}

// NewProgressiveRenderer creates a new progressive renderer for the camera's image size
func NewProgressiveRenderer(scene integrator.Scene, camera *Camera, integratorInst integrator.Integrator, config ProgressiveConfig) (*ProgressiveRenderer, error) {
	width, height := camera.Config().Width, camera.Config().Height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}
	if config.MaxSamplesPerPixel <= 0 {
		return nil, fmt.Errorf("max samples per pixel must be positive, got %d", config.MaxSamplesPerPixel)
	}
	config.InitialSamples = max(1, min(config.InitialSamples, config.MaxSamplesPerPixel))

	workers := config.NumWorkers
	if workers <= 0 {
		workers = WorkerCount(config.PhysicalCores)
	}

	return &ProgressiveRenderer{
		width:        width,
		height:       height,
		config:       config,
		tiles:        NewTileGrid(width, height, config.TileSize, config.Seed),
		accum:        NewAccumulator(width, height),
		tileRenderer: NewTileRenderer(scene, camera, integratorInst, config.Adaptive),
		workerPool:   NewWorkerPool(workers),
	}, nil
}

// Accumulator returns the shared per-pixel statistics
func (pr *ProgressiveRenderer) Accumulator() *Accumulator {
	return pr.accum
}

// Workers returns the size of the worker pool
func (pr *ProgressiveRenderer) Workers() int {
	return pr.workerPool.GetNumWorkers()
}

// Summaries returns the statistics of all completed passes
func (pr *ProgressiveRenderer) Summaries() []PassSummary {
	return pr.summaries
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRenderer) getSamplesForPass(passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}

	// For multiple passes: first pass is quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	targetSamples := pr.config.InitialSamples + (passNumber-1)*samplesPerPass

	// For the final pass, use all remaining samples
	if passNumber >= pr.config.MaxPasses {
		targetSamples = pr.config.MaxSamplesPerPixel
	}

	return targetSamples
}

// RenderPass renders a single progressive pass using parallel processing.
// tileCallback, if set, is called from this goroutine as each tile finishes.
func (pr *ProgressiveRenderer) RenderPass(ctx context.Context, passNumber int, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)
	logger.Infof("pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	startTime := time.Now()
	completed := make(chan *Tile, len(pr.tiles))
	errc := make(chan error, 1)

	go func() {
		errc <- pr.workerPool.Run(ctx, len(pr.tiles), func(ctx context.Context, index int) error {
			// Tiles have non-overlapping bounds, so each pixel has a single writer
			tile := pr.tiles[index]
			pr.tileRenderer.RenderTile(tile, pr.accum, targetSamples)
			completed <- tile
			return nil
		})
		close(completed)
	}()

	tileNumber := 0
	for tile := range completed {
		tileNumber++
		tile.PassesCompleted++

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:       tile.Bounds.Min.X / pr.config.TileSize,
				TileY:       tile.Bounds.Min.Y / pr.config.TileSize,
				TileImage:   pr.accum.Image(tile.Bounds),
				PassNumber:  passNumber,
				TileNumber:  tileNumber,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.MaxPasses,
			})
		}
	}

	if err := <-errc; err != nil {
		return nil, RenderStats{}, fmt.Errorf("pass %d: %w", passNumber, err)
	}

	img := pr.accum.Image(image.Rect(0, 0, pr.width, pr.height))
	stats := pr.accum.Stats(targetSamples)
	pr.summaries = append(pr.summaries, PassSummary{
		Pass:    passNumber,
		Target:  targetSamples,
		Stats:   stats,
		Elapsed: time.Since(startTime),
	})
	return img, stats, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	TileImage  *image.RGBA // Image data for just this tile
	PassNumber int         // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders with channel-based communication.
// The caller should read from these channels in separate goroutines.
// If options.TileUpdates is false, the tile channel will be closed immediately and no tile events will be generated.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)

		logger.Infof("starting progressive rendering with %d passes", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				logger.Infof("rendering cancelled before pass %d", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// Channel full, drop the preview update
					}
				}
			}

			img, stats, err := pr.RenderPass(ctx, pass, tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			isLast := pass == pr.config.MaxPasses || stats.MinSamples >= pr.config.MaxSamplesPerPixel ||
				stats.Converged == stats.TotalPixels
			logger.Infof("pass %d completed (average %.1f samples/pixel)", pass, stats.AverageSamples)

			select {
			case passChan <- PassResult{PassNumber: pass, Image: img, Stats: stats, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				break
			}
		}
	}()

	return passChan, tileChan, errChan
}

// Render runs all passes synchronously and returns the final image
func (pr *ProgressiveRenderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	var (
		img   *image.RGBA
		stats RenderStats
	)
	passes, _, errs := pr.RenderProgressive(ctx, RenderOptions{})
	for result := range passes {
		img, stats = result.Image, result.Stats
	}
	if err := <-errs; err != nil {
		return img, stats, err
	}
	return img, stats, nil
}
