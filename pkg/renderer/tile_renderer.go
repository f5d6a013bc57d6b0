package renderer

import (
	"image"
	"math"
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Random          *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile whose random generator is derived from seed and id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	random := rand.New(rand.NewSource(seed*1000003 + int64(id) + 42)) // +42 to avoid seed 0

	return &Tile{
		ID:              id,
		Bounds:          bounds,
		PassesCompleted: 0,
		Random:          random,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      integrator.Scene
	camera     *Camera
	integrator integrator.Integrator
	adaptive   AdaptiveConfig
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(scene integrator.Scene, camera *Camera, integratorInst integrator.Integrator, adaptive AdaptiveConfig) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		camera:     camera,
		integrator: integratorInst,
		adaptive:   adaptive,
	}
}

// RenderTile brings every pixel of tile up to targetSamples (or convergence)
func (tr *TileRenderer) RenderTile(tile *Tile, accum *Accumulator, targetSamples int) {
	sampler := core.NewRandomSampler(tile.Random)
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			tr.samplePixel(x, y, accum.Pixel(x, y), sampler, targetSamples)
		}
	}
}

// samplePixel adds samples until the pixel reaches maxSamples or converges
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler, maxSamples int) {
	for ps.SampleCount < maxSamples && !ps.Converged {
		ps.AddSample(tr.sample(x, y, ps.SampleCount, sampler))
		if tr.adaptive.shouldStop(ps) {
			ps.Converged = true
		}
	}
}

// sample traces one jittered sample. Consecutive samples cycle through the four
// quadrants of the pixel, so every group of four is stratified.
func (tr *TileRenderer) sample(x, y, index int, sampler core.Sampler) core.Vec3 {
	jitter := sampler.Get2D()
	sx := float64(x) + (float64(index%2)+jitter.X)*0.5
	sy := float64(y) + (float64((index/2)%2)+jitter.Y)*0.5

	rays := tr.camera.GetRays(sx, sy, sampler)
	var radiance core.Vec3
	for _, ray := range rays {
		radiance = radiance.Add(sanitize(tr.integrator.Radiance(ray, tr.scene, sampler)))
	}
	return radiance.Multiply(1.0 / float64(len(rays)))
}

// sanitize drops NaN and infinite samples so one bad path cannot poison a pixel
func sanitize(c core.Vec3) core.Vec3 {
	bad := func(f float64) bool { return math.IsNaN(f) || math.IsInf(f, 0) }
	if bad(c.X) || bad(c.Y) || bad(c.Z) {
		return core.Vec3{}
	}
	return c
}
