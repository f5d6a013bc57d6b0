package server

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/job"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/labstack/echo/v4"
)

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	Converged      int     `json:"converged"`
}

// StatusResponse reports the progress of the current render
type StatusResponse struct {
	Settings    job.Settings `json:"settings"`
	PassNumber  int          `json:"passNumber"`
	TotalPasses int          `json:"totalPasses"`
	TilesDone   int          `json:"tilesDone"`
	Stats       Stats        `json:"stats"`
	IsComplete  bool         `json:"isComplete"`
	Error       string       `json:"error,omitempty"`
	ElapsedMs   int64        `json:"elapsedMs"`
}

// renderState tracks one progressive render running in the background
type renderState struct {
	job     *job.Job
	cancel  context.CancelFunc
	done    chan struct{}
	console Console
	start   time.Time

	mu        sync.Mutex
	pass      int
	tilesDone int
	stats     renderer.RenderStats
	png       []byte
	complete  bool
	err       error
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		MaxSamples:     stats.MaxSamples,
		MinSamples:     stats.MinSamples,
		MaxSamplesUsed: stats.MaxSamplesUsed,
		Converged:      stats.Converged,
	}
}

// handleRender cancels any running render and starts a new one from the JSON body
func (s *Server) handleRender(c echo.Context) error {
	settings := job.DefaultSettings()
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request: "+err.Error())
	}

	j, err := job.New(settings)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	state := &renderState{
		job:    j,
		cancel: cancel,
		done:   make(chan struct{}),
		start:  time.Now(),
	}

	s.mu.Lock()
	previous := s.current
	s.current = state
	s.mu.Unlock()

	if previous != nil {
		previous.cancel()
		<-previous.done
	}

	go state.run(ctx)

	return c.JSON(http.StatusAccepted, state.status())
}

// run consumes the progressive render channels until the render ends
func (r *renderState) run(ctx context.Context) {
	defer close(r.done)
	defer r.cancel()

	r.console.Printf("rendering %q at %dx%d", r.job.Settings.Scene,
		r.job.Camera.Config().Width, r.job.Camera.Config().Height)

	passes, tiles, errs := r.job.Renderer.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: true})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range tiles {
			r.mu.Lock()
			r.tilesDone++
			r.mu.Unlock()
		}
	}()

	for result := range passes {
		data, err := encodePNG(result.Image)
		if err != nil {
			r.console.Errorf("failed to encode pass %d: %v", result.PassNumber, err)
			continue
		}

		r.mu.Lock()
		r.pass = result.PassNumber
		r.stats = result.Stats
		r.png = data
		r.mu.Unlock()

		r.console.Printf("pass %d complete: %.1f samples/pixel", result.PassNumber, result.Stats.AverageSamples)
	}
	wg.Wait()

	err := <-errs
	r.mu.Lock()
	r.complete = true
	r.err = err
	r.mu.Unlock()

	if err != nil {
		r.console.Errorf("render stopped: %v", err)
		return
	}
	r.console.Printf("render complete in %s", time.Since(r.start).Round(time.Millisecond))
}

func (r *renderState) status() StatusResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	resp := StatusResponse{
		Settings:    r.job.Settings,
		PassNumber:  r.pass,
		TotalPasses: r.job.Settings.Passes,
		TilesDone:   r.tilesDone,
		Stats:       toStats(r.stats),
		IsComplete:  r.complete,
		ElapsedMs:   time.Since(r.start).Milliseconds(),
	}
	if r.err != nil {
		resp.Error = r.err.Error()
	}
	return resp
}

// handleStatus reports the progress of the current render
func (s *Server) handleStatus(c echo.Context) error {
	state, err := s.currentRender()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state.status())
}

// handleImage returns the latest completed pass as a PNG
func (s *Server) handleImage(c echo.Context) error {
	state, err := s.currentRender()
	if err != nil {
		return err
	}

	state.mu.Lock()
	data := state.png
	state.mu.Unlock()

	if data == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no pass has completed yet")
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// handleConsole returns the message log of the current render
func (s *Server) handleConsole(c echo.Context) error {
	state, err := s.currentRender()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state.console.Messages())
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
