package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

var logger = log.New("server")

// Server handles web requests for the progressive path tracer
type Server struct {
	port int
	echo *echo.Echo

	mu      sync.Mutex
	current *renderState // Latest render job; replaced by each POST /api/render
}

// NewServer creates a new web server and registers its routes
func NewServer(port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{port: port, echo: e}

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.POST("/api/render", s.handleRender)
	e.GET("/api/render/status", s.handleStatus)
	e.GET("/api/render/image", s.handleImage)
	e.GET("/api/render/console", s.handleConsole)
	e.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

// Stop cancels any running render and closes the listener
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.current != nil {
		s.current.cancel()
	}
	s.mu.Unlock()
	return s.echo.Close()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the registered scenes grouped by category
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListGroups())
}

// currentRender returns the latest render job or a 404 error
func (s *Server) currentRender() (*renderState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "no render has been started")
	}
	return s.current, nil
}
