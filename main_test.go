package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

func TestAppCommands(t *testing.T) {
	app := newApp()
	for _, name := range []string{"render", "scenes", "serve"} {
		if app.Command(name) == nil {
			t.Errorf("Expected command %q", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames", "tri.png")
	args := []string{
		"go-bvh-pathtracer", "render",
		"--scene", "emissive-triangle",
		"--width", "12", "--height", "10",
		"--spp", "2", "--passes", "1",
		"--workers", "1", "--tile-size", "4",
		"--out", out,
	}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 10 {
		t.Errorf("Expected 12x10 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"--scene", "nonexistent"}},
		{"unknown backend", []string{"--scene", "emissive-triangle", "--backend", "optix"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"go-bvh-pathtracer", "render", "--out", filepath.Join(t.TempDir(), "x.png")}, tt.args...)
			if err := newApp().Run(args); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"verbose", []string{"go-bvh-pathtracer", "-v", "scenes"}},
		{"very verbose", []string{"go-bvh-pathtracer", "-vv", "scenes"}},
		{"version", []string{"go-bvh-pathtracer", "--version"}},
		{"help", []string{"go-bvh-pathtracer", "--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := newApp().Run(tt.args); err != nil {
				t.Errorf("%v failed: %v", tt.args, err)
			}
		})
	}
	log.SetLevel(log.Notice)
}

func TestScenesCommand(t *testing.T) {
	if err := newApp().Run([]string{"go-bvh-pathtracer", "scenes"}); err != nil {
		t.Errorf("scenes failed: %v", err)
	}
}
