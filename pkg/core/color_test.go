package core

import (
	"math"
	"testing"
)

func TestLinearToSRGB(t *testing.T) {
	tests := []struct {
		name     string
		linear   float64
		expected float64
	}{
		{"Negative clamps to zero", -0.5, 0},
		{"Zero", 0, 0},
		{"Linear segment", 0.002, 12.92 * 0.002},
		{"At breakpoint", 0.0031308, 12.92 * 0.0031308},
		{"Power segment", 0.5, 1.055*math.Pow(0.5, 1/2.4) - 0.055},
		{"One", 1, 1},
		{"Above one clamps", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearToSRGB(tt.linear); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("LinearToSRGB(%f) = %f, want %f", tt.linear, got, tt.expected)
			}
		})
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, u := range []float64{0.001, 0.01, 0.2, 0.5, 0.9} {
		if got := SRGBToLinear(LinearToSRGB(u)); math.Abs(got-u) > 1e-6 {
			t.Errorf("Round trip of %f gave %f", u, got)
		}
	}
}

func TestToRGBA(t *testing.T) {
	c := ToRGBA(NewVec3(1, 0, 2))
	if c.R != 255 || c.G != 0 || c.B != 255 || c.A != 255 {
		t.Errorf("Unexpected color %v", c)
	}
}
