package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"Unit X", NewVec3(3, 0, 0), NewVec3(1, 0, 0)},
		{"Diagonal", NewVec3(1, 1, 0), NewVec3(1/math.Sqrt2, 1/math.Sqrt2, 0)},
		{"Zero vector stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	x, y, z := NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)
	if got := x.Cross(y); got != z {
		t.Errorf("x × y: expected %v, got %v", z, got)
	}
	if got := y.Cross(x); got != z.Negate() {
		t.Errorf("y × x: expected %v, got %v", z.Negate(), got)
	}
	if got := x.Cross(x); !got.IsZero() {
		t.Errorf("x × x: expected zero, got %v", got)
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != expected {
			t.Errorf("Axis %d: expected %v, got %v", axis, expected, got)
		}
	}
}

func TestVec3_ColorHelpers(t *testing.T) {
	if l := NewVec3(1, 1, 1).Luminance(); math.Abs(l-1) > 1e-12 {
		t.Errorf("White luminance: expected 1, got %v", l)
	}
	if m := NewVec3(0.2, 0.7, 0.5).MaxComponent(); m != 0.7 {
		t.Errorf("MaxComponent: expected 0.7, got %v", m)
	}
	if NewVec3(0, -1, 0).AnyPositive() {
		t.Error("AnyPositive: expected false for non-positive vector")
	}
	if !NewVec3(0, 0, 0.1).AnyPositive() {
		t.Error("AnyPositive: expected true")
	}

	e := NewVec3(0, -1, math.Log(2)).Exp()
	if math.Abs(e.X-1) > 1e-12 || math.Abs(e.Y-math.Exp(-1)) > 1e-12 || math.Abs(e.Z-2) > 1e-12 {
		t.Errorf("Exp: unexpected result %v", e)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))
	if got := ray.At(2.5); got != NewVec3(1, 2, 0.5) {
		t.Errorf("Expected (1, 2, 0.5), got %v", got)
	}
}
