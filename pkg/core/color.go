package core

import (
	"image/color"
	"math"
)

// LinearToSRGB applies the sRGB transfer function to a linear value and clamps to [0, 1]
func LinearToSRGB(u float64) float64 {
	switch {
	case u <= 0 || math.IsNaN(u):
		return 0
	case u >= 1:
		return 1
	case u <= 0.0031308:
		return 12.92 * u
	default:
		return 1.055*math.Pow(u, 1.0/2.4) - 0.055
	}
}

// SRGBToLinear inverts LinearToSRGB for values in [0, 1]
func SRGBToLinear(u float64) float64 {
	switch {
	case u <= 0:
		return 0
	case u >= 1:
		return 1
	case u <= 0.04045:
		return u / 12.92
	default:
		return math.Pow((u+0.055)/1.055, 2.4)
	}
}

// ToRGBA encodes a linear radiance value as an opaque 8-bit sRGB color
func ToRGBA(linear Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(255 * LinearToSRGB(linear.X))),
		G: uint8(math.Round(255 * LinearToSRGB(linear.Y))),
		B: uint8(math.Round(255 * LinearToSRGB(linear.Z))),
		A: 255,
	}
}
