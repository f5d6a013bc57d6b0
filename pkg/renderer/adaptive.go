package renderer

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// AdaptiveConfig controls per-pixel early termination
type AdaptiveConfig struct {
	Enabled       bool
	MinSamples    int     // Never stop before this many samples
	RelativeError float64 // Acceptable error relative to the mean luminance
	Confidence    float64 // Required probability that the error bound holds
}

// DefaultAdaptiveConfig stops once the mean is within 5% with 95% confidence
func DefaultAdaptiveConfig() AdaptiveConfig {
	return AdaptiveConfig{
		Enabled:       false,
		MinSamples:    8,
		RelativeError: 0.05,
		Confidence:    0.95,
	}
}

// regIncBeta evaluates the regularized incomplete beta function I_x(a, b).
// Invalid arguments or numerical failure yield 0.
func regIncBeta(a, b, x float64) (result float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warningf("regularized incomplete beta failed for a=%g b=%g x=%g: %v", a, b, x, r)
			result = 0
		}
	}()

	result = mathext.RegIncBeta(a, b, x)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		logger.Warningf("regularized incomplete beta returned %g for a=%g b=%g x=%g", result, a, b, x)
		return 0
	}
	return result
}

// meanConfidence returns the probability, under a Student-t model with n-1 degrees of
// freedom, that the true mean lies within RelativeError of the sample mean.
func (c AdaptiveConfig) meanConfidence(ps *PixelStats) float64 {
	n := float64(ps.SampleCount)
	if ps.SampleCount < 2 {
		return 0
	}

	mean := ps.LuminanceAccum / n
	variance := math.Max(0, (ps.LuminanceSqAccum-n*mean*mean)/(n-1))
	if variance == 0 {
		return 1
	}

	standardError := math.Sqrt(variance / n)
	t := c.RelativeError * math.Abs(mean) / standardError
	nu := n - 1

	// P(|T| < t) = I_{t²/(ν+t²)}(1/2, ν/2)
	return regIncBeta(0.5, nu/2, t*t/(nu+t*t))
}

// shouldStop reports whether a pixel has converged
func (c AdaptiveConfig) shouldStop(ps *PixelStats) bool {
	if !c.Enabled || ps.SampleCount < max(c.MinSamples, 2) {
		return false
	}
	return c.meanConfidence(ps) >= c.Confidence
}
