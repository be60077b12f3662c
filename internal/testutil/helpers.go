// Package testutil provides reusable test helper functions for upmixer
// tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/simd/f64"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	EnergyTolerance  = 1e-6
	RMSTolerance     = 0.02
	DBTolerance      = 0.01
)

// Sine fills a slice with a sine wave of the given frequency and sample
// rate at unit amplitude.
func Sine(samples int, freq, sampleRate float64) []float64 {
	out := make([]float64, samples)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

// RMS returns the root-mean-square level of a slice, 0 for an empty one.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return math.Sqrt(f64.DotProduct(s, s) / float64(len(s)))
}

// DB converts an amplitude ratio to decibels.
func DB(ratio float64) float64 {
	return 20 * math.Log10(ratio)
}

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "nonzero sample", "s[%d] = %g", i, v)
		}
	}
	return true
}

// AssertNearSilent verifies that the RMS level of a slice stays below the
// given linear threshold.
func AssertNearSilent(t *testing.T, s []float64, threshold float64, msgAndArgs ...any) bool {
	t.Helper()
	rms := RMS(s)
	return assert.LessOrEqual(t, rms, threshold,
		"RMS %g exceeds silence threshold %g", rms, threshold)
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and
// expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// Deinterleave splits an interleaved buffer into per-channel slices.
func Deinterleave(data []float64, channels int) [][]float64 {
	frames := len(data) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[ch][i] = data[i*channels+ch]
		}
	}
	return out
}
