package decoder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolynomialTermTables(t *testing.T) {
	// The x estimator uses odd powers of a only, the y estimator even
	// powers only; both stay within the tabulated maxima.
	for _, term := range xTerms {
		assert.Equal(t, 1, term.powA%2, "x term %+v must use an odd power of a", term)
		assert.LessOrEqual(t, term.powA, maxPowA)
		assert.LessOrEqual(t, term.powP, maxPowP)
	}
	for _, term := range yTerms {
		assert.Equal(t, 0, term.powA%2, "y term %+v must use an even power of a", term)
		assert.LessOrEqual(t, term.powA, maxPowA)
		assert.LessOrEqual(t, term.powP, maxPowP)
	}
}

func TestPositionEstimateAnchors(t *testing.T) {
	testCases := []struct {
		name  string
		a, p  float64
		wantX float64
		wantY float64
	}{
		// A silent or perfectly centered bin sits front center.
		{"centered in-phase", 0, 0, 0, 0.98592},
		// Full right steering saturates x.
		{"hard right in-phase", 1, 0, 1, 1},
		// Full left steering saturates x the other way.
		{"hard left in-phase", -1, 0, -1, 1},
		// Centered anti-phase content maps to the back.
		{"centered anti-phase", 0, math.Pi, 0, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := positionEstimate(tc.a, tc.p)
			assert.InDelta(t, tc.wantX, x, 1e-9)
			assert.InDelta(t, tc.wantY, y, 1e-9)
		})
	}
}

// TestPositionEstimateSymmetry verifies left/right mirror symmetry: x is
// odd in a, y is even in a.
func TestPositionEstimateSymmetry(t *testing.T) {
	for _, a := range []float64{0.1, 0.35, 0.7, 0.95} {
		for _, p := range []float64{0, 0.5, 1.5, 2.8, math.Pi} {
			xPos, yPos := positionEstimate(a, p)
			xNeg, yNeg := positionEstimate(-a, p)
			assert.InDelta(t, -xPos, xNeg, 1e-12, "a=%g p=%g", a, p)
			assert.InDelta(t, yPos, yNeg, 1e-12, "a=%g p=%g", a, p)
		}
	}
}

// TestPositionEstimateClamped verifies the estimate never leaves the
// soundstage square for any feature combination.
func TestPositionEstimateClamped(t *testing.T) {
	for a := -1.0; a <= 1.0; a += 0.05 {
		for p := 0.0; p <= math.Pi; p += 0.05 {
			x, y := positionEstimate(a, p)
			assert.GreaterOrEqual(t, x, -1.0)
			assert.LessOrEqual(t, x, 1.0)
			assert.GreaterOrEqual(t, y, -1.0)
			assert.LessOrEqual(t, y, 1.0)
		}
	}
}

// TestPhaseMonotonicFrontBack spot-checks that growing phase difference
// moves a centered source backwards.
func TestPhaseMonotonicFrontBack(t *testing.T) {
	_, front := positionEstimate(0, 0)
	_, mid := positionEstimate(0, math.Pi/2)
	_, back := positionEstimate(0, math.Pi)
	assert.Greater(t, front, mid)
	assert.Greater(t, mid, back)
}
