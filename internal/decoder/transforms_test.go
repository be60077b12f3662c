package decoder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeDistance(t *testing.T) {
	// Straight ahead and straight right hit the square edge at 1; the
	// diagonal hits the corner at sqrt(2).
	assert.InDelta(t, 1.0, edgeDistance(0), 1e-12)
	assert.InDelta(t, 1.0, edgeDistance(math.Pi/2), 1e-9)
	assert.InDelta(t, math.Sqrt2, edgeDistance(math.Pi/4), 1e-9)
	assert.InDelta(t, math.Sqrt2, edgeDistance(3*math.Pi/4), 1e-9)
}

func TestCircularWrapNeutral(t *testing.T) {
	for _, pos := range [][2]float64{{0, 1}, {-1, 1}, {0.3, -0.7}, {0, 0}} {
		x, y := circularWrap(pos[0], pos[1], 90)
		assert.Equal(t, pos[0], x)
		assert.Equal(t, pos[1], y)
	}
}

// TestCircularWrapStretch verifies that at 180 degrees the front-right
// corner lands at the listener's right ear.
func TestCircularWrapStretch(t *testing.T) {
	x, y := circularWrap(1, 1, 180)
	assert.InDelta(t, 1.0, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)

	// And symmetrically for the left corner.
	x, y = circularWrap(-1, 1, 180)
	assert.InDelta(t, -1.0, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
}

// TestCircularWrapKeepsCenter verifies the median plane is unaffected.
func TestCircularWrapKeepsCenter(t *testing.T) {
	x, y := circularWrap(0, 1, 180)
	assert.InDelta(t, 0.0, x, 1e-12)
	assert.InDelta(t, 1.0, y, 1e-9)

	x, y = circularWrap(0, -1, 270)
	assert.InDelta(t, 0.0, x, 1e-9)
	assert.InDelta(t, -1.0, y, 1e-9)
}

func TestFocusNeutral(t *testing.T) {
	x, y := focusTransform(0.4, -0.2, 0)
	assert.Equal(t, 0.4, x)
	assert.Equal(t, -0.2, y)
}

// TestFocusSharpens verifies positive focus pushes mid-field sources
// toward the boundary and negative focus pulls them inward.
func TestFocusSharpens(t *testing.T) {
	x, y := focusTransform(0, 0.5, 0.5)
	assert.Greater(t, y, 0.99)
	assert.InDelta(t, 0.0, x, 1e-12)

	x, y = focusTransform(0, 0.5, -0.5)
	assert.Less(t, y, 0.01)
	assert.GreaterOrEqual(t, y, 0.0)
	assert.InDelta(t, 0.0, x, 1e-12)
}

// TestFocusKeepsBoundary verifies sources already on the soundfield edge
// stay there under any focus.
func TestFocusKeepsBoundary(t *testing.T) {
	for _, focus := range []float64{-1, -0.3, 0.3, 1} {
		x, y := focusTransform(0, 1, focus)
		assert.InDelta(t, 0.0, x, 1e-12, "focus %g", focus)
		assert.InDelta(t, 1.0, y, 1e-9, "focus %g", focus)
	}
}

func TestClampAndSign(t *testing.T) {
	assert.Equal(t, 1.0, clamp(3.7))
	assert.Equal(t, -1.0, clamp(-1.2))
	assert.Equal(t, 0.25, clamp(0.25))

	assert.Equal(t, -1.0, sign(-0.5))
	assert.Equal(t, 1.0, sign(2))
	assert.Equal(t, 0.0, sign(0))
}
