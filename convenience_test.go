package upmixer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-upmixer/internal/testutil"
)

func TestUpmixStereoRejectsMismatchedLengths(t *testing.T) {
	_, err := UpmixStereo(make([]float64, 10), make([]float64, 11), FivePointOne, 256)
	assert.ErrorIs(t, err, ErrBadBlockLength)
}

func TestUpmixStereoSilence(t *testing.T) {
	const frames = 1000
	out, err := UpmixStereo(make([]float64, frames), make([]float64, frames), FivePointOne, 256)
	require.NoError(t, err)
	require.Len(t, out, 6)
	for ch := range out {
		require.Len(t, out[ch], frames)
		testutil.AssertAllZero(t, out[ch])
	}
}

// TestUpmixStereoAlignsLatency verifies the one-shot helper compensates
// the decoder latency: the center channel lines up with the source.
func TestUpmixStereoAlignsLatency(t *testing.T) {
	const (
		n      = 512
		frames = 4 * n
	)
	sine := testutil.Sine(frames, 440, 48000)
	out, err := UpmixStereo(sine, sine, ThreeStereo, n)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Len(t, out[1], frames)

	// Away from the stream edges the center tracks sqrt(2)·input with no
	// residual delay.
	for i := n; i < frames-n; i++ {
		assert.InDelta(t, math.Sqrt2*sine[i], out[1][i], 0.05, "frame %d", i)
	}
}

func TestUpmixStereoShortInput(t *testing.T) {
	// Shorter than one block: everything comes from padded decodes.
	const frames = 100
	sine := testutil.Sine(frames, 440, 48000)
	out, err := UpmixStereo(sine, sine, FivePointOne, 256)
	require.NoError(t, err)
	for ch := range out {
		require.Len(t, out[ch], frames)
		testutil.AssertNoNaNOrInf(t, out[ch])
	}
}

func TestInterleaveToStereo(t *testing.T) {
	left := []float64{1, 3, 5}
	right := []float64{2, 4, 6}
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, InterleaveToStereo(left, right))
}

func TestDeinterleaveChannels(t *testing.T) {
	data := []float64{1, 2, 3, 10, 20, 30}
	out := DeinterleaveChannels(data, 3)
	require.Len(t, out, 3)
	assert.Equal(t, []float64{1, 10}, out[0])
	assert.Equal(t, []float64{2, 20}, out[1])
	assert.Equal(t, []float64{3, 30}, out[2])
}

func TestChannelEnergy(t *testing.T) {
	assert.InDelta(t, 14.0, ChannelEnergy([]float64{1, 2, 3}), 1e-12)
}
