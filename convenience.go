package upmixer

import (
	"fmt"

	"github.com/tphakala/simd/f64"
)

// UpmixStereo upmixes a pair of equal-length mono channels in one shot and
// returns the planar multichannel result, one slice per output channel.
// The input is zero-padded to whole blocks, the decoder's latency tail is
// drained, and the output is trimmed to the input length.
//
// For streaming use create a Decoder and feed blocks instead.
func UpmixStereo(left, right []float64, setup ChannelSetup, blockSize int) ([][]float64, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: left and right lengths differ (%d vs %d)", ErrBadBlockLength, len(left), len(right))
	}

	d, err := New(setup, blockSize)
	if err != nil {
		return nil, err
	}

	n := d.BlockSize()
	c := d.Channels()
	frames := len(left)
	latency := n / 2

	out := make([][]float64, c)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}

	block := make([]float64, 2*n)
	written := 0
	for off := 0; written < frames; off += n {
		for k := 0; k < n; k++ {
			if off+k < frames {
				block[2*k] = left[off+k]
				block[2*k+1] = right[off+k]
			} else {
				block[2*k] = 0
				block[2*k+1] = 0
			}
		}
		decoded, err := d.Decode(block)
		if err != nil {
			return nil, err
		}
		// The first latency frames of the stream are silence; skip them
		// and deinterleave the rest into the output.
		for k := 0; k < n && written < frames; k++ {
			src := off + k - latency
			if src < 0 {
				continue
			}
			for ch := 0; ch < c; ch++ {
				out[ch][src] = decoded[k*c+ch]
			}
			written = src + 1
		}
	}

	return out, nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Both inputs must have the same length.
func InterleaveToStereo(left, right []float64) []float64 {
	out := make([]float64, 2*len(left))
	f64.Interleave2(out, left, right)
	return out
}

// DeinterleaveChannels splits an interleaved multichannel buffer into one
// slice per channel.
func DeinterleaveChannels(data []float64, channels int) [][]float64 {
	frames := len(data) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := 0; ch < channels; ch++ {
			out[ch][i] = data[base+ch]
		}
	}
	return out
}

// ChannelEnergy returns the signal energy (sum of squares) of a channel
// buffer. Useful for level metering around the decoder.
func ChannelEnergy(samples []float64) float64 {
	return f64.DotProduct(samples, samples)
}
