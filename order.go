package upmixer

// Channel-order permutation helpers. The decoder's native order is
// front/center/side/back with the LFE last; hosts commonly expect the
// ALSA/SMPTE arrangement instead (fronts, backs, center, LFE, sides).

// alsaOrderTables maps a decoder channel index to its ALSA slot for the
// native orders this decoder emits, keyed by channel count. These are the
// permutations the FreeSurround ALSA plugin shipped.
var alsaOrderTables = map[int][]int{
	8: {0, 4, 1, 6, 7, 2, 3, 5},
	6: {0, 4, 1, 2, 3, 5},
	4: {0, 1, 2, 3},
	2: {0, 1},
}

// AlsaOrder returns the decoder-index → ALSA-slot permutation for the
// given channel count, or nil when no standard ALSA arrangement exists
// for it. Callers reorder an interleaved frame with
// dst[perm[i]] = src[i].
func AlsaOrder(channels int) []int {
	perm, ok := alsaOrderTables[channels]
	if !ok {
		return nil
	}
	out := make([]int, len(perm))
	copy(out, perm)
	return out
}

// ReorderInterleaved permutes every frame of an interleaved buffer into a
// fresh slice, with output channel perm[i] receiving input channel i.
// A nil perm returns the input unchanged.
func ReorderInterleaved(data []float64, channels int, perm []int) []float64 {
	if perm == nil {
		return data
	}
	frames := len(data) / channels
	out := make([]float64, len(data))
	for f := 0; f < frames; f++ {
		base := f * channels
		for i := 0; i < channels; i++ {
			out[base+perm[i]] = data[base+i]
		}
	}
	return out
}
