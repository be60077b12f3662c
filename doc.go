// Package upmixer provides frequency-domain stereo-to-surround upmixing in
// pure Go.
//
// The decoder analyzes a stereo stream with a windowed overlap-add STFT,
// estimates the angular position of every spectral component from the
// inter-channel amplitude and phase differences, and re-renders the
// soundfield onto a discrete multichannel speaker layout, from plain
// stereo through 5.1 and 7.1 up to dense 16.1 wraps.
//
// # Features
//
//   - Per-bin position estimation with a fitted amplitude/phase model
//   - Declarative channel maps with energy-preserving allocation grids
//   - Soundfield controls: circular wrap, shift, depth, focus, front/rear
//     separation, center image
//   - Optional LFE bass redirection with a raised-cosine transition band
//   - Fixed N/2-frame latency with strict 50% overlap-add discipline
//   - Streaming API with zero steady-state allocation
//
// # Quick Start
//
// For simple one-shot upmixing of planar channels:
//
//	channels, err := upmixer.UpmixStereo(left, right, upmixer.FivePointOne, 4096)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming, create a decoder and feed fixed-size interleaved blocks:
//
//	d, err := upmixer.New(upmixer.FivePointOne, 4096)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for block := range stereoBlocks { // 2*4096 values each
//	    out, err := d.Decode(block)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    writeOutput(out) // 4096*6 values, delayed by 2048 frames
//	}
//
// # Parameters
//
// All soundfield parameters can be changed between blocks without
// reinitializing the decoder; see [Config] for the accepted ranges.
// Invalid values are rejected at the API boundary and never reach the
// decode core.
//
// # Channel Order
//
// The decoder emits samples in the channel order declared by the setup
// (see [ChannelAt]); the LFE, when present, is always last. Remapping to
// host-specific orderings is left to the caller; [AlsaOrder] covers the
// common ALSA/SMPTE arrangement.
//
// # Thread Safety
//
// A [Decoder] is stateful and must be used from one goroutine at a time.
// Parameter setters and Decode/Flush must not run concurrently on the
// same instance; between blocks is safe. Distinct decoder instances share
// nothing but the read-only channel map tables.
//
// # Attribution
//
// The decoding model (the bivariate position polynomial, the soundfield
// transform chain and the channel allocation grid approach) follows the
// FreeSurround decoder by Christian Kothe (GPL-2.0) as carried on in the
// FreeSurround2020 output plugin.
package upmixer
