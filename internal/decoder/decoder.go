// Package decoder implements the frequency-domain surround decode core:
// windowed overlap-add STFT analysis of the stereo input, per-bin position
// estimation, soundfield transforms, channel-grid synthesis and inverse
// STFT reconstruction per output channel.
//
// The decoder is stateful and single-threaded; parameter validation is the
// caller's responsibility (the public package wraps every setter). All
// buffers are sized at construction and no allocation happens in the
// steady state.
package decoder

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-audio-upmixer/internal/chanmap"
)

// epsilon guards the amplitude-difference division for near-silent bins.
const epsilon = 1e-6

// Decoder decodes fixed-size stereo blocks into multichannel blocks.
type Decoder struct {
	n int // block size in frames
	c int // output channel count

	baseMap *chanmap.Map // shared map with neutral center image
	m       *chanmap.Map // active map (center image folded in)

	// Soundfield and rendering parameters. Set between blocks only.
	circularWrapAngle float64
	shift             float64
	depth             float64
	focus             float64
	centerImage       float64
	frontSeparation   float64
	rearSeparation    float64
	loCut, hiCut      float64 // fractional bin indices
	useLFE            bool

	fft *fourier.FFT
	wnd []float64 // analysis/synthesis window, normalized for unity OLA

	lt, rt  []float64    // windowed left/right time-domain frames
	dst     []float64    // inverse-transform scratch
	lf, rf  []complex128 // left/right spectra
	signal  [][]complex128
	inbuf   []float64 // stereo, 3·N values in three N-value regions
	outbuf  []float64 // multichannel, (N + N/2)·C values
	isEmpty bool
}

// New creates a decoder for the given channel map and block size. The
// block size must be validated by the caller (power of two, ≥ 64).
func New(m *chanmap.Map, blockSize int) *Decoder {
	n := blockSize
	c := m.NumChannels()

	d := &Decoder{
		n:       n,
		c:       c,
		baseMap: m,
		m:       m,
		fft:     fourier.NewFFT(n),
		wnd:     make([]float64, n),
		lt:      make([]float64, n),
		rt:      make([]float64, n),
		dst:     make([]float64, n),
		lf:      make([]complex128, n/2+1),
		rf:      make([]complex128, n/2+1),
		signal:  make([][]complex128, c),
		inbuf:   make([]float64, 3*n),
		outbuf:  make([]float64, (n+n/2)*c),
		isEmpty: true,
	}
	for ch := range d.signal {
		d.signal[ch] = make([]complex128, n/2+1)
	}

	// Sqrt-Hann scaled by 1/sqrt(N): applied on both analysis and synthesis,
	// it absorbs the unnormalized inverse transform and makes 50%-hop
	// overlap-add reconstruction unity gain.
	for k := 0; k < n; k++ {
		d.wnd[k] = math.Sqrt(0.5 * (1 - math.Cos(2*math.Pi*float64(k)/float64(n))) / float64(n))
	}

	d.SetCircularWrap(90)
	d.SetShift(0)
	d.SetDepth(1)
	d.SetFocus(0)
	d.SetCenterImage(1)
	d.SetFrontSeparation(1)
	d.SetRearSeparation(1)
	d.SetLowCutoff(40.0 / 22050)
	d.SetHighCutoff(90.0 / 22050)
	d.SetBassRedirection(false)

	return d
}

// BlockSize returns the decode block size in frames.
func (d *Decoder) BlockSize() int { return d.n }

// Channels returns the number of output channels.
func (d *Decoder) Channels() int { return d.c }

// Map returns the active channel map.
func (d *Decoder) Map() *chanmap.Map { return d.m }

// Parameter setters. Ranges are enforced by the public API before the
// values reach the core.

func (d *Decoder) SetCircularWrap(degrees float64) { d.circularWrapAngle = degrees }

func (d *Decoder) SetShift(v float64) { d.shift = v }

func (d *Decoder) SetDepth(v float64) { d.depth = v }

func (d *Decoder) SetFocus(v float64) { d.focus = v }

func (d *Decoder) SetFrontSeparation(v float64) { d.frontSeparation = v }

func (d *Decoder) SetRearSeparation(v float64) { d.rearSeparation = v }

func (d *Decoder) SetBassRedirection(v bool) { d.useLFE = v }

// SetCenterImage folds the front-center presence level into the channel
// grids; the bin loop itself never sees the parameter.
func (d *Decoder) SetCenterImage(v float64) {
	if v == d.centerImage && d.m != nil {
		return
	}
	d.centerImage = v
	d.m = d.baseMap.WithCenterImage(v)
}

// SetLowCutoff sets the lower edge of the bass redirection band as a
// fraction of the Nyquist frequency.
func (d *Decoder) SetLowCutoff(v float64) { d.loCut = v * float64(d.n/2) }

// SetHighCutoff sets the upper edge of the bass redirection band as a
// fraction of the Nyquist frequency.
func (d *Decoder) SetHighCutoff(v float64) { d.hiCut = v * float64(d.n/2) }

// Decode consumes one block of N interleaved stereo frames (2·N values)
// and returns the interleaved multichannel block it produced, delayed by
// N/2 frames. The returned slice aliases an internal buffer and is valid
// until the next Decode or Flush call.
func (d *Decoder) Decode(input []float64) []float64 {
	// Append the incoming block behind the previous block's tail.
	copy(d.inbuf[d.n:], input[:2*d.n])
	// Process the two half-overlapped sub-blocks.
	d.decodeSubBlock(0)
	d.decodeSubBlock(d.n)
	// Slide the unconsumed tail to the front for the next call.
	copy(d.inbuf[:d.n], d.inbuf[2*d.n:])
	d.isEmpty = false
	return d.outbuf[:d.n*d.c]
}

// Flush zeros the input and output buffers, dropping the buffered tail.
func (d *Decoder) Flush() {
	for i := range d.inbuf {
		d.inbuf[i] = 0
	}
	for i := range d.outbuf {
		d.outbuf[i] = 0
	}
	for ch := range d.signal {
		for f := range d.signal[ch] {
			d.signal[ch][f] = 0
		}
	}
	d.isEmpty = true
}

// Buffered returns the number of frames of outgoing latency currently held:
// 0 before the first block, N/2 after any decode.
func (d *Decoder) Buffered() int {
	if d.isEmpty {
		return 0
	}
	return d.n / 2
}

// decodeSubBlock analyzes one N-frame window of the input buffer starting
// at the given value offset and overlap-adds its synthesis into the output
// buffer.
func (d *Decoder) decodeSubBlock(off int) {
	n, c := d.n, d.c
	in := d.inbuf[off : off+2*n]

	// Demultiplex and window.
	for k := 0; k < n; k++ {
		d.lt[k] = d.wnd[k] * in[2*k]
		d.rt[k] = d.wnd[k] * in[2*k+1]
	}

	d.lf = d.fft.Coefficients(d.lf, d.lt)
	d.rf = d.fft.Coefficients(d.rf, d.rt)

	d.synthesizeSpectra()

	// Advance the output buffer: the trailing 2/3 becomes the leading 2/3
	// and the freed half-window is cleared for overlap-add.
	half := n / 2
	copy(d.outbuf[:n*c], d.outbuf[half*c:])
	tail := d.outbuf[n*c:]
	for i := range tail {
		tail[i] = 0
	}

	// Back-transform each channel, window again and overlap-add.
	for ch := 0; ch < c; ch++ {
		d.dst = d.fft.Sequence(d.dst, d.signal[ch])
		for k := 0; k < n; k++ {
			d.outbuf[c*(k+half)+ch] += d.wnd[k] * d.dst[k]
		}
	}
}

// synthesizeSpectra builds the per-channel output spectra from the current
// left/right spectra. Bins 0 (DC) and N/2 (Nyquist) are never written and
// stay zero.
func (d *Decoder) synthesizeSpectra() {
	m := d.m
	panned := m.NumPanned()
	gridRes := m.GridRes()

	for f := 1; f < d.n/2; f++ {
		ampL, ampR := cmplx.Abs(d.lf[f]), cmplx.Abs(d.rf[f])
		phaseL, phaseR := cmplx.Phase(d.lf[f]), cmplx.Phase(d.rf[f])

		// Amplitude and phase difference features.
		ampDiff := 0.0
		if ampL+ampR >= epsilon {
			ampDiff = clamp((ampR - ampL) / (ampR + ampL))
		}
		phaseDiff := math.Abs(phaseL - phaseR)
		if phaseDiff > math.Pi {
			phaseDiff = 2*math.Pi - phaseDiff
		}

		// Estimated soundstage position, then the transform chain.
		x, y := positionEstimate(ampDiff, phaseDiff)
		x, y = circularWrap(x, y, d.circularWrapAngle)
		y = clamp(y - d.shift)
		y = clamp(1 - (1-y)*d.depth)
		x, y = focusTransform(x, y, d.focus)
		x = clamp(x * (d.frontSeparation*(1+y)/2 + d.rearSeparation*(1-y)/2))

		ampTotal := math.Sqrt(ampL*ampL + ampR*ampR)
		sum := d.lf[f] + d.rf[f]
		phaseOf := [3]float64{phaseL, math.Atan2(imag(sum), real(sum)), phaseR}

		p, fx := mapToGrid(x, gridRes)
		q, fy := mapToGrid(y, gridRes)

		for ch := 0; ch < panned; ch++ {
			grid := m.Grid(ch)
			g := (1-fx)*(1-fy)*grid[q][p] +
				fx*(1-fy)*grid[q][p+1] +
				(1-fx)*fy*grid[q+1][p] +
				fx*fy*grid[q+1][p+1]
			d.signal[ch][f] = polar(ampTotal*g, phaseOf[1+m.PhaseSource(ch)])
		}

		if m.HasLFE() {
			lfe := d.c - 1
			if d.useLFE && float64(f) < d.hiCut {
				level := 1.0
				if float64(f) >= d.loCut {
					level = 0.5 * (1 + math.Cos(math.Pi*(float64(f)-d.loCut)/(d.hiCut-d.loCut)))
				}
				d.signal[lfe][f] = polar(level*ampTotal, phaseOf[1])
				redirect := complex(1-level, 0)
				for ch := 0; ch < panned; ch++ {
					d.signal[ch][f] *= redirect
				}
			} else {
				// The spectra are scratch across sub-blocks; clear the LFE
				// bin so disabling redirection cannot replay stale bass.
				d.signal[lfe][f] = 0
			}
		}
	}
}

// mapToGrid quantizes a coordinate in [-1,1] to a grid cell index and the
// fractional offset into that cell for bilinear interpolation.
func mapToGrid(v float64, gridRes int) (int, float64) {
	gp := (v + 1) * 0.5 * float64(gridRes-1)
	i := math.Min(float64(gridRes-2), math.Floor(gp))
	return int(i), gp - i
}

func polar(amp, phase float64) complex128 {
	return complex(amp*math.Cos(phase), amp*math.Sin(phase))
}
