package upmixer

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-upmixer/internal/chanmap"
	"github.com/tphakala/go-audio-upmixer/internal/decoder"
)

// Common errors returned by the upmixer.
var (
	// ErrInvalidConfig indicates a parameter outside its accepted range.
	ErrInvalidConfig = errors.New("invalid upmixer configuration")

	// ErrInvalidSetup indicates an unknown channel setup.
	ErrInvalidSetup = errors.New("invalid channel setup")

	// ErrInvalidBlockSize indicates an unusable decode block size.
	ErrInvalidBlockSize = errors.New("invalid block size")

	// ErrBadBlockLength indicates a Decode input of the wrong length.
	ErrBadBlockLength = errors.New("input block has wrong length")
)

// minBlockSize is the smallest supported decode block.
const minBlockSize = 64

// Config holds the soundfield and rendering parameters of a decoder.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// CircularWrap is the angle of the front sound stage around the
	// listener, in degrees. 90 is standard decoding, 180 stretches the
	// front stage from ear to ear. Range [0, 360].
	CircularWrap float64

	// Shift moves the soundfield forward (positive) or backward
	// (negative). Range [-1, 1], 0 is neutral.
	Shift float64

	// Depth scales the soundfield backwards. Range [0, 5], 1 is neutral.
	Depth float64

	// Focus controls source localization: positive sharpens, negative
	// diffuses. Range [-1, 1], 0 is neutral.
	Focus float64

	// CenterImage sets the presence of the front center channel. 1 is
	// spec-conformant decoding; around 0.7 suits music mixed without a
	// center. Range [0, 1].
	CenterImage float64

	// FrontSeparation is the front stereo width. Range [0, ∞), 1 is
	// neutral, 0 collapses the front stage to mono.
	FrontSeparation float64

	// RearSeparation is the rear stereo width. Range [0, ∞), 1 is
	// neutral.
	RearSeparation float64

	// LowCutoff is the lower edge of the bass redirection band as a
	// fraction of the Nyquist frequency. Range [0, 1].
	LowCutoff float64

	// HighCutoff is the upper edge of the bass redirection band as a
	// fraction of the Nyquist frequency. Range [0, 1].
	HighCutoff float64

	// BassRedirection routes low-frequency content into the LFE channel
	// of setups that have one.
	BassRedirection bool
}

// DefaultConfig returns the neutral decoder settings: standard 90° front
// stage, unity separations, full center presence, and a 40–90 Hz bass
// band (at 44.1 kHz) with redirection disabled.
func DefaultConfig() Config {
	return Config{
		CircularWrap:    90,
		Shift:           0,
		Depth:           1,
		Focus:           0,
		CenterImage:     1,
		FrontSeparation: 1,
		RearSeparation:  1,
		LowCutoff:       40.0 / 22050,
		HighCutoff:      90.0 / 22050,
		BassRedirection: false,
	}
}

// Validate checks every parameter against its accepted range.
func (c *Config) Validate() error {
	if c.CircularWrap < 0 || c.CircularWrap > 360 {
		return fmt.Errorf("%w: circular wrap must be 0-360 degrees, got %g", ErrInvalidConfig, c.CircularWrap)
	}
	if c.Shift < -1 || c.Shift > 1 {
		return fmt.Errorf("%w: shift must be in [-1, 1], got %g", ErrInvalidConfig, c.Shift)
	}
	if c.Depth < 0 || c.Depth > 5 {
		return fmt.Errorf("%w: depth must be in [0, 5], got %g", ErrInvalidConfig, c.Depth)
	}
	if c.Focus < -1 || c.Focus > 1 {
		return fmt.Errorf("%w: focus must be in [-1, 1], got %g", ErrInvalidConfig, c.Focus)
	}
	if c.CenterImage < 0 || c.CenterImage > 1 {
		return fmt.Errorf("%w: center image must be in [0, 1], got %g", ErrInvalidConfig, c.CenterImage)
	}
	if c.FrontSeparation < 0 {
		return fmt.Errorf("%w: front separation must be non-negative, got %g", ErrInvalidConfig, c.FrontSeparation)
	}
	if c.RearSeparation < 0 {
		return fmt.Errorf("%w: rear separation must be non-negative, got %g", ErrInvalidConfig, c.RearSeparation)
	}
	if c.LowCutoff < 0 || c.LowCutoff > 1 {
		return fmt.Errorf("%w: low cutoff must be in [0, 1], got %g", ErrInvalidConfig, c.LowCutoff)
	}
	if c.HighCutoff < 0 || c.HighCutoff > 1 {
		return fmt.Errorf("%w: high cutoff must be in [0, 1], got %g", ErrInvalidConfig, c.HighCutoff)
	}
	return nil
}

// Decoder turns fixed-size stereo blocks into multichannel blocks for one
// channel setup. A Decoder is stateful and must not be used from more
// than one goroutine at a time; parameters may be changed between blocks
// without reinitialization.
type Decoder struct {
	core  *decoder.Decoder
	setup ChannelSetup
	cfg   Config
	out32 []float32
	in64  []float64
}

// New creates a decoder for the given setup and block size with default
// parameters. The block size must be a power of two and at least 64;
// 2048 and 4096 are typical.
func New(setup ChannelSetup, blockSize int) (*Decoder, error) {
	return NewWithConfig(setup, blockSize, DefaultConfig())
}

// NewWithConfig creates a decoder with explicit initial parameters.
func NewWithConfig(setup ChannelSetup, blockSize int, cfg Config) (*Decoder, error) {
	if !setup.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSetup, int(setup))
	}
	if blockSize < minBlockSize || blockSize&(blockSize-1) != 0 {
		return nil, fmt.Errorf("%w: must be a power of two >= %d, got %d", ErrInvalidBlockSize, minBlockSize, blockSize)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Decoder{
		core:  decoder.New(chanmap.For(chanmap.Setup(setup)), blockSize),
		setup: setup,
	}
	d.applyConfig(cfg)
	return d, nil
}

func (d *Decoder) applyConfig(cfg Config) {
	d.cfg = cfg
	d.core.SetCircularWrap(cfg.CircularWrap)
	d.core.SetShift(cfg.Shift)
	d.core.SetDepth(cfg.Depth)
	d.core.SetFocus(cfg.Focus)
	d.core.SetCenterImage(cfg.CenterImage)
	d.core.SetFrontSeparation(cfg.FrontSeparation)
	d.core.SetRearSeparation(cfg.RearSeparation)
	d.core.SetLowCutoff(cfg.LowCutoff)
	d.core.SetHighCutoff(cfg.HighCutoff)
	d.core.SetBassRedirection(cfg.BassRedirection)
}

// Setup returns the channel setup the decoder was created with.
func (d *Decoder) Setup() ChannelSetup { return d.setup }

// BlockSize returns the decode block size in frames.
func (d *Decoder) BlockSize() int { return d.core.BlockSize() }

// Channels returns the number of output channels.
func (d *Decoder) Channels() int { return d.core.Channels() }

// Config returns the decoder's current parameters.
func (d *Decoder) Config() Config { return d.cfg }

// Decode consumes one block of BlockSize interleaved stereo frames
// (2·BlockSize values) and returns the interleaved multichannel block
// (BlockSize·Channels values), delayed by BlockSize/2 frames. The
// returned slice aliases an internal buffer and is valid until the next
// Decode or Flush call.
func (d *Decoder) Decode(input []float64) ([]float64, error) {
	if len(input) != 2*d.core.BlockSize() {
		return nil, fmt.Errorf("%w: want %d values, got %d", ErrBadBlockLength, 2*d.core.BlockSize(), len(input))
	}
	return d.core.Decode(input), nil
}

// DecodeFloat32 is like Decode for float32 samples. The conversion
// buffers are reused across calls.
func (d *Decoder) DecodeFloat32(input []float32) ([]float32, error) {
	if len(input) != 2*d.core.BlockSize() {
		return nil, fmt.Errorf("%w: want %d values, got %d", ErrBadBlockLength, 2*d.core.BlockSize(), len(input))
	}
	if d.in64 == nil {
		d.in64 = make([]float64, 2*d.core.BlockSize())
		d.out32 = make([]float32, d.core.BlockSize()*d.core.Channels())
	}
	for i, v := range input {
		d.in64[i] = float64(v)
	}
	out := d.core.Decode(d.in64)
	for i, v := range out {
		d.out32[i] = float32(v)
	}
	return d.out32, nil
}

// Flush zeros all internal buffers, dropping the latency tail.
func (d *Decoder) Flush() { d.core.Flush() }

// Buffered returns the outgoing latency in frames: 0 after creation or
// Flush, BlockSize/2 after any Decode.
func (d *Decoder) Buffered() int { return d.core.Buffered() }

// Parameter setters. Each validates its range before touching the core
// and may be called between blocks.

// SetCircularWrap sets the front stage angle in degrees, range [0, 360].
func (d *Decoder) SetCircularWrap(degrees float64) error {
	if degrees < 0 || degrees > 360 {
		return fmt.Errorf("%w: circular wrap must be 0-360 degrees, got %g", ErrInvalidConfig, degrees)
	}
	d.cfg.CircularWrap = degrees
	d.core.SetCircularWrap(degrees)
	return nil
}

// SetShift sets the forward/backward soundfield offset, range [-1, 1].
func (d *Decoder) SetShift(v float64) error {
	if v < -1 || v > 1 {
		return fmt.Errorf("%w: shift must be in [-1, 1], got %g", ErrInvalidConfig, v)
	}
	d.cfg.Shift = v
	d.core.SetShift(v)
	return nil
}

// SetDepth sets the backward soundfield stretch, range [0, 5].
func (d *Decoder) SetDepth(v float64) error {
	if v < 0 || v > 5 {
		return fmt.Errorf("%w: depth must be in [0, 5], got %g", ErrInvalidConfig, v)
	}
	d.cfg.Depth = v
	d.core.SetDepth(v)
	return nil
}

// SetFocus sets source localization, range [-1, 1].
func (d *Decoder) SetFocus(v float64) error {
	if v < -1 || v > 1 {
		return fmt.Errorf("%w: focus must be in [-1, 1], got %g", ErrInvalidConfig, v)
	}
	d.cfg.Focus = v
	d.core.SetFocus(v)
	return nil
}

// SetCenterImage sets the front center presence, range [0, 1].
func (d *Decoder) SetCenterImage(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: center image must be in [0, 1], got %g", ErrInvalidConfig, v)
	}
	d.cfg.CenterImage = v
	d.core.SetCenterImage(v)
	return nil
}

// SetFrontSeparation sets the front stereo width, range [0, ∞).
func (d *Decoder) SetFrontSeparation(v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: front separation must be non-negative, got %g", ErrInvalidConfig, v)
	}
	d.cfg.FrontSeparation = v
	d.core.SetFrontSeparation(v)
	return nil
}

// SetRearSeparation sets the rear stereo width, range [0, ∞).
func (d *Decoder) SetRearSeparation(v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: rear separation must be non-negative, got %g", ErrInvalidConfig, v)
	}
	d.cfg.RearSeparation = v
	d.core.SetRearSeparation(v)
	return nil
}

// SetLowCutoff sets the lower bass redirection edge as a fraction of the
// Nyquist frequency, range [0, 1].
func (d *Decoder) SetLowCutoff(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: low cutoff must be in [0, 1], got %g", ErrInvalidConfig, v)
	}
	d.cfg.LowCutoff = v
	d.core.SetLowCutoff(v)
	return nil
}

// SetHighCutoff sets the upper bass redirection edge as a fraction of
// the Nyquist frequency, range [0, 1].
func (d *Decoder) SetHighCutoff(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: high cutoff must be in [0, 1], got %g", ErrInvalidConfig, v)
	}
	d.cfg.HighCutoff = v
	d.core.SetHighCutoff(v)
	return nil
}

// SetBassRedirection enables or disables the LFE band.
func (d *Decoder) SetBassRedirection(v bool) error {
	d.cfg.BassRedirection = v
	d.core.SetBassRedirection(v)
	return nil
}
