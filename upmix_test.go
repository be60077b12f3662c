package upmixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidSetup(t *testing.T) {
	_, err := New(ChannelSetup(-1), 2048)
	assert.ErrorIs(t, err, ErrInvalidSetup)

	_, err = New(ChannelSetup(999), 2048)
	assert.ErrorIs(t, err, ErrInvalidSetup)
}

func TestNewRejectsInvalidBlockSize(t *testing.T) {
	for _, n := range []int{0, -4, 32, 100, 3000} {
		_, err := New(FivePointOne, n)
		assert.ErrorIs(t, err, ErrInvalidBlockSize, "block size %d", n)
	}
	for _, n := range []int{64, 256, 2048, 4096} {
		_, err := New(FivePointOne, n)
		assert.NoError(t, err, "block size %d", n)
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"wrap low", func(c *Config) { c.CircularWrap = -1 }},
		{"wrap high", func(c *Config) { c.CircularWrap = 361 }},
		{"shift low", func(c *Config) { c.Shift = -1.5 }},
		{"shift high", func(c *Config) { c.Shift = 1.5 }},
		{"depth low", func(c *Config) { c.Depth = -0.1 }},
		{"depth high", func(c *Config) { c.Depth = 5.1 }},
		{"focus low", func(c *Config) { c.Focus = -2 }},
		{"focus high", func(c *Config) { c.Focus = 2 }},
		{"center image low", func(c *Config) { c.CenterImage = -0.2 }},
		{"center image high", func(c *Config) { c.CenterImage = 1.2 }},
		{"front separation", func(c *Config) { c.FrontSeparation = -1 }},
		{"rear separation", func(c *Config) { c.RearSeparation = -0.5 }},
		{"low cutoff", func(c *Config) { c.LowCutoff = 1.5 }},
		{"high cutoff", func(c *Config) { c.HighCutoff = -0.1 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := NewWithConfig(FivePointOne, 2048, cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestSettersRejectOutOfRange(t *testing.T) {
	d, err := New(FivePointOne, 1024)
	require.NoError(t, err)

	assert.ErrorIs(t, d.SetCircularWrap(400), ErrInvalidConfig)
	assert.ErrorIs(t, d.SetShift(2), ErrInvalidConfig)
	assert.ErrorIs(t, d.SetDepth(6), ErrInvalidConfig)
	assert.ErrorIs(t, d.SetFocus(-1.1), ErrInvalidConfig)
	assert.ErrorIs(t, d.SetCenterImage(1.5), ErrInvalidConfig)
	assert.ErrorIs(t, d.SetFrontSeparation(-1), ErrInvalidConfig)
	assert.ErrorIs(t, d.SetRearSeparation(-1), ErrInvalidConfig)
	assert.ErrorIs(t, d.SetLowCutoff(-0.5), ErrInvalidConfig)
	assert.ErrorIs(t, d.SetHighCutoff(2), ErrInvalidConfig)

	// A rejected value leaves the configuration untouched.
	assert.Equal(t, DefaultConfig(), d.Config())

	assert.NoError(t, d.SetCircularWrap(180))
	assert.Equal(t, 180.0, d.Config().CircularWrap)
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	d, err := New(FivePointOne, 1024)
	require.NoError(t, err)

	_, err = d.Decode(make([]float64, 1024))
	assert.ErrorIs(t, err, ErrBadBlockLength)

	_, err = d.DecodeFloat32(make([]float32, 100))
	assert.ErrorIs(t, err, ErrBadBlockLength)

	out, err := d.Decode(make([]float64, 2048))
	require.NoError(t, err)
	assert.Len(t, out, 1024*6)
}

func TestChannelOrderDeclarations(t *testing.T) {
	assert.Equal(t, 6, NumChannels(FivePointOne))
	assert.Equal(t, ChannelFrontLeft, ChannelAt(FivePointOne, 0))
	assert.Equal(t, ChannelFrontCenter, ChannelAt(FivePointOne, 1))
	assert.Equal(t, ChannelFrontRight, ChannelAt(FivePointOne, 2))
	assert.Equal(t, ChannelBackLeft, ChannelAt(FivePointOne, 3))
	assert.Equal(t, ChannelBackRight, ChannelAt(FivePointOne, 4))
	assert.Equal(t, ChannelLFE, ChannelAt(FivePointOne, 5))

	assert.Equal(t, ChannelNone, ChannelAt(FivePointOne, 6))
	assert.Equal(t, ChannelNone, ChannelAt(ChannelSetup(99), 0))
	assert.Equal(t, 0, NumChannels(ChannelSetup(99)))
}

// TestLFELastEverywhere pins the contract that the LFE, when present,
// occupies the final slot of the channel order.
func TestLFELastEverywhere(t *testing.T) {
	for s := Stereo; s.Valid(); s++ {
		c := NumChannels(s)
		for i := 0; i < c-1; i++ {
			assert.NotEqual(t, ChannelLFE, ChannelAt(s, i),
				"setup %s: LFE found at slot %d of %d", s, i, c)
		}
	}
}

func TestDecodeFloat32MatchesFloat64(t *testing.T) {
	const n = 256
	d64, err := New(SevenPointOne, n)
	require.NoError(t, err)
	d32, err := New(SevenPointOne, n)
	require.NoError(t, err)

	in64 := make([]float64, 2*n)
	in32 := make([]float32, 2*n)
	for i := range in64 {
		v := float32(i%37)/37 - 0.5
		in32[i] = v
		in64[i] = float64(v)
	}

	out64, err := d64.Decode(in64)
	require.NoError(t, err)
	out32, err := d32.DecodeFloat32(in32)
	require.NoError(t, err)

	require.Len(t, out32, len(out64))
	for i := range out64 {
		assert.InDelta(t, out64[i], float64(out32[i]), 1e-6, "value %d", i)
	}
}

func TestSetupForChannels(t *testing.T) {
	assert.Equal(t, Stereo, SetupForChannels(2))
	assert.Equal(t, ThreeStereo, SetupForChannels(3))
	assert.Equal(t, FivePointOne, SetupForChannels(5))
	assert.Equal(t, FivePointOne, SetupForChannels(6))
	assert.Equal(t, SevenPointOne, SetupForChannels(8))
	assert.Equal(t, Stereo, SetupForChannels(0))
	assert.Equal(t, Stereo, SetupForChannels(9))
}

func TestSetupStrings(t *testing.T) {
	assert.Equal(t, "5.1", FivePointOne.String())
	assert.Equal(t, "16.1", SixteenPointOne.String())
	assert.Equal(t, "unknown", ChannelSetup(99).String())
	assert.Equal(t, "LFE", ChannelLFE.String())
	assert.Equal(t, "unknown", ChannelID(99).String())
}
