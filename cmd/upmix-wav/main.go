// Command upmix-wav upmixes a stereo WAV file to a multichannel WAV file.
//
// Usage:
//
//	upmix-wav input.wav output.wav
//	upmix-wav --setup 7.1 --lfe input.wav output.wav
//	upmix-wav --setup 5.1 --center-image 1.0 --order alsa input.wav output.wav
//
// The decoder parameters default to the music-friendly settings the
// FreeSurround output plugins shipped with (center image 0.7, bass band
// 40–90 Hz). Bass cutoffs are given in Hz and converted against the input
// file's sample rate.
package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	upmixer "github.com/tphakala/go-audio-upmixer"
)

// CLI defines the command-line interface.
type CLI struct {
	Input  string `arg:"" help:"Input stereo WAV file." type:"existingfile"`
	Output string `arg:"" help:"Output multichannel WAV file." type:"path"`

	Setup     string `short:"s" default:"5.1" enum:"stereo,3stereo,5stereo,4.1,5.1,6.1,7.1,7.1-panorama,7.1-tricenter,8.1,9.1-densepanorama,9.1-wrap,11.1-densewrap,13.1-totalwrap,16.1,legacy" help:"Output channel setup (${enum})."`
	BlockSize int    `default:"4096" help:"Decode block size in frames (power of two)."`

	CircularWrap    float64 `default:"90" help:"Front stage angle in degrees (0-360)."`
	Shift           float64 `default:"0" help:"Soundfield forward/backward shift (-1..1)."`
	Depth           float64 `default:"1" help:"Backward soundfield stretch (0-5)."`
	Focus           float64 `default:"0" help:"Source localization (-1..1)."`
	CenterImage     float64 `name:"center-image" default:"0.7" help:"Front center presence (0-1)."`
	FrontSeparation float64 `default:"1" help:"Front stereo width (>= 0)."`
	RearSeparation  float64 `default:"1" help:"Rear stereo width (>= 0)."`
	LFE             bool    `help:"Enable bass redirection into the LFE channel."`
	BassLo          float64 `default:"40" help:"Lower LFE crossover edge in Hz."`
	BassHi          float64 `default:"90" help:"Upper LFE crossover edge in Hz."`

	Gain    float64 `default:"1" help:"Linear output gain applied to all channels."`
	Order   string  `default:"native" enum:"native,alsa" help:"Output channel order."`
	Verbose bool    `short:"v" help:"Verbose output."`
}

var setupsByName = map[string]upmixer.ChannelSetup{
	"stereo":            upmixer.Stereo,
	"3stereo":           upmixer.ThreeStereo,
	"5stereo":           upmixer.FiveStereo,
	"4.1":               upmixer.FourPointOne,
	"5.1":               upmixer.FivePointOne,
	"6.1":               upmixer.SixPointOne,
	"7.1":               upmixer.SevenPointOne,
	"7.1-panorama":      upmixer.SevenPointOnePanorama,
	"7.1-tricenter":     upmixer.SevenPointOneTricenter,
	"8.1":               upmixer.EightPointOne,
	"9.1-densepanorama": upmixer.NinePointOneDensePanorama,
	"9.1-wrap":          upmixer.NinePointOneWrap,
	"11.1-densewrap":    upmixer.ElevenPointOneDenseWrap,
	"13.1-totalwrap":    upmixer.ThirteenPointOneTotalWrap,
	"16.1":              upmixer.SixteenPointOne,
	"legacy":            upmixer.Legacy,
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("upmix-wav"),
		kong.Description("Stereo to multichannel surround upmixer for WAV files."),
		kong.UsageOnError(),
	)

	if err := run(cli); err != nil {
		log.Fatal(err)
	}
}

func run(cli *CLI) (err error) {
	setup := setupsByName[cli.Setup]

	input, err := openWAVInput(cli.Input, cli.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = input.Close() }()

	if input.channels != 2 {
		return fmt.Errorf("input must be stereo, got %d channels", input.channels)
	}

	dec, err := newDecoder(cli, setup, input.rate)
	if err != nil {
		return err
	}

	output, err := createWAVOutput(cli.Output, input.rate, input.bitDepth, dec.Channels())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	if cli.Verbose {
		log.Printf("Setup: %s (%d channels), block size %d, latency %d frames",
			dec.Setup(), dec.Channels(), dec.BlockSize(), dec.BlockSize()/2)
	}

	start := time.Now()
	stats, err := upmixStream(input, output, dec, cli)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Upmixed %s -> %s\n", filepath.Base(cli.Input), filepath.Base(cli.Output))
	fmt.Printf("  %s: 2 -> %d channels, %d Hz, %d-bit\n",
		dec.Setup(), dec.Channels(), input.rate, input.bitDepth)
	fmt.Printf("  %d frames, %.2fs (%.1fx realtime)\n",
		stats.frames, elapsed.Seconds(),
		float64(stats.frames)/float64(input.rate)/elapsed.Seconds())
	if cli.Verbose {
		fmt.Printf("  input RMS %.4f, output RMS %.4f\n", stats.inputRMS, stats.outputRMS)
	}

	return nil
}

// newDecoder builds the decoder from the CLI parameters, converting the
// Hz bass band to Nyquist-normalized cutoffs the way the original output
// plugin did.
func newDecoder(cli *CLI, setup upmixer.ChannelSetup, sampleRate int) (*upmixer.Decoder, error) {
	nyquist := float64(sampleRate) / 2
	cfg := upmixer.Config{
		CircularWrap:    cli.CircularWrap,
		Shift:           cli.Shift,
		Depth:           cli.Depth,
		Focus:           cli.Focus,
		CenterImage:     cli.CenterImage,
		FrontSeparation: cli.FrontSeparation,
		RearSeparation:  cli.RearSeparation,
		LowCutoff:       cli.BassLo / nyquist,
		HighCutoff:      cli.BassHi / nyquist,
		BassRedirection: cli.LFE,
	}
	return upmixer.NewWithConfig(setup, cli.BlockSize, cfg)
}
