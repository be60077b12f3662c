// Command upmix decodes a raw float32 little-endian stereo stream from
// stdin into a raw multichannel stream on stdout.
//
// Usage:
//
//	ffmpeg -i music.flac -f f32le - | upmix -setup 5.1 -lfe > surround.raw
//	upmix -demo -setup 7.1
//
// The tool runs the reader, the decoder and the writer as separate
// pipeline stages so slow sinks never stall the input side.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	upmixer "github.com/tphakala/go-audio-upmixer"
	"github.com/tphakala/go-audio-upmixer/internal/pipeline"
)

const (
	defaultBlockSize = 4096
	readChunkFrames  = 4096
)

func main() {
	var (
		setupName = flag.String("setup", "5.1", "Output channel setup (stereo, 3stereo, 5stereo, 4.1, 5.1, 6.1, 7.1, 7.1-panorama, 7.1-tricenter, 8.1, 9.1-densepanorama, 9.1-wrap, 11.1-densewrap, 13.1-totalwrap, 16.1, legacy)")
		blockSize = flag.Int("block", defaultBlockSize, "Decode block size in frames (power of two)")
		lfe       = flag.Bool("lfe", false, "Enable bass redirection into the LFE channel")
		bassLo    = flag.Float64("bass-lo", 40, "Lower LFE crossover edge in Hz")
		bassHi    = flag.Float64("bass-hi", 90, "Upper LFE crossover edge in Hz")
		rate      = flag.Float64("rate", 48000, "Sample rate in Hz (for the LFE crossover only)")
		demo      = flag.Bool("demo", false, "Print setup info instead of processing")
	)
	flag.Parse()

	setup, ok := parseSetup(*setupName)
	if !ok {
		log.Fatalf("unknown channel setup %q", *setupName)
	}

	if *demo {
		runDemo(setup, *blockSize)
		return
	}

	cfg := upmixer.DefaultConfig()
	cfg.BassRedirection = *lfe
	cfg.LowCutoff = *bassLo / (*rate / 2)
	cfg.HighCutoff = *bassHi / (*rate / 2)

	dec, err := upmixer.NewWithConfig(setup, *blockSize, cfg)
	if err != nil {
		log.Fatalf("Failed to create decoder: %v", err)
	}

	if err := stream(dec); err != nil {
		log.Fatal(err)
	}
}

func parseSetup(name string) (upmixer.ChannelSetup, bool) {
	for s := upmixer.Stereo; s.Valid(); s++ {
		if canonical(s.String()) == canonical(name) {
			return s, true
		}
	}
	return 0, false
}

// canonical folds the spellings "7.1 panorama" and "7.1-panorama" together.
func canonical(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case ' ', '-', '_':
		default:
			out = append(out, name[i])
		}
	}
	return string(out)
}

// stream wires stdin and stdout around the decoder with the three-stage
// pipeline runner.
func stream(dec *upmixer.Decoder) error {
	in := bufio.NewReaderSize(os.Stdin, 1<<20)
	out := bufio.NewWriterSize(os.Stdout, 1<<20)
	defer out.Flush()

	readBuf := make([]byte, readChunkFrames*2*4)
	writeBuf := make([]byte, 0, dec.BlockSize()*dec.Channels()*4)

	runner := pipeline.NewRunner(dec)
	return runner.Run(
		func(dst []float64) (int, error) {
			want := min(len(readBuf), len(dst)*4)
			n, err := io.ReadFull(in, readBuf[:want])
			n -= n % 4
			for i := 0; i < n/4; i++ {
				bits := binary.LittleEndian.Uint32(readBuf[i*4:])
				dst[i] = float64(math.Float32frombits(bits))
			}
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}
			return n / 4, err
		},
		func(block []float64) error {
			writeBuf = writeBuf[:0]
			for _, v := range block {
				writeBuf = binary.LittleEndian.AppendUint32(writeBuf, math.Float32bits(float32(v)))
			}
			_, err := out.Write(writeBuf)
			return err
		},
	)
}

func runDemo(setup upmixer.ChannelSetup, blockSize int) {
	dec, err := upmixer.New(setup, blockSize)
	if err != nil {
		log.Fatalf("Failed to create decoder: %v", err)
	}

	fmt.Printf("Setup: %s\n", dec.Setup())
	fmt.Printf("  Channels: %d\n", dec.Channels())
	fmt.Printf("  Block size: %d frames\n", dec.BlockSize())
	fmt.Printf("  Latency: %d frames\n", dec.BlockSize()/2)
	fmt.Printf("  Channel order:\n")
	for i := 0; i < dec.Channels(); i++ {
		fmt.Printf("    %2d: %s\n", i, upmixer.ChannelAt(setup, i))
	}
}
