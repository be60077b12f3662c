package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	upmixer "github.com/tphakala/go-audio-upmixer"
	"github.com/tphakala/go-audio-upmixer/internal/chunker"
)

const (
	// Frames read from the input per loop iteration.
	readFrames = 32768

	// WAV header layout.
	wavHeaderSize     = 44
	wavRiffHeaderSize = 36
	wavPCMSubchunk    = 16
	wavFileSizeOffset = 4
	wavDataSizeOffset = 40

	writerBufferSize = 256 * 1024
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, format.NumChannels, decoder.BitDepth)
	}

	return &wavInputInfo{
		file:     f,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// maxSampleValue returns the full-scale value for a PCM bit depth.
func maxSampleValue(bitDepth int) float64 {
	switch bitDepth {
	case 24:
		return 8388607
	case 32:
		return 2147483647
	default:
		return 32767
	}
}

type upmixStats struct {
	frames    int64
	inputRMS  float64
	outputRMS float64
}

// upmixStream pumps the whole input file through the decoder: PCM frames
// are normalized to float, regrouped into decode blocks, and the decoded
// multichannel frames are written out after the initial latency is
// skipped. At EOF the final partial block is zero-padded and silent
// blocks are appended until the latency tail has drained, so the output
// has exactly as many frames as the input.
func upmixStream(input *wavInputInfo, output *wavOutputWriter, dec *upmixer.Decoder, cli *CLI) (*upmixStats, error) {
	n := dec.BlockSize()
	c := dec.Channels()
	maxVal := maxSampleValue(input.bitDepth)
	invMax := 1 / maxVal

	var perm []int
	if cli.Order == "alsa" {
		perm = upmixer.AlsaOrder(c)
		if perm == nil {
			return nil, fmt.Errorf("no ALSA channel order defined for %d channels", c)
		}
	}

	intBuf := &audio.IntBuffer{
		Data:   make([]int, readFrames*input.channels),
		Format: input.format,
	}
	floatBuf := make([]float64, readFrames*input.channels)
	gainBuf := make([]float64, n*c)
	orderBuf := make([]float64, n*c)
	outInt := make([]int, n*c)

	var framesIn, framesWritten int64
	var inEnergy, outEnergy float64
	skip := n / 2      // initial latency frames to discard
	limit := int64(-1) // total output frames, known at EOF
	var cbErr error

	rechunk := chunker.New(2*n, func(block []float64) {
		if cbErr != nil {
			return
		}
		out, err := dec.Decode(block)
		if err != nil {
			cbErr = err
			return
		}
		if cli.Gain != 1 {
			f64.Scale(gainBuf, out, cli.Gain)
			out = gainBuf
		}
		if perm != nil {
			for f := 0; f < n; f++ {
				base := f * c
				for i := 0; i < c; i++ {
					orderBuf[base+perm[i]] = out[base+i]
				}
			}
			out = orderBuf
		}

		start := 0
		if skip > 0 {
			start = skip
			if start > n {
				start = n
			}
			skip -= start
		}
		frames := n - start
		if limit >= 0 && int64(frames) > limit-framesWritten {
			frames = int(limit - framesWritten)
		}
		if frames <= 0 {
			return
		}

		chunk := out[start*c : (start+frames)*c]
		outEnergy += f64.DotProduct(chunk, chunk)
		for i, v := range chunk {
			outInt[i] = int(math.Max(-1, math.Min(1, v)) * maxVal)
		}
		if err := output.WriteSamples(outInt[:len(chunk)]); err != nil {
			cbErr = err
			return
		}
		framesWritten += int64(frames)
	})

	// Main read loop. PCMBuffer reports the number of values populated;
	// trim to whole frames.
	for {
		nRead, err := input.decoder.PCMBuffer(intBuf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		if nRead == 0 {
			break
		}
		nRead -= nRead % input.channels

		data := intBuf.Data[:nRead]
		fb := floatBuf[:len(data)]
		for i, v := range data {
			fb[i] = float64(v) * invMax
		}
		framesIn += int64(nRead / input.channels)
		inEnergy += f64.DotProduct(fb, fb)

		rechunk.Append(fb)
		if cbErr != nil {
			return nil, cbErr
		}
	}

	// Drain: complete the partial block, then push silence until the
	// decoder's tail has been written.
	limit = framesIn
	if rechunk.Buffered() > 0 {
		rechunk.Append(make([]float64, 2*n-rechunk.Buffered()))
	}
	silence := make([]float64, 2*n)
	for framesWritten < framesIn && cbErr == nil {
		rechunk.Append(silence)
	}
	if cbErr != nil {
		return nil, cbErr
	}

	stats := &upmixStats{frames: framesIn}
	if framesIn > 0 {
		stats.inputRMS = math.Sqrt(inEnergy / float64(framesIn*int64(input.channels)))
		stats.outputRMS = math.Sqrt(outEnergy / float64(framesWritten*int64(c)))
	}
	return stats, nil
}

// wavOutputWriter writes multichannel PCM WAV without per-sample
// allocations, patching the header sizes on close.
type wavOutputWriter struct {
	f        *os.File
	w        *bufio.Writer
	rate     int
	bitDepth int
	channels int
	dataSize uint32
	byteBuf  []byte
}

// createWAVOutput creates the output file and writes a placeholder header.
func createWAVOutput(path string, rate, bitDepth, channels int) (*wavOutputWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := &wavOutputWriter{
		f:        f,
		w:        bufio.NewWriterSize(f, writerBufferSize),
		rate:     rate,
		bitDepth: bitDepth,
		channels: channels,
		byteBuf:  make([]byte, readFrames*channels*(bitDepth/8)),
	}
	if err := w.writeHeader(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	return w, nil
}

func (w *wavOutputWriter) writeHeader() error {
	bytesPerFrame := w.channels * (w.bitDepth / 8)
	header := make([]byte, wavHeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // patched on close
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunk)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.rate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(w.rate*bytesPerFrame))
	binary.LittleEndian.PutUint16(header[32:34], uint16(bytesPerFrame))
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.bitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // patched on close

	_, err := w.w.Write(header)
	return err
}

// WriteSamples encodes and writes interleaved integer samples at the
// writer's bit depth.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	bytesPerSample := w.bitDepth / 8
	needed := len(samples) * bytesPerSample
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}

	buf := w.byteBuf[:needed]
	switch w.bitDepth {
	case 24:
		for i, s := range samples {
			buf[i*3] = byte(s)
			buf[i*3+1] = byte(s >> 8)
			buf[i*3+2] = byte(s >> 16)
		}
	case 32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(s)))
		}
	default:
		for i, s := range samples {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s)))
		}
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// Close flushes buffered data and patches the header with final sizes.
func (w *wavOutputWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	sizeBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeBytes, wavRiffHeaderSize+w.dataSize)
	if _, err := w.f.WriteAt(sizeBytes, wavFileSizeOffset); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	if _, err := w.f.WriteAt(sizeBytes, wavDataSizeOffset); err != nil {
		return err
	}
	return w.f.Close()
}
