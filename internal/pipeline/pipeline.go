package pipeline

import (
	"io"
	"sync"

	"github.com/tphakala/go-audio-upmixer/internal/chunker"
)

// BlockDecoder is the part of the decoder the pipeline drives: one call
// per fixed-size interleaved stereo block, returning the interleaved
// multichannel block (valid until the next call).
type BlockDecoder interface {
	Decode(block []float64) ([]float64, error)
	BlockSize() int
	Channels() int
}

// Runner pumps samples from a source through the decoder to a sink using
// one goroutine per stage. Stages communicate through queues; the decode
// stage polls a stop flag between blocks, so shutdown never interrupts a
// block mid-decode.
type Runner struct {
	dec BlockDecoder

	in  *Queue
	out *Queue

	stopOnce sync.Once
	stopped  chan struct{}
	wg       sync.WaitGroup
	errMu    sync.Mutex
	err      error
}

// ReadFunc fills dst with interleaved stereo samples and returns the
// number of values read. io.EOF ends the input stage.
type ReadFunc func(dst []float64) (int, error)

// WriteFunc consumes interleaved multichannel samples.
type WriteFunc func(block []float64) error

// NewRunner creates a runner around the decoder. The source and the sink
// are passed to Run.
func NewRunner(dec BlockDecoder) *Runner {
	blockValues := 2 * dec.BlockSize()
	return &Runner{
		dec:     dec,
		in:      NewQueue(4 * blockValues),
		out:     NewQueue(4 * dec.BlockSize() * dec.Channels()),
		stopped: make(chan struct{}),
	}
}

// Run processes the whole stream and blocks until the source is exhausted,
// an error occurs, or Stop is called. The final partial block, if any, is
// zero-padded so the decoder's latency tail drains into the sink.
func (r *Runner) Run(read ReadFunc, write WriteFunc) error {
	blockValues := 2 * r.dec.BlockSize()

	r.wg.Add(2)
	go r.readStage(read, blockValues)
	go r.decodeStage(blockValues)

	outValues := r.dec.BlockSize() * r.dec.Channels()
	for {
		block, ok := r.out.PopWait(outValues)
		if len(block) > 0 {
			if err := write(block); err != nil {
				r.fail(err)
				break
			}
		}
		if !ok {
			break
		}
	}

	r.wg.Wait()
	return r.err
}

// Stop requests shutdown. The decode stage finishes its current block.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopped) })
}

func (r *Runner) fail(err error) {
	r.errMu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.errMu.Unlock()
	r.Stop()
}

func (r *Runner) readStage(read ReadFunc, blockValues int) {
	defer r.wg.Done()
	defer r.in.Close()

	buf := make([]float64, blockValues)
	for {
		select {
		case <-r.stopped:
			return
		default:
		}

		n, err := read(buf)
		if n > 0 {
			r.in.Push(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				r.fail(err)
			}
			return
		}
	}
}

func (r *Runner) decodeStage(blockValues int) {
	defer r.wg.Done()
	defer r.out.Close()

	// The chunker regroups whatever the reader produced into exact decode
	// blocks, mirroring how the original streaming wrapper fed its core.
	rechunk := chunker.New(blockValues, func(block []float64) {
		out, err := r.dec.Decode(block)
		if err != nil {
			r.fail(err)
			return
		}
		r.out.Push(out)
	})

	for {
		chunk, ok := r.in.PopWait(blockValues)
		if len(chunk) > 0 {
			rechunk.Append(chunk)
		}
		if !ok {
			break
		}
		select {
		case <-r.stopped:
			return
		default:
		}
	}

	// Zero-pad the final partial block and push one silent block so the
	// N/2-frame latency tail reaches the sink.
	if rechunk.Buffered() > 0 {
		pad := make([]float64, blockValues-rechunk.Buffered())
		rechunk.Append(pad)
	}
	select {
	case <-r.stopped:
	default:
		silence := make([]float64, blockValues)
		rechunk.Append(silence)
	}
}
