// Package chunker regroups arbitrarily sized sample slices into fixed-size
// chunks for consumers that only accept whole blocks, such as the decoder.
package chunker

// Chunker accumulates appended values and invokes the handler once for
// every complete chunk, in input order. The handler is never re-entered:
// it runs synchronously inside Append. At most chunkLen-1 values are
// retained between calls.
type Chunker[T any] struct {
	handle   func([]T)
	chunkLen int
	buffer   []T
}

// New creates a chunker that feeds handler with chunks of exactly
// chunkLen values. chunkLen must be positive.
func New[T any](chunkLen int, handler func([]T)) *Chunker[T] {
	return &Chunker[T]{
		handle:   handler,
		chunkLen: chunkLen,
		buffer:   make([]T, 0, chunkLen),
	}
}

// ChunkLen returns the configured chunk length.
func (c *Chunker[T]) ChunkLen() int { return c.chunkLen }

// Buffered returns the number of values held back waiting for a complete
// chunk.
func (c *Chunker[T]) Buffered() int { return len(c.buffer) }

// Flush drops any incomplete chunk.
func (c *Chunker[T]) Flush() { c.buffer = c.buffer[:0] }

// Append adds a block of values, dispatching every chunk that completes.
// The slices passed to the handler are only valid for the duration of the
// call.
func (c *Chunker[T]) Append(data []T) {
	pos := 0

	// Top up a partial chunk from a previous call first.
	if len(c.buffer) > 0 {
		take := min(len(data), c.chunkLen-len(c.buffer))
		c.buffer = append(c.buffer, data[:take]...)
		pos = take
		if len(c.buffer) == c.chunkLen {
			c.handle(c.buffer)
			c.buffer = c.buffer[:0]
		}
	}
	if len(c.buffer) > 0 {
		return
	}

	// Dispatch whole chunks straight from the input.
	for len(data)-pos >= c.chunkLen {
		c.handle(data[pos : pos+c.chunkLen])
		pos += c.chunkLen
	}

	// Keep the remainder.
	if pos < len(data) {
		c.buffer = append(c.buffer, data[pos:]...)
	}
}
