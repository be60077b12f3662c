package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(chunks *[][]int) func([]int) {
	return func(chunk []int) {
		cp := make([]int, len(chunk))
		copy(cp, chunk)
		*chunks = append(*chunks, cp)
	}
}

func seq(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

func TestExactChunks(t *testing.T) {
	var chunks [][]int
	c := New(4, collect(&chunks))

	c.Append(seq(0, 8))
	require.Len(t, chunks, 2)
	assert.Equal(t, seq(0, 4), chunks[0])
	assert.Equal(t, seq(4, 4), chunks[1])
	assert.Equal(t, 0, c.Buffered())
}

func TestIrregularAppends(t *testing.T) {
	var chunks [][]int
	c := New(5, collect(&chunks))

	// Feed 1, 2, 3, ... values at a time; chunk boundaries must not care.
	next := 0
	for _, n := range []int{1, 2, 3, 4, 5, 6, 7} {
		c.Append(seq(next, n))
		next += n
	}

	require.Len(t, chunks, 5)
	for i, chunk := range chunks {
		assert.Equal(t, seq(i*5, 5), chunk, "chunk %d out of order", i)
	}
	assert.Equal(t, next-5*5, c.Buffered())
	assert.Less(t, c.Buffered(), c.ChunkLen(), "buffer must stay under one chunk")
}

func TestSingleValueAppends(t *testing.T) {
	var chunks [][]int
	c := New(3, collect(&chunks))

	for i := 0; i < 10; i++ {
		c.Append([]int{i})
	}
	require.Len(t, chunks, 3)
	assert.Equal(t, []int{0, 1, 2}, chunks[0])
	assert.Equal(t, []int{9}, append([]int(nil), c.buffer...))
}

func TestFlushDropsPartial(t *testing.T) {
	var chunks [][]int
	c := New(4, collect(&chunks))

	c.Append(seq(0, 3))
	assert.Equal(t, 3, c.Buffered())

	c.Flush()
	assert.Equal(t, 0, c.Buffered())

	// A fresh chunk starts from scratch after the flush.
	c.Append(seq(100, 4))
	require.Len(t, chunks, 1)
	assert.Equal(t, seq(100, 4), chunks[0])
}

func TestEmptyAppend(t *testing.T) {
	var chunks [][]int
	c := New(4, collect(&chunks))
	c.Append(nil)
	c.Append([]int{})
	assert.Empty(t, chunks)
	assert.Equal(t, 0, c.Buffered())
}

func TestLargeAppendAfterPartial(t *testing.T) {
	var chunks [][]int
	c := New(4, collect(&chunks))

	c.Append(seq(0, 2))
	c.Append(seq(2, 13))

	require.Len(t, chunks, 3)
	assert.Equal(t, seq(0, 4), chunks[0])
	assert.Equal(t, seq(4, 4), chunks[1])
	assert.Equal(t, seq(8, 4), chunks[2])
	assert.Equal(t, 3, c.Buffered())
}
