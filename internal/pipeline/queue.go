// Package pipeline provides the producer/consumer plumbing that wraps the
// decoder in streaming applications: a thread-safe sample queue and a
// three-stage runner (read, decode, write) built on top of it.
//
// The decoder itself is single-threaded; the pipeline keeps exactly one
// goroutine talking to it and moves samples in and out through queues.
package pipeline

import "sync"

// Queue is a growable FIFO of samples safe for concurrent producers and
// consumers. Pops can be blocking or polling; Close releases blocked
// consumers once the queue drains.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond

	data     []float64
	readPos  int
	writePos int
	size     int
	closed   bool
}

// NewQueue creates a queue with the given initial capacity. The queue
// grows as needed; capacity is only a pre-allocation hint.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	q := &Queue{data: make([]float64, capacity)}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push appends samples to the queue.
func (q *Queue) Push(samples []float64) {
	if len(samples) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size+len(samples) > len(q.data) {
		q.grow(q.size + len(samples))
	}
	for _, s := range samples {
		q.data[q.writePos] = s
		q.writePos = (q.writePos + 1) % len(q.data)
	}
	q.size += len(samples)
	q.notEmpty.Broadcast()
}

// Pop removes up to n samples without blocking. It returns fewer (or none)
// when less data is available.
func (q *Queue) Pop(n int) []float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked(n)
}

// PopWait blocks until at least n samples are available, then removes
// exactly n. When the queue is closed before that, it returns whatever
// remains (possibly nil) and false.
func (q *Queue) PopWait(n int) ([]float64, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size < n && !q.closed {
		q.notEmpty.Wait()
	}
	if q.size >= n {
		return q.popLocked(n), true
	}
	return q.popLocked(q.size), false
}

// PopAll removes and returns everything currently queued.
func (q *Queue) PopAll() []float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked(q.size)
}

// Len returns the number of queued samples.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Clear drops all queued samples.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.readPos, q.writePos, q.size = 0, 0, 0
}

// Close marks the queue as finished. Blocked PopWait calls return once the
// remaining data is drained. Pushing after Close is not allowed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
}

func (q *Queue) popLocked(n int) []float64 {
	if n > q.size {
		n = q.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = q.data[q.readPos]
		q.readPos = (q.readPos + 1) % len(q.data)
	}
	q.size -= n
	return out
}

// grow doubles the backing array until it holds at least minCapacity,
// compacting the wrapped region.
func (q *Queue) grow(minCapacity int) {
	capacity := len(q.data)
	for capacity < minCapacity {
		capacity *= 2
	}
	data := make([]float64, capacity)
	if q.size > 0 {
		if q.readPos < q.writePos {
			copy(data, q.data[q.readPos:q.writePos])
		} else {
			n := copy(data, q.data[q.readPos:])
			copy(data[n:], q.data[:q.writePos])
		}
	}
	q.data = data
	q.readPos = 0
	q.writePos = q.size
}
