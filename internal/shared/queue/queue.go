package queue

import (
	"sync"
	"sync/atomic"
)

// Queue is a bounded FIFO ring. Producers never wait: a push into a full
// queue is dropped and counted.
type Queue[T any] struct {
	mu         sync.Mutex
	buf        []T
	head, tail int
	dropped    atomic.Int64
}

// Init allocates the ring. One slot is kept free to tell full from empty,
// so a queue of size n holds n-1 values.
func (q *Queue[T]) Init(size int) {
	if size < 2 {
		size = 2
	}
	q.buf = make([]T, size)
	q.head, q.tail = 0, 0
}

func (q *Queue[T]) TryPush(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	next := (q.head + 1) % len(q.buf)
	if next == q.tail { // full
		q.dropped.Add(1)
		return false
	}
	q.buf[q.head] = v
	q.head = next
	return true
}

// Drain appends every queued value to dst in FIFO order.
func (q *Queue[T]) Drain(dst []T) []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	for q.head != q.tail {
		dst = append(dst, q.buf[q.tail])
		q.buf[q.tail] = zero
		q.tail = (q.tail + 1) % len(q.buf)
	}
	return dst
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return (q.head - q.tail + len(q.buf)) % len(q.buf)
}

// Dropped returns how many pushes were rejected because the queue was full.
func (q *Queue[T]) Dropped() int64 { return q.dropped.Load() }
