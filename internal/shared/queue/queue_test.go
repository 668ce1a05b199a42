package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestQueue_Init verifies queue initialization.
func TestQueue_Init(t *testing.T) {
	var q Queue[uint64]
	q.Init(10)

	require.Equal(t, 10, len(q.buf))
	require.Equal(t, 0, q.Len())
}

// TestQueue_Init_MinSize verifies that Init enforces minimum size.
func TestQueue_Init_MinSize(t *testing.T) {
	var q Queue[uint64]
	q.Init(1)

	require.GreaterOrEqual(t, len(q.buf), 2)
	require.True(t, q.TryPush(1))
	require.False(t, q.TryPush(2))
}

// TestQueue_FIFOOrder verifies values drain in push order.
func TestQueue_FIFOOrder(t *testing.T) {
	var q Queue[string]
	q.Init(4)

	require.True(t, q.TryPush("a"))
	require.True(t, q.TryPush("b"))
	require.True(t, q.TryPush("c"))
	require.Equal(t, 3, q.Len())

	require.Equal(t, []string{"a", "b", "c"}, q.Drain(nil))
	require.Empty(t, q.Drain(nil))
}

// TestQueue_DropsWhenFull counts rejected pushes.
func TestQueue_DropsWhenFull(t *testing.T) {
	var q Queue[int]
	q.Init(3)

	require.True(t, q.TryPush(1))
	require.True(t, q.TryPush(2))
	require.False(t, q.TryPush(3))
	require.False(t, q.TryPush(4))
	require.Equal(t, int64(2), q.Dropped())
}

// TestQueue_Drain empties the queue into the destination slice.
func TestQueue_Drain(t *testing.T) {
	var q Queue[int]
	q.Init(8)
	for i := 0; i < 5; i++ {
		require.True(t, q.TryPush(i))
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, q.Drain(nil))

	// wraps past the end of the ring
	for i := 5; i < 11; i++ {
		require.True(t, q.TryPush(i))
	}
	out := q.Drain([]int{-1})
	require.Equal(t, []int{-1, 5, 6, 7, 8, 9, 10}, out)
	require.Equal(t, 0, q.Len())
}

// TestQueue_Concurrent verifies thread-safety: every accepted push is drained once.
func TestQueue_Concurrent(t *testing.T) {
	var q Queue[int]
	q.Init(1024)

	const numGoroutines, opsPerGoroutine = 8, 100
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(base int) {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				q.TryPush(base*opsPerGoroutine + j)
			}
		}(i)
	}
	wg.Wait()

	out := q.Drain(nil)
	require.Len(t, out, numGoroutines*opsPerGoroutine)
	require.Equal(t, int64(0), q.Dropped())
}
