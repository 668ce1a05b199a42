package clock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLogical_TickAdvances verifies Tick returns strictly increasing values.
func TestLogical_TickAdvances(t *testing.T) {
	var c Logical
	require.Equal(t, uint64(0), c.Now())
	require.Equal(t, uint64(1), c.Tick())
	require.Equal(t, uint64(2), c.Tick())
	require.Equal(t, uint64(2), c.Now())
}

// TestSince clamps future timestamps to zero.
func TestSince(t *testing.T) {
	var c Logical
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	require.Equal(t, uint64(7), Since(c.Now(), 3))
	require.Equal(t, uint64(0), Since(c.Now(), 100))
	require.Equal(t, uint64(0), Since(c.Now(), c.Now()))
}

// TestLogical_ConcurrentTicksAreUnique verifies every concurrent Tick gets its own value.
func TestLogical_ConcurrentTicksAreUnique(t *testing.T) {
	var (
		c  Logical
		mu sync.Mutex
		wg sync.WaitGroup
	)
	const numGoroutines, ticksPerGoroutine = 8, 500
	seen := make(map[uint64]struct{}, numGoroutines*ticksPerGoroutine)

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			local := make([]uint64, 0, ticksPerGoroutine)
			for j := 0; j < ticksPerGoroutine; j++ {
				local = append(local, c.Tick())
			}
			mu.Lock()
			for _, v := range local {
				seen[v] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, numGoroutines*ticksPerGoroutine)
	require.Equal(t, uint64(numGoroutines*ticksPerGoroutine), c.Now())
}
