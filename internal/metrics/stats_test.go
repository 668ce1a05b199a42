package metrics

import (
	"sync"
	"testing"

	"github.com/Borislavv/go-ash-adaptive/model"
	"github.com/stretchr/testify/require"
)

// TestPolicyStats_Counters tracks hits, misses and evictions per policy.
func TestPolicyStats_Counters(t *testing.T) {
	s := NewPolicyStats()
	s.RecordHit(model.PolicyLRU)
	s.RecordHit(model.PolicyLRU)
	s.RecordHit(model.PolicyLRU)
	s.RecordMiss(model.PolicyLRU)
	s.RecordEviction(model.PolicyLRU)
	s.RecordMiss(model.PolicyFIFO)

	require.Equal(t, uint64(75), s.HitRate(model.PolicyLRU))
	require.Equal(t, uint64(0), s.HitRate(model.PolicyFIFO))
	require.Equal(t, uint64(1), s.Get(model.PolicyLRU).Evictions)
}

// TestPolicyStats_InvalidPolicyIgnored never panics on out-of-range policies.
func TestPolicyStats_InvalidPolicyIgnored(t *testing.T) {
	s := NewPolicyStats()
	bad := model.Policy(17)

	require.NotPanics(t, func() {
		s.RecordHit(bad)
		s.RecordMiss(bad)
		s.RecordEviction(bad)
		s.Activate(bad, 1)
		s.Deactivate(bad, 2)
	})
	require.Equal(t, model.PolicyStats{}, s.Get(bad))
}

// TestPolicyStats_TimeActiveAccumulates sums every activation period.
func TestPolicyStats_TimeActiveAccumulates(t *testing.T) {
	s := NewPolicyStats()
	s.Activate(model.PolicyS3FIFO, 100)
	s.Deactivate(model.PolicyS3FIFO, 150)
	s.Activate(model.PolicyS3FIFO, 400)
	s.Deactivate(model.PolicyS3FIFO, 410)

	require.Equal(t, uint64(60), s.Get(model.PolicyS3FIFO).TimeActive)
	require.Equal(t, uint64(400), s.Get(model.PolicyS3FIFO).TimeStarted)
}

// TestPolicyStats_Restore adds persisted counters.
func TestPolicyStats_Restore(t *testing.T) {
	s := NewPolicyStats()
	s.RecordHit(model.PolicyMRU)

	var in [model.NumPolicies]model.PolicyStats
	in[model.PolicyMRU] = model.PolicyStats{Hits: 9, Misses: 10, Evictions: 3, TimeStarted: 77, TimeActive: 5}
	s.Restore(in)

	got := s.Get(model.PolicyMRU)
	require.Equal(t, uint64(10), got.Hits)
	require.Equal(t, uint64(10), got.Misses)
	require.Equal(t, uint64(3), got.Evictions)
	require.Equal(t, uint64(5), got.TimeActive)
	require.Equal(t, uint64(0), got.TimeStarted)
}

// TestBest_PicksHighestHitRate with ties broken by lowest index.
func TestBest_PicksHighestHitRate(t *testing.T) {
	var stats [model.NumPolicies]model.PolicyStats
	require.Equal(t, model.PolicyMRU, Best(stats), "no samples: lowest index wins")

	stats[model.PolicyLRU] = model.PolicyStats{Hits: 40, Misses: 60}
	stats[model.PolicyLHDSimple] = model.PolicyStats{Hits: 40, Misses: 60}
	require.Equal(t, model.PolicyLRU, Best(stats))

	stats[model.PolicyS3FIFO] = model.PolicyStats{Hits: 41, Misses: 59}
	require.Equal(t, model.PolicyS3FIFO, Best(stats))
}

// TestPolicyStats_Concurrent verifies thread-safety.
func TestPolicyStats_Concurrent(t *testing.T) {
	s := NewPolicyStats()

	const numGoroutines, opsPerGoroutine = 10, 50
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				for _, p := range model.Policies() {
					s.RecordHit(p)
					s.RecordMiss(p)
					s.RecordEviction(p)
				}
			}
		}()
	}
	wg.Wait()

	for _, st := range s.Snapshot() {
		require.Equal(t, uint64(numGoroutines*opsPerGoroutine), st.Hits)
		require.Equal(t, uint64(numGoroutines*opsPerGoroutine), st.Misses)
		require.Equal(t, uint64(numGoroutines*opsPerGoroutine), st.Evictions)
	}
}
