package metrics

import "sync/atomic"

// window holds the accumulators of one evaluation window. It is never zeroed
// in place: a reset swaps in a fresh window, so readers always see one
// consistent generation.
type window struct {
	accesses atomic.Uint64
	hits     atomic.Uint64
	misses   atomic.Uint64

	oneTime    atomic.Uint64
	multi      atomic.Uint64
	sequential atomic.Uint64
	random     atomic.Uint64

	hitsSum      atomic.Uint64 // access counts of evicted items
	evictedItems atomic.Uint64 // tracked items evicted
	reuseSum     atomic.Uint64
	reuseCount   atomic.Uint64
	lifetimeSum  atomic.Uint64
	idleSum      atomic.Uint64

	dirty     atomic.Uint64
	evictions atomic.Uint64 // all evictions, tracked or not
}

func percent(num, den uint64) uint64 {
	if den == 0 {
		return 0
	}
	return num * 100 / den
}

func average(sum, count uint64) uint64 {
	if count == 0 {
		return 0
	}
	return sum / count
}

func (w *window) hitRate() uint64 { return percent(w.hits.Load(), w.accesses.Load()) }

func (w *window) oneTimeRatio() uint64 {
	one := w.oneTime.Load()
	return percent(one, one+w.multi.Load())
}

func (w *window) sequentialRatio() uint64 {
	seq := w.sequential.Load()
	return percent(seq, seq+w.random.Load())
}

func (w *window) avgHitsPerItem() uint64 { return average(w.hitsSum.Load(), w.evictedItems.Load()) }
func (w *window) avgReuseDistance() uint64 {
	return average(w.reuseSum.Load(), w.reuseCount.Load())
}
func (w *window) avgLifetime() uint64 { return average(w.lifetimeSum.Load(), w.evictedItems.Load()) }
func (w *window) avgIdleTime() uint64 { return average(w.idleSum.Load(), w.evictedItems.Load()) }
func (w *window) dirtyRatio() uint64  { return percent(w.dirty.Load(), w.evictions.Load()) }
