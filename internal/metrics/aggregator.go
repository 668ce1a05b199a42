// Package metrics derives workload-characterising ratios from admit, touch and
// evict events. Every counter is an atomic so the hot path never blocks.
package metrics

import (
	"sync/atomic"

	"github.com/Borislavv/go-ash-adaptive/internal/shared/clock"
	"github.com/Borislavv/go-ash-adaptive/model"
)

// Pattern classifies an admit for the sequential ratio.
type Pattern uint8

const (
	// PatternUnknown admits count as misses only: the stream had no previous offset.
	PatternUnknown Pattern = iota
	PatternSequential
	PatternRandom
)

// PatternOf maps a host-supplied hint onto a pattern.
func PatternOf(sequential bool) Pattern {
	if sequential {
		return PatternSequential
	}
	return PatternRandom
}

type Aggregator struct {
	cur atomic.Pointer[window]
}

func NewAggregator() *Aggregator {
	a := &Aggregator{}
	a.cur.Store(&window{})
	return a
}

func (a *Aggregator) w() *window { return a.cur.Load() }

// RecordAdmit counts a miss and classifies its access pattern.
func (a *Aggregator) RecordAdmit(p Pattern) {
	w := a.w()
	w.accesses.Add(1)
	w.misses.Add(1)
	switch p {
	case PatternSequential:
		w.sequential.Add(1)
	case PatternRandom:
		w.random.Add(1)
	}
}

// RecordTouch counts a hit. The reuse distance is only accumulated when the
// item had a previous touch to measure from.
func (a *Aggregator) RecordTouch(reuseDistance uint64, measured bool) {
	w := a.w()
	w.accesses.Add(1)
	w.hits.Add(1)
	if measured {
		w.reuseSum.Add(reuseDistance)
		w.reuseCount.Add(1)
	}
}

// RecordEvict accounts a tracked item leaving the cache at logical time now.
func (a *Aggregator) RecordEvict(item model.Item, now uint64, dirty bool) {
	w := a.w()
	if item.IsOneTime() {
		w.oneTime.Add(1)
	} else {
		w.multi.Add(1)
	}
	w.hitsSum.Add(item.AccessCount)
	w.evictedItems.Add(1)
	w.lifetimeSum.Add(clock.Since(now, item.AddedAt))
	w.idleSum.Add(clock.Since(now, item.LastAccessAt))
	a.countEviction(w, dirty)
}

// RecordUntrackedEvict accounts an eviction of an item with no metadata.
func (a *Aggregator) RecordUntrackedEvict(dirty bool) { a.countEviction(a.w(), dirty) }

func (a *Aggregator) countEviction(w *window, dirty bool) {
	if dirty {
		w.dirty.Add(1)
	}
	w.evictions.Add(1)
}

// ResetWindow replaces every windowed accumulator at once.
func (a *Aggregator) ResetWindow() { a.cur.Store(&window{}) }

func (a *Aggregator) TotalAccesses() uint64         { return a.w().accesses.Load() }
func (a *Aggregator) HitRate() uint64               { return a.w().hitRate() }
func (a *Aggregator) OneTimeRatio() uint64          { return a.w().oneTimeRatio() }
func (a *Aggregator) SequentialRatio() uint64       { return a.w().sequentialRatio() }
func (a *Aggregator) AvgHitsPerEvictedItem() uint64 { return a.w().avgHitsPerItem() }
func (a *Aggregator) AvgReuseDistance() uint64      { return a.w().avgReuseDistance() }
func (a *Aggregator) AvgLifetime() uint64           { return a.w().avgLifetime() }
func (a *Aggregator) AvgIdleTime() uint64           { return a.w().avgIdleTime() }
func (a *Aggregator) DirtyRatio() uint64            { return a.w().dirtyRatio() }

// Fill copies the window into s. All values come from the same window generation.
func (a *Aggregator) Fill(s *model.Snapshot) {
	w := a.w()
	s.TotalAccesses = w.accesses.Load()
	s.Hits = w.hits.Load()
	s.Misses = w.misses.Load()
	s.HitRate = w.hitRate()
	s.OneTimeRatio = w.oneTimeRatio()
	s.SequentialRatio = w.sequentialRatio()
	s.AvgHitsPerItem = w.avgHitsPerItem()
	s.AvgReuseDistance = w.avgReuseDistance()
	s.AvgLifetime = w.avgLifetime()
	s.AvgIdleTime = w.avgIdleTime()
	s.DirtyRatio = w.dirtyRatio()
	s.Evictions = w.evictions.Load()
}
