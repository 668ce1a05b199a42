// Package controller routes cache events to the metadata store, the metrics
// and the active eviction policy, and switches policies when the workload changes.
package controller

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/internal/meta"
	"github.com/Borislavv/go-ash-adaptive/internal/metrics"
	"github.com/Borislavv/go-ash-adaptive/internal/policy"
	logical "github.com/Borislavv/go-ash-adaptive/internal/shared/clock"
	"github.com/Borislavv/go-ash-adaptive/internal/shared/queue"
	"github.com/Borislavv/go-ash-adaptive/internal/workingset"
	"github.com/Borislavv/go-ash-adaptive/model"
	"github.com/VividCortex/ewma"
	"github.com/benbjohnson/clock"
)

type Coordinator struct {
	cfg    *config.AdaptiveCfg
	logger *slog.Logger
	clock  clock.Clock
	ticks  logical.Logical

	store    *meta.Store
	ws       *workingset.Tracker
	streams  *metrics.Streams
	agg      *metrics.Aggregator
	stats    *metrics.PolicyStats
	list     *policy.List
	policies policy.Set
	valid    policy.Validator

	observers observers
	events    queue.Queue[model.SwitchEvent]
	counters  *coordinatorCounters

	current      atomic.Uint32
	lastSwitchAt atomic.Uint64
	switchCount  atomic.Uint64
	nextCheckAt  atomic.Uint64

	switchMu sync.Mutex

	smoothMu sync.Mutex
	smoothed ewma.MovingAverage
}

func New(cfg *config.Engine, logger *slog.Logger, opts ...Option) (*Coordinator, error) {
	ws, err := workingset.New(cfg.Tracking.WorkingSetCapacity)
	if err != nil {
		return nil, fmt.Errorf("init working set tracker: %w", err)
	}
	streams, err := metrics.NewStreams(cfg.Tracking.StreamCapacity)
	if err != nil {
		return nil, fmt.Errorf("init stream detector: %w", err)
	}

	c := &Coordinator{
		cfg:      &cfg.Adaptive,
		logger:   logger,
		clock:    clock.New(),
		store:    meta.New(cfg.Tracking.MetadataCapacity),
		ws:       ws,
		streams:  streams,
		agg:      metrics.NewAggregator(),
		stats:    metrics.NewPolicyStats(),
		list:     policy.NewList(),
		counters: newCoordinatorCounters(),
		smoothed: ewma.NewMovingAverage(cfg.Adaptive.EWMAAge),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.policies = policy.NewSet(cfg.Policy, c.list, c.store, c.valid)
	c.events.Init(cfg.Adaptive.EventsBuffer + 1)
	c.nextCheckAt.Store(cfg.Adaptive.CheckInterval)

	initial := cfg.Policy.Initial
	if !initial.Valid() {
		logger.Warn("unknown initial policy, falling back", "policy", initial.String(), "fallback", model.PolicyMRU.String())
		initial = model.PolicyMRU
	}
	c.current.Store(uint32(initial))
	c.stats.Activate(initial, 0)

	return c, nil
}

// Policy returns the active policy.
func (c *Coordinator) Policy() model.Policy { return model.Policy(c.current.Load()) }

func (c *Coordinator) active() (model.Policy, policy.Policy) {
	cur := c.Policy()
	pol, _ := c.policies.Get(cur)
	return cur, pol
}

// OnAdmit handles an item entering the cache. sequential is the host's own
// classification of the access.
func (c *Coordinator) OnAdmit(id uint64, sequential bool) {
	c.ws.Observe(id)
	c.admit(id, metrics.PatternOf(sequential))
}

// OnAdmitAt handles an item entering the cache at offset of stream (e.g. page
// index within a file). The access is sequential when it directly follows the
// previous admit of the same stream.
func (c *Coordinator) OnAdmitAt(id, stream, offset uint64) {
	c.ws.Observe(stream)
	c.admit(id, c.streams.Classify(stream, offset))
}

func (c *Coordinator) admit(id uint64, pattern metrics.Pattern) {
	cur, pol := c.active()
	c.agg.RecordAdmit(pattern)
	c.stats.RecordMiss(cur)

	item := model.NewItem(c.ticks.Now(), cur)
	pol.Init(&item)

	prev, replaced, ok := c.store.Upsert(id, item)
	switch {
	case !ok:
		c.counters.droppedMetadata.Add(1)
		c.logger.Debug("metadata store is full, item is not tracked",
			"id", id, "capacity", c.store.Capacity(), "dropped", c.store.Dropped())
	case replaced:
		if owner, found := c.policies.Get(prev.Tag); found {
			owner.Forget(id, prev)
		}
	}
	if ok {
		c.link(id, pol)
	}

	c.counters.admits.Add(1)
	c.tick()
}

// link adds a stored item to the list. An OnEvict that removed the record
// before the node was linked would leave the node behind, so it is unlinked again.
func (c *Coordinator) link(id uint64, pol policy.Policy) {
	pol.Admit(id)
	if _, tracked := c.store.Get(id); !tracked {
		c.list.Remove(id)
	}
}

// OnTouch handles a hit. Untracked ids are ignored.
func (c *Coordinator) OnTouch(id uint64) {
	cur, pol := c.active()
	now := c.ticks.Now()

	var (
		reuse    uint64
		measured bool
	)
	tracked := c.store.Update(id, func(it *model.Item) {
		if it.AccessCount > 0 {
			measured = true
			reuse = logical.Since(now, it.LastAccessAt)
		}
		pol.Touch(it, now)
		it.LastAccessAt = now
		it.AccessCount++
	})
	if !tracked {
		c.counters.untrackedTouches.Add(1)
		return
	}
	pol.Reorder(id)

	c.agg.RecordTouch(reuse, measured)
	c.stats.RecordHit(cur)
	c.counters.touches.Add(1)
	c.tick()
}

// OnEvict handles an item leaving the cache. Evictions of untracked ids are
// still counted so the dirty ratio covers every eviction.
func (c *Coordinator) OnEvict(id uint64, dirty bool) {
	item, tracked := c.store.Remove(id)
	c.list.Remove(id)
	c.stats.RecordEviction(c.Policy())

	if !tracked {
		c.agg.RecordUntrackedEvict(dirty)
		c.counters.untrackedEvictions.Add(1)
		return
	}

	c.agg.RecordEvict(item, c.ticks.Now(), dirty)
	if owner, found := c.policies.Get(item.Tag); found {
		owner.Forget(id, item)
	}
	c.counters.evictions.Add(1)
}

// SelectVictims returns up to limit items the host should evict. Once every
// check interval it first lets the controller reconsider the active policy.
func (c *Coordinator) SelectVictims(limit int) []uint64 {
	if c.checkDue() {
		c.MaybeSwitch()
	}
	_, pol := c.active()
	return pol.Victims(limit)
}

func (c *Coordinator) checkDue() bool {
	now := c.ticks.Now()
	next := c.nextCheckAt.Load()
	return now >= next && c.nextCheckAt.CompareAndSwap(next, now+c.cfg.CheckInterval)
}

// MaybeSwitch evaluates the current window and switches policy when the window
// is large enough, the active policy has run long enough and its hit rate is
// below the threshold. A call made while another evaluation runs is skipped.
func (c *Coordinator) MaybeSwitch() bool {
	if !c.switchMu.TryLock() {
		c.counters.skippedChecks.Add(1)
		return false
	}
	defer c.switchMu.Unlock()
	c.counters.checks.Add(1)

	c.smooth(c.agg.HitRate())
	snap := c.Snapshot()

	if snap.TotalAccesses < c.cfg.MinSamples {
		return false
	}
	if logical.Since(snap.Timestamp, c.lastSwitchAt.Load()) < c.cfg.MinTimeInPolicy {
		return false
	}
	if snap.HitRate >= c.cfg.HitRateThreshold {
		return false
	}

	next, reason := Decide(snap, c.stats.Snapshot())
	old := snap.Policy
	if !next.Valid() || next == old {
		return false
	}
	c.switchTo(old, next, reason, snap)
	return true
}

func (c *Coordinator) switchTo(old, next model.Policy, reason model.Reason, snap model.Snapshot) {
	now := snap.Timestamp
	ev := model.SwitchEvent{
		Old:              old,
		New:              next,
		Reason:           reason,
		Timestamp:        now,
		At:               c.clock.Now(),
		HitRate:          snap.HitRate,
		TotalAccesses:    snap.TotalAccesses,
		OneTimeRatio:     snap.OneTimeRatio,
		SequentialRatio:  snap.SequentialRatio,
		AvgHitsPerItem:   snap.AvgHitsPerItem,
		AvgReuseDistance: snap.AvgReuseDistance,
		DirtyRatio:       snap.DirtyRatio,
		OldPolicyHitRate: c.stats.HitRate(old),
		WorkingSetSize:   snap.WorkingSetSize,
		WorkingSetRatio:  snap.WorkingSetRatio,
	}

	c.stats.Deactivate(old, now)
	c.stats.Activate(next, now)
	c.current.Store(uint32(next))
	c.agg.ResetWindow()
	c.lastSwitchAt.Store(now)
	c.switchCount.Add(1)

	c.events.TryPush(ev)
	c.logger.Info("policy switched",
		"from", old.String(),
		"to", next.String(),
		"reason", reason.String(),
		"hit_rate", snap.HitRate,
		"ws_ratio", snap.WorkingSetRatio,
	)
	c.observers.switched(ev)
}

// Decide runs the decision rules over the current window without switching.
func (c *Coordinator) Decide() (model.Policy, model.Reason) {
	return Decide(c.Snapshot(), c.stats.Snapshot())
}

// Snapshot returns the current window metrics and engine state.
func (c *Coordinator) Snapshot() model.Snapshot {
	s := model.Snapshot{
		Policy:          c.Policy(),
		Timestamp:       c.ticks.Now(),
		SmoothedHitRate: c.smoothedHitRate(),
		WorkingSetSize:  c.ws.Size(),
		WorkingSetRatio: c.ws.Ratio(c.cfg.CacheCapacityEstimate),
		TrackedItems:    uint64(c.store.Len()),
		SwitchCount:     c.switchCount.Load(),
	}
	c.agg.Fill(&s)
	return s
}

// PolicyStats returns the all-time per-policy counters.
func (c *Coordinator) PolicyStats() [model.NumPolicies]model.PolicyStats {
	return c.stats.Snapshot()
}

// DrainEvents appends buffered switch events to dst, oldest first.
func (c *Coordinator) DrainEvents(dst []model.SwitchEvent) []model.SwitchEvent {
	return c.events.Drain(dst)
}

func (c *Coordinator) Metrics() Metrics {
	m := c.counters.snapshot()
	m.Switches = int64(c.switchCount.Load())
	m.DroppedEvents = c.events.Dropped()
	return m
}

func (c *Coordinator) tick() {
	t := c.ticks.Tick()
	if c.cfg.DisableSnapshots || c.cfg.SnapshotEvery == 0 || t%c.cfg.SnapshotEvery != 0 {
		return
	}
	if len(c.observers) > 0 {
		c.observers.sampled(c.Snapshot())
	}
}

func (c *Coordinator) smooth(hitRate uint64) {
	c.smoothMu.Lock()
	c.smoothed.Add(float64(hitRate))
	c.smoothMu.Unlock()
}

func (c *Coordinator) smoothedHitRate() float64 {
	c.smoothMu.Lock()
	defer c.smoothMu.Unlock()
	return c.smoothed.Value()
}
