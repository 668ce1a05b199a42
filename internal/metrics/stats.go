package metrics

import (
	"sync/atomic"

	"github.com/Borislavv/go-ash-adaptive/model"
	"golang.org/x/sys/cpu"
)

type policyCounters struct {
	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	timeStarted atomic.Uint64
	timeActive  atomic.Uint64
	_           cpu.CacheLinePad
}

// PolicyStats keeps lifetime counters per policy. They survive window resets
// and serve as the fallback ranking when no heuristic matches.
// Out-of-range policies are ignored by every method.
type PolicyStats struct {
	byPolicy [model.NumPolicies]policyCounters
}

func NewPolicyStats() *PolicyStats { return &PolicyStats{} }

func (s *PolicyStats) at(p model.Policy) *policyCounters {
	if !p.Valid() {
		return nil
	}
	return &s.byPolicy[p]
}

func (s *PolicyStats) RecordHit(p model.Policy) {
	if c := s.at(p); c != nil {
		c.hits.Add(1)
	}
}

func (s *PolicyStats) RecordMiss(p model.Policy) {
	if c := s.at(p); c != nil {
		c.misses.Add(1)
	}
}

func (s *PolicyStats) RecordEviction(p model.Policy) {
	if c := s.at(p); c != nil {
		c.evictions.Add(1)
	}
}

// Activate marks p as running since now.
func (s *PolicyStats) Activate(p model.Policy, now uint64) {
	if c := s.at(p); c != nil {
		c.timeStarted.Store(now)
	}
}

// Deactivate adds the time p ran since its last activation.
func (s *PolicyStats) Deactivate(p model.Policy, now uint64) {
	if c := s.at(p); c != nil {
		if started := c.timeStarted.Load(); now > started {
			c.timeActive.Add(now - started)
		}
	}
}

func (s *PolicyStats) Get(p model.Policy) model.PolicyStats {
	c := s.at(p)
	if c == nil {
		return model.PolicyStats{}
	}
	return model.PolicyStats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		TimeStarted: c.timeStarted.Load(),
		TimeActive:  c.timeActive.Load(),
	}
}

func (s *PolicyStats) HitRate(p model.Policy) uint64 { return s.Get(p).HitRate() }

func (s *PolicyStats) Snapshot() (out [model.NumPolicies]model.PolicyStats) {
	for _, p := range model.Policies() {
		out[p] = s.Get(p)
	}
	return out
}

// Restore adds previously persisted counters on top of the current ones.
// Activation times are logical and belong to the previous run, so they are not restored.
func (s *PolicyStats) Restore(in [model.NumPolicies]model.PolicyStats) {
	for i := range in {
		c := &s.byPolicy[i]
		c.hits.Add(in[i].Hits)
		c.misses.Add(in[i].Misses)
		c.evictions.Add(in[i].Evictions)
		c.timeActive.Add(in[i].TimeActive)
	}
}

// Best returns the policy with the highest all-time hit rate; ties go to the lowest index.
func Best(stats [model.NumPolicies]model.PolicyStats) model.Policy {
	best, bestRate := model.PolicyMRU, uint64(0)
	for _, p := range model.Policies() {
		if rate := stats[p].HitRate(); rate > bestRate {
			best, bestRate = p, rate
		}
	}
	return best
}
