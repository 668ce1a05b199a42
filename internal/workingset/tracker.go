// Package workingset estimates the working-set size as the number of distinct
// identities seen recently.
//
// The tracker holds stream (file) identities when the host reports them, so
// for workloads mixing very small and very large files it over- or
// under-estimates the per-page working set. That is a known limitation of the
// estimate, not something callers should correct for.
package workingset

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type Tracker struct {
	set *lru.Cache[uint64, struct{}]
}

// New builds a tracker remembering at most capacity identities; when full the
// least recently observed identity is dropped.
func New(capacity int) (*Tracker, error) {
	set, err := lru.New[uint64, struct{}](capacity)
	if err != nil {
		return nil, fmt.Errorf("working set of capacity %d: %w", capacity, err)
	}
	return &Tracker{set: set}, nil
}

// Observe marks id as fresh.
func (t *Tracker) Observe(id uint64) { t.set.Add(id, struct{}{}) }

func (t *Tracker) Contains(id uint64) bool { return t.set.Contains(id) }

// Size approximates the current working-set size.
func (t *Tracker) Size() uint64 { return uint64(t.set.Len()) }

// Ratio returns Size()*100/capacityEstimate, 0 when the estimate is 0.
func (t *Tracker) Ratio(capacityEstimate uint64) uint64 {
	if capacityEstimate == 0 {
		return 0
	}
	return t.Size() * 100 / capacityEstimate
}

func (t *Tracker) Reset() { t.set.Purge() }
