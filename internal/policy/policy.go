// Package policy implements the eviction policies the adaptive controller
// switches between. All of them operate on one shared List.
package policy

import (
	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/internal/meta"
	"github.com/Borislavv/go-ash-adaptive/model"
)

// Validator is the host's consistency check for an eviction candidate
// (e.g. "page is up to date and still on the LRU"). Invalid candidates are skipped.
type Validator func(id uint64) bool

// AlwaysValid accepts every candidate.
func AlwaysValid(uint64) bool { return true }

type Policy interface {
	ID() model.Policy

	// Init sets the policy-private fields of a new item before it is stored.
	Init(item *model.Item)

	// Admit links a stored item into the list.
	Admit(id uint64)

	// Touch updates the policy-private fields of item on a hit. It runs inside
	// the metadata write-back, before LastAccessAt is advanced to now, and must
	// not take the list lock.
	Touch(item *model.Item, now uint64)

	// Reorder repositions id in the list after a hit.
	Reorder(id uint64)

	// Forget releases bookkeeping for an item admitted under this policy.
	Forget(id uint64, item model.Item)

	// Victims returns up to limit eviction candidates. Victims stay linked until
	// the host reports their eviction.
	Victims(limit int) []uint64
}

// Set holds one instance of every policy, indexed by model.Policy.
type Set [model.NumPolicies]Policy

// NewSet builds all policies over the shared list and metadata store.
func NewSet(cfg config.PolicyCfg, list *List, store *meta.Store, valid Validator) Set {
	if valid == nil {
		valid = AlwaysValid
	}
	b := base{list: list, store: store, valid: valid}
	return Set{
		model.PolicyMRU:       &MRU{base: b, skipWindow: cfg.MRUSkipWindow},
		model.PolicyFIFO:      &FIFO{base: b},
		model.PolicyLRU:       &LRU{base: b},
		model.PolicyS3FIFO:    &S3FIFO{base: b, smallThreshold: cfg.S3FIFOSmallThreshold},
		model.PolicyLHDSimple: &LHDSimple{base: b},
	}
}

// Get returns the policy for p, false for an unknown id.
func (s *Set) Get(p model.Policy) (Policy, bool) {
	if !p.Valid() || s[p] == nil {
		return nil, false
	}
	return s[p], true
}

type base struct {
	list  *List
	store *meta.Store
	valid Validator
}

func (base) Init(*model.Item)          {}
func (base) Touch(*model.Item, uint64) {}
func (base) Reorder(uint64)            {}
func (base) Forget(uint64, model.Item) {}

// oldestValid evicts the first valid candidates from the front.
func (b base) oldestValid(limit int) []uint64 {
	if limit <= 0 {
		return nil
	}
	var n int
	return b.list.Scan(func(_ int, id uint64) Verdict {
		if n >= limit {
			return Stop
		}
		if !b.valid(id) {
			return Continue
		}
		n++
		return Evict
	})
}
