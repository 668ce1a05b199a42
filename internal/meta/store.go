// Package meta implements the item metadata store: a sharded map from an
// opaque 64-bit identity to its tracking record. Hot paths keep critical
// sections short and the global length is an atomic, readable without locks.
package meta

import (
	"sync"
	"sync/atomic"

	"github.com/Borislavv/go-ash-adaptive/internal/shared/hash"
	"github.com/Borislavv/go-ash-adaptive/model"
	"golang.org/x/sys/cpu"
)

// Tunables.
const (
	NumOfShards = 256
	shardMask   = NumOfShards - 1
)

type shard struct {
	sync.RWMutex
	items map[uint64]model.Item
	_     cpu.CacheLinePad
}

// Store is bounded by capacity: inserting a new identity into a full store fails
// instead of growing. Replacing an existing identity always succeeds.
type Store struct {
	capacity int64
	len      atomic.Int64
	dropped  atomic.Int64
	shards   [NumOfShards]shard
}

// New builds a store holding at most capacity items. capacity <= 0 means unbounded.
func New(capacity int64) *Store {
	s := &Store{capacity: capacity}
	for i := range s.shards {
		s.shards[i].items = make(map[uint64]model.Item)
	}
	return s
}

func (s *Store) shard(id uint64) *shard { return &s.shards[hash.Uint64(id)&shardMask] }

// Put stores item under id and reports whether it was stored.
func (s *Store) Put(id uint64, item model.Item) bool {
	_, _, ok := s.Upsert(id, item)
	return ok
}

// Upsert stores item under id and returns the record it replaced, if any.
// ok is false when id is new and the store is at capacity.
func (s *Store) Upsert(id uint64, item model.Item) (prev model.Item, replaced, ok bool) {
	sh := s.shard(id)
	sh.Lock()
	defer sh.Unlock()

	if prev, replaced = sh.items[id]; replaced {
		sh.items[id] = item
		return prev, true, true
	}
	if !s.reserve() {
		s.dropped.Add(1)
		return model.Item{}, false, false
	}
	sh.items[id] = item
	return model.Item{}, false, true
}

// Get returns a copy of the record.
func (s *Store) Get(id uint64) (model.Item, bool) {
	sh := s.shard(id)
	sh.RLock()
	item, ok := sh.items[id]
	sh.RUnlock()
	return item, ok
}

// Update copies the record, lets fn mutate the copy and writes it back as one
// replace under the shard lock. It returns false for untracked ids; fn is not called.
// fn must not call back into the store.
func (s *Store) Update(id uint64, fn func(item *model.Item)) bool {
	sh := s.shard(id)
	sh.Lock()
	defer sh.Unlock()

	item, ok := sh.items[id]
	if !ok {
		return false
	}
	fn(&item)
	sh.items[id] = item
	return true
}

// Remove deletes the record and returns it.
func (s *Store) Remove(id uint64) (model.Item, bool) {
	sh := s.shard(id)
	sh.Lock()
	item, ok := sh.items[id]
	if ok {
		delete(sh.items, id)
		s.len.Add(-1)
	}
	sh.Unlock()
	return item, ok
}

// Clear wipes all shards.
func (s *Store) Clear() {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.Lock()
		s.len.Add(-int64(len(sh.items)))
		sh.items = make(map[uint64]model.Item)
		sh.Unlock()
	}
}

// Walk iterates records under each shard's read lock until fn returns false.
func (s *Store) Walk(fn func(id uint64, item model.Item) bool) {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.RLock()
		for id, item := range sh.items {
			if !fn(id, item) {
				sh.RUnlock()
				return
			}
		}
		sh.RUnlock()
	}
}

func (s *Store) Len() int64      { return s.len.Load() }
func (s *Store) Capacity() int64 { return s.capacity }

// Dropped returns how many inserts were refused because the store was full.
func (s *Store) Dropped() int64 { return s.dropped.Load() }

func (s *Store) reserve() bool {
	if s.capacity <= 0 {
		s.len.Add(1)
		return true
	}
	for {
		cur := s.len.Load()
		if cur >= s.capacity {
			return false
		}
		if s.len.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}
