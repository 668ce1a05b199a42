package policy

import (
	"sync/atomic"

	"github.com/Borislavv/go-ash-adaptive/model"
)

const maxFreq = 3

// S3FIFO splits the list into a small probationary segment (items admitted
// under S3-FIFO and not yet promoted) and a main segment (everything else).
// Both segments share the list; membership is the item's InMain flag.
type S3FIFO struct {
	base
	smallThreshold int64
	small          atomic.Int64
	main           atomic.Int64
}

func (p *S3FIFO) ID() model.Policy { return model.PolicyS3FIFO }

func (p *S3FIFO) Init(item *model.Item) {
	item.Freq = 0
	item.InMain = false
}

func (p *S3FIFO) Admit(id uint64) {
	p.list.PushBack(id)
	p.small.Add(1)
}

func (p *S3FIFO) Touch(item *model.Item, _ uint64) {
	if item.Freq < maxFreq {
		item.Freq++
	}
}

// Forget is called for items admitted under S3-FIFO, whichever policy is active.
func (p *S3FIFO) Forget(_ uint64, item model.Item) {
	if item.InMain {
		p.main.Add(-1)
	} else {
		p.small.Add(-1)
	}
}

func (p *S3FIFO) SmallLen() int64 { return p.small.Load() }
func (p *S3FIFO) MainLen() int64  { return p.main.Load() }

func (p *S3FIFO) Victims(limit int) []uint64 {
	if limit <= 0 {
		return nil
	}
	victims := p.scanSmall(limit)
	for pass := 0; pass <= maxFreq && len(victims) < limit; pass++ {
		var progressed bool
		if victims, progressed = p.scanMain(limit, victims); !progressed {
			break
		}
	}
	return victims
}

// scanSmall evicts unpopular small items while the small segment is at or above
// its threshold. Items hit more than once are promoted to main instead.
func (p *S3FIFO) scanSmall(limit int) []uint64 {
	remaining := p.small.Load()
	if remaining < p.smallThreshold {
		return nil
	}
	var n int
	return p.list.Scan(func(_ int, id uint64) Verdict {
		if n >= limit || remaining < p.smallThreshold {
			return Stop
		}
		if !p.valid(id) {
			return Continue
		}
		var inSmall, promote bool
		tracked := p.store.Update(id, func(it *model.Item) {
			if inSmall = it.InSmall(); inSmall && it.Freq > 1 {
				it.InMain = true
				promote = true
			}
		})
		switch {
		case !tracked || !inSmall:
			return Continue
		case promote:
			p.small.Add(-1)
			p.main.Add(1)
			remaining--
			return Requeue
		default:
			remaining--
			n++
			return Evict
		}
	})
}

// scanMain gives every main item with a non-zero frequency another round,
// decrementing it, and evicts the ones that ran out. progressed is false when
// the pass neither evicted nor decremented anything.
func (p *S3FIFO) scanMain(limit int, victims []uint64) (_ []uint64, progressed bool) {
	picked := make(map[uint64]struct{}, len(victims))
	for _, id := range victims {
		picked[id] = struct{}{}
	}
	n := len(victims)
	found := p.list.Scan(func(_ int, id uint64) Verdict {
		if n >= limit {
			return Stop
		}
		if _, dup := picked[id]; dup || !p.valid(id) {
			return Continue
		}
		var evict bool
		tracked := p.store.Update(id, func(it *model.Item) {
			if it.InSmall() {
				return
			}
			if it.Freq > 0 {
				it.Freq--
				progressed = true
				return
			}
			evict = true
		})
		if !tracked || !evict {
			return Continue
		}
		n++
		return Evict
	})
	return append(victims, found...), progressed || len(found) > 0
}
