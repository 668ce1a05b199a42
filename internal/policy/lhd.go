package policy

import "github.com/Borislavv/go-ash-adaptive/model"

// LHDSimple records the hit age of every item but, in this simplified form,
// evicts in list order without ranking by age.
type LHDSimple struct{ base }

func (p *LHDSimple) ID() model.Policy { return model.PolicyLHDSimple }

func (p *LHDSimple) Init(item *model.Item) { item.LastHitAge = 0 }

func (p *LHDSimple) Admit(id uint64) { p.list.PushBack(id) }

func (p *LHDSimple) Touch(item *model.Item, now uint64) {
	if now > item.LastAccessAt {
		item.LastHitAge = now - item.LastAccessAt
	} else {
		item.LastHitAge = 0
	}
}

func (p *LHDSimple) Victims(limit int) []uint64 {
	if limit <= 0 {
		return nil
	}
	var n int
	return p.list.Scan(func(_ int, id uint64) Verdict {
		if n >= limit {
			return Stop
		}
		if !p.valid(id) {
			return Continue
		}
		if _, tracked := p.store.Get(id); !tracked {
			return Continue
		}
		n++
		return Evict
	})
}
