package policy

import "github.com/Borislavv/go-ash-adaptive/model"

// MRU keeps the most recently used item at the front and evicts from there.
type MRU struct {
	base
	skipWindow int
}

func (p *MRU) ID() model.Policy { return model.PolicyMRU }

func (p *MRU) Admit(id uint64) { p.list.PushFront(id) }

func (p *MRU) Reorder(id uint64) { p.list.MoveToFront(id) }

// Victims skips invalid items only inside the first skipWindow positions;
// past the window anything is evicted.
func (p *MRU) Victims(limit int) []uint64 {
	if limit <= 0 {
		return nil
	}
	var n int
	return p.list.Scan(func(idx int, id uint64) Verdict {
		if n >= limit {
			return Stop
		}
		if idx < p.skipWindow && !p.valid(id) {
			return Continue
		}
		n++
		return Evict
	})
}
