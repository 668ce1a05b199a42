package policy

import "github.com/Borislavv/go-ash-adaptive/model"

// LRU moves hit items to the back and evicts from the front.
type LRU struct{ base }

func (p *LRU) ID() model.Policy { return model.PolicyLRU }

func (p *LRU) Admit(id uint64) { p.list.PushBack(id) }

func (p *LRU) Reorder(id uint64) { p.list.MoveToBack(id) }

func (p *LRU) Victims(limit int) []uint64 { return p.oldestValid(limit) }
