package policy

import "github.com/Borislavv/go-ash-adaptive/model"

// FIFO evicts in admission order; hits do not reorder.
type FIFO struct{ base }

func (p *FIFO) ID() model.Policy { return model.PolicyFIFO }

func (p *FIFO) Admit(id uint64) { p.list.PushBack(id) }

func (p *FIFO) Victims(limit int) []uint64 { return p.oldestValid(limit) }
