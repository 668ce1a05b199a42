package policy

import (
	"container/list"
	"sync"
)

// Verdict is what a scan callback decides for the visited node.
type Verdict uint8

const (
	// Continue leaves the node in place and visits the next one.
	Continue Verdict = iota
	// Evict reports the node as a victim; it stays linked until the host evicts it.
	Evict
	// Requeue moves the node to the back and continues. Used to hand an item
	// over from the head region to the tail (e.g. S3-FIFO promotion).
	Requeue
	// Stop ends the scan.
	Stop
)

// List is the single ordered container shared by every policy. The front is
// the oldest end for FIFO/LRU/S3-FIFO/LHD and the most recent end for MRU.
// Policy identity lives in item metadata, never in separate lists, so a policy
// switch cannot strand items where the new policy does not look.
type List struct {
	mu  sync.Mutex
	l   *list.List
	idx map[uint64]*list.Element
}

func NewList() *List {
	return &List{l: list.New(), idx: make(map[uint64]*list.Element)}
}

// PushFront inserts id at the front, or moves it there when already linked.
func (q *List) PushFront(id uint64) {
	q.mu.Lock()
	if el := q.idx[id]; el != nil {
		q.l.MoveToFront(el)
	} else {
		q.idx[id] = q.l.PushFront(id)
	}
	q.mu.Unlock()
}

// PushBack inserts id at the back, or moves it there when already linked.
func (q *List) PushBack(id uint64) {
	q.mu.Lock()
	if el := q.idx[id]; el != nil {
		q.l.MoveToBack(el)
	} else {
		q.idx[id] = q.l.PushBack(id)
	}
	q.mu.Unlock()
}

func (q *List) MoveToFront(id uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if el := q.idx[id]; el != nil {
		q.l.MoveToFront(el)
		return true
	}
	return false
}

func (q *List) MoveToBack(id uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if el := q.idx[id]; el != nil {
		q.l.MoveToBack(el)
		return true
	}
	return false
}

func (q *List) Remove(id uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if el := q.idx[id]; el != nil {
		q.l.Remove(el)
		delete(q.idx, id)
		return true
	}
	return false
}

func (q *List) Contains(id uint64) bool {
	q.mu.Lock()
	_, ok := q.idx[id]
	q.mu.Unlock()
	return ok
}

func (q *List) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.l.Len()
}

// Items returns the ids front to back.
func (q *List) Items() []uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]uint64, 0, q.l.Len())
	for e := q.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(uint64))
	}
	return out
}

// Scan walks from the front and applies fn's verdict to every node. Each node
// present when the scan starts is visited at most once, requeued nodes included.
// fn runs under the list lock: it may read or update item metadata but must
// not call back into the list.
func (q *List) Scan(fn func(idx int, id uint64) Verdict) (evicted []uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.l.Len()
	e := q.l.Front()
	for i := 0; i < n && e != nil; i++ {
		next := e.Next()
		id := e.Value.(uint64)
		switch fn(i, id) {
		case Evict:
			evicted = append(evicted, id)
		case Requeue:
			q.l.MoveToBack(e)
		case Stop:
			return evicted
		}
		e = next
	}
	return evicted
}
