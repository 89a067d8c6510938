// SPDX-License-Identifier: MIT

package shortest

import (
	"container/heap"

	"github.com/katalvlaran/lvfst/fst"
)

// stateQueue orders the states awaiting relaxation. Update enqueues s, or
// refreshes its priority when it is already waiting.
type stateQueue interface {
	Update(s fst.StateID, prio float64)
	Pop() fst.StateID
	Empty() bool
}

// fifoQueue holds each waiting state once, in discovery order.
type fifoQueue struct {
	items   []fst.StateID
	head    int
	waiting []bool
}

func newFIFOQueue(n int) *fifoQueue {
	return &fifoQueue{waiting: make([]bool, n)}
}

func (q *fifoQueue) Update(s fst.StateID, _ float64) {
	if q.waiting[s] {
		return
	}
	q.waiting[s] = true
	q.items = append(q.items, s)
}

func (q *fifoQueue) Pop() fst.StateID {
	s := q.items[q.head]
	q.head++
	if q.head > 1024 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	q.waiting[s] = false
	return s
}

func (q *fifoQueue) Empty() bool { return q.head == len(q.items) }

// shortestFirstQueue is a lazy min-heap: a refreshed state gets a new entry
// and the outdated one is skipped when popped.
type shortestFirstQueue struct {
	pq      nodePQ
	waiting []bool
	seq     uint64
}

func newShortestFirstQueue(n int) *shortestFirstQueue {
	return &shortestFirstQueue{waiting: make([]bool, n)}
}

func (q *shortestFirstQueue) Update(s fst.StateID, prio float64) {
	q.waiting[s] = true
	q.seq++
	heap.Push(&q.pq, &nodeItem{s: s, prio: prio, seq: q.seq})
}

func (q *shortestFirstQueue) Pop() fst.StateID {
	for {
		item := heap.Pop(&q.pq).(*nodeItem)
		if q.waiting[item.s] {
			q.waiting[item.s] = false
			return item.s
		}
	}
}

func (q *shortestFirstQueue) Empty() bool {
	// Drop stale entries so Empty is exact.
	for q.pq.Len() > 0 && !q.waiting[q.pq[0].s] {
		heap.Pop(&q.pq)
	}
	return q.pq.Len() == 0
}

// nodeItem is a heap entry; seq breaks priority ties in insertion order.
type nodeItem struct {
	s    fst.StateID
	prio float64
	seq  uint64
}

// nodePQ is a min-heap of *nodeItem ordered by prio, then seq.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].prio != pq[j].prio {
		return pq[i].prio < pq[j].prio
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
