// SPDX-License-Identifier: MIT

package capi

import (
	"fmt"
	"sync"
)

// Handle is an opaque reference to an object owned by a Session. The zero
// Handle is never issued.
type Handle uint32

const (
	slotBits = 20
	slotMask = 1<<slotBits - 1
	genMask  = 1<<(32-slotBits) - 1
)

// handleOf packs a slot index and its generation. Slots are stored +1 so
// that no live handle is zero.
func handleOf(slot int, gen uint32) Handle {
	return Handle(gen&genMask)<<slotBits | Handle(slot+1)
}

func (h Handle) slot() int { return int(h&slotMask) - 1 }

func (h Handle) gen() uint32 { return uint32(h >> slotBits) }

// entry is one slot of a table.
type entry[T any] struct {
	val   T
	gen   uint32
	live  bool
	lends int32 // active leases, e.g. iterators over an automaton
}

// table issues handles for values of one type. Released slots are reused
// with a bumped generation, so stale handles stay invalid.
type table[T any] struct {
	kind     string
	entries  []entry[T]
	freeList []int
	mu       sync.Mutex
}

func newTable[T any](kind string) *table[T] {
	return &table[T]{kind: kind}
}

// add stores v and returns its handle.
func (t *table[T]) add(v T) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.freeList); n > 0 {
		slot := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		e := &t.entries[slot]
		e.val, e.live, e.lends = v, true, 0
		return handleOf(slot, e.gen), nil
	}
	if len(t.entries) >= slotMask {
		return 0, fmt.Errorf("capi: %s table full", t.kind)
	}
	t.entries = append(t.entries, entry[T]{val: v, live: true})
	return handleOf(len(t.entries)-1, 0), nil
}

// lookup returns the live entry of h; t.mu must be held.
func (t *table[T]) lookup(h Handle) (*entry[T], error) {
	slot := h.slot()
	if slot < 0 || slot >= len(t.entries) {
		return nil, fmt.Errorf("%w: %s %d", ErrInvalidHandle, t.kind, h)
	}
	e := &t.entries[slot]
	if !e.live || e.gen&genMask != h.gen() {
		return nil, fmt.Errorf("%w: %s %d released", ErrInvalidHandle, t.kind, h)
	}
	return e, nil
}

// get returns the value of h.
func (t *table[T]) get(h Handle) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, err := t.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.val, nil
}

// release frees h and returns its value. A handle with active leases is
// kept.
func (t *table[T]) release(h Handle) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	e, err := t.lookup(h)
	if err != nil {
		return zero, err
	}
	if e.lends > 0 {
		return zero, fmt.Errorf("%w: %s %d has %d live iterators", ErrHandleBorrowed, t.kind, h, e.lends)
	}
	v := e.val
	e.val, e.live = zero, false
	e.gen++
	t.freeList = append(t.freeList, h.slot())
	return v, nil
}

// borrow adds a lease on h and returns its value.
func (t *table[T]) borrow(h Handle) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, err := t.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	e.lends++
	return e.val, nil
}

// endBorrow drops one lease on h.
func (t *table[T]) endBorrow(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, err := t.lookup(h)
	if err != nil {
		return err
	}
	if e.lends <= 0 {
		return fmt.Errorf("capi: %s %d has no active leases", t.kind, h)
	}
	e.lends--
	return nil
}

// live returns the handles still held, in slot order.
func (t *table[T]) live() []Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Handle
	for i, e := range t.entries {
		if e.live {
			out = append(out, handleOf(i, e.gen))
		}
	}
	return out
}

// len returns the number of live handles.
func (t *table[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, e := range t.entries {
		if e.live {
			n++
		}
	}
	return n
}
