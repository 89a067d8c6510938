// SPDX-License-Identifier: MIT
// File: iterator.go
// Role: State, arc and mutable-arc iterators.
// Leases:
//   - An iterator records the generation counters of what it is bound to.
//     A structural mutation bumps a counter; from then on the iterator is
//     stale: Done reports true and Err reports ErrIteratorInvalidated.
//   - Iterators never keep the automaton alive on their own and Close only
//     drops the iterator's own lease.

package fst

import (
	"fmt"

	"github.com/katalvlaran/lvfst/weight"
)

// StateIterator visits state ids in ascending order.
type StateIterator struct {
	f      *Fst
	gen    uint64
	n      StateID
	s      StateID
	closed bool
}

// NewStateIterator returns an iterator over the states of f as they exist now.
func NewStateIterator(f *Fst) *StateIterator {
	return &StateIterator{f: f, gen: f.stateGen, n: StateID(len(f.states))}
}

// Err reports ErrIteratorInvalidated once states were added or removed.
func (it *StateIterator) Err() error {
	if it.closed || it.f.stateGen != it.gen {
		return ErrIteratorInvalidated
	}
	return nil
}

// Done reports whether iteration is exhausted or the iterator is stale.
func (it *StateIterator) Done() bool { return it.Err() != nil || it.s >= it.n }

// Value returns the current state id.
func (it *StateIterator) Value() StateID { return it.s }

// Next advances to the following state.
func (it *StateIterator) Next() { it.s++ }

// Reset rewinds to the first state.
func (it *StateIterator) Reset() { it.s = 0 }

// Close releases the iterator. It is idempotent.
func (it *StateIterator) Close() { it.closed = true }

// ArcIterator visits the arcs leaving one state in stored order.
type ArcIterator struct {
	f      *Fst
	s      StateID
	st     *state
	gen    uint64
	rgen   uint64
	pos    int
	closed bool
}

// NewArcIterator binds an iterator to the arcs of s.
func NewArcIterator(f *Fst, s StateID) (*ArcIterator, error) {
	if !f.valid(s) {
		return nil, fmt.Errorf("%w: %d", ErrStateNotFound, s)
	}
	st := f.states[s]
	return &ArcIterator{f: f, s: s, st: st, gen: st.gen, rgen: f.renumberGen}, nil
}

// State returns the state the iterator is bound to.
func (it *ArcIterator) State() StateID { return it.s }

// Err reports ErrIteratorInvalidated after a structural change of the arc list
// or a renumbering of states.
func (it *ArcIterator) Err() error {
	if it.closed || it.f.renumberGen != it.rgen || it.st.gen != it.gen {
		return ErrIteratorInvalidated
	}
	return nil
}

// Done reports whether iteration is exhausted or the iterator is stale.
func (it *ArcIterator) Done() bool { return it.Err() != nil || it.pos >= len(it.st.arcs) }

// Value returns a copy of the current arc. It must not be called when Done.
func (it *ArcIterator) Value() Arc { return it.st.arcs[it.pos] }

// Next advances one position.
func (it *ArcIterator) Next() { it.pos++ }

// Position returns the current 0-based position.
func (it *ArcIterator) Position() int { return it.pos }

// Reset rewinds to position 0.
func (it *ArcIterator) Reset() { it.pos = 0 }

// Seek moves to position pos. Seeking to NumArcs leaves the iterator Done.
func (it *ArcIterator) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	it.pos = pos
}

// Close releases the iterator. It is idempotent.
func (it *ArcIterator) Close() { it.closed = true }

// MutableArcIterator is an ArcIterator that can overwrite the current arc.
// Overwriting does not reorder the arc list, so the iterator (and any other
// iterator over the same state) stays valid.
type MutableArcIterator struct {
	ArcIterator
}

// NewMutableArcIterator binds a mutable iterator to the arcs of s.
func NewMutableArcIterator(f *Fst, s StateID) (*MutableArcIterator, error) {
	it, err := NewArcIterator(f, s)
	if err != nil {
		return nil, err
	}
	return &MutableArcIterator{ArcIterator: *it}, nil
}

// SetValue replaces the current arc. The arc is validated as by AddArc; on
// failure the stored arc is unchanged. Epsilon counts follow the new labels.
func (it *MutableArcIterator) SetValue(a Arc) error {
	if err := it.Err(); err != nil {
		return err
	}
	if it.pos < 0 || it.pos >= len(it.st.arcs) {
		return fmt.Errorf("%w: position %d", ErrIteratorDone, it.pos)
	}
	return it.f.setArc(it.s, it.pos, a)
}

// SetValueScalar replaces the current arc, interpreting x in the semiring of
// the current arc's weight.
func (it *MutableArcIterator) SetValueScalar(ilabel, olabel Label, x float64, next StateID) error {
	if it.Done() {
		if err := it.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: position %d", ErrIteratorDone, it.pos)
	}
	w, err := weight.FromScalar(it.Value().Weight.Semiring(), x)
	if err != nil {
		return err
	}
	return it.SetValue(Arc{ILabel: ilabel, OLabel: olabel, Weight: w, NextState: next})
}
