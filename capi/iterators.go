// SPDX-License-Identifier: MIT

package capi

import (
	"fmt"

	"github.com/katalvlaran/lvfst/fst"
)

// ArcValue is an arc with its weight projected to a scalar.
type ArcValue struct {
	ILabel    int32
	OLabel    int32
	Weight    float64
	NextState int32
}

func arcValue(a fst.Arc) ArcValue {
	return ArcValue{ILabel: a.ILabel, OLabel: a.OLabel, Weight: a.Weight.Value(), NextState: a.NextState}
}

// Each iterator remembers the automaton handle it leases.
type (
	stateIter struct {
		owner Handle
		it    *fst.StateIterator
	}
	arcIter struct {
		owner Handle
		it    *fst.ArcIterator
	}
	mutableIter struct {
		owner Handle
		it    *fst.MutableArcIterator
	}
)

// lease borrows the automaton of h for a new iterator.
func (s *Session) lease(op string, h Handle) (*fst.Fst, error) {
	f, err := s.fsts.borrow(h)
	return f, wrap(op, h, err)
}

func (s *Session) unlease(op string, h Handle) error {
	return wrap(op, h, s.fsts.endBorrow(h))
}

// ---------------------------------------------------------------------------
// State iterators
// ---------------------------------------------------------------------------

// StateIteratorCreate returns an iterator over the states of h.
func (s *Session) StateIteratorCreate(h Handle) (Handle, error) {
	f, err := s.lease("StateIteratorCreate", h)
	if err != nil {
		return 0, err
	}
	ih, err := s.states.add(&stateIter{owner: h, it: fst.NewStateIterator(f)})
	if err != nil {
		_ = s.unlease("StateIteratorCreate", h)
		return 0, wrap("StateIteratorCreate", h, err)
	}
	return ih, nil
}

// StateIteratorDelete releases ih and its lease.
func (s *Session) StateIteratorDelete(ih Handle) error {
	si, err := s.states.release(ih)
	if err != nil {
		return wrap("StateIteratorDelete", ih, err)
	}
	si.it.Close()
	return s.unlease("StateIteratorDelete", si.owner)
}

func (s *Session) stateIterOf(op string, ih Handle) (*fst.StateIterator, error) {
	si, err := s.states.get(ih)
	if err != nil {
		return nil, wrap(op, ih, err)
	}
	return si.it, nil
}

// StateIteratorDone reports whether the iteration is exhausted or stale.
func (s *Session) StateIteratorDone(ih Handle) (bool, error) {
	it, err := s.stateIterOf("StateIteratorDone", ih)
	if err != nil {
		return true, err
	}
	return it.Done(), nil
}

// StateIteratorValue returns the current state id.
func (s *Session) StateIteratorValue(ih Handle) (int32, error) {
	it, err := s.stateIterOf("StateIteratorValue", ih)
	if err != nil {
		return fst.NoStateID, err
	}
	if err := it.Err(); err != nil {
		return fst.NoStateID, wrap("StateIteratorValue", ih, err)
	}
	return it.Value(), nil
}

// StateIteratorNext advances the iterator.
func (s *Session) StateIteratorNext(ih Handle) error {
	it, err := s.stateIterOf("StateIteratorNext", ih)
	if err != nil {
		return err
	}
	it.Next()
	return nil
}

// StateIteratorReset rewinds the iterator.
func (s *Session) StateIteratorReset(ih Handle) error {
	it, err := s.stateIterOf("StateIteratorReset", ih)
	if err != nil {
		return err
	}
	it.Reset()
	return nil
}

// ---------------------------------------------------------------------------
// Arc iterators (read-only and mutable share the positional protocol)
// ---------------------------------------------------------------------------

// ArcIteratorCreate returns an iterator over the arcs leaving state.
func (s *Session) ArcIteratorCreate(h Handle, state int32) (Handle, error) {
	f, err := s.lease("ArcIteratorCreate", h)
	if err != nil {
		return 0, err
	}
	it, err := fst.NewArcIterator(f, state)
	if err == nil {
		var ih Handle
		if ih, err = s.arcs.add(&arcIter{owner: h, it: it}); err == nil {
			return ih, nil
		}
	}
	_ = s.unlease("ArcIteratorCreate", h)
	return 0, wrap("ArcIteratorCreate", h, err)
}

// ArcIteratorDelete releases ih and its lease.
func (s *Session) ArcIteratorDelete(ih Handle) error {
	ai, err := s.arcs.release(ih)
	if err != nil {
		return wrap("ArcIteratorDelete", ih, err)
	}
	ai.it.Close()
	return s.unlease("ArcIteratorDelete", ai.owner)
}

func (s *Session) arcIterOf(op string, ih Handle) (*fst.ArcIterator, error) {
	ai, err := s.arcs.get(ih)
	if err != nil {
		return nil, wrap(op, ih, err)
	}
	return ai.it, nil
}

// ArcIteratorDone reports whether the iteration is exhausted or stale.
func (s *Session) ArcIteratorDone(ih Handle) (bool, error) {
	it, err := s.arcIterOf("ArcIteratorDone", ih)
	if err != nil {
		return true, err
	}
	return it.Done(), nil
}

// ArcIteratorValue returns the current arc.
func (s *Session) ArcIteratorValue(ih Handle) (ArcValue, error) {
	it, err := s.arcIterOf("ArcIteratorValue", ih)
	if err != nil {
		return ArcValue{}, err
	}
	return value("ArcIteratorValue", ih, it)
}

// ArcIteratorNext advances one position.
func (s *Session) ArcIteratorNext(ih Handle) error {
	it, err := s.arcIterOf("ArcIteratorNext", ih)
	if err != nil {
		return err
	}
	it.Next()
	return nil
}

// ArcIteratorPosition returns the current position.
func (s *Session) ArcIteratorPosition(ih Handle) (int, error) {
	it, err := s.arcIterOf("ArcIteratorPosition", ih)
	if err != nil {
		return 0, err
	}
	return it.Position(), nil
}

// ArcIteratorReset rewinds to position 0.
func (s *Session) ArcIteratorReset(ih Handle) error {
	it, err := s.arcIterOf("ArcIteratorReset", ih)
	if err != nil {
		return err
	}
	it.Reset()
	return nil
}

// ArcIteratorSeek moves to position pos.
func (s *Session) ArcIteratorSeek(ih Handle, pos int) error {
	it, err := s.arcIterOf("ArcIteratorSeek", ih)
	if err != nil {
		return err
	}
	it.Seek(pos)
	return nil
}

func value(op string, ih Handle, it *fst.ArcIterator) (ArcValue, error) {
	if err := it.Err(); err != nil {
		return ArcValue{}, wrap(op, ih, err)
	}
	if it.Done() {
		return ArcValue{}, wrap(op, ih, fmt.Errorf("%w: position %d", fst.ErrIteratorDone, it.Position()))
	}
	return arcValue(it.Value()), nil
}

// MutableArcIteratorCreate returns a mutable iterator over the arcs leaving
// state.
func (s *Session) MutableArcIteratorCreate(h Handle, state int32) (Handle, error) {
	f, err := s.lease("MutableArcIteratorCreate", h)
	if err != nil {
		return 0, err
	}
	it, err := fst.NewMutableArcIterator(f, state)
	if err == nil {
		var ih Handle
		if ih, err = s.mutables.add(&mutableIter{owner: h, it: it}); err == nil {
			return ih, nil
		}
	}
	_ = s.unlease("MutableArcIteratorCreate", h)
	return 0, wrap("MutableArcIteratorCreate", h, err)
}

// MutableArcIteratorDelete releases ih and its lease.
func (s *Session) MutableArcIteratorDelete(ih Handle) error {
	mi, err := s.mutables.release(ih)
	if err != nil {
		return wrap("MutableArcIteratorDelete", ih, err)
	}
	mi.it.Close()
	return s.unlease("MutableArcIteratorDelete", mi.owner)
}

func (s *Session) mutableIterOf(op string, ih Handle) (*fst.MutableArcIterator, error) {
	mi, err := s.mutables.get(ih)
	if err != nil {
		return nil, wrap(op, ih, err)
	}
	return mi.it, nil
}

// MutableArcIteratorDone reports whether the iteration is exhausted or stale.
func (s *Session) MutableArcIteratorDone(ih Handle) (bool, error) {
	it, err := s.mutableIterOf("MutableArcIteratorDone", ih)
	if err != nil {
		return true, err
	}
	return it.Done(), nil
}

// MutableArcIteratorValue returns the current arc.
func (s *Session) MutableArcIteratorValue(ih Handle) (ArcValue, error) {
	it, err := s.mutableIterOf("MutableArcIteratorValue", ih)
	if err != nil {
		return ArcValue{}, err
	}
	return value("MutableArcIteratorValue", ih, &it.ArcIterator)
}

// MutableArcIteratorNext advances one position.
func (s *Session) MutableArcIteratorNext(ih Handle) error {
	it, err := s.mutableIterOf("MutableArcIteratorNext", ih)
	if err != nil {
		return err
	}
	it.Next()
	return nil
}

// MutableArcIteratorPosition returns the current position.
func (s *Session) MutableArcIteratorPosition(ih Handle) (int, error) {
	it, err := s.mutableIterOf("MutableArcIteratorPosition", ih)
	if err != nil {
		return 0, err
	}
	return it.Position(), nil
}

// MutableArcIteratorReset rewinds to position 0.
func (s *Session) MutableArcIteratorReset(ih Handle) error {
	it, err := s.mutableIterOf("MutableArcIteratorReset", ih)
	if err != nil {
		return err
	}
	it.Reset()
	return nil
}

// MutableArcIteratorSeek moves to position pos.
func (s *Session) MutableArcIteratorSeek(ih Handle, pos int) error {
	it, err := s.mutableIterOf("MutableArcIteratorSeek", ih)
	if err != nil {
		return err
	}
	it.Seek(pos)
	return nil
}

// MutableArcIteratorSetValue replaces the current arc. The weight scalar is
// read in the semiring of the arc being replaced. It reports false, leaving
// the arc unchanged, for an invalid destination or label, or when the
// iterator is done or stale.
func (s *Session) MutableArcIteratorSetValue(ih Handle, ilabel, olabel int32, w float64, next int32) (bool, error) {
	mi, err := s.mutables.get(ih)
	if err != nil {
		return false, wrap("MutableArcIteratorSetValue", ih, err)
	}
	if err := mi.it.SetValueScalar(ilabel, olabel, w, next); err != nil {
		return s.rejected("MutableArcIteratorSetValue", mi.owner, err), nil
	}
	return true, nil
}
