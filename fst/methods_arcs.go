// SPDX-License-Identifier: MIT
// File: methods_arcs.go
// Role: Arc lifecycle: AddArc, DeleteArcs, SetArcs, ReserveArcs, ArcSort.
// Determinism:
//   - Arcs keep insertion order until ArcSort or SetArcs reorders them.

package fst

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvfst/weight"
)

// AddArc appends a to the arcs leaving s. The arc is validated first (source
// and destination states, labels, semiring); a rejected arc changes nothing.
func (f *Fst) AddArc(s StateID, a Arc) error {
	if !f.valid(s) {
		return fmt.Errorf("%w: %d", ErrStateNotFound, s)
	}
	if err := f.checkArc(a); err != nil {
		return err
	}
	st := f.states[s]
	st.arcs = append(st.arcs, a)
	st.countEpsilons(a, 1)
	st.gen++
	return nil
}

// AddArcScalar is AddArc with the weight given as a scalar in f's semiring.
func (f *Fst) AddArcScalar(s StateID, ilabel, olabel Label, x float64, next StateID) error {
	w, err := weight.FromScalar(f.semiring, x)
	if err != nil {
		return err
	}
	return f.AddArc(s, Arc{ILabel: ilabel, OLabel: olabel, Weight: w, NextState: next})
}

// DeleteArcs removes every arc leaving s. Invalid ids are ignored.
func (f *Fst) DeleteArcs(s StateID) {
	if !f.valid(s) {
		return
	}
	st := f.states[s]
	st.arcs = nil
	st.niepsilons, st.noepsilons = 0, 0
	st.gen++
}

// SetArcs replaces the arcs leaving s with a copy of arcs. Every arc is
// validated before anything changes.
func (f *Fst) SetArcs(s StateID, arcs []Arc) error {
	if !f.valid(s) {
		return fmt.Errorf("%w: %d", ErrStateNotFound, s)
	}
	for _, a := range arcs {
		if err := f.checkArc(a); err != nil {
			return err
		}
	}
	st := f.states[s]
	st.arcs = make([]Arc, len(arcs))
	copy(st.arcs, arcs)
	st.niepsilons, st.noepsilons = 0, 0
	for _, a := range arcs {
		st.countEpsilons(a, 1)
	}
	st.gen++
	return nil
}

// ReserveArcs is a capacity hint for n additional arcs on s.
func (f *Fst) ReserveArcs(s StateID, n int) {
	if !f.valid(s) || n <= 0 {
		return
	}
	st := f.states[s]
	if cap(st.arcs)-len(st.arcs) >= n {
		return
	}
	grown := make([]Arc, len(st.arcs), len(st.arcs)+n)
	copy(grown, st.arcs)
	st.arcs = grown
}

// ArcLess orders arcs for ArcSort.
type ArcLess func(a, b Arc) bool

// ILabelLess orders by input label, then output label.
func ILabelLess(a, b Arc) bool {
	if a.ILabel != b.ILabel {
		return a.ILabel < b.ILabel
	}
	return a.OLabel < b.OLabel
}

// OLabelLess orders by output label, then input label.
func OLabelLess(a, b Arc) bool {
	if a.OLabel != b.OLabel {
		return a.OLabel < b.OLabel
	}
	return a.ILabel < b.ILabel
}

// ArcSort stably sorts the arcs of every state with less.
func (f *Fst) ArcSort(less ArcLess) {
	for _, st := range f.states {
		arcs := st.arcs
		sort.SliceStable(arcs, func(i, j int) bool { return less(arcs[i], arcs[j]) })
		st.gen++
	}
}

// setArc replaces the arc at pos of s. Used by MutableArcIterator.
func (f *Fst) setArc(s StateID, pos int, a Arc) error {
	if err := f.checkArc(a); err != nil {
		return err
	}
	st := f.states[s]
	st.countEpsilons(st.arcs[pos], -1)
	st.arcs[pos] = a
	st.countEpsilons(a, 1)
	return nil
}
