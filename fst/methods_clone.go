// SPDX-License-Identifier: MIT
// File: methods_clone.go
// Role: Deep copies. No storage is shared between an automaton and its copy.

package fst

// Copy returns a deep copy of f: semiring, start, states, finals and arcs.
// Iterators over f do not observe the copy and vice versa.
func (f *Fst) Copy() *Fst {
	c := &Fst{semiring: f.semiring, start: f.start, states: make([]*state, len(f.states))}
	for s, st := range f.states {
		ns := &state{final: st.final, niepsilons: st.niepsilons, noepsilons: st.noepsilons}
		if len(st.arcs) > 0 {
			ns.arcs = make([]Arc, len(st.arcs))
			copy(ns.arcs, st.arcs)
		}
		c.states[s] = ns
	}
	return c
}

// Assign replaces the content of f with a deep copy of src. Both must share a
// semiring. Iterators over f become invalid. It is how in-place algorithms
// publish a result built in a scratch automaton.
func (f *Fst) Assign(src *Fst) error {
	if src.semiring != f.semiring {
		return ErrSemiringMismatch
	}
	c := src.Copy()
	f.start = c.start
	f.states = c.states
	f.stateGen++
	f.renumberGen++
	return nil
}
