// SPDX-License-Identifier: MIT
// File: methods_states.go
// Role: State lifecycle: AddState(s), SetStart, SetFinal, DeleteStates,
//       DeleteStateSet, ReserveStates and StateSort.
// Determinism:
//   - New states take the next dense id; deletion renumbers survivors in
//     ascending order of their old ids.

package fst

import (
	"fmt"

	"github.com/katalvlaran/lvfst/weight"
)

// AddState appends a new non-final state without arcs and returns its id.
func (f *Fst) AddState() StateID {
	f.states = append(f.states, newState(f.semiring))
	f.stateGen++
	return StateID(len(f.states) - 1)
}

// AddStates appends n states and returns the id of the first one,
// or NoStateID when n <= 0.
func (f *Fst) AddStates(n int) StateID {
	if n <= 0 {
		return NoStateID
	}
	first := StateID(len(f.states))
	for i := 0; i < n; i++ {
		f.states = append(f.states, newState(f.semiring))
	}
	f.stateGen++
	return first
}

// SetStart makes s the start state. NoStateID clears the start.
func (f *Fst) SetStart(s StateID) error {
	if s != NoStateID && !f.valid(s) {
		return fmt.Errorf("%w: %d", ErrStateNotFound, s)
	}
	f.start = s
	return nil
}

// SetFinal sets the final weight of s. Zero makes s non-final.
func (f *Fst) SetFinal(s StateID, w weight.Weight) error {
	if !f.valid(s) {
		return fmt.Errorf("%w: %d", ErrStateNotFound, s)
	}
	if w.Semiring() != f.semiring {
		return fmt.Errorf("%w: %s final on %s automaton", ErrSemiringMismatch, w.Semiring(), f.semiring)
	}
	f.states[s].final = w
	return nil
}

// SetFinalScalar sets the final weight of s from its scalar projection,
// interpreted in f's semiring.
func (f *Fst) SetFinalScalar(s StateID, x float64) error {
	w, err := weight.FromScalar(f.semiring, x)
	if err != nil {
		return err
	}
	return f.SetFinal(s, w)
}

// ReserveStates is a capacity hint for n additional states. It never changes
// observable state.
func (f *Fst) ReserveStates(n int) {
	if n <= 0 || cap(f.states)-len(f.states) >= n {
		return
	}
	grown := make([]*state, len(f.states), len(f.states)+n)
	copy(grown, f.states)
	f.states = grown
}

// DeleteStates removes every state (and so every arc) and clears the start.
// All iterators over f become invalid.
func (f *Fst) DeleteStates() {
	f.states = nil
	f.start = NoStateID
	f.stateGen++
	f.renumberGen++
}

// DeleteStateSet removes the given states together with every arc entering
// them, renumbering the survivors densely in ascending order. If the start
// is deleted the automaton has no start afterwards. Unknown ids are rejected
// before anything changes.
func (f *Fst) DeleteStateSet(ids []StateID) error {
	// 1. Validate every id up front.
	drop := make([]bool, len(f.states))
	for _, s := range ids {
		if !f.valid(s) {
			return fmt.Errorf("%w: %d", ErrStateNotFound, s)
		}
		drop[s] = true
	}
	if len(ids) == 0 {
		return nil
	}
	// 2. Assign new ids to survivors.
	newID := make([]StateID, len(f.states))
	kept := make([]*state, 0, len(f.states))
	for s, st := range f.states {
		if drop[s] {
			newID[s] = NoStateID
			continue
		}
		newID[s] = StateID(len(kept))
		kept = append(kept, st)
	}
	// 3. Rewrite arcs, dropping those into deleted states.
	for _, st := range kept {
		arcs := st.arcs[:0]
		st.niepsilons, st.noepsilons = 0, 0
		for _, a := range st.arcs {
			if drop[a.NextState] {
				continue
			}
			a.NextState = newID[a.NextState]
			arcs = append(arcs, a)
			st.countEpsilons(a, 1)
		}
		st.arcs = arcs
		st.gen++
	}
	// 4. Move the start.
	if f.start != NoStateID {
		f.start = newID[f.start]
	}
	f.states = kept
	f.stateGen++
	f.renumberGen++
	return nil
}

// StateSort renumbers states so that old state s becomes order[s].
// order must be a permutation of [0, NumStates).
func (f *Fst) StateSort(order []StateID) error {
	if len(order) != len(f.states) {
		return fmt.Errorf("%w: have %d ids for %d states", ErrBadPermutation, len(order), len(f.states))
	}
	seen := make([]bool, len(order))
	for _, n := range order {
		if n < 0 || int(n) >= len(order) || seen[n] {
			return fmt.Errorf("%w: %d", ErrBadPermutation, n)
		}
		seen[n] = true
	}
	sorted := make([]*state, len(f.states))
	for s, st := range f.states {
		for i := range st.arcs {
			st.arcs[i].NextState = order[st.arcs[i].NextState]
		}
		st.gen++
		sorted[order[s]] = st
	}
	if f.start != NoStateID {
		f.start = order[f.start]
	}
	f.states = sorted
	f.stateGen++
	f.renumberGen++
	return nil
}
