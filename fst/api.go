// SPDX-License-Identifier: MIT
// File: api.go
// Role: Read-only queries over an automaton.

package fst

import "github.com/katalvlaran/lvfst/weight"

// Semiring returns the weight tag shared by every weight in f.
func (f *Fst) Semiring() weight.Semiring { return f.semiring }

// WeightType returns the semiring name ("tropical", "log", "log64").
func (f *Fst) WeightType() string { return f.semiring.String() }

// ArcType returns the arc-type name used by serialized automata
// ("standard" for tropical, "log", "log64").
func (f *Fst) ArcType() string { return f.semiring.ArcType() }

// Type returns the representation name. Only the vector representation exists.
func (f *Fst) Type() string { return "vector" }

// Start returns the start state, or NoStateID when none is set.
func (f *Fst) Start() StateID { return f.start }

// NumStates returns the number of states.
func (f *Fst) NumStates() int { return len(f.states) }

// Final returns the final weight of s. Non-final states, and ids that do not
// name a state, answer Zero.
func (f *Fst) Final(s StateID) weight.Weight {
	if !f.valid(s) {
		return weight.Zero(f.semiring)
	}
	return f.states[s].final
}

// IsFinal reports whether s has a non-Zero final weight.
func (f *Fst) IsFinal(s StateID) bool { return !f.Final(s).IsZero() }

// NumArcs returns the number of arcs leaving s, or 0 for an invalid id.
func (f *Fst) NumArcs(s StateID) int {
	if !f.valid(s) {
		return 0
	}
	return len(f.states[s].arcs)
}

// NumInputEpsilons returns the number of arcs leaving s with ILabel == Epsilon.
func (f *Fst) NumInputEpsilons(s StateID) int {
	if !f.valid(s) {
		return 0
	}
	return f.states[s].niepsilons
}

// NumOutputEpsilons returns the number of arcs leaving s with OLabel == Epsilon.
func (f *Fst) NumOutputEpsilons(s StateID) int {
	if !f.valid(s) {
		return 0
	}
	return f.states[s].noepsilons
}

// TotalArcs returns the number of arcs in f.
func (f *Fst) TotalArcs() int {
	n := 0
	for _, st := range f.states {
		n += len(st.arcs)
	}
	return n
}

// Arcs returns a copy of the arcs leaving s in stored order, or nil for an invalid id.
func (f *Fst) Arcs(s StateID) []Arc {
	if !f.valid(s) {
		return nil
	}
	out := make([]Arc, len(f.states[s].arcs))
	copy(out, f.states[s].arcs)
	return out
}

// Kind reports Acceptor when every arc carries identical input and output labels.
func (f *Fst) Kind() Kind {
	for _, st := range f.states {
		for _, a := range st.arcs {
			if a.ILabel != a.OLabel {
				return Transducer
			}
		}
	}
	return Acceptor
}

// Equal reports whether a and b have the same semiring, start, states, final
// weights and arcs (in stored order), comparing weights within delta.
// Two nil automata are equal.
func Equal(a, b *Fst, delta float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.semiring != b.semiring || a.start != b.start || len(a.states) != len(b.states) {
		return false
	}
	for s := range a.states {
		sa, sb := a.states[s], b.states[s]
		if !weight.ApproxEqual(sa.final, sb.final, delta) || len(sa.arcs) != len(sb.arcs) {
			return false
		}
		for i := range sa.arcs {
			x, y := sa.arcs[i], sb.arcs[i]
			if x.ILabel != y.ILabel || x.OLabel != y.OLabel || x.NextState != y.NextState {
				return false
			}
			if !weight.ApproxEqual(x.Weight, y.Weight, delta) {
				return false
			}
		}
	}
	return true
}
