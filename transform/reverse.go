// SPDX-License-Identifier: MIT

package transform

import (
	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// Reverse returns the reversal of f. State s of f becomes state s+1 of the
// result; state 0 is a new super-initial state with an ε:ε arc, weighted by
// the final weight, into every final state of f. The old start becomes the
// only final state (weight One). Every supported semiring is commutative,
// so arc weights carry over unchanged.
func Reverse(f *fst.Fst) *fst.Fst {
	out := f.Empty()
	n := f.NumStates()
	out.ReserveStates(n + 1)
	out.AddStates(n + 1)
	_ = out.SetStart(0)
	if start := f.Start(); start != fst.NoStateID {
		_ = out.SetFinal(start+1, weight.One(f.Semiring()))
	}
	for s := fst.StateID(0); int(s) < n; s++ {
		if fw := f.Final(s); !fw.IsZero() {
			_ = out.AddArc(0, fst.Arc{ILabel: fst.Epsilon, OLabel: fst.Epsilon, Weight: fw, NextState: s + 1})
		}
		for _, a := range f.Arcs(s) {
			_ = out.AddArc(a.NextState+1, fst.Arc{ILabel: a.ILabel, OLabel: a.OLabel, Weight: a.Weight, NextState: s + 1})
		}
	}
	return out
}
