// SPDX-License-Identifier: MIT

// Package epsilon removes and normalizes epsilon transitions.
//
// RmEpsilon rewrites an automaton in place so that no arc carries ε on both
// sides: every state receives the non-ε:ε arcs and final weight of its
// ε:ε-closure, weighted by the closure distance. EpsNormalize returns a new
// transducer in which, along every path, arcs with an ε input label follow
// all arcs with a non-ε input label (or the same for outputs).
//
// Errors (sentinel):
//
//	– ErrEpsilonCycle if EpsNormalize meets a cycle of input-ε arcs that
//	  emits output, which has no finite normal form.
//	– shortest.ErrDiverged when a closure distance does not converge.
package epsilon

import (
	"errors"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/shortest"
	"github.com/katalvlaran/lvfst/transform"
	"github.com/katalvlaran/lvfst/weight"
)

// ErrEpsilonCycle indicates an input-ε cycle that produces output labels.
var ErrEpsilonCycle = errors.New("epsilon: input-epsilon cycle with output")

// Options configures RmEpsilon.
type Options struct {
	Delta   float64 // closure convergence tolerance
	Connect bool    // trim the result
}

// Option represents a functional option for RmEpsilon.
type Option func(*Options)

// WithDelta sets the closure convergence tolerance.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if delta > 0 {
			o.Delta = delta
		}
	}
}

// WithConnect toggles trimming of the result.
func WithConnect(on bool) Option {
	return func(o *Options) { o.Connect = on }
}

// DefaultOptions returns Delta=weight.DefaultDelta, Connect=true.
func DefaultOptions() Options {
	return Options{Delta: weight.DefaultDelta, Connect: true}
}

func isEpsEps(a fst.Arc) bool { return a.ILabel == fst.Epsilon && a.OLabel == fst.Epsilon }

// RmEpsilon removes every ε:ε arc of f in place, preserving the weight of
// every successful path up to Delta. On error f is unchanged.
//
// Complexity: one closure search per state, O(V·(V + E)) in the worst case.
func RmEpsilon(f *fst.Fst, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	n := f.NumStates()
	arcs := make([][]fst.Arc, n)
	finals := make([]weight.Weight, n)

	// 1) Closure of every state, computed on the untouched automaton.
	for s := fst.StateID(0); int(s) < n; s++ {
		if f.NumInputEpsilons(s) == 0 || f.NumOutputEpsilons(s) == 0 {
			// No ε:ε arc leaves s, so its closure is s alone.
			arcs[s] = f.Arcs(s)
			finals[s] = f.Final(s)
			continue
		}
		d, err := shortest.Distance(f,
			shortest.WithSource(s),
			shortest.WithArcFilter(isEpsEps),
			shortest.WithDelta(o.Delta),
		)
		if err != nil {
			return err
		}
		fw := weight.Zero(f.Semiring())
		var out []fst.Arc
		for q := fst.StateID(0); int(q) < d.Len(); q++ {
			dq := d.At(q)
			if dq.IsZero() {
				continue
			}
			fw = weight.Plus(fw, weight.Times(dq, f.Final(q)))
			for _, a := range f.Arcs(q) {
				if isEpsEps(a) {
					continue
				}
				a.Weight = weight.Times(dq, a.Weight)
				out = append(out, a)
			}
		}
		arcs[s] = out
		finals[s] = fw
	}

	// 2) Commit. Destinations are existing states, so SetArcs cannot fail.
	for s := fst.StateID(0); int(s) < n; s++ {
		kept := arcs[s][:0]
		for _, a := range arcs[s] {
			if !isEpsEps(a) {
				kept = append(kept, a)
			}
		}
		_ = f.SetArcs(s, kept)
		_ = f.SetFinal(s, finals[s])
	}
	if o.Connect {
		transform.Connect(f)
	}
	return nil
}
