// SPDX-License-Identifier: MIT

// Package reweight moves weight along the paths of an automaton without
// changing the weight of any successful path: Reweight applies arbitrary
// state potentials, and Push uses shortest distances as potentials so that
// weight is gathered as close to the start (or to the final states) as the
// semiring allows.
package reweight

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/shortest"
	"github.com/katalvlaran/lvfst/weight"
)

// ErrSemiringMismatch indicates potentials from a different semiring.
var ErrSemiringMismatch = errors.New("reweight: potentials use a different semiring")

// Type selects the direction weight is moved towards.
type Type uint8

const (
	// ToInitial moves weight towards the start state.
	ToInitial Type = iota
	// ToFinal moves weight towards the final states.
	ToFinal
)

// Options configures Push.
type Options struct {
	Delta             float64 // shortest-distance convergence tolerance
	RemoveTotalWeight bool    // drop the total weight instead of keeping it at the start or finals
}

// Option represents a functional option for Push.
type Option func(*Options)

// WithDelta sets the shortest-distance tolerance.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if delta > 0 {
			o.Delta = delta
		}
	}
}

// WithRemoveTotalWeight makes the pushed automaton's total weight One.
func WithRemoveTotalWeight() Option {
	return func(o *Options) { o.RemoveTotalWeight = true }
}

// DefaultOptions returns Delta=weight.DefaultDelta, RemoveTotalWeight=false.
func DefaultOptions() Options {
	return Options{Delta: weight.DefaultDelta}
}

// Reweight rewrites f in place with potentials p (indexed by state; missing
// entries count as Zero):
//
//	ToInitial: w(e) ← p[src]⁻¹ ⊗ w(e) ⊗ p[dst],  ρ(q) ← p[q]⁻¹ ⊗ ρ(q)
//	ToFinal:   w(e) ← p[src] ⊗ w(e) ⊗ p[dst]⁻¹,  ρ(q) ← p[q] ⊗ ρ(q)
//
// and compensates at the start so path weights are preserved. States whose
// potential is Zero are left alone. When weight must be added at a start
// state that has incoming arcs, a new start state with one ε arc is created.
func Reweight(f *fst.Fst, p []weight.Weight, t Type) error {
	initialAcyclic, err := reweightStates(f, p, t)
	if err != nil {
		return err
	}
	start := f.Start()
	if start == fst.NoStateID || int(start) >= len(p) || p[start].IsZero() {
		return nil
	}
	sw := p[start]
	if t == ToFinal {
		sw = weight.Divide(weight.One(f.Semiring()), sw)
	}
	return applyStartWeight(f, sw, initialAcyclic)
}

// reweightStates applies the potentials to arcs and final weights only.
// It reports whether the start had no incoming arcs beforehand.
func reweightStates(f *fst.Fst, p []weight.Weight, t Type) (bool, error) {
	sr := f.Semiring()
	for _, w := range p {
		if w.Semiring() != sr {
			return false, fmt.Errorf("%w: %s on %s automaton", ErrSemiringMismatch, w.Semiring(), sr)
		}
	}
	pot := func(s fst.StateID) weight.Weight {
		if int(s) < len(p) {
			return p[s]
		}
		return weight.Zero(sr)
	}
	initialAcyclic := f.Properties().InitialAcyclic
	for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
		ps := pot(s)
		if ps.IsZero() {
			continue
		}
		arcs := f.Arcs(s)
		for i := range arcs {
			pn := pot(arcs[i].NextState)
			if pn.IsZero() {
				continue
			}
			if t == ToInitial {
				arcs[i].Weight = weight.Divide(weight.Times(arcs[i].Weight, pn), ps)
			} else {
				arcs[i].Weight = weight.Divide(weight.Times(ps, arcs[i].Weight), pn)
			}
		}
		if err := f.SetArcs(s, arcs); err != nil {
			return false, err
		}
		if fw := f.Final(s); !fw.IsZero() {
			if t == ToInitial {
				fw = weight.Divide(fw, ps)
			} else {
				fw = weight.Times(ps, fw)
			}
			_ = f.SetFinal(s, fw)
		}
	}
	return initialAcyclic, nil
}

// applyStartWeight ⊗-premultiplies every path by w.
func applyStartWeight(f *fst.Fst, w weight.Weight, initialAcyclic bool) error {
	if w.IsOne() {
		return nil
	}
	start := f.Start()
	if !initialAcyclic {
		ns := f.AddState()
		if err := f.AddArc(ns, fst.Arc{Weight: w, NextState: start}); err != nil {
			return err
		}
		return f.SetStart(ns)
	}
	arcs := f.Arcs(start)
	for i := range arcs {
		arcs[i].Weight = weight.Times(w, arcs[i].Weight)
	}
	if err := f.SetArcs(start, arcs); err != nil {
		return err
	}
	if fw := f.Final(start); !fw.IsZero() {
		return f.SetFinal(start, weight.Times(w, fw))
	}
	return nil
}

// Push reweights f in place with shortest distances: towards the start it
// uses distances to the final states, towards the finals distances from
// the start. Path weights are unchanged unless RemoveTotalWeight is set, in
// which case every path weight is divided by the total weight.
func Push(f *fst.Fst, t Type, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if f.Start() == fst.NoStateID {
		return nil
	}
	dopts := []shortest.Option{shortest.WithDelta(o.Delta)}
	if t == ToInitial {
		dopts = append(dopts, shortest.WithReverse())
	}
	d, err := shortest.Distance(f, dopts...)
	if err != nil {
		return err
	}
	p := make([]weight.Weight, f.NumStates())
	for s := range p {
		p[s] = d.At(fst.StateID(s))
	}
	if t == ToInitial && o.RemoveTotalWeight {
		// Without the start compensation every path loses the total weight.
		_, err = reweightStates(f, p, t)
		return err
	}
	if err = Reweight(f, p, t); err != nil {
		return err
	}
	if !o.RemoveTotalWeight {
		return nil
	}
	total := weight.Zero(f.Semiring())
	for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
		total = weight.Plus(total, f.Final(s))
	}
	if total.IsZero() {
		return nil
	}
	for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
		if fw := f.Final(s); !fw.IsZero() {
			_ = f.SetFinal(s, weight.Divide(fw, total))
		}
	}
	return nil
}
