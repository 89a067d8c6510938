// SPDX-License-Identifier: MIT

// Package prune removes the states and arcs of an automaton that lie only
// on paths much worse than the best one.
//
// An arc e = p→q survives when α[p] ⊗ w(e) ⊗ β[q] ≤ β[start] ⊗ threshold,
// where α is the shortest distance from the start and β the shortest
// distance to the final states; a final weight survives on the same test
// with ρ in place of w(e) ⊗ β[q]. Only path semirings are supported.
//
// Options:
//
//	– Delta:          shortest-distance tolerance (default weight.DefaultDelta).
//	– StateThreshold: keep at most this many states (0 means no limit).
package prune

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/shortest"
	"github.com/katalvlaran/lvfst/transform"
	"github.com/katalvlaran/lvfst/weight"
)

// Sentinel errors returned by Prune.
var (
	// ErrSemiringMismatch indicates a threshold from another semiring.
	ErrSemiringMismatch = errors.New("prune: threshold uses a different semiring")

	// ErrBadStateThreshold indicates a negative state limit.
	ErrBadStateThreshold = errors.New("prune: state threshold must be non-negative")
)

// Options configures Prune.
type Options struct {
	Delta          float64
	StateThreshold int
}

// Option represents a functional option for Prune.
type Option func(*Options)

// WithDelta sets the shortest-distance tolerance.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if delta > 0 {
			o.Delta = delta
		}
	}
}

// WithStateThreshold keeps at most n states, preferring those on the best paths.
func WithStateThreshold(n int) Option {
	return func(o *Options) { o.StateThreshold = n }
}

// DefaultOptions returns Delta=weight.DefaultDelta and no state limit.
func DefaultOptions() Options {
	return Options{Delta: weight.DefaultDelta}
}

// Prune rewrites f in place, keeping what lies within threshold of the best
// path. A Zero threshold keeps every successful path.
func Prune(f *fst.Fst, threshold weight.Weight, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	sr := f.Semiring()
	if err := sr.RequirePath(); err != nil {
		return err
	}
	if threshold.Semiring() != sr {
		return fmt.Errorf("%w: %s on %s automaton", ErrSemiringMismatch, threshold.Semiring(), sr)
	}
	if o.StateThreshold < 0 {
		return ErrBadStateThreshold
	}
	start := f.Start()
	if start == fst.NoStateID {
		f.DeleteStates()
		return nil
	}

	// 1) Forward and backward distances.
	fwd, err := shortest.Distance(f, shortest.WithDelta(o.Delta))
	if err != nil {
		return err
	}
	bwd, err := shortest.Distance(f, shortest.WithReverse(), shortest.WithDelta(o.Delta))
	if err != nil {
		return err
	}
	limit := weight.Times(bwd.At(start), threshold)
	within := func(w weight.Weight) bool {
		if w.IsZero() {
			return false
		}
		return !weight.Less(limit, w) || weight.ApproxEqual(w, limit, o.Delta)
	}

	// 2) Arcs and final weights outside the limit.
	n := f.NumStates()
	for s := fst.StateID(0); int(s) < n; s++ {
		as := fwd.At(s)
		if as.IsZero() {
			continue
		}
		arcs := f.Arcs(s)
		kept := arcs[:0]
		for _, a := range arcs {
			if within(weight.Times(weight.Times(as, a.Weight), bwd.At(a.NextState))) {
				kept = append(kept, a)
			}
		}
		if len(kept) != f.NumArcs(s) {
			_ = f.SetArcs(s, kept)
		}
		if fw := f.Final(s); !fw.IsZero() && !within(weight.Times(as, fw)) {
			_ = f.SetFinal(s, weight.Zero(sr))
		}
	}

	// 3) State limit: rank states by the best path through them.
	if o.StateThreshold > 0 && o.StateThreshold < n {
		ranked := make([]fst.StateID, n)
		through := make([]weight.Weight, n)
		for s := range ranked {
			ranked[s] = fst.StateID(s)
			through[s] = weight.Times(fwd.At(fst.StateID(s)), bwd.At(fst.StateID(s)))
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := through[ranked[i]], through[ranked[j]]
			if a.Value() == b.Value() {
				return ranked[i] == start
			}
			return weight.Less(a, b)
		})
		if err := f.DeleteStateSet(ranked[o.StateThreshold:]); err != nil {
			return err
		}
	}
	transform.Connect(f)
	return nil
}
