// SPDX-License-Identifier: MIT

// Package minimize merges the equivalent states of a deterministic
// automaton.
//
// Minimize works on the label-pair encoding of a transducer, pushes weights
// towards the start so that equivalent suffixes carry equal weights, and
// then refines the partition of states by (label, quantized weight,
// destination class) signatures until it is stable (Moore's algorithm).
//
// Errors (sentinel):
//
//	– ErrNonDeterministic if the (encoded) input is not deterministic.
package minimize

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/reweight"
	"github.com/katalvlaran/lvfst/transform"
	"github.com/katalvlaran/lvfst/weight"
)

// ErrNonDeterministic indicates an input with two arcs sharing a label at
// one state.
var ErrNonDeterministic = errors.New("minimize: automaton is not deterministic")

// Options configures Minimize.
type Options struct {
	Delta float64 // push tolerance and weight quantization
}

// Option represents a functional option for Minimize.
type Option func(*Options)

// WithDelta sets the push tolerance and weight quantization.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if delta > 0 {
			o.Delta = delta
		}
	}
}

// DefaultOptions returns Delta=weight.DefaultDelta.
func DefaultOptions() Options {
	return Options{Delta: weight.DefaultDelta}
}

// Minimize replaces f by its minimal deterministic equivalent. On error f
// is unchanged.
//
// Complexity: O(V·(V + E log D)) for the refinement plus the push.
func Minimize(f *fst.Fst, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	// 1) Work on an encoded copy.
	g := f.Copy()
	var enc *transform.Encoder
	if g.Kind() == fst.Transducer {
		enc = transform.NewEncoder()
		enc.Encode(g)
	}
	if !g.Properties().InputDeterministic {
		return ErrNonDeterministic
	}
	transform.Connect(g)
	if g.Start() == fst.NoStateID {
		return f.Assign(g)
	}

	// 2) Push, then merge.
	if err := reweight.Push(g, reweight.ToInitial, reweight.WithDelta(o.Delta)); err != nil {
		return err
	}
	out := merge(g, Partition(g, o.Delta))
	if enc != nil {
		if err := enc.Decode(out); err != nil {
			return err
		}
	}
	return f.Assign(out)
}

// Partition returns the class of every state of f under the coarsest
// partition that separates states with different quantized final weights or
// different (label, weight, destination class) arc signatures. Classes are
// numbered in order of their lowest state id.
func Partition(f *fst.Fst, delta float64) []int {
	n := f.NumStates()
	class := make([]int, n)
	count := classify(n, class, func(s fst.StateID) string {
		return quantized(f.Final(s), delta)
	})
	for {
		prev := slices.Clone(class)
		next := classify(n, class, func(s fst.StateID) string {
			arcs := f.Arcs(s)
			parts := make([]string, len(arcs))
			for i, a := range arcs {
				parts[i] = fmt.Sprintf("%d:%d/%s>%d", a.ILabel, a.OLabel, quantized(a.Weight, delta), prev[a.NextState])
			}
			slices.Sort(parts)
			return strconv.Itoa(prev[s]) + "|" + strings.Join(parts, ",")
		})
		if next == count {
			return class
		}
		count = next
	}
}

// classify numbers the distinct signatures in state order and returns how
// many there are.
func classify(n int, class []int, sig func(fst.StateID) string) int {
	ids := make(map[string]int)
	for s := 0; s < n; s++ {
		k := sig(fst.StateID(s))
		c, ok := ids[k]
		if !ok {
			c = len(ids)
			ids[k] = c
		}
		class[s] = c
	}
	return len(ids)
}

func quantized(w weight.Weight, delta float64) string {
	return strconv.FormatFloat(w.Quantize(delta).Value(), 'g', -1, 64)
}

// merge builds the quotient of f by class, taking every class's arcs and
// final weight from its lowest state.
func merge(f *fst.Fst, class []int) *fst.Fst {
	k := 0
	for _, c := range class {
		k = max(k, c+1)
	}
	out := f.Empty()
	out.AddStates(k)
	done := make([]bool, k)
	for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
		c := class[s]
		if done[c] {
			continue
		}
		done[c] = true
		arcs := f.Arcs(s)
		for i := range arcs {
			arcs[i].NextState = fst.StateID(class[arcs[i].NextState])
		}
		_ = out.SetArcs(fst.StateID(c), arcs)
		_ = out.SetFinal(fst.StateID(c), f.Final(s))
	}
	_ = out.SetStart(fst.StateID(class[f.Start()]))
	return out
}
