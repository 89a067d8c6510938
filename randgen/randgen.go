// SPDX-License-Identifier: MIT

// Package randgen draws random successful paths from an automaton.
//
// Each draw walks from the start state, at every state choosing between its
// arcs and, when the state is final, stopping. UniformSelector gives every
// choice the same probability; LogProbSelector reads weights as negative
// log probabilities. Draws that reach a dead end or exceed MaxLength are
// discarded. The drawn paths are returned as a tree rooted at state 0 in
// which paths making the same choices share their prefix.
//
// Options:
//
//	– Selector:  UniformSelector (default) or LogProbSelector.
//	– Seed/Rand: reproducible draws (default seed 1).
//	– NPath:     number of draws (default 1).
//	– MaxLength: longest accepted path in arcs (default unlimited).
//	– Weighted:  keep the drawn arcs' weights (default: One).
package randgen

import (
	"errors"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// ErrBadNPath indicates a draw count below one.
var ErrBadNPath = errors.New("randgen: NPath must be at least 1")

// Selector chooses how the next step of a walk is drawn.
type Selector uint8

const (
	// UniformSelector draws each arc, and stopping, with equal probability.
	UniformSelector Selector = iota
	// LogProbSelector draws proportionally to exp(-weight).
	LogProbSelector
)

// Options configures RandGen.
type Options struct {
	Selector  Selector
	Rand      *rand.Rand
	NPath     int
	MaxLength int
	Weighted  bool
}

// Option represents a functional option for RandGen.
type Option func(*Options)

// WithSelector sets the step selector.
func WithSelector(s Selector) Option {
	return func(o *Options) { o.Selector = s }
}

// WithSeed makes the draws reproducible.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithRand draws from r. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("randgen: WithRand(nil)")
	}
	return func(o *Options) { o.Rand = r }
}

// WithNPath sets the number of draws.
func WithNPath(n int) Option {
	return func(o *Options) { o.NPath = n }
}

// WithMaxLength discards paths longer than n arcs. Non-positive n means no limit.
func WithMaxLength(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			n = math.MaxInt32
		}
		o.MaxLength = n
	}
}

// WithWeighted keeps the weights of the drawn arcs and final states.
func WithWeighted(on bool) Option {
	return func(o *Options) { o.Weighted = on }
}

// DefaultOptions returns UniformSelector, seed 1, one path, no length limit,
// unweighted output.
func DefaultOptions() Options {
	return Options{
		Selector:  UniformSelector,
		Rand:      rand.New(rand.NewSource(1)),
		NPath:     1,
		MaxLength: math.MaxInt32,
	}
}

// Moves of a walk other than arc positions.
const (
	stop    = -1 // accept at the current state
	deadEnd = -2 // no arc and not final
)

// RandGen returns up to NPath random successful paths of f. f is unchanged.
func RandGen(f *fst.Fst, opts ...Option) (*fst.Fst, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.NPath < 1 {
		return nil, ErrBadNPath
	}
	out := f.Empty()
	if f.Start() == fst.NoStateID {
		return out, nil
	}
	root := out.AddState()
	_ = out.SetStart(root)
	type edge struct {
		from fst.StateID
		pos  int
	}
	children := make(map[edge]fst.StateID)

	for i := 0; i < o.NPath; i++ {
		moves, ok := walk(f, o)
		if !ok {
			continue
		}
		// Replay the moves into the tree, sharing prefixes.
		cur, src := root, f.Start()
		for _, pos := range moves {
			if pos == stop {
				fw := weight.One(f.Semiring())
				if o.Weighted {
					fw = f.Final(src)
				}
				_ = out.SetFinal(cur, fw)
				break
			}
			a := f.Arcs(src)[pos]
			e := edge{from: cur, pos: pos}
			next, seen := children[e]
			if !seen {
				next = out.AddState()
				children[e] = next
				w := weight.One(f.Semiring())
				if o.Weighted {
					w = a.Weight
				}
				_ = out.AddArc(cur, fst.Arc{ILabel: a.ILabel, OLabel: a.OLabel, Weight: w, NextState: next})
			}
			cur, src = next, a.NextState
		}
	}
	if out.NumStates() == 1 && !out.IsFinal(root) {
		out.DeleteStates()
	}
	return out, nil
}

// walk draws one path; ok is false when it is discarded.
func walk(f *fst.Fst, o Options) (moves []int, ok bool) {
	s := f.Start()
	for len(moves) <= o.MaxLength {
		pos := choose(f, s, o)
		if pos == deadEnd {
			return nil, false
		}
		moves = append(moves, pos)
		if pos == stop {
			return moves, true
		}
		s = f.Arcs(s)[pos].NextState
	}
	return nil, false
}

// choose returns an arc position of s, stop or deadEnd.
func choose(f *fst.Fst, s fst.StateID, o Options) int {
	arcs := f.Arcs(s)
	final := f.Final(s)
	n := len(arcs)
	if !final.IsZero() {
		n++
	}
	if n == 0 {
		return deadEnd
	}
	if o.Selector == UniformSelector {
		k := o.Rand.Intn(n)
		if k == len(arcs) {
			return stop
		}
		return k
	}
	// Log-probability draw: p(choice) ∝ exp(-w).
	probs := make([]float64, n)
	sum := 0.0
	for i, a := range arcs {
		probs[i] = math.Exp(-a.Weight.Value())
		sum += probs[i]
	}
	if !final.IsZero() {
		probs[n-1] = math.Exp(-final.Value())
		sum += probs[n-1]
	}
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return deadEnd
	}
	r := o.Rand.Float64() * sum
	for i, p := range probs {
		if r < p {
			if i == len(arcs) {
				return stop
			}
			return i
		}
		r -= p
	}
	if !final.IsZero() {
		return stop
	}
	return len(arcs) - 1
}
