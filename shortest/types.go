// SPDX-License-Identifier: MIT

// Package shortest defines the options, errors and queue disciplines of the
// single-source shortest-distance and n-shortest-path algorithms.
//
// Distance follows the generic single-source framework: every state keeps a
// distance d and a residual r; popping q relaxes each arc q→n with
// d[n] ⊕= r[q] ⊗ w until no distance moves by more than Delta. It is exact
// on tropical automata and converges within Delta on log automata.
//
// Options:
//
//	– Source:    state to start from (default: the start state).
//	– Reverse:   compute distances to the final states instead.
//	– Delta:     convergence tolerance (default weight.DefaultDelta).
//	– ArcFilter: restrict relaxation to accepted arcs.
//	– Queue:     FIFOQueue, ShortestFirstQueue or AutoQueue (default).
//	– NShortest: number of paths returned by Path (default 1).
//	– Unique:    Path returns distinct label strings only.
//
// Errors (sentinel):
//
//	– ErrBadSource       if Source does not name a state.
//	– ErrBadNShortest    if NShortest < 1.
//	– ErrDiverged        if relaxation does not settle (negative cycles).
//	– weight.ErrNoPathProperty from Path on non-path semirings.
package shortest

import (
	"errors"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// Sentinel errors returned by the shortest package.
var (
	// ErrBadSource indicates a Source option that does not name a state.
	ErrBadSource = errors.New("shortest: source state not found")

	// ErrBadNShortest indicates a path count below one.
	ErrBadNShortest = errors.New("shortest: NShortest must be at least 1")

	// ErrDiverged indicates that distances kept changing past the relaxation
	// budget, as happens around negative-weight cycles.
	ErrDiverged = errors.New("shortest: distances did not converge")
)

// QueueType selects the order in which states are relaxed.
type QueueType uint8

const (
	// AutoQueue picks ShortestFirstQueue on path semirings with non-negative
	// weights and FIFOQueue otherwise.
	AutoQueue QueueType = iota
	// FIFOQueue relaxes states in discovery order. Always correct.
	FIFOQueue
	// ShortestFirstQueue relaxes the state with the best distance first
	// (Dijkstra order). Only correct on path semirings with non-negative weights.
	ShortestFirstQueue
)

// Options configures Distance and Path.
type Options struct {
	Source    fst.StateID        // start of the search; NoStateID means f.Start()
	Reverse   bool               // distances to final states
	Delta     float64            // convergence tolerance
	ArcFilter func(fst.Arc) bool // nil accepts every arc
	Queue     QueueType          // relaxation order
	NShortest int                // paths returned by Path
	Unique    bool               // Path keeps distinct label strings only
}

// Option represents a functional option for Distance and Path.
type Option func(*Options)

// WithSource starts the search at s instead of the start state.
func WithSource(s fst.StateID) Option {
	return func(o *Options) { o.Source = s }
}

// WithReverse computes, for every state, the distance to the final states.
func WithReverse() Option {
	return func(o *Options) { o.Reverse = true }
}

// WithDelta sets the convergence tolerance. Non-positive values keep the default.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if delta > 0 {
			o.Delta = delta
		}
	}
}

// WithArcFilter restricts relaxation to arcs accepted by keep.
func WithArcFilter(keep func(fst.Arc) bool) Option {
	return func(o *Options) { o.ArcFilter = keep }
}

// WithQueue selects the relaxation order.
func WithQueue(q QueueType) Option {
	return func(o *Options) { o.Queue = q }
}

// WithNShortest sets the number of paths Path returns.
func WithNShortest(n int) Option {
	return func(o *Options) { o.NShortest = n }
}

// WithUnique makes Path drop paths whose label strings were already returned.
func WithUnique() Option {
	return func(o *Options) { o.Unique = true }
}

// DefaultOptions returns the defaults:
//   - Source:    NoStateID (the start state).
//   - Reverse:   false.
//   - Delta:     weight.DefaultDelta.
//   - ArcFilter: nil (every arc).
//   - Queue:     AutoQueue.
//   - NShortest: 1.
//   - Unique:    false.
func DefaultOptions() Options {
	return Options{
		Source:    fst.NoStateID,
		Delta:     weight.DefaultDelta,
		Queue:     AutoQueue,
		NShortest: 1,
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
