// SPDX-License-Identifier: MIT

// Package compose implements weighted composition of transducers and the
// acceptor operations derived from it, Intersect and Difference.
//
// Composition pairs arcs of the first automaton whose output label matches
// the input label of an arc of the second. ε labels are handled by a
// sequence filter: inside a run of ε moves, the first automaton's output-ε
// moves always come before the second automaton's input-ε moves, so every
// ε-path of the result is produced exactly once.
//
// Errors (sentinel):
//
//	– ErrSemiringMismatch   if the operands use different semirings.
//	– ErrNotAcceptor        if Intersect or Difference receive a transducer.
//	– ErrDifferenceOperand  if the second Difference operand is weighted,
//	                        has ε arcs, or is not deterministic.
package compose

import "errors"

// Sentinel errors returned by the compose package.
var (
	// ErrSemiringMismatch indicates operands over different semirings.
	ErrSemiringMismatch = errors.New("compose: operands have different semirings")

	// ErrNotAcceptor indicates a transducer where an acceptor is required.
	ErrNotAcceptor = errors.New("compose: operand is not an acceptor")

	// ErrDifferenceOperand indicates a second Difference operand that is not
	// an unweighted, ε-free, deterministic acceptor.
	ErrDifferenceOperand = errors.New("compose: difference needs an unweighted, epsilon-free, deterministic acceptor")
)

// FilterType selects the composition filter.
type FilterType uint8

const (
	// SequenceFilter orders ε moves: first operand before second operand.
	SequenceFilter FilterType = iota
	// AutoFilter lets the implementation choose. It currently means SequenceFilter.
	AutoFilter
)

// Options configures Compose.
type Options struct {
	Connect bool       // trim states that are not on a successful path
	Filter  FilterType // ε filter
}

// Option represents a functional option for Compose.
type Option func(*Options)

// WithConnect toggles trimming of the result (default true).
func WithConnect(connect bool) Option {
	return func(o *Options) { o.Connect = connect }
}

// WithFilter selects the ε filter.
func WithFilter(t FilterType) Option {
	return func(o *Options) { o.Filter = t }
}

// DefaultOptions returns Connect=true and SequenceFilter.
func DefaultOptions() Options {
	return Options{Connect: true, Filter: SequenceFilter}
}
