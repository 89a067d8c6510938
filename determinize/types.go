// SPDX-License-Identifier: MIT

// Package determinize implements weighted determinization and
// disambiguation.
//
// Determinize runs the weighted subset construction. Each output state is a
// set of (input state, residual output string, residual weight) triples;
// residual weights are quantized by Delta so that subsets reached through
// numerically different but equivalent paths coincide. Acceptors need no
// residual strings. A transducer must be functional (each input string maps
// to at most one output string) unless TypeDisambiguate is selected, which
// determinizes the label pairs instead and keeps every distinct pair string.
//
// Epsilon labels are treated as ordinary symbols; remove them first with
// epsilon.RmEpsilon when that is not wanted.
//
// Options:
//
//	– Type:      TypeFunctional (default) or TypeDisambiguate.
//	– Delta:     residual quantization (default weight.DefaultDelta).
//	– MaxStates: fail with ErrStateLimit past this many subsets (0 means no limit).
//
// Errors (sentinel):
//
//	– ErrNonFunctional if a transducer maps one input string to two outputs.
//	– ErrStateLimit    if MaxStates is exceeded, as happens on inputs that
//	  have no finite deterministic equivalent.
//	– weight.ErrNoPathProperty from Disambiguate on non-path semirings.
package determinize

import (
	"errors"

	"github.com/katalvlaran/lvfst/weight"
)

// Sentinel errors returned by the determinize package.
var (
	// ErrNonFunctional indicates a transducer that is not functional.
	ErrNonFunctional = errors.New("determinize: transducer is not functional")

	// ErrStateLimit indicates that MaxStates subsets were built without finishing.
	ErrStateLimit = errors.New("determinize: state limit exceeded")
)

// Type selects how transducers are determinized.
type Type uint8

const (
	// TypeFunctional requires a functional input and factors outputs.
	TypeFunctional Type = iota
	// TypeDisambiguate determinizes over encoded (input, output) pairs.
	TypeDisambiguate
)

// String returns "functional" or "disambiguate".
func (t Type) String() string {
	if t == TypeDisambiguate {
		return "disambiguate"
	}
	return "functional"
}

// Options configures Determinize and Disambiguate.
type Options struct {
	Type      Type
	Delta     float64
	MaxStates int
}

// Option represents a functional option.
type Option func(*Options)

// WithType selects the determinization type.
func WithType(t Type) Option {
	return func(o *Options) { o.Type = t }
}

// WithDelta sets the residual quantization.
func WithDelta(delta float64) Option {
	return func(o *Options) {
		if delta > 0 {
			o.Delta = delta
		}
	}
}

// WithMaxStates bounds the number of subsets built.
func WithMaxStates(n int) Option {
	return func(o *Options) { o.MaxStates = n }
}

// DefaultOptions returns TypeFunctional, Delta=weight.DefaultDelta, no limit.
func DefaultOptions() Options {
	return Options{Type: TypeFunctional, Delta: weight.DefaultDelta}
}
