// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with builderErrorf / %w.
//   • Option constructors (WithX) panic on meaningless input; constructors
//     return errors and never panic.

package builder

import (
	"errors"
	"fmt"
)

// ErrTooSmall indicates that a numeric parameter (count, length) is below the
// allowed minimum for the requested constructor.
var ErrTooSmall = errors.New("builder: parameter too small")

// ErrBadLabel indicates a label that is negative, or an ε label inside an
// alphabet where a real symbol is required.
var ErrBadLabel = errors.New("builder: invalid label")

// ErrNeedRandSource indicates that a stochastic constructor was used without
// WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that the automaton rejected a mutation, or a
// nil constructor was passed to Build.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf returns "<method>: <message>: <sentinel>" so that errors.Is
// keeps working on the sentinel wrapped in args via %w.
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: "+format, append([]interface{}{method}, args...)...)
}
