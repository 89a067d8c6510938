// SPDX-License-Identifier: MIT

package capi

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/script"
	"github.com/katalvlaran/lvfst/store"
	"github.com/katalvlaran/lvfst/weight"
)

// Sentinel errors for handle management.
var (
	// ErrInvalidHandle indicates a handle that was never issued or was released.
	ErrInvalidHandle = errors.New("capi: invalid handle")

	// ErrHandleBorrowed indicates a release of an automaton with live iterators.
	ErrHandleBorrowed = errors.New("capi: handle has live iterators")
)

// Kind classifies boundary errors.
type Kind uint8

const (
	// KindInvalidReference covers unknown handles, state ids and arc positions.
	KindInvalidReference Kind = iota + 1
	// KindSemiringMismatch covers operands or weights of different semirings.
	KindSemiringMismatch
	// KindUnsupported covers unknown semiring tags and option values.
	KindUnsupported
	// KindIO covers load and save failures.
	KindIO
	// KindAlgorithm covers algorithm preconditions, e.g. a non-functional
	// transducer given to Determinize.
	KindAlgorithm
)

// String returns the kebab-case name of k.
func (k Kind) String() string {
	switch k {
	case KindInvalidReference:
		return "invalid-reference"
	case KindSemiringMismatch:
		return "semiring-mismatch"
	case KindUnsupported:
		return "unsupported-configuration"
	case KindIO:
		return "io"
	case KindAlgorithm:
		return "algorithm"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Error is the error type of every Session method.
type Error struct {
	Kind   Kind
	Op     string
	Handle Handle
	Cause  error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Handle != 0 {
		return fmt.Sprintf("capi: %s (handle %d): %s: %v", e.Op, e.Handle, e.Kind, e.Cause)
	}
	return fmt.Sprintf("capi: %s: %s: %v", e.Op, e.Kind, e.Cause)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Cause }

// wrap returns nil for a nil err and an *Error otherwise.
func wrap(op string, h Handle, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Kind: classify(err), Op: op, Handle: h, Cause: err}
}

// wrapIO is wrap for store calls: every load and save failure is KindIO,
// whatever the backend returned.
func wrapIO(op string, h Handle, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Op: op, Handle: h, Cause: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidHandle),
		errors.Is(err, ErrHandleBorrowed),
		errors.Is(err, fst.ErrStateNotFound),
		errors.Is(err, fst.ErrBadDestination),
		errors.Is(err, fst.ErrBadLabel),
		errors.Is(err, weight.ErrBadWeight),
		errors.Is(err, fst.ErrIteratorInvalidated),
		errors.Is(err, fst.ErrIteratorDone):
		return KindInvalidReference
	case errors.Is(err, weight.ErrSemiringMismatch),
		errors.Is(err, fst.ErrSemiringMismatch),
		errors.Is(err, script.ErrSemiringMismatch):
		return KindSemiringMismatch
	case errors.Is(err, weight.ErrUnsupportedSemiring),
		errors.Is(err, script.ErrUnsupportedOption),
		errors.Is(err, script.ErrRequiresPathSemiring):
		return KindUnsupported
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrCorrupt),
		errors.Is(err, store.ErrEmptyKey),
		errors.Is(err, fst.ErrBadFormat),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return KindIO
	default:
		return KindAlgorithm
	}
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == k
}
