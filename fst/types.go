// SPDX-License-Identifier: MIT
// File: types.go
// Role: Label/StateID/Arc/Kind, the Fst container, sentinel errors and New.
// Concurrency:
//   - An Fst has a single writer. Concurrent readers are safe only while no
//     mutation is in progress; no internal locking is performed.

package fst

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfst/weight"
)

// Sentinel errors for automaton operations.
var (
	// ErrStateNotFound indicates that a state id does not name a state of the automaton.
	ErrStateNotFound = errors.New("fst: state not found")

	// ErrBadDestination indicates that an arc's NextState is not a valid state.
	ErrBadDestination = errors.New("fst: arc destination not found")

	// ErrBadLabel indicates a negative input or output label.
	ErrBadLabel = errors.New("fst: label must be non-negative")

	// ErrSemiringMismatch indicates a weight whose semiring differs from the automaton's.
	ErrSemiringMismatch = errors.New("fst: weight semiring differs from automaton semiring")

	// ErrIteratorInvalidated indicates that an iterator outlived a structural mutation
	// of the automaton (or state) it was bound to.
	ErrIteratorInvalidated = errors.New("fst: iterator invalidated by structural mutation")

	// ErrIteratorDone indicates a value access past the last arc.
	ErrIteratorDone = errors.New("fst: iterator is past the last arc")

	// ErrBadFormat indicates a malformed binary or text encoding.
	ErrBadFormat = errors.New("fst: malformed automaton encoding")

	// ErrBadPermutation indicates an ordering that is not a permutation of the state ids.
	ErrBadPermutation = errors.New("fst: order is not a permutation of states")
)

// Label is an input or output symbol. Label 0 is Epsilon.
type Label = int32

// Epsilon is the empty-symbol label.
const Epsilon Label = 0

// StateID identifies a state. Ids are dense, 0-based and follow creation order.
type StateID = int32

// NoStateID is the "no state" sentinel, e.g. the start of an empty automaton.
const NoStateID StateID = -1

// Arc is a weighted transition. Arcs are stored by value; mutating a returned
// Arc never changes the automaton.
type Arc struct {
	ILabel    Label
	OLabel    Label
	Weight    weight.Weight
	NextState StateID
}

// Kind is the label-pair type of an automaton.
type Kind uint8

const (
	// Acceptor means every arc has ILabel == OLabel.
	Acceptor Kind = iota
	// Transducer means at least one arc has ILabel != OLabel.
	Transducer
)

// String returns "acceptor" or "transducer".
func (k Kind) String() string {
	if k == Acceptor {
		return "acceptor"
	}
	return "transducer"
}

// state is the per-state record of the vector representation.
type state struct {
	final      weight.Weight
	arcs       []Arc
	niepsilons int
	noepsilons int
	gen        uint64 // bumped on every structural change of arcs
}

// Fst is a mutable weighted finite-state transducer in vector representation.
//
// Every weight stored in an Fst belongs to its semiring; mutators reject
// foreign weights with ErrSemiringMismatch and leave the automaton unchanged.
type Fst struct {
	semiring weight.Semiring
	start    StateID
	states   []*state

	// stateGen changes whenever states are added or removed.
	stateGen uint64
	// renumberGen changes whenever state ids are reassigned.
	renumberGen uint64
}

// New returns an empty automaton (no states, no start) over semiring s.
func New(s weight.Semiring) (*Fst, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %s", weight.ErrUnsupportedSemiring, s)
	}
	return &Fst{semiring: s, start: NoStateID}, nil
}

// Empty returns a new automaton over the same semiring as f with no states.
func (f *Fst) Empty() *Fst {
	return &Fst{semiring: f.semiring, start: NoStateID}
}

func newState(s weight.Semiring) *state {
	return &state{final: weight.Zero(s)}
}

func (f *Fst) valid(s StateID) bool {
	return s >= 0 && int(s) < len(f.states)
}

func isEpsilon(l Label) bool { return l == Epsilon }

// checkArc validates an arc against f without modifying anything.
func (f *Fst) checkArc(a Arc) error {
	if a.ILabel < 0 || a.OLabel < 0 {
		return fmt.Errorf("%w: %d:%d", ErrBadLabel, a.ILabel, a.OLabel)
	}
	if a.Weight.Semiring() != f.semiring {
		return fmt.Errorf("%w: %s arc on %s automaton", ErrSemiringMismatch, a.Weight.Semiring(), f.semiring)
	}
	if !f.valid(a.NextState) {
		return fmt.Errorf("%w: %d", ErrBadDestination, a.NextState)
	}
	return nil
}

func (st *state) countEpsilons(a Arc, delta int) {
	if isEpsilon(a.ILabel) {
		st.niepsilons += delta
	}
	if isEpsilon(a.OLabel) {
		st.noepsilons += delta
	}
}
