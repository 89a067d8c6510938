// SPDX-License-Identifier: MIT

// Package transform implements the structural transformations of weighted
// automata that do not need shortest-distance machinery:
//
//   - Connect removes states that are not both accessible from the start and
//     coaccessible to a final state.
//   - TopSort renumbers an acyclic automaton in topological order; on a
//     cyclic one it answers false and changes nothing.
//   - Reverse builds the reversal with a super-initial state 0.
//   - Invert swaps input and output labels; Project copies one side onto the
//     other; ArcSort orders the arcs of every state.
//   - Encoder maps label pairs onto single labels (and back) so algorithms
//     defined on acceptors can run on transducers.
//   - Synchronize produces an equivalent transducer whose arcs carry at most
//     one delayed symbol on each side.
//
// In-place operations mutate their argument and invalidate its iterators.
// Producing operations return a new automaton over the same semiring.
package transform
