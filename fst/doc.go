// SPDX-License-Identifier: MIT

// Package fst defines the mutable weighted finite-state transducer (WFST)
// used throughout lvfst: states, arcs, final weights, a start state and a
// semiring tag fixed at construction.
//
// Overview:
//
//   - An *Fst stores states densely (ids 0..NumStates-1, creation order).
//     Each state has a final weight (Zero when not final) and an ordered
//     list of arcs. Every arc is (ILabel, OLabel, Weight, NextState).
//   - Label 0 is Epsilon. NoStateID (-1) is the "no start" sentinel.
//   - All weights share the automaton's semiring. Mutators validate arcs
//     (source, destination, labels, semiring) and leave the automaton
//     unchanged when they reject one.
//   - DeleteStates and DeleteStateSet renumber states; every iterator
//     bound to the automaton is invalidated.
//
// Iteration:
//
//	it := fst.NewStateIterator(f)
//	for ; !it.Done(); it.Next() {
//	    ai, _ := fst.NewArcIterator(f, it.Value())
//	    for ; !ai.Done(); ai.Next() {
//	        a := ai.Value()
//	        ...
//	    }
//	}
//
// Iterators are leases checked by generation counters: after a structural
// mutation they report Done and Err returns ErrIteratorInvalidated, rather
// than reading moved or freed storage.
//
// Serialization:
//
//   - Write/Read and WriteFile/ReadFile use a compact binary format that
//     round-trips semiring, start, finals and arcs exactly.
//   - WriteText/ReadText use the AT&T text layout for fixtures and tools.
//
// Concurrency: single writer. An Fst is not safe for concurrent mutation.
package fst
