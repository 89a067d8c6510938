// Package lvfst is a weighted finite-state transducer (WFST) library: mutable
// automata over the tropical and log semirings, their iterators, and the
// rational and optimization algorithms that combine them.
//
// 🚀 What is in lvfst?
//
//	• Weights: tropical, log and log64 semirings with ⊕, ⊗, quantization
//	• Automata: a vector-backed mutable Fst with stale-safe iterators
//	• Rational operations: union, concatenation, closure
//	• Composition: compose, intersect, difference
//	• Optimization: determinize, minimize, ε-removal, push, prune
//	• Search: shortest distance, n-shortest paths, random paths
//	• Boundaries: string-keyed dispatch (script) and a handle API (capi)
//	• Storage: file, memory, SQLite, Postgres, Redis, MongoDB and Badger
//
// ✨ Why choose lvfst?
//
//   - Explicit semirings: every weight carries its tag, mismatches are errors
//   - Functional options: every algorithm takes Options with documented defaults
//   - Observable: zap diagnostics and OpenTelemetry spans around dispatch
//
// Subpackages:
//
//	weight/      - semirings and weight arithmetic
//	fst/         - Fst, Arc, iterators, binary and text I/O
//	transform/   - connect, reverse, invert, project, arc sort, synchronize
//	rational/    - union, concat, closure
//	compose/     - composition with sequence filter, intersect, difference
//	shortest/    - shortest distance and n-shortest paths
//	determinize/ - weighted determinization and disambiguation
//	minimize/    - minimization of deterministic automata
//	epsilon/     - ε-removal and ε-normalization
//	reweight/    - potentials and weight pushing
//	prune/       - weight and state-count pruning
//	randgen/     - random path generation
//	compare/     - equivalence and isomorphism
//	builder/     - fixtures: strings, unions, Σ*, random sets
//	script/      - algorithm dispatch by string option names
//	capi/        - opaque-handle boundary with leases and typed errors
//	store/       - automaton persistence backends
//	config/      - YAML configuration and logger setup
//
// Quick ASCII example:
//
//	(0) ──a:x/0.5──▶ (1) ──b:y/1──▶ ((2))
//
//	is a two-arc transducer mapping "ab" to "xy" with cost 1.5.
//
//	go get github.com/katalvlaran/lvfst
package lvfst
