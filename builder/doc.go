// SPDX-License-Identifier: MIT

// Package builder provides reusable "functional-options"-style constructors
// for automaton fixtures: linear acceptors and transducers, unions of
// strings, Σ* loops and seeded random string sets.
//
// The package offers the following key components:
//
//   - Orchestration:
//     - Build:             creates an automaton and applies Constructors in order.
//     - Constructor:       a closure that adds paths to an automaton.
//   - Constructors:
//     - Linear:            one path with paired input/output labels.
//     - Acceptor:          one path with identical labels on both sides.
//     - String, Strings:   tokenized text, one path per string.
//     - Transduction:      one path mapping an input string to an output string.
//     - Sigma:             Σ* as self-loops on the start state.
//     - RandomStrings:     n random strings over an alphabet (needs WithSeed).
//   - Configuration (BuilderOption):
//     - WithWeightFn:      per-arc weight scalar.
//     - WithFinalWeight:   final weight scalar of every path end.
//     - WithTokenType:     Bytes (default) or Runes for string tokenization.
//     - WithSeed, WithRand: RNG for random constructors and weight functions.
//   - Arc weight distributions (WeightFn):
//     - DefaultWeightFn, ConstantWeightFn, UniformWeightFn, ExponentialWeightFn,
//       ProbabilityWeightFn (cost -ln p of a sampled probability).
//
// Guarantees:
//
//   - Every path starts at the start state; a missing start state is created.
//     Applying several constructors therefore yields their union.
//   - Determinism: same inputs, options, seed and constructor order give
//     identical automata.
//   - Option constructors panic on meaningless input; constructors return
//     sentinel errors and never panic.
package builder
