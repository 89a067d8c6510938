// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"
)

// BuilderOption customizes a constructor by mutating a builderConfig
// before construction begins.
type BuilderOption func(*builderConfig)

// TokenType selects how String and Transduction split text into labels.
type TokenType uint8

const (
	// Bytes labels each byte with its value (1..255).
	Bytes TokenType = iota
	// Runes labels each UTF-8 code point with its value.
	Runes
)

// WithWeightFn overrides the per-arc weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

// WithFinalWeight sets the final weight scalar of every path end.
// Panics on +Inf, which would make the end state non-final, and on the
// non-members NaN and -Inf.
func WithFinalWeight(x float64) BuilderOption {
	if !member(x) || math.IsInf(x, 1) {
		panic("builder: WithFinalWeight(non-member)")
	}
	return func(c *builderConfig) {
		c.final = x
	}
}

// WithTokenType selects byte or rune tokenization for string constructors.
func WithTokenType(t TokenType) BuilderOption {
	if t != Bytes && t != Runes {
		panic("builder: WithTokenType(unknown)")
	}
	return func(c *builderConfig) {
		c.tokens = t
	}
}

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}
