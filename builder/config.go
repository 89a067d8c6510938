// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • weightFn = DefaultWeightFn (One on every arc)
//   • final    = 0               (One)
//   • tokens   = Bytes
//   • rng      = nil             (pure unless seeded)

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	weightFn WeightFn
	final    float64
	tokens   TokenType
	rng      *rand.Rand
}

// newBuilderConfig applies opts in order over the defaults; last wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		weightFn: DefaultWeightFn,
		final:    DefaultArcWeight,
		tokens:   Bytes,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// arcWeight draws the next arc weight.
func (c builderConfig) arcWeight() float64 {
	return c.weightFn(c.rng)
}
