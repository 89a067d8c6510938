// SPDX-License-Identifier: MIT
// Package: lvfst/builder
//
// api.go - public entry points for the builder package.
//
// Design contract:
//   - One orchestrator: Build(s, bopts, cons...). Creates f, resolves cfg, runs cons in order.
//   - Apply runs constructors against an existing automaton.
//   - Determinism: same inputs/options/seed and constructor order give identical automata.
//   - Safety: never panic; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// Constructor adds paths to f using the resolved builderConfig. Constructors
// validate parameters before mutating f and return sentinel errors.
type Constructor func(f *fst.Fst, cfg builderConfig) error

// Build creates an empty automaton over s, resolves the builder configuration
// from bopts and applies all constructors in order. The first constructor
// error is returned wrapped as "Build: %w"; no partial result is returned.
func Build(s weight.Semiring, bopts []BuilderOption, cons ...Constructor) (*fst.Fst, error) {
	f, err := fst.New(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodBuild, err)
	}
	if err := apply(f, newBuilderConfig(bopts...), cons); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply runs constructors against an existing automaton, adding their paths
// to it. On error f may hold the paths of the constructors that succeeded.
func Apply(f *fst.Fst, bopts []BuilderOption, cons ...Constructor) error {
	if f == nil {
		return fmt.Errorf("%s: nil automaton: %w", MethodBuild, ErrConstructFailed)
	}
	return apply(f, newBuilderConfig(bopts...), cons)
}

func apply(f *fst.Fst, cfg builderConfig, cons []Constructor) error {
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("%s: nil constructor at index %d: %w", MethodBuild, i, ErrConstructFailed)
		}
		if err := fn(f, cfg); err != nil {
			return fmt.Errorf("%s: %w", MethodBuild, err)
		}
	}
	return nil
}

// Compile returns the linear acceptor of text over s.
func Compile(s weight.Semiring, text string, opts ...BuilderOption) (*fst.Fst, error) {
	return Build(s, opts, String(text))
}

// CompileStrings returns the union of the linear acceptors of texts over s.
func CompileStrings(s weight.Semiring, texts []string, opts ...BuilderOption) (*fst.Fst, error) {
	return Build(s, opts, Strings(texts...))
}
