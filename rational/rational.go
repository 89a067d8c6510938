// SPDX-License-Identifier: MIT

// Package rational implements the rational operations on weighted automata:
// Union (sum), Concat (product) and Closure (Kleene star or plus). All of
// them mutate their first argument in place and invalidate its iterators.
package rational

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// ErrSemiringMismatch indicates operands over different semirings.
var ErrSemiringMismatch = errors.New("rational: operands have different semirings")

// ClosureType selects Kleene star (accepts ε) or plus (one or more).
type ClosureType uint8

const (
	// ClosureStar is the Kleene star: zero or more repetitions.
	ClosureStar ClosureType = iota
	// ClosurePlus is the Kleene plus: one or more repetitions.
	ClosurePlus
)

func check(a, b *fst.Fst) error {
	if a.Semiring() != b.Semiring() {
		return fmt.Errorf("%w: %s and %s", ErrSemiringMismatch, a.Semiring(), b.Semiring())
	}
	return nil
}

// appendStates copies the states of src into dst, shifted by the current
// size of dst, and returns the shift.
func appendStates(dst, src *fst.Fst) fst.StateID {
	offset := fst.StateID(dst.NumStates())
	n := src.NumStates()
	dst.ReserveStates(n)
	dst.AddStates(n)
	for s := fst.StateID(0); int(s) < n; s++ {
		_ = dst.SetFinal(offset+s, src.Final(s))
		arcs := src.Arcs(s)
		for i := range arcs {
			arcs[i].NextState += offset
		}
		_ = dst.SetArcs(offset+s, arcs)
	}
	return offset
}

// Union makes f accept the union of its relation and g's. When f's start
// has no incoming arcs it is reused; otherwise a new start state with ε
// arcs to both starts is added.
func Union(f, g *fst.Fst) error {
	if err := check(f, g); err != nil {
		return err
	}
	if g.Start() == fst.NoStateID {
		return nil
	}
	if f.Start() == fst.NoStateID {
		return f.Assign(g)
	}
	one := weight.One(f.Semiring())
	initialAcyclic := f.Properties().InitialAcyclic
	offset := appendStates(f, g)
	start := f.Start()
	if !initialAcyclic {
		ns := f.AddState()
		_ = f.AddArc(ns, fst.Arc{Weight: one, NextState: start})
		_ = f.SetStart(ns)
		start = ns
	}
	return f.AddArc(start, fst.Arc{Weight: one, NextState: g.Start() + offset})
}

// Concat makes f accept the concatenation of its relation with g's: every
// final state of f gets an ε arc, weighted by its final weight, to g's
// start, and stops being final.
func Concat(f, g *fst.Fst) error {
	if err := check(f, g); err != nil {
		return err
	}
	if f.Start() == fst.NoStateID {
		return nil
	}
	if g.Start() == fst.NoStateID {
		f.DeleteStates()
		return nil
	}
	n := fst.StateID(f.NumStates())
	offset := appendStates(f, g)
	zero := weight.Zero(f.Semiring())
	for s := fst.StateID(0); s < n; s++ {
		fw := f.Final(s)
		if fw.IsZero() {
			continue
		}
		if err := f.AddArc(s, fst.Arc{Weight: fw, NextState: g.Start() + offset}); err != nil {
			return err
		}
		_ = f.SetFinal(s, zero)
	}
	return nil
}

// Closure replaces f by its Kleene star or plus: every final state gets an ε
// arc, weighted by its final weight, back to the start. For the star a new
// final start state is added so the empty string is accepted.
func Closure(f *fst.Fst, t ClosureType) {
	start := f.Start()
	if start == fst.NoStateID {
		return
	}
	for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
		if fw := f.Final(s); !fw.IsZero() {
			_ = f.AddArc(s, fst.Arc{Weight: fw, NextState: start})
		}
	}
	if t == ClosureStar {
		one := weight.One(f.Semiring())
		ns := f.AddState()
		_ = f.SetFinal(ns, one)
		_ = f.AddArc(ns, fst.Arc{Weight: one, NextState: start})
		_ = f.SetStart(ns)
	}
}
