// SPDX-License-Identifier: MIT

// Package compare decides language equivalence and structural isomorphism
// of weighted automata. Structural equality (same ids, same arcs) is
// fst.Equal.
package compare

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/minimize"
	"github.com/katalvlaran/lvfst/reweight"
	"github.com/katalvlaran/lvfst/shortest"
	"github.com/katalvlaran/lvfst/transform"
	"github.com/katalvlaran/lvfst/weight"
)

// Sentinel errors returned by the compare package.
var (
	// ErrSemiringMismatch indicates operands over different semirings.
	ErrSemiringMismatch = errors.New("compare: operands have different semirings")

	// ErrNonDeterministic indicates an Equivalent operand that is not
	// deterministic after label-pair encoding.
	ErrNonDeterministic = errors.New("compare: operand is not deterministic")

	// ErrAmbiguous indicates a state with two indistinguishable arcs, for
	// which Isomorphic cannot pick a pairing.
	ErrAmbiguous = errors.New("compare: indistinguishable arcs")
)

func check(a, b *fst.Fst) error {
	if a.Semiring() != b.Semiring() {
		return fmt.Errorf("%w: %s and %s", ErrSemiringMismatch, a.Semiring(), b.Semiring())
	}
	return nil
}

// Equivalent reports whether a and b assign the same weight, within delta,
// to every pair of label strings. Both must be deterministic once their
// label pairs are encoded; neither is modified.
func Equivalent(a, b *fst.Fst, delta float64) (bool, error) {
	if err := check(a, b); err != nil {
		return false, err
	}
	// 1) Shared encoding, determinism check, trim.
	enc := transform.NewEncoder()
	ops := [2]*fst.Fst{a.Copy(), b.Copy()}
	totals := [2]weight.Weight{}
	for i, g := range ops {
		enc.Encode(g)
		if !g.Properties().InputDeterministic {
			return false, fmt.Errorf("%w: operand %d", ErrNonDeterministic, i+1)
		}
		transform.Connect(g)
		if g.Start() == fst.NoStateID {
			continue
		}
		d, err := shortest.Distance(g, shortest.WithReverse(), shortest.WithDelta(delta))
		if err != nil {
			return false, err
		}
		totals[i] = d.At(g.Start())
		// 2) Normalize: push with the total weight removed.
		if err := reweight.Push(g, reweight.ToInitial,
			reweight.WithDelta(delta), reweight.WithRemoveTotalWeight()); err != nil {
			return false, err
		}
	}
	emptyA, emptyB := ops[0].Start() == fst.NoStateID, ops[1].Start() == fst.NoStateID
	if emptyA || emptyB {
		return emptyA == emptyB, nil
	}
	if !weight.ApproxEqual(totals[0], totals[1], delta) {
		return false, nil
	}

	// 3) Partition the disjoint union and compare the start classes.
	u := ops[0].Copy()
	offset := fst.StateID(u.NumStates())
	u.AddStates(ops[1].NumStates())
	for s := fst.StateID(0); int(s) < ops[1].NumStates(); s++ {
		arcs := ops[1].Arcs(s)
		for i := range arcs {
			arcs[i].NextState += offset
		}
		_ = u.SetArcs(offset+s, arcs)
		_ = u.SetFinal(offset+s, ops[1].Final(s))
	}
	class := minimize.Partition(u, delta)
	return class[ops[0].Start()] == class[offset+ops[1].Start()], nil
}

// Isomorphic reports whether a and b are equal up to a renumbering of
// states and a reordering of arcs, comparing weights within delta. Every
// state must be reachable from the start for the automata to match.
func Isomorphic(a, b *fst.Fst, delta float64) (bool, error) {
	if err := check(a, b); err != nil {
		return false, err
	}
	if a.NumStates() != b.NumStates() {
		return false, nil
	}
	if a.Start() == fst.NoStateID || b.Start() == fst.NoStateID {
		return a.Start() == b.Start() && a.NumStates() == 0, nil
	}
	fwd := make(map[fst.StateID]fst.StateID, a.NumStates())
	bwd := make(map[fst.StateID]fst.StateID, b.NumStates())
	pairUp := func(x, y fst.StateID) bool {
		if m, ok := fwd[x]; ok {
			return m == y
		}
		if _, ok := bwd[y]; ok {
			return false
		}
		fwd[x], bwd[y] = y, x
		return true
	}
	pairUp(a.Start(), b.Start())
	queue := []fst.StateID{a.Start()}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		y := fwd[x]
		if !weight.ApproxEqual(a.Final(x), b.Final(y), delta) {
			return false, nil
		}
		ax, by := sortedArcs(a, x), sortedArcs(b, y)
		if len(ax) != len(by) {
			return false, nil
		}
		for i := range ax {
			if i > 0 && same(ax[i-1], ax[i], delta) {
				return false, fmt.Errorf("%w: state %d", ErrAmbiguous, x)
			}
			if !same(ax[i], by[i], delta) {
				return false, nil
			}
			_, known := fwd[ax[i].NextState]
			if !pairUp(ax[i].NextState, by[i].NextState) {
				return false, nil
			}
			if !known {
				queue = append(queue, ax[i].NextState)
			}
		}
	}
	return len(fwd) == a.NumStates(), nil
}

func sortedArcs(f *fst.Fst, s fst.StateID) []fst.Arc {
	arcs := f.Arcs(s)
	slices.SortStableFunc(arcs, func(x, y fst.Arc) int {
		return cmp.Or(
			cmp.Compare(x.ILabel, y.ILabel),
			cmp.Compare(x.OLabel, y.OLabel),
			cmp.Compare(x.Weight.Value(), y.Weight.Value()),
		)
	})
	return arcs
}

func same(x, y fst.Arc, delta float64) bool {
	return x.ILabel == y.ILabel && x.OLabel == y.OLabel && weight.ApproxEqual(x.Weight, y.Weight, delta)
}
