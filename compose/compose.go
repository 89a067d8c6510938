// SPDX-License-Identifier: MIT

package compose

import (
	"fmt"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/transform"
	"github.com/katalvlaran/lvfst/weight"
)

// Filter states of the sequence filter.
const (
	filterFree    uint8 = iota // the first operand may still move alone
	filterBlocked              // the second operand moved alone; the first may not
)

type triple struct {
	s1, s2 fst.StateID
	fs     uint8
}

// composer holds the mutable state of one composition.
type composer struct {
	a, b  *fst.Fst
	out   *fst.Fst
	ids   map[triple]fst.StateID
	queue []triple
	// byInput[s] indexes the arcs of b leaving s by input label.
	byInput []map[fst.Label][]fst.Arc
}

// Compose returns the composition of a and b: the result maps x to z with
// weight ⊕ over y of a(x, y) ⊗ b(y, z). The result uses a's semiring.
//
// Complexity: O(V₁V₂D₁(log D₂ + M₂)) in the worst case, where D is the
// out-degree and M the largest number of arcs sharing a label.
func Compose(a, b *fst.Fst, opts ...Option) (*fst.Fst, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if a.Semiring() != b.Semiring() {
		return nil, fmt.Errorf("%w: %s and %s", ErrSemiringMismatch, a.Semiring(), b.Semiring())
	}
	c := &composer{
		a:       a,
		b:       b,
		out:     a.Empty(),
		ids:     make(map[triple]fst.StateID),
		byInput: make([]map[fst.Label][]fst.Arc, b.NumStates()),
	}
	if a.Start() == fst.NoStateID || b.Start() == fst.NoStateID {
		return c.out, nil
	}
	_ = c.out.SetStart(c.find(triple{s1: a.Start(), s2: b.Start(), fs: filterFree}))
	for len(c.queue) > 0 {
		t := c.queue[0]
		c.queue = c.queue[1:]
		c.expand(t)
	}
	if o.Connect {
		transform.Connect(c.out)
	}
	return c.out, nil
}

func (c *composer) find(t triple) fst.StateID {
	if id, ok := c.ids[t]; ok {
		return id
	}
	id := c.out.AddState()
	c.ids[t] = id
	c.queue = append(c.queue, t)
	return id
}

func (c *composer) index(s fst.StateID) map[fst.Label][]fst.Arc {
	if m := c.byInput[s]; m != nil {
		return m
	}
	m := make(map[fst.Label][]fst.Arc)
	for _, a := range c.b.Arcs(s) {
		m[a.ILabel] = append(m[a.ILabel], a)
	}
	c.byInput[s] = m
	return m
}

func (c *composer) expand(t triple) {
	src := c.ids[t]
	if fw := weight.Times(c.a.Final(t.s1), c.b.Final(t.s2)); !fw.IsZero() {
		_ = c.out.SetFinal(src, fw)
	}
	m := c.index(t.s2)
	// 1) Moves of the first operand: alone on output ε, or matched on a label.
	for _, a1 := range c.a.Arcs(t.s1) {
		if a1.OLabel == fst.Epsilon {
			if t.fs != filterFree {
				continue
			}
			next := c.find(triple{s1: a1.NextState, s2: t.s2, fs: filterFree})
			_ = c.out.AddArc(src, fst.Arc{ILabel: a1.ILabel, OLabel: fst.Epsilon, Weight: a1.Weight, NextState: next})
			continue
		}
		for _, a2 := range m[a1.OLabel] {
			next := c.find(triple{s1: a1.NextState, s2: a2.NextState, fs: filterFree})
			_ = c.out.AddArc(src, fst.Arc{
				ILabel:    a1.ILabel,
				OLabel:    a2.OLabel,
				Weight:    weight.Times(a1.Weight, a2.Weight),
				NextState: next,
			})
		}
	}
	// 2) Moves of the second operand alone on input ε.
	for _, a2 := range m[fst.Epsilon] {
		next := c.find(triple{s1: t.s1, s2: a2.NextState, fs: filterBlocked})
		_ = c.out.AddArc(src, fst.Arc{ILabel: fst.Epsilon, OLabel: a2.OLabel, Weight: a2.Weight, NextState: next})
	}
}

// Intersect returns the intersection of two acceptors.
func Intersect(a, b *fst.Fst, opts ...Option) (*fst.Fst, error) {
	if a.Kind() != fst.Acceptor || b.Kind() != fst.Acceptor {
		return nil, ErrNotAcceptor
	}
	return Compose(a, b, opts...)
}

// Difference returns the strings of acceptor a that acceptor b rejects,
// with a's weights. b must be unweighted, ε-free and deterministic.
func Difference(a, b *fst.Fst, opts ...Option) (*fst.Fst, error) {
	if a.Semiring() != b.Semiring() {
		return nil, fmt.Errorf("%w: %s and %s", ErrSemiringMismatch, a.Semiring(), b.Semiring())
	}
	if a.Kind() != fst.Acceptor || b.Kind() != fst.Acceptor {
		return nil, ErrNotAcceptor
	}
	p := b.Properties()
	if p.Weighted || p.InputEpsilons || !p.InputDeterministic {
		return nil, ErrDifferenceOperand
	}
	return Compose(a, complement(b, alphabet(a, b)), opts...)
}

// alphabet collects the non-ε labels used by either acceptor.
func alphabet(fs ...*fst.Fst) []fst.Label {
	seen := make(map[fst.Label]struct{})
	var out []fst.Label
	for _, f := range fs {
		for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
			for _, a := range f.Arcs(s) {
				if a.ILabel == fst.Epsilon {
					continue
				}
				if _, ok := seen[a.ILabel]; !ok {
					seen[a.ILabel] = struct{}{}
					out = append(out, a.ILabel)
				}
			}
		}
	}
	return out
}

// complement completes deterministic acceptor b over sigma with a sink
// state and flips its final states.
func complement(b *fst.Fst, sigma []fst.Label) *fst.Fst {
	one := weight.One(b.Semiring())
	zero := weight.Zero(b.Semiring())
	c := b.Copy()
	sink := c.AddState()
	if c.Start() == fst.NoStateID {
		_ = c.SetStart(sink)
	}
	for s := fst.StateID(0); int(s) < c.NumStates(); s++ {
		has := make(map[fst.Label]bool, c.NumArcs(s))
		for _, a := range c.Arcs(s) {
			has[a.ILabel] = true
		}
		for _, l := range sigma {
			if !has[l] {
				_ = c.AddArc(s, fst.Arc{ILabel: l, OLabel: l, Weight: one, NextState: sink})
			}
		}
		if c.IsFinal(s) {
			_ = c.SetFinal(s, zero)
		} else {
			_ = c.SetFinal(s, one)
		}
	}
	return c
}
