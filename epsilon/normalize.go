// SPDX-License-Identifier: MIT

package epsilon

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/transform"
	"github.com/katalvlaran/lvfst/weight"
)

// NormalizeType selects the side EpsNormalize normalizes.
type NormalizeType uint8

const (
	// NormalizeInput pushes input-ε arcs after non-ε input arcs.
	NormalizeInput NormalizeType = iota
	// NormalizeOutput pushes output-ε arcs after non-ε output arcs.
	NormalizeOutput
)

// gallicArc is an arc whose output side is a string of labels.
type gallicArc struct {
	in   fst.Label
	out  []fst.Label
	w    weight.Weight
	next fst.StateID
}

func (g gallicArc) key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(g.in)))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(g.next)))
	for _, l := range g.out {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(int(l)))
	}
	return b.String()
}

// EpsNormalize returns an ε-normalized copy of f; f is left unchanged.
// Paths keep their label strings and weights; only the placement of ε
// labels changes.
func EpsNormalize(f *fst.Fst, t NormalizeType, opts ...Option) (*fst.Fst, error) {
	g := f.Copy()
	if t == NormalizeOutput {
		transform.Invert(g)
	}
	if err := RmEpsilon(g, opts...); err != nil {
		return nil, err
	}
	out, err := normalizeInput(g)
	if err != nil {
		return nil, err
	}
	if t == NormalizeOutput {
		transform.Invert(out)
	}
	return out, nil
}

// normalizeInput expects an automaton without ε:ε arcs.
func normalizeInput(f *fst.Fst) (*fst.Fst, error) {
	if cyclicInputEpsilons(f) {
		return nil, ErrEpsilonCycle
	}
	sr := f.Semiring()
	n := f.NumStates()
	out := f.Empty()
	out.AddStates(n)
	_ = out.SetStart(f.Start())

	for s := fst.StateID(0); int(s) < n; s++ {
		// 1) Gather every input-ε run leaving s, ending in a labelled arc or
		//    a final weight, as gallic arcs. Equal strings are ⊕-merged.
		index := make(map[string]int)
		var garcs []gallicArc
		finals := make(map[string]int)
		var gfinals []gallicArc
		var walk func(q fst.StateID, prefix []fst.Label, w weight.Weight)
		walk = func(q fst.StateID, prefix []fst.Label, w weight.Weight) {
			if fw := f.Final(q); !fw.IsZero() {
				g := gallicArc{out: prefix, w: weight.Times(w, fw), next: fst.NoStateID}
				if i, ok := finals[g.key()]; ok {
					gfinals[i].w = weight.Plus(gfinals[i].w, g.w)
				} else {
					finals[g.key()] = len(gfinals)
					gfinals = append(gfinals, g)
				}
			}
			for _, a := range f.Arcs(q) {
				str := prefix
				if a.OLabel != fst.Epsilon {
					str = append(append([]fst.Label(nil), prefix...), a.OLabel)
				}
				aw := weight.Times(w, a.Weight)
				if a.ILabel == fst.Epsilon {
					walk(a.NextState, str, aw)
					continue
				}
				g := gallicArc{in: a.ILabel, out: str, w: aw, next: a.NextState}
				if i, ok := index[g.key()]; ok {
					garcs[i].w = weight.Plus(garcs[i].w, g.w)
				} else {
					index[g.key()] = len(garcs)
					garcs = append(garcs, g)
				}
			}
		}
		walk(s, nil, weight.One(sr))

		// 2) Factor each gallic arc into a chain whose first arc carries the
		//    input label and the rest carry ε inputs.
		for _, g := range garcs {
			emitChain(out, s, g)
		}
		for _, g := range gfinals {
			if len(g.out) == 0 {
				_ = out.SetFinal(s, weight.Plus(out.Final(s), g.w))
				continue
			}
			emitChain(out, s, g)
		}
	}
	transform.Connect(out)
	return out, nil
}

// emitChain writes g from s; a final gallic arc (next = NoStateID) ends in a
// fresh final state. All endpoints exist, so AddArc cannot fail.
func emitChain(out *fst.Fst, s fst.StateID, g gallicArc) {
	one := weight.One(out.Semiring())
	dest := g.next
	if dest == fst.NoStateID {
		dest = out.AddState()
		_ = out.SetFinal(dest, one)
	}
	labels := g.out
	if len(labels) == 0 {
		labels = []fst.Label{fst.Epsilon}
	}
	src, in, w := s, g.in, g.w
	for i, l := range labels {
		next := dest
		if i < len(labels)-1 {
			next = out.AddState()
		}
		_ = out.AddArc(src, fst.Arc{ILabel: in, OLabel: l, Weight: w, NextState: next})
		src, in, w = next, fst.Epsilon, one
	}
}

// cyclicInputEpsilons reports whether the input-ε arcs of f form a cycle.
func cyclicInputEpsilons(f *fst.Fst) bool {
	n := f.NumStates()
	color := make([]int, n)
	var visit func(s fst.StateID) bool
	visit = func(s fst.StateID) bool {
		color[s] = transform.Gray
		for _, a := range f.Arcs(s) {
			if a.ILabel != fst.Epsilon {
				continue
			}
			switch color[a.NextState] {
			case transform.Gray:
				return true
			case transform.White:
				if visit(a.NextState) {
					return true
				}
			}
		}
		color[s] = transform.Black
		return false
	}
	for s := fst.StateID(0); int(s) < n; s++ {
		if color[s] == transform.White && visit(s) {
			return true
		}
	}
	return false
}
