// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"

	"github.com/katalvlaran/lvfst/fst"
)

// Encoder assigns a single label to every (input, output) label pair it
// sees. The pair ε:ε always maps to ε, so epsilon-ness is preserved. One
// Encoder may encode several automata; their codes then agree.
type Encoder struct {
	codes map[[2]fst.Label]fst.Label
	pairs [][2]fst.Label
}

// NewEncoder returns an Encoder that knows only ε:ε.
func NewEncoder() *Encoder {
	return &Encoder{
		codes: map[[2]fst.Label]fst.Label{{fst.Epsilon, fst.Epsilon}: fst.Epsilon},
		pairs: [][2]fst.Label{{fst.Epsilon, fst.Epsilon}},
	}
}

// Code returns the label for the pair (i, o), issuing a new one if needed.
func (e *Encoder) Code(i, o fst.Label) fst.Label {
	key := [2]fst.Label{i, o}
	if c, ok := e.codes[key]; ok {
		return c
	}
	c := fst.Label(len(e.pairs))
	e.codes[key] = c
	e.pairs = append(e.pairs, key)
	return c
}

// Pair returns the label pair encoded by code.
func (e *Encoder) Pair(code fst.Label) (i, o fst.Label, ok bool) {
	if code < 0 || int(code) >= len(e.pairs) {
		return 0, 0, false
	}
	p := e.pairs[code]
	return p[0], p[1], true
}

// Size returns the number of issued codes, ε included.
func (e *Encoder) Size() int { return len(e.pairs) }

// Encode replaces every arc's labels by their code, turning f into an acceptor.
func (e *Encoder) Encode(f *fst.Fst) {
	mapArcs(f, func(a fst.Arc) fst.Arc {
		c := e.Code(a.ILabel, a.OLabel)
		a.ILabel, a.OLabel = c, c
		return a
	})
}

// Decode restores the label pairs of an automaton encoded by e. Every input
// label is checked first; on ErrUnknownCode f is unchanged.
func (e *Encoder) Decode(f *fst.Fst) error {
	for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
		for _, a := range f.Arcs(s) {
			if _, _, ok := e.Pair(a.ILabel); !ok {
				return fmt.Errorf("%w: %d", ErrUnknownCode, a.ILabel)
			}
		}
	}
	mapArcs(f, func(a fst.Arc) fst.Arc {
		a.ILabel, a.OLabel, _ = e.Pair(a.ILabel)
		return a
	})
	return nil
}
