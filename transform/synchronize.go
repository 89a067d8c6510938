// SPDX-License-Identifier: MIT

package transform

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// syncElement is a state of the synchronized automaton: a source state (or
// NoStateID once the source path has ended) and the pending input and
// output symbols. At most one of the two buffers is non-empty.
type syncElement struct {
	s   fst.StateID
	in  []fst.Label
	out []fst.Label
}

func (e syncElement) key() string {
	b := make([]byte, 0, 8+4*(len(e.in)+len(e.out)))
	b = binary.LittleEndian.AppendUint32(b, uint32(e.s))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(e.in)))
	for _, l := range e.in {
		b = binary.LittleEndian.AppendUint32(b, uint32(l))
	}
	for _, l := range e.out {
		b = binary.LittleEndian.AppendUint32(b, uint32(l))
	}
	return string(b)
}

func car(l []fst.Label) fst.Label {
	if len(l) == 0 {
		return fst.Epsilon
	}
	return l[0]
}

func cdr(l []fst.Label) []fst.Label {
	if len(l) == 0 {
		return nil
	}
	return l[1:]
}

func push(l []fst.Label, x fst.Label) []fst.Label {
	if x == fst.Epsilon {
		return l
	}
	out := make([]fst.Label, len(l), len(l)+1)
	copy(out, l)
	return append(out, x)
}

// Synchronize returns an equivalent transducer in which the delay between
// output and input symbols along a path is zero or only grows: symbols of
// one side are buffered behind ε:ε arcs until the other side can pair with
// them. Residual symbols at a final state are flushed through a chain of
// arcs to a new final state.
//
// A cycle that changes the delay between input and output yields
// ErrUnboundedDelay.
func Synchronize(f *fst.Fst) (*fst.Fst, error) {
	out := f.Empty()
	if f.Start() == fst.NoStateID {
		return out, nil
	}
	limit := f.NumStates() + 1
	one := weight.One(f.Semiring())
	ids := make(map[string]fst.StateID)
	var elems []syncElement
	find := func(e syncElement) fst.StateID {
		k := e.key()
		if id, ok := ids[k]; ok {
			return id
		}
		id := out.AddState()
		ids[k] = id
		elems = append(elems, e)
		return id
	}
	_ = out.SetStart(find(syncElement{s: f.Start()}))

	for id := fst.StateID(0); int(id) < len(elems); id++ {
		e := elems[id]
		if len(e.in) > limit || len(e.out) > limit {
			return nil, fmt.Errorf("%w: buffer of %d symbols", ErrUnboundedDelay, max(len(e.in), len(e.out)))
		}
		if e.s == fst.NoStateID {
			if len(e.in) == 0 && len(e.out) == 0 {
				_ = out.SetFinal(id, one)
				continue
			}
			next := find(syncElement{s: fst.NoStateID, in: cdr(e.in), out: cdr(e.out)})
			_ = out.AddArc(id, fst.Arc{ILabel: car(e.in), OLabel: car(e.out), Weight: one, NextState: next})
			continue
		}
		for _, a := range f.Arcs(e.s) {
			in := push(e.in, a.ILabel)
			o := push(e.out, a.OLabel)
			if len(in) > 0 && len(o) > 0 {
				next := find(syncElement{s: a.NextState, in: cdr(in), out: cdr(o)})
				_ = out.AddArc(id, fst.Arc{ILabel: car(in), OLabel: car(o), Weight: a.Weight, NextState: next})
				continue
			}
			// Delay the symbol until the other side catches up.
			next := find(syncElement{s: a.NextState, in: in, out: o})
			_ = out.AddArc(id, fst.Arc{ILabel: fst.Epsilon, OLabel: fst.Epsilon, Weight: a.Weight, NextState: next})
		}
		if fw := f.Final(e.s); !fw.IsZero() {
			if len(e.in) == 0 && len(e.out) == 0 {
				_ = out.SetFinal(id, fw)
				continue
			}
			next := find(syncElement{s: fst.NoStateID, in: cdr(e.in), out: cdr(e.out)})
			_ = out.AddArc(id, fst.Arc{ILabel: car(e.in), OLabel: car(e.out), Weight: fw, NextState: next})
		}
	}
	return out, nil
}
