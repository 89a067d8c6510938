// SPDX-License-Identifier: MIT

package determinize

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/transform"
	"github.com/katalvlaran/lvfst/weight"
)

// element is one member of a subset.
type element struct {
	state fst.StateID
	str   []fst.Label   // residual output not yet emitted
	w     weight.Weight // residual weight
}

// subset is sorted by state; a state occurs at most once.
type subset []element

// determinizer holds the mutable state of one subset construction.
type determinizer struct {
	f       *fst.Fst
	o       Options
	out     *fst.Fst
	ids     map[string]fst.StateID
	pending []fst.StateID
	subsets map[fst.StateID]subset
	built   int
	trans   bool // f is a transducer; acceptors carry no residual strings
}

// Determinize returns a deterministic automaton equivalent to f; f is left
// unchanged. The result's start state is 0.
//
// Complexity: exponential in V in the worst case; each output state costs
// O(|subset|·D·log D) plus residual-string work for transducers.
func Determinize(f *fst.Fst, opts ...Option) (*fst.Fst, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Type == TypeDisambiguate && f.Kind() == fst.Transducer {
		return determinizePairs(f, o)
	}
	d := &determinizer{
		f:       f,
		o:       o,
		out:     f.Empty(),
		ids:     make(map[string]fst.StateID),
		subsets: make(map[fst.StateID]subset),
		trans:   f.Kind() == fst.Transducer,
	}
	if f.Start() == fst.NoStateID {
		return d.out, nil
	}
	start, err := d.find(subset{{state: f.Start(), w: weight.One(f.Semiring())}})
	if err != nil {
		return nil, err
	}
	_ = d.out.SetStart(start)
	for len(d.pending) > 0 {
		id := d.pending[0]
		d.pending = d.pending[1:]
		if err := d.expand(id); err != nil {
			return nil, err
		}
	}
	return d.out, nil
}

// Disambiguate returns an automaton in which no two successful paths share
// both their input and output strings; of each such group only the best
// path weight survives. It requires a path semiring.
func Disambiguate(f *fst.Fst, opts ...Option) (*fst.Fst, error) {
	if err := f.Semiring().RequirePath(); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return determinizePairs(f, o)
}

// determinizePairs determinizes f as an acceptor over its label pairs.
func determinizePairs(f *fst.Fst, o Options) (*fst.Fst, error) {
	enc := transform.NewEncoder()
	g := f.Copy()
	enc.Encode(g)
	o.Type = TypeFunctional
	out, err := Determinize(g, func(dst *Options) { *dst = o })
	if err != nil {
		return nil, err
	}
	if err := enc.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *determinizer) key(ss subset) string {
	var b strings.Builder
	for _, e := range ss {
		b.WriteString(strconv.Itoa(int(e.state)))
		b.WriteByte('/')
		b.WriteString(strconv.FormatFloat(e.w.Value(), 'g', -1, 64))
		for _, l := range e.str {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(int(l)))
		}
		b.WriteByte(';')
	}
	return b.String()
}

// find returns the output state of ss, creating it when new.
func (d *determinizer) find(ss subset) (fst.StateID, error) {
	k := d.key(ss)
	if id, ok := d.ids[k]; ok {
		return id, nil
	}
	if d.o.MaxStates > 0 && d.built >= d.o.MaxStates {
		return fst.NoStateID, fmt.Errorf("%w: %d", ErrStateLimit, d.o.MaxStates)
	}
	d.built++
	id := d.out.AddState()
	d.ids[k] = id
	d.subsets[id] = ss
	d.pending = append(d.pending, id)
	return id, nil
}

// transition is one arc leaving a subset, seen from the subset.
type transition struct {
	next fst.StateID
	str  []fst.Label
	w    weight.Weight
}

func (d *determinizer) expand(id fst.StateID) error {
	ss := d.subsets[id]
	delete(d.subsets, id)
	sr := d.f.Semiring()

	// 1) Final weight and residual output of the subset.
	var finStr []fst.Label
	finW := weight.Zero(sr)
	seen := false
	for _, e := range ss {
		fw := d.f.Final(e.state)
		if fw.IsZero() {
			continue
		}
		if seen && !slices.Equal(finStr, e.str) {
			return fmt.Errorf("%w: final outputs differ at state %d", ErrNonFunctional, e.state)
		}
		seen = true
		finStr = e.str
		finW = weight.Plus(finW, weight.Times(e.w, fw))
	}
	if seen {
		if len(finStr) == 0 {
			_ = d.out.SetFinal(id, finW)
		} else {
			dest := d.out.AddState()
			_ = d.out.SetFinal(dest, weight.One(sr))
			d.chain(id, fst.Epsilon, finStr, finW, dest)
		}
	}

	// 2) Transitions grouped by input label, in label order.
	byLabel := make(map[fst.Label][]transition)
	for _, e := range ss {
		for _, a := range d.f.Arcs(e.state) {
			str := e.str
			if a.OLabel != fst.Epsilon && d.trans {
				str = append(append([]fst.Label(nil), e.str...), a.OLabel)
			}
			byLabel[a.ILabel] = append(byLabel[a.ILabel], transition{
				next: a.NextState,
				str:  str,
				w:    weight.Times(e.w, a.Weight),
			})
		}
	}
	labels := make([]fst.Label, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	// 3) One output arc per label: emit the common prefix and the total
	//    weight, keep the rest as residuals.
	for _, l := range labels {
		ts := byLabel[l]
		total := weight.Zero(sr)
		for _, t := range ts {
			total = weight.Plus(total, t.w)
		}
		if total.IsZero() {
			continue
		}
		prefix := commonPrefix(ts)
		next := make(subset, 0, len(ts))
		for _, t := range ts {
			if t.w.IsZero() {
				continue
			}
			e := element{
				state: t.next,
				str:   t.str[len(prefix):],
				w:     weight.Divide(t.w, total),
			}
			i, found := slices.BinarySearchFunc(next, e.state, func(x element, s fst.StateID) int {
				return int(x.state) - int(s)
			})
			if !found {
				next = slices.Insert(next, i, e)
				continue
			}
			if !slices.Equal(next[i].str, e.str) {
				return fmt.Errorf("%w: outputs differ at state %d", ErrNonFunctional, e.state)
			}
			next[i].w = weight.Plus(next[i].w, e.w)
		}
		for i := range next {
			next[i].w = next[i].w.Quantize(d.o.Delta)
		}
		dest, err := d.find(next)
		if err != nil {
			return err
		}
		out := prefix
		if !d.trans && l != fst.Epsilon {
			out = []fst.Label{l}
		}
		d.chain(id, l, out, total, dest)
	}
	return nil
}

// chain writes src -in:out[0]/w-> … -ε:out[k]-> dest. An empty out becomes
// a single arc with an ε output.
func (d *determinizer) chain(src fst.StateID, in fst.Label, out []fst.Label, w weight.Weight, dest fst.StateID) {
	one := weight.One(d.out.Semiring())
	if len(out) == 0 {
		out = []fst.Label{fst.Epsilon}
	}
	for i, l := range out {
		next := dest
		if i < len(out)-1 {
			next = d.out.AddState()
		}
		// Endpoints are states of d.out, so AddArc cannot fail.
		_ = d.out.AddArc(src, fst.Arc{ILabel: in, OLabel: l, Weight: w, NextState: next})
		src, in, w = next, fst.Epsilon, one
	}
}

// commonPrefix returns the longest common prefix of the transition strings.
func commonPrefix(ts []transition) []fst.Label {
	if len(ts) == 0 {
		return nil
	}
	prefix := ts[0].str
	for _, t := range ts[1:] {
		n := 0
		for n < len(prefix) && n < len(t.str) && prefix[n] == t.str[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}
