// SPDX-License-Identifier: MIT

package shortest

import (
	"container/heap"
	"encoding/binary"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// superFinal marks a search node that completes a path through a final weight.
const superFinal fst.StateID = -2

// pathNode is one prefix of a candidate path. Nodes form a tree through
// parent links; several complete paths may share a prefix.
type pathNode struct {
	s      fst.StateID
	d      weight.Weight // prefix weight
	parent int           // index into nodes, -1 for the root
	arc    fst.Arc       // arc from the parent's state; for superFinal its weight is the final weight
	in     string        // input label string of the prefix, when Unique
	out    string        // output label string of the prefix, when Unique
}

// key identifies the (input, output) label strings of the prefix.
func (n pathNode) key() string {
	return string(binary.LittleEndian.AppendUint32(nil, uint32(len(n.in)))) + n.in + n.out
}

// Path returns the NShortest best successful paths of f as a tree-shaped
// automaton sharing common prefixes, best path first in arc order. With
// Unique, paths repeating an (input, output) label string already returned
// are skipped. Ties are broken by discovery order. An automaton without
// successful paths yields an empty result.
//
// Path requires a semiring with the path property.
func Path(f *fst.Fst, opts ...Option) (*fst.Fst, error) {
	o := buildOptions(opts)
	if err := f.Semiring().RequirePath(); err != nil {
		return nil, err
	}
	if o.NShortest < 1 {
		return nil, ErrBadNShortest
	}
	out := f.Empty()
	start := f.Start()
	if start == fst.NoStateID {
		return out, nil
	}
	// 1) Potentials: best distance from every state to a final state.
	beta, err := Distance(f, WithReverse(), WithDelta(o.Delta))
	if err != nil {
		return nil, err
	}
	if beta.At(start).IsZero() {
		return out, nil
	}
	// 2) Best-first search over prefixes, at most NShortest expansions per state.
	s := &pathSearch{f: f, o: o, beta: beta, popped: make([]int, f.NumStates())}
	if o.Unique {
		s.expanded = make(map[string]struct{})
		s.complete = make(map[string]struct{})
	}
	complete := s.run(start)
	// 3) Materialize the tree of complete paths.
	build(out, s.nodes, complete)
	return out, nil
}

type pathSearch struct {
	f        *fst.Fst
	o        Options
	beta     *Distances
	nodes    []pathNode
	pq       nodePQ
	seq      uint64
	popped   []int
	expanded map[string]struct{} // state+prefix already expanded (Unique)
	complete map[string]struct{} // prefixes already returned (Unique)
}

func (p *pathSearch) push(n pathNode, prio weight.Weight) {
	if prio.IsZero() {
		return
	}
	p.nodes = append(p.nodes, n)
	p.seq++
	heap.Push(&p.pq, &nodeItem{s: fst.StateID(len(p.nodes) - 1), prio: prio.Value(), seq: p.seq})
}

// run returns the indexes of the superFinal nodes of the paths found, best first.
func (p *pathSearch) run(start fst.StateID) []int {
	one := weight.One(p.f.Semiring())
	p.push(pathNode{s: start, d: one, parent: -1}, p.beta.At(start))
	var done []int
	for p.pq.Len() > 0 && len(done) < p.o.NShortest {
		// Path heap entries carry node indexes in place of state ids.
		idx := int(heap.Pop(&p.pq).(*nodeItem).s)
		n := p.nodes[idx]
		if n.s == superFinal {
			if p.complete != nil {
				k := n.key()
				if _, dup := p.complete[k]; dup {
					continue
				}
				p.complete[k] = struct{}{}
			}
			done = append(done, idx)
			continue
		}
		if p.expanded != nil {
			k := stateKey(n.s, n.key())
			if _, dup := p.expanded[k]; dup {
				continue
			}
			p.expanded[k] = struct{}{}
		}
		if p.popped[n.s] >= p.o.NShortest {
			continue
		}
		p.popped[n.s]++
		if fw := p.f.Final(n.s); !fw.IsZero() {
			d := weight.Times(n.d, fw)
			p.push(pathNode{s: superFinal, d: d, parent: idx, arc: fst.Arc{Weight: fw}, in: n.in, out: n.out}, d)
		}
		for _, a := range p.f.Arcs(n.s) {
			d := weight.Times(n.d, a.Weight)
			child := pathNode{s: a.NextState, d: d, parent: idx, arc: a}
			if p.expanded != nil {
				child.in = appendLabel(n.in, a.ILabel)
				child.out = appendLabel(n.out, a.OLabel)
			}
			p.push(child, weight.Times(d, p.beta.At(a.NextState)))
		}
	}
	return done
}

// build adds one state per distinct prefix node on the returned paths.
func build(out *fst.Fst, nodes []pathNode, complete []int) {
	state := make(map[int]fst.StateID)
	var materialize func(idx int) fst.StateID
	materialize = func(idx int) fst.StateID {
		if s, ok := state[idx]; ok {
			return s
		}
		n := nodes[idx]
		from := fst.NoStateID
		if n.parent >= 0 {
			from = materialize(n.parent)
		}
		s := out.AddState()
		state[idx] = s
		if from == fst.NoStateID {
			_ = out.SetStart(s)
			return s
		}
		a := n.arc
		a.NextState = s
		_ = out.AddArc(from, a)
		return s
	}
	for _, idx := range complete {
		leaf := nodes[idx]
		_ = out.SetFinal(materialize(leaf.parent), leaf.arc.Weight)
	}
}

// appendLabel appends a non-epsilon label to an encoded label string.
func appendLabel(str string, l fst.Label) string {
	if l == fst.Epsilon {
		return str
	}
	return string(binary.LittleEndian.AppendUint32([]byte(str), uint32(l)))
}

func stateKey(s fst.StateID, key string) string {
	return string(binary.LittleEndian.AppendUint32(nil, uint32(s))) + key
}
