// SPDX-License-Identifier: MIT

package fst

// Properties summarises structural facts about an automaton. Algorithms use
// it to check their preconditions.
type Properties struct {
	Acceptor            bool // every arc has ILabel == OLabel
	Epsilons            bool // some arc is ε:ε
	InputEpsilons       bool // some arc has ILabel == ε
	OutputEpsilons      bool // some arc has OLabel == ε
	InputDeterministic  bool // no state has two arcs with the same ILabel
	OutputDeterministic bool // no state has two arcs with the same OLabel
	Weighted            bool // some arc or final weight is neither One nor Zero
	Acyclic             bool // no cycle is reachable from any state
	InitialAcyclic      bool // no arc enters the start state
}

// Properties computes the property summary of f in O(V + E).
func (f *Fst) Properties() Properties {
	p := Properties{
		Acceptor:            true,
		InputDeterministic:  true,
		OutputDeterministic: true,
		InitialAcyclic:      true,
	}
	ilabels := make(map[Label]struct{})
	olabels := make(map[Label]struct{})
	for _, st := range f.states {
		if !st.final.IsZero() && !st.final.IsOne() {
			p.Weighted = true
		}
		clear(ilabels)
		clear(olabels)
		for _, a := range st.arcs {
			if a.ILabel != a.OLabel {
				p.Acceptor = false
			}
			if isEpsilon(a.ILabel) {
				p.InputEpsilons = true
				if isEpsilon(a.OLabel) {
					p.Epsilons = true
				}
			}
			if isEpsilon(a.OLabel) {
				p.OutputEpsilons = true
			}
			if !a.Weight.IsOne() && !a.Weight.IsZero() {
				p.Weighted = true
			}
			if _, dup := ilabels[a.ILabel]; dup {
				p.InputDeterministic = false
			}
			ilabels[a.ILabel] = struct{}{}
			if _, dup := olabels[a.OLabel]; dup {
				p.OutputDeterministic = false
			}
			olabels[a.OLabel] = struct{}{}
			if a.NextState == f.start {
				p.InitialAcyclic = false
			}
		}
	}
	p.Acyclic = !f.hasCycle()
	return p
}

// Colors of the iterative depth-first search.
const (
	white = iota
	gray
	black
)

// hasCycle runs an iterative three-color DFS over all states.
func (f *Fst) hasCycle() bool {
	color := make([]uint8, len(f.states))
	type frame struct {
		s   StateID
		pos int
	}
	for root := range f.states {
		if color[root] != white {
			continue
		}
		stack := []frame{{s: StateID(root)}}
		color[root] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			arcs := f.states[top.s].arcs
			if top.pos == len(arcs) {
				color[top.s] = black
				stack = stack[:len(stack)-1]
				continue
			}
			next := arcs[top.pos].NextState
			top.pos++
			switch color[next] {
			case gray:
				return true
			case white:
				color[next] = gray
				stack = append(stack, frame{s: next})
			}
		}
	}
	return false
}
