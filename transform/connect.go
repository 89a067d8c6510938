// SPDX-License-Identifier: MIT

package transform

import "github.com/katalvlaran/lvfst/fst"

// Visitation colors of the depth-first traversal.
const (
	White = iota // not yet discovered
	Gray         // on the current DFS path
	Black        // fully explored
)

// Connect deletes every state that is unreachable from the start or cannot
// reach a final state. An automaton without a start loses all its states.
//
// Complexity: O(V + E).
func Connect(f *fst.Fst) {
	n := f.NumStates()
	if n == 0 {
		return
	}
	access := Accessible(f)
	coaccess := Coaccessible(f)
	var dead []fst.StateID
	for s := 0; s < n; s++ {
		if !access[s] || !coaccess[s] {
			dead = append(dead, fst.StateID(s))
		}
	}
	if len(dead) > 0 {
		// Ids come from the automaton itself, so the delete cannot fail.
		_ = f.DeleteStateSet(dead)
	}
}

// Accessible marks the states reachable from the start.
func Accessible(f *fst.Fst) []bool {
	seen := make([]bool, f.NumStates())
	start := f.Start()
	if start == fst.NoStateID {
		return seen
	}
	queue := []fst.StateID{start}
	seen[start] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, a := range f.Arcs(s) {
			if !seen[a.NextState] {
				seen[a.NextState] = true
				queue = append(queue, a.NextState)
			}
		}
	}
	return seen
}

// Coaccessible marks the states from which a final state is reachable.
func Coaccessible(f *fst.Fst) []bool {
	n := f.NumStates()
	incoming := make([][]fst.StateID, n)
	seen := make([]bool, n)
	var queue []fst.StateID
	for s := 0; s < n; s++ {
		for _, a := range f.Arcs(fst.StateID(s)) {
			incoming[a.NextState] = append(incoming[a.NextState], fst.StateID(s))
		}
		if f.IsFinal(fst.StateID(s)) {
			seen[s] = true
			queue = append(queue, fst.StateID(s))
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, p := range incoming[s] {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return seen
}

// TopSort renumbers the states of an acyclic f so that every arc goes from a
// lower to a higher id, and reports true. If f has a cycle it reports false
// and leaves f unchanged.
//
// The start state becomes state 0 whenever no arc enters it.
func TopSort(f *fst.Fst) bool {
	order, ok := topOrder(f)
	if !ok {
		return false
	}
	// order is a permutation by construction.
	_ = f.StateSort(order)
	return true
}

// topOrder returns order[s] = topological position of s, or false on a cycle.
func topOrder(f *fst.Fst) ([]fst.StateID, bool) {
	n := f.NumStates()
	color := make([]uint8, n)
	post := make([]fst.StateID, 0, n)
	type frame struct {
		s    fst.StateID
		arcs []fst.Arc
		pos  int
	}
	visit := func(root fst.StateID) bool {
		color[root] = Gray
		stack := []frame{{s: root, arcs: f.Arcs(root)}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.pos == len(top.arcs) {
				color[top.s] = Black
				post = append(post, top.s)
				stack = stack[:len(stack)-1]
				continue
			}
			next := top.arcs[top.pos].NextState
			top.pos++
			switch color[next] {
			case Gray:
				return false
			case White:
				color[next] = Gray
				stack = append(stack, frame{s: next, arcs: f.Arcs(next)})
			}
		}
		return true
	}
	// Roots in ascending order with the start last, so it is posted last.
	start := f.Start()
	for s := 0; s < n; s++ {
		if fst.StateID(s) != start && color[s] == White && !visit(fst.StateID(s)) {
			return nil, false
		}
	}
	if start != fst.NoStateID && color[start] == White && !visit(start) {
		return nil, false
	}
	order := make([]fst.StateID, n)
	for i, s := range post {
		order[s] = fst.StateID(n - 1 - i)
	}
	return order, true
}
