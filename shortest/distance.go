// SPDX-License-Identifier: MIT

package shortest

import (
	"fmt"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// Distances holds per-state shortest distances.
type Distances struct {
	semiring weight.Semiring
	d        []weight.Weight
	n        int // 1 + highest discovered state id
}

// At returns the distance of s, or Zero for states never reached.
func (r *Distances) At(s fst.StateID) weight.Weight {
	if s < 0 || int(s) >= len(r.d) {
		return weight.Zero(r.semiring)
	}
	return r.d[s]
}

// Len returns one plus the highest state id the search discovered.
func (r *Distances) Len() int { return r.n }

// Weights returns a copy of the distances of states 0..Len()-1. States in
// that range that were never reached answer Zero.
func (r *Distances) Weights() []weight.Weight {
	out := make([]weight.Weight, r.n)
	copy(out, r.d[:r.n])
	return out
}

// Scalars returns Weights projected to scalars.
func (r *Distances) Scalars() []float64 {
	out := make([]float64, r.n)
	for i := range out {
		out[i] = r.d[i].Value()
	}
	return out
}

// Distance computes, for every state q, the ⊕-sum over all paths from the
// source to q of the path weight (or, with WithReverse, over all paths from
// q to a final state, including the final weight).
//
// Complexity: O(V + E) per pass on acyclic inputs with the FIFO queue and
// O((V + E) log V) with the shortest-first queue on tropical inputs.
func Distance(f *fst.Fst, opts ...Option) (*Distances, error) {
	o := buildOptions(opts)
	r := &runner{f: f, o: o, semiring: f.Semiring()}
	if err := r.init(); err != nil {
		return nil, err
	}
	if err := r.process(); err != nil {
		return nil, err
	}
	return &Distances{semiring: r.semiring, d: r.dist, n: r.discovered}, nil
}

// edge is an arc seen from the side the search relaxes towards.
type edge struct {
	to fst.StateID
	w  weight.Weight
}

// runner holds the mutable state of one Distance execution.
type runner struct {
	f          *fst.Fst
	o          Options
	semiring   weight.Semiring
	dist       []weight.Weight
	resid      []weight.Weight
	adj        [][]edge // relaxation graph: out-arcs, or in-arcs when Reverse
	queue      stateQueue
	discovered int
}

// init builds the relaxation graph, seeds the sources and picks the queue.
func (r *runner) init() error {
	n := r.f.NumStates()
	zero := weight.Zero(r.semiring)
	r.dist = make([]weight.Weight, n)
	r.resid = make([]weight.Weight, n)
	for i := range r.dist {
		r.dist[i] = zero
		r.resid[i] = zero
	}
	// 1) Relaxation graph and the sign of its weights.
	r.adj = make([][]edge, n)
	nonNegative := true
	for s := fst.StateID(0); int(s) < n; s++ {
		for _, a := range r.f.Arcs(s) {
			if r.o.ArcFilter != nil && !r.o.ArcFilter(a) {
				continue
			}
			if a.Weight.Value() < 0 {
				nonNegative = false
			}
			if r.o.Reverse {
				r.adj[a.NextState] = append(r.adj[a.NextState], edge{to: s, w: a.Weight})
			} else {
				r.adj[s] = append(r.adj[s], edge{to: a.NextState, w: a.Weight})
			}
		}
	}
	// 2) Queue discipline.
	switch r.o.Queue {
	case ShortestFirstQueue:
		r.queue = newShortestFirstQueue(n)
	case FIFOQueue:
		r.queue = newFIFOQueue(n)
	default:
		if r.semiring.HasPathProperty() && nonNegative {
			r.queue = newShortestFirstQueue(n)
		} else {
			r.queue = newFIFOQueue(n)
		}
	}
	// 3) Seeds.
	if r.o.Reverse {
		for s := fst.StateID(0); int(s) < n; s++ {
			if fw := r.f.Final(s); !fw.IsZero() {
				r.seed(s, fw)
			}
		}
		return nil
	}
	src := r.o.Source
	if src == fst.NoStateID {
		src = r.f.Start()
		if src == fst.NoStateID {
			return nil
		}
	}
	if int(src) >= n || src < 0 {
		return fmt.Errorf("%w: %d", ErrBadSource, src)
	}
	r.seed(src, weight.One(r.semiring))
	return nil
}

func (r *runner) seed(s fst.StateID, w weight.Weight) {
	r.dist[s] = w
	r.resid[s] = w
	r.discover(s)
	r.queue.Update(s, w.Value())
}

func (r *runner) discover(s fst.StateID) {
	if int(s) >= r.discovered {
		r.discovered = int(s) + 1
	}
}

// process drains the queue, relaxing one state at a time.
func (r *runner) process() error {
	budget := relaxBudget(r.f.NumStates(), r.f.TotalArcs())
	zero := weight.Zero(r.semiring)
	for !r.queue.Empty() {
		q := r.queue.Pop()
		rq := r.resid[q]
		r.resid[q] = zero
		for _, e := range r.adj[q] {
			budget--
			if budget < 0 {
				return fmt.Errorf("%w: state %d", ErrDiverged, e.to)
			}
			contrib := weight.Times(rq, e.w)
			nd := weight.Plus(r.dist[e.to], contrib)
			if weight.ApproxEqual(r.dist[e.to], nd, r.o.Delta) {
				continue
			}
			r.dist[e.to] = nd
			r.resid[e.to] = weight.Plus(r.resid[e.to], contrib)
			r.discover(e.to)
			r.queue.Update(e.to, nd.Value())
		}
	}
	return nil
}

// relaxBudget bounds the number of relaxations before declaring divergence.
func relaxBudget(states, arcs int) int {
	return 1<<24 + 4096*(states+arcs)
}
