// SPDX-License-Identifier: MIT

package script

import (
	"github.com/katalvlaran/lvfst/compare"
	"github.com/katalvlaran/lvfst/compose"
	"github.com/katalvlaran/lvfst/determinize"
	"github.com/katalvlaran/lvfst/epsilon"
	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/minimize"
	"github.com/katalvlaran/lvfst/prune"
	"github.com/katalvlaran/lvfst/randgen"
	"github.com/katalvlaran/lvfst/rational"
	"github.com/katalvlaran/lvfst/reweight"
	"github.com/katalvlaran/lvfst/shortest"
	"github.com/katalvlaran/lvfst/transform"
	"github.com/katalvlaran/lvfst/weight"
)

// ---------------------------------------------------------------------------
// Producing
// ---------------------------------------------------------------------------

type binaryOp func(a, b *fst.Fst, opts ...compose.Option) (*fst.Fst, error)

func composeLike(op string, fn binaryOp, a, b *fst.Fst, filter string, connect bool) (*fst.Fst, error) {
	var out *fst.Fst
	err := dispatch(op, a, 0, func() error {
		if err := sameSemiring(a, b); err != nil {
			return err
		}
		ft, err := composeFilter(filter)
		if err != nil {
			return err
		}
		out, err = fn(a, b, compose.WithFilter(ft), compose.WithConnect(connect))
		return err
	})
	return out, err
}

// Compose returns a ∘ b.
func Compose(a, b *fst.Fst, filter string, connect bool) (*fst.Fst, error) {
	return composeLike("Compose", compose.Compose, a, b, filter, connect)
}

// Intersect returns a ∩ b of two acceptors.
func Intersect(a, b *fst.Fst, filter string, connect bool) (*fst.Fst, error) {
	return composeLike("Intersect", compose.Intersect, a, b, filter, connect)
}

// Difference returns a − b; b must be an unweighted, ε-free, deterministic acceptor.
func Difference(a, b *fst.Fst, filter string, connect bool) (*fst.Fst, error) {
	return composeLike("Difference", compose.Difference, a, b, filter, connect)
}

// Determinize returns a deterministic equivalent of f. maxStates ≤ 0 means
// no state limit.
func Determinize(f *fst.Fst, delta float64, detType string, maxStates int) (*fst.Fst, error) {
	var out *fst.Fst
	err := dispatch("Determinize", f, orDefault(delta), func() error {
		t, err := determinizeType(detType)
		if err != nil {
			return err
		}
		opts := []determinize.Option{determinize.WithType(t), determinize.WithDelta(delta)}
		if maxStates > 0 {
			opts = append(opts, determinize.WithMaxStates(maxStates))
		}
		out, err = determinize.Determinize(f, opts...)
		return err
	})
	return out, err
}

// Disambiguate returns f keeping one best path per (input, output) string.
func Disambiguate(f *fst.Fst, delta float64) (*fst.Fst, error) {
	var out *fst.Fst
	err := dispatch("Disambiguate", f, orDefault(delta), func() error {
		if err := requirePath("Disambiguate", f); err != nil {
			return err
		}
		var err error
		out, err = determinize.Disambiguate(f, determinize.WithDelta(delta))
		return err
	})
	return out, err
}

// EpsNormalize returns f with ε labels of the chosen side ("input" or
// "output") moved after the non-ε labels of that side.
func EpsNormalize(f *fst.Fst, normType string, delta float64) (*fst.Fst, error) {
	var out *fst.Fst
	err := dispatch("EpsNormalize", f, orDefault(delta), func() error {
		t, err := normalizeType(normType)
		if err != nil {
			return err
		}
		out, err = epsilon.EpsNormalize(f, t, epsilon.WithDelta(delta))
		return err
	})
	return out, err
}

// RandGen returns npath random successful paths of f drawn with the named
// selector from a source seeded with seed. maxLength ≤ 0 means unbounded.
func RandGen(f *fst.Fst, sel string, seed int64, npath, maxLength int, weighted bool) (*fst.Fst, error) {
	var out *fst.Fst
	err := dispatch("RandGen", f, 0, func() error {
		s, err := selector(sel)
		if err != nil {
			return err
		}
		out, err = randgen.RandGen(f,
			randgen.WithSelector(s),
			randgen.WithSeed(seed),
			randgen.WithNPath(npath),
			randgen.WithMaxLength(maxLength),
			randgen.WithWeighted(weighted),
		)
		return err
	})
	return out, err
}

// Reverse returns the reversal of f.
func Reverse(f *fst.Fst) (*fst.Fst, error) {
	var out *fst.Fst
	err := dispatch("Reverse", f, 0, func() error {
		out = transform.Reverse(f)
		return nil
	})
	return out, err
}

// ShortestPath returns the n best paths of f; unique drops repeated label
// strings.
func ShortestPath(f *fst.Fst, n int, unique bool, delta float64) (*fst.Fst, error) {
	var out *fst.Fst
	err := dispatch("ShortestPath", f, orDefault(delta), func() error {
		if err := requirePath("ShortestPath", f); err != nil {
			return err
		}
		opts := []shortest.Option{shortest.WithNShortest(n), shortest.WithDelta(delta)}
		if unique {
			opts = append(opts, shortest.WithUnique())
		}
		var err error
		out, err = shortest.Path(f, opts...)
		return err
	})
	return out, err
}

// Synchronize returns a synchronized equivalent of f.
func Synchronize(f *fst.Fst) (*fst.Fst, error) {
	var out *fst.Fst
	err := dispatch("Synchronize", f, 0, func() error {
		var err error
		out, err = transform.Synchronize(f)
		return err
	})
	return out, err
}

// ---------------------------------------------------------------------------
// In-place
// ---------------------------------------------------------------------------

// ArcSort sorts the arcs of every state by "ilabel" or "olabel".
func ArcSort(f *fst.Fst, sort string) error {
	return dispatch("ArcSort", f, 0, func() error {
		t, err := sortType(sort)
		if err != nil {
			return err
		}
		transform.ArcSort(f, t)
		return nil
	})
}

// Closure applies the Kleene "star" or "plus" to f.
func Closure(f *fst.Fst, closure string) error {
	return dispatch("Closure", f, 0, func() error {
		t, err := closureType(closure)
		if err != nil {
			return err
		}
		rational.Closure(f, t)
		return nil
	})
}

// Concat appends g to f.
func Concat(f, g *fst.Fst) error {
	return dispatch("Concat", f, 0, func() error {
		if err := sameSemiring(f, g); err != nil {
			return err
		}
		return rational.Concat(f, g)
	})
}

// Connect trims states that are not on a successful path.
func Connect(f *fst.Fst) error {
	return dispatch("Connect", f, 0, func() error {
		transform.Connect(f)
		return nil
	})
}

// Invert swaps input and output labels.
func Invert(f *fst.Fst) error {
	return dispatch("Invert", f, 0, func() error {
		transform.Invert(f)
		return nil
	})
}

// Minimize minimizes a deterministic f.
func Minimize(f *fst.Fst, delta float64) error {
	return dispatch("Minimize", f, orDefault(delta), func() error {
		return minimize.Minimize(f, minimize.WithDelta(delta))
	})
}

// Prune keeps what lies within threshold of the best path, and at most
// nstate states when nstate > 0. threshold is read in f's semiring.
func Prune(f *fst.Fst, threshold float64, nstate int, delta float64) error {
	return dispatch("Prune", f, orDefault(delta), func() error {
		if err := requirePath("Prune", f); err != nil {
			return err
		}
		thr, err := weight.FromScalar(f.Semiring(), threshold)
		if err != nil {
			return err
		}
		opts := []prune.Option{prune.WithDelta(delta)}
		if nstate > 0 {
			opts = append(opts, prune.WithStateThreshold(nstate))
		}
		return prune.Prune(f, thr, opts...)
	})
}

// Project keeps the "input" or "output" labels on both sides.
func Project(f *fst.Fst, side string) error {
	return dispatch("Project", f, 0, func() error {
		t, err := projectType(side)
		if err != nil {
			return err
		}
		transform.Project(f, t)
		return nil
	})
}

// Push moves weight towards the "initial" or "final" states.
func Push(f *fst.Fst, direction string, removeTotalWeight bool, delta float64) error {
	return dispatch("Push", f, orDefault(delta), func() error {
		t, err := reweightType(direction)
		if err != nil {
			return err
		}
		opts := []reweight.Option{reweight.WithDelta(delta)}
		if removeTotalWeight {
			opts = append(opts, reweight.WithRemoveTotalWeight())
		}
		return reweight.Push(f, t, opts...)
	})
}

// RmEpsilon removes ε:ε arcs.
func RmEpsilon(f *fst.Fst, connect bool, delta float64) error {
	return dispatch("RmEpsilon", f, orDefault(delta), func() error {
		return epsilon.RmEpsilon(f, epsilon.WithConnect(connect), epsilon.WithDelta(delta))
	})
}

// TopSort renumbers states topologically. It reports false, leaving f
// unchanged, when f is cyclic.
func TopSort(f *fst.Fst) (bool, error) {
	var acyclic bool
	err := dispatch("TopSort", f, 0, func() error {
		acyclic = transform.TopSort(f)
		return nil
	})
	return acyclic, err
}

// Union adds the paths of g to f.
func Union(f, g *fst.Fst) error {
	return dispatch("Union", f, 0, func() error {
		if err := sameSemiring(f, g); err != nil {
			return err
		}
		return rational.Union(f, g)
	})
}

// ---------------------------------------------------------------------------
// Scalar and boolean
// ---------------------------------------------------------------------------

// Equal reports whether a and b are the same automaton up to delta.
func Equal(a, b *fst.Fst, delta float64) bool {
	var eq bool
	_ = dispatch("Equal", a, delta, func() error {
		eq = fst.Equal(a, b, delta)
		return nil
	})
	return eq
}

// Equivalent reports whether two deterministic acceptors (after label-pair
// encoding) accept the same weighted language.
func Equivalent(a, b *fst.Fst, delta float64) (bool, error) {
	var eq bool
	err := dispatch("Equivalent", a, delta, func() error {
		if err := sameSemiring(a, b); err != nil {
			return err
		}
		var err error
		eq, err = compare.Equivalent(a, b, delta)
		return err
	})
	return eq, err
}

// Isomorphic reports whether a and b differ only by state numbering.
func Isomorphic(a, b *fst.Fst, delta float64) (bool, error) {
	var iso bool
	err := dispatch("Isomorphic", a, delta, func() error {
		if err := sameSemiring(a, b); err != nil {
			return err
		}
		var err error
		iso, err = compare.Isomorphic(a, b, delta)
		return err
	})
	return iso, err
}

// ShortestDistance returns the shortest distance of every state as scalars,
// indexed by state id, and the number of entries. With reverse the distances
// run to the final states instead of from the start.
func ShortestDistance(f *fst.Fst, reverse bool, delta float64) ([]float64, int, error) {
	var out []float64
	err := dispatch("ShortestDistance", f, orDefault(delta), func() error {
		opts := []shortest.Option{shortest.WithDelta(delta)}
		if reverse {
			opts = append(opts, shortest.WithReverse())
		}
		d, err := shortest.Distance(f, opts...)
		if err != nil {
			return err
		}
		out = d.Scalars()
		return nil
	})
	return out, len(out), err
}
