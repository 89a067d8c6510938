// SPDX-License-Identifier: MIT

package capi

import (
	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/script"
	"github.com/katalvlaran/lvfst/weight"
)

// produce issues a handle for the result of a producing algorithm.
func (s *Session) produce(op string, h Handle, out *fst.Fst, err error) (Handle, error) {
	if err != nil {
		return 0, wrap(op, h, err)
	}
	return s.issue(op, out)
}

func (s *Session) pair(op string, a, b Handle) (*fst.Fst, *fst.Fst, error) {
	fa, err := s.fst(op, a)
	if err != nil {
		return nil, nil, err
	}
	fb, err := s.fst(op, b)
	if err != nil {
		return nil, nil, err
	}
	return fa, fb, nil
}

// ---------------------------------------------------------------------------
// Weights
// ---------------------------------------------------------------------------

// WeightZero returns the scalar of Zero in the semiring named tag.
func WeightZero(tag string) (float64, error) {
	sr, err := weight.ParseSemiring(tag)
	if err != nil {
		return 0, wrap("WeightZero", 0, err)
	}
	return weight.Zero(sr).Value(), nil
}

// WeightOne returns the scalar of One in the semiring named tag.
func WeightOne(tag string) (float64, error) {
	sr, err := weight.ParseSemiring(tag)
	if err != nil {
		return 0, wrap("WeightOne", 0, err)
	}
	return weight.One(sr).Value(), nil
}

// ---------------------------------------------------------------------------
// Producing
// ---------------------------------------------------------------------------

// FstCompose returns a handle to a ∘ b.
func (s *Session) FstCompose(a, b Handle, filter string, connect bool) (Handle, error) {
	fa, fb, err := s.pair("FstCompose", a, b)
	if err != nil {
		return 0, err
	}
	out, err := script.Compose(fa, fb, filter, connect)
	return s.produce("FstCompose", a, out, err)
}

// FstIntersect returns a handle to a ∩ b.
func (s *Session) FstIntersect(a, b Handle, filter string, connect bool) (Handle, error) {
	fa, fb, err := s.pair("FstIntersect", a, b)
	if err != nil {
		return 0, err
	}
	out, err := script.Intersect(fa, fb, filter, connect)
	return s.produce("FstIntersect", a, out, err)
}

// FstDifference returns a handle to a − b.
func (s *Session) FstDifference(a, b Handle, filter string, connect bool) (Handle, error) {
	fa, fb, err := s.pair("FstDifference", a, b)
	if err != nil {
		return 0, err
	}
	out, err := script.Difference(fa, fb, filter, connect)
	return s.produce("FstDifference", a, out, err)
}

// FstDeterminize returns a handle to the determinization of h.
func (s *Session) FstDeterminize(h Handle, delta float64, detType string, maxStates int) (Handle, error) {
	f, err := s.fst("FstDeterminize", h)
	if err != nil {
		return 0, err
	}
	out, err := script.Determinize(f, delta, detType, maxStates)
	return s.produce("FstDeterminize", h, out, err)
}

// FstDisambiguate returns a handle to the disambiguation of h.
func (s *Session) FstDisambiguate(h Handle, delta float64) (Handle, error) {
	f, err := s.fst("FstDisambiguate", h)
	if err != nil {
		return 0, err
	}
	out, err := script.Disambiguate(f, delta)
	return s.produce("FstDisambiguate", h, out, err)
}

// FstEpsNormalize returns a handle to h with ε labels normalized on one side.
func (s *Session) FstEpsNormalize(h Handle, normType string, delta float64) (Handle, error) {
	f, err := s.fst("FstEpsNormalize", h)
	if err != nil {
		return 0, err
	}
	out, err := script.EpsNormalize(f, normType, delta)
	return s.produce("FstEpsNormalize", h, out, err)
}

// FstRandGen returns a handle to npath random paths of h.
func (s *Session) FstRandGen(h Handle, selector string, seed int64, npath, maxLength int, weighted bool) (Handle, error) {
	f, err := s.fst("FstRandGen", h)
	if err != nil {
		return 0, err
	}
	out, err := script.RandGen(f, selector, seed, npath, maxLength, weighted)
	return s.produce("FstRandGen", h, out, err)
}

// FstReverse returns a handle to the reversal of h.
func (s *Session) FstReverse(h Handle) (Handle, error) {
	f, err := s.fst("FstReverse", h)
	if err != nil {
		return 0, err
	}
	out, err := script.Reverse(f)
	return s.produce("FstReverse", h, out, err)
}

// FstShortestPath returns a handle to the n best paths of h.
func (s *Session) FstShortestPath(h Handle, n int, unique bool, delta float64) (Handle, error) {
	f, err := s.fst("FstShortestPath", h)
	if err != nil {
		return 0, err
	}
	out, err := script.ShortestPath(f, n, unique, delta)
	return s.produce("FstShortestPath", h, out, err)
}

// FstSynchronize returns a handle to the synchronization of h.
func (s *Session) FstSynchronize(h Handle) (Handle, error) {
	f, err := s.fst("FstSynchronize", h)
	if err != nil {
		return 0, err
	}
	out, err := script.Synchronize(f)
	return s.produce("FstSynchronize", h, out, err)
}

// ---------------------------------------------------------------------------
// In-place
// ---------------------------------------------------------------------------

func (s *Session) inPlace(op string, h Handle, fn func(*fst.Fst) error) error {
	f, err := s.fst(op, h)
	if err != nil {
		return err
	}
	return wrap(op, h, fn(f))
}

// FstArcSort sorts the arcs of h by "ilabel" or "olabel".
func (s *Session) FstArcSort(h Handle, sort string) error {
	return s.inPlace("FstArcSort", h, func(f *fst.Fst) error { return script.ArcSort(f, sort) })
}

// FstClosure applies the "star" or "plus" closure to h.
func (s *Session) FstClosure(h Handle, closure string) error {
	return s.inPlace("FstClosure", h, func(f *fst.Fst) error { return script.Closure(f, closure) })
}

// FstConcat appends b to a.
func (s *Session) FstConcat(a, b Handle) error {
	fa, fb, err := s.pair("FstConcat", a, b)
	if err != nil {
		return err
	}
	return wrap("FstConcat", a, script.Concat(fa, fb))
}

// FstConnect trims h.
func (s *Session) FstConnect(h Handle) error {
	return s.inPlace("FstConnect", h, script.Connect)
}

// FstInvert swaps the labels of h.
func (s *Session) FstInvert(h Handle) error {
	return s.inPlace("FstInvert", h, script.Invert)
}

// FstMinimize minimizes h.
func (s *Session) FstMinimize(h Handle, delta float64) error {
	return s.inPlace("FstMinimize", h, func(f *fst.Fst) error { return script.Minimize(f, delta) })
}

// FstPrune prunes h by a weight threshold and, if nstate > 0, a state count.
func (s *Session) FstPrune(h Handle, threshold float64, nstate int, delta float64) error {
	return s.inPlace("FstPrune", h, func(f *fst.Fst) error { return script.Prune(f, threshold, nstate, delta) })
}

// FstProject keeps the "input" or "output" labels of h.
func (s *Session) FstProject(h Handle, side string) error {
	return s.inPlace("FstProject", h, func(f *fst.Fst) error { return script.Project(f, side) })
}

// FstPush pushes the weights of h towards the "initial" or "final" states.
func (s *Session) FstPush(h Handle, direction string, removeTotalWeight bool, delta float64) error {
	return s.inPlace("FstPush", h, func(f *fst.Fst) error {
		return script.Push(f, direction, removeTotalWeight, delta)
	})
}

// FstRmEpsilon removes the ε:ε arcs of h.
func (s *Session) FstRmEpsilon(h Handle, connect bool, delta float64) error {
	return s.inPlace("FstRmEpsilon", h, func(f *fst.Fst) error { return script.RmEpsilon(f, connect, delta) })
}

// FstTopSort sorts h topologically and reports whether it is acyclic.
func (s *Session) FstTopSort(h Handle) (bool, error) {
	var acyclic bool
	err := s.inPlace("FstTopSort", h, func(f *fst.Fst) (err error) {
		acyclic, err = script.TopSort(f)
		return err
	})
	return acyclic, err
}

// FstUnion adds the paths of b to a.
func (s *Session) FstUnion(a, b Handle) error {
	fa, fb, err := s.pair("FstUnion", a, b)
	if err != nil {
		return err
	}
	return wrap("FstUnion", a, script.Union(fa, fb))
}

// ---------------------------------------------------------------------------
// Scalar and boolean
// ---------------------------------------------------------------------------

// FstEqual reports whether a and b are equal up to delta.
func (s *Session) FstEqual(a, b Handle, delta float64) (bool, error) {
	fa, fb, err := s.pair("FstEqual", a, b)
	if err != nil {
		return false, err
	}
	return script.Equal(fa, fb, delta), nil
}

// FstEquivalent reports whether a and b accept the same weighted language.
func (s *Session) FstEquivalent(a, b Handle, delta float64) (bool, error) {
	fa, fb, err := s.pair("FstEquivalent", a, b)
	if err != nil {
		return false, err
	}
	eq, err := script.Equivalent(fa, fb, delta)
	return eq, wrap("FstEquivalent", a, err)
}

// FstIsomorphic reports whether a and b differ only by state numbering.
func (s *Session) FstIsomorphic(a, b Handle, delta float64) (bool, error) {
	fa, fb, err := s.pair("FstIsomorphic", a, b)
	if err != nil {
		return false, err
	}
	iso, err := script.Isomorphic(fa, fb, delta)
	return iso, wrap("FstIsomorphic", a, err)
}

// FstShortestDistance returns per-state distance scalars and their count.
// The slice belongs to the caller.
func (s *Session) FstShortestDistance(h Handle, reverse bool, delta float64) ([]float64, int, error) {
	f, err := s.fst("FstShortestDistance", h)
	if err != nil {
		return nil, 0, err
	}
	d, n, err := script.ShortestDistance(f, reverse, delta)
	return d, n, wrap("FstShortestDistance", h, err)
}
