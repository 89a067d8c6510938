package capi_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvfst/capi"
	"github.com/katalvlaran/lvfst/store"
	"github.com/katalvlaran/lvfst/weight"
)

// twoStates builds the tropical automaton 0 -1:1/0.5-> 1, final(1) = 0.
func twoStates(t *testing.T, s *capi.Session, tag string) capi.Handle {
	t.Helper()
	h, err := s.VectorFstCreate(tag)
	require.NoError(t, err)
	first, err := s.FstAddStates(h, 2)
	require.NoError(t, err)
	require.Equal(t, int32(0), first)
	ok, err := s.FstSetStart(h, 0)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.FstAddArc(h, 0, 1, 1, 0.5, 1)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.FstSetFinal(h, 1, 0)
	require.NoError(t, err)
	require.True(t, ok)
	return h
}

func TestConcreteScenario(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()
	h := twoStates(t, s, "tropical")

	n, err := s.FstNumStates(h)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	arcs0, _ := s.FstNumArcs(h, 0)
	arcs1, _ := s.FstNumArcs(h, 1)
	assert.Equal(t, 1, arcs0)
	assert.Equal(t, 0, arcs1)

	f1, _ := s.FstFinal(h, 1)
	f0, _ := s.FstFinal(h, 0)
	assert.Equal(t, 0.0, f1)
	assert.True(t, math.IsInf(f0, 1))

	missing, err := s.FstFinal(h, 42)
	require.NoError(t, err)
	assert.True(t, math.IsInf(missing, 1))

	wt, _ := s.FstWeightType(h)
	at, _ := s.FstArcType(h)
	ft, _ := s.FstType(h)
	assert.Equal(t, []string{"tropical", "standard", "vector"}, []string{wt, at, ft})

	require.NoError(t, s.FstDelete(h))
}

func TestSetFinal_ReadBack(t *testing.T) {
	for _, tag := range []string{"tropical", "log", "log64"} {
		t.Run(tag, func(t *testing.T) {
			s := capi.NewSession()
			defer s.Close()
			h, err := s.VectorFstCreate(tag)
			require.NoError(t, err)
			st, _ := s.FstAddState(h)

			for _, w := range []float64{0, 0.125, 3.75, -1.5} {
				ok, err := s.FstSetFinal(h, st, w)
				require.NoError(t, err)
				require.True(t, ok)
				got, _ := s.FstFinal(h, st)
				assert.InDelta(t, w, got, 1e-6)
			}
		})
	}
}

func TestMutations_FailWithoutEffect(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()
	h := twoStates(t, s, "tropical")

	tests := []struct {
		name string
		call func() (bool, error)
	}{
		{"arc to missing state", func() (bool, error) { return s.FstAddArc(h, 0, 2, 2, 1, 9) }},
		{"arc from missing state", func() (bool, error) { return s.FstAddArc(h, 7, 2, 2, 1, 0) }},
		{"negative label", func() (bool, error) { return s.FstAddArc(h, 0, -3, 2, 1, 1) }},
		{"start", func() (bool, error) { return s.FstSetStart(h, 5) }},
		{"final", func() (bool, error) { return s.FstSetFinal(h, 5, 1) }},
		{"delete arcs", func() (bool, error) { return s.FstDeleteArcs(h, 5) }},
		{"reserve arcs", func() (bool, error) { return s.FstReserveArcs(h, -1, 4) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := tc.call()
			require.NoError(t, err)
			assert.False(t, ok)

			n, _ := s.FstNumArcs(h, 0)
			assert.Equal(t, 1, n)
			start, _ := s.FstStart(h)
			assert.Equal(t, int32(0), start)
		})
	}
}

func TestDeletes(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()
	h := twoStates(t, s, "log")

	ok, err := s.FstDeleteArcs(h, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	n, _ := s.FstNumArcs(h, 0)
	assert.Zero(t, n)

	require.NoError(t, s.FstReserveStates(h, 16))
	require.NoError(t, s.FstDeleteStates(h))
	n, _ = s.FstNumStates(h)
	assert.Zero(t, n)
	start, _ := s.FstStart(h)
	assert.Equal(t, int32(-1), start)
}

func TestStateIterator(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()
	h, _ := s.VectorFstCreate("tropical")
	_, _ = s.FstAddStates(h, 5)

	it, err := s.StateIteratorCreate(h)
	require.NoError(t, err)

	var seen []int32
	for done, _ := s.StateIteratorDone(it); !done; done, _ = s.StateIteratorDone(it) {
		v, err := s.StateIteratorValue(it)
		require.NoError(t, err)
		seen = append(seen, v)
		require.NoError(t, s.StateIteratorNext(it))
	}
	assert.Equal(t, []int32{0, 1, 2, 3, 4}, seen)

	// adding a state invalidates the iterator
	require.NoError(t, s.StateIteratorReset(it))
	_, _ = s.FstAddState(h)
	done, err := s.StateIteratorDone(it)
	require.NoError(t, err)
	assert.True(t, done)
	_, err = s.StateIteratorValue(it)
	assert.True(t, capi.IsKind(err, capi.KindInvalidReference))

	require.NoError(t, s.StateIteratorDelete(it))
}

func TestArcIterator_PositionAndSeek(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()
	h, _ := s.VectorFstCreate("tropical")
	_, _ = s.FstAddStates(h, 2)
	for l := int32(1); l <= 4; l++ {
		ok, _ := s.FstAddArc(h, 0, l, l, float64(l), 1)
		require.True(t, ok)
	}

	it, err := s.ArcIteratorCreate(h, 0)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.ArcIteratorDelete(it)) }()

	for k := 0; k < 4; k++ {
		pos, _ := s.ArcIteratorPosition(it)
		assert.Equal(t, k, pos)
		v, err := s.ArcIteratorValue(it)
		require.NoError(t, err)
		assert.Equal(t, int32(k+1), v.ILabel)
		require.NoError(t, s.ArcIteratorNext(it))
	}
	done, _ := s.ArcIteratorDone(it)
	assert.True(t, done)
	_, err = s.ArcIteratorValue(it)
	assert.True(t, capi.IsKind(err, capi.KindInvalidReference))

	for k := 0; k <= 4; k++ {
		require.NoError(t, s.ArcIteratorSeek(it, k))
		pos, _ := s.ArcIteratorPosition(it)
		assert.Equal(t, k, pos)
	}
	require.NoError(t, s.ArcIteratorReset(it))
	pos, _ := s.ArcIteratorPosition(it)
	assert.Zero(t, pos)

	_, err = s.ArcIteratorCreate(h, 9)
	assert.True(t, capi.IsKind(err, capi.KindInvalidReference))
}

func TestMutableArcIterator_SetValue(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()
	h, _ := s.VectorFstCreate("log")
	_, _ = s.FstAddStates(h, 3)
	_, _ = s.FstAddArc(h, 0, 1, 1, 1, 1)
	_, _ = s.FstAddArc(h, 0, 2, 2, 2, 2)
	_, _ = s.FstAddArc(h, 0, 3, 3, 3, 2)

	it, err := s.MutableArcIteratorCreate(h, 0)
	require.NoError(t, err)
	require.NoError(t, s.MutableArcIteratorSeek(it, 1))

	ok, err := s.MutableArcIteratorSetValue(it, 0, 7, 0.25, 1)
	require.NoError(t, err)
	require.True(t, ok)

	v, err := s.MutableArcIteratorValue(it)
	require.NoError(t, err)
	assert.Equal(t, capi.ArcValue{ILabel: 0, OLabel: 7, Weight: 0.25, NextState: 1}, v)
	pos, _ := s.MutableArcIteratorPosition(it)
	assert.Equal(t, 1, pos)

	ieps, _ := s.FstNumInputEpsilons(h, 0)
	oeps, _ := s.FstNumOutputEpsilons(h, 0)
	assert.Equal(t, 1, ieps)
	assert.Equal(t, 0, oeps)

	// invalid destination: rejected, arc unchanged
	ok, err = s.MutableArcIteratorSetValue(it, 5, 5, 1, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	v, _ = s.MutableArcIteratorValue(it)
	assert.Equal(t, int32(7), v.OLabel)

	// neighbours unchanged
	require.NoError(t, s.MutableArcIteratorReset(it))
	v, _ = s.MutableArcIteratorValue(it)
	assert.Equal(t, capi.ArcValue{ILabel: 1, OLabel: 1, Weight: 1, NextState: 1}, v)
	require.NoError(t, s.MutableArcIteratorNext(it))
	require.NoError(t, s.MutableArcIteratorNext(it))
	v, _ = s.MutableArcIteratorValue(it)
	assert.Equal(t, capi.ArcValue{ILabel: 3, OLabel: 3, Weight: 3, NextState: 2}, v)
	require.NoError(t, s.MutableArcIteratorNext(it))
	done, _ := s.MutableArcIteratorDone(it)
	assert.True(t, done)

	ok, err = s.MutableArcIteratorSetValue(it, 1, 1, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.MutableArcIteratorDelete(it))
}

func TestHandles(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()

	h := twoStates(t, s, "tropical")
	it, err := s.ArcIteratorCreate(h, 0)
	require.NoError(t, err)

	// leased automaton cannot be released
	err = s.FstDelete(h)
	assert.ErrorIs(t, err, capi.ErrHandleBorrowed)
	assert.True(t, capi.IsKind(err, capi.KindInvalidReference))

	require.NoError(t, s.ArcIteratorDelete(it))
	assert.ErrorIs(t, s.ArcIteratorDelete(it), capi.ErrInvalidHandle)
	require.NoError(t, s.FstDelete(h))

	// double release and use-after-release
	assert.ErrorIs(t, s.FstDelete(h), capi.ErrInvalidHandle)
	_, err = s.FstNumStates(h)
	assert.ErrorIs(t, err, capi.ErrInvalidHandle)

	// a reused slot does not revive the stale handle
	h2, err := s.VectorFstCreate("log")
	require.NoError(t, err)
	assert.NotEqual(t, h, h2)
	_, err = s.FstStart(h)
	assert.ErrorIs(t, err, capi.ErrInvalidHandle)

	// never issued
	_, err = s.FstStart(0)
	assert.ErrorIs(t, err, capi.ErrInvalidHandle)
	_, err = s.StateIteratorDone(12345)
	assert.ErrorIs(t, err, capi.ErrInvalidHandle)

	assert.Equal(t, 1, s.Live())
}

func TestReadWrite(t *testing.T) {
	tests := []struct {
		name string
		opts []capi.Option
		key  func(t *testing.T) string
	}{
		{"file", nil, func(t *testing.T) string { return filepath.Join(t.TempDir(), "a.fst") }},
		{"memory", []capi.Option{capi.WithStore(store.NewMemoryStore())}, func(*testing.T) string { return "a" }},
	}
	for _, tc := range tests {
		for _, tag := range []string{"tropical", "log", "log64"} {
			t.Run(tc.name+"/"+tag, func(t *testing.T) {
				s := capi.NewSession(tc.opts...)
				defer s.Close()
				h := twoStates(t, s, tag)
				key := tc.key(t)

				require.NoError(t, s.FstWrite(h, key))
				g, err := s.FstRead(key)
				require.NoError(t, err)

				eq, err := s.FstEqual(h, g, 0)
				require.NoError(t, err)
				assert.True(t, eq)
				wt, _ := s.FstWeightType(g)
				assert.Equal(t, tag, wt)
			})
		}
	}
}

func TestErrorKinds(t *testing.T) {
	s := capi.NewSession(capi.WithStore(store.NewMemoryStore()))
	defer s.Close()

	_, err := s.VectorFstCreate("boolean")
	assert.True(t, capi.IsKind(err, capi.KindUnsupported))
	assert.ErrorIs(t, err, weight.ErrUnsupportedSemiring)

	_, err = s.FstRead("missing")
	assert.True(t, capi.IsKind(err, capi.KindIO))
	assert.ErrorIs(t, err, store.ErrNotFound)

	a := twoStates(t, s, "tropical")
	b := twoStates(t, s, "log")
	_, err = s.FstCompose(a, b, "", true)
	assert.True(t, capi.IsKind(err, capi.KindSemiringMismatch))

	_, err = s.FstShortestPath(b, 1, false, 0)
	assert.True(t, capi.IsKind(err, capi.KindUnsupported))

	err = s.FstClosure(a, "sometimes")
	assert.True(t, capi.IsKind(err, capi.KindUnsupported))

	var ce *capi.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "FstClosure", ce.Op)
	assert.Equal(t, a, ce.Handle)
}

func TestNonMemberWeightsRejected(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()
	h := twoStates(t, s, "tropical")

	for _, x := range []float64{math.NaN(), math.Inf(-1)} {
		ok, err := s.FstSetFinal(h, 0, x)
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = s.FstAddArc(h, 0, 2, 2, x, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	fin, err := s.FstFinal(h, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(fin, 1))
	n, err := s.FstNumArcs(h, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	eq, err := s.FstEqual(h, h, 0)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestSaveFailuresAreIO(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(regular, []byte("x"), 0o644))

	s := capi.NewSession(capi.WithStore(store.NewFileStore("")))
	defer s.Close()
	h := twoStates(t, s, "tropical")

	cases := []struct {
		name string
		key  string
	}{
		{"directory", dir},
		{"under regular file", filepath.Join(regular, "sub", "a.fst")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.FstWrite(h, tc.key)
			require.Error(t, err)
			assert.True(t, capi.IsKind(err, capi.KindIO), "got %v", err)

			_, err = s.FstRead(tc.key)
			require.Error(t, err)
			assert.True(t, capi.IsKind(err, capi.KindIO), "got %v", err)
		})
	}
}

func TestAlgorithms(t *testing.T) {
	s := capi.NewSession()
	defer s.Close()

	one, err := s.VectorFstCreate("log")
	require.NoError(t, err)
	st, _ := s.FstAddState(one)
	_, _ = s.FstSetStart(one, st)
	_, _ = s.FstSetFinal(one, st, 0)
	d, n, err := s.FstShortestDistance(one, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []float64{0}, d)

	h := twoStates(t, s, "tropical")
	rev, err := s.FstReverse(h)
	require.NoError(t, err)
	back, err := s.FstReverse(rev)
	require.NoError(t, err)
	require.NoError(t, s.FstRmEpsilon(back, true, 0))
	eq, err := s.FstEquivalent(h, back, 0)
	require.NoError(t, err)
	assert.True(t, eq)

	det, err := s.FstDeterminize(h, 0, "", 0)
	require.NoError(t, err)
	iso, err := s.FstIsomorphic(h, det, 0)
	require.NoError(t, err)
	assert.True(t, iso)

	require.NoError(t, s.FstUnion(h, det))
	ns, _ := s.FstNumStates(h)
	assert.Equal(t, 4, ns)
	require.NoError(t, s.FstRmEpsilon(h, true, 0))
	ok, err := s.FstTopSort(h)
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := s.FstShortestPath(h, 2, true, 0)
	require.NoError(t, err)
	d, _, err = s.FstShortestDistance(p, true, 0)
	require.NoError(t, err)
	start, _ := s.FstStart(p)
	assert.InDelta(t, 0.5, d[start], 1e-6)
}

func TestWeights(t *testing.T) {
	z, err := capi.WeightZero("log64")
	require.NoError(t, err)
	assert.True(t, math.IsInf(z, 1))
	o, err := capi.WeightOne("standard")
	require.NoError(t, err)
	assert.Zero(t, o)
	_, err = capi.WeightOne("real")
	assert.True(t, capi.IsKind(err, capi.KindUnsupported))
}

func TestSession_CloseReportsLeaks(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	capi.SetLogger(zap.New(core))
	t.Cleanup(func() { capi.SetLogger(nil) })

	s := capi.NewSession()
	h := twoStates(t, s, "tropical")
	_, err := s.StateIteratorCreate(h)
	require.NoError(t, err)
	_, err = s.ArcIteratorCreate(h, 0)
	require.NoError(t, err)

	s.Close()
	assert.Zero(t, s.Live())
	entries := logs.FilterMessage("session closed with live handles").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["handles"])
}
