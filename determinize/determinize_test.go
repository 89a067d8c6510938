package determinize_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfst/determinize"
	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

func compile(t *testing.T, src string, s weight.Semiring) *fst.Fst {
	t.Helper()
	f, err := fst.ReadText(strings.NewReader(src), s, false)
	require.NoError(t, err)
	return f
}

type pair struct{ i, o fst.Label }

func labels(f *fst.Fst, s fst.StateID) []pair {
	var out []pair
	for _, a := range f.Arcs(s) {
		out = append(out, pair{a.ILabel, a.OLabel})
	}
	return out
}

func TestDeterminize_Acceptor(t *testing.T) {
	f := compile(t, "0 1 1 1 1\n0 2 1 1 2\n1 3 2 2 1\n2 3 3 3 1\n3\n", weight.Tropical)
	g, err := determinize.Determinize(f)
	require.NoError(t, err)

	require.Equal(t, 3, g.NumStates())
	assert.True(t, g.Properties().InputDeterministic)
	start := g.Arcs(g.Start())
	require.Len(t, start, 1)
	assert.Equal(t, 1.0, start[0].Weight.Value())

	mid := g.Arcs(start[0].NextState)
	require.Len(t, mid, 2)
	assert.Equal(t, []pair{{2, 2}, {3, 3}}, labels(g, start[0].NextState))
	assert.Equal(t, 1.0, mid[0].Weight.Value())
	assert.Equal(t, 2.0, mid[1].Weight.Value())
	assert.Equal(t, mid[0].NextState, mid[1].NextState)
	assert.True(t, g.Final(mid[0].NextState).IsOne())
}

func TestDeterminize_LogSums(t *testing.T) {
	f := compile(t, "0 1 1 1 0\n0 1 1 1 0\n1\n", weight.Log64)
	g, err := determinize.Determinize(f)
	require.NoError(t, err)
	require.Equal(t, 2, g.NumStates())
	arcs := g.Arcs(g.Start())
	require.Len(t, arcs, 1)
	assert.InDelta(t, -math.Ln2, arcs[0].Weight.Value(), 1e-9)
}

func TestDeterminize_FunctionalTransducer(t *testing.T) {
	f := compile(t, "0 1 1 10\n0 2 1 20\n1 3 2 0\n2 3 3 0\n3\n", weight.Tropical)
	g, err := determinize.Determinize(f)
	require.NoError(t, err)
	require.Equal(t, 3, g.NumStates())
	assert.Equal(t, []pair{{1, 0}}, labels(g, g.Start()), "output is delayed")
	next := g.Arcs(g.Start())[0].NextState
	assert.Equal(t, []pair{{2, 10}, {3, 20}}, labels(g, next))
}

func TestDeterminize_FinalResidual(t *testing.T) {
	f := compile(t, "0 1 1 5\n0 2 1 6\n1 3 2 0\n2\n3\n", weight.Tropical)
	g, err := determinize.Determinize(f)
	require.NoError(t, err)
	require.Equal(t, 4, g.NumStates())

	mid := g.Arcs(g.Start())[0].NextState
	var flushed bool
	for _, a := range g.Arcs(mid) {
		if a.ILabel == fst.Epsilon && a.OLabel == 6 {
			flushed = g.IsFinal(a.NextState)
		}
	}
	assert.True(t, flushed, "the residual output 6 is emitted before accepting")
}

func TestDeterminize_NonFunctional(t *testing.T) {
	src := "0 1 1 10\n0 2 1 20\n1 3 2 0\n2 3 2 0\n3\n"
	_, err := determinize.Determinize(compile(t, src, weight.Tropical))
	assert.ErrorIs(t, err, determinize.ErrNonFunctional)

	g, err := determinize.Determinize(compile(t, src, weight.Tropical),
		determinize.WithType(determinize.TypeDisambiguate))
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumStates())
	assert.Equal(t, fst.Transducer, g.Kind())
}

func TestDeterminize_StateLimit(t *testing.T) {
	f := compile(t, "0 1 1 1 1\n0 2 1 1 2\n1 3 2 2 1\n2 3 3 3 1\n3\n", weight.Tropical)
	_, err := determinize.Determinize(f, determinize.WithMaxStates(2))
	assert.ErrorIs(t, err, determinize.ErrStateLimit)
}

func TestDisambiguate(t *testing.T) {
	f := compile(t, "0 1 1 1 1\n0 1 1 1 3\n1\n", weight.Tropical)
	g, err := determinize.Disambiguate(f)
	require.NoError(t, err)
	arcs := g.Arcs(g.Start())
	require.Len(t, arcs, 1)
	assert.Equal(t, 1.0, arcs[0].Weight.Value())

	_, err = determinize.Disambiguate(compile(t, "0\n", weight.Log))
	assert.ErrorIs(t, err, weight.ErrNoPathProperty)
}

func TestDeterminize_NoStart(t *testing.T) {
	f, _ := fst.New(weight.Tropical)
	g, err := determinize.Determinize(f)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumStates())
}
