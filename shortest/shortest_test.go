package shortest_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/shortest"
	"github.com/katalvlaran/lvfst/weight"
)

// diamond: 0 -1-> 1 -3-> 2, 0 -2-> 2 ; final(2) = 0.5.
const diamond = "0 1 1 1 1\n0 2 2 2 4\n1 2 3 3 1\n2 0.5\n"

func compile(t *testing.T, src string, s weight.Semiring) *fst.Fst {
	t.Helper()
	f, err := fst.ReadText(strings.NewReader(src), s, false)
	require.NoError(t, err)
	return f
}

func TestDistance_Forward(t *testing.T) {
	for _, q := range []shortest.QueueType{shortest.AutoQueue, shortest.FIFOQueue, shortest.ShortestFirstQueue} {
		d, err := shortest.Distance(compile(t, diamond, weight.Tropical), shortest.WithQueue(q))
		require.NoError(t, err)
		assert.Equal(t, 3, d.Len())
		assert.Equal(t, []float64{0, 1, 2}, d.Scalars())
	}
}

func TestDistance_Reverse(t *testing.T) {
	d, err := shortest.Distance(compile(t, diamond, weight.Tropical), shortest.WithReverse())
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 1.5, 0.5}, d.Scalars())
}

func TestDistance_SingleFinalStart(t *testing.T) {
	f, _ := fst.New(weight.Log)
	s := f.AddState()
	require.NoError(t, f.SetStart(s))
	require.NoError(t, f.SetFinal(s, weight.One(weight.Log)))
	d, err := shortest.Distance(f)
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, weight.One(weight.Log).Value(), d.Scalars()[0])
}

func TestDistance_LengthFollowsDiscovery(t *testing.T) {
	f := compile(t, "0 1 1 1\n2 3 1 1\n1\n3\n", weight.Tropical)
	d, err := shortest.Distance(f)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.At(3).IsZero())
	assert.True(t, d.At(99).IsZero())

	empty, _ := fst.New(weight.Tropical)
	d, err = shortest.Distance(empty)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())
}

func TestDistance_LogSum(t *testing.T) {
	f := compile(t, "0 1 1 1 0\n0 1 2 2 0\n1\n", weight.Log64)
	d, err := shortest.Distance(f)
	require.NoError(t, err)
	assert.InDelta(t, -math.Ln2, d.At(1).Value(), 1e-9)
}

func TestDistance_LogCycleConverges(t *testing.T) {
	f := compile(t, "0 1 1 1 1\n1 1 2 2 0.6931471805599453\n1\n", weight.Log64)
	d, err := shortest.Distance(f, shortest.WithDelta(1e-6))
	require.NoError(t, err)
	assert.InDelta(t, 1-math.Ln2, d.At(1).Value(), 1e-4)
}

func TestDistance_SourceAndFilter(t *testing.T) {
	f := compile(t, diamond, weight.Tropical)
	d, err := shortest.Distance(f, shortest.WithSource(1))
	require.NoError(t, err)
	assert.True(t, d.At(0).IsZero())
	assert.Equal(t, 1.0, d.At(2).Value())

	d, err = shortest.Distance(f, shortest.WithArcFilter(func(a fst.Arc) bool { return a.ILabel != 1 }))
	require.NoError(t, err)
	assert.Equal(t, 4.0, d.At(2).Value())
	assert.True(t, d.At(1).IsZero())

	_, err = shortest.Distance(f, shortest.WithSource(7))
	assert.ErrorIs(t, err, shortest.ErrBadSource)
}

func TestPath_Single(t *testing.T) {
	p, err := shortest.Path(compile(t, diamond, weight.Tropical))
	require.NoError(t, err)
	require.Equal(t, 3, p.NumStates())
	assert.Equal(t, fst.StateID(0), p.Start())
	assert.Equal(t, fst.Label(1), p.Arcs(0)[0].ILabel)
	assert.Equal(t, fst.Label(3), p.Arcs(1)[0].ILabel)
	assert.Equal(t, 0.5, p.Final(2).Value())
}

func TestPath_NShortestSharesPrefix(t *testing.T) {
	p, err := shortest.Path(compile(t, diamond, weight.Tropical), shortest.WithNShortest(2))
	require.NoError(t, err)
	assert.Equal(t, 4, p.NumStates())
	assert.Equal(t, 2, p.NumArcs(p.Start()))

	d, err := shortest.Distance(p, shortest.WithReverse())
	require.NoError(t, err)
	assert.Equal(t, 2.5, d.At(p.Start()).Value())
}

func TestPath_Unique(t *testing.T) {
	src := "0 1 5 5 1\n0 1 5 5 2\n0 1 6 6 3\n1\n"
	p, err := shortest.Path(compile(t, src, weight.Tropical), shortest.WithNShortest(2))
	require.NoError(t, err)
	assert.Equal(t, 2, p.NumArcs(p.Start()))
	assert.Equal(t, fst.Label(5), p.Arcs(p.Start())[1].ILabel)

	p, err = shortest.Path(compile(t, src, weight.Tropical), shortest.WithNShortest(2), shortest.WithUnique())
	require.NoError(t, err)
	arcs := p.Arcs(p.Start())
	require.Len(t, arcs, 2)
	assert.Equal(t, fst.Label(5), arcs[0].ILabel)
	assert.Equal(t, fst.Label(6), arcs[1].ILabel)
}

func TestPath_Errors(t *testing.T) {
	_, err := shortest.Path(compile(t, diamond, weight.Log))
	assert.ErrorIs(t, err, weight.ErrNoPathProperty)

	_, err = shortest.Path(compile(t, diamond, weight.Tropical), shortest.WithNShortest(0))
	assert.ErrorIs(t, err, shortest.ErrBadNShortest)

	p, err := shortest.Path(compile(t, "0 1 1 1\n", weight.Tropical))
	require.NoError(t, err)
	assert.Equal(t, 0, p.NumStates(), "no successful path")
}
