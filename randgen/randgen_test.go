package randgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/randgen"
	"github.com/katalvlaran/lvfst/weight"
)

func compile(t *testing.T, src string) *fst.Fst {
	t.Helper()
	f, err := fst.ReadText(strings.NewReader(src), weight.Tropical, false)
	require.NoError(t, err)
	return f
}

func TestRandGen_SharesPrefixes(t *testing.T) {
	f := compile(t, "0 1 1 1 0.5\n1 2 2 2 0.25\n2\n")
	g, err := randgen.RandGen(f, randgen.WithNPath(5), randgen.WithSeed(3))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumStates())
	assert.Equal(t, 2, g.TotalArcs())
	assert.False(t, g.Properties().Weighted)

	w, err := randgen.RandGen(f, randgen.WithWeighted(true))
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.Arcs(w.Start())[0].Weight.Value())
}

func TestRandGen_DeadEnds(t *testing.T) {
	g, err := randgen.RandGen(compile(t, "0 1 1 1\n"), randgen.WithNPath(10))
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumStates())
}

func TestRandGen_MaxLength(t *testing.T) {
	f := compile(t, "0 0 1 1\n0\n")
	g, err := randgen.RandGen(f, randgen.WithNPath(50), randgen.WithMaxLength(2), randgen.WithSeed(7))
	require.NoError(t, err)
	assert.LessOrEqual(t, g.NumStates(), 3)
	for s := fst.StateID(0); int(s) < g.NumStates(); s++ {
		assert.LessOrEqual(t, g.NumArcs(s), 1)
	}
}

func TestRandGen_Selectors(t *testing.T) {
	f := compile(t, "0 1 1 1 0\n0 2 2 2 50\n1\n2\n")

	g, err := randgen.RandGen(f, randgen.WithNPath(20), randgen.WithSeed(11),
		randgen.WithSelector(randgen.LogProbSelector))
	require.NoError(t, err)
	arcs := g.Arcs(g.Start())
	require.Len(t, arcs, 1)
	assert.Equal(t, fst.Label(1), arcs[0].ILabel)

	g, err = randgen.RandGen(f, randgen.WithNPath(20), randgen.WithSeed(11))
	require.NoError(t, err)
	assert.Len(t, g.Arcs(g.Start()), 2)
}

func TestRandGen_BadNPath(t *testing.T) {
	_, err := randgen.RandGen(compile(t, "0\n"), randgen.WithNPath(0))
	assert.ErrorIs(t, err, randgen.ErrBadNPath)
}
