package compose_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfst/compose"
	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/shortest"
	"github.com/katalvlaran/lvfst/weight"
)

func compile(t *testing.T, src string, acceptor bool) *fst.Fst {
	t.Helper()
	f, err := fst.ReadText(strings.NewReader(src), weight.Tropical, acceptor)
	require.NoError(t, err)
	return f
}

// paths lists the input label strings of up to n best paths of f.
func paths(t *testing.T, f *fst.Fst, n int) [][]fst.Label {
	t.Helper()
	p, err := shortest.Path(f, shortest.WithNShortest(n))
	require.NoError(t, err)
	var out [][]fst.Label
	if p.Start() == fst.NoStateID {
		return out
	}
	var walk func(s fst.StateID, prefix []fst.Label)
	walk = func(s fst.StateID, prefix []fst.Label) {
		if p.IsFinal(s) {
			out = append(out, append([]fst.Label(nil), prefix...))
		}
		for _, a := range p.Arcs(s) {
			next := prefix
			if a.ILabel != fst.Epsilon {
				next = append(append([]fst.Label(nil), prefix...), a.ILabel)
			}
			walk(a.NextState, next)
		}
	}
	walk(p.Start(), nil)
	return out
}

func TestCompose_Labels(t *testing.T) {
	a := compile(t, "0 1 1 2 0.5\n1\n", false)
	b := compile(t, "0 1 2 3 0.25\n1\n", false)
	c, err := compose.Compose(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, c.NumStates())
	arc := c.Arcs(c.Start())[0]
	assert.Equal(t, fst.Label(1), arc.ILabel)
	assert.Equal(t, fst.Label(3), arc.OLabel)
	assert.Equal(t, 0.75, arc.Weight.Value())
	assert.True(t, c.IsFinal(arc.NextState))
}

func TestCompose_NoMatch(t *testing.T) {
	a := compile(t, "0 1 1 2\n1\n", false)
	b := compile(t, "0 1 4 3\n1\n", false)
	c, err := compose.Compose(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, c.NumStates())

	c, err = compose.Compose(a, b, compose.WithConnect(false))
	require.NoError(t, err)
	assert.Equal(t, 1, c.NumStates(), "untrimmed result keeps the start pair")
}

func TestCompose_EpsilonPathsNotDuplicated(t *testing.T) {
	a := compile(t, "0 1 1 0\n1\n", false)
	b := compile(t, "0 1 0 5\n1\n", false)
	c, err := compose.Compose(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumStates())
	assert.Equal(t, 2, c.TotalArcs())
	assert.Len(t, paths(t, c, 10), 1)
}

func TestCompose_SemiringMismatch(t *testing.T) {
	a := compile(t, "0\n", false)
	b, err := fst.ReadText(strings.NewReader("0\n"), weight.Log, false)
	require.NoError(t, err)
	_, err = compose.Compose(a, b)
	assert.ErrorIs(t, err, compose.ErrSemiringMismatch)
}

func TestIntersect(t *testing.T) {
	a := compile(t, "0 1 1\n1 2 2\n1 2 3\n2\n", true)
	b := compile(t, "0 1 1\n1 2 3 1.5\n2\n", true)
	c, err := compose.Intersect(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]fst.Label{{1, 3}}, paths(t, c, 10))

	_, err = compose.Intersect(compile(t, "0 1 1 2\n1\n", false), b)
	assert.ErrorIs(t, err, compose.ErrNotAcceptor)
}

func TestDifference(t *testing.T) {
	a := compile(t, "0 1 1\n1 2 2\n1 2 3 0.5\n2\n", true)
	b := compile(t, "0 1 1\n1 2 2\n2\n", true)
	d, err := compose.Difference(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]fst.Label{{1, 3}}, paths(t, d, 10))

	// Removing nothing keeps everything.
	none := compile(t, "0 1 7\n", true)
	d, err = compose.Difference(a, none)
	require.NoError(t, err)
	assert.Len(t, paths(t, d, 10), 2)
}

func TestDifference_RejectsOperand(t *testing.T) {
	a := compile(t, "0 1 1\n1\n", true)
	cases := map[string]string{
		"weighted":          "0 1 1 0.5\n1\n",
		"epsilon":           "0 1 0\n1\n",
		"non-deterministic": "0 1 1\n0 2 1\n1\n2\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := compose.Difference(a, compile(t, src, true))
			assert.ErrorIs(t, err, compose.ErrDifferenceOperand)
		})
	}
}
