package weight_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvfst/weight"
)

func TestIdentities(t *testing.T) {
	for _, s := range weight.Semirings {
		t.Run(s.String(), func(t *testing.T) {
			assert.True(t, weight.Zero(s).IsZero())
			assert.True(t, weight.One(s).IsOne())
			assert.True(t, math.IsInf(weight.Zero(s).Value(), 1))
			assert.Equal(t, 0.0, weight.One(s).Value())

			w, err := weight.FromScalar(s, 2.5)
			require.NoError(t, err)
			assert.Equal(t, w, weight.Plus(w, weight.Zero(s)), "Zero is the ⊕-identity")
			assert.Equal(t, w, weight.Times(w, weight.One(s)), "One is the ⊗-identity")
			assert.True(t, weight.Times(w, weight.Zero(s)).IsZero(), "Zero annihilates")
		})
	}
}

func TestFromScalar_Precision(t *testing.T) {
	w, err := weight.FromScalar(weight.Tropical, 0.1)
	require.NoError(t, err)
	assert.Equal(t, float64(float32(0.1)), w.Value())

	w, err = weight.FromScalar(weight.Log64, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, w.Value())
}

func TestFromScalar_Unsupported(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	weight.SetLogger(zap.New(core))
	t.Cleanup(func() { weight.SetLogger(nil) })

	_, err := weight.FromScalar(weight.Semiring(42), 1)
	require.ErrorIs(t, err, weight.ErrUnsupportedSemiring)
	assert.Equal(t, 1, logs.FilterMessage("weight type not supported").Len())
}

func TestFromScalar_NonMember(t *testing.T) {
	for _, s := range []weight.Semiring{weight.Tropical, weight.Log, weight.Log64} {
		for _, x := range []float64{math.NaN(), math.Inf(-1)} {
			_, err := weight.FromScalar(s, x)
			assert.ErrorIs(t, err, weight.ErrBadWeight, "%s %v", s, x)
		}
		w, err := weight.FromScalar(s, math.Inf(1))
		require.NoError(t, err)
		assert.True(t, w.IsZero())
		w, err = weight.FromScalar(s, -2.5)
		require.NoError(t, err)
		assert.Equal(t, -2.5, w.Value())
	}
}

func TestFromScalarLenient(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	weight.SetLogger(zap.New(core))
	t.Cleanup(func() { weight.SetLogger(nil) })

	w := weight.FromScalarLenient("real", 3)
	assert.Equal(t, weight.One(weight.Tropical), w)
	assert.GreaterOrEqual(t, logs.Len(), 1, "fallback must not be silent")

	w = weight.FromScalarLenient("log64", 3)
	assert.Equal(t, weight.Log64, w.Semiring())
	assert.Equal(t, 3.0, w.Value())
}

func TestParseSemiring(t *testing.T) {
	cases := map[string]weight.Semiring{
		"tropical": weight.Tropical,
		"standard": weight.Tropical,
		"log":      weight.Log,
		"log64":    weight.Log64,
	}
	for name, want := range cases {
		got, err := weight.ParseSemiring(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := weight.ParseSemiring("real")
	assert.ErrorIs(t, err, weight.ErrUnsupportedSemiring)

	assert.Equal(t, "standard", weight.Tropical.ArcType())
	assert.Equal(t, "log64", weight.Log64.ArcType())
}

func TestPlus(t *testing.T) {
	a, _ := weight.FromScalar(weight.Tropical, 1)
	b, _ := weight.FromScalar(weight.Tropical, 3)
	assert.Equal(t, 1.0, weight.Plus(a, b).Value())
	assert.Equal(t, 1.0, weight.Plus(b, a).Value())

	la, _ := weight.FromScalar(weight.Log64, 0)
	assert.InDelta(t, -math.Ln2, weight.Plus(la, la).Value(), 1e-12)

	fa, _ := weight.FromScalar(weight.Log, 0)
	assert.InDelta(t, -math.Ln2, weight.Plus(fa, fa).Value(), 1e-6)
}

func TestTimesDivide(t *testing.T) {
	a, _ := weight.FromScalar(weight.Log64, 1.25)
	b, _ := weight.FromScalar(weight.Log64, 0.5)
	assert.Equal(t, 1.75, weight.Times(a, b).Value())
	assert.Equal(t, 0.75, weight.Divide(a, b).Value())

	assert.True(t, weight.Divide(weight.Zero(weight.Log64), b).IsZero())
	nw := weight.Divide(a, weight.Zero(weight.Log64))
	assert.False(t, nw.Member())
	assert.Equal(t, "BadNumber", nw.String())
}

func TestStar(t *testing.T) {
	a, _ := weight.FromScalar(weight.Tropical, 2)
	assert.True(t, weight.Star(a).IsOne())

	neg, _ := weight.FromScalar(weight.Tropical, -1)
	assert.False(t, weight.Star(neg).Member())

	l, _ := weight.FromScalar(weight.Log64, math.Ln2)
	// Σ 2^-k = 2, so a* = -log 2.
	assert.InDelta(t, -math.Ln2, weight.Star(l).Value(), 1e-12)
}

func TestApproxEqualQuantize(t *testing.T) {
	a, _ := weight.FromScalar(weight.Log64, 1.0)
	b, _ := weight.FromScalar(weight.Log64, 1.0+1e-4)
	assert.True(t, weight.ApproxEqual(a, b, weight.DefaultDelta))
	assert.False(t, weight.ApproxEqual(a, b, 0))
	assert.True(t, weight.ApproxEqual(weight.Zero(weight.Log64), weight.Zero(weight.Log64), 0))
	assert.False(t, weight.ApproxEqual(a, weight.Zero(weight.Log64), 1e9))

	q, _ := weight.FromScalar(weight.Log64, 0.26)
	assert.Equal(t, 0.25, q.Quantize(0.25).Value())
	assert.True(t, weight.Zero(weight.Log64).Quantize(0.25).IsZero())
}

func TestMismatchPanics(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, weight.ErrSemiringMismatch))
		var me *weight.MismatchError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, weight.Tropical, me.Left)
		assert.Equal(t, weight.Log, me.Right)
	}()
	weight.Plus(weight.One(weight.Tropical), weight.One(weight.Log))
}

func TestString(t *testing.T) {
	assert.Equal(t, "Infinity", weight.Zero(weight.Tropical).String())
	w, _ := weight.FromScalar(weight.Tropical, 0.5)
	assert.Equal(t, "0.5", w.String())
	assert.Equal(t, "tropical", weight.Tropical.String())
	assert.False(t, weight.Semiring(0).Valid())
}

func TestRequirePath(t *testing.T) {
	assert.NoError(t, weight.Tropical.RequirePath())
	assert.ErrorIs(t, weight.Log.RequirePath(), weight.ErrNoPathProperty)
	assert.ErrorIs(t, weight.Log64.RequirePath(), weight.ErrNoPathProperty)
}
