package fst_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

func TestBinaryRoundTrip(t *testing.T) {
	for _, s := range weight.Semirings {
		t.Run(s.String(), func(t *testing.T) {
			f := twoState(t, s)
			require.NoError(t, f.AddArcScalar(1, 0, 7, 0.1, 0))
			require.NoError(t, f.SetFinalScalar(0, 2.25))

			var buf bytes.Buffer
			require.NoError(t, f.Write(&buf))
			g, err := fst.Read(&buf)
			require.NoError(t, err)
			assert.True(t, fst.Equal(f, g, 0))
			assert.Equal(t, s, g.Semiring())
			assert.Equal(t, 1, g.NumInputEpsilons(1))
		})
	}
}

func TestBinaryFile(t *testing.T) {
	f := twoState(t, weight.Tropical)
	path := filepath.Join(t.TempDir(), "a.fst")
	require.NoError(t, f.WriteFile(path))
	g, err := fst.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, fst.Equal(f, g, 0))

	_, err = fst.ReadFile(filepath.Join(t.TempDir(), "missing.fst"))
	assert.Error(t, err)
}

func TestBinaryRejectsGarbage(t *testing.T) {
	_, err := fst.Read(strings.NewReader("not an automaton at all"))
	assert.ErrorIs(t, err, fst.ErrBadFormat)

	f := twoState(t, weight.Tropical)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	_, err = fst.Read(bytes.NewReader(buf.Bytes()[:buf.Len()-3]))
	assert.ErrorIs(t, err, fst.ErrBadFormat)
}

// allocated returns the bytes allocated while fn runs.
func allocated(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

// header encodes a binary header over the tropical semiring.
func header(start, numStates int32) []byte {
	var buf bytes.Buffer
	buf.WriteString("LVFS")
	buf.Write([]byte{1, byte(weight.Tropical), 0, 0})
	_ = binary.Write(&buf, binary.LittleEndian, start)
	_ = binary.Write(&buf, binary.LittleEndian, numStates)
	return buf.Bytes()
}

func TestBinaryHostileCounts(t *testing.T) {
	oneState := append(header(0, 1), make([]byte, 12)...)
	binary.LittleEndian.PutUint32(oneState[24:], math.MaxInt32)

	cases := map[string][]byte{
		"states": header(0, math.MaxInt32),
		"arcs":   oneState,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			var err error
			n := allocated(func() { _, err = fst.Read(bytes.NewReader(data)) })
			assert.ErrorIs(t, err, fst.ErrBadFormat)
			assert.Less(t, n, uint64(8<<20), "allocated %d bytes for %d input bytes", n, len(data))
		})
	}
}

func TestTextHostileStateID(t *testing.T) {
	var err error
	n := allocated(func() {
		_, err = fst.ReadText(strings.NewReader("0 2000000000 1 1\n"), weight.Tropical, false)
	})
	assert.ErrorIs(t, err, fst.ErrBadFormat)
	assert.Less(t, n, uint64(8<<20))

	// Sparse ids within reach of the input stay legal.
	f, err := fst.ReadText(strings.NewReader("0 100 1 1\n100\n"), weight.Tropical, false)
	require.NoError(t, err)
	assert.Equal(t, 101, f.NumStates())
}

func TestBinaryRejectsNonMemberWeight(t *testing.T) {
	data := append(header(0, 1), make([]byte, 12)...)
	binary.LittleEndian.PutUint64(data[16:], math.Float64bits(math.NaN()))
	_, err := fst.Read(bytes.NewReader(data))
	assert.ErrorIs(t, err, fst.ErrBadFormat)
	assert.ErrorIs(t, err, weight.ErrBadWeight)
}

func TestTextRoundTrip(t *testing.T) {
	f := twoState(t, weight.Tropical)
	require.NoError(t, f.AddArcScalar(1, 2, 3, 1.5, 0))
	require.NoError(t, f.SetFinalScalar(1, 0.25))

	var buf bytes.Buffer
	require.NoError(t, fst.WriteText(&buf, f, false))
	assert.Equal(t, "0\t1\t1\t1\t0.5\n1\t0\t2\t3\t1.5\n1\t0.25\n", buf.String())

	g, err := fst.ReadText(&buf, weight.Tropical, false)
	require.NoError(t, err)
	assert.True(t, fst.Equal(f, g, 0))
}

func TestTextAcceptor(t *testing.T) {
	src := "0 1 5\n1 2 6 0.5\n2\n"
	f, err := fst.ReadText(strings.NewReader(src), weight.Log, true)
	require.NoError(t, err)
	assert.Equal(t, 3, f.NumStates())
	assert.Equal(t, fst.StateID(0), f.Start())
	assert.Equal(t, fst.Acceptor, f.Kind())
	assert.True(t, f.Final(2).IsOne())

	var buf bytes.Buffer
	require.NoError(t, fst.WriteText(&buf, f, true))
	assert.Equal(t, "0\t1\t5\n1\t2\t6\t0.5\n2\n", buf.String())
}

func TestTextRejects(t *testing.T) {
	for _, src := range []string{"0 1 2\n", "0 x 1 1\n", "0 1 1 1 1 1\n", "0 1 1 1 abc\n"} {
		_, err := fst.ReadText(strings.NewReader(src), weight.Tropical, false)
		assert.ErrorIs(t, err, fst.ErrBadFormat, src)
	}
}
