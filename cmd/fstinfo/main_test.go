package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfst/config"
	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/store"
	"github.com/katalvlaran/lvfst/weight"
)

const diamond = "0 1 1 1 1\n0 2 2 2 4\n1 2 3 3 1\n2 0.5\n"

func compile(t *testing.T, text string) *fst.Fst {
	t.Helper()
	f, err := fst.ReadText(strings.NewReader(text), weight.Tropical, false)
	require.NoError(t, err)
	return f
}

func rowMap(in info) map[string]string {
	out := map[string]string{}
	for _, r := range in.rows() {
		out[r[0]] = r[1]
	}
	return out
}

func TestCollect(t *testing.T) {
	in := collect("diamond", compile(t, diamond), weight.DefaultDelta)
	rows := rowMap(in)

	assert.Equal(t, "vector", rows["fst type"])
	assert.Equal(t, "standard", rows["arc type"])
	assert.Equal(t, "3", rows["# of states"])
	assert.Equal(t, "3", rows["# of arcs"])
	assert.Equal(t, "0", rows["initial state"])
	assert.Equal(t, "1", rows["# of final states"])
	assert.Equal(t, "3", rows["# of accessible states"])
	assert.Equal(t, "y", rows["acyclic"])
	assert.Equal(t, "y", rows["weighted"])
	assert.Equal(t, "2.5", rows["total weight"])
	assert.Contains(t, in.render(), "diamond")
}

func TestCollect_Empty(t *testing.T) {
	f, err := fst.New(weight.Log)
	require.NoError(t, err)

	rows := rowMap(collect("empty", f, weight.DefaultDelta))
	assert.Equal(t, "0", rows["# of states"])
	assert.Equal(t, "-1", rows["initial state"])
	assert.Equal(t, "Infinity", rows["total weight"])
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.txt")
	require.NoError(t, os.WriteFile(path, []byte(diamond), 0o600))

	cfg := config.Default()
	name, f, err := load(context.Background(), cfg, "", path, "log", false)
	require.NoError(t, err)
	assert.Equal(t, path, name)
	assert.Equal(t, "log", f.WeightType())

	_, _, err = load(context.Background(), cfg, "", path, "real", false)
	assert.ErrorIs(t, err, weight.ErrUnsupportedSemiring)

	cfg.Store = store.Config{Backend: "file", Dir: dir}
	require.NoError(t, store.NewFileStore(dir).Save(context.Background(), "d.fst", f))
	name, g, err := load(context.Background(), cfg, "d.fst", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, "d.fst", name)
	assert.True(t, fst.Equal(f, g, weight.DefaultDelta))

	_, _, err = load(context.Background(), cfg, "missing.fst", "", "", false)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBrowseModel(t *testing.T) {
	m := newBrowseModel("diamond", compile(t, diamond))
	assert.Contains(t, m.View(), "state 0 of 3")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, fst.StateID(1), m.state)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	assert.Equal(t, fst.StateID(2), m.state)
	assert.Contains(t, m.View(), "[final 0.5]")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, fst.StateID(2), m.state, "moves past the last state are ignored")

	m.jump("0")
	assert.Equal(t, fst.StateID(0), m.state)
	m.jump("7")
	assert.ErrorIs(t, m.err, fst.ErrStateNotFound)
	m.jump("x")
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
