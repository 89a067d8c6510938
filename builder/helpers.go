// SPDX-License-Identifier: MIT

package builder

import (
	"unicode/utf8"

	"github.com/katalvlaran/lvfst/fst"
	"github.com/katalvlaran/lvfst/weight"
)

// Tokenize splits text into labels. Bytes yields byte values; Runes yields
// code points, with invalid UTF-8 mapped to utf8.RuneError.
func Tokenize(text string, t TokenType) []fst.Label {
	if t == Runes {
		out := make([]fst.Label, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			out = append(out, fst.Label(r))
		}
		return out
	}
	out := make([]fst.Label, len(text))
	for i := 0; i < len(text); i++ {
		out[i] = fst.Label(text[i])
	}
	return out
}

// ensureStart returns the start state of f, creating one when f has none.
func ensureStart(f *fst.Fst) fst.StateID {
	if s := f.Start(); s != fst.NoStateID {
		return s
	}
	s := f.AddState()
	_ = f.SetStart(s)
	return s
}

// addFinal ⊕-accumulates the configured final weight on s.
func addFinal(method string, f *fst.Fst, s fst.StateID, x float64) error {
	w, err := weight.FromScalar(f.Semiring(), x)
	if err != nil {
		return builderErrorf(method, "final weight: %w", err)
	}
	if err := f.SetFinal(s, weight.Plus(f.Final(s), w)); err != nil {
		return builderErrorf(method, "%v: %w", err, ErrConstructFailed)
	}
	return nil
}

// addPath appends a fresh chain from the start state labelled by the pairs
// (in[i], out[i]) and makes its end final.
func addPath(method string, f *fst.Fst, cfg builderConfig, in, out []fst.Label) error {
	cur := ensureStart(f)
	for i := range in {
		next := f.AddState()
		if err := f.AddArcScalar(cur, in[i], out[i], cfg.arcWeight(), next); err != nil {
			return builderErrorf(method, "arc %d: %v: %w", i, err, ErrConstructFailed)
		}
		cur = next
	}
	return addFinal(method, f, cur, cfg.final)
}

// pad extends the shorter of in and out with ε labels.
func pad(in, out []fst.Label) ([]fst.Label, []fst.Label) {
	n := len(in)
	if len(out) > n {
		n = len(out)
	}
	pi := make([]fst.Label, n)
	po := make([]fst.Label, n)
	copy(pi, in)
	copy(po, out)
	return pi, po
}

func firstNegative(labels []fst.Label) (int, bool) {
	for i, l := range labels {
		if l < 0 {
			return i, true
		}
	}
	return 0, false
}

func labelError(method string, labels []fst.Label, i int) error {
	return builderErrorf(method, "%w: %d at %d", ErrBadLabel, labels[i], i)
}
