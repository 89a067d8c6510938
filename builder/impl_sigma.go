// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"

	"github.com/katalvlaran/lvfst/fst"
)

// Sigma adds Σ* over alphabet: one self-loop l:l per label on the start
// state, which becomes final. Labels must be > 0.
func Sigma(alphabet ...fst.Label) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		if err := validateAlphabet(MethodSigma, alphabet); err != nil {
			return err
		}
		s := ensureStart(f)
		for i, l := range alphabet {
			if err := f.AddArcScalar(s, l, l, cfg.arcWeight(), s); err != nil {
				return builderErrorf(MethodSigma, "arc %d: %v: %w", i, err, ErrConstructFailed)
			}
		}
		return addFinal(MethodSigma, f, s, cfg.final)
	}
}

// RandomStrings adds n paths, each a string of length in [0, maxLen] drawn
// uniformly from alphabet. Requires WithSeed or WithRand.
func RandomStrings(n, maxLen int, alphabet ...fst.Label) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		if cfg.rng == nil {
			return builderErrorf(MethodRandomStrings, "%w", ErrNeedRandSource)
		}
		if err := validateMin(MethodRandomStrings, n, MinStrings); err != nil {
			return err
		}
		if err := validateMin(MethodRandomStrings, maxLen, 0); err != nil {
			return err
		}
		if err := validateAlphabet(MethodRandomStrings, alphabet); err != nil {
			return err
		}
		for k := 0; k < n; k++ {
			labels := draw(cfg.rng, maxLen, alphabet)
			if err := addPath(MethodRandomStrings, f, cfg, labels, labels); err != nil {
				return err
			}
		}
		return nil
	}
}

func draw(rng *rand.Rand, maxLen int, alphabet []fst.Label) []fst.Label {
	out := make([]fst.Label, rng.Intn(maxLen+1))
	for i := range out {
		out[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return out
}
