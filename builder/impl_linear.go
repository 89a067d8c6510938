// SPDX-License-Identifier: MIT

package builder

import "github.com/katalvlaran/lvfst/fst"

// Linear adds one path from the start state whose i-th arc carries
// ilabels[i]:olabels[i]. The shorter side is padded with ε. Negative labels
// fail with ErrBadLabel before f is touched.
func Linear(ilabels, olabels []fst.Label) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		if i, bad := firstNegative(ilabels); bad {
			return labelError(MethodLinear, ilabels, i)
		}
		if i, bad := firstNegative(olabels); bad {
			return labelError(MethodLinear, olabels, i)
		}
		in, out := pad(ilabels, olabels)
		return addPath(MethodLinear, f, cfg, in, out)
	}
}

// Acceptor adds one path labelled l:l for each l in labels.
func Acceptor(labels ...fst.Label) Constructor {
	return Linear(labels, labels)
}

// String adds the linear acceptor of text, tokenized per WithTokenType.
// The empty string makes the start state final.
func String(text string) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		labels := Tokenize(text, cfg.tokens)
		return addPath(MethodString, f, cfg, labels, labels)
	}
}

// Strings adds one String path per text; their union.
func Strings(texts ...string) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		for _, t := range texts {
			if err := String(t)(f, cfg); err != nil {
				return err
			}
		}
		return nil
	}
}

// Transduction adds one path mapping in to out, ε-padding the shorter side.
func Transduction(in, out string) Constructor {
	return func(f *fst.Fst, cfg builderConfig) error {
		pi, po := pad(Tokenize(in, cfg.tokens), Tokenize(out, cfg.tokens))
		return addPath(MethodTransduction, f, cfg, pi, po)
	}
}
