// SPDX-License-Identifier: MIT

package builder

import "github.com/katalvlaran/lvfst/fst"

// validateMin ensures got ≥ min, wrapping ErrTooSmall otherwise.
func validateMin(method string, got, min int) error {
	if got < min {
		return builderErrorf(method, "%w: must be ≥ %d, got %d", ErrTooSmall, min, got)
	}
	return nil
}

// validateAlphabet requires at least MinAlphabet labels, all > 0.
func validateAlphabet(method string, alphabet []fst.Label) error {
	if err := validateMin(method, len(alphabet), MinAlphabet); err != nil {
		return err
	}
	for i, l := range alphabet {
		if l <= fst.Epsilon {
			return labelError(method, alphabet, i)
		}
	}
	return nil
}
